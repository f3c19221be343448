// Package reward extracts a check-in reward amount and unit from page HTML.
//
// Extraction is an ordered pipeline of independent matchers with
// first-success-wins semantics: a structural match anchored on the site's
// reward display element is preferred, then a sequence of free-text patterns
// of decreasing specificity.
package reward

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/loykin/leafcheck/internal/constants"
)

// Reward is an amount plus its display unit as scraped from HTML. The amount
// is kept as a decimal string; values like "0.07" are display-only and must
// not pick up floating-point artifacts.
type Reward struct {
	Amount string
	Unit   string
}

// Matcher attempts to locate a reward in the given HTML. Matchers are
// independent; ordering and fallback live in the Extractor.
type Matcher func(html string) (Reward, bool)

// Extractor runs its matchers in order and returns the first hit.
type Extractor struct {
	Matchers []Matcher
}

// Extract returns the first reward any matcher finds, or ok=false when the
// document contains no recognizable reward.
func (e *Extractor) Extract(html string) (Reward, bool) {
	for _, m := range e.Matchers {
		if r, ok := m(html); ok {
			return r, true
		}
	}
	return Reward{}, false
}

// Default returns an extractor with the standard matcher pipeline: the
// structural reward-amount match first, then the fuzzy text patterns in
// priority order.
func Default() *Extractor {
	return New(constants.DefaultMaxUnitLength)
}

// New builds the standard pipeline with a custom unit-length cutoff.
func New(maxUnitLen int) *Extractor {
	return &Extractor{
		Matchers: []Matcher{
			StructuralMatcher(maxUnitLen),
			FuzzyMatcher(reLocalizedVerb, maxUnitLen),
			FuzzyMatcher(reEarned, maxUnitLen),
			FuzzyMatcher(reGot, maxUnitLen),
			FuzzyMatcher(reBareUnit, maxUnitLen),
		},
	}
}

// Free-text patterns, in priority order. The keyword lists and the unit
// vocabulary are tuning constants reverse-engineered from observed page
// text, not guaranteed-correct domain logic.
var (
	reLocalizedVerb = regexp.MustCompile(`(?:获得|奖励|领取了?)\s*(\d+\.?\d*)\s*([a-zA-Z\x{4e00}-\x{9fa5}]+)`)
	reEarned        = regexp.MustCompile(`(?i)earned\s*(\d+\.?\d*)\s*(credits?|points?)`)
	reGot           = regexp.MustCompile(`(?i)got\s*(\d+\.?\d*)\s*(credits?|points?)`)
	reBareUnit      = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(points|credits|积分|硬币|元)`)

	// Raw-HTML fallback for the structural match, used when the document does
	// not parse: the reward element's attribute, then amount and unit before
	// the next tag open.
	reStructural = regexp.MustCompile(`class="reward-amount"[^>]*>\s*([\d.]+)\s*([^<\s]+)\s*<`)

	reElementText = regexp.MustCompile(`^\s*(\d+\.?\d*)\s*(\S+)`)
)

// StructuralMatcher matches the reward display element itself. It is
// preferred over the text patterns because it is anchored to a stable
// presentation structure rather than language-dependent prose.
func StructuralMatcher(maxUnitLen int) Matcher {
	return func(html string) (Reward, bool) {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
			var found Reward
			var ok bool
			doc.Find(`[class*="reward-amount"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				if r, hit := matchGroups(reElementText.FindStringSubmatch(s.Text()), maxUnitLen); hit {
					found, ok = r, true
					return false
				}
				return true
			})
			if ok {
				return found, true
			}
		}
		return matchGroups(reStructural.FindStringSubmatch(html), maxUnitLen)
	}
}

// FuzzyMatcher wraps one free-text pattern. A match whose unit token is
// still longer than maxUnitLen after stripping is a false positive and the
// matcher reports no hit, letting the pipeline continue.
func FuzzyMatcher(re *regexp.Regexp, maxUnitLen int) Matcher {
	return func(html string) (Reward, bool) {
		return matchGroups(re.FindStringSubmatch(html), maxUnitLen)
	}
}

func matchGroups(groups []string, maxUnitLen int) (Reward, bool) {
	if len(groups) != 3 {
		return Reward{}, false
	}
	unit := strings.Trim(groups[2], `<>"',. `)
	if unit == "" || utf8.RuneCountInString(unit) > maxUnitLen {
		return Reward{}, false
	}
	return Reward{Amount: groups[1], Unit: unit}, true
}
