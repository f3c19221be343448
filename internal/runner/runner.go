// Package runner iterates accounts sequentially, converts every per-account
// failure into a recorded result and renders the final report. No error
// escapes a single account's processing; the run always completes.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/loykin/leafcheck/internal/auth"
	"github.com/loykin/leafcheck/internal/checkin"
	"github.com/loykin/leafcheck/internal/common"
	"github.com/loykin/leafcheck/internal/constants"
	"github.com/loykin/leafcheck/internal/cookie"
	"github.com/loykin/leafcheck/internal/httpc"
	"github.com/loykin/leafcheck/internal/reward"
)

// ErrCredentialFormat marks a cookie string that yielded no usable pairs.
var ErrCredentialFormat = errors.New("invalid cookie string: no name=value pairs found")

// Result is the immutable outcome for one account. Exactly one Result exists
// per non-empty credential entry, in input order.
type Result struct {
	Account string
	Success bool
	Message string
}

// Report is the rendered run summary handed to the notification channel.
type Report struct {
	Title string
	Body  string
}

// Config carries the target endpoints and heuristics for one run. Zero
// values fall back to the known site defaults.
type Config struct {
	CheckinURL string
	MainSite   string

	ProbePaths        []string
	AuthKeywords      []string
	AlreadyIndicators []string
	SuccessIndicators []string
	MaxUnitLength     int

	UserAgent string
	Timeout   time.Duration
	// DelayBetweenAccounts is a politeness measure, applied between accounts
	// but not after the last one.
	DelayBetweenAccounts time.Duration
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.CheckinURL == "" {
		out.CheckinURL = constants.DefaultCheckinURL
	}
	if out.MainSite == "" {
		out.MainSite = constants.DefaultMainSite
	}
	if out.MaxUnitLength == 0 {
		out.MaxUnitLength = constants.DefaultMaxUnitLength
	}
	if out.Timeout == 0 {
		out.Timeout = constants.DefaultRequestTimeout
	}
	if out.DelayBetweenAccounts == 0 {
		out.DelayBetweenAccounts = constants.DefaultDelayBetweenAccounts
	}
	return out
}

// Runner executes the whole check-in flow for a list of credential strings.
type Runner struct {
	Config Config
}

// Run processes every credential entry in order. Each account gets an
// independently built client so cookies never leak between accounts.
func (r *Runner) Run(ctx context.Context, credentials []string) []Result {
	cfg := r.Config.withDefaults()
	logger := common.GetLogger().WithComponent("runner")
	extractor := reward.New(cfg.MaxUnitLength)

	results := make([]Result, 0, len(credentials))
	for i, raw := range credentials {
		account := fmt.Sprintf("account%d", i+1)
		logger.Info("processing account", "account", account, "index", i+1, "total", len(credentials))

		results = append(results, r.runAccount(ctx, cfg, extractor, account, raw))

		if i < len(credentials)-1 {
			logger.Info("waiting before next account", "delay", cfg.DelayBetweenAccounts)
			if !sleepCtx(ctx, cfg.DelayBetweenAccounts) {
				logger.Warn("run cancelled between accounts")
			}
		}
	}
	return results
}

func (r *Runner) runAccount(ctx context.Context, cfg Config, extractor *reward.Extractor, account, rawCookies string) Result {
	creds := cookie.Parse(rawCookies)
	if len(creds) == 0 {
		return Result{Account: account, Success: false, Message: ErrCredentialFormat.Error()}
	}

	h := httpc.Httpc{Timeout: cfg.Timeout, UserAgent: cfg.UserAgent}
	client := h.NewSession(creds, cfg.MainSite, cfg.CheckinURL)

	verifier := auth.Verifier{
		Client:     client,
		BaseURL:    cfg.MainSite,
		ProbePaths: cfg.ProbePaths,
		Keywords:   cfg.AuthKeywords,
	}
	if err := verifier.Verify(ctx, account); err != nil {
		return Result{Account: account, Success: false, Message: err.Error()}
	}

	orchestrator := checkin.Orchestrator{
		Client:                     client,
		CheckinURL:                 cfg.CheckinURL,
		AlreadyCheckedInIndicators: cfg.AlreadyIndicators,
		SuccessIndicators:          cfg.SuccessIndicators,
		Extractor:                  extractor,
	}
	msg, err := orchestrator.Perform(ctx, account)
	if err != nil {
		return Result{Account: account, Success: false, Message: err.Error()}
	}
	return Result{Account: account, Success: true, Message: msg}
}

// BuildReport renders the title and body for the notification channel.
func BuildReport(results []Result) Report {
	succeeded := 0
	for _, res := range results {
		if res.Success {
			succeeded++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "check-in finished: %d accounts total, %d succeeded.\n", len(results), succeeded)
	for _, res := range results {
		icon := "❌"
		if res.Success {
			icon = "✅"
		}
		fmt.Fprintf(&b, "\n%s %s: %s", icon, res.Account, res.Message)
	}

	return Report{
		Title: fmt.Sprintf("LeafLow check-in report (%d/%d)", succeeded, len(results)),
		Body:  b.String(),
	}
}

// sleepCtx waits for d, returning false if the context ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
