// Package checkin drives the check-in flow for one account: fetch the
// check-in page, detect "already checked in" vs "needs check-in", optionally
// issue the check-in action and fold the scraped reward into a message.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/loykin/leafcheck/internal/common"
	"github.com/loykin/leafcheck/internal/constants"
	"github.com/loykin/leafcheck/internal/reward"
)

// ErrNoSuccessMarker means the check-in POST got a 200 response whose body
// carried none of the known success indicators.
var ErrNoSuccessMarker = errors.New("check-in request sent but no success marker in response")

// StatusError reports a non-200 response from the check-in endpoint.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Op, e.Code)
}

// Orchestrator performs the check-in for a single account. Indicator lists
// default to the known site heuristics and are data, not code.
type Orchestrator struct {
	Client     *resty.Client
	CheckinURL string

	AlreadyCheckedInIndicators []string
	SuccessIndicators          []string

	Extractor *reward.Extractor
}

// Perform runs the check-in flow and returns a human-readable outcome
// message. A nil error means the account counts as checked in for today,
// whether by this run or an earlier one. No step is retried; any transport
// error is terminal for this account.
func (o *Orchestrator) Perform(ctx context.Context, account string) (string, error) {
	logger := common.GetLogger().WithComponent("checkin").WithAccount(account)

	already := o.AlreadyCheckedInIndicators
	if len(already) == 0 {
		already = constants.DefaultAlreadyCheckedInIndicators
	}
	success := o.SuccessIndicators
	if len(success) == 0 {
		success = constants.DefaultSuccessIndicators
	}
	extractor := o.Extractor
	if extractor == nil {
		extractor = reward.Default()
	}

	logger.Info("fetching check-in page", "url", o.CheckinURL)
	resp, err := o.Client.R().SetContext(ctx).Get(o.CheckinURL)
	if err != nil {
		logger.Error("check-in page fetch failed", "error", err)
		return "", fmt.Errorf("fetch check-in page: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", &StatusError{Op: "check-in page", Code: resp.StatusCode()}
	}

	// The reward display may already be present before any action is taken.
	html := string(resp.Body())
	pageReward, hasPageReward := extractor.Extract(html)

	if containsAnyFold(html, already) {
		msg := "already checked in today (no reward info found on the page)"
		if hasPageReward {
			msg = fmt.Sprintf("already checked in today, today's reward: %s %s", pageReward.Amount, pageReward.Unit)
		}
		logger.Info("account already checked in", "message", msg)
		return msg, nil
	}

	logger.Info("not checked in yet, sending check-in request")
	postResp, err := o.Client.R().
		SetContext(ctx).
		SetFormData(map[string]string{constants.CheckinFormField: "1"}).
		Post(o.CheckinURL)
	if err != nil {
		logger.Error("check-in request failed", "error", err)
		return "", fmt.Errorf("check-in request: %w", err)
	}
	if postResp.StatusCode() != 200 {
		return "", &StatusError{Op: "check-in request", Code: postResp.StatusCode()}
	}

	postHTML := string(postResp.Body())
	if !containsAnyFold(postHTML, success) {
		logger.Warn("check-in response carried no success indicator")
		return "", ErrNoSuccessMarker
	}

	// Independent extraction from the POST response; the pre-action page may
	// show a stale or absent amount.
	msg := "check-in successful (could not extract reward from the response)"
	if r, ok := extractor.Extract(postHTML); ok {
		msg = fmt.Sprintf("check-in successful, earned %s %s", r.Amount, r.Unit)
	}
	logger.Info("check-in completed", "message", msg)
	return msg, nil
}

func containsAnyFold(s string, indicators []string) bool {
	lower := strings.ToLower(s)
	for _, in := range indicators {
		if strings.Contains(lower, strings.ToLower(in)) {
			return true
		}
	}
	return false
}
