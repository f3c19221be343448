// Package auth infers session validity from pre-captured cookies by probing
// authenticated-only pages. The site has no dedicated whoami endpoint.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/loykin/leafcheck/internal/common"
	"github.com/loykin/leafcheck/internal/constants"
)

// ErrAuthenticationFailed marks a stale or invalid session. It aborts only
// the affected account's check-in, never the whole run.
var ErrAuthenticationFailed = errors.New("authentication failed")

// Verifier probes a fixed list of authenticated-only paths in priority
// order. Probing multiple pages compensates for sites where one page fails
// to reflect login state; a redirect to the login page is a stronger
// negative signal than keyword absence.
type Verifier struct {
	Client *resty.Client
	// BaseURL is the main site the probe paths are resolved against.
	BaseURL string
	// ProbePaths and Keywords default to the known site heuristics; both are
	// data so they can be adjusted without touching control flow.
	ProbePaths []string
	Keywords   []string
}

// Verify returns nil once any probe page responds 200 with an authenticated
// view, ErrAuthenticationFailed when the session is provably or presumably
// stale, and the transport error when a request fails outright.
func (v *Verifier) Verify(ctx context.Context, account string) error {
	logger := common.GetLogger().WithComponent("auth-verifier").WithAccount(account)

	paths := v.ProbePaths
	if len(paths) == 0 {
		paths = constants.DefaultProbePaths
	}
	keywords := v.Keywords
	if len(keywords) == 0 {
		keywords = constants.DefaultAuthKeywords
	}

	for _, path := range paths {
		url := strings.TrimRight(v.BaseURL, "/") + path
		logger.Debug("probing authenticated page", "url", url)

		resp, err := v.Client.R().SetContext(ctx).Get(url)
		if err != nil {
			logger.Error("authentication probe failed", "url", url, "error", err)
			return fmt.Errorf("authentication probe: %w", err)
		}

		// A redirect to the login page outranks any body content.
		if final := finalURL(resp); strings.Contains(strings.ToLower(final), "login") {
			logger.Warn("redirected to login page, cookie likely expired", "url", url, "final_url", final)
			return fmt.Errorf("%w: redirected to login page, cookie expired", ErrAuthenticationFailed)
		}

		body := strings.ToLower(string(resp.Body()))
		if resp.StatusCode() == 200 && containsAny(body, keywords) {
			logger.Info("cookie valid, authenticated view confirmed", "url", url)
			return nil
		}
	}

	return fmt.Errorf("%w: could not confirm login state after trying %d pages", ErrAuthenticationFailed, len(paths))
}

// finalURL reports the request URL after redirects were followed.
func finalURL(resp *resty.Response) string {
	if resp == nil || resp.RawResponse == nil || resp.RawResponse.Request == nil || resp.RawResponse.Request.URL == nil {
		return ""
	}
	return resp.RawResponse.Request.URL.String()
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
