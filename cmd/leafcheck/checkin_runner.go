package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/loykin/leafcheck"
	"github.com/loykin/leafcheck/cmd/leafcheck/config"
	"github.com/loykin/leafcheck/internal/auth"
	"github.com/loykin/leafcheck/internal/constants"
	"github.com/loykin/leafcheck/internal/cookie"
	"github.com/loykin/leafcheck/internal/httpc"
	"github.com/loykin/leafcheck/internal/notify"
	"github.com/spf13/viper"
)

// ErrNoCredentials is the only process-fatal condition: without a credential
// source there is nothing to run against.
var ErrNoCredentials = errors.New("no credential configuration found: set LEAFCHECK_COOKIES or the cookies config key")

// CheckinRunner wires config, credentials, the run driver and the
// notification channel together for one CLI invocation.
type CheckinRunner struct {
	ctx context.Context
}

func NewCheckinRunner(ctx context.Context) *CheckinRunner {
	return &CheckinRunner{ctx: ctx}
}

func (r *CheckinRunner) loadConfig() (*config.ConfigDoc, error) {
	doc := &config.ConfigDoc{}
	path := strings.TrimSpace(viper.GetString("config"))
	if path == "" {
		return doc, nil
	}
	if err := doc.Load(path); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return doc, nil
}

// credentials resolves the credential source: the cookies flag/env wins over
// the config document.
func (r *CheckinRunner) credentials(doc *config.ConfigDoc) []string {
	src := viper.GetString("cookies")
	if strings.TrimSpace(src) == "" {
		src = doc.Cookies
	}
	return leafcheck.SplitCredentials(src)
}

// Run executes the whole check-in flow. Per-account failures are reported
// inside the notification body; only a missing credential source makes the
// process exit non-zero.
func (r *CheckinRunner) Run() error {
	doc, err := r.loadConfig()
	if err != nil {
		return err
	}
	if err := doc.SetupLogging(); err != nil {
		return err
	}
	logger := leafcheck.GetLogger().WithComponent("runner")

	notifier := doc.BuildNotifier()
	entries := r.credentials(doc)
	if len(entries) == 0 {
		notify.Dispatch(r.ctx, notifier, "LeafLow check-in failed",
			"No credential configuration found. Set LEAFCHECK_COOKIES and try again.")
		return ErrNoCredentials
	}

	cfg, err := doc.ToRunnerConfig()
	if err != nil {
		return err
	}

	logger.Info("starting check-in run", "accounts", len(entries))
	results := leafcheck.Run(r.ctx, cfg, entries)

	report := leafcheck.BuildReport(results)
	leafcheck.Notify(r.ctx, notifier, report)
	logger.Info("check-in run finished", "title", report.Title)
	return nil
}

// Verify probes each account's session without performing the check-in.
func (r *CheckinRunner) Verify() error {
	doc, err := r.loadConfig()
	if err != nil {
		return err
	}
	if err := doc.SetupLogging(); err != nil {
		return err
	}

	entries := r.credentials(doc)
	if len(entries) == 0 {
		return ErrNoCredentials
	}
	cfg, err := doc.ToRunnerConfig()
	if err != nil {
		return err
	}
	if cfg.MainSite == "" {
		cfg.MainSite = constants.DefaultMainSite
	}
	if cfg.CheckinURL == "" {
		cfg.CheckinURL = constants.DefaultCheckinURL
	}

	for i, raw := range entries {
		account := fmt.Sprintf("account%d", i+1)
		creds := cookie.Parse(raw)
		if len(creds) == 0 {
			fmt.Fprintf(os.Stdout, "❌ %s: invalid cookie string\n", account)
			continue
		}

		h := httpc.Httpc{Timeout: cfg.Timeout, UserAgent: cfg.UserAgent}
		verifier := auth.Verifier{
			Client:     h.NewSession(creds, cfg.MainSite, cfg.CheckinURL),
			BaseURL:    cfg.MainSite,
			ProbePaths: cfg.ProbePaths,
			Keywords:   cfg.AuthKeywords,
		}
		if err := verifier.Verify(r.ctx, account); err != nil {
			fmt.Fprintf(os.Stdout, "❌ %s: %v\n", account, err)
			continue
		}
		fmt.Fprintf(os.Stdout, "✅ %s: session valid\n", account)
	}
	return nil
}

// NotifyTest sends a test message through the configured channels.
func (r *CheckinRunner) NotifyTest() error {
	doc, err := r.loadConfig()
	if err != nil {
		return err
	}
	if err := doc.SetupLogging(); err != nil {
		return err
	}

	notifier := doc.BuildNotifier()
	if notifier == nil {
		return errors.New("no notification channel configured")
	}
	return notifier.Send(r.ctx, "leafcheck test notification", "If you can read this, the channel works.")
}
