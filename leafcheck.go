// Package leafcheck automates the daily LeafLow check-in for one or more
// accounts using pre-captured session cookies, and reports the per-account
// outcomes through a notification side channel.
package leafcheck

import (
	"context"

	"github.com/loykin/leafcheck/internal/common"
	"github.com/loykin/leafcheck/internal/cookie"
	"github.com/loykin/leafcheck/internal/notify"
	"github.com/loykin/leafcheck/internal/reward"
	"github.com/loykin/leafcheck/internal/runner"
)

// Re-export commonly used types for public API

// Result is the outcome recorded for one account.
type Result = runner.Result

// Report is the rendered run summary.
type Report = runner.Report

// Config carries endpoints and heuristics for a run; zero values use the
// known site defaults.
type Config = runner.Config

// Reward is an extracted amount/unit pair.
type Reward = reward.Reward

// Notifier is the notification side-channel capability.
type Notifier = notify.Notifier

// Run processes every credential entry sequentially and returns one Result
// per entry, in input order.
func Run(ctx context.Context, cfg Config, credentials []string) []Result {
	r := runner.Runner{Config: cfg}
	return r.Run(ctx, credentials)
}

// BuildReport renders the notification title and body from run results.
func BuildReport(results []Result) Report {
	return runner.BuildReport(results)
}

// ParseCookieString parses a raw "name=value; name2=value2" cookie string.
func ParseCookieString(raw string) map[string]string {
	return cookie.Parse(raw)
}

// SplitCredentials splits a credential source into per-account cookie strings.
func SplitCredentials(src string) []string {
	return cookie.SplitCredentials(src)
}

// ExtractReward runs the default extraction pipeline against HTML text.
func ExtractReward(html string) (Reward, bool) {
	return reward.Default().Extract(html)
}

// Notify sends a report through the given notifier, falling back to the log
// when it is nil or fails.
func Notify(ctx context.Context, n Notifier, report Report) {
	notify.Dispatch(ctx, n, report.Title, report.Body)
}

// NewTelegramNotifier returns a notifier pushing through the Telegram bot API.
func NewTelegramNotifier(token, chatID string) Notifier {
	return notify.NewTelegram(token, chatID)
}

// NewWebhookNotifier returns a notifier posting {title, body} JSON to url.
func NewWebhookNotifier(url string) Notifier {
	return notify.NewWebhook(url)
}

// NewMultiNotifier fans out to several channels; all are attempted.
func NewMultiNotifier(notifiers ...Notifier) Notifier {
	return &notify.Multi{Notifiers: notifiers}
}

// Logging facade

type Logger = common.Logger

type LogLevel = common.LogLevel

const (
	LogLevelError = common.LogLevelError
	LogLevelWarn  = common.LogLevelWarn
	LogLevelInfo  = common.LogLevelInfo
	LogLevelDebug = common.LogLevelDebug
)

// ParseLogLevel maps a config string to a LogLevel; ok is false for
// unrecognized values.
func ParseLogLevel(s string) (LogLevel, bool) { return common.ParseLogLevel(s) }

func NewLogger(level LogLevel) *Logger     { return common.NewLogger(level) }
func NewJSONLogger(level LogLevel) *Logger { return common.NewJSONLogger(level) }
func SetDefaultLogger(l *Logger)           { common.SetDefaultLogger(l) }
func GetLogger() *Logger                   { return common.GetLogger() }

// EnableMasking toggles global masking of sensitive values in log output.
func EnableMasking(enabled bool) { common.EnableMasking(enabled) }
