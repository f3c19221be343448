// Package notify delivers the run report through configured side channels.
// When no channel is configured the report falls back to the log in a
// clearly delimited block, so the outcome is never silently lost.
package notify

import (
	"context"
	"strings"

	"github.com/loykin/leafcheck/internal/common"
)

// Notifier is the single capability the runner depends on.
type Notifier interface {
	Name() string
	Send(ctx context.Context, title, body string) error
}

// Multi fans a notification out to every configured channel. Channel errors
// are logged per channel; all channels are attempted regardless.
type Multi struct {
	Notifiers []Notifier
}

func (m *Multi) Name() string { return "multi" }

func (m *Multi) Send(ctx context.Context, title, body string) error {
	logger := common.GetLogger().WithComponent("notify")
	var lastErr error
	for _, n := range m.Notifiers {
		if err := n.Send(ctx, title, body); err != nil {
			logger.Error("notification channel failed", "channel", n.Name(), "error", err)
			lastErr = err
			continue
		}
		logger.Info("notification sent", "channel", n.Name())
	}
	return lastErr
}

// LogFallback writes the notification to the logger inside a delimited
// block. Used when no real channel is configured, and as a last resort when
// sending fails.
type LogFallback struct{}

func (l *LogFallback) Name() string { return "log" }

func (l *LogFallback) Send(_ context.Context, title, body string) error {
	logger := common.GetLogger().WithComponent("notify")
	divider := strings.Repeat("=", 60)
	logger.Info(divider)
	logger.Info("notification title: " + title)
	for _, line := range strings.Split(body, "\n") {
		logger.Info(line)
	}
	logger.Info(divider)
	return nil
}

// Dispatch sends through the notifier and falls back to the log when the
// notifier is nil or every channel failed.
func Dispatch(ctx context.Context, n Notifier, title, body string) {
	if n == nil {
		_ = (&LogFallback{}).Send(ctx, title, body)
		return
	}
	if err := n.Send(ctx, title, body); err != nil {
		_ = (&LogFallback{}).Send(ctx, title, body)
	}
}
