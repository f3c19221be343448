package common

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

const maskedValue = "***MASKED***"

// SensitivePattern represents a pattern to detect and mask sensitive information
type SensitivePattern struct {
	Name        string         // Pattern name (e.g., "cookie", "bot_token")
	Regex       *regexp.Regexp // Regular expression to match sensitive data
	Replacement string         // Replacement string
	Keys        []string       // Specific attribute keys to mask (case-insensitive)
}

// DefaultSensitivePatterns covers the credentials this tool handles: raw
// cookie strings, session identifiers and notification bot tokens.
var DefaultSensitivePatterns = []SensitivePattern{
	{
		Name:        "cookie",
		Regex:       regexp.MustCompile(`(?i)\b(cookie|cookies|set-cookie)\s*[:=]\s*([^\s;][^\n]*)`),
		Replacement: "${1}=" + maskedValue,
		Keys:        []string{"cookie", "cookies", "set-cookie", "cookie_string"},
	},
	{
		Name:        "session",
		Regex:       regexp.MustCompile(`(?i)\b([a-z0-9_]*session[a-z0-9_]*)\s*=\s*([^";,\s]+)`),
		Replacement: "${1}=" + maskedValue,
		Keys:        []string{"session", "session_id", "sessionid", "phpsessid", "laravel_session"},
	},
	{
		Name:        "token",
		Regex:       regexp.MustCompile(`(?i)\b(token|access[_-]?token|auth[_-]?token|bot[_-]?token|xsrf-token)\s*[:=]\s*([^";,\s]+)`),
		Replacement: "${1}=" + maskedValue,
		Keys:        []string{"token", "access_token", "auth_token", "bot_token", "xsrf-token"},
	},
	{
		Name:        "password",
		Regex:       regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*[:=]\s*([^";,\s]+)`),
		Replacement: "${1}=" + maskedValue,
		Keys:        []string{"password", "passwd", "pwd"},
	},
	{
		Name:        "bearer_token",
		Regex:       regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]+=*`),
		Replacement: "Bearer " + maskedValue,
		Keys:        []string{},
	},
}

// Masker handles masking of sensitive information in logs
type Masker struct {
	patterns []SensitivePattern
	enabled  bool
}

// NewMasker creates a new masker with default patterns
func NewMasker() *Masker {
	return &Masker{
		patterns: DefaultSensitivePatterns,
		enabled:  true,
	}
}

// NewMaskerWithPatterns creates a new masker with custom patterns
func NewMaskerWithPatterns(patterns []SensitivePattern) *Masker {
	return &Masker{
		patterns: patterns,
		enabled:  true,
	}
}

// SetEnabled enables or disables masking
func (m *Masker) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// IsEnabled returns whether masking is enabled
func (m *Masker) IsEnabled() bool {
	return m.enabled
}

// MaskString masks sensitive information in a string
func (m *Masker) MaskString(input string) string {
	if !m.enabled {
		return input
	}

	result := input
	for _, pattern := range m.patterns {
		result = pattern.Regex.ReplaceAllString(result, pattern.Replacement)
	}
	return result
}

// MaskValue masks a value based on its attribute key, falling back to the
// regex patterns when the key itself is not sensitive.
func (m *Masker) MaskValue(key string, value interface{}) interface{} {
	if !m.enabled {
		return value
	}

	lowerKey := strings.ToLower(key)
	for _, pattern := range m.patterns {
		for _, sensitiveKey := range pattern.Keys {
			if lowerKey == sensitiveKey {
				return maskedValue
			}
		}
	}

	if strValue, ok := value.(string); ok {
		return m.MaskString(strValue)
	}
	return value
}

// Global masker instance
var globalMasker = NewMasker()

// SetGlobalMasker sets the global masker instance
func SetGlobalMasker(masker *Masker) {
	globalMasker = masker
}

// GetGlobalMasker returns the global masker instance
func GetGlobalMasker() *Masker {
	return globalMasker
}

// MaskSensitiveData masks sensitive data using the global masker
func MaskSensitiveData(input string) string {
	return globalMasker.MaskString(input)
}

// EnableMasking enables/disables global masking
func EnableMasking(enabled bool) {
	globalMasker.SetEnabled(enabled)
}

// IsMaskingEnabled returns whether global masking is enabled
func IsMaskingEnabled() bool {
	return globalMasker.IsEnabled()
}

// maskingHandler wraps a slog.Handler and masks sensitive attribute values
// before they reach the underlying handler.
type maskingHandler struct {
	inner  slog.Handler
	masker *Masker
}

func (h *maskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *maskingHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.masker == nil || !h.masker.IsEnabled() {
		return h.inner.Handle(ctx, r)
	}
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})
	return h.inner.Handle(ctx, masked)
}

func (h *maskingHandler) maskAttr(a slog.Attr) slog.Attr {
	v := h.masker.MaskValue(a.Key, a.Value.Any())
	if s, ok := v.(string); ok {
		return slog.Attr{Key: a.Key, Value: slog.StringValue(s)}
	}
	if err, ok := v.(error); ok {
		return slog.Attr{Key: a.Key, Value: slog.StringValue(fmt.Sprintf("%v", err))}
	}
	return a
}

func (h *maskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		if h.masker != nil && h.masker.IsEnabled() {
			masked[i] = h.maskAttr(a)
		} else {
			masked[i] = a
		}
	}
	return &maskingHandler{inner: h.inner.WithAttrs(masked), masker: h.masker}
}

func (h *maskingHandler) WithGroup(name string) slog.Handler {
	return &maskingHandler{inner: h.inner.WithGroup(name), masker: h.masker}
}
