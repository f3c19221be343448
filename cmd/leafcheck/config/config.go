package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/loykin/leafcheck"
	"github.com/loykin/leafcheck/internal/notify"
	"github.com/loykin/leafcheck/internal/runner"
	"gopkg.in/yaml.v3"
)

type SiteConfig struct {
	CheckinURL string   `yaml:"checkin_url"`
	MainSite   string   `yaml:"main_site"`
	ProbePaths []string `yaml:"probe_paths"`
}

// HeuristicsConfig holds the keyword sets and tuning constants the site
// detection relies on. They are reverse-engineered from observed page text;
// keeping them as data allows adjusting them without touching control flow.
type HeuristicsConfig struct {
	AuthKeywords      []string `yaml:"auth_keywords"`
	AlreadyCheckedIn  []string `yaml:"already_checked_in"`
	SuccessIndicators []string `yaml:"success_indicators"`
	MaxUnitLength     int      `yaml:"max_unit_length"`
}

type LoggingConfig struct {
	Level         string `yaml:"level"`          // error, warn, info, debug
	Format        string `yaml:"format"`         // text, json
	MaskSensitive *bool  `yaml:"mask_sensitive"` // enable/disable sensitive data masking
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID string `yaml:"chat_id"`
}

type WebhookConfig struct {
	URL string `yaml:"url"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Webhook  WebhookConfig  `yaml:"webhook"`
}

type ConfigDoc struct {
	Site       SiteConfig       `yaml:"site"`
	Heuristics HeuristicsConfig `yaml:"heuristics"`
	Logging    LoggingConfig    `yaml:"logging"`
	Notify     NotifyConfig     `yaml:"notify"`
	// Cookies optionally holds the credential source inline; the
	// LEAFCHECK_COOKIES environment variable takes precedence.
	Cookies string `yaml:"cookies"`
	// Durations are yaml strings like "30s", "3s".
	Timeout              string `yaml:"timeout"`
	DelayBetweenAccounts string `yaml:"delay_between_accounts"`
}

func (c *ConfigDoc) Load(path string) error {
	clean := filepath.Clean(path)
	// Ensure path points to a regular file to avoid opening directories/special files
	if info, statErr := os.Stat(clean); statErr != nil || !info.Mode().IsRegular() {
		if statErr != nil {
			return statErr
		}
		return fmt.Errorf("not a regular file: %s", clean)
	}
	// #nosec G304 -- config path is provided intentionally by the user/CI; cleaned and validated above
	f, err := os.Open(clean)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	dec := yaml.NewDecoder(f)
	return dec.Decode(c)
}

// ToRunnerConfig converts the document into a runner configuration; unset
// fields stay zero so the runner applies the site defaults.
func (c *ConfigDoc) ToRunnerConfig() (runner.Config, error) {
	cfg := runner.Config{
		CheckinURL:        c.Site.CheckinURL,
		MainSite:          c.Site.MainSite,
		ProbePaths:        c.Site.ProbePaths,
		AuthKeywords:      c.Heuristics.AuthKeywords,
		AlreadyIndicators: c.Heuristics.AlreadyCheckedIn,
		SuccessIndicators: c.Heuristics.SuccessIndicators,
		MaxUnitLength:     c.Heuristics.MaxUnitLength,
	}

	var err error
	if cfg.Timeout, err = parseDuration(c.Timeout, "timeout"); err != nil {
		return cfg, err
	}
	if cfg.DelayBetweenAccounts, err = parseDuration(c.DelayBetweenAccounts, "delay_between_accounts"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseDuration(s, field string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	return d, nil
}

// BuildNotifier assembles the configured channels. It returns nil when no
// channel is configured; the caller then falls back to log output.
func (c *ConfigDoc) BuildNotifier() notify.Notifier {
	var channels []notify.Notifier
	if c.Notify.Telegram.Token != "" && c.Notify.Telegram.ChatID != "" {
		channels = append(channels, notify.NewTelegram(c.Notify.Telegram.Token, c.Notify.Telegram.ChatID))
	}
	if c.Notify.Webhook.URL != "" {
		channels = append(channels, notify.NewWebhook(c.Notify.Webhook.URL))
	}
	switch len(channels) {
	case 0:
		return nil
	case 1:
		return channels[0]
	default:
		return &notify.Multi{Notifiers: channels}
	}
}

// SetupLogging configures the global logger based on config settings
func (c *ConfigDoc) SetupLogging() error {
	level, ok := leafcheck.ParseLogLevel(c.Logging.Level)
	if !ok {
		return fmt.Errorf("invalid logging level: %s (valid: error, warn, info, debug)", c.Logging.Level)
	}

	var logger *leafcheck.Logger
	switch c.Logging.Format {
	case "json":
		logger = leafcheck.NewJSONLogger(level)
	case "text", "":
		logger = leafcheck.NewLogger(level)
	default:
		return fmt.Errorf("invalid logging format: %s (valid: text, json)", c.Logging.Format)
	}

	maskingEnabled := true
	if c.Logging.MaskSensitive != nil {
		maskingEnabled = *c.Logging.MaskSensitive
	}
	logger.EnableMasking(maskingEnabled)

	leafcheck.SetDefaultLogger(logger)
	leafcheck.EnableMasking(maskingEnabled)

	logger.Info("logging configured",
		"level", level.String(),
		"format", c.Logging.Format,
		"mask_sensitive", maskingEnabled)

	return nil
}
