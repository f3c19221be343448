package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const telegramAPIBase = "https://api.telegram.org"

// Telegram sends the report through the Telegram bot API.
type Telegram struct {
	Token  string
	ChatID string
	// APIBase overrides the Telegram endpoint; used by tests.
	APIBase string

	client *resty.Client
}

func NewTelegram(token, chatID string) *Telegram {
	return &Telegram{Token: token, ChatID: chatID}
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Send(ctx context.Context, title, body string) error {
	base := t.APIBase
	if base == "" {
		base = telegramAPIBase
	}
	if t.client == nil {
		t.client = resty.New().SetTimeout(30 * time.Second)
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"chat_id": t.ChatID,
			"text":    title + "\n\n" + body,
		}).
		Post(fmt.Sprintf("%s/bot%s/sendMessage", base, t.Token))
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	if !gjson.GetBytes(resp.Body(), "ok").Bool() {
		desc := gjson.GetBytes(resp.Body(), "description").String()
		return fmt.Errorf("telegram send failed: status %d: %s", resp.StatusCode(), desc)
	}
	return nil
}
