package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Webhook posts the report as JSON to a generic endpoint, covering
// ServerChan/WeCom-style push services that accept a title and body.
type Webhook struct {
	URL string

	client *resty.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{URL: url}
}

func (w *Webhook) Name() string { return "webhook" }

func (w *Webhook) Send(ctx context.Context, title, body string) error {
	if w.client == nil {
		w.client = resty.New().SetTimeout(30 * time.Second)
	}

	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"title": title, "body": body}).
		Post(w.URL)
	if err != nil {
		return fmt.Errorf("webhook send: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return fmt.Errorf("webhook send failed: status %d", resp.StatusCode())
	}
	return nil
}
