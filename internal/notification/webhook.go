package notification

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

const webhookTimeout = 10 * time.Second

// WebhookNotifier POSTs alerts as JSON to an HTTP endpoint.
type WebhookNotifier struct {
	url    string
	client *resty.Client
}

// NewWebhookNotifier creates a webhook notifier. headers are sent with every
// request, e.g. an Authorization token.
func NewWebhookNotifier(url string, headers map[string]string) *WebhookNotifier {
	client := resty.New().
		SetTimeout(webhookTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeaders(headers)

	return &WebhookNotifier{
		url:    url,
		client: client,
	}
}

func (w *WebhookNotifier) Name() string {
	return "webhook"
}

type webhookPayload struct {
	Alert

	Timestamp string `json:"ts"`
}

func (w *WebhookNotifier) Send(ctx context.Context, alert Alert) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(webhookPayload{Alert: alert, Timestamp: time.Now().UTC().Format(time.RFC3339Nano)}).
		Post(w.url)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotificationFailed, "webhook: send", err)
	}

	if resp.IsError() {
		return errors.Newf(errors.ErrCodeNotificationFailed, "webhook: unexpected status %d", resp.StatusCode())
	}

	return nil
}
