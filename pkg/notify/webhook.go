package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/engageiq/go-engage/internal/httpc"
)

// DefaultWebhookTimeout bounds one delivery attempt end to end.
const DefaultWebhookTimeout = 5 * time.Second

// Webhook posts notifications as JSON to a fixed URL.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a webhook sink for the given URL. A zero timeout uses
// the default.
func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = DefaultWebhookTimeout
	}
	return &Webhook{
		url:    url,
		client: httpc.NewClient(timeout),
	}
}

// Deliver posts the notification. Any non-2xx status is an error.
func (w *Webhook) Deliver(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

var _ Sink = (*Webhook)(nil)
