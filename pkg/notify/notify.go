// Package notify delivers engagement summaries to external endpoints.
// Delivery is best effort: failures are for the caller to log, never to
// propagate into the session pipeline.
package notify

import "context"

// Notification is one engagement summary for an external consumer. Engagement
// is the room overall score scaled to an integer percentage.
type Notification struct {
	Engagement int      `json:"engagement"`
	Keywords   []string `json:"keywords"`
}

// Sink delivers notifications somewhere external.
type Sink interface {
	Deliver(ctx context.Context, n Notification) error
}

// Mock implements Sink for testing.
type Mock struct {
	// DeliverFunc is called when Deliver is invoked. If nil, records and
	// returns nil.
	DeliverFunc func(ctx context.Context, n Notification) error

	Delivered []Notification
}

func (m *Mock) Deliver(ctx context.Context, n Notification) error {
	m.Delivered = append(m.Delivered, n)
	if m.DeliverFunc != nil {
		return m.DeliverFunc(ctx, n)
	}
	return nil
}

var _ Sink = (*Mock)(nil)
