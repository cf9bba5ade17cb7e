// Package testmail provides an in-memory NotificationService used by the
// test suites to capture outbound emails and to inject delivery failures.
package testmail

import (
	"context"
	"sync"

	"github.com/noirwear/storefront-backend/notifications"
)

// Collector stores every notification it is asked to send. SendErr, when
// set, is returned instead so tests can simulate a failing email provider.
type Collector struct {
	SendErr error

	mtx  sync.Mutex
	sent []notifications.Notification
}

// Init implements NotificationService; the collector takes no configuration.
func (*Collector) Init(any) error { return nil }

// SendNotification records the notification, or fails with SendErr.
func (c *Collector) SendNotification(_ context.Context, n *notifications.Notification) error {
	if c.SendErr != nil {
		return c.SendErr
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.sent = append(c.sent, *n)
	return nil
}

// Sent returns a copy of every notification recorded so far.
func (c *Collector) Sent() []notifications.Notification {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	out := make([]notifications.Notification, len(c.sent))
	copy(out, c.sent)
	return out
}

// Reset drops all recorded notifications.
func (c *Collector) Reset() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.sent = nil
}
