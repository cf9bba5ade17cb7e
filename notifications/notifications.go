// Package notifications defines the outbound notification contract used by
// the checkout flow, together with its pluggable delivery implementations.
package notifications

import "context"

// Notification is a single outbound email.
type Notification struct {
	ToName    string
	ToAddress string
	CCAddress string
	ReplyTo   string
	Subject   string
	Body      string // HTML body
	PlainBody string // plain-text fallback
}

// NotificationService is implemented by every delivery backend (SendGrid,
// SMTP, the in-memory test collector).
type NotificationService interface {
	Init(conf any) error
	SendNotification(context.Context, *Notification) error
}
