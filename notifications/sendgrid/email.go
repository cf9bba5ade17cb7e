// Package sendgrid provides the SendGrid implementation of the
// NotificationService interface. It is the delivery backend used in
// production for order receipt emails.
package sendgrid

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/noirwear/storefront-backend/notifications"
)

// Config contains the SendGrid API key and the sender identity.
type Config struct {
	FromName    string
	FromAddress string
	APIKey      string
}

// Email is the SendGrid-backed NotificationService.
type Email struct {
	config *Config
	client *sendgrid.Client
}

// Init parses the configuration and creates the SendGrid client.
func (sg *Email) Init(rawConfig any) error {
	config, ok := rawConfig.(*Config)
	if !ok {
		return fmt.Errorf("invalid SendGrid configuration")
	}
	if config.APIKey == "" {
		return fmt.Errorf("SendGrid API key is required")
	}
	sg.config = config
	sg.client = sendgrid.NewSendClient(sg.config.APIKey)
	return nil
}

// SendNotification sends the notification through the SendGrid API with both
// the HTML and the plain-text bodies. A CC address, when set, receives the
// internal copy.
func (sg *Email) SendNotification(ctx context.Context, notification *notifications.Notification) error {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(sg.config.FromName, sg.config.FromAddress))
	message.Subject = notification.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail(notification.ToName, notification.ToAddress))
	if notification.CCAddress != "" {
		p.AddCCs(mail.NewEmail("", notification.CCAddress))
	}
	message.AddPersonalizations(p)

	if notification.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", notification.ReplyTo))
	}

	plain := notification.PlainBody
	if plain == "" {
		plain = notification.Body
	}
	message.AddContent(
		mail.NewContent("text/plain", plain),
		mail.NewContent("text/html", notification.Body),
	)

	resp, err := sg.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid rejected message: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
