package stripe

import (
	"context"
	"encoding/json"
	"time"

	stripeapi "github.com/stripe/stripe-go/v82"
	"go.vocdoni.io/dvote/log"

	"github.com/noirwear/storefront-backend/notifications/mailtemplates"
)

// mailTimeout bounds the receipt email dispatch inside a webhook delivery.
const mailTimeout = 20 * time.Second

// HandleWebhookEvent verifies and processes a webhook delivery.
//
// The signature is checked over the raw payload before anything is decoded;
// an invalid signature is the only error returned. Once the event is
// verified the delivery is always acknowledged: internal failures (session
// re-fetch, email dispatch) are logged and swallowed, otherwise Stripe
// would redeliver the event forever over a transient email outage.
func (s *Service) HandleWebhookEvent(payload []byte, signatureHeader string) error {
	event, err := s.client.ValidateWebhookEvent(payload, signatureHeader)
	if err != nil {
		return err
	}

	if event.Type != stripeapi.EventTypeCheckoutSessionCompleted {
		log.Debugf("stripe webhook: ignoring event type %s (id %s)", event.Type, event.ID)
		return nil
	}

	var slim stripeapi.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &slim); err != nil {
		log.Errorf("stripe webhook: event %s carries an undecodable session: %v", event.ID, err)
		return nil
	}
	s.processCompletedSession(slim.ID)
	return nil
}

// processCompletedSession re-fetches the full session (the event payload
// carries no line items) and dispatches the receipt email. Failures are
// logged, never propagated.
func (s *Service) processCompletedSession(sessionID string) {
	session, err := s.client.GetCheckoutSession(sessionID)
	if err != nil {
		log.Errorf("stripe webhook: failed to fetch completed session %s: %v", sessionID, err)
		return
	}
	receipt := buildReceipt(session)
	if receipt.CustomerEmail == "" {
		log.Warnw("completed session has no customer email, skipping receipt",
			"sessionID", sessionID, "orderRef", receipt.OrderRef)
		return
	}
	if s.mail == nil {
		log.Warnw("no mail service configured, skipping receipt",
			"sessionID", sessionID, "orderRef", receipt.OrderRef)
		return
	}

	notification, err := mailtemplates.OrderReceiptNotification.ExecTemplate(receiptMailData(receipt))
	if err != nil {
		log.Errorf("stripe webhook: failed to render receipt for order %s: %v", receipt.OrderRef, err)
		return
	}
	notification.ToName = receipt.CustomerName
	notification.ToAddress = receipt.CustomerEmail
	notification.CCAddress = s.config.ReceiptCCAddress

	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()
	if err := s.mail.SendNotification(ctx, notification); err != nil {
		// non-fatal: the payment event must still be acknowledged
		log.Errorf("stripe webhook: failed to send receipt for order %s to %s: %v",
			receipt.OrderRef, receipt.CustomerEmail, err)
		return
	}
	log.Infow("receipt email sent",
		"orderRef", receipt.OrderRef,
		"to", receipt.CustomerEmail,
		"total", receipt.Total,
		"currency", receipt.Currency)
}
