package api

import (
	stderrors "errors"
	"io"
	"net/http"

	"go.vocdoni.io/dvote/log"

	"github.com/noirwear/storefront-backend/api/apicommon"
	"github.com/noirwear/storefront-backend/errors"
	"github.com/noirwear/storefront-backend/stripe"
)

// maxWebhookBodySize bounds the webhook payload read into memory. Stripe
// events for checkout sessions are a few KB at most.
const maxWebhookBodySize = 64 * 1024

// createCheckoutHandler prices the posted cart against the catalog and
// creates a Stripe checkout session for it, returning the session id and
// redirect URL.
func (a *API) createCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	req := &apicommon.CheckoutRequest{}
	if err := apicommon.DecodeJSON(r, req); err != nil {
		errors.ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	if len(req.Items) == 0 {
		errors.ErrEmptyCart.Write(w)
		return
	}
	result, err := a.checkout.CreateCheckout(&stripe.CheckoutRequest{
		Items:       req.Items,
		BasePath:    req.BasePath,
		Origin:      r.Header.Get("Origin"),
		GeoCountry:  r.Header.Get(a.geoHeader),
		CDNCountry:  r.Header.Get(a.cdnHeader),
		HintCountry: req.HintCountry,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	apicommon.HTTPWriteJSON(w, result)
}

// retrieveSessionHandler returns the receipt view of a checkout session,
// fetched fresh from Stripe. The success page calls it to render the order
// confirmation.
func (a *API) retrieveSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		errors.ErrMalformedURLParam.Withf("session_id is required").Write(w)
		return
	}
	receipt, err := a.checkout.Receipt(sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	apicommon.HTTPWriteJSON(w, receipt)
}

// stripeWebhookHandler receives signed Stripe events. The signature is
// verified over the raw bytes; only a failed verification is reported back
// to Stripe, every verified delivery is acknowledged with a 200 regardless
// of what happens downstream.
func (a *API) stripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodySize))
	if err != nil {
		log.Warnw("failed to read webhook payload", "error", err)
		errors.ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		errors.ErrInvalidSignature.Withf("missing Stripe-Signature header").Write(w)
		return
	}
	if err := a.checkout.HandleWebhookEvent(payload, signature); err != nil {
		if stripe.IsSignatureError(err) {
			errors.ErrInvalidSignature.WithErr(err).Write(w)
			return
		}
		// verified but failed internally: ack anyway so Stripe does not
		// redeliver, the failure is already logged downstream
		log.Errorw(err, "webhook event processing failed")
	}
	apicommon.HTTPWriteOK(w)
}

// writeServiceError writes a service error preserving its code and status,
// falling back to a generic internal error for anything unexpected.
func writeServiceError(w http.ResponseWriter, err error) {
	var apiErr errors.Error
	if stderrors.As(err, &apiErr) {
		apiErr.Write(w)
		return
	}
	errors.ErrInternal.WithErr(err).Write(w)
}
