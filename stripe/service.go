// Package stripe provides the integration with the Stripe payment service:
// checkout session creation for a priced cart, session retrieval for the
// receipt view, and webhook event handling for completed payments.
package stripe

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	stripeapi "github.com/stripe/stripe-go/v82"
	"go.vocdoni.io/dvote/log"

	"github.com/noirwear/storefront-backend/catalog"
	"github.com/noirwear/storefront-backend/errors"
	"github.com/noirwear/storefront-backend/notifications"
	"github.com/noirwear/storefront-backend/shipping"
)

// Stripe metadata values are capped at 500 characters.
const maxMetadataValueLen = 480

// sessionAPI is the slice of the Stripe client the service uses. Tests
// provide a fake.
type sessionAPI interface {
	CreateCheckoutSession(*SessionParams) (*stripeapi.CheckoutSession, error)
	GetCheckoutSession(sessionID string) (*stripeapi.CheckoutSession, error)
	ValidateWebhookEvent(payload []byte, signatureHeader string) (*stripeapi.Event, error)
}

// Service provides the main business logic for the three checkout
// operations. It is stateless: every piece of order state lives in Stripe's
// session store.
type Service struct {
	client   sessionAPI
	config   *Config
	catalog  *catalog.Catalog
	shipping *shipping.Config
	mail     notifications.NotificationService
}

// NewService creates a new Stripe service.
func NewService(config *Config, cat *catalog.Catalog, shipConfig *shipping.Config,
	mail notifications.NotificationService,
) (*Service, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if cat == nil || cat.Len() == 0 {
		return nil, fmt.Errorf("a non-empty catalog is required")
	}
	if shipConfig == nil {
		return nil, fmt.Errorf("shipping config is required")
	}
	return &Service{
		client:   NewClient(config),
		config:   config,
		catalog:  cat,
		shipping: shipConfig,
		mail:     mail,
	}, nil
}

// CheckoutRequest is the parsed and header-enriched create-checkout input.
type CheckoutRequest struct {
	Items       []catalog.Item
	BasePath    string
	Origin      string
	GeoCountry  string
	CDNCountry  string
	HintCountry string
}

// CheckoutResult is the successful create-checkout response.
type CheckoutResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
	OrderRef  string `json:"orderRef"`
}

// CreateCheckout prices the cart against the catalog, selects shipping
// options for the detected destination and creates the remote checkout
// session.
//
// The call is deliberately not idempotent: a client retry creates a second
// session, and the abandoned one expires on Stripe's side. See DESIGN.md.
func (s *Service) CreateCheckout(req *CheckoutRequest) (*CheckoutResult, error) {
	if len(req.Items) == 0 {
		return nil, errors.ErrEmptyCart
	}

	base := s.redirectBase(req.Origin, req.BasePath)
	lines, subtotal, err := s.catalog.Price(req.Items, base)
	if err != nil {
		return nil, errors.ErrUnknownProduct.WithErr(err)
	}

	country := shipping.DetectCountry(shipping.Hints{
		GeoHeader:  req.GeoCountry,
		CDNHeader:  req.CDNCountry,
		ClientHint: req.HintCountry,
	})
	rates := s.shipping.RatesFor(country, subtotal)

	orderRef := NewOrderRef(time.Now())
	session, err := s.client.CreateCheckoutSession(&SessionParams{
		Lines:         lines,
		OrderRef:      orderRef,
		CartSummary:   cartSummary(req.Items),
		ShippingRates: rates,
		SuccessURL:    base + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     base + "/cart",
	})
	if err != nil {
		return nil, errors.ErrStripeError.WithErr(err)
	}

	log.Infow("checkout session created",
		"sessionID", session.ID,
		"orderRef", orderRef,
		"subtotal", subtotal,
		"country", country,
		"shippingRates", len(rates))
	return &CheckoutResult{
		SessionID: session.ID,
		URL:       session.URL,
		OrderRef:  orderRef,
	}, nil
}

// Receipt fetches a checkout session and reshapes it into the UI receipt
// payload.
func (s *Service) Receipt(sessionID string) (*Receipt, error) {
	session, err := s.client.GetCheckoutSession(sessionID)
	if err != nil {
		return nil, errors.ErrSessionFetch.WithErr(err)
	}
	return buildReceipt(session), nil
}

// redirectBase computes the base URL for redirects and image resolution.
// It is the configured site URL unless the request comes from a recognized
// local-development origin and supplies a base path.
func (s *Service) redirectBase(origin, basePath string) string {
	site := strings.TrimSuffix(s.config.SiteURL, "/")
	if basePath == "" || !s.isDevOrigin(origin) {
		return site
	}
	ref, err := url.Parse(basePath)
	if err != nil {
		return site
	}
	if ref.IsAbs() {
		return strings.TrimSuffix(ref.String(), "/")
	}
	originURL, err := url.Parse(origin)
	if err != nil || !originURL.IsAbs() {
		return site
	}
	return strings.TrimSuffix(originURL.ResolveReference(ref).String(), "/")
}

func (s *Service) isDevOrigin(origin string) bool {
	for _, dev := range s.config.DevOrigins {
		if strings.EqualFold(strings.TrimSuffix(dev, "/"), strings.TrimSuffix(origin, "/")) {
			return true
		}
	}
	return false
}

// cartSummary serializes the client cart into a compact metadata value so
// completed-payment events can be traced back to what was ordered.
func cartSummary(items []catalog.Item) string {
	type summaryLine struct {
		ID    string `json:"id"`
		Qty   int64  `json:"qty"`
		Size  string `json:"size,omitempty"`
		Color string `json:"color,omitempty"`
	}
	summary := make([]summaryLine, 0, len(items))
	for _, it := range items {
		summary = append(summary, summaryLine{
			ID:    it.ID,
			Qty:   catalog.ParseQuantity(it.Quantity),
			Size:  it.Size,
			Color: it.Color,
		})
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return ""
	}
	if len(raw) > maxMetadataValueLen {
		return string(raw[:maxMetadataValueLen])
	}
	return string(raw)
}
