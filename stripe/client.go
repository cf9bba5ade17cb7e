package stripe

import (
	stripeapi "github.com/stripe/stripe-go/v82"
	stripecheckoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"

	"github.com/noirwear/storefront-backend/catalog"
)

// SessionParams holds everything needed to create a checkout session for a
// priced cart.
type SessionParams struct {
	Lines         []catalog.PricedLine
	OrderRef      string
	CartSummary   string
	ShippingRates []string
	SuccessURL    string
	CancelURL     string
}

// Client wraps the Stripe API for the three calls the storefront makes:
// create a checkout session, fetch one back expanded, and verify a webhook
// signature.
type Client struct {
	config *Config
}

// NewClient creates a new Stripe client with the given configuration.
func NewClient(config *Config) *Client {
	stripeapi.Key = config.APIKey
	return &Client{config: config}
}

// CreateCheckoutSession creates a new payment-mode checkout session. Line
// item prices come from the catalog via price_data, never from the client.
// The order reference travels both as the session's client_reference_id and
// inside its metadata, so it survives every later read.
// Overview of stripe checkout mechanics: https://docs.stripe.com/checkout/quickstart
// API description: https://docs.stripe.com/api/checkout/sessions
func (c *Client) CreateCheckoutSession(params *SessionParams) (*stripeapi.CheckoutSession, error) {
	lineItems := make([]*stripeapi.CheckoutSessionLineItemParams, 0, len(params.Lines))
	for _, line := range params.Lines {
		productData := &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripeapi.String(line.Name),
		}
		if line.ImageURL != "" {
			productData.Images = []*string{stripeapi.String(line.ImageURL)}
		}
		lineItems = append(lineItems, &stripeapi.CheckoutSessionLineItemParams{
			Quantity: stripeapi.Int64(line.Quantity),
			PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripeapi.String(c.config.Currency),
				UnitAmount:  stripeapi.Int64(line.UnitAmount),
				ProductData: productData,
			},
		})
	}

	checkoutParams := &stripeapi.CheckoutSessionParams{
		Mode:              stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		LineItems:         lineItems,
		ClientReferenceID: stripeapi.String(params.OrderRef),
		Metadata: map[string]string{
			"orderRef": params.OrderRef,
			"cart":     params.CartSummary,
		},
		// Automatic tax calculation is enabled, the storefront never
		// computes taxes itself.
		AutomaticTax: &stripeapi.CheckoutSessionAutomaticTaxParams{
			Enabled: stripeapi.Bool(true),
		},
		BillingAddressCollection: stripeapi.String(
			string(stripeapi.CheckoutSessionBillingAddressCollectionAuto)),
		// The placeholder is substituted by Stripe on redirect
		SuccessURL: stripeapi.String(params.SuccessURL),
		CancelURL:  stripeapi.String(params.CancelURL),
	}

	if len(c.config.AllowedShipCountries) > 0 {
		checkoutParams.ShippingAddressCollection = &stripeapi.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripeapi.StringSlice(c.config.AllowedShipCountries),
		}
	}
	for _, rateID := range params.ShippingRates {
		checkoutParams.ShippingOptions = append(checkoutParams.ShippingOptions,
			&stripeapi.CheckoutSessionShippingOptionParams{
				ShippingRate: stripeapi.String(rateID),
			})
	}

	session, err := stripecheckoutsession.New(checkoutParams)
	if err != nil {
		return nil, NewStripeError(CodeAPICallFailed, "failed to create checkout session", err)
	}
	return session, nil
}

// GetCheckoutSession retrieves a checkout session by ID, expanded with line
// items, their products, the selected shipping rate and the payment intent.
func (*Client) GetCheckoutSession(sessionID string) (*stripeapi.CheckoutSession, error) {
	params := &stripeapi.CheckoutSessionParams{}
	params.AddExpand("line_items")
	params.AddExpand("line_items.data.price.product")
	params.AddExpand("shipping_cost.shipping_rate")
	params.AddExpand("payment_intent")
	params.AddExpand("total_details.breakdown")

	session, err := stripecheckoutsession.Get(sessionID, params)
	if err != nil {
		return nil, NewStripeError(CodeAPICallFailed, "failed to get checkout session", err)
	}
	return session, nil
}

// ValidateWebhookEvent verifies the signature header against the raw,
// unparsed payload and returns the parsed event. Verification happens
// before any JSON decoding; a re-serialized body would not match.
func (c *Client) ValidateWebhookEvent(payload []byte, signatureHeader string) (*stripeapi.Event, error) {
	event, err := stripewebhook.ConstructEventWithOptions(payload, signatureHeader, c.config.WebhookSecret,
		stripewebhook.ConstructEventOptions{
			// survive SDK/API version drift, the signature check is
			// unaffected
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		return nil, NewStripeError(CodeWebhookValidation, "webhook signature validation failed", err)
	}
	return &event, nil
}
