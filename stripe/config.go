package stripe

import (
	"fmt"
	"net/url"
)

// Config holds the complete Stripe-facing configuration, resolved once at
// process start and injected into the service.
type Config struct {
	// APIKey is the Stripe secret key.
	APIKey string
	// WebhookSecret is the signing secret of the webhook endpoint.
	WebhookSecret string
	// SiteURL is the canonical storefront URL. It is the base for redirect
	// URLs and for resolving relative product image references.
	SiteURL string
	// DevOrigins are request origins allowed to override the redirect and
	// image base through the basePath field (local development fronts).
	DevOrigins []string
	// Currency is the ISO code used for every line item (e.g. "gbp").
	Currency string
	// AllowedShipCountries is forwarded to Stripe's shipping address
	// collection. Empty means Stripe's default (all supported).
	AllowedShipCountries []string
	// ReceiptCCAddress receives an internal copy of every receipt email.
	ReceiptCCAddress string
	// GeoCountryHeader and CDNCountryHeader name the request headers
	// inspected (in that order) for the destination country code.
	GeoCountryHeader string
	CDNCountryHeader string
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("stripe API key is required")
	}
	if c.WebhookSecret == "" {
		return fmt.Errorf("stripe webhook secret is required")
	}
	if c.SiteURL == "" {
		return fmt.Errorf("site URL is required")
	}
	if u, err := url.Parse(c.SiteURL); err != nil || !u.IsAbs() {
		return fmt.Errorf("site URL %q is not an absolute URL", c.SiteURL)
	}
	if c.Currency == "" {
		c.Currency = "gbp"
	}
	return nil
}
