package api

const (
	// pingEndpoint is the healthcheck used by deployment probes.
	pingEndpoint = "/ping"
	// createCheckoutEndpoint receives a cart and creates a checkout session.
	createCheckoutEndpoint = "/create-checkout"
	// retrieveSessionEndpoint returns the receipt view of a session.
	retrieveSessionEndpoint = "/retrieve-session"
	// stripeWebhookEndpoint receives signed Stripe events.
	stripeWebhookEndpoint = "/stripe-webhook"
)

const (
	// defaultGeoCountryHeader is set by the hosting platform's geo lookup.
	defaultGeoCountryHeader = "X-Vercel-IP-Country"
	// defaultCDNCountryHeader is set by the CDN in front of the service.
	defaultCDNCountryHeader = "CF-IPCountry"
)
