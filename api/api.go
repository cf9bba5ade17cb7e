// Package api provides the HTTP surface of the storefront backend: three
// stateless endpoints gluing the static front end to Stripe checkout and
// the receipt email flow.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.vocdoni.io/dvote/log"

	"github.com/noirwear/storefront-backend/stripe"
)

// CheckoutService is the interface the API needs from the payments service.
type CheckoutService interface {
	CreateCheckout(*stripe.CheckoutRequest) (*stripe.CheckoutResult, error)
	Receipt(sessionID string) (*stripe.Receipt, error)
	HandleWebhookEvent(payload []byte, signatureHeader string) error
}

// Config is the API server configuration.
type Config struct {
	Host string
	Port int
	// AllowedOrigins is the CORS allow-list: the production storefront
	// origin plus any local development origins.
	AllowedOrigins []string
	// Checkout handles the three storefront operations.
	Checkout CheckoutService
	// GeoCountryHeader and CDNCountryHeader name the headers inspected for
	// the destination country. Empty values pick the platform defaults.
	GeoCountryHeader string
	CDNCountryHeader string
}

// API type represents the storefront API HTTP server.
type API struct {
	host           string
	port           int
	allowedOrigins []string
	checkout       CheckoutService
	geoHeader      string
	cdnHeader      string
	router         *chi.Mux
}

// New creates a new API HTTP server. It does not start the server, use
// Start() for that.
func New(conf *Config) *API {
	if conf == nil {
		return nil
	}
	geoHeader := conf.GeoCountryHeader
	if geoHeader == "" {
		geoHeader = defaultGeoCountryHeader
	}
	cdnHeader := conf.CDNCountryHeader
	if cdnHeader == "" {
		cdnHeader = defaultCDNCountryHeader
	}
	return &API{
		host:           conf.Host,
		port:           conf.Port,
		allowedOrigins: conf.AllowedOrigins,
		checkout:       conf.Checkout,
		geoHeader:      geoHeader,
		cdnHeader:      cdnHeader,
	}
}

// Start starts the API HTTP server (non blocking).
func (a *API) Start() {
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", a.host, a.port), a.initRouter()); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   a.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Throttle(100))
	r.Use(middleware.Timeout(45 * time.Second))

	r.Get(pingEndpoint, func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(".")); err != nil {
			log.Warnw("failed to write ping response", "error", err)
		}
	})
	// create a checkout session from a cart
	log.Infow("new route", "method", "POST", "path", createCheckoutEndpoint)
	r.Post(createCheckoutEndpoint, a.createCheckoutHandler)
	// retrieve the receipt view of a session
	log.Infow("new route", "method", "GET", "path", retrieveSessionEndpoint)
	r.Get(retrieveSessionEndpoint, a.retrieveSessionHandler)
	// handle signed Stripe events
	log.Infow("new route", "method", "POST", "path", stripeWebhookEndpoint)
	r.Post(stripeWebhookEndpoint, a.stripeWebhookHandler)

	a.router = r
	return r
}
