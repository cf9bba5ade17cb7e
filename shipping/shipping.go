// Package shipping implements the deterministic shipping-rate selection
// policy: the destination country is detected from request hints with an
// ordered fallback, and the resulting country picks a fixed set of
// pre-created Stripe shipping rates.
package shipping

import (
	"strings"
)

// Config holds the shipping-rate identifiers and the policy knobs. All rate
// ids reference shipping rates created upfront in the Stripe dashboard.
type Config struct {
	// HomeCountry is the 2-letter code of the store's home market.
	HomeCountry string
	// RegionalCountries is the fixed set of countries served by the
	// regional rate.
	RegionalCountries []string
	// FreeShippingThreshold is the cart subtotal (minor units) from which
	// the free-shipping rate is offered on home-country orders. Zero
	// disables free shipping.
	FreeShippingThreshold int64

	StandardRateID      string
	ExpressRateID       string
	FreeRateID          string
	RegionalRateID      string
	InternationalRateID string
}

// Hints carries the request attributes the country detection looks at, in
// priority order: a platform geo header, a CDN country header and finally a
// client-supplied hint.
type Hints struct {
	GeoHeader  string
	CDNHeader  string
	ClientHint string
}

// DetectCountry returns the first hint that looks like a 2-letter country
// code, upper-cased, or empty when none resolves.
func DetectCountry(h Hints) string {
	for _, candidate := range []string{h.GeoHeader, h.CDNHeader, h.ClientHint} {
		candidate = strings.ToUpper(strings.TrimSpace(candidate))
		if len(candidate) == 2 && isAlpha(candidate) {
			return candidate
		}
	}
	return ""
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// RatesFor returns the shipping-rate ids to offer for the given destination
// country and cart subtotal.
//
// Home country gets standard+express, plus the free rate once the subtotal
// reaches the threshold. Countries in the regional set get the regional
// rate, anything else resolvable gets the international rate. An empty
// country cannot be priced, so every rate is offered (permissive dev-mode
// fallback).
func (c *Config) RatesFor(country string, subtotal int64) []string {
	switch {
	case country == "":
		return dropEmpty([]string{
			c.StandardRateID, c.ExpressRateID, c.FreeRateID,
			c.RegionalRateID, c.InternationalRateID,
		})
	case strings.EqualFold(country, c.HomeCountry):
		rates := []string{c.StandardRateID, c.ExpressRateID}
		if c.FreeShippingThreshold > 0 && subtotal >= c.FreeShippingThreshold {
			rates = append(rates, c.FreeRateID)
		}
		return dropEmpty(rates)
	case c.isRegional(country):
		return dropEmpty([]string{c.RegionalRateID})
	default:
		return dropEmpty([]string{c.InternationalRateID})
	}
}

func (c *Config) isRegional(country string) bool {
	for _, r := range c.RegionalCountries {
		if strings.EqualFold(r, country) {
			return true
		}
	}
	return false
}

func dropEmpty(ids []string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
