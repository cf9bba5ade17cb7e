// Package catalog holds the static product catalog and the cart pricing
// logic. Prices are kept in minor currency units (pence) and are always
// resolved from the catalog, never taken from the client.
package catalog

import (
	"fmt"
)

// Entry represents a single sellable product. UnitAmount is the price of one
// unit in minor currency units.
type Entry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UnitAmount int64  `json:"unitAmount"`
	Image      string `json:"image,omitempty"`
}

// ErrNotFound is returned when a cart line references an id that is not in
// the catalog.
var ErrNotFound = fmt.Errorf("product not found in catalog")

// Catalog is an immutable product lookup table keyed by product id. It is
// built once at process start and shared read-only by all requests.
type Catalog struct {
	entries map[string]Entry
}

// New creates a catalog from the given entries. Duplicate ids keep the last
// entry.
func New(entries []Entry) *Catalog {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return &Catalog{entries: m}
}

// Get returns the catalog entry for the given product id.
func (c *Catalog) Get(id string) (Entry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// DefaultEntries returns the built-in storefront catalog. It can be replaced
// at startup via configuration.
func DefaultEntries() []Entry {
	return []Entry{
		{ID: "1", Name: "Classic Black Hoodie", UnitAmount: 4999, Image: "/images/products/black-hoodie.jpg"},
		{ID: "2", Name: "Classic White Tee", UnitAmount: 2499, Image: "/images/products/white-tee.jpg"},
		{ID: "3", Name: "Monogram Cap", UnitAmount: 1999, Image: "/images/products/monogram-cap.jpg"},
		{ID: "4", Name: "Oversized Crewneck", UnitAmount: 5999, Image: "/images/products/oversized-crewneck.jpg"},
		{ID: "5", Name: "Logo Socks", UnitAmount: 999, Image: "/images/products/logo-socks.jpg"},
	}
}
