package catalog

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Item is a client-supplied cart line. Everything in it is untrusted: the
// quantity is clamped, the id is resolved against the catalog and any price
// the client might send is ignored. Quantity is declared as `any` because
// front ends send it both as a JSON number and as a string.
type Item struct {
	ID       string `json:"id"`
	Quantity any    `json:"quantity"`
	Size     string `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
	Image    string `json:"image,omitempty"`
}

// PricedLine is a cart line after catalog resolution, ready to be turned
// into a checkout session line item.
type PricedLine struct {
	ID         string
	Name       string
	UnitAmount int64
	Quantity   int64
	ImageURL   string
}

// ParseQuantity normalizes a client-supplied quantity. Absent, non-numeric
// or non-positive values are treated as 1.
func ParseQuantity(v any) int64 {
	var q int64
	switch n := v.(type) {
	case nil:
		q = 1
	case float64:
		q = int64(n)
	case int:
		q = int64(n)
	case int64:
		q = n
	case json.Number:
		parsed, err := n.Int64()
		if err != nil {
			return 1
		}
		q = parsed
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 1
		}
		q = parsed
	default:
		q = 1
	}
	if q < 1 {
		return 1
	}
	return q
}

// DisplayName builds the line item name shown on the Stripe checkout page,
// appending the non-empty variant attributes joined by " / ".
func DisplayName(name, size, color string) string {
	var variants []string
	if size = strings.TrimSpace(size); size != "" {
		variants = append(variants, size)
	}
	if color = strings.TrimSpace(color); color != "" {
		variants = append(variants, color)
	}
	if len(variants) == 0 {
		return name
	}
	return fmt.Sprintf("%s - %s", name, strings.Join(variants, " / "))
}

// ResolveImage turns a possibly relative image reference into an absolute
// URL against the given base. Absolute references pass through untouched,
// anything unparseable resolves to empty.
func ResolveImage(image, base string) string {
	image = strings.TrimSpace(image)
	if image == "" {
		return ""
	}
	ref, err := url.Parse(image)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	baseURL, err := url.Parse(base)
	if err != nil || !baseURL.IsAbs() {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}

// Price resolves every cart line against the catalog and computes the cart
// subtotal in minor units using integer arithmetic only. It fails with
// ErrNotFound if any line references an unknown product id.
func (c *Catalog) Price(items []Item, imageBase string) ([]PricedLine, int64, error) {
	lines := make([]PricedLine, 0, len(items))
	var subtotal int64
	for _, it := range items {
		entry, ok := c.Get(it.ID)
		if !ok {
			return nil, 0, fmt.Errorf("%w: id %q", ErrNotFound, it.ID)
		}
		quantity := ParseQuantity(it.Quantity)
		image := it.Image
		if image == "" {
			image = entry.Image
		}
		lines = append(lines, PricedLine{
			ID:         entry.ID,
			Name:       DisplayName(entry.Name, it.Size, it.Color),
			UnitAmount: entry.UnitAmount,
			Quantity:   quantity,
			ImageURL:   ResolveImage(image, imageBase),
		})
		subtotal += entry.UnitAmount * quantity
	}
	return lines, subtotal, nil
}
