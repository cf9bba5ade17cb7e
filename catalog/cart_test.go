package catalog

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestParseQuantity(t *testing.T) {
	c := qt.New(t)

	// front ends send quantities as numbers, strings or not at all
	c.Assert(ParseQuantity(nil), qt.Equals, int64(1))
	c.Assert(ParseQuantity(float64(3)), qt.Equals, int64(3))
	c.Assert(ParseQuantity(2), qt.Equals, int64(2))
	c.Assert(ParseQuantity(int64(5)), qt.Equals, int64(5))
	c.Assert(ParseQuantity(json.Number("4")), qt.Equals, int64(4))
	c.Assert(ParseQuantity("7"), qt.Equals, int64(7))
	c.Assert(ParseQuantity(" 2 "), qt.Equals, int64(2))

	// garbage and non-positive values clamp to 1
	c.Assert(ParseQuantity("abc"), qt.Equals, int64(1))
	c.Assert(ParseQuantity(""), qt.Equals, int64(1))
	c.Assert(ParseQuantity(0), qt.Equals, int64(1))
	c.Assert(ParseQuantity(-3), qt.Equals, int64(1))
	c.Assert(ParseQuantity(float64(-1)), qt.Equals, int64(1))
	c.Assert(ParseQuantity(json.Number("nope")), qt.Equals, int64(1))
	c.Assert(ParseQuantity(true), qt.Equals, int64(1))
}

func TestDisplayName(t *testing.T) {
	c := qt.New(t)

	c.Assert(DisplayName("Classic Black Hoodie", "", ""), qt.Equals, "Classic Black Hoodie")
	c.Assert(DisplayName("Classic Black Hoodie", "M", ""), qt.Equals, "Classic Black Hoodie - M")
	c.Assert(DisplayName("Classic Black Hoodie", "", "Black"), qt.Equals, "Classic Black Hoodie - Black")
	c.Assert(DisplayName("Classic Black Hoodie", "M", "Black"), qt.Equals, "Classic Black Hoodie - M / Black")
	c.Assert(DisplayName("Classic Black Hoodie", "  ", " "), qt.Equals, "Classic Black Hoodie")
}

func TestResolveImage(t *testing.T) {
	c := qt.New(t)

	const base = "https://noirwear.shop"
	c.Assert(ResolveImage("/images/p.jpg", base), qt.Equals, "https://noirwear.shop/images/p.jpg")
	c.Assert(ResolveImage("https://cdn.example.com/p.jpg", base), qt.Equals, "https://cdn.example.com/p.jpg")
	c.Assert(ResolveImage("", base), qt.Equals, "")
	c.Assert(ResolveImage("/images/p.jpg", "not a url"), qt.Equals, "")
	c.Assert(ResolveImage("%zz", base), qt.Equals, "")
}

func TestPriceTrustsCatalogOnly(t *testing.T) {
	c := qt.New(t)

	cat := New(DefaultEntries())
	lines, subtotal, err := cat.Price([]Item{
		{ID: "1", Quantity: float64(2), Size: "M", Color: "Black"},
		{ID: "5", Quantity: "3"},
	}, "https://noirwear.shop")
	c.Assert(err, qt.IsNil)
	c.Assert(lines, qt.HasLen, 2)

	// 2x4999 + 3x999, integer arithmetic in minor units
	c.Assert(subtotal, qt.Equals, int64(12995))

	c.Assert(lines[0].Name, qt.Equals, "Classic Black Hoodie - M / Black")
	c.Assert(lines[0].UnitAmount, qt.Equals, int64(4999))
	c.Assert(lines[0].Quantity, qt.Equals, int64(2))
	c.Assert(lines[0].ImageURL, qt.Equals, "https://noirwear.shop/images/products/black-hoodie.jpg")

	c.Assert(lines[1].Quantity, qt.Equals, int64(3))
}

func TestPriceUnknownProduct(t *testing.T) {
	c := qt.New(t)

	cat := New(DefaultEntries())
	_, _, err := cat.Price([]Item{{ID: "1"}, {ID: "999"}}, "")
	c.Assert(err, qt.ErrorIs, ErrNotFound)
}

func TestPriceClientImageOverride(t *testing.T) {
	c := qt.New(t)

	cat := New(DefaultEntries())
	lines, _, err := cat.Price([]Item{
		{ID: "2", Image: "/images/alt/white-tee-front.jpg"},
	}, "https://noirwear.shop")
	c.Assert(err, qt.IsNil)
	c.Assert(lines[0].ImageURL, qt.Equals, "https://noirwear.shop/images/alt/white-tee-front.jpg")
}
