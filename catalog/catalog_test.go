package catalog

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestCatalogLookup(t *testing.T) {
	c := qt.New(t)

	cat := New(DefaultEntries())
	c.Assert(cat.Len(), qt.Equals, len(DefaultEntries()))

	hoodie, ok := cat.Get("1")
	c.Assert(ok, qt.IsTrue)
	c.Assert(hoodie.Name, qt.Equals, "Classic Black Hoodie")
	c.Assert(hoodie.UnitAmount, qt.Equals, int64(4999))

	_, ok = cat.Get("999")
	c.Assert(ok, qt.IsFalse)
}

func TestCatalogDuplicateIDsKeepLast(t *testing.T) {
	c := qt.New(t)

	cat := New([]Entry{
		{ID: "x", Name: "first", UnitAmount: 100},
		{ID: "x", Name: "second", UnitAmount: 200},
	})
	c.Assert(cat.Len(), qt.Equals, 1)
	e, ok := cat.Get("x")
	c.Assert(ok, qt.IsTrue)
	c.Assert(e.Name, qt.Equals, "second")
	c.Assert(e.UnitAmount, qt.Equals, int64(200))
}
