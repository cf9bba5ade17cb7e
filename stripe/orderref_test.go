package stripe

import (
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	stripeapi "github.com/stripe/stripe-go/v82"
)

func TestNewOrderRef(t *testing.T) {
	c := qt.New(t)

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ref := NewOrderRef(now)
	c.Assert(ref, qt.HasLen, len("NW-260314-XXXX"))
	c.Assert(strings.HasPrefix(ref, "NW-260314-"), qt.IsTrue)

	suffix := strings.TrimPrefix(ref, "NW-260314-")
	c.Assert(suffix, qt.HasLen, 4)
	for _, r := range suffix {
		c.Assert(strings.ContainsRune(refAlphabet, r), qt.IsTrue,
			qt.Commentf("suffix character %q outside alphabet", r))
	}

	// a second draw for the same instant should almost never collide
	refs := map[string]bool{}
	for i := 0; i < 50; i++ {
		refs[NewOrderRef(now)] = true
	}
	c.Assert(len(refs) > 1, qt.IsTrue)
}

func TestRecoverOrderRef(t *testing.T) {
	c := qt.New(t)

	// correlation field wins
	c.Assert(RecoverOrderRef(&stripeapi.CheckoutSession{
		ID:                "cs_test_a1B2c3D4e5F6",
		ClientReferenceID: "NW-260314-ABCD",
		Metadata:          map[string]string{"orderRef": "NW-260314-WXYZ"},
	}), qt.Equals, "NW-260314-ABCD")

	// then metadata
	c.Assert(RecoverOrderRef(&stripeapi.CheckoutSession{
		ID:       "cs_test_a1B2c3D4e5F6",
		Metadata: map[string]string{"orderRef": "NW-260314-WXYZ"},
	}), qt.Equals, "NW-260314-WXYZ")

	// then a synthetic reference from the session id tail
	c.Assert(RecoverOrderRef(&stripeapi.CheckoutSession{
		ID: "cs_test_a1B2c3D4e5F6",
	}), qt.Equals, "NW-C3D4E5F6")
}

func TestFirstNonEmpty(t *testing.T) {
	c := qt.New(t)

	c.Assert(FirstNonEmpty("", "  ", "x", "y"), qt.Equals, "x")
	c.Assert(FirstNonEmpty(), qt.Equals, "")
	c.Assert(FirstNonEmpty("", "\t"), qt.Equals, "")
}
