package stripe

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	stripeapi "github.com/stripe/stripe-go/v82"
)

// orderRefPrefix prefixes every order reference handed to customers.
const orderRefPrefix = "NW-"

// refAlphabet excludes characters that read ambiguously over the phone.
const refAlphabet = "ABCDEFGHJKMNPQRSTVWXYZ23456789"

// NewOrderRef generates a human-readable order reference: prefix, order
// date and a random 4-character suffix. Uniqueness is statistical, which is
// enough for a correlation id that also lives in the session metadata.
func NewOrderRef(now time.Time) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// time-derived suffix rather than aborting a checkout
		return fmt.Sprintf("%s%s-%04d", orderRefPrefix, now.Format("060102"), now.UnixNano()%10000)
	}
	for i, b := range buf {
		buf[i] = refAlphabet[int(b)%len(refAlphabet)]
	}
	return fmt.Sprintf("%s%s-%s", orderRefPrefix, now.Format("060102"), string(buf))
}

// RecoverOrderRef derives the order reference from a fetched session using
// the ordered fallback: correlation field, then metadata, then a synthetic
// reference from the tail of the session id. A session created by this
// service always resolves through the first two.
func RecoverOrderRef(session *stripeapi.CheckoutSession) string {
	return FirstNonEmpty(
		session.ClientReferenceID,
		session.Metadata["orderRef"],
		syntheticOrderRef(session.ID),
	)
}

func syntheticOrderRef(sessionID string) string {
	const tailLen = 8
	tail := sessionID
	if len(tail) > tailLen {
		tail = tail[len(tail)-tailLen:]
	}
	return orderRefPrefix + strings.ToUpper(tail)
}

// FirstNonEmpty returns the first candidate that is not blank.
func FirstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}
