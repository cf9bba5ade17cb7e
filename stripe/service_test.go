package stripe

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	stripeapi "github.com/stripe/stripe-go/v82"

	"github.com/noirwear/storefront-backend/catalog"
	"github.com/noirwear/storefront-backend/errors"
	"github.com/noirwear/storefront-backend/notifications"
	"github.com/noirwear/storefront-backend/shipping"
)

// fakeSessionAPI implements sessionAPI in-memory, recording the parameters
// of every call.
type fakeSessionAPI struct {
	created     *SessionParams
	createResp  *stripeapi.CheckoutSession
	createErr   error
	session     *stripeapi.CheckoutSession
	getErr      error
	fetchedID   string
	event       *stripeapi.Event
	validateErr error
}

func (f *fakeSessionAPI) CreateCheckoutSession(params *SessionParams) (*stripeapi.CheckoutSession, error) {
	f.created = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResp, nil
}

func (f *fakeSessionAPI) GetCheckoutSession(sessionID string) (*stripeapi.CheckoutSession, error) {
	f.fetchedID = sessionID
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.session, nil
}

func (f *fakeSessionAPI) ValidateWebhookEvent([]byte, string) (*stripeapi.Event, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return f.event, nil
}

func testShippingConfig() *shipping.Config {
	return &shipping.Config{
		HomeCountry:           "GB",
		RegionalCountries:     []string{"IE", "FR"},
		FreeShippingThreshold: 10000,
		StandardRateID:        "shr_standard",
		ExpressRateID:         "shr_express",
		FreeRateID:            "shr_free",
		RegionalRateID:        "shr_regional",
		InternationalRateID:   "shr_international",
	}
}

func newTestService(fake *fakeSessionAPI, mail notifications.NotificationService) *Service {
	return &Service{
		client: fake,
		config: &Config{
			APIKey:           "sk_test_123",
			WebhookSecret:    "whsec_test_123",
			SiteURL:          "https://noirwear.shop",
			DevOrigins:       []string{"http://localhost:5173"},
			Currency:         "gbp",
			ReceiptCCAddress: "orders@noirwear.shop",
		},
		catalog:  catalog.New(catalog.DefaultEntries()),
		shipping: testShippingConfig(),
		mail:     mail,
	}
}

func assertAPIError(c *qt.C, err error, code int) {
	c.Assert(err, qt.IsNotNil)
	var apiErr errors.Error
	c.Assert(stderrors.As(err, &apiErr), qt.IsTrue, qt.Commentf("got %T: %v", err, err))
	c.Assert(apiErr.Code, qt.Equals, code)
}

func TestCreateCheckout(t *testing.T) {
	c := qt.New(t)

	fake := &fakeSessionAPI{createResp: &stripeapi.CheckoutSession{
		ID:  "cs_test_123",
		URL: "https://checkout.stripe.com/c/pay/cs_test_123",
	}}
	svc := newTestService(fake, nil)

	result, err := svc.CreateCheckout(&CheckoutRequest{
		Items: []catalog.Item{
			{ID: "1", Quantity: float64(2), Size: "M"},
			{ID: "5", Quantity: "3"},
		},
		GeoCountry: "GB",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(result.SessionID, qt.Equals, "cs_test_123")
	c.Assert(result.URL, qt.Equals, "https://checkout.stripe.com/c/pay/cs_test_123")
	c.Assert(strings.HasPrefix(result.OrderRef, "NW-"), qt.IsTrue)

	c.Assert(fake.created, qt.IsNotNil)
	c.Assert(fake.created.OrderRef, qt.Equals, result.OrderRef)
	c.Assert(fake.created.SuccessURL, qt.Equals,
		"https://noirwear.shop/success?session_id={CHECKOUT_SESSION_ID}")
	c.Assert(fake.created.CancelURL, qt.Equals, "https://noirwear.shop/cart")
	// 2x4999 + 3x999 = 12995, over the free-shipping threshold
	c.Assert(fake.created.ShippingRates, qt.DeepEquals,
		[]string{"shr_standard", "shr_express", "shr_free"})
	c.Assert(fake.created.Lines, qt.HasLen, 2)
	c.Assert(fake.created.Lines[0].UnitAmount, qt.Equals, int64(4999))
	c.Assert(fake.created.CartSummary, qt.Contains, `"id":"1"`)
	c.Assert(fake.created.CartSummary, qt.Contains, `"qty":3`)
}

func TestCreateCheckoutEmptyCart(t *testing.T) {
	c := qt.New(t)

	svc := newTestService(&fakeSessionAPI{}, nil)
	_, err := svc.CreateCheckout(&CheckoutRequest{})
	assertAPIError(c, err, errors.ErrEmptyCart.Code)
}

func TestCreateCheckoutUnknownProduct(t *testing.T) {
	c := qt.New(t)

	svc := newTestService(&fakeSessionAPI{}, nil)
	_, err := svc.CreateCheckout(&CheckoutRequest{
		Items: []catalog.Item{{ID: "nope"}},
	})
	assertAPIError(c, err, errors.ErrUnknownProduct.Code)
}

func TestCreateCheckoutStripeFailure(t *testing.T) {
	c := qt.New(t)

	fake := &fakeSessionAPI{
		createErr: NewStripeError(CodeAPICallFailed, "boom", fmt.Errorf("api down")),
	}
	svc := newTestService(fake, nil)
	_, err := svc.CreateCheckout(&CheckoutRequest{
		Items: []catalog.Item{{ID: "1"}},
	})
	assertAPIError(c, err, errors.ErrStripeError.Code)
}

func TestCreateCheckoutDevOriginBase(t *testing.T) {
	c := qt.New(t)

	fake := &fakeSessionAPI{createResp: &stripeapi.CheckoutSession{ID: "cs_x", URL: "https://x"}}
	svc := newTestService(fake, nil)

	// a recognized dev origin may move the redirect base
	_, err := svc.CreateCheckout(&CheckoutRequest{
		Items:    []catalog.Item{{ID: "1"}},
		Origin:   "http://localhost:5173",
		BasePath: "/shop",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(fake.created.SuccessURL, qt.Equals,
		"http://localhost:5173/shop/success?session_id={CHECKOUT_SESSION_ID}")
	c.Assert(fake.created.CancelURL, qt.Equals, "http://localhost:5173/shop/cart")

	// an unknown origin cannot: the configured site URL stays in charge
	_, err = svc.CreateCheckout(&CheckoutRequest{
		Items:    []catalog.Item{{ID: "1"}},
		Origin:   "https://evil.example.com",
		BasePath: "https://evil.example.com",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(fake.created.CancelURL, qt.Equals, "https://noirwear.shop/cart")
}

func TestReceipt(t *testing.T) {
	c := qt.New(t)

	fake := &fakeSessionAPI{session: completedTestSession()}
	svc := newTestService(fake, nil)

	receipt, err := svc.Receipt("cs_test_a1B2c3D4e5F6")
	c.Assert(err, qt.IsNil)
	c.Assert(fake.fetchedID, qt.Equals, "cs_test_a1B2c3D4e5F6")
	c.Assert(receipt.OrderRef, qt.Equals, "NW-260314-ABCD")
	c.Assert(receipt.Total, qt.Equals, int64(13790))
}

func TestReceiptFetchFailure(t *testing.T) {
	c := qt.New(t)

	fake := &fakeSessionAPI{
		getErr: NewStripeError(CodeAPICallFailed, "boom", fmt.Errorf("no such session")),
	}
	svc := newTestService(fake, nil)
	_, err := svc.Receipt("cs_missing")
	assertAPIError(c, err, errors.ErrSessionFetch.Code)
}

func TestNewServiceValidation(t *testing.T) {
	c := qt.New(t)

	cat := catalog.New(catalog.DefaultEntries())
	ship := testShippingConfig()

	_, err := NewService(nil, cat, ship, nil)
	c.Assert(err, qt.IsNotNil)

	_, err = NewService(&Config{}, cat, ship, nil)
	c.Assert(err, qt.IsNotNil)

	conf := &Config{
		APIKey:        "sk_test_123",
		WebhookSecret: "whsec_test_123",
		SiteURL:       "https://noirwear.shop",
	}
	_, err = NewService(conf, catalog.New(nil), ship, nil)
	c.Assert(err, qt.IsNotNil)

	svc, err := NewService(conf, cat, ship, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(svc, qt.IsNotNil)
	c.Assert(conf.Currency, qt.Equals, "gbp")
}
