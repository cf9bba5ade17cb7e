package stripe

import (
	"fmt"
	"strings"

	stripeapi "github.com/stripe/stripe-go/v82"
)

// ReceiptItem is one line of the receipt payload. Amounts are integer minor
// units.
type ReceiptItem struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitAmount  int64  `json:"unitAmount"`
	AmountTotal int64  `json:"amountTotal"`
	Currency    string `json:"currency"`
	Image       string `json:"image,omitempty"`
}

// Receipt is the UI-facing view of a fetched checkout session. It is derived
// on every read and never persisted. Absent session fields map to zero
// values, a partially populated session never fails the mapping.
type Receipt struct {
	OrderRef        string        `json:"orderRef"`
	Status          string        `json:"status"`
	CustomerName    string        `json:"customerName,omitempty"`
	CustomerEmail   string        `json:"customerEmail,omitempty"`
	Currency        string        `json:"currency"`
	Items           []ReceiptItem `json:"items"`
	Subtotal        int64         `json:"subtotal"`
	ShippingAmount  int64         `json:"shippingAmount"`
	ShippingLabel   string        `json:"shippingLabel,omitempty"`
	Tax             int64         `json:"tax"`
	Discount        int64         `json:"discount"`
	Total           int64         `json:"total"`
	ShippingAddress string        `json:"shippingAddress,omitempty"`
}

// buildReceipt reshapes an expanded checkout session into a Receipt. Every
// dereference is guarded, Stripe omits most of these fields for incomplete
// or minimal sessions.
func buildReceipt(session *stripeapi.CheckoutSession) *Receipt {
	r := &Receipt{
		OrderRef: RecoverOrderRef(session),
		Status:   string(session.Status),
		Currency: string(session.Currency),
		Subtotal: session.AmountSubtotal,
		Total:    session.AmountTotal,
	}
	if session.CustomerDetails != nil {
		r.CustomerName = session.CustomerDetails.Name
		r.CustomerEmail = session.CustomerDetails.Email
	}
	if session.TotalDetails != nil {
		r.Tax = session.TotalDetails.AmountTax
		r.Discount = session.TotalDetails.AmountDiscount
		r.ShippingAmount = session.TotalDetails.AmountShipping
	}
	if session.ShippingCost != nil {
		r.ShippingAmount = session.ShippingCost.AmountTotal
		if session.ShippingCost.ShippingRate != nil {
			r.ShippingLabel = session.ShippingCost.ShippingRate.DisplayName
		}
	}
	r.ShippingAddress = shippingAddressBlock(session)

	if session.LineItems != nil {
		for _, li := range session.LineItems.Data {
			item := ReceiptItem{
				Description: li.Description,
				Quantity:    li.Quantity,
				AmountTotal: li.AmountTotal,
				Currency:    string(li.Currency),
			}
			if li.Price != nil {
				item.UnitAmount = li.Price.UnitAmount
				if li.Price.Product != nil && len(li.Price.Product.Images) > 0 {
					item.Image = li.Price.Product.Images[0]
				}
			}
			r.Items = append(r.Items, item)
		}
	}
	return r
}

// shippingAddressBlock renders the shipping address as display lines. The
// shipping details collected by the session win over the billing details.
func shippingAddressBlock(session *stripeapi.CheckoutSession) string {
	var name string
	var addr *stripeapi.Address
	if ci := session.CollectedInformation; ci != nil && ci.ShippingDetails != nil {
		name = ci.ShippingDetails.Name
		addr = ci.ShippingDetails.Address
	}
	if addr == nil && session.CustomerDetails != nil {
		name = session.CustomerDetails.Name
		addr = session.CustomerDetails.Address
	}
	if addr == nil {
		return ""
	}
	lines := []string{name, addr.Line1, addr.Line2,
		strings.TrimSpace(fmt.Sprintf("%s %s", addr.City, addr.PostalCode)),
		addr.State, addr.Country}
	var out []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// currencySymbols maps the currencies the store sells in to their display
// symbol. Anything else falls back to the upper-cased ISO code.
var currencySymbols = map[string]string{
	"gbp": "£",
	"usd": "$",
	"eur": "€",
}

// FormatAmount renders an integer minor-unit amount in display currency,
// e.g. FormatAmount(4999, "gbp") == "£49.99".
func FormatAmount(minor int64, currency string) string {
	symbol, ok := currencySymbols[strings.ToLower(currency)]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, minor/100, minor%100)
}

// ReceiptMailItem is one itemized line of the receipt email.
type ReceiptMailItem struct {
	Description string
	Quantity    int64
	AmountTotal string
}

// ReceiptMailData is the data the receipt email templates are executed
// with. Monetary fields arrive pre-formatted in display currency; Discount
// stays empty when no discount applied so templates can elide the row.
type ReceiptMailData struct {
	OrderRef        string
	CustomerName    string
	Items           []ReceiptMailItem
	Subtotal        string
	Shipping        string
	ShippingLabel   string
	Tax             string
	Discount        string
	Total           string
	ShippingAddress string
}

// receiptMailData converts a receipt into the template data for the order
// confirmation email.
func receiptMailData(r *Receipt) ReceiptMailData {
	data := ReceiptMailData{
		OrderRef:        r.OrderRef,
		CustomerName:    r.CustomerName,
		Subtotal:        FormatAmount(r.Subtotal, r.Currency),
		Shipping:        FormatAmount(r.ShippingAmount, r.Currency),
		ShippingLabel:   r.ShippingLabel,
		Tax:             FormatAmount(r.Tax, r.Currency),
		Total:           FormatAmount(r.Total, r.Currency),
		ShippingAddress: r.ShippingAddress,
	}
	if r.Discount > 0 {
		data.Discount = FormatAmount(r.Discount, r.Currency)
	}
	for _, item := range r.Items {
		data.Items = append(data.Items, ReceiptMailItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			AmountTotal: FormatAmount(item.AmountTotal, item.Currency),
		})
	}
	return data
}
