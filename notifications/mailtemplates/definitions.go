// Package mailtemplates provides the predefined email templates sent by the
// storefront, along with utilities for rendering their content.
package mailtemplates

import "github.com/noirwear/storefront-backend/notifications"

// OrderReceiptNotification is the notification sent to the customer when a
// checkout session completes. The data it is executed with is a
// stripe.ReceiptMailData; every monetary field arrives already formatted in
// display currency.
var OrderReceiptNotification = MailTemplate{
	File: "order_receipt",
	Placeholder: notifications.Notification{
		Subject: "Your NOIRWEAR order {{.OrderRef}}",
		PlainBody: `Thanks for your order{{if .CustomerName}}, {{.CustomerName}}{{end}}!

Order reference: {{.OrderRef}}

{{range .Items}}{{.Description}} x{{.Quantity}} ... {{.AmountTotal}}
{{end}}
Subtotal: {{.Subtotal}}
Shipping{{if .ShippingLabel}} ({{.ShippingLabel}}){{end}}: {{.Shipping}}
{{if .Discount}}Discount: -{{.Discount}}
{{end}}Tax: {{.Tax}}
Total: {{.Total}}
{{if .ShippingAddress}}
Shipping to:
{{.ShippingAddress}}
{{end}}
We will let you know as soon as your order ships.

NOIRWEAR`,
	},
}
