// Package apicommon contains the request/response types of the storefront
// API and small helpers shared by its handlers.
package apicommon

import (
	"github.com/noirwear/storefront-backend/catalog"
)

// CheckoutRequest is the create-checkout request body. Items carry no
// trusted pricing information, only ids and variant attributes.
type CheckoutRequest struct {
	Items []catalog.Item `json:"items"`
	// BasePath optionally overrides the redirect/image base for requests
	// coming from an allow-listed local development origin.
	BasePath string `json:"basePath,omitempty"`
	// HintCountry is the client's destination country hint, the last
	// fallback of the country detection.
	HintCountry string `json:"hintCountry,omitempty"`
}
