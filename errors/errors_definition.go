// Package errors provides custom error types and definitions for the application.
//
//nolint:lll
package errors

import (
	"fmt"
	"net/http"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the client's fault,
// and they return HTTP Status 400 or 404, whatever is most appropriate.
//
// Error codes 50001-59999 are the server's (or an upstream's) fault
// and they return HTTP Status 500 or 503.
//
// NEVER change any of the current error codes, only append new errors after
// the current last 4XXX or 5XXX. Gaps in the sequence belong to retired
// errors and must not be reused.
var (
	// Validation errors (400)
	ErrMalformedBody     = Error{Code: 40001, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid JSON request body")}
	ErrEmptyCart         = Error{Code: 40002, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("cart items are required")}
	ErrMalformedURLParam = Error{Code: 40003, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid URL parameter")}

	// Webhook authentication errors (400, fail closed)
	ErrInvalidSignature = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("webhook signature verification failed"), LogLevel: "warn"}

	// Server errors (500)
	// ErrUnknownProduct is reported as a server error because a well-formed
	// front end can never send an id outside the catalog. See DESIGN.md.
	ErrUnknownProduct = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("product not found in catalog"), LogLevel: "error"}
	ErrStripeError    = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: payment processing failed"), LogLevel: "error"}
	ErrSessionFetch   = Error{Code: 50003, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: could not retrieve checkout session"), LogLevel: "error"}
	ErrInternal       = Error{Code: 50004, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: operation failed"), LogLevel: "error"}
)
