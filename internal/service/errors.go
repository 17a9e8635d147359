// Package service implements the booking core: concurrency-safe
// reservation, payment orchestration with webhook reconciliation, and
// the cached category subtree queries.  Sentinel errors declared here
// are the full taxonomy handlers translate into HTTP responses; all of
// them are recoverable validation failures, never retried internally.
package service

import "errors"

// ErrPropertyNotFound is returned by Reserve when the property does not
// exist.  Handlers should translate this into an HTTP 404 response.
var ErrPropertyNotFound = errors.New("property not found")

// ErrPropertyNotActive is returned by Reserve when the property is not
// in the ACTIVE lifecycle state.  Handlers should translate this into
// an HTTP 409 response.
var ErrPropertyNotActive = errors.New("property is not active")

// ErrPropertyUnavailable is returned by Reserve when the property has
// already been claimed by a booking.  Under concurrent reservation
// attempts every caller except the winner observes this error.
// Handlers should translate this into an HTTP 409 response.
var ErrPropertyUnavailable = errors.New("property is not available for booking")

// ErrBookingNotFound is returned by InitiatePayment when the booking
// does not exist.  Handlers should translate this into an HTTP 404
// response.
var ErrBookingNotFound = errors.New("booking not found")

// ErrAlreadyPaid is returned by InitiatePayment when the booking is
// already PAID.  The payment record is left untouched.  Handlers should
// translate this into an HTTP 409 response.
var ErrAlreadyPaid = errors.New("booking already paid")

// ErrUnsupportedProvider is returned by InitiatePayment for an unknown
// provider identifier.  No payment row is created or mutated.  Handlers
// should translate this into an HTTP 400 response.
var ErrUnsupportedProvider = errors.New("unsupported payment provider")

// ErrMissingCategory is returned by Recommended when no category id was
// supplied.  Handlers should translate this into an HTTP 400 response.
var ErrMissingCategory = errors.New("category id is required")
