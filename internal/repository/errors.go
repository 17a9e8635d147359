// Package repository defines the storage collaborator behind the booking
// core: a transactional row-locking store plus the read-only category and
// property queries.  Sentinel errors declared here let the service layer
// distinguish absence from infrastructure failure without depending on a
// particular driver's error values.
package repository

import "errors"

// ErrPropertyNotFound is returned when no property row exists for the
// requested id.
var ErrPropertyNotFound = errors.New("property not found")

// ErrBookingNotFound is returned when no booking row exists for the
// requested id.
var ErrBookingNotFound = errors.New("booking not found")

// ErrPaymentNotFound is returned when a booking has no payment record
// yet.  Callers typically react by creating one (upsert semantics).
var ErrPaymentNotFound = errors.New("payment not found")
