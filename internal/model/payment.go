package model

import (
	"encoding/json"
	"time"
)

// PaymentProvider identifies the external payment provider handling a
// payment.  Adding a provider means registering a new strategy; the
// orchestration code never changes.
type PaymentProvider string

const (
	PaymentProviderStripe PaymentProvider = "STRIPE"
	PaymentProviderBkash  PaymentProvider = "BKASH"
)

// PaymentStatus enumerates payment states.  SUCCESS and FAILED are
// terminal for the record, though webhook redelivery may rewrite them
// idempotently.
type PaymentStatus string

const (
	PaymentStatusInitiated PaymentStatus = "INITIATED"
	PaymentStatusSuccess   PaymentStatus = "SUCCESS"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment is the financial-transaction record tied one-to-one to a
// booking.  The first initiation attempt creates it; later attempts and
// webhook deliveries mutate the same row (upsert keyed by booking id).
// RawResponse keeps the provider's payload verbatim for audit.
//
// Fields:
//  ID            – primary key identifier.
//  BookingID     – booking this payment belongs to (unique).
//  Provider      – provider handling the payment (STRIPE, BKASH).
//  Status        – payment state (INITIATED, SUCCESS, FAILED).
//  TransactionID – provider transaction reference, if any.
//  RawResponse   – opaque provider payload as JSON.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Payment struct {
	ID            uint64          `json:"id"`             // payments.id
	BookingID     uint64          `json:"booking_id"`     // payments.booking_id (unique)
	Provider      PaymentProvider `json:"provider"`       // payments.provider
	Status        PaymentStatus   `json:"status"`         // payments.status
	TransactionID *string         `json:"transaction_id"` // payments.transaction_id (nullable)
	RawResponse   json.RawMessage `json:"raw_response"`   // payments.raw_response (JSON column)
	CreatedAt     time.Time       `json:"created_at"`     // payments.created_at
	UpdatedAt     time.Time       `json:"updated_at"`     // payments.updated_at
}
