// Package queue defines message payloads exchanged over the message broker.
package queue

// PaymentCompletedEvent is published when a payment reaches a terminal
// state, whether through a webhook or a synchronously successful
// initiation.  It carries enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary database.
type PaymentCompletedEvent struct {
	BookingID     uint64 `json:"booking_id"`
	PropertyID    uint64 `json:"property_id"`
	UserID        uint64 `json:"user_id"`
	Provider      string `json:"provider"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
	AmountCents   uint64 `json:"amount_cents"`
	CompletedAt   string `json:"completed_at"`
}
