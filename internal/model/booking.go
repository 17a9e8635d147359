package model

import "time"

// BookingStatus enumerates booking lifecycle states.  A booking is
// created PENDING and leaves that state only through the payment flow.
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "PENDING"
	BookingStatusPaid     BookingStatus = "PAID"
	BookingStatusCanceled BookingStatus = "CANCELED"
)

// Booking records a user's claim on a property.  TotalAmountCents is a
// snapshot of the property price at reservation time and never changes
// afterwards.  Bookings are append-only history; they are never deleted.
//
// Fields:
//  ID               – primary key identifier.
//  UserID           – user who made the booking.
//  PropertyID       – property being booked.
//  TotalAmountCents – price snapshot in cents.
//  Status           – booking state (PENDING, PAID, CANCELED).
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Booking struct {
	ID               uint64        `json:"id"`                 // bookings.id
	UserID           uint64        `json:"user_id"`            // bookings.user_id
	PropertyID       uint64        `json:"property_id"`        // bookings.property_id
	TotalAmountCents uint64        `json:"total_amount_cents"` // bookings.total_amount_cents
	Status           BookingStatus `json:"status"`             // bookings.status
	CreatedAt        time.Time     `json:"created_at"`         // bookings.created_at
	UpdatedAt        time.Time     `json:"updated_at"`         // bookings.updated_at
}
