package model

import "time"

// PropertyStatus enumerates the lifecycle states of a property listing.
// Only ACTIVE properties may be reserved.
type PropertyStatus string

const (
	PropertyStatusDraft    PropertyStatus = "DRAFT"
	PropertyStatusActive   PropertyStatus = "ACTIVE"
	PropertyStatusInactive PropertyStatus = "INACTIVE"
)

// Property is a bookable listing.  Availability is a separate flag from
// the lifecycle status: a listing leaves the market the moment a booking
// is created for it, while its status is managed by the listing owner.
//
// Fields:
//  ID          – primary key identifier.
//  CategoryID  – category the listing is tagged with.
//  Title       – listing title.
//  Slug        – URL-friendly unique title.
//  Location    – free-form location string.
//  PriceCents  – listing price in cents.
//  Status      – lifecycle state (DRAFT, ACTIVE, INACTIVE).
//  IsAvailable – false once a booking claims the listing.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Property struct {
	ID          uint64         `json:"id"`           // properties.id
	CategoryID  uint64         `json:"category_id"`  // properties.category_id
	Title       string         `json:"title"`        // properties.title
	Slug        string         `json:"slug"`         // properties.slug
	Location    string         `json:"location"`     // properties.location
	PriceCents  uint64         `json:"price_cents"`  // properties.price_cents
	Status      PropertyStatus `json:"status"`       // properties.status
	IsAvailable bool           `json:"is_available"` // properties.is_available
	CreatedAt   time.Time      `json:"created_at"`   // properties.created_at
	UpdatedAt   time.Time      `json:"updated_at"`   // properties.updated_at
}
