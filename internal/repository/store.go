package repository

import (
	"context"

	"github.com/iliyamo/property-booking/internal/model"
)

// Store is the persistence boundary used by the services.  InTx runs fn
// inside one atomic transaction; everything fn touches through the Tx
// handle commits or rolls back together.  The remaining methods are
// plain reads that need no transaction.
//
// Implementations must guarantee that two concurrent transactions
// locking the same row through Tx serialize: the second caller blocks
// until the first commits or rolls back, then observes the committed
// state.  The MySQL implementation uses SELECT ... FOR UPDATE; the
// in-memory implementation serializes writers outright, which yields
// the same observable exclusivity.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error

	CategoryExists(ctx context.Context, id uint64) (bool, error)
	ChildCategoryIDs(ctx context.Context, parentID uint64) ([]uint64, error)
	PropertyIDsByCategories(ctx context.Context, categoryIDs []uint64, onlyAvailable bool) ([]uint64, error)
	PropertiesByIDs(ctx context.Context, ids []uint64) ([]model.Property, error)
	BookingByID(ctx context.Context, id uint64) (*model.Booking, error)
}

// Tx is the handle passed to an InTx callback.  Methods suffixed
// ForUpdate acquire an exclusive lock on the selected row for the
// remainder of the transaction.
type Tx interface {
	// PropertyForUpdate loads and locks one property row.  Returns
	// ErrPropertyNotFound when the row does not exist.
	PropertyForUpdate(ctx context.Context, id uint64) (*model.Property, error)
	// SetPropertyAvailability flips the is_available flag.
	SetPropertyAvailability(ctx context.Context, id uint64, available bool) error
	// CreateBooking inserts a booking and populates its generated ID
	// and timestamps on the passed record.
	CreateBooking(ctx context.Context, b *model.Booking) error
	// BookingForUpdate loads and locks one booking row.  Returns
	// ErrBookingNotFound when the row does not exist.
	BookingForUpdate(ctx context.Context, id uint64) (*model.Booking, error)
	// SetBookingStatus updates a booking's status.
	SetBookingStatus(ctx context.Context, id uint64, status model.BookingStatus) error
	// PaymentByBooking loads the payment owned by a booking.  Returns
	// ErrPaymentNotFound when no payment record exists yet.
	PaymentByBooking(ctx context.Context, bookingID uint64) (*model.Payment, error)
	// UpsertPayment inserts or overwrites the payment keyed by its
	// BookingID and populates generated fields on the passed record.
	UpsertPayment(ctx context.Context, p *model.Payment) error
}
