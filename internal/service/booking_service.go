package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/iliyamo/property-booking/internal/model"
	"github.com/iliyamo/property-booking/internal/repository"
)

// BookingService converts available properties into pending bookings.
// All state checks and writes for one reservation happen inside a
// single transaction holding an exclusive lock on the property row, so
// at most one of any number of concurrent callers can succeed for a
// given property.
type BookingService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewBookingService constructs a BookingService.
func NewBookingService(store repository.Store, logger *zap.Logger) *BookingService {
	return &BookingService{store: store, logger: logger}
}

// Reserve books the property for the user.  It locks the property row,
// verifies it exists, is ACTIVE and still available, then creates a
// PENDING booking with the current price snapshotted and flips the
// availability flag, all atomically.  On any failure nothing is
// written.  Competing callers on the same property block on the row
// lock and observe the committed state: the loser gets
// ErrPropertyUnavailable.
func (s *BookingService) Reserve(ctx context.Context, userID, propertyID uint64) (*model.Booking, error) {
	var booking *model.Booking
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		prop, err := tx.PropertyForUpdate(ctx, propertyID)
		if err != nil {
			if errors.Is(err, repository.ErrPropertyNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}
		if prop.Status != model.PropertyStatusActive {
			return ErrPropertyNotActive
		}
		if !prop.IsAvailable {
			return ErrPropertyUnavailable
		}
		b := &model.Booking{
			UserID:           userID,
			PropertyID:       propertyID,
			TotalAmountCents: prop.PriceCents,
			Status:           model.BookingStatusPending,
		}
		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}
		if err := tx.SetPropertyAvailability(ctx, propertyID, false); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("booking created",
		zap.Uint64("booking_id", booking.ID),
		zap.Uint64("property_id", propertyID),
		zap.Uint64("user_id", userID),
		zap.Uint64("total_amount_cents", booking.TotalAmountCents),
	)
	return booking, nil
}
