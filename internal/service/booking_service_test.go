package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/property-booking/internal/model"
	"github.com/iliyamo/property-booking/internal/repository"
)

func seedProperty(store *repository.MemoryStore, id uint64, status model.PropertyStatus, available bool) {
	store.PutProperty(model.Property{
		ID:          id,
		CategoryID:  1,
		Title:       "Lakeview Cottage",
		Slug:        "lakeview-cottage",
		Location:    "Dhaka",
		PriceCents:  250000,
		Status:      status,
		IsAvailable: available,
	})
}

func TestReserveCreatesPendingBooking(t *testing.T) {
	store := repository.NewMemoryStore()
	seedProperty(store, 10, model.PropertyStatusActive, true)
	svc := NewBookingService(store, zap.NewNop())

	booking, err := svc.Reserve(context.Background(), 7, 10)
	require.NoError(t, err)
	require.NotNil(t, booking)

	assert.Equal(t, uint64(7), booking.UserID)
	assert.Equal(t, uint64(10), booking.PropertyID)
	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Equal(t, uint64(250000), booking.TotalAmountCents)

	prop, ok := store.Property(10)
	require.True(t, ok)
	assert.False(t, prop.IsAvailable)
}

func TestReserveUnknownProperty(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewBookingService(store, zap.NewNop())

	_, err := svc.Reserve(context.Background(), 7, 99)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.Equal(t, 0, store.BookingCount())
}

func TestReserveInactiveProperty(t *testing.T) {
	store := repository.NewMemoryStore()
	seedProperty(store, 10, model.PropertyStatusInactive, true)
	svc := NewBookingService(store, zap.NewNop())

	_, err := svc.Reserve(context.Background(), 7, 10)
	assert.ErrorIs(t, err, ErrPropertyNotActive)
	assert.Equal(t, 0, store.BookingCount())
}

func TestReserveUnavailableProperty(t *testing.T) {
	store := repository.NewMemoryStore()
	seedProperty(store, 10, model.PropertyStatusActive, false)
	svc := NewBookingService(store, zap.NewNop())

	_, err := svc.Reserve(context.Background(), 7, 10)
	assert.ErrorIs(t, err, ErrPropertyUnavailable)
	assert.Equal(t, 0, store.BookingCount())
}

// Many goroutines race for one property: exactly one booking must win
// and every loser must see the unavailable error.
func TestReserveConcurrentSingleWinner(t *testing.T) {
	store := repository.NewMemoryStore()
	seedProperty(store, 10, model.PropertyStatusActive, true)
	svc := NewBookingService(store, zap.NewNop())

	const callers = 32
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Reserve(context.Background(), uint64(i+1), 10)
		}(i)
	}
	wg.Wait()

	wins, losses := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, ErrPropertyUnavailable):
			losses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, losses)
	assert.Equal(t, 1, store.BookingCount())

	prop, ok := store.Property(10)
	require.True(t, ok)
	assert.False(t, prop.IsAvailable)
}
