package repository

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/property-booking/internal/model"
)

// MemoryStore is an in-memory Store used by the test suite and by local
// runs without a MySQL instance.  InTx holds one mutex for the whole
// transaction, so concurrent writers serialize completely; that is a
// stricter schedule than per-row locks but produces the same observable
// outcome for callers.  Map values are stored by value so a cheap
// shallow copy doubles as the rollback snapshot.
type MemoryStore struct {
	mu         sync.Mutex
	categories map[uint64]model.Category
	properties map[uint64]model.Property
	bookings   map[uint64]model.Booking
	payments   map[uint64]model.Payment // keyed by booking id
	nextBookID uint64
	nextPayID  uint64
	now        func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: make(map[uint64]model.Category),
		properties: make(map[uint64]model.Property),
		bookings:   make(map[uint64]model.Booking),
		payments:   make(map[uint64]model.Payment),
		nextBookID: 1,
		nextPayID:  1,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// PutCategory inserts or replaces a category row.
func (s *MemoryStore) PutCategory(c model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

// PutProperty inserts or replaces a property row.
func (s *MemoryStore) PutProperty(p model.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[p.ID] = p
}

// Property returns a snapshot of one property row.
func (s *MemoryStore) Property(id uint64) (model.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	return p, ok
}

// Booking returns a snapshot of one booking row.
func (s *MemoryStore) Booking(id uint64) (model.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	return b, ok
}

// Payment returns a snapshot of the payment owned by a booking.
func (s *MemoryStore) Payment(bookingID uint64) (model.Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[bookingID]
	return p, ok
}

// BookingCount reports how many booking rows exist.
func (s *MemoryStore) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// InTx serializes the callback against all other transactions and rolls
// every mutation back when fn returns an error.
func (s *MemoryStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(&memoryTx{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type memSnapshot struct {
	properties map[uint64]model.Property
	bookings   map[uint64]model.Booking
	payments   map[uint64]model.Payment
	nextBookID uint64
	nextPayID  uint64
}

func (s *MemoryStore) snapshot() memSnapshot {
	snap := memSnapshot{
		properties: make(map[uint64]model.Property, len(s.properties)),
		bookings:   make(map[uint64]model.Booking, len(s.bookings)),
		payments:   make(map[uint64]model.Payment, len(s.payments)),
		nextBookID: s.nextBookID,
		nextPayID:  s.nextPayID,
	}
	for k, v := range s.properties {
		snap.properties[k] = v
	}
	for k, v := range s.bookings {
		snap.bookings[k] = v
	}
	for k, v := range s.payments {
		snap.payments[k] = v
	}
	return snap
}

func (s *MemoryStore) restore(snap memSnapshot) {
	s.properties = snap.properties
	s.bookings = snap.bookings
	s.payments = snap.payments
	s.nextBookID = snap.nextBookID
	s.nextPayID = snap.nextPayID
}

func (s *MemoryStore) CategoryExists(ctx context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.categories[id]
	return ok, nil
}

func (s *MemoryStore) ChildCategoryIDs(ctx context.Context, parentID uint64) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint64, 0)
	for _, c := range s.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (s *MemoryStore) PropertyIDsByCategories(ctx context.Context, categoryIDs []uint64, onlyAvailable bool) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[uint64]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = struct{}{}
	}
	ids := make([]uint64, 0)
	for _, p := range s.properties {
		if _, ok := wanted[p.CategoryID]; !ok {
			continue
		}
		if onlyAvailable && !p.IsAvailable {
			continue
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (s *MemoryStore) PropertiesByIDs(ctx context.Context, ids []uint64) ([]model.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	props := make([]model.Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.properties[id]; ok {
			props = append(props, p)
		}
	}
	return props, nil
}

func (s *MemoryStore) BookingByID(ctx context.Context, id uint64) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

// memoryTx mutates the parent store directly; InTx holds the store
// mutex for the transaction's lifetime and restores a snapshot on error.
type memoryTx struct {
	s *MemoryStore
}

func (t *memoryTx) PropertyForUpdate(ctx context.Context, id uint64) (*model.Property, error) {
	p, ok := t.s.properties[id]
	if !ok {
		return nil, ErrPropertyNotFound
	}
	return &p, nil
}

func (t *memoryTx) SetPropertyAvailability(ctx context.Context, id uint64, available bool) error {
	p, ok := t.s.properties[id]
	if !ok {
		return ErrPropertyNotFound
	}
	p.IsAvailable = available
	p.UpdatedAt = t.s.now()
	t.s.properties[id] = p
	return nil
}

func (t *memoryTx) CreateBooking(ctx context.Context, b *model.Booking) error {
	b.ID = t.s.nextBookID
	t.s.nextBookID++
	b.CreatedAt = t.s.now()
	b.UpdatedAt = b.CreatedAt
	t.s.bookings[b.ID] = *b
	return nil
}

func (t *memoryTx) BookingForUpdate(ctx context.Context, id uint64) (*model.Booking, error) {
	b, ok := t.s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

func (t *memoryTx) SetBookingStatus(ctx context.Context, id uint64, status model.BookingStatus) error {
	b, ok := t.s.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = t.s.now()
	t.s.bookings[id] = b
	return nil
}

func (t *memoryTx) PaymentByBooking(ctx context.Context, bookingID uint64) (*model.Payment, error) {
	p, ok := t.s.payments[bookingID]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	return &p, nil
}

func (t *memoryTx) UpsertPayment(ctx context.Context, p *model.Payment) error {
	if existing, ok := t.s.payments[p.BookingID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = t.s.nextPayID
		t.s.nextPayID++
		p.CreatedAt = t.s.now()
	}
	p.UpdatedAt = t.s.now()
	t.s.payments[p.BookingID] = *p
	return nil
}
