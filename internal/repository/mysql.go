package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/property-booking/internal/model"
)

// MySQLStore implements Store on top of *sql.DB.  All timestamp columns
// are DATETIME in UTC; the DSN must set parseTime=true and loc=UTC so
// they scan directly into time.Time.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore returns a MySQLStore bound to the given database.
func NewMySQLStore(db *sql.DB) *MySQLStore { return &MySQLStore{db: db} }

// InTx begins a transaction, runs fn with a Tx bound to it and commits
// when fn returns nil.  Any error from fn or from commit rolls the
// transaction back and is returned unchanged so sentinel comparisons
// still work in the caller.
func (s *MySQLStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&mysqlTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// CategoryExists reports whether a category row with the given id exists.
func (s *MySQLStore) CategoryExists(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT 1 FROM categories WHERE id = ?`
	var one int
	err := s.db.QueryRowContext(ctx, q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ChildCategoryIDs returns the ids of the direct children of a category.
// A leaf category yields an empty slice.
func (s *MySQLStore) ChildCategoryIDs(ctx context.Context, parentID uint64) ([]uint64, error) {
	const q = `SELECT id FROM categories WHERE parent_id = ?`
	rows, err := s.db.QueryContext(ctx, q, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// PropertyIDsByCategories returns the ids of properties tagged with any
// of the given categories.  With onlyAvailable set the availability flag
// is part of the predicate.  An empty category set yields an empty slice.
func (s *MySQLStore) PropertyIDsByCategories(ctx context.Context, categoryIDs []uint64, onlyAvailable bool) ([]uint64, error) {
	if len(categoryIDs) == 0 {
		return []uint64{}, nil
	}
	placeholders := make([]string, 0, len(categoryIDs))
	args := make([]interface{}, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	query := `SELECT id FROM properties WHERE category_id IN (` + strings.Join(placeholders, ",") + `)`
	if onlyAvailable {
		query += ` AND is_available = TRUE`
	}
	query += ` ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

const propertyColumns = `id, category_id, title, slug, location, price_cents, status, is_available, created_at, updated_at`

// PropertiesByIDs loads full property records for the given ids, ordered
// by id for deterministic output.  Unknown ids are silently skipped.
func (s *MySQLStore) PropertiesByIDs(ctx context.Context, ids []uint64) ([]model.Property, error) {
	if len(ids) == 0 {
		return []model.Property{}, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id IN (` +
		strings.Join(placeholders, ",") + `) ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	props := make([]model.Property, 0, len(ids))
	for rows.Next() {
		var p model.Property
		if err := scanProperty(rows.Scan, &p); err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return props, nil
}

const bookingColumns = `id, user_id, property_id, total_amount_cents, status, created_at, updated_at`

// BookingByID loads one booking without locking it.
func (s *MySQLStore) BookingByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return scanBookingRow(s.db.QueryRowContext(ctx, q, id))
}

// mysqlTx adapts *sql.Tx to the Tx interface.
type mysqlTx struct {
	tx *sql.Tx
}

func (t *mysqlTx) PropertyForUpdate(ctx context.Context, id uint64) (*model.Property, error) {
	const q = `SELECT ` + propertyColumns + ` FROM properties WHERE id = ? FOR UPDATE`
	var p model.Property
	err := scanProperty(t.tx.QueryRowContext(ctx, q, id).Scan, &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (t *mysqlTx) SetPropertyAvailability(ctx context.Context, id uint64, available bool) error {
	const q = `UPDATE properties SET is_available = ? WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, q, available, id)
	return err
}

func (t *mysqlTx) CreateBooking(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, property_id, total_amount_cents, status) VALUES (?, ?, ?, ?)`
	result, err := t.tx.ExecContext(ctx, q, b.UserID, b.PropertyID, b.TotalAmountCents, b.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return t.tx.QueryRowContext(ctx, sel, b.ID).Scan(
		&b.ID, &b.UserID, &b.PropertyID, &b.TotalAmountCents, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
}

func (t *mysqlTx) BookingForUpdate(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? FOR UPDATE`
	return scanBookingRow(t.tx.QueryRowContext(ctx, q, id))
}

func (t *mysqlTx) SetBookingStatus(ctx context.Context, id uint64, status model.BookingStatus) error {
	const q = `UPDATE bookings SET status = ? WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, q, status, id)
	return err
}

const paymentColumns = `id, booking_id, provider, status, transaction_id, raw_response, created_at, updated_at`

func (t *mysqlTx) PaymentByBooking(ctx context.Context, bookingID uint64) (*model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = ?`
	var p model.Payment
	var txnID sql.NullString
	var raw []byte
	err := t.tx.QueryRowContext(ctx, q, bookingID).Scan(
		&p.ID, &p.BookingID, &p.Provider, &p.Status, &txnID, &raw, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	if txnID.Valid {
		ref := txnID.String
		p.TransactionID = &ref
	}
	p.RawResponse = raw
	return &p, nil
}

func (t *mysqlTx) UpsertPayment(ctx context.Context, p *model.Payment) error {
	// payments.booking_id carries a UNIQUE constraint; redelivery or a
	// second initiation attempt lands on the UPDATE branch.
	const q = `INSERT INTO payments (booking_id, provider, status, transaction_id, raw_response)
	           VALUES (?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             provider = VALUES(provider),
	             status = VALUES(status),
	             transaction_id = VALUES(transaction_id),
	             raw_response = VALUES(raw_response)`
	var txnID interface{}
	if p.TransactionID != nil {
		txnID = *p.TransactionID
	}
	var raw interface{}
	if len(p.RawResponse) > 0 {
		raw = []byte(p.RawResponse)
	}
	if _, err := t.tx.ExecContext(ctx, q, p.BookingID, p.Provider, p.Status, txnID, raw); err != nil {
		return err
	}
	// Read the row back so the caller sees the generated id and timestamps.
	fresh, err := t.PaymentByBooking(ctx, p.BookingID)
	if err != nil {
		return err
	}
	*p = *fresh
	return nil
}

// scanProperty scans one property row via the provided scan function so
// the same code serves QueryRow and Rows.
func scanProperty(scan func(dest ...interface{}) error, p *model.Property) error {
	return scan(
		&p.ID, &p.CategoryID, &p.Title, &p.Slug, &p.Location,
		&p.PriceCents, &p.Status, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt,
	)
}

func scanBookingRow(row *sql.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.PropertyID, &b.TotalAmountCents, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
