package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/property-booking/internal/model"
	"github.com/iliyamo/property-booking/internal/payment"
	"github.com/iliyamo/property-booking/internal/queue"
	"github.com/iliyamo/property-booking/internal/repository"
)

// EventPublisher pushes terminal payment outcomes to the message
// broker.  A nil publisher disables event publication.
type EventPublisher interface {
	PaymentCompleted(ctx context.Context, event queue.PaymentCompletedEvent) error
}

// PaymentService drives the payment state machine for bookings:
// NoPayment -> INITIATED -> {SUCCESS, FAILED}.  Persistence stays here;
// provider strategies only produce initiation results.
type PaymentService struct {
	store     repository.Store
	providers *payment.Registry
	events    EventPublisher
	logger    *zap.Logger
}

// NewPaymentService constructs a PaymentService.  events may be nil.
func NewPaymentService(store repository.Store, providers *payment.Registry, events EventPublisher, logger *zap.Logger) *PaymentService {
	return &PaymentService{store: store, providers: providers, events: events, logger: logger}
}

// InitiatePayment starts or restarts the payment flow for a booking.
// It locks the booking row, rejects missing bookings and already-paid
// ones, resolves the provider strategy, invokes it, and upserts the
// payment record keyed by booking id, creating it on the first attempt
// and overwriting provider/status/transaction details on later ones.
// A SUCCESS initiation also marks the booking PAID in the same
// transaction.  Strategy failures are returned to the caller as-is;
// nothing is retried here.
func (s *PaymentService) InitiatePayment(ctx context.Context, bookingID uint64, provider model.PaymentProvider, payload map[string]interface{}) (*model.Payment, error) {
	s.logger.Info("initiating payment",
		zap.Uint64("booking_id", bookingID),
		zap.String("provider", string(provider)),
	)
	var pay *model.Payment
	var completed *queue.PaymentCompletedEvent
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		b, err := tx.BookingForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				s.logger.Warn("booking not found during payment initiation", zap.Uint64("booking_id", bookingID))
				return ErrBookingNotFound
			}
			return err
		}
		if b.Status == model.BookingStatusPaid {
			s.logger.Warn("booking already paid", zap.Uint64("booking_id", bookingID))
			return ErrAlreadyPaid
		}
		strategy, ok := s.providers.Resolve(provider)
		if !ok {
			return ErrUnsupportedProvider
		}
		result, err := strategy.Process(ctx, b, payload)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(result.RawResponse)
		if err != nil {
			return err
		}
		p, err := tx.PaymentByBooking(ctx, b.ID)
		if errors.Is(err, repository.ErrPaymentNotFound) {
			p = &model.Payment{BookingID: b.ID}
		} else if err != nil {
			return err
		}
		p.Provider = provider
		p.Status = result.Status
		p.TransactionID = nil
		if result.TransactionID != "" {
			ref := result.TransactionID
			p.TransactionID = &ref
		}
		p.RawResponse = raw
		if err := tx.UpsertPayment(ctx, p); err != nil {
			return err
		}
		if result.Status == model.PaymentStatusSuccess {
			if err := tx.SetBookingStatus(ctx, b.ID, model.BookingStatusPaid); err != nil {
				return err
			}
			completed = s.completedEvent(b, p)
		}
		pay = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("payment record updated",
		zap.Uint64("payment_id", pay.ID),
		zap.Uint64("booking_id", bookingID),
		zap.String("status", string(pay.Status)),
	)
	s.publish(ctx, completed)
	return pay, nil
}

// ApplyWebhook reconciles an asynchronous provider notification.
// Deliveries are untrusted and at-least-once: malformed payloads and
// unknown bookings are logged and dropped without error, because making
// the provider retry a permanently-unprocessable event helps nobody.
// For a valid event the payment record is located or created (the
// provider may notify before initiation), transaction id and raw
// payload are overwritten unconditionally, and SUCCESS marks the
// booking PAID while anything else marks it CANCELED, all in one
// transaction.  Every write is a pure overwrite, so redelivery is
// idempotent.  Last-write-wins means a stale out-of-order delivery also
// wins; the provider contract offers no ordering to lean on.  The
// returned error reports storage failures only.
func (s *PaymentService) ApplyWebhook(ctx context.Context, provider model.PaymentProvider, payload map[string]interface{}) error {
	s.logger.Info("received payment webhook",
		zap.String("provider", string(provider)),
		zap.Any("payload", payload),
	)
	bookingID, okID := uintFromAny(payload["booking_id"])
	status, okStatus := payload["status"].(string)
	if !okID || !okStatus {
		s.logger.Warn("discarding malformed webhook payload", zap.Any("payload", payload))
		return nil
	}
	transactionID, _ := payload["transaction_id"].(string)
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var completed *queue.PaymentCompletedEvent
	err = s.store.InTx(ctx, func(tx repository.Tx) error {
		b, err := tx.BookingForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				s.logger.Warn("webhook references unknown booking", zap.Uint64("booking_id", bookingID))
				return nil
			}
			return err
		}
		p, err := tx.PaymentByBooking(ctx, b.ID)
		if errors.Is(err, repository.ErrPaymentNotFound) {
			// Providers may notify before an initiation record exists.
			p = &model.Payment{BookingID: b.ID, Provider: provider}
		} else if err != nil {
			return err
		}
		p.TransactionID = nil
		if transactionID != "" {
			ref := transactionID
			p.TransactionID = &ref
		}
		p.RawResponse = raw

		bookingStatus := model.BookingStatusCanceled
		if status == string(model.PaymentStatusSuccess) {
			p.Status = model.PaymentStatusSuccess
			bookingStatus = model.BookingStatusPaid
		} else {
			p.Status = model.PaymentStatusFailed
		}
		if err := tx.UpsertPayment(ctx, p); err != nil {
			return err
		}
		if err := tx.SetBookingStatus(ctx, b.ID, bookingStatus); err != nil {
			return err
		}
		s.logger.Info("webhook applied",
			zap.Uint64("booking_id", b.ID),
			zap.String("payment_status", string(p.Status)),
			zap.String("booking_status", string(bookingStatus)),
		)
		completed = s.completedEvent(b, p)
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(ctx, completed)
	return nil
}

func (s *PaymentService) completedEvent(b *model.Booking, p *model.Payment) *queue.PaymentCompletedEvent {
	ev := &queue.PaymentCompletedEvent{
		BookingID:   b.ID,
		PropertyID:  b.PropertyID,
		UserID:      b.UserID,
		Provider:    string(p.Provider),
		Status:      string(p.Status),
		AmountCents: b.TotalAmountCents,
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if p.TransactionID != nil {
		ev.TransactionID = *p.TransactionID
	}
	return ev
}

func (s *PaymentService) publish(ctx context.Context, ev *queue.PaymentCompletedEvent) {
	if ev == nil || s.events == nil {
		return
	}
	if err := s.events.PaymentCompleted(ctx, *ev); err != nil {
		s.logger.Warn("publishing payment event failed", zap.Error(err))
	}
}

// uintFromAny extracts a positive integer id from the loosely typed
// values JSON decoding produces.  Providers send booking ids as numbers
// or strings depending on their SDK.
func uintFromAny(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n != float64(uint64(n)) {
			return 0, false
		}
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case uint64:
		return n, true
	case json.Number:
		id, err := strconv.ParseUint(n.String(), 10, 64)
		return id, err == nil
	case string:
		id, err := strconv.ParseUint(n, 10, 64)
		return id, err == nil
	}
	return 0, false
}
