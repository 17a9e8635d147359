package payment

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/property-booking/internal/model"
)

// BkashStrategy simulates payment initiation against bKash.
type BkashStrategy struct {
	appKey    string
	appSecret string
	logger    *zap.Logger
}

// NewBkashStrategy builds a BkashStrategy.  Credentials come from
// BKASH_APP_KEY and BKASH_APP_SECRET with test fallbacks for local runs.
func NewBkashStrategy(logger *zap.Logger) *BkashStrategy {
	key := os.Getenv("BKASH_APP_KEY")
	if key == "" {
		key = "test_app_key"
	}
	secret := os.Getenv("BKASH_APP_SECRET")
	if secret == "" {
		secret = "test_app_secret"
	}
	return &BkashStrategy{appKey: key, appSecret: secret, logger: logger}
}

func (s *BkashStrategy) Process(ctx context.Context, booking *model.Booking, payload map[string]interface{}) (*Result, error) {
	s.logger.Info("processing bkash payment",
		zap.Uint64("booking_id", booking.ID),
		zap.Uint64("amount_cents", booking.TotalAmountCents),
	)
	ref := fmt.Sprintf("bkash_txn_%s", uuid.NewString())
	return &Result{
		Status:        model.PaymentStatusInitiated,
		TransactionID: ref,
		RawResponse: map[string]interface{}{
			"message":    "bKash payment initiated (simulated).",
			"booking_id": booking.ID,
		},
	}, nil
}

// DefaultRegistry returns a Registry with the built-in providers bound
// to their identifiers.
func DefaultRegistry(logger *zap.Logger) *Registry {
	r := NewRegistry()
	r.Register(model.PaymentProviderStripe, NewStripeStrategy(logger))
	r.Register(model.PaymentProviderBkash, NewBkashStrategy(logger))
	return r
}
