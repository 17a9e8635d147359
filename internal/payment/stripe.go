package payment

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/property-booking/internal/model"
)

// StripeStrategy simulates payment initiation against Stripe.  The real
// SDK call is an external collaborator; this strategy produces the
// initiation result the orchestrator persists.
type StripeStrategy struct {
	apiKey string
	logger *zap.Logger
}

// NewStripeStrategy builds a StripeStrategy.  The API key comes from
// STRIPE_SECRET_KEY with a test-key fallback for local runs.
func NewStripeStrategy(logger *zap.Logger) *StripeStrategy {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		key = "test_key"
	}
	return &StripeStrategy{apiKey: key, logger: logger}
}

func (s *StripeStrategy) Process(ctx context.Context, booking *model.Booking, payload map[string]interface{}) (*Result, error) {
	s.logger.Info("processing stripe payment",
		zap.Uint64("booking_id", booking.ID),
		zap.Uint64("amount_cents", booking.TotalAmountCents),
	)
	// A real integration would create a PaymentIntent here.
	ref := fmt.Sprintf("stripe_txn_%s", uuid.NewString())
	return &Result{
		Status:        model.PaymentStatusInitiated,
		TransactionID: ref,
		RawResponse: map[string]interface{}{
			"message":    "Stripe payment initiated (simulated).",
			"booking_id": booking.ID,
		},
	}, nil
}
