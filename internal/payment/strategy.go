// Package payment defines the provider strategy abstraction used by the
// payment orchestration service.  A Strategy knows how to initiate a
// payment with one external provider and nothing else: it must not
// touch booking or payment persistence, which stays with the caller.
// Providers are selected through a Registry keyed by identifier, so a
// new provider is one Register call away.
package payment

import (
	"context"

	"github.com/iliyamo/property-booking/internal/model"
)

// Result is what a strategy returns from an initiation attempt.
// RawResponse carries the provider's payload verbatim; the orchestrator
// stores it without inspecting it.
type Result struct {
	Status        model.PaymentStatus
	TransactionID string
	RawResponse   map[string]interface{}
}

// Strategy initiates a payment for a booking with one provider.  The
// payload is the caller-supplied provider hint map and may be nil.
// Implementations may perform network I/O but must not mutate any of
// the application's own records.
type Strategy interface {
	Process(ctx context.Context, booking *model.Booking, payload map[string]interface{}) (*Result, error)
}

// Registry maps provider identifiers to strategies.  The zero value is
// not usable; construct with NewRegistry.
type Registry struct {
	strategies map[model.PaymentProvider]Strategy
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[model.PaymentProvider]Strategy)}
}

// Register binds a strategy to a provider identifier, replacing any
// previous binding.
func (r *Registry) Register(provider model.PaymentProvider, s Strategy) {
	r.strategies[provider] = s
}

// Resolve returns the strategy for a provider identifier.  The second
// return value is false for unknown identifiers; callers surface that
// as an unsupported-provider error, never as a silent no-op.
func (r *Registry) Resolve(provider model.PaymentProvider) (Strategy, bool) {
	s, ok := r.strategies[provider]
	return s, ok
}
