package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/property-booking/internal/model"
	"github.com/iliyamo/property-booking/internal/service"
)

// PaymentHandler serves payment initiation and provider webhooks.
type PaymentHandler struct {
	payments *service.PaymentService
	logger   *zap.Logger
}

// NewPaymentHandler builds a PaymentHandler.
func NewPaymentHandler(p *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: p, logger: logger}
}

// initiateRequest is the body for POST /v1/bookings/:id/payments.
type initiateRequest struct {
	Provider string                 `json:"provider"`
	Payload  map[string]interface{} `json:"payload"`
}

// Initiate handles POST /v1/bookings/:id/payments.  It starts (or
// retries) the payment flow for a pending booking through the named
// provider.
func (h *PaymentHandler) Initiate(c echo.Context) error {
	if _, ok := userIDFrom(c.Get("user_id")); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	var req initiateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	provider := model.PaymentProvider(strings.ToUpper(req.Provider))

	p, err := h.payments.InitiatePayment(c.Request().Context(), bookingID, provider, req.Payload)
	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, service.ErrAlreadyPaid):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is already paid"})
	case errors.Is(err, service.ErrUnsupportedProvider):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported payment provider"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not initiate payment"})
	}

	return c.JSON(http.StatusCreated, p)
}

// Webhook handles POST /v1/payments/webhook/:provider.  Provider
// callbacks are acknowledged with 200 regardless of payload contents
// so gateways do not retry forever; malformed or unknown payloads are
// logged and dropped inside the service.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	provider := model.PaymentProvider(strings.ToUpper(c.Param("provider")))
	if provider != model.PaymentProviderStripe && provider != model.PaymentProviderBkash {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown provider"})
	}

	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		h.logger.Warn("webhook with unparseable body", zap.String("provider", string(provider)))
		return c.JSON(http.StatusOK, echo.Map{"received": true})
	}

	if err := h.payments.ApplyWebhook(c.Request().Context(), provider, payload); err != nil {
		// Storage failures are our problem, not the gateway's.
		h.logger.Error("webhook reconciliation failed", zap.Error(err))
	}
	return c.JSON(http.StatusOK, echo.Map{"received": true})
}
