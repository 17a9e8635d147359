package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/property-booking/internal/model"
	"github.com/iliyamo/property-booking/internal/payment"
	"github.com/iliyamo/property-booking/internal/repository"
	"github.com/iliyamo/property-booking/internal/service"
)

func newPaymentFixture(t *testing.T) (*PaymentHandler, *repository.MemoryStore, *model.Booking) {
	t.Helper()
	store := repository.NewMemoryStore()
	store.PutProperty(model.Property{
		ID: 10, CategoryID: 1, Status: model.PropertyStatusActive, IsAvailable: true, PriceCents: 100000,
	})
	booking, err := service.NewBookingService(store, zap.NewNop()).Reserve(context.Background(), 7, 10)
	require.NoError(t, err)

	svc := service.NewPaymentService(store, payment.DefaultRegistry(zap.NewNop()), nil, zap.NewNop())
	return NewPaymentHandler(svc, zap.NewNop()), store, booking
}

func postJSON(target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func TestInitiateEndpointCreatesPayment(t *testing.T) {
	h, _, booking := newPaymentFixture(t)
	e := echo.New()

	req, rec := postJSON("/", `{"provider":"stripe"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(booking.ID, 10))
	c.Set("user_id", float64(7))

	require.NoError(t, h.Initiate(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"INITIATED"`)
}

func TestInitiateEndpointRequiresAuth(t *testing.T) {
	h, _, booking := newPaymentFixture(t)
	e := echo.New()

	req, rec := postJSON("/", `{"provider":"stripe"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(booking.ID, 10))

	require.NoError(t, h.Initiate(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInitiateEndpointErrorMapping(t *testing.T) {
	h, store, booking := newPaymentFixture(t)
	e := echo.New()

	call := func(id, body string) int {
		req, rec := postJSON("/", body)
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)
		c.Set("user_id", float64(7))
		require.NoError(t, h.Initiate(c))
		return rec.Code
	}

	assert.Equal(t, http.StatusNotFound, call("999", `{"provider":"stripe"}`))
	assert.Equal(t, http.StatusBadRequest, call("abc", `{"provider":"stripe"}`))
	assert.Equal(t, http.StatusBadRequest, call(strconv.FormatUint(booking.ID, 10), `{"provider":"paypal"}`))

	// Mark the booking paid, then retry.
	svc := service.NewPaymentService(store, payment.DefaultRegistry(zap.NewNop()), nil, zap.NewNop())
	require.NoError(t, svc.ApplyWebhook(context.Background(), model.PaymentProviderStripe, map[string]interface{}{
		"booking_id": float64(booking.ID), "status": "SUCCESS",
	}))
	assert.Equal(t, http.StatusConflict, call(strconv.FormatUint(booking.ID, 10), `{"provider":"stripe"}`))
}

func TestWebhookEndpointAlwaysAcknowledges(t *testing.T) {
	h, store, booking := newPaymentFixture(t)
	e := echo.New()

	call := func(provider, body string) int {
		req, rec := postJSON("/", body)
		c := e.NewContext(req, rec)
		c.SetParamNames("provider")
		c.SetParamValues(provider)
		require.NoError(t, h.Webhook(c))
		return rec.Code
	}

	// Valid event, malformed body, unknown booking: all acknowledged.
	okBody := `{"booking_id":` + strconv.FormatUint(booking.ID, 10) + `,"status":"SUCCESS"}`
	assert.Equal(t, http.StatusOK, call("stripe", okBody))
	assert.Equal(t, http.StatusOK, call("stripe", `{"status":"SUCCESS"}`))
	assert.Equal(t, http.StatusOK, call("bkash", `{"booking_id":999,"status":"SUCCESS"}`))

	b, ok := store.Booking(booking.ID)
	require.True(t, ok)
	assert.Equal(t, model.BookingStatusPaid, b.Status)
}

func TestWebhookEndpointUnknownProvider(t *testing.T) {
	h, _, _ := newPaymentFixture(t)
	e := echo.New()

	req, rec := postJSON("/", `{}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("paypal")

	require.NoError(t, h.Webhook(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
