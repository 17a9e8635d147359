package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-booking/internal/service"
)

// ReservationHandler serves booking creation.
type ReservationHandler struct {
	bookings *service.BookingService
}

// NewReservationHandler builds a ReservationHandler.
func NewReservationHandler(b *service.BookingService) *ReservationHandler {
	return &ReservationHandler{bookings: b}
}

// Reserve handles POST /v1/properties/:id/reserve.  The authenticated
// user attempts to book the property; at most one concurrent caller
// wins, the rest receive 409.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	userID, ok := userIDFrom(c.Get("user_id"))
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || propertyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	booking, err := h.bookings.Reserve(c.Request().Context(), userID, propertyID)
	switch {
	case errors.Is(err, service.ErrPropertyNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	case errors.Is(err, service.ErrPropertyNotActive):
		return c.JSON(http.StatusConflict, echo.Map{"error": "property is not active"})
	case errors.Is(err, service.ErrPropertyUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "property is no longer available"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}

	return c.JSON(http.StatusCreated, booking)
}
