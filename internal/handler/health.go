// Package handler exposes the HTTP surface of the booking API.  Each
// handler translates an HTTP request into a service call and maps the
// service's sentinel errors onto status codes.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports process liveness for load balancer checks.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
