package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-booking/internal/service"
)

// CatalogHandler serves category based property discovery.
type CatalogHandler struct {
	recommend *service.RecommendService
}

// NewCatalogHandler builds a CatalogHandler.
func NewCatalogHandler(r *service.RecommendService) *CatalogHandler {
	return &CatalogHandler{recommend: r}
}

// Recommended handles GET /v1/categories/:id/recommended.  It returns
// the available properties under the category's subtree.
func (h *CatalogHandler) Recommended(c echo.Context) error {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	properties, err := h.recommend.Recommended(c.Request().Context(), categoryID)
	switch {
	case errors.Is(err, service.ErrMissingCategory):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category id is required"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load recommendations"})
	}

	return c.JSON(http.StatusOK, echo.Map{"properties": properties})
}
