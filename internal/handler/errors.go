package handler

import (
	"errors"
	"net/http"

	"posledger-service/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondError maps service errors to HTTP responses. Business-rule
// violations keep their detail for user display; anything unrecognized is
// surfaced as a generic transient failure so callers can safely retry.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	var insufficientStock *service.InsufficientStockError
	var quotaExceeded *service.QuotaExceededError

	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.As(err, &insufficientStock):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":     insufficientStock.Error(),
			"product":   insufficientStock.ProductName,
			"available": insufficientStock.Available,
			"requested": insufficientStock.Requested,
		})
	case errors.As(err, &quotaExceeded):
		return c.JSON(http.StatusForbidden, echo.Map{
			"error": quotaExceeded.Error(),
			"limit": quotaExceeded.Limit,
			"plan":  quotaExceeded.Plan,
		})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		log.Error("Unexpected service error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transient failure, please retry"})
	}
}

// failureReason classifies an error for the sale failure metric
func failureReason(err error) string {
	var insufficientStock *service.InsufficientStockError
	var quotaExceeded *service.QuotaExceededError

	switch {
	case errors.Is(err, service.ErrValidation):
		return "validation"
	case errors.Is(err, service.ErrNotFound):
		return "not_found"
	case errors.As(err, &insufficientStock):
		return "insufficient_stock"
	case errors.As(err, &quotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, service.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
