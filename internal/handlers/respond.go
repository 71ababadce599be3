package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inventra/inventra_backend/internal/apperrors"
)

// respondServiceError translates service errors to HTTP responses. Stock and
// balance insufficiencies return 422 with the shortfall details so clients
// can show what was available; sentinel errors map to their conventional
// status codes; anything else is a 500 with a generic message.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	var stockErr *apperrors.InsufficientStockError
	if errors.As(err, &stockErr) {
		logger.Warn("Insufficient stock", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       stockErr.Error(),
			"productID":   stockErr.ProductID,
			"warehouseID": stockErr.WarehouseID,
			"available":   stockErr.Available,
			"requested":   stockErr.Requested,
		})
		return
	}
	var balanceErr *apperrors.InsufficientBalanceError
	if errors.As(err, &balanceErr) {
		logger.Warn("Insufficient balance", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        balanceErr.Error(),
			"fundSourceID": balanceErr.FundSourceID,
			"available":    balanceErr.Available,
			"requested":    balanceErr.Requested,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
