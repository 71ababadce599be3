package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/inventra/inventra_backend/internal/core/ports/services"
	"github.com/inventra/inventra_backend/internal/dto"
	"github.com/inventra/inventra_backend/internal/middleware"
)

// adjustmentHandler handles HTTP requests related to inventory adjustments.
type adjustmentHandler struct {
	adjustmentService portssvc.AdjustmentSvcFacade
}

// newAdjustmentHandler creates a new adjustmentHandler.
func newAdjustmentHandler(adjustmentService portssvc.AdjustmentSvcFacade) *adjustmentHandler {
	return &adjustmentHandler{
		adjustmentService: adjustmentService,
	}
}

// RegisterAdjustmentRoutes registers adjustment routes under the given group.
func RegisterAdjustmentRoutes(rg *gin.RouterGroup, adjustmentService portssvc.AdjustmentSvcFacade) {
	h := newAdjustmentHandler(adjustmentService)
	adjustments := rg.Group("/adjustments")
	{
		adjustments.POST("", h.createAdjustment)
		adjustments.GET("", h.listAdjustments)
		adjustments.GET("/:adjustmentID", h.getAdjustment)
		adjustments.PUT("/:adjustmentID", h.updateAdjustment)
		adjustments.DELETE("/:adjustmentID", h.deleteAdjustment)
		adjustments.POST("/:adjustmentID/post", h.postAdjustment)
		adjustments.POST("/:adjustmentID/copy", h.copyAdjustment)
		adjustments.POST("/:adjustmentID/reverse", h.reverseAdjustment)
	}
}

// createAdjustment godoc
// @Summary Create an inventory adjustment
// @Description Creates a new DRAFT inventory adjustment with its line items
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.CreateAdjustmentRequest true "Adjustment details"
// @Success 201 {object} dto.AdjustmentResponse "The created adjustment"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Warehouse or product not found"
// @Router /adjustments [post]
func (h *adjustmentHandler) createAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustment, err := h.adjustmentService.CreateAdjustment(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create adjustment")
		return
	}

	logger.Info("Adjustment created", slog.String("adjustment_id", adjustment.AdjustmentID), slog.String("adjustment_number", adjustment.AdjustmentNumber))
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(adjustment))
}

// listAdjustments godoc
// @Summary List inventory adjustments
// @Description Retrieves adjustment headers matching the filters, newest first
// @Tags adjustments
// @Produce  json
// @Param   warehouseID query string false "Filter by warehouse"
// @Param   status query string false "Filter by status" Enums(DRAFT, POSTED, CANCELLED)
// @Param   dateFrom query string false "Adjustment date lower bound (YYYY-MM-DD)"
// @Param   dateTo query string false "Adjustment date upper bound (YYYY-MM-DD)"
// @Param   search query string false "Match against number, reason or reference"
// @Success 200 {array} dto.AdjustmentResponse "Matching adjustments"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /adjustments [get]
func (h *adjustmentHandler) listAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAdjustmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listAdjustments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	adjustments, err := h.adjustmentService.ListAdjustments(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list adjustments")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdjustmentResponses(adjustments))
}

// getAdjustment godoc
// @Summary Get an inventory adjustment
// @Description Retrieves an adjustment with its line items by ID
// @Tags adjustments
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Success 200 {object} dto.AdjustmentResponse "The adjustment"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Router /adjustments/{adjustmentID} [get]
func (h *adjustmentHandler) getAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	adjustment, err := h.adjustmentService.GetAdjustmentByID(c.Request.Context(), adjustmentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve adjustment")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(adjustment))
}

// updateAdjustment godoc
// @Summary Update a draft inventory adjustment
// @Description Updates header fields or items of a DRAFT adjustment; posted documents are immutable. Setting cancel moves the draft to CANCELLED.
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Param   adjustment body dto.UpdateAdjustmentRequest true "Fields to update"
// @Success 200 {object} dto.AdjustmentResponse "The updated adjustment"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Failure 409 {object} map[string]string "Adjustment is not a draft"
// @Router /adjustments/{adjustmentID} [put]
func (h *adjustmentHandler) updateAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	var req dto.UpdateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustment, err := h.adjustmentService.UpdateAdjustment(c.Request.Context(), adjustmentID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update adjustment")
		return
	}

	logger.Info("Adjustment updated", slog.String("adjustment_id", adjustmentID))
	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(adjustment))
}

// deleteAdjustment godoc
// @Summary Delete a draft inventory adjustment
// @Description Deletes a DRAFT adjustment; posted documents cannot be deleted
// @Tags adjustments
// @Param   adjustmentID path string true "Adjustment ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Failure 409 {object} map[string]string "Adjustment is not a draft"
// @Router /adjustments/{adjustmentID} [delete]
func (h *adjustmentHandler) deleteAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.adjustmentService.DeleteAdjustment(c.Request.Context(), adjustmentID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete adjustment")
		return
	}

	logger.Info("Adjustment deleted", slog.String("adjustment_id", adjustmentID))
	c.Status(http.StatusNoContent)
}

// postAdjustment godoc
// @Summary Post an inventory adjustment
// @Description Applies a DRAFT adjustment to stock, writing one movement per item atomically with the status flip
// @Tags adjustments
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Success 200 {object} dto.AdjustmentResponse "The posted adjustment"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Failure 409 {object} map[string]string "Adjustment is not a draft"
// @Failure 422 {object} map[string]string "Insufficient stock"
// @Router /adjustments/{adjustmentID}/post [post]
func (h *adjustmentHandler) postAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustment, err := h.adjustmentService.PostAdjustment(c.Request.Context(), adjustmentID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post adjustment")
		return
	}

	logger.Info("Adjustment posted", slog.String("adjustment_id", adjustmentID), slog.String("adjustment_number", adjustment.AdjustmentNumber))
	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(adjustment))
}

// copyAdjustment godoc
// @Summary Copy an inventory adjustment
// @Description Creates a fresh DRAFT with a new number from an existing adjustment of any status
// @Tags adjustments
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Success 201 {object} dto.AdjustmentResponse "The new draft"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Router /adjustments/{adjustmentID}/copy [post]
func (h *adjustmentHandler) copyAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustment, err := h.adjustmentService.CopyAdjustment(c.Request.Context(), adjustmentID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to copy adjustment")
		return
	}

	logger.Info("Adjustment copied", slog.String("source_adjustment_id", adjustmentID), slog.String("new_adjustment_id", adjustment.AdjustmentID))
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(adjustment))
}

// reverseAdjustment godoc
// @Summary Reverse a posted inventory adjustment
// @Description Creates and immediately posts a sibling adjustment whose deltas negate the original's effective deltas
// @Tags adjustments
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Success 201 {object} dto.AdjustmentResponse "The posted reversal"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Failure 409 {object} map[string]string "Adjustment is not posted"
// @Failure 422 {object} map[string]string "Insufficient stock for reversal"
// @Router /adjustments/{adjustmentID}/reverse [post]
func (h *adjustmentHandler) reverseAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.adjustmentService.ReverseAdjustment(c.Request.Context(), adjustmentID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reverse adjustment")
		return
	}

	logger.Info("Adjustment reversed", slog.String("original_adjustment_id", adjustmentID), slog.String("reversal_adjustment_id", reversal.AdjustmentID))
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(reversal))
}
