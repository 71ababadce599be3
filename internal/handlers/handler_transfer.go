package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/inventra/inventra_backend/internal/core/ports/services"
	"github.com/inventra/inventra_backend/internal/dto"
	"github.com/inventra/inventra_backend/internal/middleware"
)

// transferHandler handles HTTP requests related to inventory transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(transferService portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{
		transferService: transferService,
	}
}

// registerTransferRoutes registers transfer routes under the given group.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)
	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.GET("", h.listTransfers)
		transfers.GET("/:transferID", h.getTransfer)
		transfers.PUT("/:transferID", h.updateTransfer)
		transfers.DELETE("/:transferID", h.deleteTransfer)
		transfers.POST("/:transferID/post", h.postTransfer)
		transfers.POST("/:transferID/copy", h.copyTransfer)
		transfers.POST("/:transferID/reverse", h.reverseTransfer)
	}
}

// createTransfer godoc
// @Summary Create an inventory transfer
// @Description Creates a new DRAFT transfer between two warehouses
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse "The created transfer"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Warehouse or product not found"
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transfer, err := h.transferService.CreateTransfer(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create transfer")
		return
	}

	logger.Info("Transfer created", slog.String("transfer_id", transfer.TransferID), slog.String("transfer_number", transfer.TransferNumber))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// listTransfers godoc
// @Summary List inventory transfers
// @Description Retrieves transfer headers matching the filters, newest first. The warehouse filter matches either side.
// @Tags transfers
// @Produce  json
// @Param   warehouseID query string false "Filter by warehouse (either side)"
// @Param   status query string false "Filter by status" Enums(DRAFT, POSTED, CANCELLED)
// @Param   dateFrom query string false "Transfer date lower bound (YYYY-MM-DD)"
// @Param   dateTo query string false "Transfer date upper bound (YYYY-MM-DD)"
// @Param   search query string false "Match against number or reason"
// @Success 200 {array} dto.TransferResponse "Matching transfers"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /transfers [get]
func (h *transferHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransfersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listTransfers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	transfers, err := h.transferService.ListTransfers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transfers")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponses(transfers))
}

// getTransfer godoc
// @Summary Get an inventory transfer
// @Description Retrieves a transfer with its line items by ID
// @Tags transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse "The transfer"
// @Failure 404 {object} map[string]string "Transfer not found"
// @Router /transfers/{transferID} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	transfer, err := h.transferService.GetTransferByID(c.Request.Context(), transferID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve transfer")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// updateTransfer godoc
// @Summary Update a draft inventory transfer
// @Description Updates header fields or items of a DRAFT transfer. Setting cancel moves the draft to CANCELLED.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Param   transfer body dto.UpdateTransferRequest true "Fields to update"
// @Success 200 {object} dto.TransferResponse "The updated transfer"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Transfer not found"
// @Failure 409 {object} map[string]string "Transfer is not a draft"
// @Router /transfers/{transferID} [put]
func (h *transferHandler) updateTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	var req dto.UpdateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transfer, err := h.transferService.UpdateTransfer(c.Request.Context(), transferID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update transfer")
		return
	}

	logger.Info("Transfer updated", slog.String("transfer_id", transferID))
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// deleteTransfer godoc
// @Summary Delete a draft inventory transfer
// @Description Deletes a DRAFT transfer; posted documents cannot be deleted
// @Tags transfers
// @Param   transferID path string true "Transfer ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Transfer not found"
// @Failure 409 {object} map[string]string "Transfer is not a draft"
// @Router /transfers/{transferID} [delete]
func (h *transferHandler) deleteTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.transferService.DeleteTransfer(c.Request.Context(), transferID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete transfer")
		return
	}

	logger.Info("Transfer deleted", slog.String("transfer_id", transferID))
	c.Status(http.StatusNoContent)
}

// postTransfer godoc
// @Summary Post an inventory transfer
// @Description Moves stock out of the source and into the destination warehouse atomically with the status flip
// @Tags transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse "The posted transfer"
// @Failure 404 {object} map[string]string "Transfer not found"
// @Failure 409 {object} map[string]string "Transfer is not a draft"
// @Failure 422 {object} map[string]string "Insufficient stock at source"
// @Router /transfers/{transferID}/post [post]
func (h *transferHandler) postTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transfer, err := h.transferService.PostTransfer(c.Request.Context(), transferID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post transfer")
		return
	}

	logger.Info("Transfer posted", slog.String("transfer_id", transferID), slog.String("transfer_number", transfer.TransferNumber))
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// copyTransfer godoc
// @Summary Copy an inventory transfer
// @Description Creates a fresh DRAFT with a new number from an existing transfer of any status
// @Tags transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 201 {object} dto.TransferResponse "The new draft"
// @Failure 404 {object} map[string]string "Transfer not found"
// @Router /transfers/{transferID}/copy [post]
func (h *transferHandler) copyTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transfer, err := h.transferService.CopyTransfer(c.Request.Context(), transferID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to copy transfer")
		return
	}

	logger.Info("Transfer copied", slog.String("source_transfer_id", transferID), slog.String("new_transfer_id", transfer.TransferID))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// reverseTransfer godoc
// @Summary Reverse a posted inventory transfer
// @Description Creates and immediately posts a sibling transfer with swapped warehouses, moving the stock back
// @Tags transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 201 {object} dto.TransferResponse "The posted reversal"
// @Failure 404 {object} map[string]string "Transfer not found"
// @Failure 409 {object} map[string]string "Transfer is not posted"
// @Failure 422 {object} map[string]string "Insufficient stock for reversal"
// @Router /transfers/{transferID}/reverse [post]
func (h *transferHandler) reverseTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.transferService.ReverseTransfer(c.Request.Context(), transferID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reverse transfer")
		return
	}

	logger.Info("Transfer reversed", slog.String("original_transfer_id", transferID), slog.String("reversal_transfer_id", reversal.TransferID))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(reversal))
}
