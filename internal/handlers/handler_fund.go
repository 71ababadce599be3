package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/inventra/inventra_backend/internal/core/ports/services"
	"github.com/inventra/inventra_backend/internal/dto"
	"github.com/inventra/inventra_backend/internal/middleware"
)

// fundHandler handles HTTP requests related to fund sources and their ledger.
type fundHandler struct {
	fundService portssvc.FundSvcFacade
}

// newFundHandler creates a new fundHandler.
func newFundHandler(fundService portssvc.FundSvcFacade) *fundHandler {
	return &fundHandler{
		fundService: fundService,
	}
}

// registerFundRoutes registers fund source and fund transfer routes.
func registerFundRoutes(rg *gin.RouterGroup, fundService portssvc.FundSvcFacade) {
	h := newFundHandler(fundService)

	sources := rg.Group("/fund-sources")
	{
		sources.POST("", h.createFundSource)
		sources.GET("", h.listFundSources)
		sources.GET("/:fundSourceID", h.getFundSource)
		sources.PUT("/:fundSourceID", h.updateFundSource)
		sources.DELETE("/:fundSourceID", h.deleteFundSource)
		sources.GET("/:fundSourceID/transactions", h.listFundTransactions)
		sources.POST("/:fundSourceID/deposit", h.recordDeposit)
		sources.POST("/:fundSourceID/withdraw", h.recordWithdrawal)
		sources.POST("/:fundSourceID/adjust-balance", h.adjustBalance)
	}

	transfers := rg.Group("/fund-transfers")
	{
		transfers.POST("", h.createFundTransfer)
		transfers.GET("", h.listFundTransfers)
		transfers.GET("/:transferID", h.getFundTransfer)
	}
}

// createFundSource godoc
// @Summary Create a fund source
// @Description Creates a cash, bank or e-wallet fund source. A non-zero opening balance writes an OPENING_BALANCE ledger entry.
// @Tags fund-sources
// @Accept  json
// @Produce  json
// @Param   fundSource body dto.CreateFundSourceRequest true "Fund source details"
// @Success 201 {object} dto.FundSourceResponse "The created fund source"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Code already in use"
// @Router /fund-sources [post]
func (h *fundHandler) createFundSource(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFundSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createFundSource", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	source, err := h.fundService.CreateFundSource(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create fund source")
		return
	}

	logger.Info("Fund source created", slog.String("fund_source_id", source.FundSourceID), slog.String("code", source.Code))
	c.JSON(http.StatusCreated, dto.ToFundSourceResponse(source))
}

// listFundSources godoc
// @Summary List fund sources
// @Description Retrieves fund sources matching the filters, ordered by name
// @Tags fund-sources
// @Produce  json
// @Param   status query string false "Filter by status" Enums(active, inactive)
// @Param   type query string false "Filter by type" Enums(CASH, BANK, EWALLET)
// @Param   search query string false "Match against name or code"
// @Success 200 {array} dto.FundSourceResponse "Matching fund sources"
// @Router /fund-sources [get]
func (h *fundHandler) listFundSources(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListFundSourcesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listFundSources", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	sources, err := h.fundService.ListFundSources(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list fund sources")
		return
	}

	c.JSON(http.StatusOK, dto.ToFundSourceResponses(sources))
}

// getFundSource godoc
// @Summary Get a fund source
// @Tags fund-sources
// @Produce  json
// @Param   fundSourceID path string true "Fund source ID"
// @Success 200 {object} dto.FundSourceResponse "The fund source"
// @Failure 404 {object} map[string]string "Fund source not found"
// @Router /fund-sources/{fundSourceID} [get]
func (h *fundHandler) getFundSource(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fundSourceID := c.Param("fundSourceID")

	source, err := h.fundService.GetFundSourceByID(c.Request.Context(), fundSourceID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve fund source")
		return
	}

	c.JSON(http.StatusOK, dto.ToFundSourceResponse(source))
}

// updateFundSource godoc
// @Summary Update a fund source
// @Description Updates fund source metadata; balances change only through ledger operations
// @Tags fund-sources
// @Accept  json
// @Produce  json
// @Param   fundSourceID path string true "Fund source ID"
// @Param   fundSource body dto.UpdateFundSourceRequest true "Fields to update"
// @Success 200 {object} dto.FundSourceResponse "The updated fund source"
// @Failure 404 {object} map[string]string "Fund source not found"
// @Failure 409 {object} map[string]string "Code already in use"
// @Router /fund-sources/{fundSourceID} [put]
func (h *fundHandler) updateFundSource(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fundSourceID := c.Param("fundSourceID")

	var req dto.UpdateFundSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateFundSource", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	source, err := h.fundService.UpdateFundSource(c.Request.Context(), fundSourceID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update fund source")
		return
	}

	logger.Info("Fund source updated", slog.String("fund_source_id", fundSourceID))
	c.JSON(http.StatusOK, dto.ToFundSourceResponse(source))
}

// deleteFundSource godoc
// @Summary Delete a fund source
// @Description Hard-deletes a source with no ledger activity; deactivates it otherwise
// @Tags fund-sources
// @Param   fundSourceID path string true "Fund source ID"
// @Success 204 "Deleted or deactivated"
// @Failure 404 {object} map[string]string "Fund source not found"
// @Router /fund-sources/{fundSourceID} [delete]
func (h *fundHandler) deleteFundSource(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fundSourceID := c.Param("fundSourceID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.fundService.DeleteFundSource(c.Request.Context(), fundSourceID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete fund source")
		return
	}

	logger.Info("Fund source deleted", slog.String("fund_source_id", fundSourceID))
	c.Status(http.StatusNoContent)
}

// listFundTransactions godoc
// @Summary List a fund source's ledger entries
// @Description Retrieves fund transactions for one source, newest first
// @Tags fund-sources
// @Produce  json
// @Param   fundSourceID path string true "Fund source ID"
// @Param   type query string false "Filter by entry type"
// @Param   dateFrom query string false "Transaction date lower bound (YYYY-MM-DD)"
// @Param   dateTo query string false "Transaction date upper bound (YYYY-MM-DD)"
// @Param   limit query int false "Maximum entries to return"
// @Success 200 {array} dto.FundTransactionResponse "Ledger entries"
// @Failure 404 {object} map[string]string "Fund source not found"
// @Router /fund-sources/{fundSourceID}/transactions [get]
func (h *fundHandler) listFundTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fundSourceID := c.Param("fundSourceID")

	var params dto.ListFundTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listFundTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.fundService.ListFundTransactions(c.Request.Context(), fundSourceID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list fund transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToFundTransactionResponses(entries))
}

// recordDeposit godoc
// @Summary Record a deposit
// @Description Credits a fund source and appends a DEPOSIT ledger entry
// @Tags fund-sources
// @Accept  json
// @Produce  json
// @Param   fundSourceID path string true "Fund source ID"
// @Param   transaction body dto.RecordFundTransactionRequest true "Deposit details"
// @Success 201 {object} dto.FundTransactionResponse "The ledger entry"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Fund source not found"
// @Router /fund-sources/{fundSourceID}/deposit [post]
func (h *fundHandler) recordDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fundSourceID := c.Param("fundSourceID")

	var req dto.RecordFundTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordDeposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.fundService.RecordDeposit(c.Request.Context(), fundSourceID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record deposit")
		return
	}

	logger.Info("Deposit recorded", slog.String("fund_source_id", fundSourceID), slog.String("transaction_id", entry.TransactionID))
	c.JSON(http.StatusCreated, dto.ToFundTransactionResponse(entry))
}

// recordWithdrawal godoc
// @Summary Record a withdrawal
// @Description Debits a fund source and appends a WITHDRAWAL ledger entry; overdrafts are rejected
// @Tags fund-sources
// @Accept  json
// @Produce  json
// @Param   fundSourceID path string true "Fund source ID"
// @Param   transaction body dto.RecordFundTransactionRequest true "Withdrawal details"
// @Success 201 {object} dto.FundTransactionResponse "The ledger entry"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Fund source not found"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Router /fund-sources/{fundSourceID}/withdraw [post]
func (h *fundHandler) recordWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fundSourceID := c.Param("fundSourceID")

	var req dto.RecordFundTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordWithdrawal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.fundService.RecordWithdrawal(c.Request.Context(), fundSourceID, req, userID, false)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record withdrawal")
		return
	}

	logger.Info("Withdrawal recorded", slog.String("fund_source_id", fundSourceID), slog.String("transaction_id", entry.TransactionID))
	c.JSON(http.StatusCreated, dto.ToFundTransactionResponse(entry))
}

// adjustBalance godoc
// @Summary Adjust a fund source balance
// @Description Reconciles the balance to an exact figure, appending an ADJUSTMENT ledger entry carrying the difference
// @Tags fund-sources
// @Accept  json
// @Produce  json
// @Param   fundSourceID path string true "Fund source ID"
// @Param   adjustment body dto.AdjustBalanceRequest true "Target balance and reason"
// @Success 201 {object} dto.FundTransactionResponse "The ledger entry"
// @Failure 400 {object} map[string]string "Invalid request or no difference"
// @Failure 404 {object} map[string]string "Fund source not found"
// @Router /fund-sources/{fundSourceID}/adjust-balance [post]
func (h *fundHandler) adjustBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fundSourceID := c.Param("fundSourceID")

	var req dto.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for adjustBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.fundService.AdjustBalance(c.Request.Context(), fundSourceID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to adjust balance")
		return
	}

	logger.Info("Balance adjusted", slog.String("fund_source_id", fundSourceID), slog.String("transaction_id", entry.TransactionID))
	c.JSON(http.StatusCreated, dto.ToFundTransactionResponse(entry))
}

// createFundTransfer godoc
// @Summary Transfer funds between sources
// @Description Atomically debits the source by amount plus fee and credits the destination by amount minus fee
// @Tags fund-transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateFundTransferRequest true "Transfer details"
// @Success 201 {object} dto.FundTransferResponse "The completed transfer"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Fund source not found"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Router /fund-transfers [post]
func (h *fundHandler) createFundTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFundTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createFundTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transfer, err := h.fundService.CreateFundTransfer(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create fund transfer")
		return
	}

	logger.Info("Fund transfer completed", slog.String("transfer_id", transfer.TransferID), slog.String("transfer_number", transfer.TransferNumber))
	c.JSON(http.StatusCreated, dto.ToFundTransferResponse(transfer))
}

// listFundTransfers godoc
// @Summary List fund transfers
// @Description Retrieves fund transfers matching the filters, newest first. The fund source filter matches either side.
// @Tags fund-transfers
// @Produce  json
// @Param   fundSourceID query string false "Filter by fund source (either side)"
// @Param   dateFrom query string false "Transfer date lower bound (YYYY-MM-DD)"
// @Param   dateTo query string false "Transfer date upper bound (YYYY-MM-DD)"
// @Success 200 {array} dto.FundTransferResponse "Matching transfers"
// @Router /fund-transfers [get]
func (h *fundHandler) listFundTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListFundTransfersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listFundTransfers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	transfers, err := h.fundService.ListFundTransfers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list fund transfers")
		return
	}

	c.JSON(http.StatusOK, dto.ToFundTransferResponses(transfers))
}

// getFundTransfer godoc
// @Summary Get a fund transfer
// @Tags fund-transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 200 {object} dto.FundTransferResponse "The transfer"
// @Failure 404 {object} map[string]string "Transfer not found"
// @Router /fund-transfers/{transferID} [get]
func (h *fundHandler) getFundTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	transfer, err := h.fundService.GetFundTransferByID(c.Request.Context(), transferID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve fund transfer")
		return
	}

	c.JSON(http.StatusOK, dto.ToFundTransferResponse(transfer))
}
