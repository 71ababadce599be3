package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/inventra/inventra_backend/internal/core/ports/services"
	"github.com/inventra/inventra_backend/internal/dto"
	"github.com/inventra/inventra_backend/internal/middleware"
)

// inventoryHandler handles HTTP requests for stock balances and movements.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

// newInventoryHandler creates a new inventoryHandler.
func newInventoryHandler(inventoryService portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
	}
}

// registerInventoryRoutes registers stock read routes under the given group.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)
	inventory := rg.Group("/inventory")
	{
		inventory.GET("/stock-levels", h.listStockLevels)
		inventory.GET("/stock-levels/:warehouseID/:productID", h.getStockQuantity)
		inventory.GET("/movements", h.listMovements)
	}
}

// listStockLevels godoc
// @Summary List stock levels
// @Description Retrieves per-product, per-warehouse balances joined with catalog metadata
// @Tags inventory
// @Produce  json
// @Param   warehouseID query string false "Filter by warehouse"
// @Param   productID query string false "Filter by product"
// @Param   search query string false "Match against product name or SKU"
// @Success 200 {array} dto.StockLevelResponse "Stock levels"
// @Router /inventory/stock-levels [get]
func (h *inventoryHandler) listStockLevels(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListStockLevelsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listStockLevels", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	levels, err := h.inventoryService.ListStockLevels(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list stock levels")
		return
	}

	c.JSON(http.StatusOK, dto.ToStockLevelResponses(levels))
}

// getStockQuantity godoc
// @Summary Get one stock balance
// @Description Returns the current balance for one product in one warehouse, zero when no stock has ever moved there
// @Tags inventory
// @Produce  json
// @Param   warehouseID path string true "Warehouse ID"
// @Param   productID path string true "Product ID"
// @Success 200 {object} dto.StockLevelResponse "The balance"
// @Failure 404 {object} map[string]string "Product or warehouse not found"
// @Router /inventory/stock-levels/{warehouseID}/{productID} [get]
func (h *inventoryHandler) getStockQuantity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	warehouseID := c.Param("warehouseID")
	productID := c.Param("productID")

	level, err := h.inventoryService.GetStockQuantity(c.Request.Context(), productID, warehouseID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve stock quantity")
		return
	}

	c.JSON(http.StatusOK, level)
}

// listMovements godoc
// @Summary List stock movements
// @Description Retrieves movement ledger entries, newest first
// @Tags inventory
// @Produce  json
// @Param   productID query string false "Filter by product"
// @Param   warehouseID query string false "Filter by warehouse"
// @Param   type query string false "Filter by movement type"
// @Param   dateFrom query string false "Occurred-at lower bound (YYYY-MM-DD)"
// @Param   dateTo query string false "Occurred-at upper bound (YYYY-MM-DD)"
// @Param   limit query int false "Maximum entries to return"
// @Success 200 {array} dto.StockMovementResponse "Movements"
// @Router /inventory/movements [get]
func (h *inventoryHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listMovements", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	movements, err := h.inventoryService.ListMovements(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list stock movements")
		return
	}

	c.JSON(http.StatusOK, dto.ToStockMovementResponses(movements))
}
