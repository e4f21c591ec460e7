package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/console/internal/infrastructure/erp"
	"github.com/erp/console/internal/interfaces/http/dto"
)

// WarehouseHandler serves the category screen and the stock overview.
type WarehouseHandler struct {
	BaseHandler
	client erp.WarehouseClient
	cfg    ScreenConfig
}

// NewWarehouseHandler creates a new warehouse screens handler
func NewWarehouseHandler(client *erp.Client, cfg ScreenConfig) *WarehouseHandler {
	return &WarehouseHandler{client: client.Warehouse(), cfg: cfg}
}

// RegisterRoutes registers the warehouse screen routes
func (h *WarehouseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/warehouse/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	rg.GET("/warehouse/stock", h.ListStock)
}

var categoryColumns = []string{"name", "description", "product_count"}

func (h *WarehouseHandler) categoryRows(ctx context.Context, items []erp.Category) []dto.Row {
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"name":          item.Name,
				"description":   item.Description,
				"product_count": fmt.Sprintf("%d", item.ProductCount),
			},
			Actions: crudActions(ctx),
		})
	}
	return rows
}

// ListCategories renders the category list screen
func (h *WarehouseHandler) ListCategories(c *gin.Context) {
	serveList(c, &h.BaseHandler, h.cfg, categoryColumns, bindListQuery(c),
		h.client.ListCategories, h.categoryRows)
}

func (h *WarehouseHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreateCategory(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, categoryColumns, http.StatusCreated,
		h.client.ListCategories, h.categoryRows)
}

func (h *WarehouseHandler) UpdateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdateCategory(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, categoryColumns, http.StatusOK,
		h.client.ListCategories, h.categoryRows)
}

// DeleteCategory deletes a category. The backend rejects a category
// that still has products; its error is passed through.
func (h *WarehouseHandler) DeleteCategory(c *gin.Context) {
	if err := h.client.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, categoryColumns, http.StatusOK,
		h.client.ListCategories, h.categoryRows)
}

var stockColumns = []string{"sku", "product", "category", "on_hand", "reserved", "available", "unit"}

// stockRows builds the read-only overview. Rows carry no actions; the
// screen is a live snapshot, not an editor.
func (h *WarehouseHandler) stockRows(_ context.Context, items []erp.StockItem) []dto.Row {
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, dto.Row{
			ID: item.SKU,
			Cells: map[string]string{
				"sku":       item.SKU,
				"product":   item.ProductName,
				"category":  item.Category,
				"on_hand":   fmt.Sprintf("%d", item.OnHand),
				"reserved":  fmt.Sprintf("%d", item.Reserved),
				"available": fmt.Sprintf("%d", item.Available),
				"unit":      item.Unit,
			},
		})
	}
	return rows
}

// ListStock renders the stock overview screen
func (h *WarehouseHandler) ListStock(c *gin.Context) {
	serveList(c, &h.BaseHandler, h.cfg, stockColumns, bindListQuery(c),
		h.client.ListStock, h.stockRows)
}
