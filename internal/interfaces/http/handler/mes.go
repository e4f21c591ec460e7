package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/console/internal/domain/status"
	"github.com/erp/console/internal/infrastructure/erp"
	"github.com/erp/console/internal/interfaces/http/dto"
	"github.com/erp/console/internal/presentation/format"
)

// MESHandler serves the routing and quality control screens.
type MESHandler struct {
	BaseHandler
	client erp.MESClient
	cfg    ScreenConfig
}

// NewMESHandler creates a new manufacturing screens handler
func NewMESHandler(client *erp.Client, cfg ScreenConfig) *MESHandler {
	return &MESHandler{client: client.MES(), cfg: cfg}
}

// RegisterRoutes registers the manufacturing screen routes. Quality
// controls are never deleted; a finished check stays on record.
func (h *MESHandler) RegisterRoutes(rg *gin.RouterGroup) {
	routings := rg.Group("/mes/routings")
	{
		routings.GET("", h.ListRoutings)
		routings.POST("", h.CreateRouting)
		routings.PUT("/:id", h.UpdateRouting)
		routings.DELETE("/:id", h.DeleteRouting)
		routings.POST("/:id/actions/:action", h.TransitionRouting)
	}

	checks := rg.Group("/mes/quality-controls")
	{
		checks.GET("", h.ListQualityControls)
		checks.POST("", h.CreateQualityControl)
		checks.PUT("/:id", h.UpdateQualityControl)
		checks.POST("/:id/actions/:action", h.TransitionQualityControl)
	}
}

var routingColumns = []string{"code", "product", "version", "step_count", "status"}

func (h *MESHandler) routingRows(ctx context.Context, items []erp.Routing) []dto.Row {
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		badge := format.StatusBadge(ctx, status.Status(item.Status))
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"code":       item.Code,
				"product":    item.ProductName,
				"version":    fmt.Sprintf("v%d", item.Version),
				"step_count": fmt.Sprintf("%d", item.StepCount),
			},
			Badge:   &badge,
			Actions: rowActions(ctx, status.Routings, status.Status(item.Status)),
		})
	}
	return rows
}

// ListRoutings renders the routing list screen
func (h *MESHandler) ListRoutings(c *gin.Context) {
	serveList(c, &h.BaseHandler, h.cfg, routingColumns, bindListQuery(c),
		h.client.ListRoutings, h.routingRows)
}

func (h *MESHandler) CreateRouting(c *gin.Context) {
	var req dto.RoutingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreateRouting(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, routingColumns, http.StatusCreated,
		h.client.ListRoutings, h.routingRows)
}

func (h *MESHandler) UpdateRouting(c *gin.Context) {
	var req dto.RoutingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdateRouting(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, routingColumns, http.StatusOK,
		h.client.ListRoutings, h.routingRows)
}

func (h *MESHandler) DeleteRouting(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	routing, err := h.client.GetRouting(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.Routings.CanDelete(status.Status(routing.Status)) {
		h.InvalidTransition(c)
		return
	}

	if err := h.client.DeleteRouting(ctx, id); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, routingColumns, http.StatusOK,
		h.client.ListRoutings, h.routingRows)
}

func (h *MESHandler) TransitionRouting(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	name := c.Param("action")

	routing, err := h.client.GetRouting(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.Routings.CanPerform(status.Status(routing.Status), status.Action(name)) {
		h.InvalidTransition(c)
		return
	}

	if _, err := h.client.TransitionRouting(ctx, id, name); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, routingColumns, http.StatusOK,
		h.client.ListRoutings, h.routingRows)
}

var qualityColumns = []string{"batch", "product", "inspector", "status", "notes", "checked_at"}

func (h *MESHandler) qualityRows(ctx context.Context, items []erp.QualityControl) []dto.Row {
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		badge := format.StatusBadge(ctx, status.Status(item.Status))
		var checkedAt string
		if item.CheckedAt != nil {
			checkedAt = format.DateTime(*item.CheckedAt)
		}
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"batch":      item.BatchCode,
				"product":    item.ProductName,
				"inspector":  item.Inspector,
				"notes":      item.Notes,
				"checked_at": checkedAt,
			},
			Badge:   &badge,
			Actions: rowActions(ctx, status.QualityControls, status.Status(item.Status)),
		})
	}
	return rows
}

func (h *MESHandler) ListQualityControls(c *gin.Context) {
	serveList(c, &h.BaseHandler, h.cfg, qualityColumns, bindListQuery(c),
		h.client.ListQualityControls, h.qualityRows)
}

func (h *MESHandler) CreateQualityControl(c *gin.Context) {
	var req dto.QualityControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreateQualityControl(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, qualityColumns, http.StatusCreated,
		h.client.ListQualityControls, h.qualityRows)
}

func (h *MESHandler) UpdateQualityControl(c *gin.Context) {
	var req dto.QualityControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdateQualityControl(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, qualityColumns, http.StatusOK,
		h.client.ListQualityControls, h.qualityRows)
}

// TransitionQualityControl records the pass or fail verdict for a
// pending check.
func (h *MESHandler) TransitionQualityControl(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	name := c.Param("action")

	check, err := h.client.GetQualityControl(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.QualityControls.CanPerform(status.Status(check.Status), status.Action(name)) {
		h.InvalidTransition(c)
		return
	}

	if _, err := h.client.TransitionQualityControl(ctx, id, name); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, qualityColumns, http.StatusOK,
		h.client.ListQualityControls, h.qualityRows)
}
