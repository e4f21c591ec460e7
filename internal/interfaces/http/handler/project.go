package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/console/internal/domain/status"
	"github.com/erp/console/internal/infrastructure/erp"
	"github.com/erp/console/internal/interfaces/http/dto"
	"github.com/erp/console/internal/presentation/format"
)

// ProjectHandler serves the project risk register screen.
type ProjectHandler struct {
	BaseHandler
	client erp.ProjectClient
	cfg    ScreenConfig
}

// NewProjectHandler creates a new project screens handler
func NewProjectHandler(client *erp.Client, cfg ScreenConfig) *ProjectHandler {
	return &ProjectHandler{client: client.Project(), cfg: cfg}
}

// RegisterRoutes registers the project screen routes
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	risks := rg.Group("/project/risks")
	{
		risks.GET("", h.ListRisks)
		risks.POST("", h.CreateRisk)
		risks.PUT("/:id", h.UpdateRisk)
		risks.DELETE("/:id", h.DeleteRisk)
		risks.POST("/:id/actions/:action", h.TransitionRisk)
	}
}

var riskColumns = []string{"project", "title", "severity", "owner", "mitigation", "status"}

func (h *ProjectHandler) riskRows(ctx context.Context, items []erp.Risk) []dto.Row {
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		badge := format.StatusBadge(ctx, status.Status(item.Status))
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"project":    item.ProjectName,
				"title":      item.Title,
				"severity":   item.Severity,
				"owner":      item.Owner,
				"mitigation": item.Mitigation,
			},
			Badge:   &badge,
			Actions: rowActions(ctx, status.Risks, status.Status(item.Status)),
		})
	}
	return rows
}

// ListRisks renders the risk register screen. A severity filter is
// forwarded verbatim alongside the usual parameters.
func (h *ProjectHandler) ListRisks(c *gin.Context) {
	q := bindListQuery(c)
	if severity := c.Query("severity"); severity != "" {
		q = q.WithFilter("severity", severity)
	}
	serveList(c, &h.BaseHandler, h.cfg, riskColumns, q, h.client.ListRisks, h.riskRows)
}

func (h *ProjectHandler) CreateRisk(c *gin.Context) {
	var req dto.RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreateRisk(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, riskColumns, http.StatusCreated,
		h.client.ListRisks, h.riskRows)
}

func (h *ProjectHandler) UpdateRisk(c *gin.Context) {
	var req dto.RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdateRisk(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, riskColumns, http.StatusOK,
		h.client.ListRisks, h.riskRows)
}

func (h *ProjectHandler) DeleteRisk(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	risk, err := h.client.GetRisk(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.Risks.CanDelete(status.Status(risk.Status)) {
		h.InvalidTransition(c)
		return
	}

	if err := h.client.DeleteRisk(ctx, id); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, riskColumns, http.StatusOK,
		h.client.ListRisks, h.riskRows)
}

func (h *ProjectHandler) TransitionRisk(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	name := c.Param("action")

	risk, err := h.client.GetRisk(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.Risks.CanPerform(status.Status(risk.Status), status.Action(name)) {
		h.InvalidTransition(c)
		return
	}

	if _, err := h.client.TransitionRisk(ctx, id, name); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, riskColumns, http.StatusOK,
		h.client.ListRisks, h.riskRows)
}
