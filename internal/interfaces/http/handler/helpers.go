package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/erp/console/internal/domain/status"
	"github.com/erp/console/internal/infrastructure/erp"
	"github.com/erp/console/internal/infrastructure/intl"
	"github.com/erp/console/internal/infrastructure/logger"
	"github.com/erp/console/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// ScreenConfig carries the few settings every screen handler shares.
type ScreenConfig struct {
	// LoginPath is where a screen GET is redirected when the backend
	// rejects the session.
	LoginPath string
}

// DefaultScreenConfig returns the default screen configuration.
func DefaultScreenConfig() ScreenConfig {
	return ScreenConfig{LoginPath: "/login"}
}

// bindListQuery binds the common list parameters and clamps them.
func bindListQuery(c *gin.Context) erp.ListQuery {
	var req dto.ListRequest
	_ = c.ShouldBindQuery(&req)
	req = req.Normalize()

	q := erp.ListQuery{
		Page:   req.Page,
		Size:   req.PageSize,
		Search: req.Search,
	}
	if req.Status != "" {
		q = q.WithFilter("status", req.Status)
	}
	return q
}

// rowActions builds the action list a row offers: the eligible status
// transitions in canonical order, then edit, then delete.
func rowActions(ctx context.Context, m status.Machine, s status.Status) []dto.RowAction {
	actions := make([]dto.RowAction, 0, 4)
	for _, a := range m.AllowedActions(s) {
		actions = append(actions, dto.RowAction{
			Kind:  "transition",
			Name:  a.String(),
			Label: intl.T(ctx, "action."+a.String()),
		})
	}
	if m.CanEdit(s) {
		actions = append(actions, dto.RowAction{Kind: "edit", Label: intl.T(ctx, "action.edit")})
	}
	if m.CanDelete(s) {
		actions = append(actions, dto.RowAction{Kind: "delete", Label: intl.T(ctx, "action.delete")})
	}
	return actions
}

// crudActions is the action list for resources without a status flow.
func crudActions(ctx context.Context) []dto.RowAction {
	return []dto.RowAction{
		{Kind: "edit", Label: intl.T(ctx, "action.edit")},
		{Kind: "delete", Label: intl.T(ctx, "action.delete")},
	}
}

// serveList runs one list fetch and renders the screen. A backend 401
// redirects the browser to the login page; any other failure degrades
// to an empty screen with the unavailable flag instead of blocking the
// page.
func serveList[T any](
	c *gin.Context,
	h *BaseHandler,
	cfg ScreenConfig,
	columns []string,
	q erp.ListQuery,
	fetch func(context.Context, erp.ListQuery) (*erp.Page[T], error),
	build func(context.Context, []T) []dto.Row,
) {
	renderList(c, h, cfg, columns, q, fetch, build, http.StatusOK)
}

// refreshAfterMutation performs the single re-fetch that follows a
// successful create, update, delete or transition.
func refreshAfterMutation[T any](
	c *gin.Context,
	h *BaseHandler,
	cfg ScreenConfig,
	columns []string,
	statusCode int,
	fetch func(context.Context, erp.ListQuery) (*erp.Page[T], error),
	build func(context.Context, []T) []dto.Row,
) {
	renderList(c, h, cfg, columns, bindListQuery(c), fetch, build, statusCode)
}

func renderList[T any](
	c *gin.Context,
	h *BaseHandler,
	cfg ScreenConfig,
	columns []string,
	q erp.ListQuery,
	fetch func(context.Context, erp.ListQuery) (*erp.Page[T], error),
	build func(context.Context, []T) []dto.Row,
	statusCode int,
) {
	ctx, reqLog := logger.WithScreen(c.Request.Context(), logger.ForRequest(c), screenName(c))
	c.Request = c.Request.WithContext(ctx)

	page, err := fetch(ctx, q)
	if err != nil {
		if apiErr, ok := erp.AsAPIError(err); ok && apiErr.IsAuth() {
			c.Redirect(http.StatusSeeOther, cfg.LoginPath)
			c.Abort()
			return
		}
		reqLog.Warn("list fetch degraded", zap.Error(err))
		c.JSON(statusCode, dto.NewSuccessResponse(dto.UnavailableScreen(columns)))
		return
	}

	screen := dto.Screen{
		Columns: columns,
		Rows:    build(ctx, page.Items),
	}
	c.JSON(statusCode, withMeta(screen, page.Total, page.Page, page.Size))
}

// screenName derives the dotted screen id the logs use from the
// matched route: /api/v1/accounting/payment-vouchers becomes
// accounting.payment_vouchers.
func screenName(c *gin.Context) string {
	path := strings.TrimPrefix(c.FullPath(), "/api/v1/")
	parts := make([]string, 0, 3)
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || seg == "actions" || strings.HasPrefix(seg, ":") {
			continue
		}
		parts = append(parts, strings.ReplaceAll(seg, "-", "_"))
	}
	return strings.Join(parts, ".")
}

func withMeta(screen dto.Screen, total int64, page, pageSize int) dto.Response {
	if pageSize < 1 {
		pageSize = 20
	}
	if page < 1 {
		page = 1
	}
	return dto.NewSuccessResponseWithMeta(screen, total, page, pageSize)
}
