package handler

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/console/internal/domain/status"
	"github.com/erp/console/internal/infrastructure/erp"
	"github.com/erp/console/internal/infrastructure/intl"
	"github.com/erp/console/internal/infrastructure/logger"
	"github.com/erp/console/internal/interfaces/http/dto"
	"github.com/erp/console/internal/presentation/format"
)

// AutomationHandler serves the job-run dashboard. The snapshot is
// cached and refreshed at a fixed interval; at most one upstream fetch
// runs at a time, and readers that arrive mid-fetch get the cached
// copy marked stale instead of piling on.
type AutomationHandler struct {
	BaseHandler
	client   erp.AutomationClient
	cfg      ScreenConfig
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	cached   *erp.DashboardSnapshot
	fetching bool
}

// NewAutomationHandler creates a new automation dashboard handler
func NewAutomationHandler(client *erp.Client, cfg ScreenConfig, interval time.Duration, log *zap.Logger) *AutomationHandler {
	if log == nil {
		log = zap.NewNop()
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &AutomationHandler{
		client:   client.Automation(),
		cfg:      cfg,
		interval: interval,
		logger:   log,
	}
}

// RegisterRoutes registers the automation screen routes
func (h *AutomationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/automation/dashboard", h.Dashboard)
	rg.POST("/automation/jobs/:name/run", h.TriggerJob)
}

// Run keeps the snapshot warm until ctx is cancelled. It is started
// once from main when polling is enabled.
func (h *AutomationHandler) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.refresh(ctx)
		}
	}
}

// refresh fetches a new snapshot unless one is already in flight.
func (h *AutomationHandler) refresh(ctx context.Context) *erp.DashboardSnapshot {
	h.mu.Lock()
	if h.fetching {
		cached := h.cached
		h.mu.Unlock()
		return cached
	}
	h.fetching = true
	h.mu.Unlock()

	snapshot, err := h.client.GetDashboard(ctx)

	h.mu.Lock()
	h.fetching = false
	if err == nil {
		h.cached = snapshot
	}
	cached := h.cached
	h.mu.Unlock()

	if err != nil {
		h.logger.Warn("dashboard refresh failed",
			zap.Error(err),
			zap.Duration("interval", h.interval),
		)
	}
	return cached
}

// Dashboard serves the cached snapshot, refreshing it first when it
// has aged past the poll interval.
func (h *AutomationHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	h.mu.Lock()
	cached := h.cached
	h.mu.Unlock()

	if cached == nil || time.Since(cached.FetchedAt) >= h.interval {
		cached = h.refresh(ctx)
	}
	if cached == nil {
		logger.ForRequest(c).Warn("dashboard unavailable", zap.String("path", c.FullPath()))
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstreamUnavailable, intl.T(ctx, "error.unavailable"))
		return
	}

	stale := time.Since(cached.FetchedAt) >= h.interval
	h.Success(c, h.dashboardView(ctx, cached, stale))
}

// TriggerJob asks the backend to run a job now, then forces one
// refresh so the new run shows up immediately.
func (h *AutomationHandler) TriggerJob(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.client.TriggerJob(ctx, c.Param("name")); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	h.mu.Lock()
	h.cached = nil
	h.mu.Unlock()

	snapshot := h.refresh(ctx)
	if snapshot == nil {
		h.Success(c, dto.DashboardView{Jobs: []dto.JobRunView{}, Stale: true})
		return
	}
	h.Success(c, h.dashboardView(ctx, snapshot, false))
}

func (h *AutomationHandler) dashboardView(ctx context.Context, s *erp.DashboardSnapshot, stale bool) dto.DashboardView {
	jobs := make([]dto.JobRunView, 0, len(s.Jobs))
	for _, run := range s.Jobs {
		var finished string
		if run.FinishedAt != nil {
			finished = format.DateTime(*run.FinishedAt)
		}
		jobs = append(jobs, dto.JobRunView{
			ID:       run.ID,
			JobName:  run.JobName,
			Badge:    format.StatusBadge(ctx, status.Status(run.Status)),
			Started:  format.DateTime(run.StartedAt),
			Finished: finished,
			Duration: formatDuration(run.DurationMS),
			Error:    run.Error,
		})
	}
	return dto.DashboardView{
		Jobs:      jobs,
		Running:   s.Running,
		Failed:    s.Failed,
		FetchedAt: s.FetchedAt.Format(time.RFC3339),
		Stale:     stale,
	}
}

// formatDuration renders a run length the way the dashboard shows it:
// sub-second runs in milliseconds, longer ones in seconds.
func formatDuration(ms int64) string {
	if ms <= 0 {
		return ""
	}
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}
