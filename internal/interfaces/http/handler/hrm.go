package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/console/internal/domain/status"
	"github.com/erp/console/internal/infrastructure/erp"
	"github.com/erp/console/internal/infrastructure/intl"
	"github.com/erp/console/internal/interfaces/http/dto"
	"github.com/erp/console/internal/presentation/format"
)

// HRMHandler serves the training course, department and bonus screens.
type HRMHandler struct {
	BaseHandler
	client erp.HRMClient
	cfg    ScreenConfig
}

// NewHRMHandler creates a new HRM screens handler
func NewHRMHandler(client *erp.Client, cfg ScreenConfig) *HRMHandler {
	return &HRMHandler{client: client.HRM(), cfg: cfg}
}

// RegisterRoutes registers the HRM screen routes
func (h *HRMHandler) RegisterRoutes(rg *gin.RouterGroup) {
	courses := rg.Group("/hrm/training-courses")
	{
		courses.GET("", h.ListTrainingCourses)
		courses.POST("", h.CreateTrainingCourse)
		courses.PUT("/:id", h.UpdateTrainingCourse)
		courses.DELETE("/:id", h.DeleteTrainingCourse)
		courses.POST("/:id/actions/:action", h.TransitionTrainingCourse)
	}

	departments := rg.Group("/hrm/departments")
	{
		departments.GET("", h.ListDepartments)
		departments.POST("", h.CreateDepartment)
		departments.PUT("/:id", h.UpdateDepartment)
		departments.DELETE("/:id", h.DeleteDepartment)
	}

	bonuses := rg.Group("/hrm/bonuses")
	{
		bonuses.GET("", h.ListBonuses)
		bonuses.POST("", h.CreateBonus)
		bonuses.PUT("/:id", h.UpdateBonus)
		bonuses.DELETE("/:id", h.DeleteBonus)
		bonuses.POST("/:id/actions/:action", h.TransitionBonus)
	}
}

var courseColumns = []string{"name", "instructor", "start_date", "end_date", "capacity", "enrolled", "status"}

func (h *HRMHandler) courseRows(ctx context.Context, items []erp.TrainingCourse) []dto.Row {
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		badge := format.StatusBadge(ctx, status.Status(item.Status))
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"name":       item.Name,
				"instructor": item.Instructor,
				"start_date": format.Date(item.StartDate),
				"end_date":   format.Date(item.EndDate),
				"capacity":   fmt.Sprintf("%d", item.Capacity),
				"enrolled":   fmt.Sprintf("%d/%d", item.Enrolled, item.Capacity),
			},
			Badge:   &badge,
			Actions: rowActions(ctx, status.TrainingCourses, status.Status(item.Status)),
		})
	}
	return rows
}

// ListTrainingCourses renders the training course list screen
func (h *HRMHandler) ListTrainingCourses(c *gin.Context) {
	serveList(c, &h.BaseHandler, h.cfg, courseColumns, bindListQuery(c),
		h.client.ListTrainingCourses, h.courseRows)
}

func (h *HRMHandler) CreateTrainingCourse(c *gin.Context) {
	var req dto.TrainingCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreateTrainingCourse(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, courseColumns, http.StatusCreated,
		h.client.ListTrainingCourses, h.courseRows)
}

func (h *HRMHandler) UpdateTrainingCourse(c *gin.Context) {
	var req dto.TrainingCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdateTrainingCourse(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, courseColumns, http.StatusOK,
		h.client.ListTrainingCourses, h.courseRows)
}

func (h *HRMHandler) DeleteTrainingCourse(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	course, err := h.client.GetTrainingCourse(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.TrainingCourses.CanDelete(status.Status(course.Status)) {
		h.InvalidTransition(c)
		return
	}

	if err := h.client.DeleteTrainingCourse(ctx, id); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, courseColumns, http.StatusOK,
		h.client.ListTrainingCourses, h.courseRows)
}

func (h *HRMHandler) TransitionTrainingCourse(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	name := c.Param("action")

	course, err := h.client.GetTrainingCourse(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.TrainingCourses.CanPerform(status.Status(course.Status), status.Action(name)) {
		h.InvalidTransition(c)
		return
	}

	if _, err := h.client.TransitionTrainingCourse(ctx, id, name); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, courseColumns, http.StatusOK,
		h.client.ListTrainingCourses, h.courseRows)
}

var departmentColumns = []string{"code", "name", "manager", "headcount"}

// departmentRows builds plain CRUD rows. Departments carry no status,
// so there is no badge and every row offers the same actions.
func (h *HRMHandler) departmentRows(ctx context.Context, items []erp.Department) []dto.Row {
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"code":      item.Code,
				"name":      item.Name,
				"manager":   item.ManagerName,
				"headcount": fmt.Sprintf("%d", item.Headcount),
			},
			Actions: crudActions(ctx),
		})
	}
	return rows
}

func (h *HRMHandler) ListDepartments(c *gin.Context) {
	serveList(c, &h.BaseHandler, h.cfg, departmentColumns, bindListQuery(c),
		h.client.ListDepartments, h.departmentRows)
}

func (h *HRMHandler) CreateDepartment(c *gin.Context) {
	var req dto.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreateDepartment(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, departmentColumns, http.StatusCreated,
		h.client.ListDepartments, h.departmentRows)
}

func (h *HRMHandler) UpdateDepartment(c *gin.Context) {
	var req dto.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdateDepartment(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, departmentColumns, http.StatusOK,
		h.client.ListDepartments, h.departmentRows)
}

// DeleteDepartment deletes a department. There is no status gate; the
// backend decides whether the unit can go.
func (h *HRMHandler) DeleteDepartment(c *gin.Context) {
	if err := h.client.DeleteDepartment(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, departmentColumns, http.StatusOK,
		h.client.ListDepartments, h.departmentRows)
}

var bonusColumns = []string{"employee", "amount", "reason", "status", "awarded_at"}

func (h *HRMHandler) bonusRows(ctx context.Context, items []erp.Bonus) []dto.Row {
	locale := intl.UseLocale(ctx)
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		badge := format.StatusBadge(ctx, status.Status(item.Status))
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"employee":   item.EmployeeName,
				"amount":     format.Money(item.Amount, item.Currency, locale),
				"reason":     item.Reason,
				"awarded_at": format.Date(item.AwardedAt),
			},
			Badge:   &badge,
			Actions: rowActions(ctx, status.Bonuses, status.Status(item.Status)),
		})
	}
	return rows
}

func (h *HRMHandler) ListBonuses(c *gin.Context) {
	serveList(c, &h.BaseHandler, h.cfg, bonusColumns, bindListQuery(c),
		h.client.ListBonuses, h.bonusRows)
}

func (h *HRMHandler) CreateBonus(c *gin.Context) {
	var req dto.BonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreateBonus(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, bonusColumns, http.StatusCreated,
		h.client.ListBonuses, h.bonusRows)
}

func (h *HRMHandler) UpdateBonus(c *gin.Context) {
	var req dto.BonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdateBonus(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, bonusColumns, http.StatusOK,
		h.client.ListBonuses, h.bonusRows)
}

func (h *HRMHandler) DeleteBonus(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	bonus, err := h.client.GetBonus(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.Bonuses.CanDelete(status.Status(bonus.Status)) {
		h.InvalidTransition(c)
		return
	}

	if err := h.client.DeleteBonus(ctx, id); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, bonusColumns, http.StatusOK,
		h.client.ListBonuses, h.bonusRows)
}

func (h *HRMHandler) TransitionBonus(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	name := c.Param("action")

	bonus, err := h.client.GetBonus(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.Bonuses.CanPerform(status.Status(bonus.Status), status.Action(name)) {
		h.InvalidTransition(c)
		return
	}

	if _, err := h.client.TransitionBonus(ctx, id, name); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, bonusColumns, http.StatusOK,
		h.client.ListBonuses, h.bonusRows)
}
