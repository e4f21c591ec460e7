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

// DispatchHandler serves the transport order, vehicle and driver
// screens.
type DispatchHandler struct {
	BaseHandler
	client erp.DispatchClient
	cfg    ScreenConfig
}

// NewDispatchHandler creates a new dispatch screens handler
func NewDispatchHandler(client *erp.Client, cfg ScreenConfig) *DispatchHandler {
	return &DispatchHandler{client: client.Dispatch(), cfg: cfg}
}

// RegisterRoutes registers the dispatch screen routes
func (h *DispatchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/dispatch/orders")
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.CreateOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
		orders.POST("/:id/actions/:action", h.TransitionOrder)
	}

	vehicles := rg.Group("/dispatch/vehicles")
	{
		vehicles.GET("", h.ListVehicles)
		vehicles.POST("", h.CreateVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)
		vehicles.POST("/:id/actions/:action", h.TransitionVehicle)
	}

	drivers := rg.Group("/dispatch/drivers")
	{
		drivers.GET("", h.ListDrivers)
		drivers.POST("", h.CreateDriver)
		drivers.PUT("/:id", h.UpdateDriver)
		drivers.DELETE("/:id", h.DeleteDriver)
		drivers.POST("/:id/actions/:action", h.TransitionDriver)
	}
}

var orderColumns = []string{"code", "origin", "destination", "cargo", "vehicle", "driver", "status", "scheduled_at"}

func (h *DispatchHandler) orderRows(ctx context.Context, items []erp.DispatchOrder) []dto.Row {
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		badge := format.StatusBadge(ctx, status.Status(item.Status))
		var scheduledAt string
		if item.ScheduledAt != nil {
			scheduledAt = format.DateTime(*item.ScheduledAt)
		}
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"code":         item.Code,
				"origin":       item.Origin,
				"destination":  item.Destination,
				"cargo":        item.Cargo,
				"vehicle":      item.VehiclePlate,
				"driver":       item.DriverName,
				"scheduled_at": scheduledAt,
			},
			Badge:   &badge,
			Actions: rowActions(ctx, status.DispatchOrders, status.Status(item.Status)),
		})
	}
	return rows
}

// ListOrders renders the dispatch order list screen
func (h *DispatchHandler) ListOrders(c *gin.Context) {
	serveList(c, &h.BaseHandler, h.cfg, orderColumns, bindListQuery(c),
		h.client.ListOrders, h.orderRows)
}

func (h *DispatchHandler) CreateOrder(c *gin.Context) {
	var req dto.DispatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreateOrder(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, orderColumns, http.StatusCreated,
		h.client.ListOrders, h.orderRows)
}

func (h *DispatchHandler) UpdateOrder(c *gin.Context) {
	var req dto.DispatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdateOrder(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, orderColumns, http.StatusOK,
		h.client.ListOrders, h.orderRows)
}

func (h *DispatchHandler) DeleteOrder(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	order, err := h.client.GetOrder(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.DispatchOrders.CanDelete(status.Status(order.Status)) {
		h.InvalidTransition(c)
		return
	}

	if err := h.client.DeleteOrder(ctx, id); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, orderColumns, http.StatusOK,
		h.client.ListOrders, h.orderRows)
}

// TransitionOrder forwards an eligible order action. Assignment is the
// one action that carries a body: the vehicle and driver picked in the
// modal.
func (h *DispatchHandler) TransitionOrder(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	name := c.Param("action")

	order, err := h.client.GetOrder(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.DispatchOrders.CanPerform(status.Status(order.Status), status.Action(name)) {
		h.InvalidTransition(c)
		return
	}

	if name == "assign" {
		var req dto.AssignmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.ValidationError(c, err)
			return
		}
		if _, err := h.client.AssignOrder(ctx, id, req.ToPayload()); err != nil {
			h.HandleUpstreamError(c, err)
			return
		}
	} else {
		if _, err := h.client.TransitionOrder(ctx, id, name); err != nil {
			h.HandleUpstreamError(c, err)
			return
		}
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, orderColumns, http.StatusOK,
		h.client.ListOrders, h.orderRows)
}

var vehicleColumns = []string{"plate", "model", "capacity_kg", "status"}

func (h *DispatchHandler) vehicleRows(ctx context.Context, items []erp.Vehicle) []dto.Row {
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		badge := format.StatusBadge(ctx, status.Status(item.Status))
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"plate":       item.PlateNumber,
				"model":       item.Model,
				"capacity_kg": fmt.Sprintf("%d", item.CapacityKg),
			},
			Badge:   &badge,
			Actions: rowActions(ctx, status.Vehicles, status.Status(item.Status)),
		})
	}
	return rows
}

func (h *DispatchHandler) ListVehicles(c *gin.Context) {
	serveList(c, &h.BaseHandler, h.cfg, vehicleColumns, bindListQuery(c),
		h.client.ListVehicles, h.vehicleRows)
}

func (h *DispatchHandler) CreateVehicle(c *gin.Context) {
	var req dto.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreateVehicle(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, vehicleColumns, http.StatusCreated,
		h.client.ListVehicles, h.vehicleRows)
}

func (h *DispatchHandler) UpdateVehicle(c *gin.Context) {
	var req dto.VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdateVehicle(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, vehicleColumns, http.StatusOK,
		h.client.ListVehicles, h.vehicleRows)
}

func (h *DispatchHandler) DeleteVehicle(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	vehicle, err := h.client.GetVehicle(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.Vehicles.CanDelete(status.Status(vehicle.Status)) {
		h.InvalidTransition(c)
		return
	}

	if err := h.client.DeleteVehicle(ctx, id); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, vehicleColumns, http.StatusOK,
		h.client.ListVehicles, h.vehicleRows)
}

func (h *DispatchHandler) TransitionVehicle(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	name := c.Param("action")

	vehicle, err := h.client.GetVehicle(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.Vehicles.CanPerform(status.Status(vehicle.Status), status.Action(name)) {
		h.InvalidTransition(c)
		return
	}

	if _, err := h.client.TransitionVehicle(ctx, id, name); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, vehicleColumns, http.StatusOK,
		h.client.ListVehicles, h.vehicleRows)
}

var driverColumns = []string{"name", "phone", "license", "status"}

func (h *DispatchHandler) driverRows(ctx context.Context, items []erp.Driver) []dto.Row {
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		badge := format.StatusBadge(ctx, status.Status(item.Status))
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"name":    item.Name,
				"phone":   item.Phone,
				"license": item.LicenseNumber,
			},
			Badge:   &badge,
			Actions: rowActions(ctx, status.Drivers, status.Status(item.Status)),
		})
	}
	return rows
}

func (h *DispatchHandler) ListDrivers(c *gin.Context) {
	serveList(c, &h.BaseHandler, h.cfg, driverColumns, bindListQuery(c),
		h.client.ListDrivers, h.driverRows)
}

func (h *DispatchHandler) CreateDriver(c *gin.Context) {
	var req dto.DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreateDriver(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, driverColumns, http.StatusCreated,
		h.client.ListDrivers, h.driverRows)
}

func (h *DispatchHandler) UpdateDriver(c *gin.Context) {
	var req dto.DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdateDriver(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, driverColumns, http.StatusOK,
		h.client.ListDrivers, h.driverRows)
}

func (h *DispatchHandler) DeleteDriver(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	driver, err := h.client.GetDriver(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.Drivers.CanDelete(status.Status(driver.Status)) {
		h.InvalidTransition(c)
		return
	}

	if err := h.client.DeleteDriver(ctx, id); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, driverColumns, http.StatusOK,
		h.client.ListDrivers, h.driverRows)
}

func (h *DispatchHandler) TransitionDriver(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	name := c.Param("action")

	driver, err := h.client.GetDriver(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.Drivers.CanPerform(status.Status(driver.Status), status.Action(name)) {
		h.InvalidTransition(c)
		return
	}

	if _, err := h.client.TransitionDriver(ctx, id, name); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, driverColumns, http.StatusOK,
		h.client.ListDrivers, h.driverRows)
}
