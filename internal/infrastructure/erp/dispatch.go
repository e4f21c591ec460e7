package erp

import (
	"context"
	"time"
)

// DispatchClient covers transport orders, vehicles and drivers.
type DispatchClient struct {
	c *Client
}

func (c *Client) Dispatch() DispatchClient {
	return DispatchClient{c: c}
}

// DispatchOrder is one transport job from origin to destination.
type DispatchOrder struct {
	ID           string     `json:"id"`
	Code         string     `json:"code"`
	Origin       string     `json:"origin"`
	Destination  string     `json:"destination"`
	Cargo        string     `json:"cargo"`
	VehiclePlate string     `json:"vehicle_plate"`
	DriverName   string     `json:"driver_name"`
	Status       string     `json:"status"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type DispatchOrderPayload struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Cargo       string     `json:"cargo"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// AssignmentPayload links a vehicle and driver to an order.
type AssignmentPayload struct {
	VehicleID string `json:"vehicle_id"`
	DriverID  string `json:"driver_id"`
}

func (d DispatchClient) ListOrders(ctx context.Context, q ListQuery) (*Page[DispatchOrder], error) {
	return list[DispatchOrder](ctx, d.c, "dispatch_orders", "/dispatch/orders", q)
}

func (d DispatchClient) GetOrder(ctx context.Context, id string) (*DispatchOrder, error) {
	return get[DispatchOrder](ctx, d.c, "dispatch_orders", "/dispatch/orders/"+id)
}

func (d DispatchClient) CreateOrder(ctx context.Context, p DispatchOrderPayload) (*DispatchOrder, error) {
	return create[DispatchOrder](ctx, d.c, "dispatch_orders", "/dispatch/orders", p)
}

func (d DispatchClient) UpdateOrder(ctx context.Context, id string, p DispatchOrderPayload) (*DispatchOrder, error) {
	return update[DispatchOrder](ctx, d.c, "dispatch_orders", "/dispatch/orders/"+id, p)
}

func (d DispatchClient) DeleteOrder(ctx context.Context, id string) error {
	return remove(ctx, d.c, "dispatch_orders", "/dispatch/orders/"+id)
}

// AssignOrder attaches a vehicle and driver, moving the order to
// ASSIGNED. Assignment carries a body, so it does not go through the
// plain action sub-path helper.
func (d DispatchClient) AssignOrder(ctx context.Context, id string, p AssignmentPayload) (*DispatchOrder, error) {
	return update[DispatchOrder](ctx, d.c, "dispatch_orders", "/dispatch/orders/"+id+"/assign", p)
}

func (d DispatchClient) TransitionOrder(ctx context.Context, id, name string) (*DispatchOrder, error) {
	return action[DispatchOrder](ctx, d.c, "dispatch_orders", "/dispatch/orders/"+id, name)
}

// Vehicle is a truck or van in the fleet.
type Vehicle struct {
	ID          string    `json:"id"`
	PlateNumber string    `json:"plate_number"`
	Model       string    `json:"model"`
	CapacityKg  int       `json:"capacity_kg"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type VehiclePayload struct {
	PlateNumber string `json:"plate_number"`
	Model       string `json:"model"`
	CapacityKg  int    `json:"capacity_kg,omitempty"`
}

func (d DispatchClient) ListVehicles(ctx context.Context, q ListQuery) (*Page[Vehicle], error) {
	return list[Vehicle](ctx, d.c, "vehicles", "/dispatch/vehicles", q)
}

func (d DispatchClient) GetVehicle(ctx context.Context, id string) (*Vehicle, error) {
	return get[Vehicle](ctx, d.c, "vehicles", "/dispatch/vehicles/"+id)
}

func (d DispatchClient) CreateVehicle(ctx context.Context, p VehiclePayload) (*Vehicle, error) {
	return create[Vehicle](ctx, d.c, "vehicles", "/dispatch/vehicles", p)
}

func (d DispatchClient) UpdateVehicle(ctx context.Context, id string, p VehiclePayload) (*Vehicle, error) {
	return update[Vehicle](ctx, d.c, "vehicles", "/dispatch/vehicles/"+id, p)
}

func (d DispatchClient) DeleteVehicle(ctx context.Context, id string) error {
	return remove(ctx, d.c, "vehicles", "/dispatch/vehicles/"+id)
}

// TransitionVehicle switches between AVAILABLE, IN_USE and MAINTENANCE.
func (d DispatchClient) TransitionVehicle(ctx context.Context, id, name string) (*Vehicle, error) {
	return action[Vehicle](ctx, d.c, "vehicles", "/dispatch/vehicles/"+id, name)
}

// Driver is a person licensed to run dispatch orders.
type Driver struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"license_number"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type DriverPayload struct {
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	LicenseNumber string `json:"license_number"`
}

func (d DispatchClient) ListDrivers(ctx context.Context, q ListQuery) (*Page[Driver], error) {
	return list[Driver](ctx, d.c, "drivers", "/dispatch/drivers", q)
}

func (d DispatchClient) GetDriver(ctx context.Context, id string) (*Driver, error) {
	return get[Driver](ctx, d.c, "drivers", "/dispatch/drivers/"+id)
}

func (d DispatchClient) CreateDriver(ctx context.Context, p DriverPayload) (*Driver, error) {
	return create[Driver](ctx, d.c, "drivers", "/dispatch/drivers", p)
}

func (d DispatchClient) UpdateDriver(ctx context.Context, id string, p DriverPayload) (*Driver, error) {
	return update[Driver](ctx, d.c, "drivers", "/dispatch/drivers/"+id, p)
}

func (d DispatchClient) DeleteDriver(ctx context.Context, id string) error {
	return remove(ctx, d.c, "drivers", "/dispatch/drivers/"+id)
}

func (d DispatchClient) TransitionDriver(ctx context.Context, id, name string) (*Driver, error) {
	return action[Driver](ctx, d.c, "drivers", "/dispatch/drivers/"+id, name)
}
