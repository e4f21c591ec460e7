package erp

import (
	"context"
	"time"
)

// MESClient covers manufacturing routings and quality control checks.
type MESClient struct {
	c *Client
}

func (c *Client) MES() MESClient {
	return MESClient{c: c}
}

// Routing is a manufacturing process definition.
type Routing struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	ProductName string    `json:"product_name"`
	Version     int       `json:"version"`
	StepCount   int       `json:"step_count"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RoutingPayload struct {
	Code        string `json:"code"`
	ProductName string `json:"product_name"`
	StepCount   int    `json:"step_count,omitempty"`
}

func (m MESClient) ListRoutings(ctx context.Context, q ListQuery) (*Page[Routing], error) {
	return list[Routing](ctx, m.c, "routings", "/mes/routings", q)
}

func (m MESClient) GetRouting(ctx context.Context, id string) (*Routing, error) {
	return get[Routing](ctx, m.c, "routings", "/mes/routings/"+id)
}

func (m MESClient) CreateRouting(ctx context.Context, p RoutingPayload) (*Routing, error) {
	return create[Routing](ctx, m.c, "routings", "/mes/routings", p)
}

func (m MESClient) UpdateRouting(ctx context.Context, id string, p RoutingPayload) (*Routing, error) {
	return update[Routing](ctx, m.c, "routings", "/mes/routings/"+id, p)
}

func (m MESClient) DeleteRouting(ctx context.Context, id string) error {
	return remove(ctx, m.c, "routings", "/mes/routings/"+id)
}

func (m MESClient) TransitionRouting(ctx context.Context, id, name string) (*Routing, error) {
	return action[Routing](ctx, m.c, "routings", "/mes/routings/"+id, name)
}

// QualityControl is one inspection of a production batch.
type QualityControl struct {
	ID          string     `json:"id"`
	BatchCode   string     `json:"batch_code"`
	ProductName string     `json:"product_name"`
	Inspector   string     `json:"inspector"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	CheckedAt   *time.Time `json:"checked_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type QualityControlPayload struct {
	BatchCode   string `json:"batch_code"`
	ProductName string `json:"product_name"`
	Inspector   string `json:"inspector,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func (m MESClient) ListQualityControls(ctx context.Context, q ListQuery) (*Page[QualityControl], error) {
	return list[QualityControl](ctx, m.c, "quality_controls", "/mes/quality-controls", q)
}

func (m MESClient) GetQualityControl(ctx context.Context, id string) (*QualityControl, error) {
	return get[QualityControl](ctx, m.c, "quality_controls", "/mes/quality-controls/"+id)
}

func (m MESClient) CreateQualityControl(ctx context.Context, p QualityControlPayload) (*QualityControl, error) {
	return create[QualityControl](ctx, m.c, "quality_controls", "/mes/quality-controls", p)
}

func (m MESClient) UpdateQualityControl(ctx context.Context, id string, p QualityControlPayload) (*QualityControl, error) {
	return update[QualityControl](ctx, m.c, "quality_controls", "/mes/quality-controls/"+id, p)
}

// TransitionQualityControl posts pass or fail.
func (m MESClient) TransitionQualityControl(ctx context.Context, id, name string) (*QualityControl, error) {
	return action[QualityControl](ctx, m.c, "quality_controls", "/mes/quality-controls/"+id, name)
}
