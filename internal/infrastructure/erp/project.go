package erp

import (
	"context"
	"time"
)

// ProjectClient covers the project risk register.
type ProjectClient struct {
	c *Client
}

func (c *Client) Project() ProjectClient {
	return ProjectClient{c: c}
}

// Risk is one entry in a project's risk register.
type Risk struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"project_name"`
	Title       string    `json:"title"`
	Severity    string    `json:"severity"`
	Owner       string    `json:"owner"`
	Mitigation  string    `json:"mitigation"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RiskPayload struct {
	ProjectName string `json:"project_name"`
	Title       string `json:"title"`
	Severity    string `json:"severity"`
	Owner       string `json:"owner,omitempty"`
	Mitigation  string `json:"mitigation,omitempty"`
}

func (p ProjectClient) ListRisks(ctx context.Context, q ListQuery) (*Page[Risk], error) {
	return list[Risk](ctx, p.c, "risks", "/project/risks", q)
}

func (p ProjectClient) GetRisk(ctx context.Context, id string) (*Risk, error) {
	return get[Risk](ctx, p.c, "risks", "/project/risks/"+id)
}

func (p ProjectClient) CreateRisk(ctx context.Context, payload RiskPayload) (*Risk, error) {
	return create[Risk](ctx, p.c, "risks", "/project/risks", payload)
}

func (p ProjectClient) UpdateRisk(ctx context.Context, id string, payload RiskPayload) (*Risk, error) {
	return update[Risk](ctx, p.c, "risks", "/project/risks/"+id, payload)
}

func (p ProjectClient) DeleteRisk(ctx context.Context, id string) error {
	return remove(ctx, p.c, "risks", "/project/risks/"+id)
}

// TransitionRisk posts mitigate or close.
func (p ProjectClient) TransitionRisk(ctx context.Context, id, name string) (*Risk, error) {
	return action[Risk](ctx, p.c, "risks", "/project/risks/"+id, name)
}
