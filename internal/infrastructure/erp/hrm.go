package erp

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// HRMClient covers training courses, departments and bonuses.
type HRMClient struct {
	c *Client
}

func (c *Client) HRM() HRMClient {
	return HRMClient{c: c}
}

// TrainingCourse is a scheduled internal training.
type TrainingCourse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Instructor string     `json:"instructor"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Capacity   int        `json:"capacity"`
	Enrolled   int        `json:"enrolled"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type TrainingCoursePayload struct {
	Name       string     `json:"name"`
	Instructor string     `json:"instructor"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Capacity   int        `json:"capacity"`
}

func (h HRMClient) ListTrainingCourses(ctx context.Context, q ListQuery) (*Page[TrainingCourse], error) {
	return list[TrainingCourse](ctx, h.c, "training_courses", "/hrm/training-courses", q)
}

func (h HRMClient) GetTrainingCourse(ctx context.Context, id string) (*TrainingCourse, error) {
	return get[TrainingCourse](ctx, h.c, "training_courses", "/hrm/training-courses/"+id)
}

func (h HRMClient) CreateTrainingCourse(ctx context.Context, p TrainingCoursePayload) (*TrainingCourse, error) {
	return create[TrainingCourse](ctx, h.c, "training_courses", "/hrm/training-courses", p)
}

func (h HRMClient) UpdateTrainingCourse(ctx context.Context, id string, p TrainingCoursePayload) (*TrainingCourse, error) {
	return update[TrainingCourse](ctx, h.c, "training_courses", "/hrm/training-courses/"+id, p)
}

func (h HRMClient) DeleteTrainingCourse(ctx context.Context, id string) error {
	return remove(ctx, h.c, "training_courses", "/hrm/training-courses/"+id)
}

func (h HRMClient) TransitionTrainingCourse(ctx context.Context, id, name string) (*TrainingCourse, error) {
	return action[TrainingCourse](ctx, h.c, "training_courses", "/hrm/training-courses/"+id, name)
}

// Department is an organizational unit. Departments have no status
// flow; the screen is plain CRUD.
type Department struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	ManagerName string    `json:"manager_name"`
	Headcount   int       `json:"headcount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DepartmentPayload struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	ManagerName string `json:"manager_name,omitempty"`
}

func (h HRMClient) ListDepartments(ctx context.Context, q ListQuery) (*Page[Department], error) {
	return list[Department](ctx, h.c, "departments", "/hrm/departments", q)
}

func (h HRMClient) GetDepartment(ctx context.Context, id string) (*Department, error) {
	return get[Department](ctx, h.c, "departments", "/hrm/departments/"+id)
}

func (h HRMClient) CreateDepartment(ctx context.Context, p DepartmentPayload) (*Department, error) {
	return create[Department](ctx, h.c, "departments", "/hrm/departments", p)
}

func (h HRMClient) UpdateDepartment(ctx context.Context, id string, p DepartmentPayload) (*Department, error) {
	return update[Department](ctx, h.c, "departments", "/hrm/departments/"+id, p)
}

func (h HRMClient) DeleteDepartment(ctx context.Context, id string) error {
	return remove(ctx, h.c, "departments", "/hrm/departments/"+id)
}

// Bonus is a one-off payment awarded to an employee.
type Bonus struct {
	ID           string          `json:"id"`
	EmployeeName string          `json:"employee_name"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Reason       string          `json:"reason"`
	Status       string          `json:"status"`
	AwardedAt    *time.Time      `json:"awarded_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type BonusPayload struct {
	EmployeeName string          `json:"employee_name"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency,omitempty"`
	Reason       string          `json:"reason"`
}

func (h HRMClient) ListBonuses(ctx context.Context, q ListQuery) (*Page[Bonus], error) {
	return list[Bonus](ctx, h.c, "bonuses", "/hrm/bonuses", q)
}

func (h HRMClient) GetBonus(ctx context.Context, id string) (*Bonus, error) {
	return get[Bonus](ctx, h.c, "bonuses", "/hrm/bonuses/"+id)
}

func (h HRMClient) CreateBonus(ctx context.Context, p BonusPayload) (*Bonus, error) {
	return create[Bonus](ctx, h.c, "bonuses", "/hrm/bonuses", p)
}

func (h HRMClient) UpdateBonus(ctx context.Context, id string, p BonusPayload) (*Bonus, error) {
	return update[Bonus](ctx, h.c, "bonuses", "/hrm/bonuses/"+id, p)
}

func (h HRMClient) DeleteBonus(ctx context.Context, id string) error {
	return remove(ctx, h.c, "bonuses", "/hrm/bonuses/"+id)
}

func (h HRMClient) TransitionBonus(ctx context.Context, id, name string) (*Bonus, error) {
	return action[Bonus](ctx, h.c, "bonuses", "/hrm/bonuses/"+id, name)
}
