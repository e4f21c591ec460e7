package dto

import (
	"github.com/erp/console/internal/presentation/format"
)

// Screen is the viewmodel a list page renders verbatim: ordered
// columns, formatted rows and the unavailable flag for degraded
// refreshes. Pagination travels in the response Meta.
type Screen struct {
	Columns     []string `json:"columns"`
	Rows        []Row    `json:"rows"`
	Unavailable bool     `json:"unavailable"`
}

// Row is one table row with display-ready cells.
type Row struct {
	ID      string            `json:"id"`
	Cells   map[string]string `json:"cells"`
	Badge   *format.Badge     `json:"badge,omitempty"`
	Actions []RowAction       `json:"actions"`
}

// RowAction is a control the screen offers for a row. Kind is one of
// "transition", "edit" or "delete"; Name is the transition name for
// the transition kind.
type RowAction struct {
	Kind  string `json:"kind"`
	Name  string `json:"name,omitempty"`
	Label string `json:"label"`
}

// UnavailableScreen is the degraded form served when an upstream list
// fetch fails: same shape, no rows.
func UnavailableScreen(columns []string) Screen {
	return Screen{
		Columns:     columns,
		Rows:        []Row{},
		Unavailable: true,
	}
}

// LoginRequest carries the credentials posted by the login form.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse confirms a login and echoes the session expiry.
type LoginResponse struct {
	ExpiresAt string `json:"expires_at"`
}

// JobRunView is one formatted row of the automation dashboard.
type JobRunView struct {
	ID       string       `json:"id"`
	JobName  string       `json:"job_name"`
	Badge    format.Badge `json:"badge"`
	Started  string       `json:"started"`
	Finished string       `json:"finished"`
	Duration string       `json:"duration"`
	Error    string       `json:"error,omitempty"`
}

// DashboardView is the automation dashboard viewmodel.
type DashboardView struct {
	Jobs      []JobRunView `json:"jobs"`
	Running   int          `json:"running"`
	Failed    int          `json:"failed"`
	FetchedAt string       `json:"fetched_at"`
	Stale     bool         `json:"stale"`
}
