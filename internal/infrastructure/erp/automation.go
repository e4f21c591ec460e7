package erp

import (
	"context"
	"net/http"
	"time"
)

// AutomationClient reads the job-run dashboard snapshot.
type AutomationClient struct {
	c *Client
}

func (c *Client) Automation() AutomationClient {
	return AutomationClient{c: c}
}

// JobRun is one execution of a scheduled automation job.
type JobRun struct {
	ID         string     `json:"id"`
	JobName    string     `json:"job_name"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	DurationMS int64      `json:"duration_ms"`
	Error      string     `json:"error,omitempty"`
}

// DashboardSnapshot is the full state of the automation dashboard at
// one point in time.
type DashboardSnapshot struct {
	Jobs      []JobRun  `json:"jobs"`
	Running   int       `json:"running"`
	Failed    int       `json:"failed"`
	FetchedAt time.Time `json:"fetched_at"`
}

// GetDashboard fetches the current snapshot.
func (a AutomationClient) GetDashboard(ctx context.Context) (*DashboardSnapshot, error) {
	snapshot, err := get[DashboardSnapshot](ctx, a.c, "automation", "/automation/dashboard")
	if err != nil {
		return nil, err
	}
	snapshot.FetchedAt = time.Now()
	return snapshot, nil
}

// TriggerJob asks the backend to run a job immediately.
func (a AutomationClient) TriggerJob(ctx context.Context, jobName string) error {
	return a.c.do(ctx, request{
		method: http.MethodPost,
		path:   "/automation/jobs/" + jobName + "/run",
	}, nil)
}
