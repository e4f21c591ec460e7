package format

import (
	"context"

	"github.com/erp/console/internal/domain/status"
	"github.com/erp/console/internal/infrastructure/intl"
)

// Badge is the rendered form of a status: the localized label plus the
// color token the shell maps to its palette.
type Badge struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Color  string `json:"color"`
}

// statusColors maps each status to its color token. Unknown statuses
// fall back to gray so a new backend status degrades quietly.
var statusColors = map[status.Status]string{
	status.StatusDraft:           "gray",
	status.StatusPendingApproval: "amber",
	status.StatusApproved:        "blue",
	status.StatusPaid:            "green",
	status.StatusRejected:        "red",
	status.StatusCancelled:       "gray",
	status.StatusPlanned:         "blue",
	status.StatusInProgress:      "amber",
	status.StatusCompleted:       "green",
	status.StatusPending:         "amber",
	status.StatusActive:          "green",
	status.StatusInactive:        "gray",
	status.StatusArchived:        "gray",
	status.StatusPassed:          "green",
	status.StatusFailed:          "red",
	status.StatusAssigned:        "blue",
	status.StatusInTransit:       "amber",
	status.StatusDelivered:       "green",
	status.StatusAvailable:       "green",
	status.StatusInUse:           "blue",
	status.StatusMaintenance:     "amber",
	status.StatusOpen:            "blue",
	status.StatusMitigating:      "amber",
	status.StatusClosed:          "gray",
	status.StatusResolved:        "green",
}

// StatusColor returns the color token for a status.
func StatusColor(s status.Status) string {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return "gray"
}

// StatusBadge builds the badge for a status using the request locale.
// A status without a message renders its raw value as the label.
func StatusBadge(ctx context.Context, s status.Status) Badge {
	label := intl.T(ctx, "status."+s.String())
	if label == "status."+s.String() {
		label = s.String()
	}
	return Badge{
		Status: s.String(),
		Label:  label,
		Color:  StatusColor(s),
	}
}
