// Package status holds the per-resource action gating the admin
// screens enforce. A row offers an action only when its current status
// is in the action's eligible set, and the gateway refuses to forward
// a transition whose source status is ineligible.
package status

// Status is a resource status exactly as the backend reports it.
type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusPaid            Status = "PAID"
	StatusRejected        Status = "REJECTED"
	StatusCancelled       Status = "CANCELLED"
	StatusPlanned         Status = "PLANNED"
	StatusInProgress      Status = "IN_PROGRESS"
	StatusCompleted       Status = "COMPLETED"
	StatusPending         Status = "PENDING"
	StatusActive          Status = "ACTIVE"
	StatusInactive        Status = "INACTIVE"
	StatusArchived        Status = "ARCHIVED"
	StatusPassed          Status = "PASSED"
	StatusFailed          Status = "FAILED"
	StatusAssigned        Status = "ASSIGNED"
	StatusInTransit       Status = "IN_TRANSIT"
	StatusDelivered       Status = "DELIVERED"
	StatusAvailable       Status = "AVAILABLE"
	StatusInUse           Status = "IN_USE"
	StatusMaintenance     Status = "MAINTENANCE"
	StatusOpen            Status = "OPEN"
	StatusMitigating      Status = "MITIGATING"
	StatusClosed          Status = "CLOSED"
	StatusResolved        Status = "RESOLVED"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Action is a status transition posted to the /{id}/{action} sub-path.
type Action string

const (
	ActionSubmit      Action = "submit"
	ActionApprove     Action = "approve"
	ActionReject      Action = "reject"
	ActionPay         Action = "pay"
	ActionCancel      Action = "cancel"
	ActionStart       Action = "start"
	ActionComplete    Action = "complete"
	ActionActivate    Action = "activate"
	ActionDeactivate  Action = "deactivate"
	ActionArchive     Action = "archive"
	ActionPass        Action = "pass"
	ActionFail        Action = "fail"
	ActionAssign      Action = "assign"
	ActionDispatch    Action = "dispatch"
	ActionDeliver     Action = "deliver"
	ActionMaintenance Action = "maintenance"
	ActionMitigate    Action = "mitigate"
	ActionResolve     Action = "resolve"
	ActionClose       Action = "close"
	ActionReopen      Action = "reopen"
)

// String returns the string representation of the action.
func (a Action) String() string {
	return string(a)
}

// actionOrder fixes the order actions appear in a row's action list so
// screens render identically between refreshes.
var actionOrder = []Action{
	ActionSubmit,
	ActionApprove,
	ActionReject,
	ActionPay,
	ActionStart,
	ActionComplete,
	ActionActivate,
	ActionDeactivate,
	ActionArchive,
	ActionPass,
	ActionFail,
	ActionAssign,
	ActionDispatch,
	ActionDeliver,
	ActionMaintenance,
	ActionMitigate,
	ActionResolve,
	ActionClose,
	ActionReopen,
	ActionCancel,
}

// Machine is the gating table for one resource type. All fields are
// immutable after construction.
type Machine struct {
	resource  string
	eligible  map[Action][]Status
	editable  []Status
	deletable []Status
}

// Resource returns the resource name the machine describes.
func (m Machine) Resource() string {
	return m.resource
}

// CanPerform reports whether the action may run from the given status.
func (m Machine) CanPerform(current Status, action Action) bool {
	for _, s := range m.eligible[action] {
		if s == current {
			return true
		}
	}
	return false
}

// CanEdit reports whether the edit modal is offered for the status.
func (m Machine) CanEdit(current Status) bool {
	return contains(m.editable, current)
}

// CanDelete reports whether the delete control is offered.
func (m Machine) CanDelete(current Status) bool {
	return contains(m.deletable, current)
}

// AllowedActions returns the transitions available from the status, in
// canonical order.
func (m Machine) AllowedActions(current Status) []Action {
	actions := make([]Action, 0, 4)
	for _, a := range actionOrder {
		if m.CanPerform(current, a) {
			actions = append(actions, a)
		}
	}
	return actions
}

func contains(statuses []Status, s Status) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// approvalMachine is the DRAFT → PENDING_APPROVAL → APPROVED → PAID
// flow shared by the accounting documents.
func approvalMachine(resource string) Machine {
	return Machine{
		resource: resource,
		eligible: map[Action][]Status{
			ActionSubmit:  {StatusDraft},
			ActionApprove: {StatusPendingApproval},
			ActionReject:  {StatusPendingApproval},
			ActionPay:     {StatusApproved},
			ActionCancel:  {StatusDraft, StatusApproved},
		},
		editable:  []Status{StatusDraft, StatusRejected},
		deletable: []Status{StatusDraft},
	}
}

var (
	PaymentVouchers = approvalMachine("payment_vouchers")
	DebitNotes      = approvalMachine("debit_notes")
	VendorInvoices  = approvalMachine("vendor_invoices")

	TrainingCourses = Machine{
		resource: "training_courses",
		eligible: map[Action][]Status{
			ActionStart:    {StatusPlanned},
			ActionComplete: {StatusInProgress},
			ActionCancel:   {StatusPlanned, StatusInProgress},
		},
		editable:  []Status{StatusPlanned},
		deletable: []Status{StatusPlanned},
	}

	Bonuses = Machine{
		resource: "bonuses",
		eligible: map[Action][]Status{
			ActionApprove: {StatusPending},
			ActionReject:  {StatusPending},
			ActionPay:     {StatusApproved},
		},
		editable:  []Status{StatusPending},
		deletable: []Status{StatusPending},
	}

	Routings = Machine{
		resource: "routings",
		eligible: map[Action][]Status{
			ActionActivate: {StatusDraft},
			ActionArchive:  {StatusActive},
		},
		editable:  []Status{StatusDraft},
		deletable: []Status{StatusDraft},
	}

	QualityControls = Machine{
		resource: "quality_controls",
		eligible: map[Action][]Status{
			ActionPass: {StatusPending},
			ActionFail: {StatusPending},
		},
		editable: []Status{StatusPending},
	}

	DispatchOrders = Machine{
		resource: "dispatch_orders",
		eligible: map[Action][]Status{
			ActionAssign:   {StatusPending},
			ActionDispatch: {StatusAssigned},
			ActionDeliver:  {StatusInTransit},
			ActionCancel:   {StatusPending, StatusAssigned},
		},
		editable:  []Status{StatusPending},
		deletable: []Status{StatusPending},
	}

	Vehicles = Machine{
		resource: "vehicles",
		eligible: map[Action][]Status{
			ActionMaintenance: {StatusAvailable},
			ActionActivate:    {StatusMaintenance},
		},
		editable:  []Status{StatusAvailable, StatusMaintenance},
		deletable: []Status{StatusAvailable},
	}

	Drivers = Machine{
		resource: "drivers",
		eligible: map[Action][]Status{
			ActionDeactivate: {StatusActive},
			ActionActivate:   {StatusInactive},
		},
		editable:  []Status{StatusActive, StatusInactive},
		deletable: []Status{StatusInactive},
	}

	Conversations = Machine{
		resource: "conversations",
		eligible: map[Action][]Status{
			ActionResolve: {StatusOpen},
			ActionClose:   {StatusOpen, StatusResolved},
			ActionReopen:  {StatusResolved, StatusClosed},
		},
		editable: []Status{StatusOpen},
	}

	Risks = Machine{
		resource: "risks",
		eligible: map[Action][]Status{
			ActionMitigate: {StatusOpen},
			ActionClose:    {StatusMitigating},
			ActionReopen:   {StatusClosed},
		},
		editable:  []Status{StatusOpen, StatusMitigating},
		deletable: []Status{StatusOpen},
	}
)
