package view

import (
	"strings"

	"github.com/oshokin/alarm-desk/internal/domain/alarm"
)

// StatusFilter selects alarms by triage status.
type StatusFilter string

// Status filter values.
const (
	StatusAll            StatusFilter = "all"
	StatusAllActive      StatusFilter = "all-active"
	StatusUnacknowledged StatusFilter = "unacknowledged"
	StatusAcknowledged   StatusFilter = "acknowledged"
	StatusInProgress     StatusFilter = "in-progress"
	StatusResolved       StatusFilter = "resolved"
	StatusMuted          StatusFilter = "muted"
)

// AssigneeFilter selects alarms by assignment presence.
type AssigneeFilter string

// Assignee filter values.
const (
	AssigneeAll        AssigneeFilter = "all"
	AssigneeAssigned   AssigneeFilter = "assigned"
	AssigneeUnassigned AssigneeFilter = "unassigned"
)

// UrgencyFilter selects alarms by the urgent flag.
type UrgencyFilter string

// Urgency filter values.
const (
	UrgencyAll       UrgencyFilter = "all"
	UrgencyUrgent    UrgencyFilter = "urgent"
	UrgencyNotUrgent UrgencyFilter = "not-urgent"
)

// SeverityFilter selects alarms by severity.
type SeverityFilter string

// SeverityAll lets every severity through. Other values are alarm.Severity labels.
const SeverityAll SeverityFilter = "all"

// DeviceAll lets every device through.
const DeviceAll = "all"

// Filters is the tuple of independent filter criteria.
// The zero value lets everything through.
type Filters struct {
	Status   StatusFilter   `json:"status,omitempty"`
	Device   string         `json:"device,omitempty"`
	Assignee AssigneeFilter `json:"assignee,omitempty"`
	Urgency  UrgencyFilter  `json:"urgency,omitempty"`
	Severity SeverityFilter `json:"severity,omitempty"`
}

// AllFilters returns filters with every criterion set to its "all" value.
func AllFilters() Filters {
	return Filters{
		Status:   StatusAll,
		Device:   DeviceAll,
		Assignee: AssigneeAll,
		Urgency:  UrgencyAll,
		Severity: SeverityAll,
	}
}

// ParseStatusFilter converts user input; unknown values mean "all".
func ParseStatusFilter(s string) StatusFilter {
	f := StatusFilter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case StatusAllActive, StatusUnacknowledged, StatusAcknowledged,
		StatusInProgress, StatusResolved, StatusMuted:
		return f
	default:
		return StatusAll
	}
}

// ParseAssigneeFilter converts user input; unknown values mean "all".
func ParseAssigneeFilter(s string) AssigneeFilter {
	f := AssigneeFilter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case AssigneeAssigned, AssigneeUnassigned:
		return f
	default:
		return AssigneeAll
	}
}

// ParseUrgencyFilter converts user input; unknown values mean "all".
func ParseUrgencyFilter(s string) UrgencyFilter {
	f := UrgencyFilter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case UrgencyUrgent, UrgencyNotUrgent:
		return f
	default:
		return UrgencyAll
	}
}

// ParseSeverityFilter converts user input; unknown values mean "all".
func ParseSeverityFilter(s string) SeverityFilter {
	severity, ok := alarm.ParseSeverity(s)
	if !ok {
		return SeverityAll
	}

	return SeverityFilter(severity)
}

// Match reports whether a passes every active criterion.
func (f Filters) Match(a *alarm.Alarm) bool {
	return f.matchStatus(a) &&
		f.matchDevice(a) &&
		f.matchAssignee(a) &&
		f.matchUrgency(a) &&
		f.matchSeverity(a)
}

func (f Filters) matchStatus(a *alarm.Alarm) bool {
	switch f.Status {
	case StatusAllActive:
		return a.Status.Active()
	case StatusUnacknowledged:
		return a.Status == alarm.StatusUnacknowledged
	case StatusAcknowledged:
		return a.Status == alarm.StatusAcknowledged
	case StatusInProgress:
		return a.Status == alarm.StatusInProgress
	case StatusResolved:
		return a.Status == alarm.StatusResolved
	case StatusMuted:
		return a.Status == alarm.StatusMuted
	default:
		return true
	}
}

func (f Filters) matchDevice(a *alarm.Alarm) bool {
	if f.Device == "" || f.Device == DeviceAll {
		return true
	}

	return a.Device == f.Device
}

func (f Filters) matchAssignee(a *alarm.Alarm) bool {
	switch f.Assignee {
	case AssigneeAssigned:
		return a.Assigned()
	case AssigneeUnassigned:
		return !a.Assigned()
	default:
		return true
	}
}

func (f Filters) matchUrgency(a *alarm.Alarm) bool {
	switch f.Urgency {
	case UrgencyUrgent:
		return a.Urgent
	case UrgencyNotUrgent:
		return !a.Urgent
	default:
		return true
	}
}

func (f Filters) matchSeverity(a *alarm.Alarm) bool {
	severity := alarm.Severity(f.Severity)
	if !severity.Valid() {
		return true
	}

	return a.Severity == severity
}
