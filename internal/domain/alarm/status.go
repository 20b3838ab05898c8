package alarm

import "strings"

// Status is the triage lifecycle label of an alarm.
type Status string

// Alarm statuses. The values are the labels shown to operators.
const (
	StatusUnacknowledged Status = "Unacknowledged"
	StatusAcknowledged   Status = "Acknowledged"
	StatusInProgress     Status = "In Progress"
	StatusResolved       Status = "Resolved"
	StatusMuted          Status = "Muted"
)

// Statuses lists every known status in display order.
func Statuses() []Status {
	return []Status{
		StatusUnacknowledged,
		StatusAcknowledged,
		StatusInProgress,
		StatusResolved,
		StatusMuted,
	}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUnacknowledged, StatusAcknowledged, StatusInProgress, StatusResolved, StatusMuted:
		return true
	default:
		return false
	}
}

// Active reports whether the status still needs an operator's attention.
// Only unacknowledged and acknowledged alarms count as active.
func (s Status) Active() bool {
	return s == StatusUnacknowledged || s == StatusAcknowledged
}

// ParseStatus converts user input to a Status.
// Both display labels ("In Progress") and kebab case ("in-progress") are accepted.
func ParseStatus(s string) (Status, bool) {
	normalized := normalizeLabel(s)

	for _, status := range Statuses() {
		if normalizeLabel(string(status)) == normalized {
			return status, true
		}
	}

	return "", false
}

// Severity is the categorical urgency level of an alarm.
// It is independent from the Urgent flag.
type Severity string

// Alarm severities.
const (
	SeverityWarning  Severity = "Warning"
	SeverityCritical Severity = "Critical"
	SeverityInfo     Severity = "Info"
)

// Severities lists every known severity.
func Severities() []Severity {
	return []Severity{SeverityWarning, SeverityCritical, SeverityInfo}
}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityWarning, SeverityCritical, SeverityInfo:
		return true
	default:
		return false
	}
}

// ParseSeverity converts user input to a Severity, ignoring case.
func ParseSeverity(s string) (Severity, bool) {
	normalized := normalizeLabel(s)

	for _, severity := range Severities() {
		if normalizeLabel(string(severity)) == normalized {
			return severity, true
		}
	}

	return "", false
}

// normalizeLabel lowercases s and folds spaces and underscores into dashes.
func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}
