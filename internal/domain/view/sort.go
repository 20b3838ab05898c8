package view

import (
	"cmp"
	"strings"

	"github.com/oshokin/alarm-desk/internal/domain/alarm"
)

// SortField names the alarm field the view is ordered by.
type SortField string

// Sortable fields. Every field of the alarm record has a comparator.
const (
	SortByID          SortField = "id"
	SortByDevice      SortField = "device"
	SortByStatus      SortField = "status"
	SortByDescription SortField = "description"
	SortByAssignedTo  SortField = "assignedTo"
	SortByUrgent      SortField = "urgent"
	SortByTimeElapsed SortField = "timeElapsed"
	SortBySeverity    SortField = "severity"
)

// Direction is the sort direction.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sort is a sort key with direction.
type Sort struct {
	Field     SortField `json:"field,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// DefaultSort orders by status ascending.
func DefaultSort() Sort {
	return Sort{Field: SortByStatus, Direction: Ascending}
}

// comparator orders two alarms by a single field.
type comparator func(a, b *alarm.Alarm) int

// SortFields lists every sortable field in column order.
func SortFields() []SortField {
	return []SortField{
		SortByID,
		SortByDevice,
		SortByStatus,
		SortByDescription,
		SortByAssignedTo,
		SortByUrgent,
		SortByTimeElapsed,
		SortBySeverity,
	}
}

// ParseSortField converts user input to a SortField.
// Matching ignores case, dashes and underscores ("time-elapsed" is timeElapsed).
func ParseSortField(s string) (SortField, bool) {
	normalized := foldFieldName(s)

	for _, field := range SortFields() {
		if foldFieldName(string(field)) == normalized {
			return field, true
		}
	}

	return "", false
}

// ParseDirection converts user input; anything but "desc" is ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Descending)) {
		return Descending
	}

	return Ascending
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}

	return Descending
}

// Valid reports whether f has a comparator.
func (f SortField) Valid() bool {
	return f.comparator() != nil
}

// compare orders a and b by the sort key, honoring direction.
// An unknown field falls back to the default status ordering.
func (s Sort) compare(a, b *alarm.Alarm) int {
	compareFn := s.Field.comparator()
	if compareFn == nil {
		compareFn = compareStatus
	}

	if s.Direction == Descending {
		return -compareFn(a, b)
	}

	return compareFn(a, b)
}

func (f SortField) comparator() comparator {
	switch f {
	case SortByID:
		return compareID
	case SortByDevice:
		return compareDevice
	case SortByStatus:
		return compareStatus
	case SortByDescription:
		return compareDescription
	case SortByAssignedTo:
		return compareAssignedTo
	case SortByUrgent:
		return compareUrgent
	case SortByTimeElapsed:
		return compareTimeElapsed
	case SortBySeverity:
		return compareSeverity
	default:
		return nil
	}
}

func compareID(a, b *alarm.Alarm) int { return strings.Compare(a.ID, b.ID) }

func compareDevice(a, b *alarm.Alarm) int { return strings.Compare(a.Device, b.Device) }

func compareStatus(a, b *alarm.Alarm) int {
	return strings.Compare(string(a.Status), string(b.Status))
}

func compareDescription(a, b *alarm.Alarm) int {
	return strings.Compare(a.Description, b.Description)
}

// compareAssignedTo puts unassigned alarms before assigned ones.
func compareAssignedTo(a, b *alarm.Alarm) int {
	switch {
	case !a.Assigned() && !b.Assigned():
		return 0
	case !a.Assigned():
		return -1
	case !b.Assigned():
		return 1
	default:
		return strings.Compare(*a.AssignedTo, *b.AssignedTo)
	}
}

// compareUrgent orders false before true.
func compareUrgent(a, b *alarm.Alarm) int {
	return cmp.Compare(boolRank(a.Urgent), boolRank(b.Urgent))
}

// compareTimeElapsed compares the display strings, so "9h" sorts after "48h".
func compareTimeElapsed(a, b *alarm.Alarm) int {
	return strings.Compare(a.TimeElapsed, b.TimeElapsed)
}

func compareSeverity(a, b *alarm.Alarm) int {
	return strings.Compare(string(a.Severity), string(b.Severity))
}

func boolRank(v bool) int {
	if v {
		return 1
	}

	return 0
}

func foldFieldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}
