package view

import (
	"slices"
	"strings"
)

// Column identifies a table column. Column names match sortable fields.
type Column string

// Table columns.
const (
	ColumnID          Column = "id"
	ColumnDevice      Column = "device"
	ColumnStatus      Column = "status"
	ColumnDescription Column = "description"
	ColumnAssignedTo  Column = "assignedTo"
	ColumnUrgent      Column = "urgent"
	ColumnTimeElapsed Column = "timeElapsed"
	ColumnSeverity    Column = "severity"
)

// DefaultColumns returns the initial column order of the alarm table.
// The id column leads so alarms can be addressed by the triage commands.
func DefaultColumns() []Column {
	return []Column{
		ColumnID,
		ColumnDevice,
		ColumnStatus,
		ColumnDescription,
		ColumnAssignedTo,
		ColumnUrgent,
		ColumnTimeElapsed,
		ColumnSeverity,
	}
}

// ParseColumn converts user input to a Column.
func ParseColumn(s string) (Column, bool) {
	field, ok := ParseSortField(s)
	if !ok {
		return "", false
	}

	return Column(field), true
}

// Title returns the column header.
func (c Column) Title() string {
	switch c {
	case ColumnID:
		return "ID"
	case ColumnAssignedTo:
		return "ASSIGNED TO"
	case ColumnTimeElapsed:
		return "TIME ELAPSED"
	default:
		return strings.ToUpper(string(c))
	}
}

// State is the view state of an operator session.
// It is a value: Reduce returns a new State and never modifies its input.
type State struct {
	// Filters are the active filter criteria.
	Filters Filters
	// Sort is the active sort key.
	Sort Sort
	// Columns is the table column order.
	Columns []Column
	// Selected is the alarm opened in the detail view, empty when closed.
	Selected string
}

// DefaultState returns the state of a fresh session.
func DefaultState() State {
	return State{
		Filters: AllFilters(),
		Sort:    DefaultSort(),
		Columns: DefaultColumns(),
	}
}

// Query returns the projector input for this state.
func (s State) Query() Query {
	return Query{
		Filters: s.Filters,
		Sort:    s.Sort,
	}
}

// DetailOpen reports whether an alarm is selected.
func (s State) DetailOpen() bool {
	return s.Selected != ""
}

// Action is a discrete view state transition.
type Action interface {
	apply(s State) State
}

// Reduce applies the action to a copy of s.
func Reduce(s State, action Action) State {
	s.Columns = slices.Clone(s.Columns)

	if action == nil {
		return s
	}

	return action.apply(s)
}

// ReduceAll applies actions in order.
func ReduceAll(s State, actions ...Action) State {
	for _, action := range actions {
		s = Reduce(s, action)
	}

	return s
}

// SetStatusFilter selects the status filter.
type SetStatusFilter struct{ Value StatusFilter }

func (a SetStatusFilter) apply(s State) State {
	s.Filters.Status = ParseStatusFilter(string(a.Value))

	return s
}

// SetDeviceFilter selects the device filter; "all" or empty clears it.
type SetDeviceFilter struct{ Value string }

func (a SetDeviceFilter) apply(s State) State {
	s.Filters.Device = a.Value
	if s.Filters.Device == "" {
		s.Filters.Device = DeviceAll
	}

	return s
}

// SetAssigneeFilter selects the assignment filter.
type SetAssigneeFilter struct{ Value AssigneeFilter }

func (a SetAssigneeFilter) apply(s State) State {
	s.Filters.Assignee = ParseAssigneeFilter(string(a.Value))

	return s
}

// SetUrgencyFilter selects the urgency filter.
type SetUrgencyFilter struct{ Value UrgencyFilter }

func (a SetUrgencyFilter) apply(s State) State {
	s.Filters.Urgency = ParseUrgencyFilter(string(a.Value))

	return s
}

// SetSeverityFilter selects the severity filter.
type SetSeverityFilter struct{ Value SeverityFilter }

func (a SetSeverityFilter) apply(s State) State {
	s.Filters.Severity = ParseSeverityFilter(string(a.Value))

	return s
}

// ResetFilters sets every filter back to "all".
type ResetFilters struct{}

func (ResetFilters) apply(s State) State {
	s.Filters = AllFilters()

	return s
}

// ToggleSort is a click on a sortable header: the active field flips
// direction, another field becomes active in ascending order.
type ToggleSort struct{ Field SortField }

func (a ToggleSort) apply(s State) State {
	if !a.Field.Valid() {
		return s
	}

	if a.Field == s.Sort.Field {
		s.Sort.Direction = s.Sort.Direction.Flip()

		return s
	}

	s.Sort = Sort{Field: a.Field, Direction: Ascending}

	return s
}

// SetSort selects a sort key explicitly. Unknown fields are ignored.
type SetSort struct{ Sort Sort }

func (a SetSort) apply(s State) State {
	if !a.Sort.Field.Valid() {
		return s
	}

	s.Sort = Sort{Field: a.Sort.Field, Direction: ParseDirection(string(a.Sort.Direction))}

	return s
}

// MoveColumn moves the column at From to position To, shifting the ones in between.
// Out of range positions leave the order unchanged.
type MoveColumn struct{ From, To int }

func (a MoveColumn) apply(s State) State {
	n := len(s.Columns)
	if a.From < 0 || a.From >= n || a.To < 0 || a.To >= n || a.From == a.To {
		return s
	}

	column := s.Columns[a.From]
	s.Columns = slices.Delete(s.Columns, a.From, a.From+1)
	s.Columns = slices.Insert(s.Columns, a.To, column)

	return s
}

// SelectAlarm opens the detail view for an alarm.
type SelectAlarm struct{ ID string }

func (a SelectAlarm) apply(s State) State {
	s.Selected = a.ID

	return s
}

// CloseDetail closes the detail view.
type CloseDetail struct{}

func (CloseDetail) apply(s State) State {
	s.Selected = ""

	return s
}
