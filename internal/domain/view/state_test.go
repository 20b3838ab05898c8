package view

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDefaultState checks the initial session state.
func TestDefaultState(t *testing.T) {
	t.Parallel()

	s := DefaultState()
	require.Equal(t, AllFilters(), s.Filters)
	require.Equal(t, Sort{Field: SortByStatus, Direction: Ascending}, s.Sort)
	require.Equal(t, DefaultColumns(), s.Columns)
	require.False(t, s.DetailOpen())
}

// TestReduce_ToggleSort flips the active field and resets direction for a new one.
func TestReduce_ToggleSort(t *testing.T) {
	t.Parallel()

	s := Reduce(DefaultState(), ToggleSort{Field: SortByStatus})
	require.Equal(t, Sort{Field: SortByStatus, Direction: Descending}, s.Sort)

	s = Reduce(s, ToggleSort{Field: SortByStatus})
	require.Equal(t, Ascending, s.Sort.Direction)

	s = Reduce(Reduce(s, ToggleSort{Field: SortByStatus}), ToggleSort{Field: SortByTimeElapsed})
	require.Equal(t, Sort{Field: SortByTimeElapsed, Direction: Ascending}, s.Sort)

	unchanged := Reduce(s, ToggleSort{Field: "priority"})
	require.Equal(t, s.Sort, unchanged.Sort)
}

// TestReduce_Filters applies every filter action and the reset.
func TestReduce_Filters(t *testing.T) {
	t.Parallel()

	s := ReduceAll(DefaultState(),
		SetStatusFilter{Value: StatusAllActive},
		SetDeviceFilter{Value: "Spot-2"},
		SetAssigneeFilter{Value: AssigneeAssigned},
		SetUrgencyFilter{Value: UrgencyNotUrgent},
		SetSeverityFilter{Value: "info"},
	)

	require.Equal(t, Filters{
		Status:   StatusAllActive,
		Device:   "Spot-2",
		Assignee: AssigneeAssigned,
		Urgency:  UrgencyNotUrgent,
		Severity: "Info",
	}, s.Filters)
	require.Equal(t, s.Filters, s.Query().Filters)

	s = Reduce(s, SetDeviceFilter{})
	require.Equal(t, DeviceAll, s.Filters.Device)

	s = Reduce(s, SetStatusFilter{Value: "bogus"})
	require.Equal(t, StatusAll, s.Filters.Status)

	s = Reduce(s, ResetFilters{})
	require.Equal(t, AllFilters(), s.Filters)
}

// TestReduce_MoveColumn reorders columns and ignores out of range moves.
func TestReduce_MoveColumn(t *testing.T) {
	t.Parallel()

	initial := DefaultState()

	s := Reduce(initial, MoveColumn{From: 7, To: 1})
	require.Equal(t, []Column{
		ColumnID,
		ColumnSeverity,
		ColumnDevice,
		ColumnStatus,
		ColumnDescription,
		ColumnAssignedTo,
		ColumnUrgent,
		ColumnTimeElapsed,
	}, s.Columns)

	// Input is never modified.
	require.Equal(t, DefaultColumns(), initial.Columns)

	s = Reduce(s, MoveColumn{From: 1, To: 7})
	require.Equal(t, DefaultColumns(), s.Columns)

	require.Equal(t, DefaultColumns(), Reduce(initial, MoveColumn{From: -1, To: 2}).Columns)
	require.Equal(t, DefaultColumns(), Reduce(initial, MoveColumn{From: 1, To: 8}).Columns)
}

// TestReduce_Detail opens and closes the detail view.
func TestReduce_Detail(t *testing.T) {
	t.Parallel()

	s := Reduce(DefaultState(), SelectAlarm{ID: "AL-002"})
	require.True(t, s.DetailOpen())
	require.Equal(t, "AL-002", s.Selected)

	s = Reduce(s, CloseDetail{})
	require.False(t, s.DetailOpen())

	require.Equal(t, s, Reduce(s, nil))
}

// TestParseHelpers covers the input parsers used by the CLI.
func TestParseHelpers(t *testing.T) {
	t.Parallel()

	field, ok := ParseSortField("time-elapsed")
	require.True(t, ok)
	require.Equal(t, SortByTimeElapsed, field)

	field, ok = ParseSortField("AssignedTo")
	require.True(t, ok)
	require.Equal(t, SortByAssignedTo, field)

	_, ok = ParseSortField("priority")
	require.False(t, ok)

	column, ok := ParseColumn("severity")
	require.True(t, ok)
	require.Equal(t, ColumnSeverity, column)
	require.Equal(t, "TIME ELAPSED", ColumnTimeElapsed.Title())

	require.Equal(t, Descending, ParseDirection("DESC"))
	require.Equal(t, Ascending, ParseDirection("sideways"))
	require.Equal(t, SeverityAll, ParseSeverityFilter("all"))
	require.Equal(t, AssigneeUnassigned, ParseAssigneeFilter("Unassigned"))
	require.Equal(t, UrgencyUrgent, ParseUrgencyFilter("urgent"))
}
