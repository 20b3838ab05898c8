package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	api "github.com/oshokin/alarm-desk/internal/api/grpc/desk"
	domain "github.com/oshokin/alarm-desk/internal/domain/alarm"
	"github.com/oshokin/alarm-desk/internal/domain/view"
)

// ListOptions are the view settings of the list command.
// Empty values keep the session defaults.
type ListOptions struct {
	// Status is the status filter.
	Status string
	// Device is the device filter.
	Device string
	// Assignee is the assignment filter.
	Assignee string
	// Urgency is the urgency filter.
	Urgency string
	// Severity is the severity filter.
	Severity string
	// SortField selects the sort key explicitly.
	SortField string
	// Direction is used with SortField.
	Direction string
	// Toggles are header clicks applied after SortField, in order.
	Toggles []string
	// Moves are column moves written as from:to, 1-based. From may be a column name.
	Moves []string
}

var (
	errUnknownSortField = errors.New("unknown sort field")
	errInvalidMove      = errors.New("invalid column move")
)

// BuildState turns the options into view actions and reduces them from the default state.
func BuildState(opts *ListOptions) (view.State, error) {
	actions := []view.Action{
		view.SetStatusFilter{Value: view.StatusFilter(opts.Status)},
		view.SetDeviceFilter{Value: opts.Device},
		view.SetAssigneeFilter{Value: view.AssigneeFilter(opts.Assignee)},
		view.SetUrgencyFilter{Value: view.UrgencyFilter(opts.Urgency)},
		view.SetSeverityFilter{Value: view.SeverityFilter(opts.Severity)},
	}

	if opts.SortField != "" {
		field, ok := view.ParseSortField(opts.SortField)
		if !ok {
			return view.State{}, fmt.Errorf("%w: %q", errUnknownSortField, opts.SortField)
		}

		actions = append(actions, view.SetSort{Sort: view.Sort{Field: field, Direction: view.Direction(opts.Direction)}})
	}

	for _, toggle := range opts.Toggles {
		field, ok := view.ParseSortField(toggle)
		if !ok {
			return view.State{}, fmt.Errorf("%w: %q", errUnknownSortField, toggle)
		}

		actions = append(actions, view.ToggleSort{Field: field})
	}

	state := view.ReduceAll(view.DefaultState(), actions...)

	// Moves refer to the column order left by the previous ones.
	for _, move := range opts.Moves {
		action, err := parseMove(state.Columns, move)
		if err != nil {
			return view.State{}, err
		}

		state = view.Reduce(state, action)
	}

	return state, nil
}

// parseMove reads "from:to" where positions are 1-based and from may name a column.
func parseMove(columns []view.Column, value string) (view.MoveColumn, error) {
	fromText, toText, ok := strings.Cut(value, ":")
	if !ok {
		return view.MoveColumn{}, fmt.Errorf("%w: %q, want from:to", errInvalidMove, value)
	}

	from, err := columnPosition(columns, fromText)
	if err != nil {
		return view.MoveColumn{}, fmt.Errorf("%w: %q: %w", errInvalidMove, value, err)
	}

	to, err := strconv.Atoi(strings.TrimSpace(toText))
	if err != nil || to < 1 || to > len(columns) {
		return view.MoveColumn{}, fmt.Errorf("%w: %q: target must be 1..%d", errInvalidMove, value, len(columns))
	}

	return view.MoveColumn{From: from, To: to - 1}, nil
}

func columnPosition(columns []view.Column, value string) (int, error) {
	value = strings.TrimSpace(value)

	if n, err := strconv.Atoi(value); err == nil {
		if n < 1 || n > len(columns) {
			return 0, fmt.Errorf("position must be 1..%d", len(columns))
		}

		return n - 1, nil
	}

	column, ok := view.ParseColumn(value)
	if !ok {
		return 0, fmt.Errorf("unknown column %q", value)
	}

	i := slices.Index(columns, column)
	if i < 0 {
		return 0, fmt.Errorf("column %q is not shown", value)
	}

	return i, nil
}

// List prints the alarms matching the options as a table.
func (s *Session) List(ctx context.Context, opts *ListOptions) error {
	state, err := BuildState(opts)
	if err != nil {
		return err
	}

	resp, err := s.desk.ListAlarms(ctx, s.actor, api.ToWireQuery(state.Query()))
	if err != nil {
		return err
	}

	alarms := make([]*domain.Alarm, 0, len(resp.Alarms))
	for _, a := range resp.Alarms {
		alarms = append(alarms, api.FromWireAlarm(a))
	}

	return renderTable(s.out, state, alarms, resp.Total)
}
