package client

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	domain "github.com/oshokin/alarm-desk/internal/domain/alarm"
	"github.com/oshokin/alarm-desk/internal/domain/view"
	pb "github.com/oshokin/alarm-desk/internal/wire/deskv1"
)

const (
	unassignedLabel = "Unassigned"
	timeLayout      = time.RFC3339
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// renderTable writes the alarms in column order with a sort marker on the active header.
func renderTable(w io.Writer, state view.State, alarms []*domain.Alarm, total int) error {
	tw := newTabWriter(w)

	headers := make([]string, 0, len(state.Columns))
	for _, column := range state.Columns {
		header := column.Title()
		if view.SortField(column) == state.Sort.Field {
			header += sortMarker(state.Sort.Direction)
		}

		headers = append(headers, header)
	}

	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, a := range alarms {
		cells := make([]string, 0, len(state.Columns))
		for _, column := range state.Columns {
			cells = append(cells, cell(a, column))
		}

		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\n%d of %d alarms\n", len(alarms), total)

	return err
}

func sortMarker(d view.Direction) string {
	if d == view.Descending {
		return " ↓"
	}

	return " ↑"
}

func cell(a *domain.Alarm, column view.Column) string {
	switch column {
	case view.ColumnID:
		return a.ID
	case view.ColumnDevice:
		return a.Device
	case view.ColumnStatus:
		return string(a.Status)
	case view.ColumnDescription:
		return a.Description
	case view.ColumnAssignedTo:
		return assigneeLabel(a)
	case view.ColumnUrgent:
		if a.Urgent {
			return "yes"
		}

		return "no"
	case view.ColumnTimeElapsed:
		return a.TimeElapsed
	case view.ColumnSeverity:
		return string(a.Severity)
	default:
		return ""
	}
}

func assigneeLabel(a *domain.Alarm) string {
	if !a.Assigned() {
		return unassignedLabel
	}

	return a.Assignee()
}

// renderDetail writes the detail view of one alarm with the actions it allows.
func renderDetail(w io.Writer, a *domain.Alarm) error {
	tw := newTabWriter(w)

	rows := [][2]string{
		{"ID", a.ID},
		{"Device", a.Device},
		{"Status", string(a.Status)},
		{"Severity", string(a.Severity)},
		{"Urgent", cell(a, view.ColumnUrgent)},
		{"Description", a.Description},
		{"Assigned to", assigneeLabel(a)},
		{"Time elapsed", a.TimeElapsed},
	}

	if !a.MutedUntil.IsZero() {
		rows = append(rows, [2]string{"Muted until", a.MutedUntil.Local().Format(timeLayout)})
	}

	if a.LastActor != nil {
		rows = append(rows, [2]string{"Last change", fmt.Sprintf("%s at %s", a.LastActor, a.UpdatedAt.Local().Format(timeLayout))})
	}

	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render alarm: %w", err)
	}

	if a.IsMuted() {
		_, err := fmt.Fprintln(w, "\nStatus and assignee are locked while muted. Use unmute first.")

		return err
	}

	statuses := make([]string, 0, len(domain.Statuses()))
	for _, status := range domain.Statuses() {
		if status != domain.StatusMuted {
			statuses = append(statuses, string(status))
		}
	}

	_, err := fmt.Fprintf(w, "\nStatus: %s\nMute for: %s\n", strings.Join(statuses, ", "), strings.Join(muteChoices(), ", "))

	return err
}

func renderAssignees(w io.Writer, assignees []*pb.Assignee) error {
	tw := newTabWriter(w)

	fmt.Fprintln(tw, "ID\tNAME\tINITIALS\tEMAIL")

	for _, a := range assignees {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Initials, a.Email)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render assignees: %w", err)
	}

	return nil
}

func renderDevices(w io.Writer, devices []string) error {
	for _, device := range devices {
		if _, err := fmt.Fprintln(w, device); err != nil {
			return err
		}
	}

	return nil
}
