package cmd

import (
	"context"

	"github.com/spf13/cobra"

	client "github.com/oshokin/alarm-desk/internal/service/client"
)

var (
	// listOptions collects the view flags.
	listOptions = client.ListOptions{}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List alarms as a table.",
		Long: `Lists the alarms that pass every filter, sorted by one column.

Status filter: all, all-active, unacknowledged, acknowledged, in-progress, resolved, muted.
Assignee filter: all, assigned, unassigned. Urgency filter: all, urgent, not-urgent.
--toggle behaves like clicking a column header and may be repeated.
--move reorders columns, e.g. --move severity:1 or --move 3:2.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSession(func(ctx context.Context, s *client.Session) error {
				return s.List(ctx, &listOptions)
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := listCmd.Flags()

	flags.StringVar(&listOptions.Status, "status", "all", "status filter")
	flags.StringVar(&listOptions.Device, "device", "all", "device filter")
	flags.StringVar(&listOptions.Assignee, "assignee", "all", "assignee filter")
	flags.StringVar(&listOptions.Urgency, "urgency", "all", "urgency filter")
	flags.StringVar(&listOptions.Severity, "severity", "all", "severity filter (Warning, Critical, Info)")
	flags.StringVar(&listOptions.SortField, "sort", "", "sort column")
	flags.StringVar(&listOptions.Direction, "direction", "asc", "sort direction used with --sort (asc, desc)")
	flags.StringArrayVar(&listOptions.Toggles, "toggle", nil, "click a column header")
	flags.StringArrayVar(&listOptions.Moves, "move", nil, "move a column, from:to")

	rootCmd.AddCommand(listCmd)
}
