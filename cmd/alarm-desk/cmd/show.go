package cmd

import (
	"context"

	"github.com/spf13/cobra"

	client "github.com/oshokin/alarm-desk/internal/service/client"
)

var (
	showCmd = &cobra.Command{
		Use:   "show <alarm-id>",
		Short: "Show alarm details and the actions it allows.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSession(func(ctx context.Context, s *client.Session) error {
				return s.Show(ctx, args[0])
			})
		},
	}

	devicesCmd = &cobra.Command{
		Use:   "devices",
		Short: "List the devices that raised alarms.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSession(func(ctx context.Context, s *client.Session) error {
				return s.Devices(ctx)
			})
		},
	}

	assigneesCmd = &cobra.Command{
		Use:   "assignees",
		Short: "List the operators alarms can be assigned to.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSession(func(ctx context.Context, s *client.Session) error {
				return s.Assignees(ctx)
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(showCmd, devicesCmd, assigneesCmd)
}
