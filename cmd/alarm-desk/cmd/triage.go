package cmd

import (
	"context"

	"github.com/spf13/cobra"

	client "github.com/oshokin/alarm-desk/internal/service/client"
)

var (
	statusCmd = &cobra.Command{
		Use:   "status <alarm-id> <status>",
		Short: "Change the status of an alarm.",
		Long: `Changes the status to Unacknowledged, Acknowledged, In Progress or Resolved.
Muted alarms must be unmuted first; use mute to silence an alarm.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSession(func(ctx context.Context, s *client.Session) error {
				return s.SetStatus(ctx, args[0], args[1])
			})
		},
	}

	assignCmd = &cobra.Command{
		Use:   "assign <alarm-id> <assignee>",
		Short: "Assign an alarm to an operator by roster id or name.",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSession(func(ctx context.Context, s *client.Session) error {
				return s.Assign(ctx, args[0], args[1])
			})
		},
	}

	unassignCmd = &cobra.Command{
		Use:   "unassign <alarm-id>",
		Short: "Remove the assignee of an alarm.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSession(func(ctx context.Context, s *client.Session) error {
				return s.Unassign(ctx, args[0])
			})
		},
	}

	muteCmd = &cobra.Command{
		Use:   "mute <alarm-id> [duration]",
		Short: "Mute an alarm for 1h, 4h, 24h or any duration.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			duration := "1h"
			if len(args) > 1 {
				duration = args[1]
			}

			return runSession(func(ctx context.Context, s *client.Session) error {
				return s.Mute(ctx, args[0], duration)
			})
		},
	}

	unmuteCmd = &cobra.Command{
		Use:   "unmute <alarm-id>",
		Short: "Lift the mute and restore the previous status.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSession(func(ctx context.Context, s *client.Session) error {
				return s.Unmute(ctx, args[0])
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(statusCmd, assignCmd, unassignCmd, muteCmd, unmuteCmd)
}
