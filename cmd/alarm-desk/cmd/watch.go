package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	client "github.com/oshokin/alarm-desk/internal/service/client"
)

var (
	// watchInterval is the refresh period.
	watchInterval time.Duration

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Refresh the alarm table periodically.",
		Long:  `Prints the alarm table like list and refreshes it until interrupted. Accepts the list flags.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSession(func(ctx context.Context, s *client.Session) error {
				return s.Watch(ctx, &listOptions, watchInterval)
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	watchCmd.Flags().AddFlagSet(listCmd.Flags())
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", client.DefaultWatchInterval, "refresh interval")

	rootCmd.AddCommand(watchCmd)
}
