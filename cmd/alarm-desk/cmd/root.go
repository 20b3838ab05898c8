package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-desk/internal/config"
	client "github.com/oshokin/alarm-desk/internal/service/client"
	"github.com/oshokin/alarm-desk/internal/version"
)

var (
	// connection holds the persistent connection flags.
	connection = client.Options{}

	// rootCmd represents the base command of the operator console.
	rootCmd = &cobra.Command{
		Use:   "alarm-desk",
		Short: "Browse and triage alarms on the alarm desk server.",
		Long: `Operator console for the alarm desk.

Lists alarms with filters, sorting and a custom column order, shows alarm
details and applies triage actions: status changes, assignment and muting.
Every change is recorded with the current user and hostname.`,
		SilenceUsage: true,
	}
)

// Execute runs the alarm-desk CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runSession wires signal handling and a connected session into a command.
func runSession(fn func(ctx context.Context, s *client.Session) error) error {
	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return client.Run(ctx, &connection, fn)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVarP(&connection.ConfigPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&connection.ServerAddress, "server", "s", "", "server address, overrides the configuration")
}
