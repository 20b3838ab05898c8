package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-desk/internal/config"
	"github.com/oshokin/alarm-desk/internal/service/server"
	"github.com/oshokin/alarm-desk/internal/version"
)

var (
	// options collects flag values for the server.
	options = server.Options{}

	// rootCmd represents the base command for running the gRPC server.
	rootCmd = &cobra.Command{
		Use:   "alarm-desk-server [listen-address]",
		Short: "Run the alarm desk gRPC server.",
		Long: `Starts the gRPC server that owns the alarm working set and serves filtered,
sorted views of it to operator consoles.

Only the port from ServerAddress config is used for listening (e.g., :7070).
Listen address can be provided as argument to override config (e.g., :9090, 0.0.0.0:7070).
The working set is persisted to a JSON file and seeded from a YAML file on first start.
Mutes with an expiry are lifted automatically.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			if len(args) > 0 {
				options.ListenAddress = args[0]
			}

			return server.Run(ctx, &options)
		},
	}
)

// Execute runs the alarm-desk-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.Flags()

	flags.StringVarP(&options.ConfigPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&options.StateFile, "state-file", "s", "", "path to persist the alarm working set")
	flags.StringVar(&options.SeedFile, "seed-file", "", "YAML file with the initial alarms")
	flags.StringVar(&options.MetricsAddress, "metrics-addr", "", "address of the Prometheus /metrics listener")
	flags.StringVar(&options.LogLevel, "log-level", "", "minimum log level (debug, info, warn, error)")
}
