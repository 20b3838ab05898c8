package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"

	api "github.com/oshokin/alarm-desk/internal/api/grpc/desk"
	"github.com/oshokin/alarm-desk/internal/config"
	"github.com/oshokin/alarm-desk/internal/logger"
	"github.com/oshokin/alarm-desk/internal/metrics"
	repository "github.com/oshokin/alarm-desk/internal/repository/alarms"
	pb "github.com/oshokin/alarm-desk/internal/wire/deskv1"
)

// Options controls the alarm-desk-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// StateFile overrides the path of the alarm working set JSON.
	StateFile string
	// SeedFile overrides the YAML file with the initial alarms.
	SeedFile string
	// MetricsAddress overrides the Prometheus listener address.
	MetricsAddress string
	// LogLevel overrides the configured log level.
	LogLevel string
}

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the gRPC server and blocks until context is canceled or server stops.
// Loads configuration first, then determines listen address from config or override.
//
//nolint:funlen // Wiring of the process is easier to follow in one place.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-desk-server")

	// Load configuration first to get server settings.
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	applyOverrides(settings, opts)

	if err = logger.ApplyLevel(settings.LogLevel); err != nil {
		return err
	}

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	seed, err := repository.LoadSeed(settings.SeedFile)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}

	collector := metrics.New()

	svc, err := newService(
		ctx,
		repository.NewFileRepository(settings.StateFile),
		withSeed(seed),
		withAssignees(settings.Assignees),
		withMetrics(collector),
	)
	if err != nil {
		return fmt.Errorf("initialise service: %w", err)
	}

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	grpcServer := grpc.NewServer()
	pb.RegisterAlarmDeskServiceServer(grpcServer, api.NewServer(svc))

	logger.InfoKV(ctx, "Alarm desk listening",
		"listen_address", listenAddress,
		"state_file", settings.StateFile,
		"mute_sweep_interval", settings.MuteSweepInterval,
	)

	if settings.MetricsAddress != "" {
		go func() {
			if err := collector.Serve(ctx, settings.MetricsAddress); err != nil {
				logger.ErrorKV(ctx, "Metrics listener stopped", "error", err)
			}
		}()
	}

	go runMuteSweeper(ctx, svc, settings.MuteSweepInterval)

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// muteExpirer is the part of the service the sweeper needs.
type muteExpirer interface {
	ExpireMutes(ctx context.Context, now time.Time) (int, error)
}

// runMuteSweeper lifts elapsed mutes every interval until the context is cancelled.
func runMuteSweeper(ctx context.Context, svc muteExpirer, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultMuteSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := svc.ExpireMutes(ctx, now); err != nil {
				logger.ErrorKV(ctx, "Mute sweep failed", "error", err)
			}
		}
	}
}

// applyOverrides copies non-empty command line values over the file settings.
func applyOverrides(settings *config.Config, opts *Options) {
	if opts.StateFile != "" {
		settings.StateFile = opts.StateFile
	}

	if opts.SeedFile != "" {
		settings.SeedFile = opts.SeedFile
	}

	if opts.MetricsAddress != "" {
		settings.MetricsAddress = opts.MetricsAddress
	}

	if opts.LogLevel != "" {
		settings.LogLevel = opts.LogLevel
	}
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	// Bind on all interfaces.
	return ":" + port, nil
}
