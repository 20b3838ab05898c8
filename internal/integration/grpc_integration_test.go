package integration

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oshokin/alarm-desk/internal/config"
	"github.com/oshokin/alarm-desk/internal/service/common"
	"github.com/oshokin/alarm-desk/internal/service/server"
	pb "github.com/oshokin/alarm-desk/internal/wire/deskv1"
)

// startGRPC starts a gRPC server with temporary config and persistent state file.
// Returns a stop function to gracefully shutdown the server.
func startGRPC(t *testing.T, addr string, statePath string) (stop func()) {
	t.Helper()

	// Create cancellable context for server lifecycle.
	ctx, cancel := context.WithCancel(context.Background())
	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")

	// Create temporary configuration file.
	require.NoError(
		t,
		config.Save(cfgPath, &config.Config{
			ServerAddress:     addr,
			StateFile:         statePath,
			Timeout:           5 * time.Second,
			MuteSweepInterval: time.Second,
			LogLevel:          "error",
		}),
	)

	done := make(chan struct{})

	// Start server in background goroutine.
	go func() {
		defer close(done)

		_ = server.Run(ctx, &server.Options{ConfigPath: cfgPath}) //nolint:errcheck // Failures surface as dial errors.
	}()

	// Wait briefly for server to start listening.
	time.Sleep(150 * time.Millisecond)

	return func() {
		cancel()
		<-done
	}
}

// freeAddress reserves a free local port for a test server.
func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

func dial(t *testing.T, addr string) *common.Client {
	t.Helper()

	c, err := common.Dial(context.Background(), addr, common.WithCallTimeout(3*time.Second))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

// TestGRPC_Triage starts the real server, triages alarms and checks they survive a restart.
func TestGRPC_Triage(t *testing.T) {
	t.Parallel()

	addr := freeAddress(t)
	statePath := filepath.Join(t.TempDir(), "state.json")
	stop := startGRPC(t, addr, statePath)
	ctx := context.Background()
	c := dial(t, addr)

	// Create test actor for audit logging.
	actor := &pb.SystemActor{
		Hostname: "test-hostname",
		Username: "test-user",
	}

	// The seed is served and persisted on first start.
	resp, err := c.ListAlarms(ctx, actor, pb.Query{})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)

	_, err = os.Stat(statePath)
	require.NoError(t, err)

	active, err := c.ListAlarms(ctx, actor, pb.Query{
		Filters: pb.Filters{Status: "all-active"},
		Sort:    pb.Sort{Field: "device", Direction: "desc"},
	})
	require.NoError(t, err)
	require.Len(t, active.Alarms, 2)
	require.Equal(t, "Spot-2", active.Alarms[0].Device)
	require.Equal(t, "Atlas-1", active.Alarms[1].Device)

	updated, err := c.AssignAlarm(ctx, actor, "AL-003", "Jane Smith")
	require.NoError(t, err)
	require.Equal(t, "Jane Smith", *updated.AssignedTo)
	require.Equal(t, "test-user", updated.LastActor.Username)

	updated, err = c.MuteAlarm(ctx, actor, "AL-003", 4*time.Hour)
	require.NoError(t, err)
	require.Equal(t, "Muted", updated.Status)
	require.NotNil(t, updated.MutedUntil)

	_, err = c.SetAlarmStatus(ctx, actor, "AL-003", "Resolved")
	require.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = c.GetAlarm(ctx, "AL-404")
	require.Equal(t, codes.NotFound, status.Code(err))

	devices, err := c.ListDevices(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Spot-1", "Spot-2", "Atlas-1"}, devices)

	// Restart on the same state file.
	stop()

	stop = startGRPC(t, addr, statePath)
	defer stop()

	c = dial(t, addr)

	restored, err := c.GetAlarm(ctx, "AL-003")
	require.NoError(t, err)
	require.Equal(t, "Muted", restored.Status)
	require.Equal(t, "Jane Smith", *restored.AssignedTo)

	unmuted, err := c.UnmuteAlarm(ctx, actor, "AL-003")
	require.NoError(t, err)
	require.Equal(t, "Unacknowledged", unmuted.Status)
}
