package desk

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	domain "github.com/oshokin/alarm-desk/internal/domain/alarm"
	"github.com/oshokin/alarm-desk/internal/domain/view"
	"github.com/oshokin/alarm-desk/internal/logger"
	pb "github.com/oshokin/alarm-desk/internal/wire/deskv1"
)

var errTestDisk = errors.New("disk is full")

// fakeService implements the desk Service interface for unit testing the transport.
type fakeService struct {
	// alarms is the working set served by the fake.
	alarms []*domain.Alarm
	// lastQuery records the query passed to ListAlarms.
	lastQuery view.Query
	// lastMute records the duration passed to Mute.
	lastMute time.Duration
	// err is returned by every mutating call when set.
	err error
}

func newFakeService() *fakeService {
	return &fakeService{
		alarms: []*domain.Alarm{
			{ID: "AL-001", Device: "Spot-1", Status: domain.StatusMuted, Severity: domain.SeverityWarning},
			{ID: "AL-002", Device: "Spot-2", Status: domain.StatusAcknowledged, Severity: domain.SeverityInfo,
				AssignedTo: domain.Name("John Doe")},
		},
	}
}

func (f *fakeService) ListAlarms(_ context.Context, query view.Query) ([]*domain.Alarm, int) {
	f.lastQuery = query

	return view.Project(f.alarms, query), len(f.alarms)
}

func (f *fakeService) GetAlarm(_ context.Context, id string) (*domain.Alarm, error) {
	for _, a := range f.alarms {
		if a.ID == id {
			return a, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
}

func (f *fakeService) Devices(context.Context) []string { return view.Devices(f.alarms) }

func (f *fakeService) Assignees(context.Context) []domain.Assignee { return domain.DefaultAssignees() }

func (f *fakeService) SetStatus(
	ctx context.Context,
	actor *domain.Actor,
	id string,
	newStatus domain.Status,
) (*domain.Alarm, error) {
	return f.mutate(ctx, id, func(a *domain.Alarm) {
		a.Status = newStatus
		a.LastActor = actor
	})
}

func (f *fakeService) Assign(ctx context.Context, _ *domain.Actor, id, assignee string) (*domain.Alarm, error) {
	return f.mutate(ctx, id, func(a *domain.Alarm) { a.AssignedTo = domain.Name(assignee) })
}

func (f *fakeService) Mute(ctx context.Context, _ *domain.Actor, id string, d time.Duration) (*domain.Alarm, error) {
	f.lastMute = d

	return f.mutate(ctx, id, func(a *domain.Alarm) { a.Status = domain.StatusMuted })
}

func (f *fakeService) Unmute(ctx context.Context, _ *domain.Actor, id string) (*domain.Alarm, error) {
	return f.mutate(ctx, id, func(a *domain.Alarm) { a.Status = domain.StatusUnacknowledged })
}

func (f *fakeService) mutate(ctx context.Context, id string, fn func(a *domain.Alarm)) (*domain.Alarm, error) {
	if f.err != nil {
		return nil, f.err
	}

	a, err := f.GetAlarm(ctx, id)
	if err != nil {
		return nil, err
	}

	fn(a)

	return a, nil
}

// TestServer_Validation ensures incomplete requests return InvalidArgument errors.
func TestServer_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(newFakeService())
	ctx := context.Background()
	actor := &pb.SystemActor{Hostname: "h", Username: "u"}

	_, err := s.SetAlarmStatus(ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.SetAlarmStatus(ctx, &pb.SetAlarmStatusRequest{ID: "AL-002", Status: "Resolved"})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.SetAlarmStatus(ctx, &pb.SetAlarmStatusRequest{Actor: actor, Status: "Resolved"})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.SetAlarmStatus(ctx, &pb.SetAlarmStatusRequest{Actor: actor, ID: "AL-002", Status: "Closed"})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.GetAlarm(ctx, &pb.GetAlarmRequest{})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.MuteAlarm(ctx, &pb.MuteAlarmRequest{ID: "AL-002", DurationSeconds: 60})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestServer_ErrorMapping checks domain errors become the matching gRPC codes.
func TestServer_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := map[error]codes.Code{
		domain.ErrNotFound:            codes.NotFound,
		domain.ErrMuted:               codes.FailedPrecondition,
		domain.ErrUseMute:             codes.InvalidArgument,
		domain.ErrUnknownAssignee:     codes.InvalidArgument,
		domain.ErrInvalidMuteDuration: codes.InvalidArgument,
		errTestDisk:                   codes.Internal,
	}

	for err, want := range cases {
		svc := newFakeService()
		svc.err = fmt.Errorf("wrapped: %w", err)

		_, got := NewServer(svc).UnmuteAlarm(context.Background(), &pb.UnmuteAlarmRequest{
			Actor: &pb.SystemActor{Hostname: "h", Username: "u"},
			ID:    "AL-001",
		})
		require.Equal(t, want, status.Code(got), err.Error())
	}
}

// TestServer_ListAlarms converts the wire query and the result.
func TestServer_ListAlarms(t *testing.T) {
	t.Parallel()

	svc := newFakeService()
	s := NewServer(svc)

	response, err := s.ListAlarms(context.Background(), &pb.ListAlarmsRequest{
		Query: pb.Query{
			Filters: pb.Filters{Status: "all-active", Assignee: "assigned"},
			Sort:    pb.Sort{Field: "severity", Direction: "desc"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 2, response.Total)
	require.Len(t, response.Alarms, 1)
	require.Equal(t, "AL-002", response.Alarms[0].ID)
	require.Equal(t, "John Doe", *response.Alarms[0].AssignedTo)

	require.Equal(t, view.StatusAllActive, svc.lastQuery.Filters.Status)
	require.Equal(t, view.DeviceAll, svc.lastQuery.Filters.Device)
	require.Equal(t, view.Sort{Field: view.SortBySeverity, Direction: view.Descending}, svc.lastQuery.Sort)

	// A nil request lists everything in default order.
	response, err = s.ListAlarms(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, response.Alarms, 2)
	require.Equal(t, view.DefaultSort(), svc.lastQuery.Sort)
}

// TestServer_ListAlarmsLogsRequester records who asked for the view.
func TestServer_ListAlarmsLogsRequester(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core).Sugar())

	_, err := NewServer(newFakeService()).ListAlarms(ctx, &pb.ListAlarmsRequest{
		RequestingActor: &pb.SystemActor{Hostname: "ops-console", Username: "o.shokin"},
		Query:           pb.Query{Filters: pb.Filters{Status: "muted"}},
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("List alarms requested").All()
	require.Len(t, entries, 1)
	require.Equal(t, "o.shokin@ops-console", entries[0].ContextMap()["actor"])

	_, err = NewServer(newFakeService()).ListAlarms(ctx, &pb.ListAlarmsRequest{})
	require.NoError(t, err)

	entries = logs.FilterMessage("List alarms requested").All()
	require.Len(t, entries, 2)
	require.Equal(t, "<unknown>", entries[1].ContextMap()["actor"])
}

// TestServer_MuteAlarm converts seconds into a duration.
func TestServer_MuteAlarm(t *testing.T) {
	t.Parallel()

	svc := newFakeService()

	response, err := NewServer(svc).MuteAlarm(context.Background(), &pb.MuteAlarmRequest{
		Actor:           &pb.SystemActor{Hostname: "h", Username: "u"},
		ID:              "AL-002",
		DurationSeconds: 4 * 3600,
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusMuted), response.GetAlarm().Status)
	require.Equal(t, 4*time.Hour, svc.lastMute)
}

// TestServer_MuteAlarmRejectsOutOfRange refuses durations that are not positive or overflow time.Duration.
func TestServer_MuteAlarmRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	for _, seconds := range []int64{0, -60, maxMuteSeconds + 1, 18446744074, math.MaxInt64} {
		svc := newFakeService()

		_, err := NewServer(svc).MuteAlarm(context.Background(), &pb.MuteAlarmRequest{
			Actor:           &pb.SystemActor{Hostname: "h", Username: "u"},
			ID:              "AL-002",
			DurationSeconds: seconds,
		})
		require.Equal(t, codes.InvalidArgument, status.Code(err), seconds)
		require.Zero(t, svc.lastMute, seconds)
	}

	svc := newFakeService()

	_, err := NewServer(svc).MuteAlarm(context.Background(), &pb.MuteAlarmRequest{
		Actor:           &pb.SystemActor{Hostname: "h", Username: "u"},
		ID:              "AL-002",
		DurationSeconds: maxMuteSeconds,
	})
	require.NoError(t, err)
	require.Equal(t, time.Duration(maxMuteSeconds)*time.Second, svc.lastMute)
}

// TestServer_OverGRPC exercises the JSON codec and the service descriptor over an in-memory connection.
func TestServer_OverGRPC(t *testing.T) {
	t.Parallel()

	lis := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer()
	pb.RegisterAlarmDeskServiceServer(grpcServer, NewServer(newFakeService()))

	go func() {
		_ = grpcServer.Serve(lis) //nolint:errcheck // Stopped by the test cleanup.
	}()

	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() { _ = conn.Close() })

	client := pb.NewAlarmDeskServiceClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	devices, err := client.ListDevices(ctx, new(pb.ListDevicesRequest))
	require.NoError(t, err)
	require.Equal(t, []string{"Spot-1", "Spot-2"}, devices.Devices)

	updated, err := client.SetAlarmStatus(ctx, &pb.SetAlarmStatusRequest{
		Actor:  &pb.SystemActor{Hostname: "ops-console", Username: "o.shokin"},
		ID:     "AL-002",
		Status: "in-progress",
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusInProgress), updated.GetAlarm().Status)
	require.Equal(t, "o.shokin", updated.GetAlarm().LastActor.Username)

	_, err = client.GetAlarm(ctx, &pb.GetAlarmRequest{ID: "AL-404"})
	require.Equal(t, codes.NotFound, status.Code(err))

	roster, err := client.ListAssignees(ctx, new(pb.ListAssigneesRequest))
	require.NoError(t, err)
	require.Len(t, roster.Assignees, 3)
}
