package server

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-desk/internal/domain/alarm"
	"github.com/oshokin/alarm-desk/internal/domain/view"
	"github.com/oshokin/alarm-desk/internal/metrics"
	repo "github.com/oshokin/alarm-desk/internal/repository/alarms"
)

var (
	errTestLoad = errors.New("test load error")
	errTestSave = errors.New("test save error")
)

// memoryRepository is a minimal in-memory Repository implementation for tests.
type memoryRepository struct {
	// alarms is the working set to return from Load operations.
	alarms []*domain.Alarm
	// loadErr is the error to return from Load operations.
	loadErr error
	// saveErr is the error to return from Save operations.
	saveErr error
	// saved stores the last working set passed to Save operations.
	saved []*domain.Alarm
	// saves counts Save calls.
	saves int
}

// Load returns the configured alarms and error.
func (m *memoryRepository) Load(context.Context) ([]*domain.Alarm, error) {
	return m.alarms, m.loadErr
}

// Save stores a copy of the working set unless saveErr is set.
func (m *memoryRepository) Save(_ context.Context, alarms []*domain.Alarm) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.saved = domain.CloneAll(alarms)
	m.saves++

	return nil
}

func testActor() *domain.Actor {
	return &domain.Actor{
		Hostname: "ops-console",
		Username: "o.shokin",
	}
}

func newTestService(t *testing.T, opts ...serviceOption) (*service, *memoryRepository) {
	t.Helper()

	repository := &memoryRepository{loadErr: repo.ErrNotFound}

	s, err := newService(context.Background(), repository, opts...)
	require.NoError(t, err)

	return s, repository
}

// TestNewService_LoadsStateOrSeed asserts newService behavior on stored, missing and broken state.
func TestNewService_LoadsStateOrSeed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// Stored state wins over the seed.
	stored := []*domain.Alarm{{ID: "AL-900", Device: "Atlas-9", Status: domain.StatusResolved, Severity: domain.SeverityInfo}}

	s, err := newService(ctx, &memoryRepository{alarms: stored})
	require.NoError(t, err)

	alarms, total := s.ListAlarms(ctx, view.Query{})
	require.Equal(t, 1, total)
	require.Equal(t, "AL-900", alarms[0].ID)

	// Not found -> seed, persisted right away.
	repository := &memoryRepository{loadErr: repo.ErrNotFound}

	s, err = newService(ctx, repository)
	require.NoError(t, err)
	require.Len(t, repository.saved, 3)

	_, total = s.ListAlarms(ctx, view.Query{})
	require.Equal(t, 3, total)

	// Other error.
	s, err = newService(ctx, &memoryRepository{loadErr: errTestLoad})
	require.ErrorIs(t, err, errTestLoad)
	require.Nil(t, s)

	// Invalid seed.
	duplicate := []*domain.Alarm{
		{ID: "AL-1", Status: domain.StatusResolved, Severity: domain.SeverityInfo},
		{ID: "AL-1", Status: domain.StatusResolved, Severity: domain.SeverityInfo},
	}

	_, err = newService(ctx, nil, withSeed(duplicate))
	require.ErrorIs(t, err, domain.ErrDuplicateID)
}

// TestService_ListAlarms projects the working set and returns copies.
func TestService_ListAlarms(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	ctx := context.Background()

	alarms, total := s.ListAlarms(ctx, view.Query{Filters: view.Filters{Status: view.StatusAllActive}})
	require.Equal(t, 3, total)
	require.ElementsMatch(t, []string{"AL-002", "AL-003"}, []string{alarms[0].ID, alarms[1].ID})

	// Mutating the result does not leak into the service.
	alarms[0].Description = "changed"

	again, _ := s.ListAlarms(ctx, view.Query{Filters: view.Filters{Status: view.StatusAllActive}})
	require.NotEqual(t, "changed", again[0].Description)

	require.Equal(t, []string{"Spot-1", "Spot-2", "Atlas-1"}, s.Devices(ctx))
	require.Len(t, s.Assignees(ctx), 3)
}

// TestService_SetStatus covers the happy path and every rejection.
func TestService_SetStatus(t *testing.T) {
	t.Parallel()

	collector := metrics.New()
	s, repository := newTestService(t, withMetrics(collector))
	ctx := context.Background()

	updated, err := s.SetStatus(ctx, testActor(), "AL-003", domain.StatusInProgress)
	require.NoError(t, err)
	require.Equal(t, domain.StatusInProgress, updated.Status)
	require.Equal(t, testActor(), updated.LastActor)
	require.False(t, updated.UpdatedAt.IsZero())
	require.Equal(t, domain.StatusInProgress, repository.saved[2].Status)

	_, err = s.SetStatus(ctx, testActor(), "AL-404", domain.StatusResolved)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.SetStatus(ctx, testActor(), "AL-003", domain.StatusMuted)
	require.ErrorIs(t, err, domain.ErrUseMute)

	_, err = s.SetStatus(ctx, testActor(), "AL-003", "Closed")
	require.ErrorIs(t, err, domain.ErrUnknownStatus)

	_, err = s.SetStatus(ctx, testActor(), "AL-001", domain.StatusResolved)
	require.ErrorIs(t, err, domain.ErrMuted)

	_, err = s.SetStatus(ctx, nil, "AL-003", domain.StatusResolved)
	require.ErrorIs(t, err, domain.ErrActorRequired)

	expected := `
# HELP alarm_desk_actions_total Triage actions by kind and result
# TYPE alarm_desk_actions_total counter
alarm_desk_actions_total{action="set_status",result="ok"} 1
alarm_desk_actions_total{action="set_status",result="rejected"} 5
`
	require.NoError(t, testutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected), "alarm_desk_actions_total"))
}

// TestService_Assign resolves the roster by id and name and unassigns on empty input.
func TestService_Assign(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	ctx := context.Background()

	updated, err := s.Assign(ctx, testActor(), "AL-003", "2")
	require.NoError(t, err)
	require.Equal(t, "Jane Smith", updated.Assignee())

	updated, err = s.Assign(ctx, testActor(), "AL-003", "bob wilson")
	require.NoError(t, err)
	require.Equal(t, "Bob Wilson", updated.Assignee())

	updated, err = s.Assign(ctx, testActor(), "AL-003", "")
	require.NoError(t, err)
	require.False(t, updated.Assigned())

	_, err = s.Assign(ctx, testActor(), "AL-003", "Nobody")
	require.ErrorIs(t, err, domain.ErrUnknownAssignee)

	_, err = s.Assign(ctx, testActor(), "AL-001", "1")
	require.ErrorIs(t, err, domain.ErrMuted)

	unassigned, _ := s.ListAlarms(ctx, view.Query{Filters: view.Filters{Assignee: view.AssigneeUnassigned}})
	require.Len(t, unassigned, 2)
}

// TestService_NoChangeSkipsPersistence avoids writing identical state.
func TestService_NoChangeSkipsPersistence(t *testing.T) {
	t.Parallel()

	s, repository := newTestService(t)
	ctx := context.Background()
	saves := repository.saves

	_, err := s.SetStatus(ctx, testActor(), "AL-002", domain.StatusAcknowledged)
	require.NoError(t, err)

	_, err = s.Assign(ctx, testActor(), "AL-002", "John Doe")
	require.NoError(t, err)

	_, err = s.Unmute(ctx, testActor(), "AL-003")
	require.NoError(t, err)

	require.Equal(t, saves, repository.saves)
}

// TestService_MuteUnmute remembers the previous status and restores it.
func TestService_MuteUnmute(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s, _ := newTestService(t, withClock(func() time.Time { return now }))
	ctx := context.Background()

	muted, err := s.Mute(ctx, testActor(), "AL-002", 4*time.Hour)
	require.NoError(t, err)
	require.Equal(t, domain.StatusMuted, muted.Status)
	require.Equal(t, domain.StatusAcknowledged, muted.StatusBeforeMute)
	require.Equal(t, now.Add(4*time.Hour), muted.MutedUntil)

	// Muting again extends the timer and keeps the status to restore.
	muted, err = s.Mute(ctx, testActor(), "AL-002", 24*time.Hour)
	require.NoError(t, err)
	require.Equal(t, domain.StatusAcknowledged, muted.StatusBeforeMute)
	require.Equal(t, now.Add(24*time.Hour), muted.MutedUntil)

	unmuted, err := s.Unmute(ctx, testActor(), "AL-002")
	require.NoError(t, err)
	require.Equal(t, domain.StatusAcknowledged, unmuted.Status)
	require.True(t, unmuted.MutedUntil.IsZero())
	require.Empty(t, unmuted.StatusBeforeMute)

	// The seeded muted alarm has no status to restore.
	unmuted, err = s.Unmute(ctx, testActor(), "AL-001")
	require.NoError(t, err)
	require.Equal(t, domain.StatusUnacknowledged, unmuted.Status)

	_, err = s.Mute(ctx, testActor(), "AL-003", 0)
	require.ErrorIs(t, err, domain.ErrInvalidMuteDuration)
}

// TestService_SaveFailureKeepsState leaves the working set untouched when persistence fails.
func TestService_SaveFailureKeepsState(t *testing.T) {
	t.Parallel()

	s, repository := newTestService(t)
	ctx := context.Background()
	repository.saveErr = errTestSave

	_, err := s.SetStatus(ctx, testActor(), "AL-003", domain.StatusResolved)
	require.ErrorIs(t, err, errTestSave)

	current, err := s.GetAlarm(ctx, "AL-003")
	require.NoError(t, err)
	require.Equal(t, domain.StatusUnacknowledged, current.Status)
}

// TestService_ExpireMutes lifts only elapsed timers.
func TestService_ExpireMutes(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s, _ := newTestService(t, withClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err := s.Mute(ctx, testActor(), "AL-002", time.Hour)
	require.NoError(t, err)

	_, err = s.Mute(ctx, testActor(), "AL-003", 24*time.Hour)
	require.NoError(t, err)

	n, err := s.ExpireMutes(ctx, now.Add(30*time.Minute))
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = s.ExpireMutes(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	restored, err := s.GetAlarm(ctx, "AL-002")
	require.NoError(t, err)
	require.Equal(t, domain.StatusAcknowledged, restored.Status)

	// AL-001 is muted without a timer and AL-003 still has time left.
	muted, _ := s.ListAlarms(ctx, view.Query{Filters: view.Filters{Status: view.StatusMuted}})
	require.Len(t, muted, 2)
}

// TestRunMuteSweeper unmutes alarms once their timer elapses on the sweeper tick.
func TestRunMuteSweeper(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		s, err := newService(context.Background(), nil)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		_, err = s.Mute(ctx, testActor(), "AL-003", time.Hour)
		require.NoError(t, err)

		go runMuteSweeper(ctx, s, time.Minute)

		time.Sleep(59 * time.Minute)
		synctest.Wait()

		current, err := s.GetAlarm(ctx, "AL-003")
		require.NoError(t, err)
		require.Equal(t, domain.StatusMuted, current.Status)

		time.Sleep(2 * time.Minute)
		synctest.Wait()

		current, err = s.GetAlarm(ctx, "AL-003")
		require.NoError(t, err)
		require.Equal(t, domain.StatusUnacknowledged, current.Status)

		cancel()
		synctest.Wait()
	})
}

// TestResolveListenAddress covers override, config port extraction and errors.
func TestResolveListenAddress(t *testing.T) {
	t.Parallel()

	address, err := resolveListenAddress("desk.local:7070", "")
	require.NoError(t, err)
	require.Equal(t, ":7070", address)

	address, err = resolveListenAddress("desk.local:7070", "127.0.0.1:9000")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", address)

	_, err = resolveListenAddress("", "")
	require.ErrorIs(t, err, ErrNoServerAddress)

	_, err = resolveListenAddress("desk.local", "")
	require.Error(t, err)
}
