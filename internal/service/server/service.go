package server

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	domain "github.com/oshokin/alarm-desk/internal/domain/alarm"
	"github.com/oshokin/alarm-desk/internal/domain/view"
	"github.com/oshokin/alarm-desk/internal/logger"
	"github.com/oshokin/alarm-desk/internal/metrics"
	repo "github.com/oshokin/alarm-desk/internal/repository/alarms"
)

// Triage action names used in logs and metrics.
const (
	actionSetStatus = "set_status"
	actionAssign    = "assign"
	actionMute      = "mute"
	actionUnmute    = "unmute"
)

// errNoChange aborts an update that would not modify the alarm.
var errNoChange = errors.New("no change")

// service owns the alarm working set and orchestrates persistence.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// repo handles persistent storage of the working set.
	repo repo.Repository
	// metrics records gauges and action counters, may be nil.
	metrics *metrics.Collector
	// assignees is the roster alarms can be assigned to.
	assignees []domain.Assignee
	// now returns the current time.
	now func() time.Time

	// alarms is the working set in load order. The slice is replaced, never modified, on commit.
	alarms []*domain.Alarm
	// index maps alarm ids to positions in alarms.
	index map[string]int
	// mu protects alarms and index.
	mu sync.RWMutex
}

// serviceOption configures the service.
type serviceOption func(*service)

// withSeed sets the working set used when the repository has none.
func withSeed(seed []*domain.Alarm) serviceOption {
	return func(s *service) {
		s.alarms = domain.CloneAll(seed)
	}
}

// withAssignees sets the assignee roster.
func withAssignees(assignees []domain.Assignee) serviceOption {
	return func(s *service) {
		s.assignees = slices.Clone(assignees)
	}
}

// withMetrics enables metric collection.
func withMetrics(collector *metrics.Collector) serviceOption {
	return func(s *service) {
		s.metrics = collector
	}
}

// withClock overrides the time source.
func withClock(now func() time.Time) serviceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// newService creates a service backed by the provided repository.
// The stored working set wins over the seed; a missing state file is created from the seed.
func newService(ctx context.Context, repository repo.Repository, opts ...serviceOption) (*service, error) {
	s := &service{
		repo:      repository,
		assignees: domain.DefaultAssignees(),
		now:       time.Now,
		alarms:    repo.DefaultSeed(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if repository != nil {
		stored, err := repository.Load(ctx)

		switch {
		case err == nil:
			s.alarms = stored
		case errors.Is(err, repo.ErrNotFound):
			logger.InfoKV(ctx, "No stored alarms, starting from seed", "alarms", len(s.alarms))

			if err = repository.Save(ctx, s.alarms); err != nil {
				return nil, fmt.Errorf("persist seed: %w", err)
			}
		default:
			return nil, fmt.Errorf("load alarms: %w", err)
		}
	}

	if err := domain.ValidateSet(s.alarms); err != nil {
		return nil, fmt.Errorf("validate alarms: %w", err)
	}

	s.index = buildIndex(s.alarms)
	s.metrics.ObserveAlarms(s.alarms)

	return s, nil
}

// ListAlarms returns the projection of the working set and the working set size.
func (s *service) ListAlarms(ctx context.Context, query view.Query) ([]*domain.Alarm, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projected := view.Project(s.alarms, query)

	logger.DebugKV(ctx, "Alarms listed", "query", query, "matched", len(projected), "total", len(s.alarms))

	return domain.CloneAll(projected), len(s.alarms)
}

// GetAlarm returns a copy of the alarm with the given id.
func (s *service) GetAlarm(_ context.Context, id string) (*domain.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	return s.alarms[i].Clone(), nil
}

// Devices returns the distinct device labels of the working set.
func (s *service) Devices(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return view.Devices(s.alarms)
}

// Assignees returns the assignee roster.
func (s *service) Assignees(_ context.Context) []domain.Assignee {
	return slices.Clone(s.assignees)
}

// SetStatus changes the status of an alarm. Muting goes through Mute.
func (s *service) SetStatus(
	ctx context.Context,
	actor *domain.Actor,
	id string,
	status domain.Status,
) (*domain.Alarm, error) {
	return s.update(ctx, actionSetStatus, actor, id, func(a *domain.Alarm, _ time.Time) error {
		switch {
		case !status.Valid():
			return fmt.Errorf("%w: %q", domain.ErrUnknownStatus, status)
		case status == domain.StatusMuted:
			return domain.ErrUseMute
		case a.IsMuted():
			return domain.ErrMuted
		case a.Status == status:
			return errNoChange
		}

		a.Status = status

		return nil
	})
}

// Assign sets the assignee of an alarm. The assignee is looked up in the
// roster by id, then by name; an empty value unassigns the alarm.
func (s *service) Assign(ctx context.Context, actor *domain.Actor, id, assignee string) (*domain.Alarm, error) {
	var name *string

	if assignee = strings.TrimSpace(assignee); assignee != "" {
		entry, ok := s.lookupAssignee(assignee)
		if !ok {
			s.metrics.ObserveAction(actionAssign, metrics.ResultRejected)

			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAssignee, assignee)
		}

		name = domain.Name(entry.Name)
	}

	return s.update(ctx, actionAssign, actor, id, func(a *domain.Alarm, _ time.Time) error {
		if a.IsMuted() {
			return domain.ErrMuted
		}

		if a.Assignee() == derefName(name) && a.Assigned() == (name != nil) {
			return errNoChange
		}

		a.AssignedTo = name

		return nil
	})
}

// Mute silences an alarm for the duration. Muting a muted alarm restarts
// the timer and keeps the status to restore.
func (s *service) Mute(ctx context.Context, actor *domain.Actor, id string, d time.Duration) (*domain.Alarm, error) {
	if d <= 0 {
		s.metrics.ObserveAction(actionMute, metrics.ResultRejected)

		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidMuteDuration, d)
	}

	return s.update(ctx, actionMute, actor, id, func(a *domain.Alarm, now time.Time) error {
		if !a.IsMuted() {
			a.StatusBeforeMute = a.Status
			a.Status = domain.StatusMuted
		}

		a.MutedUntil = now.Add(d)

		return nil
	})
}

// Unmute lifts the mute and restores the previous status.
// Unmuting an alarm that is not muted changes nothing.
func (s *service) Unmute(ctx context.Context, actor *domain.Actor, id string) (*domain.Alarm, error) {
	return s.update(ctx, actionUnmute, actor, id, func(a *domain.Alarm, _ time.Time) error {
		if !a.IsMuted() {
			return errNoChange
		}

		unmute(a)

		return nil
	})
}

// ExpireMutes unmutes every alarm whose mute timer elapsed at now.
// Alarms muted without a timer stay muted.
func (s *service) ExpireMutes(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		next    []*domain.Alarm
		expired []string
	)

	for i, a := range s.alarms {
		if !a.IsMuted() || a.MutedUntil.IsZero() || now.Before(a.MutedUntil) {
			continue
		}

		if next == nil {
			next = slices.Clone(s.alarms)
		}

		updated := a.Clone()
		unmute(updated)
		updated.UpdatedAt = now
		next[i] = updated
		expired = append(expired, a.ID)
	}

	if len(expired) == 0 {
		return 0, nil
	}

	if err := s.persist(ctx, next); err != nil {
		return 0, err
	}

	s.alarms = next
	s.metrics.ObserveAlarms(s.alarms)
	s.metrics.ObserveExpiredMutes(len(expired))

	logger.InfoKV(ctx, "Mutes expired", "alarm_ids", expired)

	return len(expired), nil
}

// update applies mutate to a copy of the alarm, persists the new working set
// and only then makes it visible. A failed save leaves the state untouched.
func (s *service) update(
	ctx context.Context,
	action string,
	actor *domain.Actor,
	id string,
	mutate func(a *domain.Alarm, now time.Time) error,
) (*domain.Alarm, error) {
	if actor == nil {
		s.metrics.ObserveAction(action, metrics.ResultRejected)

		return nil, domain.ErrActorRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		s.metrics.ObserveAction(action, metrics.ResultRejected)

		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	now := s.now()
	updated := s.alarms[i].Clone()

	err := mutate(updated, now)
	switch {
	case errors.Is(err, errNoChange):
		return s.alarms[i].Clone(), nil
	case err != nil:
		s.metrics.ObserveAction(action, metrics.ResultRejected)

		return nil, fmt.Errorf("%s %s: %w", action, id, err)
	}

	updated.LastActor = actor.Clone()
	updated.UpdatedAt = now

	next := slices.Clone(s.alarms)
	next[i] = updated

	if err = s.persist(ctx, next); err != nil {
		s.metrics.ObserveAction(action, metrics.ResultFailed)

		return nil, err
	}

	s.alarms = next
	s.metrics.ObserveAlarms(s.alarms)
	s.metrics.ObserveAction(action, metrics.ResultOK)

	logger.InfoKV(ctx, "Alarm updated",
		"action", action,
		"alarm_id", id,
		"status", updated.Status,
		"assigned_to", updated.Assignee(),
		"actor", updated.LastActor.String(),
	)

	return updated.Clone(), nil
}

// persist saves the working set when a repository is configured.
func (s *service) persist(ctx context.Context, alarms []*domain.Alarm) error {
	if s.repo == nil {
		return nil
	}

	if err := s.repo.Save(ctx, alarms); err != nil {
		logger.Errorf(ctx, "Failed to persist alarms: %v", err)

		return fmt.Errorf("persist alarms: %w", err)
	}

	return nil
}

// lookupAssignee finds a roster entry by id, then by case-insensitive name.
func (s *service) lookupAssignee(value string) (domain.Assignee, bool) {
	for _, entry := range s.assignees {
		if entry.ID == value {
			return entry, true
		}
	}

	for _, entry := range s.assignees {
		if strings.EqualFold(entry.Name, value) {
			return entry, true
		}
	}

	return domain.Assignee{}, false
}

// unmute restores the status held before muting.
func unmute(a *domain.Alarm) {
	restored := a.StatusBeforeMute
	if !restored.Valid() || restored == domain.StatusMuted {
		restored = domain.StatusUnacknowledged
	}

	a.Status = restored
	a.StatusBeforeMute = ""
	a.MutedUntil = time.Time{}
}

func buildIndex(alarms []*domain.Alarm) map[string]int {
	index := make(map[string]int, len(alarms))
	for i, a := range alarms {
		index[a.ID] = i
	}

	return index
}

func derefName(name *string) string {
	if name == nil {
		return ""
	}

	return *name
}
