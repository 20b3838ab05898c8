package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	api "github.com/oshokin/alarm-desk/internal/api/grpc/desk"
	domain "github.com/oshokin/alarm-desk/internal/domain/alarm"
	"github.com/oshokin/alarm-desk/internal/logger"
	pb "github.com/oshokin/alarm-desk/internal/wire/deskv1"
)

// muteDurations are the quick choices offered for muting.
var muteDurations = []time.Duration{time.Hour, 4 * time.Hour, 24 * time.Hour}

func muteChoices() []string {
	choices := make([]string, 0, len(muteDurations))
	for _, d := range muteDurations {
		choices = append(choices, fmt.Sprintf("%dh", int(d.Hours())))
	}

	return choices
}

// ParseMuteDuration accepts any positive Go duration, e.g. 1h, 4h, 24h or 90m.
func ParseMuteDuration(value string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidMuteDuration, err)
	}

	if d < time.Second {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidMuteDuration, value)
	}

	return d, nil
}

// Show prints the detail view of an alarm.
func (s *Session) Show(ctx context.Context, id string) error {
	alarm, err := s.desk.GetAlarm(ctx, id)
	if err != nil {
		return err
	}

	return renderDetail(s.out, api.FromWireAlarm(alarm))
}

// Devices prints the distinct device labels.
func (s *Session) Devices(ctx context.Context) error {
	devices, err := s.desk.ListDevices(ctx)
	if err != nil {
		return err
	}

	return renderDevices(s.out, devices)
}

// Assignees prints the assignee roster.
func (s *Session) Assignees(ctx context.Context) error {
	assignees, err := s.desk.ListAssignees(ctx)
	if err != nil {
		return err
	}

	return renderAssignees(s.out, assignees)
}

// SetStatus changes the status of an alarm.
func (s *Session) SetStatus(ctx context.Context, id, value string) error {
	status, ok := domain.ParseStatus(value)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownStatus, value)
	}

	if status == domain.StatusMuted {
		return domain.ErrUseMute
	}

	return s.apply(ctx, "Status changed", func() (*pb.Alarm, error) {
		return s.desk.SetAlarmStatus(ctx, s.actor, id, string(status))
	})
}

// Assign assigns an alarm to a roster entry given by id or name.
func (s *Session) Assign(ctx context.Context, id, assignee string) error {
	if strings.TrimSpace(assignee) == "" {
		return fmt.Errorf("%w: empty name, use unassign", domain.ErrUnknownAssignee)
	}

	return s.apply(ctx, "Alarm assigned", func() (*pb.Alarm, error) {
		return s.desk.AssignAlarm(ctx, s.actor, id, assignee)
	})
}

// Unassign clears the assignee of an alarm.
func (s *Session) Unassign(ctx context.Context, id string) error {
	return s.apply(ctx, "Alarm unassigned", func() (*pb.Alarm, error) {
		return s.desk.AssignAlarm(ctx, s.actor, id, "")
	})
}

// Mute silences an alarm for the duration.
func (s *Session) Mute(ctx context.Context, id, duration string) error {
	d, err := ParseMuteDuration(duration)
	if err != nil {
		return err
	}

	return s.apply(ctx, "Alarm muted", func() (*pb.Alarm, error) {
		return s.desk.MuteAlarm(ctx, s.actor, id, d)
	})
}

// Unmute lifts the mute of an alarm.
func (s *Session) Unmute(ctx context.Context, id string) error {
	return s.apply(ctx, "Alarm unmuted", func() (*pb.Alarm, error) {
		return s.desk.UnmuteAlarm(ctx, s.actor, id)
	})
}

// apply runs a triage call and prints the updated alarm.
func (s *Session) apply(ctx context.Context, message string, call func() (*pb.Alarm, error)) error {
	updated, err := call()
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, message, "alarm_id", updated.ID, "status", updated.Status)

	return renderDetail(s.out, api.FromWireAlarm(updated))
}
