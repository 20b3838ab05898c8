package alarm

import (
	"errors"
	"fmt"
	"time"
)

// Alarm is a device-originated event record requiring operator triage.
type Alarm struct {
	// ID uniquely identifies the alarm within the working set.
	ID string `json:"id" yaml:"id"`
	// Device is the label of the originating device.
	Device string `json:"device" yaml:"device"`
	// Status is the current triage label.
	Status Status `json:"status" yaml:"status"`
	// Description is free text describing the problem.
	Description string `json:"description" yaml:"description"`
	// AssignedTo is the assignee name, nil when unassigned.
	AssignedTo *string `json:"assignedTo" yaml:"assignedTo"`
	// Urgent marks alarms that must be handled first.
	Urgent bool `json:"urgent" yaml:"urgent"`
	// TimeElapsed is a display string, not a structured duration.
	TimeElapsed string `json:"timeElapsed" yaml:"timeElapsed"`
	// Severity is the categorical urgency level.
	Severity Severity `json:"severity" yaml:"severity"`

	// MutedUntil is when the current mute expires, zero when not muted.
	MutedUntil time.Time `json:"mutedUntil,omitempty" yaml:"-"`
	// StatusBeforeMute is the status restored when the mute is lifted.
	StatusBeforeMute Status `json:"statusBeforeMute,omitempty" yaml:"-"`
	// LastActor is who last changed the alarm.
	LastActor *Actor `json:"lastActor,omitempty" yaml:"-"`
	// UpdatedAt is when the alarm was last changed.
	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"-"`
}

var (
	// ErrEmptyID is returned for an alarm without identifier.
	ErrEmptyID = errors.New("alarm id is empty")
	// ErrUnknownStatus is returned for a status outside the enumeration.
	ErrUnknownStatus = errors.New("unknown alarm status")
	// ErrUnknownSeverity is returned for a severity outside the enumeration.
	ErrUnknownSeverity = errors.New("unknown alarm severity")
	// ErrDuplicateID is returned when two alarms share an identifier.
	ErrDuplicateID = errors.New("duplicate alarm id")
	// ErrNilAlarm is returned for an empty entry in an alarm list.
	ErrNilAlarm = errors.New("alarm entry is empty")
)

// Assigned reports whether the alarm has an assignee.
func (a *Alarm) Assigned() bool {
	return a.AssignedTo != nil
}

// Assignee returns the assignee name or an empty string.
func (a *Alarm) Assignee() string {
	if a.AssignedTo == nil {
		return ""
	}

	return *a.AssignedTo
}

// IsMuted reports whether the alarm is muted.
func (a *Alarm) IsMuted() bool {
	return a.Status == StatusMuted
}

// Clone returns a deep copy of the alarm.
func (a *Alarm) Clone() *Alarm {
	if a == nil {
		return nil
	}

	cloned := *a
	cloned.LastActor = a.LastActor.Clone()

	if a.AssignedTo != nil {
		name := *a.AssignedTo
		cloned.AssignedTo = &name
	}

	return &cloned
}

// Validate checks the alarm fields that have a closed set of values.
func (a *Alarm) Validate() error {
	if a.ID == "" {
		return ErrEmptyID
	}

	if !a.Status.Valid() {
		return fmt.Errorf("alarm %s: %w: %q", a.ID, ErrUnknownStatus, a.Status)
	}

	if !a.Severity.Valid() {
		return fmt.Errorf("alarm %s: %w: %q", a.ID, ErrUnknownSeverity, a.Severity)
	}

	return nil
}

// ValidateSet validates every alarm and checks that identifiers are unique.
func ValidateSet(alarms []*Alarm) error {
	seen := make(map[string]struct{}, len(alarms))

	for i, a := range alarms {
		if a == nil {
			return fmt.Errorf("%w: position %d", ErrNilAlarm, i)
		}

		if err := a.Validate(); err != nil {
			return err
		}

		if _, ok := seen[a.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, a.ID)
		}

		seen[a.ID] = struct{}{}
	}

	return nil
}

// CloneAll deep-copies a slice of alarms.
func CloneAll(alarms []*Alarm) []*Alarm {
	result := make([]*Alarm, 0, len(alarms))
	for _, a := range alarms {
		result = append(result, a.Clone())
	}

	return result
}

// Name returns a pointer to a copy of name, handy for AssignedTo literals.
func Name(name string) *string {
	return &name
}
