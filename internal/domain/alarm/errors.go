package alarm

import "errors"

// Errors returned by triage operations.
var (
	// ErrNotFound is returned when no alarm has the requested id.
	ErrNotFound = errors.New("alarm not found")
	// ErrMuted is returned when a muted alarm is edited; unmute it first.
	ErrMuted = errors.New("alarm is muted")
	// ErrUseMute is returned when the Muted status is set without a duration.
	ErrUseMute = errors.New("muted status requires a mute duration")
	// ErrUnknownAssignee is returned when the assignee is not in the roster.
	ErrUnknownAssignee = errors.New("unknown assignee")
	// ErrInvalidMuteDuration is returned for a non-positive mute duration.
	ErrInvalidMuteDuration = errors.New("mute duration must be positive")
	// ErrActorRequired is returned when a triage action has no actor.
	ErrActorRequired = errors.New("actor is required")
)
