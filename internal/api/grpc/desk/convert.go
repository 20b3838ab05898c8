package desk

import (
	"time"

	domain "github.com/oshokin/alarm-desk/internal/domain/alarm"
	"github.com/oshokin/alarm-desk/internal/domain/view"
	pb "github.com/oshokin/alarm-desk/internal/wire/deskv1"
)

// toDomainActor converts a wire SystemActor to a domain Actor.
func toDomainActor(actor *pb.SystemActor) *domain.Actor {
	if actor == nil {
		return nil
	}

	return &domain.Actor{
		Hostname: actor.Hostname,
		Username: actor.Username,
	}
}

// toDomainQuery converts the wire query; unknown values become pass-through filters.
func toDomainQuery(q pb.Query) view.Query {
	sortKey := view.DefaultSort()
	if field, ok := view.ParseSortField(q.Sort.Field); ok {
		sortKey = view.Sort{Field: field, Direction: view.ParseDirection(q.Sort.Direction)}
	}

	device := q.Filters.Device
	if device == "" {
		device = view.DeviceAll
	}

	return view.Query{
		Filters: view.Filters{
			Status:   view.ParseStatusFilter(q.Filters.Status),
			Device:   device,
			Assignee: view.ParseAssigneeFilter(q.Filters.Assignee),
			Urgency:  view.ParseUrgencyFilter(q.Filters.Urgency),
			Severity: view.ParseSeverityFilter(q.Filters.Severity),
		},
		Sort: sortKey,
	}
}

// ToWireQuery converts a view query to its wire form.
func ToWireQuery(q view.Query) pb.Query {
	return pb.Query{
		Filters: pb.Filters{
			Status:   string(q.Filters.Status),
			Device:   q.Filters.Device,
			Assignee: string(q.Filters.Assignee),
			Urgency:  string(q.Filters.Urgency),
			Severity: string(q.Filters.Severity),
		},
		Sort: pb.Sort{
			Field:     string(q.Sort.Field),
			Direction: string(q.Sort.Direction),
		},
	}
}

// toProtoAlarm converts a domain Alarm to its wire form.
func toProtoAlarm(a *domain.Alarm) *pb.Alarm {
	if a == nil {
		return nil
	}

	result := &pb.Alarm{
		ID:          a.ID,
		Device:      a.Device,
		Status:      string(a.Status),
		Description: a.Description,
		Urgent:      a.Urgent,
		TimeElapsed: a.TimeElapsed,
		Severity:    string(a.Severity),
		MutedUntil:  timeOrNil(a.MutedUntil),
		UpdatedAt:   timeOrNil(a.UpdatedAt),
	}

	if a.AssignedTo != nil {
		result.AssignedTo = domain.Name(*a.AssignedTo)
	}

	if a.LastActor != nil {
		result.LastActor = &pb.SystemActor{
			Hostname: a.LastActor.Hostname,
			Username: a.LastActor.Username,
		}
	}

	return result
}

// FromWireAlarm converts a wire alarm back to the domain type.
// Unknown status or severity labels are kept verbatim.
func FromWireAlarm(a *pb.Alarm) *domain.Alarm {
	if a == nil {
		return nil
	}

	result := &domain.Alarm{
		ID:          a.ID,
		Device:      a.Device,
		Status:      domain.Status(a.Status),
		Description: a.Description,
		Urgent:      a.Urgent,
		TimeElapsed: a.TimeElapsed,
		Severity:    domain.Severity(a.Severity),
	}

	if a.AssignedTo != nil {
		result.AssignedTo = domain.Name(*a.AssignedTo)
	}

	if a.MutedUntil != nil {
		result.MutedUntil = *a.MutedUntil
	}

	if a.UpdatedAt != nil {
		result.UpdatedAt = *a.UpdatedAt
	}

	if a.LastActor != nil {
		result.LastActor = &domain.Actor{
			Hostname: a.LastActor.Hostname,
			Username: a.LastActor.Username,
		}
	}

	return result
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
