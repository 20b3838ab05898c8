package desk

import (
	"context"
	"errors"
	"math"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/oshokin/alarm-desk/internal/domain/alarm"
	"github.com/oshokin/alarm-desk/internal/domain/view"
	"github.com/oshokin/alarm-desk/internal/logger"
	pb "github.com/oshokin/alarm-desk/internal/wire/deskv1"
)

// maxMuteSeconds is the longest mute that fits in a time.Duration.
const maxMuteSeconds = math.MaxInt64 / int64(time.Second)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	ListAlarms(ctx context.Context, query view.Query) ([]*domain.Alarm, int)
	GetAlarm(ctx context.Context, id string) (*domain.Alarm, error)
	Devices(ctx context.Context) []string
	Assignees(ctx context.Context) []domain.Assignee
	SetStatus(ctx context.Context, actor *domain.Actor, id string, status domain.Status) (*domain.Alarm, error)
	Assign(ctx context.Context, actor *domain.Actor, id, assignee string) (*domain.Alarm, error)
	Mute(ctx context.Context, actor *domain.Actor, id string, d time.Duration) (*domain.Alarm, error)
	Unmute(ctx context.Context, actor *domain.Actor, id string) (*domain.Alarm, error)
}

// Server implements the AlarmDeskService gRPC API.
type Server struct {
	pb.UnimplementedAlarmDeskServiceServer

	// service provides the business logic for alarm operations.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// ListAlarms returns the filtered and sorted alarms.
func (s *Server) ListAlarms(ctx context.Context, req *pb.ListAlarmsRequest) (*pb.ListAlarmsResponse, error) {
	if req == nil {
		req = new(pb.ListAlarmsRequest)
	}

	query := toDomainQuery(req.Query)

	logger.DebugKV(ctx, "List alarms requested",
		"actor", toDomainActor(req.RequestingActor).String(),
		"filters", query.Filters,
		"sort", query.Sort,
	)

	alarms, total := s.service.ListAlarms(ctx, query)

	response := &pb.ListAlarmsResponse{
		Alarms: make([]*pb.Alarm, 0, len(alarms)),
		Total:  total,
	}

	for _, a := range alarms {
		response.Alarms = append(response.Alarms, toProtoAlarm(a))
	}

	return response, nil
}

// GetAlarm returns a single alarm.
func (s *Server) GetAlarm(ctx context.Context, req *pb.GetAlarmRequest) (*pb.AlarmResponse, error) {
	if req == nil || req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "alarm id is required")
	}

	a, err := s.service.GetAlarm(ctx, req.ID)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &pb.AlarmResponse{Alarm: toProtoAlarm(a)}, nil
}

// ListDevices returns the distinct device labels.
func (s *Server) ListDevices(ctx context.Context, _ *pb.ListDevicesRequest) (*pb.ListDevicesResponse, error) {
	return &pb.ListDevicesResponse{Devices: s.service.Devices(ctx)}, nil
}

// ListAssignees returns the assignee roster.
func (s *Server) ListAssignees(ctx context.Context, _ *pb.ListAssigneesRequest) (*pb.ListAssigneesResponse, error) {
	roster := s.service.Assignees(ctx)

	response := &pb.ListAssigneesResponse{
		Assignees: make([]*pb.Assignee, 0, len(roster)),
	}

	for _, a := range roster {
		response.Assignees = append(response.Assignees, &pb.Assignee{
			ID:       a.ID,
			Name:     a.Name,
			Email:    a.Email,
			Initials: a.Initials,
		})
	}

	return response, nil
}

// SetAlarmStatus changes the status of an alarm.
func (s *Server) SetAlarmStatus(ctx context.Context, req *pb.SetAlarmStatusRequest) (*pb.AlarmResponse, error) {
	if err := validateTarget(req.GetActor(), req != nil && req.ID != ""); err != nil {
		return nil, err
	}

	newStatus, ok := domain.ParseStatus(req.Status)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown status %q", req.Status)
	}

	a, err := s.service.SetStatus(ctx, toDomainActor(req.Actor), req.ID, newStatus)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &pb.AlarmResponse{Alarm: toProtoAlarm(a)}, nil
}

// AssignAlarm assigns or unassigns an alarm.
func (s *Server) AssignAlarm(ctx context.Context, req *pb.AssignAlarmRequest) (*pb.AlarmResponse, error) {
	if err := validateTarget(req.GetActor(), req != nil && req.ID != ""); err != nil {
		return nil, err
	}

	a, err := s.service.Assign(ctx, toDomainActor(req.Actor), req.ID, req.Assignee)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &pb.AlarmResponse{Alarm: toProtoAlarm(a)}, nil
}

// MuteAlarm mutes an alarm for the requested duration.
func (s *Server) MuteAlarm(ctx context.Context, req *pb.MuteAlarmRequest) (*pb.AlarmResponse, error) {
	if err := validateTarget(req.GetActor(), req != nil && req.ID != ""); err != nil {
		return nil, err
	}

	if req.DurationSeconds <= 0 || req.DurationSeconds > maxMuteSeconds {
		return nil, status.Errorf(codes.InvalidArgument, "mute duration must be 1..%d seconds", maxMuteSeconds)
	}

	duration := time.Duration(req.DurationSeconds) * time.Second

	a, err := s.service.Mute(ctx, toDomainActor(req.Actor), req.ID, duration)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &pb.AlarmResponse{Alarm: toProtoAlarm(a)}, nil
}

// UnmuteAlarm lifts the mute of an alarm.
func (s *Server) UnmuteAlarm(ctx context.Context, req *pb.UnmuteAlarmRequest) (*pb.AlarmResponse, error) {
	if err := validateTarget(req.GetActor(), req != nil && req.ID != ""); err != nil {
		return nil, err
	}

	a, err := s.service.Unmute(ctx, toDomainActor(req.Actor), req.ID)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &pb.AlarmResponse{Alarm: toProtoAlarm(a)}, nil
}

// validateTarget checks the fields every triage request needs.
func validateTarget(actor *pb.SystemActor, hasID bool) error {
	if actor == nil {
		return status.Error(codes.InvalidArgument, "actor is required")
	}

	if !hasID {
		return status.Error(codes.InvalidArgument, "alarm id is required")
	}

	return nil
}

// toStatusError maps domain errors to gRPC status codes.
func toStatusError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrMuted):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrUseMute),
		errors.Is(err, domain.ErrUnknownStatus),
		errors.Is(err, domain.ErrUnknownAssignee),
		errors.Is(err, domain.ErrInvalidMuteDuration),
		errors.Is(err, domain.ErrActorRequired):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "unable to persist alarms")
	}
}
