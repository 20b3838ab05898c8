package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/alarm-desk/internal/config"
	"github.com/oshokin/alarm-desk/internal/logger"
	"github.com/oshokin/alarm-desk/internal/service/common"
	pb "github.com/oshokin/alarm-desk/internal/wire/deskv1"
)

// Options configures the connection used by every alarm-desk command.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides server address from config when specified.
	ServerAddress string
	// Output receives the rendered result, stdout when nil.
	Output io.Writer
}

// desk is the part of common.Client the commands use.
type desk interface {
	ListAlarms(ctx context.Context, actor *pb.SystemActor, query pb.Query) (*pb.ListAlarmsResponse, error)
	GetAlarm(ctx context.Context, id string) (*pb.Alarm, error)
	ListDevices(ctx context.Context) ([]string, error)
	ListAssignees(ctx context.Context) ([]*pb.Assignee, error)
	SetAlarmStatus(ctx context.Context, actor *pb.SystemActor, id, status string) (*pb.Alarm, error)
	AssignAlarm(ctx context.Context, actor *pb.SystemActor, id, assignee string) (*pb.Alarm, error)
	MuteAlarm(ctx context.Context, actor *pb.SystemActor, id string, duration time.Duration) (*pb.Alarm, error)
	UnmuteAlarm(ctx context.Context, actor *pb.SystemActor, id string) (*pb.Alarm, error)
}

// Session is a connected operator session.
type Session struct {
	// desk is the remote alarm desk.
	desk desk
	// actor is recorded on every triage action.
	actor *pb.SystemActor
	// out receives rendered output.
	out io.Writer
	// closer releases the connection.
	closer io.Closer
}

// Connect loads settings, detects the operator and dials the desk server.
func Connect(ctx context.Context, opts *Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if err = logger.ApplyLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	// Use server address from options if provided, otherwise use config.
	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	// Identify current user and hostname for audit logging.
	actor, err := common.DetectActor()
	if err != nil {
		return nil, err
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "Connected to alarm desk", "server_address", serverAddress, "actor", actor.Username)

	session := newSession(client, actor, opts.Output)
	session.closer = client

	return session, nil
}

func newSession(d desk, actor *pb.SystemActor, out io.Writer) *Session {
	if out == nil {
		out = os.Stdout
	}

	return &Session{
		desk:  d,
		actor: actor,
		out:   out,
	}
}

// Close releases the connection.
func (s *Session) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}

	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}

	return nil
}

// Run connects, runs fn and closes the session.
func Run(ctx context.Context, opts *Options, fn func(ctx context.Context, s *Session) error) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-desk")

	session, err := Connect(ctx, opts)
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = session.Close()
	}()

	return fn(ctx, session)
}
