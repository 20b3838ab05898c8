//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/oshokin/alarm-desk/internal/config"
	pb "github.com/oshokin/alarm-desk/internal/wire/deskv1"
)

// Client wraps the desk gRPC client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the desk server.
	conn *grpc.ClientConn
	// api is the desk service client interface.
	api pb.AlarmDeskServiceClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errActorRequired is returned when an actor is not provided but is required for the operation.
	errActorRequired = errors.New("actor must be provided")
	// errEmptyResponse is returned when the server answers without an alarm.
	errEmptyResponse = errors.New("server returned no alarm")
)

// Dial establishes a gRPC connection to the desk server.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy until native TLS is added.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial alarm desk: %w", err)
	}

	client := NewClient(pb.NewAlarmDeskServiceClient(conn), opts...)
	client.conn = conn

	return client, nil
}

// NewClient wraps an existing service client, e.g. one bound to an in-process connection.
func NewClient(api pb.AlarmDeskServiceClient, opts ...Option) *Client {
	client := &Client{
		api:         api,
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// ListAlarms returns the projection for the query and the working set size.
func (c *Client) ListAlarms(
	ctx context.Context,
	actor *pb.SystemActor,
	query pb.Query,
) (*pb.ListAlarmsResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.ListAlarms(callCtx, &pb.ListAlarmsRequest{RequestingActor: actor, Query: query})
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}

	return resp, nil
}

// GetAlarm returns a single alarm.
func (c *Client) GetAlarm(ctx context.Context, id string) (*pb.Alarm, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetAlarm(callCtx, &pb.GetAlarmRequest{ID: id})
	if err != nil {
		return nil, fmt.Errorf("get alarm %s: %w", id, err)
	}

	return alarmOf(resp)
}

// ListDevices returns the distinct device labels.
func (c *Client) ListDevices(ctx context.Context) ([]string, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.ListDevices(callCtx, &pb.ListDevicesRequest{})
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	return resp.Devices, nil
}

// ListAssignees returns the assignee roster.
func (c *Client) ListAssignees(ctx context.Context) ([]*pb.Assignee, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.ListAssignees(callCtx, &pb.ListAssigneesRequest{})
	if err != nil {
		return nil, fmt.Errorf("list assignees: %w", err)
	}

	return resp.Assignees, nil
}

// SetAlarmStatus changes the status of an alarm.
func (c *Client) SetAlarmStatus(
	ctx context.Context,
	actor *pb.SystemActor,
	id, status string,
) (*pb.Alarm, error) {
	if actor == nil {
		return nil, errActorRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.SetAlarmStatus(callCtx, &pb.SetAlarmStatusRequest{Actor: actor, ID: id, Status: status})
	if err != nil {
		return nil, fmt.Errorf("set alarm status: %w", err)
	}

	return alarmOf(resp)
}

// AssignAlarm assigns an alarm. An empty assignee unassigns it.
func (c *Client) AssignAlarm(
	ctx context.Context,
	actor *pb.SystemActor,
	id, assignee string,
) (*pb.Alarm, error) {
	if actor == nil {
		return nil, errActorRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.AssignAlarm(callCtx, &pb.AssignAlarmRequest{Actor: actor, ID: id, Assignee: assignee})
	if err != nil {
		return nil, fmt.Errorf("assign alarm: %w", err)
	}

	return alarmOf(resp)
}

// MuteAlarm mutes an alarm for the duration, rounded down to whole seconds.
func (c *Client) MuteAlarm(
	ctx context.Context,
	actor *pb.SystemActor,
	id string,
	duration time.Duration,
) (*pb.Alarm, error) {
	if actor == nil {
		return nil, errActorRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	request := &pb.MuteAlarmRequest{
		Actor:           actor,
		ID:              id,
		DurationSeconds: int64(duration / time.Second),
	}

	resp, err := c.api.MuteAlarm(callCtx, request)
	if err != nil {
		return nil, fmt.Errorf("mute alarm: %w", err)
	}

	return alarmOf(resp)
}

// UnmuteAlarm lifts the mute of an alarm.
func (c *Client) UnmuteAlarm(ctx context.Context, actor *pb.SystemActor, id string) (*pb.Alarm, error) {
	if actor == nil {
		return nil, errActorRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.UnmuteAlarm(callCtx, &pb.UnmuteAlarmRequest{Actor: actor, ID: id})
	if err != nil {
		return nil, fmt.Errorf("unmute alarm: %w", err)
	}

	return alarmOf(resp)
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}

func alarmOf(resp *pb.AlarmResponse) (*pb.Alarm, error) {
	alarm := resp.GetAlarm()
	if alarm == nil {
		return nil, errEmptyResponse
	}

	return alarm, nil
}
