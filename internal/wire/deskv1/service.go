package deskv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "alarmdesk.v1.AlarmDeskService"

// Full method names.
const (
	ListAlarmsFullMethodName     = "/" + ServiceName + "/ListAlarms"
	GetAlarmFullMethodName       = "/" + ServiceName + "/GetAlarm"
	ListDevicesFullMethodName    = "/" + ServiceName + "/ListDevices"
	ListAssigneesFullMethodName  = "/" + ServiceName + "/ListAssignees"
	SetAlarmStatusFullMethodName = "/" + ServiceName + "/SetAlarmStatus"
	AssignAlarmFullMethodName    = "/" + ServiceName + "/AssignAlarm"
	MuteAlarmFullMethodName      = "/" + ServiceName + "/MuteAlarm"
	UnmuteAlarmFullMethodName    = "/" + ServiceName + "/UnmuteAlarm"
)

// AlarmDeskServiceServer is the server API of alarmdesk.v1.
type AlarmDeskServiceServer interface {
	ListAlarms(ctx context.Context, req *ListAlarmsRequest) (*ListAlarmsResponse, error)
	GetAlarm(ctx context.Context, req *GetAlarmRequest) (*AlarmResponse, error)
	ListDevices(ctx context.Context, req *ListDevicesRequest) (*ListDevicesResponse, error)
	ListAssignees(ctx context.Context, req *ListAssigneesRequest) (*ListAssigneesResponse, error)
	SetAlarmStatus(ctx context.Context, req *SetAlarmStatusRequest) (*AlarmResponse, error)
	AssignAlarm(ctx context.Context, req *AssignAlarmRequest) (*AlarmResponse, error)
	MuteAlarm(ctx context.Context, req *MuteAlarmRequest) (*AlarmResponse, error)
	UnmuteAlarm(ctx context.Context, req *UnmuteAlarmRequest) (*AlarmResponse, error)
}

// UnimplementedAlarmDeskServiceServer answers every method with codes.Unimplemented.
// Embed it to stay forward compatible when methods are added.
type UnimplementedAlarmDeskServiceServer struct{}

func (UnimplementedAlarmDeskServiceServer) ListAlarms(context.Context, *ListAlarmsRequest) (*ListAlarmsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAlarms not implemented")
}

func (UnimplementedAlarmDeskServiceServer) GetAlarm(context.Context, *GetAlarmRequest) (*AlarmResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAlarm not implemented")
}

func (UnimplementedAlarmDeskServiceServer) ListDevices(context.Context, *ListDevicesRequest) (*ListDevicesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListDevices not implemented")
}

func (UnimplementedAlarmDeskServiceServer) ListAssignees(
	context.Context,
	*ListAssigneesRequest,
) (*ListAssigneesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAssignees not implemented")
}

func (UnimplementedAlarmDeskServiceServer) SetAlarmStatus(context.Context, *SetAlarmStatusRequest) (*AlarmResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetAlarmStatus not implemented")
}

func (UnimplementedAlarmDeskServiceServer) AssignAlarm(context.Context, *AssignAlarmRequest) (*AlarmResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AssignAlarm not implemented")
}

func (UnimplementedAlarmDeskServiceServer) MuteAlarm(context.Context, *MuteAlarmRequest) (*AlarmResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MuteAlarm not implemented")
}

func (UnimplementedAlarmDeskServiceServer) UnmuteAlarm(context.Context, *UnmuteAlarmRequest) (*AlarmResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UnmuteAlarm not implemented")
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(srv AlarmDeskServiceServer, ctx context.Context, req *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		if interceptor == nil {
			return call(srv.(AlarmDeskServiceServer), ctx, in) //nolint:forcetypeassert // Guaranteed by RegisterAlarmDeskServiceServer.
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		handler := func(ctx context.Context, req any) (any, error) {
			//nolint:forcetypeassert // The request was decoded above with the same type.
			return call(srv.(AlarmDeskServiceServer), ctx, req.(*Req))
		}

		return interceptor(ctx, in, info, handler)
	}
}

// AlarmDeskServiceDesc describes alarmdesk.v1.AlarmDeskService for grpc.Server.
//
//nolint:gochecknoglobals // Service descriptors are package-level by convention.
var AlarmDeskServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AlarmDeskServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListAlarms",
			Handler:    unaryHandler(ListAlarmsFullMethodName, AlarmDeskServiceServer.ListAlarms),
		},
		{
			MethodName: "GetAlarm",
			Handler:    unaryHandler(GetAlarmFullMethodName, AlarmDeskServiceServer.GetAlarm),
		},
		{
			MethodName: "ListDevices",
			Handler:    unaryHandler(ListDevicesFullMethodName, AlarmDeskServiceServer.ListDevices),
		},
		{
			MethodName: "ListAssignees",
			Handler:    unaryHandler(ListAssigneesFullMethodName, AlarmDeskServiceServer.ListAssignees),
		},
		{
			MethodName: "SetAlarmStatus",
			Handler:    unaryHandler(SetAlarmStatusFullMethodName, AlarmDeskServiceServer.SetAlarmStatus),
		},
		{
			MethodName: "AssignAlarm",
			Handler:    unaryHandler(AssignAlarmFullMethodName, AlarmDeskServiceServer.AssignAlarm),
		},
		{
			MethodName: "MuteAlarm",
			Handler:    unaryHandler(MuteAlarmFullMethodName, AlarmDeskServiceServer.MuteAlarm),
		},
		{
			MethodName: "UnmuteAlarm",
			Handler:    unaryHandler(UnmuteAlarmFullMethodName, AlarmDeskServiceServer.UnmuteAlarm),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "alarmdesk/v1/alarm_desk.json",
}

// RegisterAlarmDeskServiceServer registers the implementation on a gRPC server.
func RegisterAlarmDeskServiceServer(s grpc.ServiceRegistrar, srv AlarmDeskServiceServer) {
	s.RegisterService(&AlarmDeskServiceDesc, srv)
}

// AlarmDeskServiceClient is the client API of alarmdesk.v1.
type AlarmDeskServiceClient interface {
	ListAlarms(ctx context.Context, in *ListAlarmsRequest, opts ...grpc.CallOption) (*ListAlarmsResponse, error)
	GetAlarm(ctx context.Context, in *GetAlarmRequest, opts ...grpc.CallOption) (*AlarmResponse, error)
	ListDevices(ctx context.Context, in *ListDevicesRequest, opts ...grpc.CallOption) (*ListDevicesResponse, error)
	ListAssignees(ctx context.Context, in *ListAssigneesRequest, opts ...grpc.CallOption) (*ListAssigneesResponse, error)
	SetAlarmStatus(ctx context.Context, in *SetAlarmStatusRequest, opts ...grpc.CallOption) (*AlarmResponse, error)
	AssignAlarm(ctx context.Context, in *AssignAlarmRequest, opts ...grpc.CallOption) (*AlarmResponse, error)
	MuteAlarm(ctx context.Context, in *MuteAlarmRequest, opts ...grpc.CallOption) (*AlarmResponse, error)
	UnmuteAlarm(ctx context.Context, in *UnmuteAlarmRequest, opts ...grpc.CallOption) (*AlarmResponse, error)
}

type alarmDeskServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAlarmDeskServiceClient returns a client stub using the JSON codec on every call.
//
//nolint:ireturn // Mirrors generated gRPC client constructors.
func NewAlarmDeskServiceClient(cc grpc.ClientConnInterface) AlarmDeskServiceClient {
	return &alarmDeskServiceClient{cc: cc}
}

// invoke performs a unary call forcing the JSON content subtype.
func invoke[Resp any](
	ctx context.Context,
	cc grpc.ClientConnInterface,
	method string,
	in any,
	opts []grpc.CallOption,
) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)

	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *alarmDeskServiceClient) ListAlarms(
	ctx context.Context,
	in *ListAlarmsRequest,
	opts ...grpc.CallOption,
) (*ListAlarmsResponse, error) {
	return invoke[ListAlarmsResponse](ctx, c.cc, ListAlarmsFullMethodName, in, opts)
}

func (c *alarmDeskServiceClient) GetAlarm(
	ctx context.Context,
	in *GetAlarmRequest,
	opts ...grpc.CallOption,
) (*AlarmResponse, error) {
	return invoke[AlarmResponse](ctx, c.cc, GetAlarmFullMethodName, in, opts)
}

func (c *alarmDeskServiceClient) ListDevices(
	ctx context.Context,
	in *ListDevicesRequest,
	opts ...grpc.CallOption,
) (*ListDevicesResponse, error) {
	return invoke[ListDevicesResponse](ctx, c.cc, ListDevicesFullMethodName, in, opts)
}

func (c *alarmDeskServiceClient) ListAssignees(
	ctx context.Context,
	in *ListAssigneesRequest,
	opts ...grpc.CallOption,
) (*ListAssigneesResponse, error) {
	return invoke[ListAssigneesResponse](ctx, c.cc, ListAssigneesFullMethodName, in, opts)
}

func (c *alarmDeskServiceClient) SetAlarmStatus(
	ctx context.Context,
	in *SetAlarmStatusRequest,
	opts ...grpc.CallOption,
) (*AlarmResponse, error) {
	return invoke[AlarmResponse](ctx, c.cc, SetAlarmStatusFullMethodName, in, opts)
}

func (c *alarmDeskServiceClient) AssignAlarm(
	ctx context.Context,
	in *AssignAlarmRequest,
	opts ...grpc.CallOption,
) (*AlarmResponse, error) {
	return invoke[AlarmResponse](ctx, c.cc, AssignAlarmFullMethodName, in, opts)
}

func (c *alarmDeskServiceClient) MuteAlarm(
	ctx context.Context,
	in *MuteAlarmRequest,
	opts ...grpc.CallOption,
) (*AlarmResponse, error) {
	return invoke[AlarmResponse](ctx, c.cc, MuteAlarmFullMethodName, in, opts)
}

func (c *alarmDeskServiceClient) UnmuteAlarm(
	ctx context.Context,
	in *UnmuteAlarmRequest,
	opts ...grpc.CallOption,
) (*AlarmResponse, error) {
	return invoke[AlarmResponse](ctx, c.cc, UnmuteAlarmFullMethodName, in, opts)
}
