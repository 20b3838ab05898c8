// Package desk implements the gRPC transport for the alarm desk service.
//
// It adapts domain types to alarmdesk.v1 messages and exposes a server that
// calls into a provided business-service interface.
package desk
