// Package deskv1 defines the alarmdesk.v1 gRPC contract: request and response
// messages, the service descriptor, the server registration helper and the
// client stub.
//
// Messages are plain Go structs carried by the "json" codec registered in
// this package, so both sides must import it.
package deskv1
