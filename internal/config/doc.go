// Package config defines the settings shared by the alarm-desk binaries and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the server gRPC address, storage paths, the optional
// metrics listener and the assignee roster.
package config
