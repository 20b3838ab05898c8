// Package common holds helpers shared by the alarm desk commands.
//
// It wraps the desk gRPC client with per-call timeouts and detects the
// operator (hostname and username) recorded on every triage action.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
