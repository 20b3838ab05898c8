// Package client implements the alarm-desk operator commands.
//
// Each command connects to the desk server, builds the view state from the
// command line the same way an interactive session would, and renders the
// result as plain text tables.
package client
