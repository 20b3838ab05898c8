// Package alarm contains core domain types for alarm triage.
//
// It defines Alarm (a device-originated event awaiting an operator), its
// Status and Severity enumerations, the Actor who changed it and the Assignee
// roster entry, with Clone helpers to avoid leaking internal references.
package alarm
