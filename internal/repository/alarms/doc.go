// Package alarms implements persistence for the alarm working set.
//
// The FileRepository stores and loads the whole set as a JSON snapshot on disk
// and exposes the Repository interface the server service depends on. Seed
// files describe the initial alarms in YAML.
package alarms
