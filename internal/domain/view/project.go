package view

import (
	"slices"

	"github.com/oshokin/alarm-desk/internal/domain/alarm"
)

// Query is the input of the projector: which alarms to keep and how to order them.
type Query struct {
	Filters Filters `json:"filters"`
	Sort    Sort    `json:"sort"`
}

// Project returns the alarms passing every filter, ordered by the sort key.
// The input slice is never reordered; the result shares the alarm pointers.
// Equal keys keep their input order.
func Project(alarms []*alarm.Alarm, q Query) []*alarm.Alarm {
	result := make([]*alarm.Alarm, 0, len(alarms))

	for _, a := range alarms {
		if a != nil && q.Filters.Match(a) {
			result = append(result, a)
		}
	}

	slices.SortStableFunc(result, q.Sort.compare)

	return result
}

// Devices returns the distinct device labels in first-seen order.
func Devices(alarms []*alarm.Alarm) []string {
	seen := make(map[string]struct{}, len(alarms))
	devices := make([]string, 0, len(alarms))

	for _, a := range alarms {
		if a == nil {
			continue
		}

		if _, ok := seen[a.Device]; ok {
			continue
		}

		seen[a.Device] = struct{}{}
		devices = append(devices, a.Device)
	}

	return devices
}
