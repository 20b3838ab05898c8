package deskv1

import "time"

// SystemActor identifies the operator calling the service.
type SystemActor struct {
	Hostname string `json:"hostname"`
	Username string `json:"username"`
}

// Filters carries the view filter values as strings.
// Empty and unknown values let everything through.
type Filters struct {
	Status   string `json:"status,omitempty"`
	Device   string `json:"device,omitempty"`
	Assignee string `json:"assignee,omitempty"`
	Urgency  string `json:"urgency,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// Sort carries the sort key and direction ("asc" or "desc").
type Sort struct {
	Field     string `json:"field,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// Query is the projection requested by a client.
type Query struct {
	Filters Filters `json:"filters"`
	Sort    Sort    `json:"sort"`
}

// Alarm is the wire form of an alarm record.
type Alarm struct {
	ID          string       `json:"id"`
	Device      string       `json:"device"`
	Status      string       `json:"status"`
	Description string       `json:"description"`
	AssignedTo  *string      `json:"assignedTo"`
	Urgent      bool         `json:"urgent"`
	TimeElapsed string       `json:"timeElapsed"`
	Severity    string       `json:"severity"`
	MutedUntil  *time.Time   `json:"mutedUntil,omitempty"`
	LastActor   *SystemActor `json:"lastActor,omitempty"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}

// Assignee is a roster entry.
type Assignee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Initials string `json:"initials"`
}

// ListAlarmsRequest asks for a projection of the working set.
type ListAlarmsRequest struct {
	RequestingActor *SystemActor `json:"requestingActor,omitempty"`
	Query           Query        `json:"query"`
}

// ListAlarmsResponse is the ordered projection.
type ListAlarmsResponse struct {
	Alarms []*Alarm `json:"alarms"`
	// Total is the size of the working set before filtering.
	Total int `json:"total"`
}

// GetAlarmRequest asks for a single alarm.
type GetAlarmRequest struct {
	ID string `json:"id"`
}

// AlarmResponse carries a single alarm.
type AlarmResponse struct {
	Alarm *Alarm `json:"alarm"`
}

// GetAlarm returns the alarm or nil.
func (r *AlarmResponse) GetAlarm() *Alarm {
	if r == nil {
		return nil
	}

	return r.Alarm
}

// ListDevicesRequest asks for the distinct device labels.
type ListDevicesRequest struct{}

// ListDevicesResponse lists devices in first-seen order.
type ListDevicesResponse struct {
	Devices []string `json:"devices"`
}

// ListAssigneesRequest asks for the assignee roster.
type ListAssigneesRequest struct{}

// ListAssigneesResponse is the assignee roster.
type ListAssigneesResponse struct {
	Assignees []*Assignee `json:"assignees"`
}

// SetAlarmStatusRequest changes the status of an alarm.
type SetAlarmStatusRequest struct {
	Actor  *SystemActor `json:"actor"`
	ID     string       `json:"id"`
	Status string       `json:"status"`
}

// GetActor returns the actor or nil.
func (r *SetAlarmStatusRequest) GetActor() *SystemActor {
	if r == nil {
		return nil
	}

	return r.Actor
}

// AssignAlarmRequest assigns an alarm; an empty Assignee unassigns it.
// Assignee is matched against roster ids first, then names.
type AssignAlarmRequest struct {
	Actor    *SystemActor `json:"actor"`
	ID       string       `json:"id"`
	Assignee string       `json:"assignee"`
}

// GetActor returns the actor or nil.
func (r *AssignAlarmRequest) GetActor() *SystemActor {
	if r == nil {
		return nil
	}

	return r.Actor
}

// MuteAlarmRequest mutes an alarm for DurationSeconds.
type MuteAlarmRequest struct {
	Actor           *SystemActor `json:"actor"`
	ID              string       `json:"id"`
	DurationSeconds int64        `json:"durationSeconds"`
}

// GetActor returns the actor or nil.
func (r *MuteAlarmRequest) GetActor() *SystemActor {
	if r == nil {
		return nil
	}

	return r.Actor
}

// UnmuteAlarmRequest lifts the mute of an alarm.
type UnmuteAlarmRequest struct {
	Actor *SystemActor `json:"actor"`
	ID    string       `json:"id"`
}

// GetActor returns the actor or nil.
func (r *UnmuteAlarmRequest) GetActor() *SystemActor {
	if r == nil {
		return nil
	}

	return r.Actor
}
