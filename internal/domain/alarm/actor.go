package alarm

import "fmt"

// Actor identifies who performed an action in the system.
type Actor struct {
	// Hostname is the machine name where the action was performed.
	Hostname string `json:"hostname" yaml:"hostname"`
	// Username is the system user who triggered the action.
	Username string `json:"username" yaml:"username"`
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// String renders the actor as username@hostname.
func (a *Actor) String() string {
	if a == nil {
		return "<unknown>"
	}

	return fmt.Sprintf("%s@%s", a.Username, a.Hostname)
}

// Assignee is an operator alarms can be assigned to.
type Assignee struct {
	ID       string `json:"id"       yaml:"id"`
	Name     string `json:"name"     yaml:"name"`
	Email    string `json:"email"    yaml:"email"`
	Initials string `json:"initials" yaml:"initials"`
}

// DefaultAssignees returns the roster used when the configuration has none.
func DefaultAssignees() []Assignee {
	return []Assignee{
		{ID: "1", Name: "John Doe", Email: "john.doe@example.com", Initials: "JD"},
		{ID: "2", Name: "Jane Smith", Email: "jane.smith@example.com", Initials: "JS"},
		{ID: "3", Name: "Bob Wilson", Email: "bob.wilson@example.com", Initials: "BW"},
	}
}
