package model

// Status is the position of a task in its lifecycle. It only ever advances,
// one step at a time.
type Status int

const (
	StatusNotStarted Status = 0
	StatusInProgress Status = 1
	StatusDone       Status = 2
)

// Valid reports whether s is one of the three defined statuses.
func (s Status) Valid() bool {
	return s >= StatusNotStarted && s <= StatusDone
}

// Next returns the status that directly follows s. ok is false when s is
// terminal (Done) or not a defined status.
func (s Status) Next() (next Status, ok bool) {
	if s == StatusNotStarted || s == StatusInProgress {
		return s + 1, true
	}
	return s, false
}

// Label returns the human-readable name for s.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "not started"
	case StatusInProgress:
		return "in progress"
	case StatusDone:
		return "done"
	}
	return "unknown"
}

// Task is a unit of work assigned to a user.
type Task struct {
	// Code is the unique positive integer identifying this task.
	Code int `json:"code" db:"code"`

	// Name is the human-readable summary of the task.
	Name string `json:"name" db:"name"`

	// Status is the task's lifecycle position.
	Status Status `json:"status" db:"status"`

	// AssigneeCode is the code of the responsible user as persisted.
	AssigneeCode int `json:"assignee_code" db:"rep_user_code"`

	// Assignee is the user record AssigneeCode resolves to. It is nil when
	// the persisted code references no existing user; reads materialize
	// the sentinel instead of failing.
	Assignee *User `json:"assignee,omitempty" db:"-"`
}
