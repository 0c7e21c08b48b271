package model

import "time"

// DateLayout is the textual form of LogEntry.ChangeDate in the log file.
const DateLayout = "2006-01-02"

// LogEntry is an append-only audit record of a task status change. One entry
// is written for every task creation (status 0) and every status change.
// Entries are never mutated; they are only appended, or bulk-deleted when
// the owning task is deleted.
type LogEntry struct {
	// TaskCode references the task the change applied to. It is not a live
	// foreign key: entries may outlive their task until explicitly purged.
	TaskCode int `json:"task_code" db:"task_code"`

	// ChangeUserCode is the code of the user who performed the change.
	ChangeUserCode int `json:"change_user_code" db:"change_user_code"`

	// Status is the status the task transitioned to.
	Status Status `json:"status" db:"status"`

	// ChangeDate is the calendar date the change occurred.
	ChangeDate time.Time `json:"change_date" db:"change_date"`
}
