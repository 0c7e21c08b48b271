package store

import (
	"fmt"

	"github.com/nhle/tasktrack/internal/model"
)

const taskHeader = "Code,Name,Status,Rep_User_Code"

const taskFieldCount = 4

// CSVTaskStore persists task records in a header-first delimited file. Every
// read materializes each row's assignee through the user store; rows whose
// assignee code references no existing user get a nil Assignee instead of
// failing the read.
type CSVTaskStore struct {
	path  string
	users UserStore
}

// NewCSVTaskStore returns a task store backed by the file at path, resolving
// assignees through users.
func NewCSVTaskStore(path string, users UserStore) *CSVTaskStore {
	return &CSVTaskStore{path: path, users: users}
}

// FindAll reads every well-formed task row in file order.
func (s *CSVTaskStore) FindAll() ([]model.Task, error) {
	var tasks []model.Task
	for _, row := range readRows(s.path, taskFieldCount) {
		task, ok := s.parseRow(row)
		if !ok {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// FindByCode scans for the task with the given code. When the file holds
// duplicate rows for one code, the last row in scan order wins; absence is
// (nil, nil).
func (s *CSVTaskStore) FindByCode(code int) (*model.Task, error) {
	var found *model.Task
	for _, row := range readRows(s.path, taskFieldCount) {
		task, ok := s.parseRow(row)
		if !ok || task.Code != code {
			continue
		}
		found = &task
	}
	return found, nil
}

// Save appends one task row. It performs no duplicate-code check; the
// service layer owns uniqueness decisions.
func (s *CSVTaskStore) Save(task model.Task) error {
	return swallow("task save", appendRow(s.path, taskHeader, taskLine(task)))
}

// Update rewrites the entire file, replacing the row whose code matches
// task.Code. This is a full rewrite under a single-writer assumption, not an
// in-place patch.
func (s *CSVTaskStore) Update(task model.Task) error {
	tasks, _ := s.FindAll()

	rows := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t.Code == task.Code {
			t = task
		}
		rows = append(rows, taskLine(t))
	}
	return swallow("task update", rewriteAll(s.path, taskHeader, rows))
}

// Delete rewrites the entire file, omitting every row whose code matches.
func (s *CSVTaskStore) Delete(code int) error {
	tasks, _ := s.FindAll()

	rows := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t.Code == code {
			continue
		}
		rows = append(rows, taskLine(t))
	}
	return swallow("task delete", rewriteAll(s.path, taskHeader, rows))
}

// parseRow builds a Task from a well-formed row, resolving the assignee.
func (s *CSVTaskStore) parseRow(row []string) (model.Task, bool) {
	code, ok := atoi(row[0])
	if !ok {
		return model.Task{}, false
	}
	status, ok := atoi(row[2])
	if !ok {
		return model.Task{}, false
	}
	repCode, ok := atoi(row[3])
	if !ok {
		return model.Task{}, false
	}

	assignee, _ := s.users.FindByCode(repCode)
	return model.Task{
		Code:         code,
		Name:         row[1],
		Status:       model.Status(status),
		AssigneeCode: repCode,
		Assignee:     assignee,
	}, true
}

func taskLine(t model.Task) string {
	return fmt.Sprintf("%d,%s,%d,%d", t.Code, t.Name, t.Status, t.AssigneeCode)
}
