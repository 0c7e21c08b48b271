package store

import (
	"fmt"
	"time"

	"github.com/nhle/tasktrack/internal/model"
)

const logHeader = "Task_Code,Change_User_Code,Status,Change_Date"

const logFieldCount = 4

// CSVLogStore persists the status-change history in a header-first delimited
// file. Entries are appended one at a time and only ever removed in bulk by
// task code.
type CSVLogStore struct {
	path string
}

// NewCSVLogStore returns a log store backed by the file at path.
func NewCSVLogStore(path string) *CSVLogStore {
	return &CSVLogStore{path: path}
}

// FindAll reads every well-formed log row in file order.
func (s *CSVLogStore) FindAll() ([]model.LogEntry, error) {
	var entries []model.LogEntry
	for _, row := range readRows(s.path, logFieldCount) {
		entry, ok := parseLogRow(row)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Save appends one log entry.
func (s *CSVLogStore) Save(entry model.LogEntry) error {
	return swallow("log save", appendRow(s.path, logHeader, logLine(entry)))
}

// DeleteByTaskCode rewrites the entire file, omitting every entry whose task
// code matches and preserving all other entries in their original order.
func (s *CSVLogStore) DeleteByTaskCode(code int) error {
	entries, _ := s.FindAll()

	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.TaskCode == code {
			continue
		}
		rows = append(rows, logLine(e))
	}
	return swallow("log delete", rewriteAll(s.path, logHeader, rows))
}

func parseLogRow(row []string) (model.LogEntry, bool) {
	taskCode, ok := atoi(row[0])
	if !ok {
		return model.LogEntry{}, false
	}
	userCode, ok := atoi(row[1])
	if !ok {
		return model.LogEntry{}, false
	}
	status, ok := atoi(row[2])
	if !ok {
		return model.LogEntry{}, false
	}
	date, err := time.Parse(model.DateLayout, row[3])
	if err != nil {
		return model.LogEntry{}, false
	}

	return model.LogEntry{
		TaskCode:       taskCode,
		ChangeUserCode: userCode,
		Status:         model.Status(status),
		ChangeDate:     date,
	}, true
}

func logLine(e model.LogEntry) string {
	return fmt.Sprintf("%d,%d,%d,%s", e.TaskCode, e.ChangeUserCode, e.Status, e.ChangeDate.Format(model.DateLayout))
}
