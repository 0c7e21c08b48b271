package store

import (
	"fmt"
	"os"

	"github.com/nhle/tasktrack/internal/model"
)

// UserStore is a read-only lookup over the user seed data. Absence is
// signalled with a nil user and a nil error, never with an error value.
type UserStore interface {
	FindByCode(code int) (*model.User, error)
	FindByCredentials(email, password string) (*model.User, error)
}

// TaskStore persists task records. Save appends without any uniqueness
// check; Update and Delete rewrite the whole record set. FindByCode returns
// (nil, nil) when no record matches.
type TaskStore interface {
	FindAll() ([]model.Task, error)
	FindByCode(code int) (*model.Task, error)
	Save(task model.Task) error
	Update(task model.Task) error
	Delete(code int) error
}

// LogStore persists the append-only status-change history.
type LogStore interface {
	FindAll() ([]model.LogEntry, error)
	Save(entry model.LogEntry) error
	DeleteByTaskCode(code int) error
}

// Stores bundles the three record stores backed by one engine.
type Stores struct {
	Users UserStore
	Tasks TaskStore
	Logs  LogStore

	closer func() error
}

// Close releases any resources held by the backing engine.
func (s *Stores) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// Open wires up the store set selected by cfg.Storage.Engine, creating the
// data directory and any missing backing files.
func Open(cfg *model.AppConfig) (*Stores, error) {
	if err := os.MkdirAll(cfg.Storage.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", cfg.Storage.Dir, err)
	}

	switch cfg.Storage.Engine {
	case model.EngineCSV:
		if err := ensureFile(cfg.TasksPath(), taskHeader); err != nil {
			return nil, err
		}
		if err := ensureFile(cfg.LogsPath(), logHeader); err != nil {
			return nil, err
		}
		users := NewCSVUserStore(cfg.UsersPath())
		return &Stores{
			Users: users,
			Tasks: NewCSVTaskStore(cfg.TasksPath(), users),
			Logs:  NewCSVLogStore(cfg.LogsPath()),
		}, nil

	case model.EngineSQLite:
		db, err := NewSQLiteStore(cfg.SQLiteDBPath())
		if err != nil {
			return nil, err
		}
		if err := seedSQLiteUsers(db, cfg.UsersPath()); err != nil {
			db.Close()
			return nil, err
		}
		return &Stores{
			Users:  db.Users(),
			Tasks:  db.Tasks(),
			Logs:   db.Logs(),
			closer: db.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown storage engine %q", cfg.Storage.Engine)
}

// seedSQLiteUsers imports the user seed file into an empty sqlite database.
// Users remain authored as flat-file seed data regardless of engine.
func seedSQLiteUsers(db *SQLiteStore, usersPath string) error {
	n, err := db.UserCount()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	seed := NewCSVUserStore(usersPath)
	users, err := seed.findAll()
	if err != nil {
		return err
	}
	return db.ImportUsers(users)
}
