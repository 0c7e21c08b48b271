package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/tasktrack/internal/model"
)

// SQLiteStore is the indexed alternative to the flat-file engine. It keeps
// the same store contracts, including (nil, nil) for absent records and
// last-write-wins on duplicate task codes, so TaskService cannot tell the
// engines apart.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Users returns the user-record view of the store.
func (s *SQLiteStore) Users() *SQLiteUserStore {
	return &SQLiteUserStore{db: s.db}
}

// Tasks returns the task-record view of the store.
func (s *SQLiteStore) Tasks() *SQLiteTaskStore {
	return &SQLiteTaskStore{db: s.db}
}

// Logs returns the log-record view of the store.
func (s *SQLiteStore) Logs() *SQLiteLogStore {
	return &SQLiteLogStore{db: s.db}
}

// UserCount reports how many user records the database holds.
func (s *SQLiteStore) UserCount() (int, error) {
	var n int
	if err := s.db.Get(&n, "SELECT COUNT(*) FROM users"); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

// ImportUsers loads seed users into the database, replacing any existing
// record with the same code.
func (s *SQLiteStore) ImportUsers(users []model.User) error {
	if len(users) == 0 {
		return nil
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO users (code, name, email, password)
		VALUES (?, ?, ?, ?)`
	for _, u := range users {
		if _, err := tx.Exec(query, u.Code, u.Name, u.Email, u.Password); err != nil {
			return fmt.Errorf("importing user %d: %w", u.Code, err)
		}
	}

	return tx.Commit()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SQLiteUserStore implements UserStore over the shared connection.
type SQLiteUserStore struct {
	db *sqlx.DB
}

// FindByCode retrieves the user with the given code, or (nil, nil).
func (s *SQLiteUserStore) FindByCode(code int) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, "SELECT code, name, email, password FROM users WHERE code = ?", code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", code, err)
	}
	return &u, nil
}

// FindByCredentials retrieves the user whose email and password both match
// exactly, or (nil, nil).
func (s *SQLiteUserStore) FindByCredentials(email, password string) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u,
		"SELECT code, name, email, password FROM users WHERE email = ? AND password = ?",
		email, password,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by credentials: %w", err)
	}
	return &u, nil
}

// SQLiteTaskStore implements TaskStore over the shared connection.
type SQLiteTaskStore struct {
	db *sqlx.DB
}

const taskSelect = `
	SELECT t.code, t.name, t.status, t.rep_user_code,
	       u.code AS user_code, u.name AS user_name, u.email, u.password
	FROM tasks t
	LEFT JOIN users u ON u.code = t.rep_user_code`

// FindAll retrieves every task in insertion order, with assignees resolved.
// A task whose rep_user_code references no user keeps a nil Assignee.
func (s *SQLiteTaskStore) FindAll() ([]model.Task, error) {
	rows, err := s.db.Queryx(taskSelect + " ORDER BY t.rowid")
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// FindByCode retrieves the task with the given code, or (nil, nil).
func (s *SQLiteTaskStore) FindByCode(code int) (*model.Task, error) {
	rows, err := s.db.Queryx(taskSelect+" WHERE t.code = ?", code)
	if err != nil {
		return nil, fmt.Errorf("querying task %d: %w", code, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	task, err := scanTask(rows)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Save inserts a task, replacing any existing row with the same code. The
// flat-file engine resolves duplicate codes with last-row-wins scans; the
// upsert preserves that outcome.
func (s *SQLiteTaskStore) Save(task model.Task) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO tasks (code, name, status, rep_user_code)
		VALUES (?, ?, ?, ?)`,
		task.Code, task.Name, int(task.Status), task.AssigneeCode,
	)
	if err != nil {
		return fmt.Errorf("saving task %d: %w", task.Code, err)
	}
	return nil
}

// Update rewrites the stored values of the task with the matching code.
func (s *SQLiteTaskStore) Update(task model.Task) error {
	_, err := s.db.Exec(
		"UPDATE tasks SET name = ?, status = ?, rep_user_code = ? WHERE code = ?",
		task.Name, int(task.Status), task.AssigneeCode, task.Code,
	)
	if err != nil {
		return fmt.Errorf("updating task %d: %w", task.Code, err)
	}
	return nil
}

// Delete removes the task with the given code.
func (s *SQLiteTaskStore) Delete(code int) error {
	if _, err := s.db.Exec("DELETE FROM tasks WHERE code = ?", code); err != nil {
		return fmt.Errorf("deleting task %d: %w", code, err)
	}
	return nil
}

// SQLiteLogStore implements LogStore over the shared connection.
type SQLiteLogStore struct {
	db *sqlx.DB
}

// FindAll retrieves every log entry in insertion order.
func (s *SQLiteLogStore) FindAll() ([]model.LogEntry, error) {
	rows, err := s.db.Queryx(
		"SELECT task_code, change_user_code, status, change_date FROM logs ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("querying logs: %w", err)
	}
	defer rows.Close()

	var entries []model.LogEntry
	for rows.Next() {
		var (
			e    model.LogEntry
			date string
		)
		if err := rows.Scan(&e.TaskCode, &e.ChangeUserCode, &e.Status, &date); err != nil {
			return nil, fmt.Errorf("scanning log row: %w", err)
		}
		e.ChangeDate, err = time.Parse(model.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parsing log date %q: %w", date, err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Save appends one log entry.
func (s *SQLiteLogStore) Save(entry model.LogEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO logs (task_code, change_user_code, status, change_date)
		VALUES (?, ?, ?, ?)`,
		entry.TaskCode, entry.ChangeUserCode, int(entry.Status),
		entry.ChangeDate.Format(model.DateLayout),
	)
	if err != nil {
		return fmt.Errorf("saving log for task %d: %w", entry.TaskCode, err)
	}
	return nil
}

// DeleteByTaskCode removes every entry for the given task code.
func (s *SQLiteLogStore) DeleteByTaskCode(code int) error {
	if _, err := s.db.Exec("DELETE FROM logs WHERE task_code = ?", code); err != nil {
		return fmt.Errorf("deleting logs for task %d: %w", code, err)
	}
	return nil
}

// scanTask scans a joined task row, leaving Assignee nil on a dangling
// reference.
func scanTask(rows *sqlx.Rows) (model.Task, error) {
	var (
		task     model.Task
		status   int
		userCode sql.NullInt64
		userName sql.NullString
		email    sql.NullString
		password sql.NullString
	)

	err := rows.Scan(
		&task.Code, &task.Name, &status, &task.AssigneeCode,
		&userCode, &userName, &email, &password,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.Status = model.Status(status)
	if userCode.Valid {
		task.Assignee = &model.User{
			Code:     int(userCode.Int64),
			Name:     userName.String,
			Email:    email.String,
			Password: password.String,
		}
	}

	return task, nil
}
