// Package testutil provides seeded store fixtures shared by the package
// tests.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/nhle/tasktrack/internal/model"
	"github.com/nhle/tasktrack/internal/store"
)

// Default seed users available in every CSV fixture.
var SeedUsers = []model.User{
	{Code: 1, Name: "Alice Ford", Email: "alice@example.com", Password: "alicepw"},
	{Code: 2, Name: "Bob Tran", Email: "bob@example.com", Password: "bobpw"},
}

// CSVEnv is a set of flat-file stores over a temporary data directory.
type CSVEnv struct {
	Dir       string
	UsersPath string
	TasksPath string
	LogsPath  string

	Users *store.CSVUserStore
	Tasks *store.CSVTaskStore
	Logs  *store.CSVLogStore
}

// NewCSVEnv creates a temp data directory seeded with the default users and
// empty (header-only) task and log files, and returns wired CSV stores. The
// directory is removed when the test completes.
func NewCSVEnv(t *testing.T) *CSVEnv {
	t.Helper()

	dir := t.TempDir()
	env := &CSVEnv{
		Dir:       dir,
		UsersPath: filepath.Join(dir, "users.csv"),
		TasksPath: filepath.Join(dir, "tasks.csv"),
		LogsPath:  filepath.Join(dir, "logs.csv"),
	}

	userRows := make([]string, 0, len(SeedUsers))
	for _, u := range SeedUsers {
		userRows = append(userRows, UserRow(u))
	}
	WriteFile(t, env.UsersPath, "Code,Name,Email,Password", userRows...)
	WriteFile(t, env.TasksPath, "Code,Name,Status,Rep_User_Code")
	WriteFile(t, env.LogsPath, "Task_Code,Change_User_Code,Status,Change_Date")

	env.Users = store.NewCSVUserStore(env.UsersPath)
	env.Tasks = store.NewCSVTaskStore(env.TasksPath, env.Users)
	env.Logs = store.NewCSVLogStore(env.LogsPath)
	return env
}

// NewSQLiteEnv creates an in-memory SQLite store seeded with the default
// users. It is closed when the test completes.
func NewSQLiteEnv(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	if err := s.ImportUsers(SeedUsers); err != nil {
		t.Fatalf("seeding users: %v", err)
	}
	return s
}

// WriteFile writes a header-first delimited file with the store layer's
// newline-first row format (no trailing newline).
func WriteFile(t *testing.T, path, header string, rows ...string) {
	t.Helper()

	content := header
	for _, row := range rows {
		content += "\n" + row
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// ReadLines returns every line of the file at path.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(string(data), "\n")
}

// UserRow formats a user the way the seed file stores it.
func UserRow(u model.User) string {
	return strings.Join([]string{
		strconv.Itoa(u.Code), u.Name, u.Email, u.Password,
	}, ",")
}
