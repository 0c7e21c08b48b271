package service

import (
	"errors"
	"testing"
	"time"

	"github.com/nhle/tasktrack/internal/model"
	"github.com/nhle/tasktrack/internal/store"
	"github.com/nhle/tasktrack/tests/testutil"
)

// fixedDate is the clock used by every service under test, so log entries
// have a predictable change date.
var fixedDate = time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)

type env struct {
	svc   *TaskService
	tasks store.TaskStore
	logs  store.LogStore
	users store.UserStore
}

// newCSVService wires a TaskService over seeded flat-file stores.
func newCSVService(t *testing.T) *env {
	t.Helper()

	e := testutil.NewCSVEnv(t)
	svc := NewTaskService(e.Tasks, e.Logs, e.Users)
	svc.now = func() time.Time { return fixedDate }
	return &env{svc: svc, tasks: e.Tasks, logs: e.Logs, users: e.Users}
}

// newSQLiteService wires a TaskService over a seeded in-memory database.
func newSQLiteService(t *testing.T) *env {
	t.Helper()

	db := testutil.NewSQLiteEnv(t)
	svc := NewTaskService(db.Tasks(), db.Logs(), db.Users())
	svc.now = func() time.Time { return fixedDate }
	return &env{svc: svc, tasks: db.Tasks(), logs: db.Logs(), users: db.Users()}
}

// engines runs a subtest against each storage engine, proving the service
// contract does not depend on the backing store.
func engines(t *testing.T, fn func(t *testing.T, e *env)) {
	t.Run("csv", func(t *testing.T) {
		t.Parallel()
		fn(t, newCSVService(t))
	})
	t.Run("sqlite", func(t *testing.T) {
		t.Parallel()
		fn(t, newSQLiteService(t))
	})
}

func mustCreate(t *testing.T, e *env, code int, name string, assigneeCode int, actor *model.User) {
	t.Helper()
	if err := e.svc.Create(code, name, assigneeCode, actor); err != nil {
		t.Fatalf("failed to prepare task %d: %v", code, err)
	}
}

func mustUser(t *testing.T, e *env, code int) *model.User {
	t.Helper()
	u, err := e.users.FindByCode(code)
	if err != nil || u == nil {
		t.Fatalf("seed user %d missing: %v", code, err)
	}
	return u
}

func logsFor(t *testing.T, e *env, taskCode int) []model.LogEntry {
	t.Helper()
	all, err := e.logs.FindAll()
	if err != nil {
		t.Fatalf("reading logs: %v", err)
	}
	var out []model.LogEntry
	for _, entry := range all {
		if entry.TaskCode == taskCode {
			out = append(out, entry)
		}
	}
	return out
}

func TestCreate_PersistsTaskAndLogEntry(t *testing.T) {
	t.Parallel()
	engines(t, func(t *testing.T, e *env) {
		actor := mustUser(t, e, 2)

		if err := e.svc.Create(1, "Design", 1, actor); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}

		task, err := e.tasks.FindByCode(1)
		if err != nil {
			t.Fatalf("FindByCode returned error: %v", err)
		}
		if task == nil || task.Status != model.StatusNotStarted {
			t.Fatalf("expected task 1 with status not started, got %+v", task)
		}
		if task.Assignee == nil || task.Assignee.Code != 1 {
			t.Fatalf("expected assignee 1, got %+v", task.Assignee)
		}

		entries := logsFor(t, e, 1)
		if len(entries) != 1 {
			t.Fatalf("expected exactly one log entry, got %d", len(entries))
		}
		want := model.LogEntry{
			TaskCode:       1,
			ChangeUserCode: 2,
			Status:         model.StatusNotStarted,
			ChangeDate:     date(t, "2026-08-30"),
		}
		if entries[0] != want {
			t.Fatalf("want log %+v, got %+v", want, entries[0])
		}
	})
}

func TestCreate_UnknownAssignee(t *testing.T) {
	t.Parallel()
	engines(t, func(t *testing.T, e *env) {
		actor := mustUser(t, e, 1)

		err := e.svc.Create(1, "Design", 99, actor)
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}

		if task, _ := e.tasks.FindByCode(1); task != nil {
			t.Fatalf("failed create must not persist a task, got %+v", task)
		}
		if entries := logsFor(t, e, 1); len(entries) != 0 {
			t.Fatalf("failed create must not log, got %+v", entries)
		}
	})
}

func TestCreate_DuplicateCodeAccepted(t *testing.T) {
	t.Parallel()
	engines(t, func(t *testing.T, e *env) {
		actor := mustUser(t, e, 1)
		mustCreate(t, e, 1, "First", 1, actor)

		// No uniqueness check exists; the second create is silently
		// accepted and later reads resolve the code last-write-wins.
		if err := e.svc.Create(1, "Second", 2, actor); err != nil {
			t.Fatalf("duplicate create must be accepted, got %v", err)
		}

		task, _ := e.tasks.FindByCode(1)
		if task == nil || task.Name != "Second" {
			t.Fatalf("expected the later create to win, got %+v", task)
		}
		if entries := logsFor(t, e, 1); len(entries) != 2 {
			t.Fatalf("both creates must log, got %d entries", len(entries))
		}
	})
}

func TestChangeStatus_Transitions(t *testing.T) {
	t.Parallel()
	engines(t, func(t *testing.T, e *env) {
		actor := mustUser(t, e, 2)
		mustCreate(t, e, 1, "Design", 1, actor)

		// Skipping a step is illegal from not started.
		if err := e.svc.ChangeStatus(1, model.StatusDone, actor); !errors.Is(err, ErrBadTransition) {
			t.Fatalf("0->2: expected ErrBadTransition, got %v", err)
		}

		// One step forward is legal and persists.
		if err := e.svc.ChangeStatus(1, model.StatusInProgress, actor); err != nil {
			t.Fatalf("0->1 returned error: %v", err)
		}
		task, _ := e.tasks.FindByCode(1)
		if task.Status != model.StatusInProgress {
			t.Fatalf("expected status in progress, got %+v", task)
		}

		// Regressing and repeating are illegal.
		if err := e.svc.ChangeStatus(1, model.StatusNotStarted, actor); !errors.Is(err, ErrBadTransition) {
			t.Fatalf("1->0: expected ErrBadTransition, got %v", err)
		}
		if err := e.svc.ChangeStatus(1, model.StatusInProgress, actor); !errors.Is(err, ErrBadTransition) {
			t.Fatalf("1->1: expected ErrBadTransition, got %v", err)
		}

		if err := e.svc.ChangeStatus(1, model.StatusDone, actor); err != nil {
			t.Fatalf("1->2 returned error: %v", err)
		}

		// Done is terminal regardless of the requested target.
		for _, next := range []model.Status{model.StatusNotStarted, model.StatusInProgress, model.StatusDone, model.Status(3)} {
			if err := e.svc.ChangeStatus(1, next, actor); !errors.Is(err, ErrBadTransition) {
				t.Fatalf("2->%d: expected ErrBadTransition, got %v", next, err)
			}
		}
	})
}

func TestChangeStatus_UnknownTask(t *testing.T) {
	t.Parallel()
	engines(t, func(t *testing.T, e *env) {
		actor := mustUser(t, e, 1)

		err := e.svc.ChangeStatus(42, model.StatusInProgress, actor)
		if !errors.Is(err, ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestDelete_RequiresDone(t *testing.T) {
	t.Parallel()
	engines(t, func(t *testing.T, e *env) {
		actor := mustUser(t, e, 1)
		mustCreate(t, e, 1, "Design", 1, actor)

		for _, status := range []model.Status{model.StatusNotStarted, model.StatusInProgress} {
			if _, err := e.svc.Delete(1); !errors.Is(err, ErrTaskNotDone) {
				t.Fatalf("status %d: expected ErrTaskNotDone, got %v", status, err)
			}

			// The refusal must leave both the task and its history intact.
			task, _ := e.tasks.FindByCode(1)
			if task == nil || task.Status != status {
				t.Fatalf("refused delete must not touch the task, got %+v", task)
			}
			if entries := logsFor(t, e, 1); len(entries) != int(status)+1 {
				t.Fatalf("refused delete must not touch the logs, got %d entries", len(entries))
			}

			next, _ := status.Next()
			if err := e.svc.ChangeStatus(1, next, actor); err != nil {
				t.Fatalf("advancing to %d returned error: %v", next, err)
			}
		}
	})
}

func TestDelete_UnknownTask(t *testing.T) {
	t.Parallel()
	engines(t, func(t *testing.T, e *env) {
		if _, err := e.svc.Delete(42); !errors.Is(err, ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestDelete_PurgesTaskAndItsLogsOnly(t *testing.T) {
	t.Parallel()
	engines(t, func(t *testing.T, e *env) {
		actor := mustUser(t, e, 2)
		mustCreate(t, e, 1, "Design", 1, actor)
		mustCreate(t, e, 2, "Build", 2, actor)

		for _, next := range []model.Status{model.StatusInProgress, model.StatusDone} {
			if err := e.svc.ChangeStatus(1, next, actor); err != nil {
				t.Fatalf("advancing task 1 returned error: %v", err)
			}
		}

		name, err := e.svc.Delete(1)
		if err != nil {
			t.Fatalf("Delete returned error: %v", err)
		}
		if name != "Design" {
			t.Fatalf("expected deleted task's name, got %q", name)
		}

		all, _ := e.tasks.FindAll()
		for _, task := range all {
			if task.Code == 1 {
				t.Fatalf("task 1 must be gone, got %+v", all)
			}
		}
		if entries := logsFor(t, e, 1); len(entries) != 0 {
			t.Fatalf("task 1's history must be purged, got %+v", entries)
		}
		if entries := logsFor(t, e, 2); len(entries) != 1 {
			t.Fatalf("task 2's history must be untouched, got %+v", entries)
		}
	})
}

func TestListAll_MineIsComparedByName(t *testing.T) {
	t.Parallel()

	e := testutil.NewCSVEnv(t)

	// Two distinct users share a display name. The self-assigned flag
	// compares names, so both of them see user 3's task as their own.
	testutil.WriteFile(t, e.UsersPath, "Code,Name,Email,Password",
		"1,Alice Ford,alice@example.com,alicepw",
		"2,Bob Tran,bob@example.com,bobpw",
		"3,Alice Ford,other.alice@example.com,otherpw",
	)
	testutil.WriteFile(t, e.TasksPath, "Code,Name,Status,Rep_User_Code",
		"1,Design,0,3",
		"2,Build,0,2",
		"3,Orphan,0,99",
	)

	svc := NewTaskService(e.Tasks, e.Logs, e.Users)

	viewer, _ := e.Users.FindByCode(1)
	views, err := svc.ListAll(viewer)
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(views))
	}
	if !views[0].Mine {
		t.Fatalf("user 3's task must count as viewer's by name, got %+v", views[0])
	}
	if views[1].Mine {
		t.Fatalf("Bob's task must not be the viewer's, got %+v", views[1])
	}
	if views[2].Mine {
		t.Fatalf("a dangling assignee is never the viewer's, got %+v", views[2])
	}
}

// The end-to-end scenario walks one task through its whole life.
func TestScenario_FullLifecycle(t *testing.T) {
	t.Parallel()
	engines(t, func(t *testing.T, e *env) {
		actor := mustUser(t, e, 2)

		if err := e.svc.Create(1, "Design", 1, actor); err != nil {
			t.Fatalf("create: %v", err)
		}
		task, _ := e.tasks.FindByCode(1)
		if task.Status != model.StatusNotStarted {
			t.Fatalf("after create: want status 0, got %d", task.Status)
		}
		if entries := logsFor(t, e, 1); len(entries) != 1 || entries[0].ChangeUserCode != 2 {
			t.Fatalf("after create: want one log row by user 2, got %+v", entries)
		}

		if err := e.svc.ChangeStatus(1, model.StatusInProgress, actor); err != nil {
			t.Fatalf("advance to in progress: %v", err)
		}
		if entries := logsFor(t, e, 1); len(entries) != 2 || entries[1].Status != model.StatusInProgress {
			t.Fatalf("after first advance: %+v", entries)
		}

		if err := e.svc.ChangeStatus(1, model.Status(3), actor); !errors.Is(err, ErrBadTransition) {
			t.Fatalf("advance to 3: expected ErrBadTransition, got %v", err)
		}
		task, _ = e.tasks.FindByCode(1)
		if task.Status != model.StatusInProgress {
			t.Fatalf("failed advance must not persist, got status %d", task.Status)
		}

		if err := e.svc.ChangeStatus(1, model.StatusDone, actor); err != nil {
			t.Fatalf("advance to done: %v", err)
		}

		name, err := e.svc.Delete(1)
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if name != "Design" {
			t.Fatalf("delete: want name Design, got %q", name)
		}
		if task, _ := e.tasks.FindByCode(1); task != nil {
			t.Fatalf("task must be gone, got %+v", task)
		}
		if entries := logsFor(t, e, 1); len(entries) != 0 {
			t.Fatalf("history must be purged, got %+v", entries)
		}
	})
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		t.Fatalf("parsing date %q: %v", s, err)
	}
	return d
}
