package service

import (
	"time"

	"github.com/nhle/tasktrack/internal/model"
	"github.com/nhle/tasktrack/internal/store"
)

// TaskService composes the three stores and enforces the cross-entity
// business rules: assignees must exist, statuses advance exactly one step,
// and every task mutation leaves a log entry behind.
//
// Task and log writes are two ordered, independent operations with no
// shared transaction. A failure between them leaves the stores inconsistent;
// that gap is part of the contract, not something the service papers over.
type TaskService struct {
	tasks store.TaskStore
	logs  store.LogStore
	users store.UserStore
	now   func() time.Time
}

// NewTaskService returns a task service over the given stores.
func NewTaskService(tasks store.TaskStore, logs store.LogStore, users store.UserStore) *TaskService {
	return &TaskService{tasks: tasks, logs: logs, users: users, now: time.Now}
}

// TaskView is a task decorated for display.
type TaskView struct {
	model.Task

	// Mine is true when the assignee's name equals the viewer's name. The
	// comparison is by name, not code, matching the behavior this replaces;
	// two users sharing a name both see the task as theirs.
	Mine bool
}

// ListAll returns every task in file order, flagging the ones assigned to
// the viewer.
func (s *TaskService) ListAll(viewer *model.User) ([]TaskView, error) {
	tasks, err := s.tasks.FindAll()
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		mine := t.Assignee != nil && t.Assignee.Name == viewer.Name
		views = append(views, TaskView{Task: t, Mine: mine})
	}
	return views, nil
}

// Create persists a new task with status not-started and appends the
// creation log entry. It fails with ErrUserNotFound when assigneeCode
// references no user. Create performs no duplicate-code check: a second
// create with an existing code is accepted, and later reads resolve the
// duplicate last-row-wins.
func (s *TaskService) Create(code int, name string, assigneeCode int, actor *model.User) error {
	assignee, err := s.users.FindByCode(assigneeCode)
	if err != nil {
		return err
	}
	if assignee == nil {
		return ErrUserNotFound
	}

	task := model.Task{
		Code:         code,
		Name:         name,
		Status:       model.StatusNotStarted,
		AssigneeCode: assigneeCode,
		Assignee:     assignee,
	}
	if err := s.tasks.Save(task); err != nil {
		return err
	}

	return s.logs.Save(model.LogEntry{
		TaskCode:       code,
		ChangeUserCode: actor.Code,
		Status:         model.StatusNotStarted,
		ChangeDate:     s.now(),
	})
}

// ChangeStatus advances the task to next and appends a log entry. It fails
// with ErrTaskNotFound when the code matches no task, and with
// ErrBadTransition unless next is exactly one step after the current
// status. Done is terminal: no request advances out of it.
func (s *TaskService) ChangeStatus(code int, next model.Status, actor *model.User) error {
	task, err := s.tasks.FindByCode(code)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}

	if !next.Valid() || task.Status+1 != next {
		return ErrBadTransition
	}

	task.Status = next
	if err := s.tasks.Update(*task); err != nil {
		return err
	}

	return s.logs.Save(model.LogEntry{
		TaskCode:       code,
		ChangeUserCode: actor.Code,
		Status:         next,
		ChangeDate:     s.now(),
	})
}

// Delete removes a finished task and purges its log history, returning the
// deleted task's name for the confirmation message. It fails with
// ErrTaskNotFound when the code matches no task and with ErrTaskNotDone
// unless the task's status is done.
func (s *TaskService) Delete(code int) (string, error) {
	task, err := s.tasks.FindByCode(code)
	if err != nil {
		return "", err
	}
	if task == nil {
		return "", ErrTaskNotFound
	}
	if task.Status != model.StatusDone {
		return "", ErrTaskNotDone
	}

	if err := s.tasks.Delete(code); err != nil {
		return "", err
	}
	if err := s.logs.DeleteByTaskCode(code); err != nil {
		return "", err
	}
	return task.Name, nil
}
