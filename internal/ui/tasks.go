package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nhle/tasktrack/internal/model"
	"github.com/nhle/tasktrack/internal/theme"
)

// showTasks renders the task list for the logged-in user, then offers the
// status-change / delete sub-menu.
func (u *UI) showTasks() error {
	views, err := u.tasks.ListAll(u.loginUser)
	if err != nil {
		return err
	}

	if len(views) == 0 {
		fmt.Fprintln(u.out, theme.HintStyle.Render("No tasks registered yet."))
		return nil
	}

	for _, v := range views {
		assignee := "(unknown user)"
		if v.Assignee != nil {
			assignee = v.Assignee.Name + " is assigned"
		}
		if v.Mine {
			assignee = "assigned to you"
		}

		title := fmt.Sprintf("%d. %s", v.Code, v.Name)
		if v.Mine {
			title = theme.MineStyle.Render(title)
		}
		fmt.Fprintf(u.out, "%s (%s, %s)\n",
			title,
			theme.HintStyle.Render(assignee),
			theme.StatusStyle(v.Status).Render(v.Status.Label()),
		)
	}
	fmt.Fprintln(u.out)

	return u.taskSubMenu()
}

const (
	subChangeStatus = "status"
	subDelete       = "delete"
	subBack         = "back"
)

func (u *UI) taskSubMenu() error {
	var choice string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Pick one of the menu options.").
			Options(
				huh.NewOption("Change a task's status", subChangeStatus),
				huh.NewOption("Delete a task", subDelete),
				huh.NewOption("Back to the main menu", subBack),
			).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	fmt.Fprintln(u.out)

	switch choice {
	case subChangeStatus:
		return u.changeStatusForm()
	case subDelete:
		return u.deleteForm()
	}
	return nil
}

// taskFormBindings holds the new-task form values on the heap so huh's
// Value() pointers stay valid across form rebuilds.
type taskFormBindings struct {
	code     string
	name     string
	assignee string
}

// newTaskForm registers a new task, re-prompting on a nonexistent assignee.
func (u *UI) newTaskForm() error {
	fb := &taskFormBindings{}
	for {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Task code").
				Validate(requireCode).
				Value(&fb.code),
			huh.NewInput().
				Title("Task name").
				Validate(requireTaskName).
				Value(&fb.name),
			huh.NewInput().
				Title("Assignee's user code").
				Validate(requireCode).
				Value(&fb.assignee),
		))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		code, _ := strconv.Atoi(fb.code)
		assigneeCode, _ := strconv.Atoi(fb.assignee)

		err := u.tasks.Create(code, fb.name, assigneeCode, u.loginUser)
		if err != nil {
			if u.renderBusinessError(err) {
				continue
			}
			return err
		}

		fmt.Fprintln(u.out, theme.SuccessStyle.Render(fb.name+" has been registered."))
		return nil
	}
}

// changeStatusForm advances a task's status, re-prompting on an unknown code
// or an illegal transition.
func (u *UI) changeStatusForm() error {
	var (
		codeField string
		next      model.Status
	)
	for {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Code of the task to update").
				Validate(requireCode).
				Value(&codeField),
			huh.NewSelect[model.Status]().
				Title("New status").
				Options(
					huh.NewOption(model.StatusInProgress.Label(), model.StatusInProgress),
					huh.NewOption(model.StatusDone.Label(), model.StatusDone),
				).
				Value(&next),
		))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		code, _ := strconv.Atoi(codeField)

		err := u.tasks.ChangeStatus(code, next, u.loginUser)
		if err != nil {
			if u.renderBusinessError(err) {
				continue
			}
			return err
		}

		fmt.Fprintln(u.out, theme.SuccessStyle.Render("The status has been updated."))
		return nil
	}
}

// deleteForm removes a finished task, re-prompting on an unknown code or a
// task that is not done yet.
func (u *UI) deleteForm() error {
	var codeField string
	for {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Code of the task to delete").
				Validate(requireCode).
				Value(&codeField),
		))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		code, _ := strconv.Atoi(codeField)

		name, err := u.tasks.Delete(code)
		if err != nil {
			if u.renderBusinessError(err) {
				continue
			}
			return err
		}

		fmt.Fprintln(u.out, theme.SuccessStyle.Render(name+" has been deleted."))
		return nil
	}
}

// requireCode accepts only positive decimal integers.
func requireCode(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("enter the code as a positive number")
	}
	return nil
}

// requireTaskName accepts a non-empty name of at most 20 characters.
func requireTaskName(s string) error {
	name := strings.TrimSpace(s)
	if name == "" {
		return errors.New("enter a task name")
	}
	if len([]rune(name)) > 20 {
		return errors.New("enter a task name of 20 characters or fewer")
	}
	return nil
}
