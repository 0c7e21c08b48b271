// Package ui implements the interactive prompt loop. It talks to the
// business layer only through AuthService and TaskService, renders the typed
// business errors those return, and re-prompts; it never touches the stores.
package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/nhle/tasktrack/internal/model"
	"github.com/nhle/tasktrack/internal/service"
	"github.com/nhle/tasktrack/internal/theme"
)

// UI drives the login prompt, the main menu, and the per-action forms.
type UI struct {
	auth          *service.AuthService
	tasks         *service.TaskService
	rememberLogin bool
	out           io.Writer

	loginUser *model.User
}

// New returns the prompt loop over the given services. Output is rendered
// to out; interactive input goes through the terminal.
func New(auth *service.AuthService, tasks *service.TaskService, rememberLogin bool, out io.Writer) *UI {
	return &UI{auth: auth, tasks: tasks, rememberLogin: rememberLogin, out: out}
}

// Run shows the banner, logs the user in, and serves the main menu until
// logout.
func (u *UI) Run() error {
	fmt.Fprintln(u.out, theme.HeaderStyle.Render("Welcome to the task tracker!"))
	fmt.Fprintln(u.out)

	if err := u.login(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	for {
		choice, err := u.mainMenu()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				choice = menuLogout
			} else {
				return err
			}
		}

		fmt.Fprintln(u.out)

		switch choice {
		case menuList:
			if err := u.showTasks(); err != nil {
				return err
			}
		case menuNewTask:
			if err := u.newTaskForm(); err != nil {
				return err
			}
		case menuLogout:
			fmt.Fprintln(u.out, "Logged out.")
			return nil
		}

		fmt.Fprintln(u.out)
	}
}

const (
	menuList    = "list"
	menuNewTask = "new"
	menuLogout  = "logout"
)

func (u *UI) mainMenu() (string, error) {
	var choice string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Pick one of the menu options.").
			Options(
				huh.NewOption("List tasks", menuList),
				huh.NewOption("Register a new task", menuNewTask),
				huh.NewOption("Log out", menuLogout),
			).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return choice, nil
}

// renderBusinessError prints an AppError and reports whether err was one.
// Any other error is the caller's to propagate.
func (u *UI) renderBusinessError(err error) bool {
	var appErr *service.AppError
	if errors.As(err, &appErr) {
		fmt.Fprintln(u.out, theme.ErrorStyle.Render(appErr.Message))
		fmt.Fprintln(u.out)
		return true
	}
	return false
}
