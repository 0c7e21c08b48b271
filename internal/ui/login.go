package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nhle/tasktrack/internal/credential"
	"github.com/nhle/tasktrack/internal/theme"
)

// loginBindings holds the form field values on the heap so huh's Value()
// pointers stay valid across form rebuilds.
type loginBindings struct {
	email    string
	password string
}

// login prompts for credentials until a user matches, re-prompting with the
// failure message on a bad pair. With remember-login on, the email field is
// prefilled from the keyring and updated after a successful login.
func (u *UI) login() error {
	lb := &loginBindings{}
	if u.rememberLogin {
		email, err := credential.RememberedEmail()
		if err != nil {
			// Keyring access is a convenience; a broken backend must not
			// block logging in.
			slog.Debug("ui: keyring unavailable", "err", err)
		}
		lb.email = email
	}

	for {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Email address").
				Validate(requireNonEmpty("enter your email address")).
				Value(&lb.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(requireNonEmpty("enter your password")).
				Value(&lb.password),
		))
		if err := form.Run(); err != nil {
			return err
		}

		user, err := u.auth.Login(lb.email, lb.password)
		if err != nil {
			if u.renderBusinessError(err) {
				continue
			}
			return err
		}

		u.loginUser = user
		if u.rememberLogin {
			if err := credential.SetRememberedEmail(user.Email); err != nil {
				slog.Debug("ui: cannot remember email", "err", err)
			}
		}

		fmt.Fprintln(u.out, theme.SuccessStyle.Render("Hello, "+user.Name+"."))
		fmt.Fprintln(u.out)
		return nil
	}
}

func requireNonEmpty(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}
