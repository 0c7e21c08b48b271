package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "tasktrack"

const emailKey = "last-login-email"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/tasktrack/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("tasktrack-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// RememberedEmail returns the email address of the last successful login,
// or "" when none is stored.
func RememberedEmail() (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(emailKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting remembered email: %w", err)
	}

	return string(item.Data), nil
}

// SetRememberedEmail stores the email address of a successful login.
func SetRememberedEmail(email string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  emailKey,
		Data: []byte(email),
	})
	if err != nil {
		return fmt.Errorf("setting remembered email: %w", err)
	}

	return nil
}

// Forget removes the remembered email address.
func Forget() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(emailKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("forgetting remembered email: %w", err)
	}

	return nil
}
