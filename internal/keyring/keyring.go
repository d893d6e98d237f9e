package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/waketrack/internal/constants"
)

var (
	// ErrNotFound is returned when nothing is stored under the account
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(account string) (string, error) {
	v, err := keyring.Get(constants.AppName, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func set(account, value, what string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	if err := keyring.Set(constants.AppName, account, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", what, err)
	}
	return nil
}

func del(account, what string) error {
	if err := keyring.Delete(constants.AppName, account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", what, err)
	}
	return nil
}

// GetCurrentUser returns the id of the logged-in user.
func GetCurrentUser() (string, error) {
	return get(constants.DefaultKeyringUser)
}

func SetCurrentUser(id string) error {
	return set(constants.DefaultKeyringUser, id, "user id")
}

func DeleteCurrentUser() error {
	return del(constants.DefaultKeyringUser, "user id")
}

// GetConnectionString retrieves the storage backend connection string.
// Returns ErrNotFound if none is stored.
func GetConnectionString() (string, error) {
	return get(constants.KeyringDSNAccount)
}

func SetConnectionString(connStr string) error {
	return set(constants.KeyringDSNAccount, connStr, "connection string")
}

func DeleteConnectionString() error {
	return del(constants.KeyringDSNAccount, "connection string")
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
