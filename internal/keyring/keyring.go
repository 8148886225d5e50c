package keyring

import (
	"errors"
	"fmt"

	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no secret is stored under the requested key
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	v, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func del(user string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString retrieves the postgres connection string.
func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	return del(constants.DefaultKeyringUser)
}

func profileUser(profileID string) string {
	return constants.ProfileSecretPrefix + profileID
}

// GetProfileSecret returns the secret protecting a profile.
func GetProfileSecret(profileID string) (string, error) {
	return get(profileUser(profileID))
}

func SetProfileSecret(profileID, secret string) error {
	if profileID == "" {
		return errors.New("profile id cannot be empty")
	}
	if err := keyring.Set(constants.AppName, profileUser(profileID), secret); err != nil {
		return fmt.Errorf("failed to store profile secret in keyring: %w", err)
	}
	return nil
}

// DeleteProfileSecret removes a profile secret. A missing entry is not an
// error.
func DeleteProfileSecret(profileID string) error {
	if err := del(profileUser(profileID)); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
