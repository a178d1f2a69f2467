package secret

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const keychainService = "slides-mcp"

// errItemNotFound is the exit code of `security` when no item matches.
const errItemNotFound = 44

// KeychainStore implements SecretStore using the macOS Keychain
// via the `security` CLI tool.
type KeychainStore struct {
	service string
}

func NewKeychainStore() *KeychainStore {
	return &KeychainStore{service: keychainService}
}

// Set stores a secret, replacing any existing entry for key.
func (k *KeychainStore) Set(key string, value []byte) error {
	cmd := exec.Command("security", "add-generic-password",
		"-a", key,
		"-s", k.service,
		"-w", string(value),
		"-U", // update if exists
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("keychain set: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// Get returns nil, nil when the key does not exist.
func (k *KeychainStore) Get(key string) ([]byte, error) {
	cmd := exec.Command("security", "find-generic-password",
		"-a", key,
		"-s", k.service,
		"-w", // output only the password
	)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == errItemNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("keychain get: %w", err)
	}
	return []byte(strings.TrimSpace(string(out))), nil
}

func (k *KeychainStore) Delete(key string) error {
	cmd := exec.Command("security", "delete-generic-password",
		"-a", key,
		"-s", k.service,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == errItemNotFound {
			return nil
		}
		return fmt.Errorf("keychain delete: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}
