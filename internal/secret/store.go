package secret

// SecretStore persists OAuth credentials between runs. The SQLite
// backend lives in internal/storage; the macOS Keychain and in-memory
// backends live here.
type SecretStore interface {
	// Set stores a secret value under the given key.
	Set(key string, value []byte) error

	// Get retrieves the secret value for the given key.
	// Returns empty slice and nil error if key does not exist.
	Get(key string) ([]byte, error)

	// Delete removes the secret for the given key.
	Delete(key string) error
}
