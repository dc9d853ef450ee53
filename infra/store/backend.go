package store

// Backend is durable key-value storage for credentials. Implementations
// are chosen once at composition time: FileBackend for plain on-disk
// files, SQLiteBackend for a single-file database.
type Backend interface {
	// Get returns the stored value, or "" when the key is absent.
	Get(key string) (string, error)

	// Set stores the value, overwriting any previous one.
	Set(key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases backend resources.
	Close() error
}
