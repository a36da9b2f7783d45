package store

// KV is a string-keyed byte store.
//
// Implementations must be safe for concurrent use. Keys are opaque;
// values are typically JSON produced by [Persisted].
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
}
