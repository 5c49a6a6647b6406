package storage

// Gateway persists whole-collection snapshots keyed by logical name. The
// store treats payloads as opaque bytes; callers own the encoding.
type Gateway interface {
	// Load returns the payload stored under key. ok is false when nothing
	// has ever been saved under key; that is not an error.
	Load(key string) (data []byte, ok bool, err error)

	// Save replaces the payload stored under key.
	Save(key string, data []byte) error

	// Remove deletes the payload stored under key. Removing a key that was
	// never saved is a no-op.
	Remove(key string) error

	Close() error
}
