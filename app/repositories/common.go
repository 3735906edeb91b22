package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefix for session records in the badger store
	SessionKeyPrefix = "session:"
)

// OpenSessionStore opens the badger directory that holds sessions.
// An empty path keeps everything in memory.
func OpenSessionStore(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return db, nil
}

func sessionKey(id string) []byte {
	return []byte(SessionKeyPrefix + id)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
