package repositories

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dgraph-io/badger/v4"

	"inkwell/app/models"
)

// BadgerSessionRepository implements SessionRepository using BadgerDB.
// Records carry a TTL so expired sessions disappear on their own.
type BadgerSessionRepository struct {
	db  *badger.DB
	now func() time.Time
}

// NewBadgerSessionRepository creates a new BadgerSessionRepository
func NewBadgerSessionRepository(db *badger.DB) *BadgerSessionRepository {
	return &BadgerSessionRepository{db: db, now: time.Now}
}

// Create stores a session until its expiry
func (r *BadgerSessionRepository) Create(session *models.Session) error {
	if session.ID == "" {
		return errors.New("session id is required")
	}
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}

	data, err := marshalEntity(session)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(sessionKey(session.ID), data).WithTTL(ttl))
	})
}

// Get retrieves a live session by ID
func (r *BadgerSessionRepository) Get(id string) (*models.Session, error) {
	var session models.Session

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &session)
		})
	})
	if err != nil {
		return nil, err
	}

	// TTLs have second granularity; the record's own expiry is authoritative.
	if !session.ExpiresAt.After(r.now()) {
		return nil, ErrNotFound
	}
	return &session, nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (r *BadgerSessionRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(id))
	})
}

// Count returns the number of stored sessions
func (r *BadgerSessionRepository) Count() (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(SessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Clear drops every session, logging everybody out
func (r *BadgerSessionRepository) Clear() error {
	return r.db.DropAll()
}

// Backup writes a full backup of the session store to w
func (r *BadgerSessionRepository) Backup(w io.Writer) (uint64, error) {
	return r.db.Backup(w, 0)
}

// Restore loads a backup produced by Backup
func (r *BadgerSessionRepository) Restore(rd io.Reader) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic occurred during restore: %v", p)
		}
	}()
	return r.db.Load(rd, 16)
}
