// ABOUTME: Versioned transactional record store over BadgerDB.
// ABOUTME: Named collections, auto-increment ids, equality secondary indexes.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v3"
)

// ErrUnavailable is returned when the underlying engine cannot be opened
// (permissions, lock held by another process, unsupported environment).
var ErrUnavailable = errors.New("store unavailable")

// ErrUnknownCollection is returned for operations on an undeclared collection.
var ErrUnknownCollection = errors.New("unknown collection")

// Record is any value the store can persist. The store assigns ids on Add;
// ids are immutable once assigned.
type Record interface {
	RecordID() uint64
	SetRecordID(uint64)
}

// Collection declares a named record set and its equality-indexed fields.
// Declaring a collection is idempotent; re-declaring is a no-op.
type Collection struct {
	Name    string
	Indexes []string
}

// Store is a transactional record store backed by BadgerDB.
//
// Every operation runs in its own transaction and commits or fails
// atomically. Batch groups multiple writes into a single transaction for
// all-or-nothing paths like seeding and import.
type Store struct {
	db          *badger.DB
	collections map[string]Collection
}

// Open opens or creates a store at path with the given collections.
func Open(path string, collections []Collection) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return newStore(db, collections), nil
}

// InMemory opens an ephemeral store, used by tests.
func InMemory(collections []Collection) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return newStore(db, collections), nil
}

func newStore(db *badger.DB, collections []Collection) *Store {
	s := &Store{db: db, collections: make(map[string]Collection, len(collections))}
	for _, c := range collections {
		s.collections[c.Name] = c
	}
	return s
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Batch runs fn inside a single read-write transaction. All writes commit
// together or not at all; id counters advanced inside an aborted batch
// roll back with it.
func (s *Store) Batch(fn func(*Tx) error) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return fn(&Tx{s: s, txn: txn})
	})
}

// View runs fn inside a single read-only transaction.
func (s *Store) View(fn func(*Tx) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		return fn(&Tx{s: s, txn: txn})
	})
}

// Add assigns a fresh id to rec and persists it. Ids within a collection
// are strictly increasing and never reused, even after Delete.
func (s *Store) Add(collection string, rec Record) (uint64, error) {
	var id uint64
	err := s.Batch(func(tx *Tx) error {
		var err error
		id, err = tx.Add(collection, rec)
		return err
	})
	return id, err
}

// Put writes rec keyed by its id, inserting when absent (upsert). A zero
// id behaves like Add.
func (s *Store) Put(collection string, rec Record) error {
	return s.Batch(func(tx *Tx) error {
		return tx.Put(collection, rec)
	})
}

// Get loads the record with the given id into out. Absence is reported via
// the bool, not an error.
func (s *Store) Get(collection string, id uint64, out Record) (bool, error) {
	var found bool
	err := s.View(func(tx *Tx) error {
		var err error
		found, err = tx.Get(collection, id, out)
		return err
	})
	return found, err
}

// Delete removes the record with the given id. Deleting a missing id is a
// successful no-op.
func (s *Store) Delete(collection string, id uint64) error {
	return s.Batch(func(tx *Tx) error {
		return tx.Delete(collection, id)
	})
}

// Count returns the number of records in the collection.
func (s *Store) Count(collection string) (int, error) {
	var n int
	err := s.View(func(tx *Tx) error {
		var err error
		n, err = tx.Count(collection)
		return err
	})
	return n, err
}

// ForEach scans every record in the collection in key order.
func (s *Store) ForEach(collection string, fn func(id uint64, data []byte) error) error {
	return s.View(func(tx *Tx) error {
		return tx.ForEach(collection, fn)
	})
}

// ByIndex visits every record whose indexed field equals value.
func (s *Store) ByIndex(collection, field, value string, fn func(id uint64, data []byte) error) error {
	return s.View(func(tx *Tx) error {
		return tx.ByIndex(collection, field, value, fn)
	})
}

// Meta reads a metadata value by key.
func (s *Store) Meta(key string) ([]byte, bool, error) {
	var val []byte
	var found bool
	err := s.View(func(tx *Tx) error {
		var err error
		val, found, err = tx.Meta(key)
		return err
	})
	return val, found, err
}

// SetMeta writes a metadata value.
func (s *Store) SetMeta(key string, val []byte) error {
	return s.Batch(func(tx *Tx) error {
		return tx.SetMeta(key, val)
	})
}
