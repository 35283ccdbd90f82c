// ABOUTME: Transaction-scoped record operations and key layout.
// ABOUTME: Handles id allocation, JSON encoding, and index maintenance.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
)

// Key layout:
//
//	rec:<collection>:<id, 8 bytes big-endian>   record body (JSON)
//	idx:<collection>:<field>:<value>:<id bytes> secondary index entry
//	seq:<collection>                            next id counter
//	meta:<key>                                  store metadata
//
// Big-endian ids keep records in insertion order under prefix iteration.
// Index entries end in the fixed-width id, so separator characters inside
// the indexed value cannot be confused with the id.

func recKey(collection string, id uint64) []byte {
	key := make([]byte, 0, len(collection)+13)
	key = append(key, "rec:"...)
	key = append(key, collection...)
	key = append(key, ':')
	return binary.BigEndian.AppendUint64(key, id)
}

func recPrefix(collection string) []byte {
	return []byte("rec:" + collection + ":")
}

func idxKey(collection, field, value string, id uint64) []byte {
	key := []byte(idxPrefix(collection, field, value))
	return binary.BigEndian.AppendUint64(key, id)
}

func idxPrefix(collection, field, value string) string {
	return "idx:" + collection + ":" + field + ":" + value + ":"
}

func seqKey(collection string) []byte {
	return []byte("seq:" + collection)
}

func metaKey(key string) []byte {
	return []byte("meta:" + key)
}

// Tx is a unit of work scoped to one underlying transaction. Single
// operations get an implicit Tx; seeding and import share one across many
// writes so the whole batch commits atomically.
type Tx struct {
	s   *Store
	txn *badger.Txn
}

func (tx *Tx) collection(name string) (Collection, error) {
	c, ok := tx.s.collections[name]
	if !ok {
		return Collection{}, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return c, nil
}

// nextID allocates the next id for a collection. The counter lives in the
// same transaction as the write, so an aborted batch does not leak ids,
// and a committed one can never hand the same id out twice.
func (tx *Tx) nextID(collection string) (uint64, error) {
	next := uint64(1)
	item, err := tx.txn.Get(seqKey(collection))
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
	case err != nil:
		return 0, fmt.Errorf("read id counter: %w", err)
	default:
		if err := item.Value(func(val []byte) error {
			next = binary.BigEndian.Uint64(val)
			return nil
		}); err != nil {
			return 0, fmt.Errorf("read id counter: %w", err)
		}
	}

	if err := tx.setSeq(collection, next+1); err != nil {
		return 0, err
	}
	return next, nil
}

// bumpSeq advances the counter past id if an explicit write (import,
// upsert with caller-supplied id) landed at or beyond it.
func (tx *Tx) bumpSeq(collection string, id uint64) error {
	next := uint64(1)
	item, err := tx.txn.Get(seqKey(collection))
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
	case err != nil:
		return fmt.Errorf("read id counter: %w", err)
	default:
		if err := item.Value(func(val []byte) error {
			next = binary.BigEndian.Uint64(val)
			return nil
		}); err != nil {
			return fmt.Errorf("read id counter: %w", err)
		}
	}

	if id >= next {
		return tx.setSeq(collection, id+1)
	}
	return nil
}

func (tx *Tx) setSeq(collection string, next uint64) error {
	if err := tx.txn.Set(seqKey(collection), binary.BigEndian.AppendUint64(nil, next)); err != nil {
		return fmt.Errorf("write id counter: %w", err)
	}
	return nil
}

// Add assigns a fresh id and writes the record and its index entries.
func (tx *Tx) Add(collection string, rec Record) (uint64, error) {
	c, err := tx.collection(collection)
	if err != nil {
		return 0, err
	}

	id, err := tx.nextID(collection)
	if err != nil {
		return 0, err
	}
	rec.SetRecordID(id)

	if err := tx.write(c, id, rec); err != nil {
		return 0, err
	}
	return id, nil
}

// Put upserts the record under its current id. A zero id is treated as Add.
// Existing index entries for a previous version are dropped first.
func (tx *Tx) Put(collection string, rec Record) error {
	c, err := tx.collection(collection)
	if err != nil {
		return err
	}

	id := rec.RecordID()
	if id == 0 {
		_, err := tx.Add(collection, rec)
		return err
	}

	old, found, err := tx.rawGet(collection, id)
	if err != nil {
		return err
	}
	if found {
		if err := tx.dropIndexEntries(c, id, old); err != nil {
			return err
		}
	}
	if err := tx.bumpSeq(collection, id); err != nil {
		return err
	}

	return tx.write(c, id, rec)
}

// Get loads the record with the given id into out.
func (tx *Tx) Get(collection string, id uint64, out Record) (bool, error) {
	if _, err := tx.collection(collection); err != nil {
		return false, err
	}

	data, found, err := tx.rawGet(collection, id)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode %s/%d: %w", collection, id, err)
	}
	return true, nil
}

// Delete removes the record and its index entries. Missing ids are a no-op.
func (tx *Tx) Delete(collection string, id uint64) error {
	c, err := tx.collection(collection)
	if err != nil {
		return err
	}

	old, found, err := tx.rawGet(collection, id)
	if err != nil || !found {
		return err
	}
	if err := tx.dropIndexEntries(c, id, old); err != nil {
		return err
	}
	if err := tx.txn.Delete(recKey(collection, id)); err != nil {
		return fmt.Errorf("delete %s/%d: %w", collection, id, err)
	}
	return nil
}

// Count returns the number of records in the collection.
func (tx *Tx) Count(collection string) (int, error) {
	if _, err := tx.collection(collection); err != nil {
		return 0, err
	}

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	prefix := recPrefix(collection)
	opts.Prefix = prefix

	it := tx.txn.NewIterator(opts)
	defer it.Close()

	n := 0
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		n++
	}
	return n, nil
}

// ForEach scans every record in the collection in id order.
func (tx *Tx) ForEach(collection string, fn func(id uint64, data []byte) error) error {
	if _, err := tx.collection(collection); err != nil {
		return err
	}

	opts := badger.DefaultIteratorOptions
	prefix := recPrefix(collection)
	opts.Prefix = prefix

	it := tx.txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		id := idFromKey(item.Key())
		data, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read %s/%d: %w", collection, id, err)
		}
		if err := fn(id, data); err != nil {
			return err
		}
	}
	return nil
}

// ByIndex visits each record whose indexed field equals value.
func (tx *Tx) ByIndex(collection, field, value string, fn func(id uint64, data []byte) error) error {
	c, err := tx.collection(collection)
	if err != nil {
		return err
	}
	if !c.indexed(field) {
		return fmt.Errorf("collection %s has no index on %q", collection, field)
	}

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	prefix := []byte(idxPrefix(collection, field, value))
	opts.Prefix = prefix

	it := tx.txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		id := idFromKey(it.Item().Key())
		data, found, err := tx.rawGet(collection, id)
		if err != nil {
			return err
		}
		if !found {
			continue
		}
		if err := fn(id, data); err != nil {
			return err
		}
	}
	return nil
}

// Meta reads a metadata value inside the transaction.
func (tx *Tx) Meta(key string) ([]byte, bool, error) {
	item, err := tx.txn.Get(metaKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read meta %s: %w", key, err)
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, false, fmt.Errorf("read meta %s: %w", key, err)
	}
	return val, true, nil
}

// SetMeta writes a metadata value inside the transaction.
func (tx *Tx) SetMeta(key string, val []byte) error {
	if err := tx.txn.Set(metaKey(key), val); err != nil {
		return fmt.Errorf("write meta %s: %w", key, err)
	}
	return nil
}

func (tx *Tx) rawGet(collection string, id uint64) ([]byte, bool, error) {
	item, err := tx.txn.Get(recKey(collection, id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s/%d: %w", collection, id, err)
	}
	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, false, fmt.Errorf("get %s/%d: %w", collection, id, err)
	}
	return data, true, nil
}

func (tx *Tx) write(c Collection, id uint64, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s/%d: %w", c.Name, id, err)
	}
	if err := tx.txn.Set(recKey(c.Name, id), data); err != nil {
		return fmt.Errorf("write %s/%d: %w", c.Name, id, err)
	}

	for field, value := range indexValues(c, data) {
		if err := tx.txn.Set(idxKey(c.Name, field, value, id), nil); err != nil {
			return fmt.Errorf("index %s/%d on %s: %w", c.Name, id, field, err)
		}
	}
	return nil
}

func (tx *Tx) dropIndexEntries(c Collection, id uint64, data []byte) error {
	for field, value := range indexValues(c, data) {
		if err := tx.txn.Delete(idxKey(c.Name, field, value, id)); err != nil {
			return fmt.Errorf("unindex %s/%d on %s: %w", c.Name, id, field, err)
		}
	}
	return nil
}

func (c Collection) indexed(field string) bool {
	for _, f := range c.Indexes {
		if f == field {
			return true
		}
	}
	return false
}

// indexValues extracts the string values of a collection's indexed fields
// from an encoded record. Only string fields participate; the store offers
// equality lookups, not range queries.
func indexValues(c Collection, data []byte) map[string]string {
	if len(c.Indexes) == 0 {
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	values := make(map[string]string, len(c.Indexes))
	for _, field := range c.Indexes {
		if s, ok := fields[field].(string); ok {
			values[field] = s
		}
	}
	return values
}

func idFromKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key[len(key)-8:])
}
