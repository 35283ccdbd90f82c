// ABOUTME: Tests for the record store: ids, upsert, indexes, batches.
// ABOUTME: Runs against an in-memory Badger instance.
package store

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

type rec struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

func (r *rec) RecordID() uint64      { return r.ID }
func (r *rec) SetRecordID(id uint64) { r.ID = id }

var testCollections = []Collection{
	{Name: "things", Indexes: []string{"group"}},
	{Name: "plain"},
}

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := InMemory(testCollections)
	if err != nil {
		t.Fatalf("InMemory failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddAssignsIncreasingIDs(t *testing.T) {
	s := setupStore(t)

	var last uint64
	for i := 0; i < 5; i++ {
		id, err := s.Add("things", &rec{Name: "a", Group: "g"})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if id <= last {
			t.Errorf("id %d not greater than previous %d", id, last)
		}
		last = id
	}
	if last != 5 {
		t.Errorf("expected ids 1..5, last was %d", last)
	}
}

func TestIDsNeverReusedAfterDelete(t *testing.T) {
	s := setupStore(t)

	id1, _ := s.Add("things", &rec{Name: "a", Group: "g"})
	if err := s.Delete("things", id1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	id2, err := s.Add("things", &rec{Name: "b", Group: "g"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("id %d reused after delete of %d", id2, id1)
	}
}

func TestGetAbsentIsNotAnError(t *testing.T) {
	s := setupStore(t)

	var out rec
	found, err := s.Get("things", 42, &out)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("expected absent record")
	}
}

func TestDeleteMissingIsNoOp(t *testing.T) {
	s := setupStore(t)

	if err := s.Delete("things", 99); err != nil {
		t.Errorf("Delete of missing id should succeed, got %v", err)
	}
}

func TestPutUpserts(t *testing.T) {
	s := setupStore(t)

	// Insert with an explicit id that was never assigned.
	if err := s.Put("things", &rec{ID: 7, Name: "imported", Group: "g"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var out rec
	found, err := s.Get("things", 7, &out)
	if err != nil || !found {
		t.Fatalf("Get after Put: found=%v err=%v", found, err)
	}
	if out.Name != "imported" {
		t.Errorf("Name = %q, want %q", out.Name, "imported")
	}

	// Overwrite in place.
	if err := s.Put("things", &rec{ID: 7, Name: "renamed", Group: "g"}); err != nil {
		t.Fatalf("Put overwrite failed: %v", err)
	}
	if _, err := s.Get("things", 7, &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out.Name != "renamed" {
		t.Errorf("Name = %q, want %q", out.Name, "renamed")
	}

	n, err := s.Count("things")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestPutAdvancesIDCounter(t *testing.T) {
	s := setupStore(t)

	if err := s.Put("things", &rec{ID: 10, Name: "imported", Group: "g"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	id, err := s.Add("things", &rec{Name: "fresh", Group: "g"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id <= 10 {
		t.Errorf("Add assigned %d, want > 10 after explicit Put", id)
	}
}

func TestPutZeroIDBehavesLikeAdd(t *testing.T) {
	s := setupStore(t)

	r := &rec{Name: "new", Group: "g"}
	if err := s.Put("things", r); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if r.ID == 0 {
		t.Error("expected Put to assign an id")
	}
}

func TestByIndex(t *testing.T) {
	s := setupStore(t)

	for _, r := range []*rec{
		{Name: "a", Group: "legs"},
		{Name: "b", Group: "legs"},
		{Name: "c", Group: "chest"},
	} {
		if _, err := s.Add("things", r); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	var names []string
	err := s.ByIndex("things", "group", "legs", func(id uint64, data []byte) error {
		var r rec
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		names = append(names, r.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("ByIndex failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 matches, got %d (%v)", len(names), names)
	}

	// No matches is an empty result, not an error.
	count := 0
	err = s.ByIndex("things", "group", "nosuch", func(uint64, []byte) error {
		count++
		return nil
	})
	if err != nil || count != 0 {
		t.Errorf("expected empty result, got count=%d err=%v", count, err)
	}
}

func TestIndexFollowsUpdates(t *testing.T) {
	s := setupStore(t)

	r := &rec{Name: "a", Group: "legs"}
	id, _ := s.Add("things", r)

	r.Group = "chest"
	if err := s.Put("things", r); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	count := 0
	_ = s.ByIndex("things", "group", "legs", func(uint64, []byte) error {
		count++
		return nil
	})
	if count != 0 {
		t.Errorf("stale index entry for old group value")
	}

	_ = s.ByIndex("things", "group", "chest", func(gotID uint64, _ []byte) error {
		if gotID != id {
			t.Errorf("index points at %d, want %d", gotID, id)
		}
		count++
		return nil
	})
	if count != 1 {
		t.Errorf("expected 1 entry under new group value, got %d", count)
	}
}

func TestIndexClearedOnDelete(t *testing.T) {
	s := setupStore(t)

	id, _ := s.Add("things", &rec{Name: "a", Group: "legs"})
	if err := s.Delete("things", id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	count := 0
	_ = s.ByIndex("things", "group", "legs", func(uint64, []byte) error {
		count++
		return nil
	})
	if count != 0 {
		t.Errorf("index entry survived delete")
	}
}

func TestBatchIsAtomic(t *testing.T) {
	s := setupStore(t)

	boom := errors.New("boom")
	err := s.Batch(func(tx *Tx) error {
		if _, err := tx.Add("things", &rec{Name: "a", Group: "g"}); err != nil {
			return err
		}
		if _, err := tx.Add("things", &rec{Name: "b", Group: "g"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected batch error, got %v", err)
	}

	n, _ := s.Count("things")
	if n != 0 {
		t.Errorf("aborted batch left %d records", n)
	}

	// The id counter rolls back with the batch.
	id, err := s.Add("things", &rec{Name: "c", Group: "g"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id != 1 {
		t.Errorf("first committed id = %d, want 1", id)
	}
}

func TestUnknownCollection(t *testing.T) {
	s := setupStore(t)

	if _, err := s.Add("nope", &rec{}); !errors.Is(err, ErrUnknownCollection) {
		t.Errorf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestOpenPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gym", "data")

	s, err := Open(path, testCollections)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	id, err := s.Add("things", &rec{Name: "kept", Group: "g"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2, err := Open(path, testCollections)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	var out rec
	found, err := s2.Get("things", id, &out)
	if err != nil || !found {
		t.Fatalf("Get after reopen: found=%v err=%v", found, err)
	}
	if out.Name != "kept" {
		t.Errorf("Name = %q, want %q", out.Name, "kept")
	}

	// Counter survives reopen too.
	id2, _ := s2.Add("things", &rec{Name: "more", Group: "g"})
	if id2 <= id {
		t.Errorf("id %d after reopen not greater than %d", id2, id)
	}
}

func TestMeta(t *testing.T) {
	s := setupStore(t)

	_, found, err := s.Meta("version")
	if err != nil {
		t.Fatalf("Meta failed: %v", err)
	}
	if found {
		t.Error("expected no version key on fresh store")
	}

	if err := s.SetMeta("version", []byte("1")); err != nil {
		t.Fatalf("SetMeta failed: %v", err)
	}
	val, found, err := s.Meta("version")
	if err != nil || !found {
		t.Fatalf("Meta after SetMeta: found=%v err=%v", found, err)
	}
	if string(val) != "1" {
		t.Errorf("version = %q, want %q", val, "1")
	}
}
