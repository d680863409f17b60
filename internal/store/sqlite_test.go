package store

import (
	"path/filepath"
	"testing"
)

func newSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// SQLite port
// ============================================================

func TestSQLiteSetGet(t *testing.T) {
	s := newSQLite(t)

	if err := s.Set("user_Alice", `{"version":2,"logs":[]}`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get("user_Alice")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("key should exist")
	}
	if v != `{"version":2,"logs":[]}` {
		t.Fatalf("value = %q", v)
	}
}

func TestSQLiteGetMissing(t *testing.T) {
	s := newSQLite(t)
	_, ok, err := s.Get("nope")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("missing key should report not found, not error")
	}
}

func TestSQLiteSetOverwrites(t *testing.T) {
	s := newSQLite(t)
	s.Set("k", "one")
	s.Set("k", "two")
	v, _, _ := s.Get("k")
	if v != "two" {
		t.Fatalf("value = %q, want two", v)
	}
}

func TestSQLiteDelete(t *testing.T) {
	s := newSQLite(t)
	s.Set("k", "v")
	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Fatal("deleted key should be gone")
	}
	// Deleting a missing key is not an error.
	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
}

func TestSQLiteKeysPrefix(t *testing.T) {
	s := newSQLite(t)
	s.Set("user_Bob", "1")
	s.Set("user_Alice", "1")
	s.Set("settings_Alice", "1")

	keys, err := s.Keys("user_")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "user_Alice" || keys[1] != "user_Bob" {
		t.Fatalf("keys = %v, want sorted [user_Alice user_Bob]", keys)
	}
}

func TestSQLiteKeysEscapesWildcards(t *testing.T) {
	s := newSQLite(t)
	s.Set("user_Alice", "1")
	s.Set("userXAlice", "1")

	// "_" in the prefix must match literally, not as a LIKE wildcard.
	keys, err := s.Keys("user_")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != "user_Alice" {
		t.Fatalf("keys = %v, want [user_Alice]", keys)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "workie.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Set("user_Alice", "data")
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, ok, _ := s2.Get("user_Alice")
	if !ok || v != "data" {
		t.Fatalf("got (%q, %v), want (data, true)", v, ok)
	}
}

func TestSQLiteMigrationIdempotent(t *testing.T) {
	s := newSQLite(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

// ============================================================
// Store over SQLite (end to end)
// ============================================================

func TestStoreOverSQLite(t *testing.T) {
	db := newSQLite(t)
	s := New(db)

	if err := s.Login("Alice"); err != nil {
		t.Fatal(err)
	}
	log, err := s.AddLog(testDraft("2024-03-04"))
	if err != nil {
		t.Fatal(err)
	}

	s2 := New(db)
	if err := s2.Login("Alice"); err != nil {
		t.Fatal(err)
	}
	logs := s2.Logs()
	if len(logs) != 1 || logs[0].ID != log.ID {
		t.Fatalf("expected log back from sqlite, got %+v", logs)
	}
}
