// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     history
// Description: Tests for the SQLite history store
// License:     MIT
// ============================================================================

package history

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), maxEntries)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAddAndList(t *testing.T) {
	store := openTestStore(t, 100)

	id, err := store.Add(Entry{
		Spanish:    "hola mundo",
		English:    "hello world",
		Final:      "Hello world.",
		Enhanced:   true,
		DurationMs: 1200,
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if id == "" {
		t.Fatal("Add() should assign an id")
	}

	entries, err := store.List(10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("List() returned %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.Spanish != "hola mundo" || e.Final != "Hello world." || !e.Enhanced {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestRetentionCap(t *testing.T) {
	store := openTestStore(t, 5)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		_, err := store.Add(Entry{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Spanish:   fmt.Sprintf("frase %d", i),
			English:   "x",
			Final:     "x",
		})
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 5 {
		t.Errorf("Count() = %d, want cap of 5", n)
	}

	entries, err := store.List(10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	// the oldest entries were trimmed
	if entries[0].Spanish != "frase 7" {
		t.Errorf("newest entry = %q, want frase 7", entries[0].Spanish)
	}
	if entries[len(entries)-1].Spanish != "frase 3" {
		t.Errorf("oldest kept entry = %q, want frase 3", entries[len(entries)-1].Spanish)
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t, 10)

	store.Add(Entry{Spanish: "a", English: "b", Final: "c"})
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Count() after Clear = %d, want 0", n)
	}
}
