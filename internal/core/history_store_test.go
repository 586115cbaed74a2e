package core

import (
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"minifyall/internal/sizes"
	"minifyall/internal/state"
	"minifyall/pkg/document"
)

func sampleEntries() state.History {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return state.History{
		state.NewEntry("a.css", "a-min.css", document.CSS, sizes.Report{Original: 10, Minified: 5}, now),
		state.NewEntry("b.js", "b.js", document.JavaScript, sizes.Report{Original: 30, Minified: 12}, now.Add(time.Second)),
	}
}

func exerciseStore(t *testing.T, store HistoryStore) {
	t.Helper()
	entries := sampleEntries()
	for _, e := range entries {
		if err := store.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(entries, loaded) {
		t.Errorf("Loaded history does not match.\nGot:  %+v\nWant: %+v", loaded, entries)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	loaded, err = store.Load()
	if err != nil {
		t.Fatalf("Load after Clear failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty history after Clear, got %d entries", len(loaded))
	}
}

func TestInMemoryHistoryStore_Basic(t *testing.T) {
	exerciseStore(t, NewInMemoryHistoryStore())
}

func TestFileHistoryStore_Basic(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "history.json")
	exerciseStore(t, NewFileHistoryStore(file))
}

func TestInMemoryHistoryStore_LoadReturnsCopy(t *testing.T) {
	store := NewInMemoryHistoryStore()
	_ = store.Append(sampleEntries()[0])

	loaded, _ := store.Load()
	loaded[0].Path = "changed"

	again, _ := store.Load()
	if again[0].Path != "a.css" {
		t.Errorf("store was mutated through Load result: %q", again[0].Path)
	}
}

func TestFileHistoryStore_ConcurrentAppend(t *testing.T) {
	store := NewFileHistoryStore(filepath.Join(t.TempDir(), "history.json"))
	e := sampleEntries()[0]

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Append(e); err != nil {
				t.Errorf("Append failed: %v", err)
			}
		}()
	}
	wg.Wait()

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 10 {
		t.Errorf("expected 10 entries, got %d", len(loaded))
	}
}
