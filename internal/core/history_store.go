package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"minifyall/internal/state"
)

// HistoryStore abstracts history persistence for testability.
type HistoryStore interface {
	Load() (state.History, error)
	Append(state.HistoryEntry) error
	Clear() error
}

// FileHistoryStore keeps the history in a JSON file.
type FileHistoryStore struct {
	File string
	mu   sync.Mutex
}

func NewFileHistoryStore(file string) *FileHistoryStore {
	return &FileHistoryStore{File: file}
}

func (fs *FileHistoryStore) Load() (state.History, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return state.LoadFromFile(fs.File)
}

func (fs *FileHistoryStore) Append(e state.HistoryEntry) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	h, err := state.LoadFromFile(fs.File)
	if err != nil {
		return fmt.Errorf("load history %s: %w", fs.File, err)
	}
	if err := os.MkdirAll(filepath.Dir(fs.File), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	return append(h, e).SaveToFile(fs.File)
}

func (fs *FileHistoryStore) Clear() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err := os.Remove(fs.File); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// InMemoryHistoryStore implements HistoryStore without disk I/O.
type InMemoryHistoryStore struct {
	mu      sync.Mutex
	entries state.History
}

func NewInMemoryHistoryStore() *InMemoryHistoryStore {
	return &InMemoryHistoryStore{}
}

func (ms *InMemoryHistoryStore) Load() (state.History, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	// Return a copy to avoid mutation
	cpy := make(state.History, len(ms.entries))
	copy(cpy, ms.entries)
	return cpy, nil
}

func (ms *InMemoryHistoryStore) Append(e state.HistoryEntry) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries = append(ms.entries, e)
	return nil
}

func (ms *InMemoryHistoryStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries = nil
	return nil
}
