package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/waketrack/internal/constants"
)

type document struct {
	Version int               `json:"version"`
	Data    map[string]string `json:"data"`
}

// JSONStore persists the whole namespace as a single JSON file, rewritten on every change.
type JSONStore struct {
	path string

	mu  sync.RWMutex
	doc *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &document{Version: 1, Data: make(map[string]string)}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Data == nil {
		doc.Data = make(map[string]string)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Describe() string { return s.path }

// save writes to a temp file and renames it over the original. Callers hold mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return "", false, ErrNotLoaded
	}
	v, ok := s.doc.Data[key]
	return v, ok, nil
}

func (s *JSONStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return ErrNotLoaded
	}
	prev, existed := s.doc.Data[key]
	s.doc.Data[key] = value
	if err := s.save(); err != nil {
		if existed {
			s.doc.Data[key] = prev
		} else {
			delete(s.doc.Data, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return ErrNotLoaded
	}
	prev, existed := s.doc.Data[key]
	if !existed {
		return nil
	}
	delete(s.doc.Data, key)
	if err := s.save(); err != nil {
		s.doc.Data[key] = prev
		return err
	}
	return nil
}

func (s *JSONStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	return filterKeys(s.doc.Data, prefix), nil
}
