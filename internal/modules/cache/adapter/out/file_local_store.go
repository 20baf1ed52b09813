package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	cacheout "pti/internal/modules/cache/port/out"
	apperrors "pti/internal/platform/errors"
)

// FileLocalStore keeps every key in one JSON object file.
type FileLocalStore struct {
	path string
	mu   sync.Mutex
}

func NewFileLocalStore(path string) cacheout.LocalStore {
	return &FileLocalStore{path: path}
}

func (s *FileLocalStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := entries[key]
	return value, ok, nil
}

func (s *FileLocalStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, _, err := s.loadForWrite()
	if err != nil {
		return err
	}
	entries[key] = value
	return s.save(entries)
}

func (s *FileLocalStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, reset, err := s.loadForWrite()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok && !reset {
		return nil
	}
	delete(entries, key)
	return s.save(entries)
}

func (s *FileLocalStore) load() (map[string]string, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read cache file: %w", err)
	}
	entries := map[string]string{}
	if len(payload) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("decode cache file: %w: %v", apperrors.ErrInvalidRecord, err)
	}
	return entries, nil
}

// loadForWrite starts from an empty cache when the file is corrupt; reset
// reports that the next save replaces it.
func (s *FileLocalStore) loadForWrite() (entries map[string]string, reset bool, err error) {
	entries, err = s.load()
	if errors.Is(err, apperrors.ErrInvalidRecord) {
		return map[string]string{}, true, nil
	}
	return entries, false, err
}

func (s *FileLocalStore) save(entries map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache file: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}
