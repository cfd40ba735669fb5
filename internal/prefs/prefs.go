// Package prefs persists small per-installation state that lives outside the
// backing store, such as which tender was active when the last session ended.
package prefs

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// activeTenderKey is the fixed key the active tender pointer is stored under.
const activeTenderKey = "govSupplyActiveTender"

// Store is a JSON file of string keys. Values are read at startup and must
// be revalidated against fresh data before use.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// ActiveTenderId returns the persisted active tender id, or "" when none is
// stored or the file does not exist yet.
func (s *Store) ActiveTenderId() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", err
	}

	return values[activeTenderKey], nil
}

// SetActiveTenderId persists the active tender id. An empty id clears it.
func (s *Store) SetActiveTenderId(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}

	if id == "" {
		delete(values, activeTenderKey)
	} else {
		values[activeTenderKey] = id
	}

	return s.write(values)
}

func (s *Store) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}

		return nil, err
	}

	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		// a corrupt prefs file is not worth failing startup over
		return map[string]string{}, nil
	}

	return values, nil
}

func (s *Store) write(values map[string]string) error {
	raw, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(s.path, raw, 0o644)
}
