// Package storage is the demo-mode persistence adapter: JSON-file
// collections standing in for the hosted backend when none is configured.
// It serves the same repository contracts as the SQLite store, but there is
// no schema underneath, so every read filters by the explicit user_id field
// carried on each record.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	projectsFile = "projects.json"
	entriesFile  = "entries.json"
	usersFile    = "users.json"
)

// Store owns the demo data directory. Collection access goes through the
// Projects/Entries/Profiles views, which share one lock; the store assumes
// a single process.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating demo data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Projects returns the project collection view.
func (s *Store) Projects() *ProjectStore { return &ProjectStore{s: s} }

// Entries returns the time-entry collection view.
func (s *Store) Entries() *EntryStore { return &EntryStore{s: s} }

// Profiles returns the user collection view.
func (s *Store) Profiles() *ProfileStore { return &ProfileStore{s: s} }

// readCollection loads a JSON array file into out. A missing file yields an
// empty collection, not an error.
func readCollection(path string, out any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("corrupt JSON in %s: %w", path, err)
	}
	return nil
}

// writeCollection atomically replaces a collection file: write to a temp
// file, then rename over the target.
func writeCollection(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}
