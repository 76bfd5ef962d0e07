package catalog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gcbaptista/go-survey-catalog/internal/persistence"
	"github.com/gcbaptista/go-survey-catalog/model"
)

const catalogFileName = "catalog.json"

// FileStore is a file-based implementation of the Store interface.
// Each catalog lives in <dataDir>/<name>/catalog.json.
type FileStore struct {
	*MemoryStore
	dataDir string
}

// NewFileStore creates a file-backed store and loads every catalog found under dataDir
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store := &FileStore{
		MemoryStore: NewMemoryStore(),
		dataDir:     dataDir,
	}
	store.MemoryStore.backend = store

	if err := store.loadData(); err != nil {
		return nil, err
	}
	return store, nil
}

// DataDir returns the directory catalogs are persisted in
func (s *FileStore) DataDir() string {
	return s.dataDir
}

func (s *FileStore) catalogPath(name string) string {
	return filepath.Join(s.dataDir, name, catalogFileName)
}

func (s *FileStore) save(name string, rec *record) error {
	if err := persistence.SaveJSON(s.catalogPath(name), rec); err != nil {
		return fmt.Errorf("failed to persist catalog '%s': %w", name, err)
	}
	return nil
}

func (s *FileStore) remove(name string) error {
	if err := os.RemoveAll(filepath.Join(s.dataDir, name)); err != nil {
		return fmt.Errorf("failed to remove catalog '%s' from disk: %w", name, err)
	}
	return nil
}

// loadData loads every catalog directory. Unreadable catalogs are skipped so one bad file
// doesn't keep the others offline.
func (s *FileStore) loadData() error {
	dirEntries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return fmt.Errorf("failed to read data directory: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, dirEntry := range dirEntries {
		if !dirEntry.IsDir() {
			continue
		}
		name := dirEntry.Name()
		path := s.catalogPath(name)

		var rec record
		if err := persistence.LoadJSON(path, &rec); err != nil {
			if err == os.ErrNotExist {
				continue
			}
			log.Printf("Warning: Failed to load catalog from %s: %v. Skipping.", path, err)
			continue
		}

		if rec.Settings.Name != name {
			log.Printf("Warning: Catalog file %s declares name '%s', expected '%s'. Skipping.", path, rec.Settings.Name, name)
			continue
		}
		if problems := rec.Settings.Validate(); len(problems) > 0 {
			log.Printf("Warning: Catalog '%s' has invalid settings %v. Skipping.", name, problems)
			continue
		}
		if rec.Entries == nil {
			rec.Entries = make([]model.Entry, 0)
		}
		rec.reindex()
		s.catalogs[name] = &rec
		log.Printf("Info: Loaded catalog '%s' with %d entries", name, len(rec.Entries))
	}
	return nil
}
