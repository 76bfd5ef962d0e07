// Package catalog loads and stores lookup catalogs and their entries.
package catalog

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-survey-catalog/config"
	"github.com/gcbaptista/go-survey-catalog/internal/errors"
	"github.com/gcbaptista/go-survey-catalog/model"
)

// Store interface for catalog persistence
type Store interface {
	CreateCatalog(settings config.CatalogSettings) (model.Catalog, error)
	GetCatalog(name string) (model.Catalog, error)
	ListCatalogs() []model.Catalog
	UpdateSettings(name string, settings config.CatalogSettings) (model.Catalog, error)
	DeleteCatalog(name string) error

	AddEntries(name string, entries []model.Entry) ([]model.Entry, error)
	GetEntry(name, entryID string) (model.Entry, error)
	ListEntries(name string, offset, limit int) ([]model.Entry, int, error)
	DeleteEntry(name, entryID string) error
	DeleteAllEntries(name string) error

	// Entries returns a copy of every entry in stored order together with the catalog settings.
	Entries(name string) ([]model.Entry, config.CatalogSettings, error)
}

// record is the stored form of one catalog.
type record struct {
	Settings  config.CatalogSettings `json:"settings"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
	Entries   []model.Entry          `json:"entries"`

	positions map[string]int
}

func (r *record) reindex() {
	r.positions = make(map[string]int, len(r.Entries))
	for i, e := range r.Entries {
		if id, ok := e.GetEntryID(); ok {
			r.positions[id] = i
		}
	}
}

// clone copies the record so a mutation can be staged and thrown away if it can't be persisted.
// Stored entry maps are never modified in place, so sharing them is safe.
func (r *record) clone() *record {
	c := &record{
		Settings:  r.Settings,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Entries:   make([]model.Entry, len(r.Entries)),
		positions: make(map[string]int, len(r.positions)),
	}
	copy(c.Entries, r.Entries)
	for k, v := range r.positions {
		c.positions[k] = v
	}
	c.Settings.Fields = append([]string{}, r.Settings.Fields...)
	return c
}

func (r *record) describe() model.Catalog {
	settings := r.Settings
	settings.Fields = append([]string{}, r.Settings.Fields...)
	return model.Catalog{
		Settings:   settings,
		EntryCount: len(r.Entries),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// persistence hooks; nil for a purely in-memory store
type persister interface {
	save(name string, rec *record) error
	remove(name string) error
}

// MemoryStore is an in-memory implementation of the Store interface
type MemoryStore struct {
	catalogs map[string]*record
	mutex    sync.RWMutex
	backend  persister
}

// NewMemoryStore creates a new in-memory catalog store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		catalogs: make(map[string]*record),
	}
}

// CreateCatalog creates an empty catalog
func (s *MemoryStore) CreateCatalog(settings config.CatalogSettings) (model.Catalog, error) {
	settings.ApplyDefaults()
	if err := validateSettings(settings); err != nil {
		return model.Catalog{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.catalogs[settings.Name]; exists {
		return model.Catalog{}, errors.NewCatalogAlreadyExistsError(settings.Name)
	}

	now := time.Now()
	rec := &record{
		Settings:  settings,
		CreatedAt: now,
		UpdatedAt: now,
		Entries:   make([]model.Entry, 0),
		positions: make(map[string]int),
	}
	if err := s.persist(settings.Name, rec); err != nil {
		return model.Catalog{}, err
	}
	s.catalogs[settings.Name] = rec
	return rec.describe(), nil
}

// GetCatalog retrieves a catalog description by name
func (s *MemoryStore) GetCatalog(name string) (model.Catalog, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rec, exists := s.catalogs[name]
	if !exists {
		return model.Catalog{}, errors.NewCatalogNotFoundError(name)
	}
	return rec.describe(), nil
}

// ListCatalogs lists all catalogs sorted by name
func (s *MemoryStore) ListCatalogs() []model.Catalog {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	catalogs := make([]model.Catalog, 0, len(s.catalogs))
	for _, rec := range s.catalogs {
		catalogs = append(catalogs, rec.describe())
	}
	sort.Slice(catalogs, func(i, j int) bool {
		return catalogs[i].Settings.Name < catalogs[j].Settings.Name
	})
	return catalogs
}

// UpdateSettings replaces the settings of an existing catalog. The name can't change.
func (s *MemoryStore) UpdateSettings(name string, settings config.CatalogSettings) (model.Catalog, error) {
	if settings.Name != "" && settings.Name != name {
		return model.Catalog{}, errors.NewValidationError("name", "cannot change catalog name from '"+name+"' to '"+settings.Name+"'")
	}
	settings.Name = name
	settings.ApplyDefaults()
	if err := validateSettings(settings); err != nil {
		return model.Catalog{}, err
	}

	var updated model.Catalog
	err := s.mutate(name, func(rec *record) error {
		rec.Settings = settings
		updated = rec.describe()
		return nil
	})
	if err != nil {
		return model.Catalog{}, err
	}
	return updated, nil
}

// DeleteCatalog deletes a catalog and all of its entries
func (s *MemoryStore) DeleteCatalog(name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.catalogs[name]; !exists {
		return errors.NewCatalogNotFoundError(name)
	}
	if s.backend != nil {
		if err := s.backend.remove(name); err != nil {
			return err
		}
	}
	delete(s.catalogs, name)
	return nil
}

// AddEntries upserts entries by entryID, generating an ID for entries without one.
// New entries are appended; existing ones are replaced in place and keep their position.
func (s *MemoryStore) AddEntries(name string, entries []model.Entry) ([]model.Entry, error) {
	prepared, err := prepareEntries(entries)
	if err != nil {
		return nil, err
	}

	err = s.mutate(name, func(rec *record) error {
		for _, e := range prepared {
			id, _ := e.GetEntryID()
			if pos, exists := rec.positions[id]; exists {
				rec.Entries[pos] = e
				continue
			}
			rec.positions[id] = len(rec.Entries)
			rec.Entries = append(rec.Entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return model.CloneEntries(prepared), nil
}

// GetEntry retrieves one entry by ID
func (s *MemoryStore) GetEntry(name, entryID string) (model.Entry, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rec, exists := s.catalogs[name]
	if !exists {
		return nil, errors.NewCatalogNotFoundError(name)
	}
	pos, exists := rec.positions[entryID]
	if !exists {
		return nil, errors.NewEntryNotFoundError(entryID, name)
	}
	return rec.Entries[pos].Clone(), nil
}

// ListEntries returns a page of entries in stored order and the total number of entries.
// A limit of zero or less returns everything from offset on.
func (s *MemoryStore) ListEntries(name string, offset, limit int) ([]model.Entry, int, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rec, exists := s.catalogs[name]
	if !exists {
		return nil, 0, errors.NewCatalogNotFoundError(name)
	}

	total := len(rec.Entries)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return model.CloneEntries(rec.Entries[offset:end]), total, nil
}

// DeleteEntry deletes one entry by ID
func (s *MemoryStore) DeleteEntry(name, entryID string) error {
	return s.mutate(name, func(rec *record) error {
		pos, exists := rec.positions[entryID]
		if !exists {
			return errors.NewEntryNotFoundError(entryID, name)
		}
		rec.Entries = append(rec.Entries[:pos], rec.Entries[pos+1:]...)
		rec.reindex()
		return nil
	})
}

// DeleteAllEntries empties a catalog but keeps its settings
func (s *MemoryStore) DeleteAllEntries(name string) error {
	return s.mutate(name, func(rec *record) error {
		rec.Entries = make([]model.Entry, 0)
		rec.positions = make(map[string]int)
		return nil
	})
}

// Entries returns a snapshot of the catalog for matching
func (s *MemoryStore) Entries(name string) ([]model.Entry, config.CatalogSettings, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rec, exists := s.catalogs[name]
	if !exists {
		return nil, config.CatalogSettings{}, errors.NewCatalogNotFoundError(name)
	}
	return model.CloneEntries(rec.Entries), rec.describe().Settings, nil
}

// mutate stages fn on a copy of the catalog, persists the copy and only then swaps it in.
// If fn or persistence fails the stored catalog is left untouched.
func (s *MemoryStore) mutate(name string, fn func(rec *record) error) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	current, exists := s.catalogs[name]
	if !exists {
		return errors.NewCatalogNotFoundError(name)
	}

	staged := current.clone()
	if err := fn(staged); err != nil {
		return err
	}
	staged.UpdatedAt = time.Now()

	if err := s.persist(name, staged); err != nil {
		return err
	}
	s.catalogs[name] = staged
	return nil
}

func (s *MemoryStore) persist(name string, rec *record) error {
	if s.backend == nil {
		return nil
	}
	return s.backend.save(name, rec)
}

// validateSettings turns settings problems into a single validation error
func validateSettings(settings config.CatalogSettings) error {
	if problems := settings.Validate(); len(problems) > 0 {
		return errors.NewValidationError("settings", strings.Join(problems, "; "))
	}
	return nil
}

// ValidateEntries checks a batch of incoming entries without storing anything
func ValidateEntries(entries []model.Entry) error {
	if len(entries) == 0 {
		return errors.NewValidationError("entries", "no entries provided")
	}
	for i, e := range entries {
		if err := validateEntry(i, e); err != nil {
			return err
		}
	}
	return nil
}

func validateEntry(i int, e model.Entry) error {
	if e == nil {
		return errors.NewValidationError(entryField(i), "entry must be an object")
	}
	rawID, hasID := e[model.EntryIDField]
	if !hasID || rawID == nil {
		return nil
	}
	id, ok := rawID.(string)
	if !ok {
		return errors.NewValidationError(entryField(i)+".entryID", "entry ID must be a string")
	}
	if strings.TrimSpace(id) == "" {
		return errors.NewValidationError(entryField(i)+".entryID", "entry ID cannot be empty")
	}
	if strings.TrimSpace(id) != id {
		return errors.NewValidationError(entryField(i)+".entryID", "entry ID cannot have leading or trailing whitespace")
	}
	return nil
}

// prepareEntries copies incoming entries, assigns missing IDs and rejects malformed ones.
// A batch that repeats an ID keeps the last occurrence.
func prepareEntries(entries []model.Entry) ([]model.Entry, error) {
	if err := ValidateEntries(entries); err != nil {
		return nil, err
	}

	prepared := make([]model.Entry, 0, len(entries))
	seen := make(map[string]int, len(entries))
	for _, e := range entries {
		entry := e.Clone()
		if raw, hasID := entry[model.EntryIDField]; !hasID || raw == nil {
			entry[model.EntryIDField] = uuid.New().String()
		}

		id, _ := entry.GetEntryID()
		if pos, dup := seen[id]; dup {
			prepared[pos] = entry
			continue
		}
		seen[id] = len(prepared)
		prepared = append(prepared, entry)
	}
	return prepared, nil
}

func entryField(i int) string {
	return "entries[" + strconv.Itoa(i) + "]"
}
