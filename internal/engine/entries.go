package engine

import (
	"log"

	"github.com/gcbaptista/go-survey-catalog/model"
)

// AddEntries upserts entries synchronously and returns them as stored
func (e *Engine) AddEntries(catalogName string, entries []model.Entry) ([]model.Entry, error) {
	stored, err := e.store.AddEntries(catalogName, entries)
	if err != nil {
		return nil, err
	}
	log.Printf("Info: Stored %d entries in catalog '%s'", len(stored), catalogName)
	return stored, nil
}

// GetEntry returns one entry
func (e *Engine) GetEntry(catalogName, entryID string) (model.Entry, error) {
	return e.store.GetEntry(catalogName, entryID)
}

// ListEntries returns a page of entries and the total count
func (e *Engine) ListEntries(catalogName string, offset, limit int) ([]model.Entry, int, error) {
	return e.store.ListEntries(catalogName, offset, limit)
}

// DeleteEntry deletes one entry
func (e *Engine) DeleteEntry(catalogName, entryID string) error {
	return e.store.DeleteEntry(catalogName, entryID)
}

// DeleteAllEntries empties a catalog synchronously
func (e *Engine) DeleteAllEntries(catalogName string) error {
	if err := e.store.DeleteAllEntries(catalogName); err != nil {
		return err
	}
	log.Printf("Info: All entries deleted from catalog '%s'", catalogName)
	return nil
}
