package engine

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/gcbaptista/go-survey-catalog/internal/catalog"
	"github.com/gcbaptista/go-survey-catalog/model"
)

// ImportEntriesAsync validates entries and upserts them in a background job.
// Entries are written in batches, so a cancelled or failed job may leave earlier batches stored.
func (e *Engine) ImportEntriesAsync(catalogName string, entries []model.Entry) (string, error) {
	if _, err := e.store.GetCatalog(catalogName); err != nil {
		return "", err
	}
	if err := catalog.ValidateEntries(entries); err != nil {
		return "", err
	}

	batch := model.CloneEntries(entries)
	jobID := e.jobManager.CreateJob(model.JobTypeImportEntries, catalogName, map[string]string{
		"operation":   "import_entries",
		"entry_count": strconv.Itoa(len(batch)),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job model.Job) error {
		return e.executeImportEntriesJob(ctx, catalogName, batch, job.ID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start import entries job: %w", err)
	}
	return jobID, nil
}

func (e *Engine) executeImportEntriesJob(ctx context.Context, catalogName string, entries []model.Entry, jobID string) error {
	total := len(entries)
	e.jobManager.UpdateJobProgress(jobID, 0, total, "Starting entry import")

	for start := 0; start < total; start += importBatchSize {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("import into catalog '%s' stopped after %d of %d entries: %w", catalogName, start, total, err)
		}

		end := start + importBatchSize
		if end > total {
			end = total
		}
		if _, err := e.store.AddEntries(catalogName, entries[start:end]); err != nil {
			return fmt.Errorf("failed to import entries %d-%d into catalog '%s': %w", start, end-1, catalogName, err)
		}
		e.jobManager.UpdateJobProgress(jobID, end, total, fmt.Sprintf("Imported %d of %d entries", end, total))
	}

	log.Printf("Info: Imported %d entries into catalog '%s' (async).", total, catalogName)
	return nil
}

// DeleteAllEntriesAsync empties a catalog in a background job.
func (e *Engine) DeleteAllEntriesAsync(catalogName string) (string, error) {
	if _, err := e.store.GetCatalog(catalogName); err != nil {
		return "", err
	}

	jobID := e.jobManager.CreateJob(model.JobTypeDeleteAllEntries, catalogName, map[string]string{
		"operation": "delete_all_entries",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job model.Job) error {
		e.jobManager.UpdateJobProgress(job.ID, 0, 1, "Deleting all entries")
		if err := e.store.DeleteAllEntries(catalogName); err != nil {
			return fmt.Errorf("failed to delete entries of catalog '%s': %w", catalogName, err)
		}
		e.jobManager.UpdateJobProgress(job.ID, 1, 1, "All entries deleted")
		log.Printf("Info: All entries deleted from catalog '%s' (async).", catalogName)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start delete all entries job: %w", err)
	}
	return jobID, nil
}
