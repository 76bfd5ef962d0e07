package model

import (
	"time"

	"github.com/gcbaptista/go-survey-catalog/config"
)

// Catalog describes a stored lookup table: its settings and bookkeeping about its rows.
type Catalog struct {
	Settings   config.CatalogSettings `json:"settings"`
	EntryCount int                    `json:"entry_count"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// MatchResult is the response of a match against one catalog.
type MatchResult struct {
	Entries     []Entry  `json:"entries"`
	Total       int      `json:"total"`
	CatalogSize int      `json:"catalog_size"`
	QueryFields []string `json:"query_fields"`
	Took        int64    `json:"took"`     // milliseconds
	QueryID     string   `json:"query_id"` // unique UUID for this match request
}
