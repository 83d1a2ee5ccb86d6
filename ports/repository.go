// Package ports defines the interfaces the application core depends on.
// Adapters (Postgres, the filesystem reader) implement them.
package ports

import (
	"context"
	"time"

	"climatelab/domain/core"
	"climatelab/domain/table"
)

// DatasetInfo describes a stored observation set
type DatasetInfo struct {
	ID        core.DatasetID `json:"id"`
	Name      string         `json:"name"`
	RowCount  int            `json:"row_count"`
	Columns   []string       `json:"columns"`
	CreatedAt time.Time      `json:"created_at"`
}

// ObservationRepository persists observation frames under dataset IDs.
// File-based CSV remains the primary path; the repository is the optional
// database-backed alternative.
type ObservationRepository interface {
	Save(ctx context.Context, name string, frame *table.Frame) (core.DatasetID, error)
	Load(ctx context.Context, id core.DatasetID) (*table.Frame, error)
	List(ctx context.Context) ([]DatasetInfo, error)
	Delete(ctx context.Context, id core.DatasetID) error
}
