// Package postgres persists observation sets in PostgreSQL. Rows are stored
// as JSON cell arrays keyed by dataset, preserving insertion order, so a
// loaded frame is byte-for-byte the frame that was saved.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"climatelab/domain/core"
	"climatelab/domain/table"
	"climatelab/ports"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the repository schema.
func Migrate(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS datasets (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			columns    JSONB NOT NULL,
			row_count  INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS observations (
			dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
			row_index  INTEGER NOT NULL,
			cells      JSONB NOT NULL,
			PRIMARY KEY (dataset_id, row_index)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// observationRepository implements ports.ObservationRepository
type observationRepository struct {
	db *sqlx.DB
}

// NewObservationRepository creates a Postgres-backed observation repository.
func NewObservationRepository(db *sqlx.DB) ports.ObservationRepository {
	return &observationRepository{db: db}
}

// Save stores a frame under a fresh dataset ID inside one transaction.
func (r *observationRepository) Save(ctx context.Context, name string, frame *table.Frame) (core.DatasetID, error) {
	id := core.NewDatasetID()

	columnsJSON, err := json.Marshal(frame.Columns)
	if err != nil {
		return "", fmt.Errorf("failed to marshal columns: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO datasets (id, name, columns, row_count) VALUES ($1, $2, $3, $4)`,
		id, name, columnsJSON, frame.Len(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create dataset: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO observations (dataset_id, row_index, cells) VALUES ($1, $2, $3)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range frame.Rows {
		cellsJSON, err := json.Marshal(row)
		if err != nil {
			return "", fmt.Errorf("failed to marshal row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, id, i, cellsJSON); err != nil {
			return "", fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit dataset: %w", err)
	}
	return id, nil
}

// Load reconstructs a stored frame in its original row order.
func (r *observationRepository) Load(ctx context.Context, id core.DatasetID) (*table.Frame, error) {
	var columnsJSON []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT columns FROM datasets WHERE id = $1`, id).Scan(&columnsJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", core.ErrDatasetNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	var columns []string
	if err := json.Unmarshal(columnsJSON, &columns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
	}
	frame := table.New(columns)

	rows, err := r.db.QueryContext(ctx,
		`SELECT cells FROM observations WHERE dataset_id = $1 ORDER BY row_index`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load observations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cellsJSON []byte
		if err := rows.Scan(&cellsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var cells []string
		if err := json.Unmarshal(cellsJSON, &cells); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cells: %w", err)
		}
		if err := frame.Append(cells); err != nil {
			return nil, err
		}
	}
	return frame, rows.Err()
}

// List returns stored datasets, newest first.
func (r *observationRepository) List(ctx context.Context) ([]ports.DatasetInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, columns, row_count, created_at FROM datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var out []ports.DatasetInfo
	for rows.Next() {
		var info ports.DatasetInfo
		var columnsJSON []byte
		if err := rows.Scan(&info.ID, &info.Name, &columnsJSON, &info.RowCount, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		if err := json.Unmarshal(columnsJSON, &info.Columns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes a dataset and its observations.
func (r *observationRepository) Delete(ctx context.Context, id core.DatasetID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", core.ErrDatasetNotFound, id)
	}
	return nil
}
