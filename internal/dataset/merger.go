package dataset

import (
	"strings"

	"climatelab/domain/core"
	"climatelab/domain/table"
)

// rowKeySep joins cells into a duplicate-detection key. The unit separator
// cannot appear in well-formed CSV cells, so two distinct rows never collide.
const rowKeySep = "\x1f"

// MergeResult contains the outcome of a merge operation
type MergeResult struct {
	Frame             *table.Frame `json:"-"`
	RowCount          int          `json:"row_count"`
	ColumnCount       int          `json:"column_count"`
	DuplicatesDropped int          `json:"duplicates_dropped"`
	Persisted         bool         `json:"persisted"`
	OutputPath        string       `json:"output_path,omitempty"`
}

// Merge combines a new batch of observations with an existing set. The result
// is the union with exact-duplicate rows collapsed to their first occurrence,
// new rows ordered ahead of existing ones. Neither input is mutated.
//
// Both frames must expose identical ordered headers; otherwise the merge fails
// with core.ErrSchemaMismatch and no output is produced. Two rows are
// duplicates only when every cell matches exactly; there is no tolerance on
// metric values.
func Merge(newBatch, existing *table.Frame) (*MergeResult, error) {
	if !newBatch.SameSchema(existing) {
		var got []string
		if existing != nil {
			got = existing.Columns
		}
		return nil, core.NewSchemaMismatchError(newBatch.Columns, got)
	}

	merged := table.New(newBatch.Columns)
	seen := make(map[string]bool, newBatch.Len()+existing.Len())
	duplicates := 0

	appendRows := func(rows [][]string) {
		for _, row := range rows {
			key := strings.Join(row, rowKeySep)
			if seen[key] {
				duplicates++
				continue
			}
			seen[key] = true
			merged.Rows = append(merged.Rows, row)
		}
	}

	appendRows(newBatch.Rows)
	appendRows(existing.Rows)

	return &MergeResult{
		Frame:             merged,
		RowCount:          merged.Len(),
		ColumnCount:       len(merged.Columns),
		DuplicatesDropped: duplicates,
	}, nil
}

// UpdateFile reads a new export and an existing dataset from disk, merges
// them, and, when persist is set, overwrites the existing dataset in place.
// The write is the only side effect and goes through WriteCSV's
// temp-then-rename path, so a failed write never corrupts the prior file.
func UpdateFile(newPath, existingPath string, persist bool) (*MergeResult, error) {
	newBatch, err := NewReader(newPath).Read()
	if err != nil {
		return nil, err
	}
	existing, err := NewReader(existingPath).Read()
	if err != nil {
		return nil, err
	}

	result, err := Merge(newBatch, existing)
	if err != nil {
		return nil, err
	}

	if persist {
		if err := WriteCSV(existingPath, result.Frame); err != nil {
			return nil, err
		}
		result.Persisted = true
		result.OutputPath = existingPath
	}
	return result, nil
}
