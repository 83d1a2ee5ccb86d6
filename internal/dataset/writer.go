package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"climatelab/domain/table"
)

// WriteCSV persists a frame as a headered CSV file, no index column. The
// frame is written to a temporary file in the target directory and renamed
// over the destination, so readers either see the old content or the new
// content, never a partial write.
func WriteCSV(path string, frame *table.Frame) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(frame.Columns); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(frame.Rows); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write rows: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
