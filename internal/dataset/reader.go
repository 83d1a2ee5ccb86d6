package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"climatelab/domain/core"
	"climatelab/domain/table"

	"github.com/xuri/excelize/v2"
)

// Reader handles reading station exports from CSV and Excel files
type Reader struct {
	filePath string
	fileType string // "csv" or "xlsx"
}

// NewReader creates a reader for the given export file. The format is chosen
// by extension; anything that is not .xlsx is treated as CSV.
func NewReader(filePath string) *Reader {
	fileType := "csv"
	if strings.ToLower(filepath.Ext(filePath)) == ".xlsx" {
		fileType = "xlsx"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read loads the export into a frame. The first row is the header; every
// data row must match its width.
func (r *Reader) Read() (*table.Frame, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "xlsx":
		return r.readExcel()
	default:
		return r.readCSV()
	}
}

func (r *Reader) readCSV() (*table.Frame, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses CSV content from any reader into a frame.
func ReadCSV(src io.Reader) (*table.Frame, error) {
	reader := csv.NewReader(src)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, core.ErrEmptyFrame
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	frame := table.New(header)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", frame.Len()+1, err)
		}
		if err := frame.Append(row); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// readExcel reads Sheet1 of an .xlsx export. Excelize trims trailing empty
// cells, so short rows are padded back out to the header width before they
// enter the frame.
func (r *Reader) readExcel() (*table.Frame, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	if len(rows) == 0 {
		return nil, core.ErrEmptyFrame
	}

	frame := table.New(rows[0])
	width := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		}
		if err := frame.Append(row); err != nil {
			return nil, err
		}
	}
	return frame, nil
}
