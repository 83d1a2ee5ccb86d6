package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Tabular contract errors
	ErrSchemaMismatch = errors.New("schema mismatch between datasets")
	ErrMissingColumn  = errors.New("required column missing")
	ErrRaggedRow      = errors.New("row width does not match header")
	ErrEmptyFrame     = errors.New("frame has no header")

	// Value errors
	ErrValueOutOfRange = errors.New("value outside allowed range")
	ErrBadDate         = errors.New("unparseable date value")
	ErrUnknownMetric   = errors.New("unknown metric")

	// Storage errors
	ErrDatasetNotFound = errors.New("dataset not found")
)

// Error constructors with context

func NewSchemaMismatchError(expected, got []string) error {
	return fmt.Errorf("%w: expected [%s], got [%s]",
		ErrSchemaMismatch, strings.Join(expected, " "), strings.Join(got, " "))
}

func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

func NewRaggedRowError(rowIndex, want, got int) error {
	return fmt.Errorf("%w: row %d has %d cells, header has %d", ErrRaggedRow, rowIndex, got, want)
}

func NewValueOutOfRangeError(column string, value, low, high float64) error {
	return fmt.Errorf("%w: %s value %g outside [%g, %g]", ErrValueOutOfRange, column, value, low, high)
}

func NewBadDateError(cell string) error {
	return fmt.Errorf("%w: %q", ErrBadDate, cell)
}

// Error checking helpers

func IsSchemaMismatch(err error) bool {
	return errors.Is(err, ErrSchemaMismatch)
}

func IsMissingColumn(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

func IsDatasetNotFound(err error) bool {
	return errors.Is(err, ErrDatasetNotFound)
}
