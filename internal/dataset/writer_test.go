package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"climatelab/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	f := table.New([]string{"STATION", "NAME", "DATE", "TMIN"})
	require.NoError(t, f.Append([]string{"S1", "PORTLAND, OR", "2021-01-01", "33"}))
	require.NoError(t, f.Append([]string{"S1", "PORTLAND, OR", "2021-01-02", ""}))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, f))

	reread, err := NewReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, f.Columns, reread.Columns)
	assert.Equal(t, f.Rows, reread.Rows, "quoted commas and blank cells survive")
}

func TestWriteCSVOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("STATION\nOLD\n"), 0644))

	f := table.New([]string{"STATION"})
	require.NoError(t, f.Append([]string{"NEW"}))
	require.NoError(t, WriteCSV(path, f))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "STATION\nNEW\n", string(raw))

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
