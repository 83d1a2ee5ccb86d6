package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"climatelab/app"
	"climatelab/domain/core"
	"climatelab/domain/table"
	"climatelab/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo is an in-memory ObservationRepository for handler tests
type memoryRepo struct {
	frames map[core.DatasetID]*table.Frame
	infos  map[core.DatasetID]ports.DatasetInfo
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		frames: make(map[core.DatasetID]*table.Frame),
		infos:  make(map[core.DatasetID]ports.DatasetInfo),
	}
}

func (m *memoryRepo) Save(_ context.Context, name string, frame *table.Frame) (core.DatasetID, error) {
	id := core.NewDatasetID()
	m.frames[id] = frame.Clone()
	m.infos[id] = ports.DatasetInfo{ID: id, Name: name, RowCount: frame.Len(), Columns: frame.Columns}
	return id, nil
}

func (m *memoryRepo) Load(_ context.Context, id core.DatasetID) (*table.Frame, error) {
	f, ok := m.frames[id]
	if !ok {
		return nil, core.ErrDatasetNotFound
	}
	return f.Clone(), nil
}

func (m *memoryRepo) List(_ context.Context) ([]ports.DatasetInfo, error) {
	out := make([]ports.DatasetInfo, 0, len(m.infos))
	for _, info := range m.infos {
		out = append(out, info)
	}
	return out, nil
}

func (m *memoryRepo) Delete(_ context.Context, id core.DatasetID) error {
	if _, ok := m.frames[id]; !ok {
		return core.ErrDatasetNotFound
	}
	delete(m.frames, id)
	delete(m.infos, id)
	return nil
}

const sampleCSV = "STATION,NAME,DATE,LATITUDE,LONGITUDE,ELEVATION,TMAX,TMIN\n" +
	"S1,PORTLAND,2020-01-01,45.6,-122.6,7.6,45,33\n" +
	"S1,PORTLAND,2020-07-01,45.6,-122.6,7.6,70,55\n" +
	"S2,SEATTLE,2020-07-01,47.4,-122.3,112.8,68,54\n"

func newTestApp(t *testing.T, repo ports.ObservationRepository) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.csv"), []byte(sampleCSV), 0644))
	cfg := Config{Port: "0", DataDir: dir, Reports: app.DefaultReportParams()}
	return NewApp(cfg, repo, nil), dir
}

func doRequest(a *App, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleRanges(t *testing.T) {
	a, _ := newTestApp(t, nil)

	rec := doRequest(a, http.MethodGet, "/analysis/ranges?file=sample.csv", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var ranges []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranges))
	require.Len(t, ranges, 2)
	assert.Equal(t, "S1", ranges[0]["station"])
}

func TestHandleRangesRequiresSource(t *testing.T) {
	a, _ := newTestApp(t, nil)

	rec := doRequest(a, http.MethodGet, "/analysis/ranges", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleIdealDaysParams(t *testing.T) {
	a, _ := newTestApp(t, nil)

	rec := doRequest(a, http.MethodGet, "/analysis/ideal-days?file=sample.csv&metric=TMAX&lower=60&upper=75", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Counts []struct {
			Station string `json:"station"`
			Year    int    `json:"year"`
			Days    int    `json:"days"`
		} `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Counts, 2)
	assert.Equal(t, "PORTLAND", out.Counts[0].Station)
	assert.Equal(t, 1, out.Counts[0].Days)
}

func TestHandleIdealDaysBadMetric(t *testing.T) {
	a, _ := newTestApp(t, nil)

	rec := doRequest(a, http.MethodGet, "/analysis/ideal-days?file=sample.csv&metric=PRCP", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMergePersist(t *testing.T) {
	a, dir := newTestApp(t, nil)
	newCSV := "STATION,NAME,DATE,LATITUDE,LONGITUDE,ELEVATION,TMAX,TMIN\n" +
		"S1,PORTLAND,2020-01-01,45.6,-122.6,7.6,45,33\n" + // duplicate of existing
		"S3,BOISE,2020-07-01,43.6,-116.2,874,95,60\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.csv"), []byte(newCSV), 0644))

	rec := doRequest(a, http.MethodPost, "/datasets/merge",
		`{"new_file":"new.csv","existing_file":"sample.csv","persist":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		RowCount          int  `json:"row_count"`
		DuplicatesDropped int  `json:"duplicates_dropped"`
		Persisted         bool `json:"persisted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 4, result.RowCount)
	assert.Equal(t, 1, result.DuplicatesDropped)
	assert.True(t, result.Persisted)

	raw, err := os.ReadFile(filepath.Join(dir, "sample.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "BOISE")
}

func TestHandleMergeSchemaMismatch(t *testing.T) {
	a, dir := newTestApp(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"),
		[]byte("STATION,DATE\nS9,2020-01-01\n"), 0644))

	rec := doRequest(a, http.MethodPost, "/datasets/merge",
		`{"new_file":"bad.csv","existing_file":"sample.csv","persist":false}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleMap(t *testing.T) {
	a, _ := newTestApp(t, nil)

	rec := doRequest(a, http.MethodGet, "/map?file=sample.csv&zoom=6", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var spec struct {
		Zoom       int                      `json:"zoom"`
		TileLayers []string                 `json:"tile_layers"`
		Markers    []map[string]interface{} `json:"markers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, 6, spec.Zoom)
	assert.Len(t, spec.Markers, 3, "one marker per row with coordinates")
	assert.Contains(t, spec.TileLayers, "OpenTopoMap")
}

func TestHandleReportMarkdown(t *testing.T) {
	a, _ := newTestApp(t, nil)

	rec := doRequest(a, http.MethodGet, "/report/markdown?file=sample.csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, rec.Body.String(), "# Climate Report")
}

func TestDatasetEndpointsWithoutRepo(t *testing.T) {
	a, _ := newTestApp(t, nil)

	rec := doRequest(a, http.MethodGet, "/datasets/", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDatasetRoundTripThroughRepo(t *testing.T) {
	repo := newMemoryRepo()
	a, _ := newTestApp(t, repo)

	rec := doRequest(a, http.MethodPost, "/datasets/", `{"file":"sample.csv","name":"pnw"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = doRequest(a, http.MethodGet, "/analysis/ranges?id="+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(a, http.MethodDelete, "/datasets/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(a, http.MethodGet, "/analysis/ranges?id="+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
