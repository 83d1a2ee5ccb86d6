package ui

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"climatelab/domain/core"
	"climatelab/domain/table"
	"climatelab/internal/dataset"
	"climatelab/ports"
)

// loadFrame resolves the request's data source: ?file= names an export under
// the data directory, ?id= a dataset stored in the repository. On failure it
// writes the error response and returns ok=false.
func (a *App) loadFrame(w http.ResponseWriter, r *http.Request) (*table.Frame, bool) {
	query := r.URL.Query()

	if file := query.Get("file"); file != "" {
		var reader ports.FrameReader = dataset.NewReader(a.dataPath(file))
		frame, err := reader.Read()
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return nil, false
		}
		return frame, true
	}

	if rawID := query.Get("id"); rawID != "" {
		if a.repo == nil {
			writeErrorMessage(w, http.StatusServiceUnavailable, "no dataset repository configured")
			return nil, false
		}
		id, err := core.ParseDatasetID(rawID)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return nil, false
		}
		frame, err := a.repo.Load(r.Context(), id)
		if err != nil {
			writeError(w, statusFor(err), err)
			return nil, false
		}
		return frame, true
	}

	writeErrorMessage(w, http.StatusBadRequest, "specify a data source via ?file= or ?id=")
	return nil, false
}

// dataPath confines a client-supplied file name to the data directory.
func (a *App) dataPath(name string) string {
	cleaned := filepath.Clean("/" + strings.TrimPrefix(name, "/"))
	return filepath.Join(a.cfg.DataDir, cleaned)
}

func statusFor(err error) int {
	switch {
	case core.IsSchemaMismatch(err), core.IsMissingColumn(err):
		return http.StatusUnprocessableEntity
	case core.IsDatasetNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func queryFloat(r *http.Request, key string, fallback float64) float64 {
	if v := r.URL.Query().Get(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
