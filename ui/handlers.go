package ui

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"climatelab/app"
	"climatelab/domain/core"
	"climatelab/domain/weather"
	"climatelab/internal/analysis"
	"climatelab/internal/dataset"
	"climatelab/internal/geo"
	"climatelab/internal/report"

	"github.com/go-chi/chi/v5"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// mergeRequest names two exports under the data directory. Persist controls
// whether the merged set overwrites the existing file.
type mergeRequest struct {
	NewFile      string `json:"new_file"`
	ExistingFile string `json:"existing_file"`
	Persist      bool   `json:"persist"`
}

func (a *App) handleMerge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.NewFile == "" || req.ExistingFile == "" {
		writeErrorMessage(w, http.StatusBadRequest, "new_file and existing_file are required")
		return
	}

	result, err := dataset.UpdateFile(a.dataPath(req.NewFile), a.dataPath(req.ExistingFile), req.Persist)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	a.log.Info("merged %s into %s: %d rows, %d duplicates dropped",
		req.NewFile, req.ExistingFile, result.RowCount, result.DuplicatesDropped)
	writeJSON(w, http.StatusOK, result)
}

type importRequest struct {
	File string `json:"file"`
	Name string `json:"name"`
}

func (a *App) handleImport(w http.ResponseWriter, r *http.Request) {
	if a.repo == nil {
		writeErrorMessage(w, http.StatusServiceUnavailable, "no dataset repository configured")
		return
	}
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	frame, err := dataset.NewReader(a.dataPath(req.File)).Read()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	name := req.Name
	if name == "" {
		name = filepath.Base(req.File)
	}
	id, err := a.repo.Save(r.Context(), name, frame)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id": id, "name": name, "row_count": frame.Len(),
	})
}

func (a *App) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	if a.repo == nil {
		writeErrorMessage(w, http.StatusServiceUnavailable, "no dataset repository configured")
		return
	}
	infos, err := a.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

func (a *App) handleDeleteDataset(w http.ResponseWriter, r *http.Request) {
	if a.repo == nil {
		writeErrorMessage(w, http.StatusServiceUnavailable, "no dataset repository configured")
		return
	}
	id, err := core.ParseDatasetID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := a.repo.Delete(r.Context(), id); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleRanges(w http.ResponseWriter, r *http.Request) {
	frame, ok := a.loadFrame(w, r)
	if !ok {
		return
	}
	ranges, err := analysis.StationDateRanges(frame)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, ranges)
}

func (a *App) handleIdealDays(w http.ResponseWriter, r *http.Request) {
	frame, ok := a.loadFrame(w, r)
	if !ok {
		return
	}
	p := analysis.IdealDayParams{
		Metric:   a.cfg.Reports.Ideal.Metric,
		Lower:    queryFloat(r, "lower", a.cfg.Reports.Ideal.Lower),
		Upper:    queryFloat(r, "upper", a.cfg.Reports.Ideal.Upper),
		ZeroFill: r.URL.Query().Get("zero_fill") == "true",
	}
	if m := r.URL.Query().Get("metric"); m != "" {
		metric, err := weather.ParseMetric(m)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		p.Metric = metric
	}

	counts, err := analysis.IdealDayCounts(frame, p)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"params": p,
		"counts": counts,
		"means":  analysis.StationIdealMeans(counts),
	})
}

func (a *App) handleNonIdealDays(w http.ResponseWriter, r *http.Request) {
	frame, ok := a.loadFrame(w, r)
	if !ok {
		return
	}
	p := analysis.NonIdealParams{
		ColdMax: queryFloat(r, "cold_max", a.cfg.Reports.NonIdeal.ColdMax),
		HotMin:  queryFloat(r, "hot_min", a.cfg.Reports.NonIdeal.HotMin),
	}
	out, err := analysis.NonIdealDayCounts(frame, p)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleHardiness(w http.ResponseWriter, r *http.Request) {
	frame, ok := a.loadFrame(w, r)
	if !ok {
		return
	}
	window := queryInt(r, "window", a.cfg.Reports.Window)
	tbl, err := analysis.Hardiness(frame, window)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, tbl)
}

func (a *App) handleMap(w http.ResponseWriter, r *http.Request) {
	frame, ok := a.loadFrame(w, r)
	if !ok {
		return
	}
	p := geo.MapParams{
		CenterLat: queryFloat(r, "center_lat", a.cfg.Reports.Map.CenterLat),
		CenterLng: queryFloat(r, "center_lng", a.cfg.Reports.Map.CenterLng),
		Zoom:      queryInt(r, "zoom", a.cfg.Reports.Map.Zoom),
	}
	spec, err := geo.StationMap(frame, p)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (a *App) generateReport(w http.ResponseWriter, r *http.Request) (*app.ClimateReport, bool) {
	frame, ok := a.loadFrame(w, r)
	if !ok {
		return nil, false
	}
	p := a.cfg.Reports
	p.Window = queryInt(r, "window", p.Window)
	rep, err := a.reports.Generate(r.Context(), frame, p)
	if err != nil {
		writeError(w, statusFor(err), err)
		return nil, false
	}
	return rep, true
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := a.generateReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (a *App) handleReportMarkdown(w http.ResponseWriter, r *http.Request) {
	rep, ok := a.generateReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(report.Markdown(rep)))
}

func (a *App) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	rep, ok := a.generateReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(report.HTML(rep))
}
