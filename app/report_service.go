// Package app wires the pure derivations into higher-level operations.
package app

import (
	"context"
	"time"

	"climatelab/domain/chart"
	"climatelab/domain/core"
	"climatelab/domain/table"
	"climatelab/domain/weather"
	"climatelab/internal"
	"climatelab/internal/analysis"
	"climatelab/internal/geo"

	"golang.org/x/sync/errgroup"
)

// ReportParams configures one report run
type ReportParams struct {
	Ideal    analysis.IdealDayParams `json:"ideal"`
	NonIdeal analysis.NonIdealParams `json:"non_ideal"`
	Window   int                     `json:"window"`
	Map      geo.MapParams           `json:"map"`
}

// DefaultReportParams uses a 60–75°F ideal band, freezing/85°F discomfort
// thresholds, and the 30-year normal window.
func DefaultReportParams() ReportParams {
	return ReportParams{
		Ideal:    analysis.IdealDayParams{Metric: weather.MetricTMax, Lower: 60, Upper: 75},
		NonIdeal: analysis.NonIdealParams{ColdMax: 32, HotMin: 85},
		Window:   analysis.DefaultHardinessWindow,
		Map:      geo.DefaultMapParams(),
	}
}

// ClimateReport bundles every derivation over one observation set. It is
// computed fresh per call and handed off; nothing here is persisted.
type ClimateReport struct {
	ID          core.ReportID            `json:"id"`
	GeneratedAt time.Time                `json:"generated_at"`
	Params      ReportParams             `json:"params"`
	Ranges      []analysis.StationRange  `json:"ranges"`
	IdealDays   []analysis.YearlyCount   `json:"ideal_days"`
	IdealMeans  []analysis.StationMean   `json:"ideal_means"`
	NonIdeal    []analysis.NonIdealDays  `json:"non_ideal"`
	Hardiness   *analysis.HardinessTable `json:"hardiness"`
	Map         *chart.MapSpec           `json:"map,omitempty"`
}

// ReportService generates climate reports
type ReportService struct {
	log *internal.Logger
}

// NewReportService creates a report service.
func NewReportService(logger *internal.Logger) *ReportService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReportService{log: logger.With("report")}
}

// Generate runs all derivations over the frame. The derivations themselves
// are single-threaded pure functions; only this fan-out is concurrent, and
// each goroutine works on the shared frame read-only. The map section is
// included only when the frame carries geolocation columns.
func (s *ReportService) Generate(ctx context.Context, f *table.Frame, p ReportParams) (*ClimateReport, error) {
	if p.Window <= 0 {
		p.Window = analysis.DefaultHardinessWindow
	}

	report := &ClimateReport{
		ID:          core.NewReportID(),
		GeneratedAt: time.Now().UTC(),
		Params:      p,
	}
	s.log.Info("generating report %s over %d rows", report.ID, f.Len())

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		ranges, err := analysis.StationDateRanges(f)
		if err != nil {
			return err
		}
		report.Ranges = ranges
		return nil
	})
	g.Go(func() error {
		counts, err := analysis.IdealDayCounts(f, p.Ideal)
		if err != nil {
			return err
		}
		report.IdealDays = counts
		report.IdealMeans = analysis.StationIdealMeans(counts)
		return nil
	})
	g.Go(func() error {
		nonIdeal, err := analysis.NonIdealDayCounts(f, p.NonIdeal)
		if err != nil {
			return err
		}
		report.NonIdeal = nonIdeal
		return nil
	})
	g.Go(func() error {
		hardiness, err := analysis.Hardiness(f, p.Window)
		if err != nil {
			return err
		}
		report.Hardiness = hardiness
		return nil
	})
	if f.HasColumn(weather.ColLatitude) && f.HasColumn(weather.ColLongitude) {
		g.Go(func() error {
			mapSpec, err := geo.StationMap(f, p.Map)
			if err != nil {
				return err
			}
			report.Map = mapSpec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Error("report %s failed: %v", report.ID, err)
		return nil, err
	}
	s.log.Debug("report %s: %d stations, %d ideal-day rows", report.ID, len(report.Ranges), len(report.IdealDays))
	return report, nil
}
