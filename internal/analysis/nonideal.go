package analysis

import (
	"math"
	"sort"

	"climatelab/domain/table"
	"climatelab/domain/weather"

	"github.com/montanaflynn/stats"
)

// NonIdealParams sets the comfort thresholds. A day is too cold when
// TMIN <= ColdMax and too hot when TMAX >= HotMin; both comparisons are
// inclusive, deliberately mirroring the ideal-day bounds rather than
// complementing them.
type NonIdealParams struct {
	ColdMax float64 `json:"cold_max"`
	HotMin  float64 `json:"hot_min"`
}

// NonIdealDays is a station's average annual counts of uncomfortable days
type NonIdealDays struct {
	Station  string `json:"station"`
	TooCold  int    `json:"too_cold"`
	TooHot   int    `json:"too_hot"`
	NonIdeal int    `json:"non_ideal_days"`
}

// NonIdealDayCounts computes, per station name, the average annual number of
// too-cold and too-hot days, each rounded to the nearest integer, and their
// sum. Averages run over the years a station actually has qualifying days in
// that category. A station appears only when it has at least one too-cold
// year and at least one too-hot year (inner-join semantics). Output is sorted
// ascending by the non-ideal total.
func NonIdealDayCounts(f *table.Frame, p NonIdealParams) ([]NonIdealDays, error) {
	cold, err := yearlyThresholdCounts(f, weather.MetricTMin, func(v float64) bool { return v <= p.ColdMax })
	if err != nil {
		return nil, err
	}
	hot, err := yearlyThresholdCounts(f, weather.MetricTMax, func(v float64) bool { return v >= p.HotMin })
	if err != nil {
		return nil, err
	}

	coldAvg := averageAnnual(cold)
	hotAvg := averageAnnual(hot)

	out := make([]NonIdealDays, 0, len(coldAvg))
	for station, c := range coldAvg {
		h, ok := hotAvg[station]
		if !ok {
			continue
		}
		tooCold := int(math.Round(c))
		tooHot := int(math.Round(h))
		out = append(out, NonIdealDays{
			Station:  station,
			TooCold:  tooCold,
			TooHot:   tooHot,
			NonIdeal: tooCold + tooHot,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NonIdeal != out[j].NonIdeal {
			return out[i].NonIdeal < out[j].NonIdeal
		}
		return out[i].Station < out[j].Station
	})
	return out, nil
}

// yearlyThresholdCounts counts qualifying days per (station name, year) for
// one metric. Station-years with zero qualifying days are absent.
func yearlyThresholdCounts(f *table.Frame, metric weather.Metric, qualifies func(float64) bool) (map[string]map[int]int, error) {
	nameIdx, err := f.ColumnIndex(weather.ColName)
	if err != nil {
		return nil, err
	}
	dateIdx, err := f.ColumnIndex(weather.ColDate)
	if err != nil {
		return nil, err
	}
	metricIdx, err := f.ColumnIndex(metric.Column())
	if err != nil {
		return nil, err
	}

	counts := make(map[string]map[int]int)
	for _, row := range f.Rows {
		value, ok := weather.ParseValue(row[metricIdx])
		if !ok || !qualifies(value) {
			continue
		}
		date, err := weather.ParseDate(row[dateIdx])
		if err != nil {
			continue
		}
		station := row[nameIdx]
		if counts[station] == nil {
			counts[station] = make(map[int]int)
		}
		counts[station][date.Year()]++
	}
	return counts, nil
}

func averageAnnual(counts map[string]map[int]int) map[string]float64 {
	out := make(map[string]float64, len(counts))
	for station, years := range counts {
		values := make([]float64, 0, len(years))
		for _, n := range years {
			values = append(values, float64(n))
		}
		mean, err := stats.Mean(values)
		if err != nil {
			continue
		}
		out[station] = mean
	}
	return out
}
