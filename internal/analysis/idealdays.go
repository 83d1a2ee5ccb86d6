package analysis

import (
	"sort"

	"climatelab/domain/table"
	"climatelab/domain/weather"

	"github.com/montanaflynn/stats"
)

// IdealDayParams bounds a metric to the caller's notion of an ideal day.
// Both bounds are inclusive.
type IdealDayParams struct {
	Metric weather.Metric `json:"metric"`
	Lower  float64        `json:"lower"`
	Upper  float64        `json:"upper"`

	// ZeroFill emits an explicit zero row for station-years that have metric
	// observations but no qualifying days. Off by default: consumers that
	// expect the sparse shape see only station-years with at least one
	// qualifying day.
	ZeroFill bool `json:"zero_fill,omitempty"`
}

// YearlyCount is the number of qualifying days for one station in one year
type YearlyCount struct {
	Station string `json:"station"`
	Year    int    `json:"year"`
	Days    int    `json:"days"`
}

// StationMean is the mean qualifying-day count for a station across years
type StationMean struct {
	Station  string  `json:"station"`
	MeanDays float64 `json:"mean_days"`
}

// IdealDayCounts counts, per (station name, year), the days whose metric
// value falls within [Lower, Upper]. Rows with a missing metric value or an
// unparseable date never qualify. Output is sorted by station then year.
func IdealDayCounts(f *table.Frame, p IdealDayParams) ([]YearlyCount, error) {
	nameIdx, err := f.ColumnIndex(weather.ColName)
	if err != nil {
		return nil, err
	}
	dateIdx, err := f.ColumnIndex(weather.ColDate)
	if err != nil {
		return nil, err
	}
	metricIdx, err := f.ColumnIndex(p.Metric.Column())
	if err != nil {
		return nil, err
	}

	type stationYear struct {
		station string
		year    int
	}
	counts := make(map[stationYear]int)
	for _, row := range f.Rows {
		value, ok := weather.ParseValue(row[metricIdx])
		if !ok {
			continue
		}
		date, err := weather.ParseDate(row[dateIdx])
		if err != nil {
			continue
		}
		key := stationYear{station: row[nameIdx], year: date.Year()}
		if value >= p.Lower && value <= p.Upper {
			counts[key]++
		} else if p.ZeroFill {
			// Observed station-year, zero qualifying days so far
			counts[key] += 0
		}
	}

	out := make([]YearlyCount, 0, len(counts))
	for key, days := range counts {
		out = append(out, YearlyCount{Station: key.station, Year: key.year, Days: days})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Station != out[j].Station {
			return out[i].Station < out[j].Station
		}
		return out[i].Year < out[j].Year
	})
	return out, nil
}

// StationIdealMeans reduces yearly counts to the mean count per station,
// sorted descending by mean (ties broken by station name for determinism).
func StationIdealMeans(counts []YearlyCount) []StationMean {
	byStation := make(map[string][]float64)
	for _, c := range counts {
		byStation[c.Station] = append(byStation[c.Station], float64(c.Days))
	}

	out := make([]StationMean, 0, len(byStation))
	for station, days := range byStation {
		mean, err := stats.Mean(days)
		if err != nil {
			continue
		}
		out = append(out, StationMean{Station: station, MeanDays: mean})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanDays != out[j].MeanDays {
			return out[i].MeanDays > out[j].MeanDays
		}
		return out[i].Station < out[j].Station
	})
	return out
}
