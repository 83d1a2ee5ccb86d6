package analysis

import (
	"encoding/json"
	"math"
	"sort"

	"climatelab/domain/table"
	"climatelab/domain/weather"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultHardinessWindow is the trailing window of the "30-year climate
// normal" statistic.
const DefaultHardinessWindow = 30

// HardinessTable is an observation frame pivoted to year rows and station
// columns. AnnualMin holds the minimum of TMIN per station-year; Rolling
// holds the trailing Window-year simple moving average of those minimums.
// Missing entries are NaN, never zero: a year without observations must not
// drag a 30-year normal toward freezing.
type HardinessTable struct {
	Years     []int       // ascending, contiguous calendar years
	Stations  []string    // sorted station names
	AnnualMin [][]float64 // [year][station], NaN = missing
	Rolling   [][]float64 // [year][station], NaN until a full window
	Window    int
}

// Hardiness pivots the frame into a year-by-station table of annual minimum
// temperatures and computes the trailing moving average per station column.
// A rolling value exists only when all Window years ending at that row are
// present; partial windows stay NaN, so a station with fewer than Window
// years of data yields an all-NaN rolling column.
//
// The year axis is the contiguous calendar range spanning every observation
// in the frame: the window counts years, not rows, so a gap in one station's
// record breaks its windows even while other stations keep reporting.
func Hardiness(f *table.Frame, window int) (*HardinessTable, error) {
	if window <= 0 {
		window = DefaultHardinessWindow
	}

	nameIdx, err := f.ColumnIndex(weather.ColName)
	if err != nil {
		return nil, err
	}
	dateIdx, err := f.ColumnIndex(weather.ColDate)
	if err != nil {
		return nil, err
	}
	minIdx, err := f.ColumnIndex(weather.MetricTMin.Column())
	if err != nil {
		return nil, err
	}

	// Collect TMIN observations per station-year
	type stationYear struct {
		station string
		year    int
	}
	observed := make(map[stationYear][]float64)
	minYear, maxYear := 0, 0
	for _, row := range f.Rows {
		value, ok := weather.ParseValue(row[minIdx])
		if !ok {
			continue
		}
		date, err := weather.ParseDate(row[dateIdx])
		if err != nil {
			continue
		}
		year := date.Year()
		if minYear == 0 || year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
		key := stationYear{station: row[nameIdx], year: year}
		observed[key] = append(observed[key], value)
	}

	stationSet := make(map[string]bool)
	for key := range observed {
		stationSet[key.station] = true
	}
	stations := make([]string, 0, len(stationSet))
	for s := range stationSet {
		stations = append(stations, s)
	}
	sort.Strings(stations)

	t := &HardinessTable{Stations: stations, Window: window}
	if len(stations) == 0 {
		return t, nil
	}

	for year := minYear; year <= maxYear; year++ {
		t.Years = append(t.Years, year)
	}

	// Pivot: annual minimum per cell, NaN where a station-year has no rows
	t.AnnualMin = make([][]float64, len(t.Years))
	for i, year := range t.Years {
		t.AnnualMin[i] = make([]float64, len(stations))
		for j, station := range stations {
			values := observed[stationYear{station: station, year: year}]
			if len(values) == 0 {
				t.AnnualMin[i][j] = math.NaN()
				continue
			}
			t.AnnualMin[i][j] = floats.Min(values)
		}
	}

	// Trailing moving average per station column, full windows only
	t.Rolling = make([][]float64, len(t.Years))
	for i := range t.Rolling {
		t.Rolling[i] = make([]float64, len(stations))
		for j := range t.Rolling[i] {
			t.Rolling[i][j] = math.NaN()
		}
	}
	column := make([]float64, len(t.Years))
	for j := range stations {
		for i := range t.Years {
			column[i] = t.AnnualMin[i][j]
		}
		for i := window - 1; i < len(column); i++ {
			win := column[i-window+1 : i+1]
			if hasNaN(win) {
				continue
			}
			t.Rolling[i][j] = stat.Mean(win, nil)
		}
	}
	return t, nil
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// MarshalJSON encodes missing cells as null; NaN is not valid JSON.
func (t *HardinessTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Years     []int        `json:"years"`
		Stations  []string     `json:"stations"`
		AnnualMin [][]*float64 `json:"annual_min"`
		Rolling   [][]*float64 `json:"rolling"`
		Window    int          `json:"window"`
	}{
		Years:     t.Years,
		Stations:  t.Stations,
		AnnualMin: nullableCells(t.AnnualMin),
		Rolling:   nullableCells(t.Rolling),
		Window:    t.Window,
	})
}

func nullableCells(cells [][]float64) [][]*float64 {
	out := make([][]*float64, len(cells))
	for i, row := range cells {
		out[i] = make([]*float64, len(row))
		for j := range row {
			if math.IsNaN(row[j]) {
				continue
			}
			v := row[j]
			out[i][j] = &v
		}
	}
	return out
}

// StationColumn returns the annual-minimum and rolling series for one
// station, or false when the station is not in the table.
func (t *HardinessTable) StationColumn(station string) (annual, rolling []float64, ok bool) {
	j := sort.SearchStrings(t.Stations, station)
	if j >= len(t.Stations) || t.Stations[j] != station {
		return nil, nil, false
	}
	annual = make([]float64, len(t.Years))
	rolling = make([]float64, len(t.Years))
	for i := range t.Years {
		annual[i] = t.AnnualMin[i][j]
		rolling[i] = t.Rolling[i][j]
	}
	return annual, rolling, true
}
