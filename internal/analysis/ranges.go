// Package analysis derives per-station and per-year summaries from an
// observation frame. Every derivation is a pure function: it takes a frame,
// returns fresh result values, and never mutates its input. Callers that want
// a single metric's non-null rows filter before calling.
package analysis

import (
	"sort"
	"time"

	"climatelab/domain/table"
	"climatelab/domain/weather"
)

// StationRange is the date coverage of one station
type StationRange struct {
	Station string    `json:"station"`
	Name    string    `json:"name"`
	MinDate time.Time `json:"min_date"`
	MaxDate time.Time `json:"max_date"`
}

// StationDateRanges computes the minimum and maximum observed date for each
// distinct station identifier. One row per station, first-seen name, sorted
// by station identifier. Stations whose rows carry no parseable date are
// excluded rather than reported with a zero date.
func StationDateRanges(f *table.Frame) ([]StationRange, error) {
	stationIdx, err := f.ColumnIndex(weather.ColStation)
	if err != nil {
		return nil, err
	}
	nameIdx, err := f.ColumnIndex(weather.ColName)
	if err != nil {
		return nil, err
	}
	dateIdx, err := f.ColumnIndex(weather.ColDate)
	if err != nil {
		return nil, err
	}

	byStation := make(map[string]*StationRange)
	for _, row := range f.Rows {
		date, err := weather.ParseDate(row[dateIdx])
		if err != nil {
			continue
		}
		station := row[stationIdx]
		r, ok := byStation[station]
		if !ok {
			byStation[station] = &StationRange{
				Station: station,
				Name:    row[nameIdx],
				MinDate: date,
				MaxDate: date,
			}
			continue
		}
		if date.Before(r.MinDate) {
			r.MinDate = date
		}
		if date.After(r.MaxDate) {
			r.MaxDate = date
		}
	}

	out := make([]StationRange, 0, len(byStation))
	for _, r := range byStation {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Station < out[j].Station })
	return out, nil
}
