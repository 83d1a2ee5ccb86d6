// Package geo builds declarative station-map descriptions from frames that
// carry geolocation columns. The result is pure data; an interactive map
// renderer is an external collaborator.
package geo

import (
	"fmt"

	"climatelab/domain/chart"
	"climatelab/domain/table"
	"climatelab/domain/weather"
)

// MapParams positions the initial viewport
type MapParams struct {
	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	Zoom      int     `json:"zoom"`
}

// DefaultMapParams centers on the southern Washington Cascades.
func DefaultMapParams() MapParams {
	return MapParams{CenterLat: 45.9, CenterLng: -122.3, Zoom: 9}
}

var baseLayers = []string{"OpenTopoMap", "OpenStreetMap"}

// StationMap builds a map description with one circle marker per row that
// carries a parseable latitude and longitude. Callers usually pass
// station-level rows (for example the deduplicated output of a date-range
// summary joined back to geolocation); rows without coordinates are skipped.
func StationMap(f *table.Frame, p MapParams) (*chart.MapSpec, error) {
	latIdx, err := f.ColumnIndex(weather.ColLatitude)
	if err != nil {
		return nil, err
	}
	lngIdx, err := f.ColumnIndex(weather.ColLongitude)
	if err != nil {
		return nil, err
	}
	stationIdx, err := f.ColumnIndex(weather.ColStation)
	if err != nil {
		return nil, err
	}
	elevIdx := -1
	if idx, err := f.ColumnIndex(weather.ColElevation); err == nil {
		elevIdx = idx
	}

	spec := &chart.MapSpec{
		CenterLat:  p.CenterLat,
		CenterLng:  p.CenterLng,
		Zoom:       p.Zoom,
		TileLayers: append([]string(nil), baseLayers...),
	}

	for _, row := range f.Rows {
		lat, ok := weather.ParseValue(row[latIdx])
		if !ok {
			continue
		}
		lng, ok := weather.ParseValue(row[lngIdx])
		if !ok {
			continue
		}
		tooltip := row[stationIdx]
		if elevIdx >= 0 {
			if elev, ok := weather.ParseValue(row[elevIdx]); ok {
				tooltip = fmt.Sprintf("%s · %gm", tooltip, elev)
			}
		}
		spec.Markers = append(spec.Markers, chart.Marker{
			Lat:         lat,
			Lng:         lng,
			Tooltip:     tooltip,
			Color:       "darkblue",
			Fill:        true,
			FillOpacity: 0.7,
			Radius:      8,
		})
	}
	return spec, nil
}
