// Package chart builds declarative chart descriptions from observation
// frames. Builders return data plus encoding and nothing else; whatever
// renders them owns figures, styles, and every other piece of display state.
package chart

import (
	"fmt"
	"sort"
	"time"

	domainchart "climatelab/domain/chart"
	"climatelab/domain/core"
	"climatelab/domain/table"
	"climatelab/domain/weather"
)

var monthLabels = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// TempComparison builds a line chart comparing the named metric columns over
// one calendar year: the wide frame is melted into one series per column,
// points ordered by date. The columns are an explicit list supplied by the
// caller; no substring matching against the header.
func TempComparison(f *table.Frame, metricColumns []string, year int) (*domainchart.Spec, error) {
	if len(metricColumns) == 0 {
		return nil, fmt.Errorf("at least one metric column is required")
	}
	dateIdx, err := f.ColumnIndex(weather.ColDate)
	if err != nil {
		return nil, err
	}
	colIdx := make([]int, len(metricColumns))
	for i, name := range metricColumns {
		idx, err := f.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		colIdx[i] = idx
	}

	type datedPoint struct {
		date  time.Time
		value float64
	}
	perColumn := make([][]datedPoint, len(metricColumns))
	for _, row := range f.Rows {
		date, err := weather.ParseDate(row[dateIdx])
		if err != nil || date.Year() != year {
			continue
		}
		for i, idx := range colIdx {
			value, ok := weather.ParseValue(row[idx])
			if !ok {
				continue
			}
			perColumn[i] = append(perColumn[i], datedPoint{date: date, value: value})
		}
	}

	spec := &domainchart.Spec{
		Kind:   domainchart.KindLine,
		Title:  fmt.Sprintf("Temperature Comparison %d", year),
		XLabel: "Months",
		YLabel: "Temperature (F)",
	}
	for i, name := range metricColumns {
		points := perColumn[i]
		sort.Slice(points, func(a, b int) bool { return points[a].date.Before(points[b].date) })
		series := domainchart.Series{Name: name}
		for _, p := range points {
			series.Points = append(series.Points, domainchart.Point{
				X: p.date.Format(weather.DateLayout),
				Y: p.value,
			})
		}
		spec.Series = append(spec.Series, series)
	}
	return spec, nil
}

// MonthlyDistribution builds a box chart of daily metric values grouped by
// calendar month, one series per month in order. Every value must fall
// strictly inside (yMin, yMax); a value outside the band fails the build, the
// same guard the display range used to enforce.
func MonthlyDistribution(f *table.Frame, metric weather.Metric, yMin, yMax float64) (*domainchart.Spec, error) {
	dateIdx, err := f.ColumnIndex(weather.ColDate)
	if err != nil {
		return nil, err
	}
	metricIdx, err := f.ColumnIndex(metric.Column())
	if err != nil {
		return nil, err
	}

	byMonth := make([][]float64, 12)
	for _, row := range f.Rows {
		value, ok := weather.ParseValue(row[metricIdx])
		if !ok {
			continue
		}
		if value <= yMin || value >= yMax {
			return nil, core.NewValueOutOfRangeError(metric.Column(), value, yMin, yMax)
		}
		date, err := weather.ParseDate(row[dateIdx])
		if err != nil {
			continue
		}
		m := int(date.Month()) - 1
		byMonth[m] = append(byMonth[m], value)
	}

	low, high := yMin, yMax
	spec := &domainchart.Spec{
		Kind:   domainchart.KindBox,
		Title:  fmt.Sprintf("Daily %s Temperatures", metric.Column()),
		YLabel: fmt.Sprintf("%s Temperature (°F)", metric.Column()),
		YMin:   &low,
		YMax:   &high,
	}
	for m, values := range byMonth {
		spec.Series = append(spec.Series, domainchart.Series{
			Name:   monthLabels[m],
			Values: values,
		})
	}
	return spec, nil
}
