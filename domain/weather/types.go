package weather

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"climatelab/domain/core"
)

// Column names as they appear in NOAA-style daily station exports. Metric
// columns are an explicit, enumerated vocabulary; nothing in this codebase
// matches columns by substring.
const (
	ColStation   = "STATION"
	ColName      = "NAME"
	ColDate      = "DATE"
	ColLatitude  = "LATITUDE"
	ColLongitude = "LONGITUDE"
	ColElevation = "ELEVATION"
)

// Metric identifies a numeric measurement column
type Metric string

const (
	MetricTMax Metric = "TMAX" // daily maximum temperature
	MetricTMin Metric = "TMIN" // daily minimum temperature
	MetricTAvg Metric = "TAVG" // daily average temperature
)

// Column returns the metric's column name in an export.
func (m Metric) Column() string {
	return string(m)
}

// ParseMetric parses a column name into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToUpper(strings.TrimSpace(s))) {
	case MetricTMax:
		return MetricTMax, nil
	case MetricTMin:
		return MetricTMin, nil
	case MetricTAvg:
		return MetricTAvg, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownMetric, s)
}

// DateLayout is the calendar-date format used by station exports.
const DateLayout = "2006-01-02"

// ParseDate parses a DATE cell.
func ParseDate(cell string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(cell))
	if err != nil {
		return time.Time{}, core.NewBadDateError(cell)
	}
	return t, nil
}

// ParseValue parses a metric cell. A blank cell (or the export's "NA"
// placeholder) is a missing value, reported via ok=false, never zero.
func ParseValue(cell string) (value float64, ok bool) {
	s := strings.TrimSpace(cell)
	if s == "" || strings.EqualFold(s, "NA") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatValue renders a metric value the way exports carry it.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
