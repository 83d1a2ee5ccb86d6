package analysis

import (
	"testing"

	"climatelab/domain/core"
	"climatelab/domain/table"
	"climatelab/domain/weather"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idealFrame(t *testing.T, rows ...[]string) *table.Frame {
	t.Helper()
	f := table.New([]string{"STATION", "NAME", "DATE", "TMAX"})
	for _, row := range rows {
		require.NoError(t, f.Append(row))
	}
	return f
}

func TestIdealDayCountsInclusiveBounds(t *testing.T) {
	f := idealFrame(t,
		[]string{"S1", "A", "2020-01-01", "55"},
		[]string{"S1", "A", "2020-01-02", "60"},
		[]string{"S1", "A", "2020-01-03", "65"},
		[]string{"S1", "A", "2020-01-04", "75"},
		[]string{"S1", "A", "2020-01-05", "80"},
	)

	counts, err := IdealDayCounts(f, IdealDayParams{Metric: weather.MetricTMax, Lower: 60, Upper: 75})
	require.NoError(t, err)

	require.Len(t, counts, 1)
	assert.Equal(t, YearlyCount{Station: "A", Year: 2020, Days: 3}, counts[0],
		"60, 65 and 75 qualify: both bounds are inclusive")
}

func TestIdealDayCountsOmitsZeroYearsByDefault(t *testing.T) {
	f := idealFrame(t,
		[]string{"S1", "A", "2020-07-01", "70"},
		[]string{"S1", "A", "2021-07-01", "100"}, // observed year, no qualifying days
	)

	p := IdealDayParams{Metric: weather.MetricTMax, Lower: 60, Upper: 75}
	counts, err := IdealDayCounts(f, p)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, 2020, counts[0].Year)

	p.ZeroFill = true
	counts, err = IdealDayCounts(f, p)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, YearlyCount{Station: "A", Year: 2021, Days: 0}, counts[1])
}

func TestIdealDayCountsIgnoresMissingValues(t *testing.T) {
	f := idealFrame(t,
		[]string{"S1", "A", "2020-07-01", ""},
		[]string{"S1", "A", "2020-07-02", "NA"},
		[]string{"S1", "A", "2020-07-03", "70"},
	)

	counts, err := IdealDayCounts(f, IdealDayParams{Metric: weather.MetricTMax, Lower: 60, Upper: 75, ZeroFill: true})
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0].Days, "blank cells are missing, not zero")
}

func TestIdealDayCountsMissingMetricColumn(t *testing.T) {
	f := idealFrame(t)

	_, err := IdealDayCounts(f, IdealDayParams{Metric: weather.MetricTMin, Lower: 20, Upper: 40})
	assert.True(t, core.IsMissingColumn(err))
	assert.Contains(t, err.Error(), "TMIN")
}

func TestStationIdealMeans(t *testing.T) {
	counts := []YearlyCount{
		{Station: "A", Year: 2019, Days: 10},
		{Station: "A", Year: 2020, Days: 20},
		{Station: "B", Year: 2019, Days: 40},
		{Station: "B", Year: 2020, Days: 30},
		{Station: "C", Year: 2020, Days: 15},
	}

	means := StationIdealMeans(counts)
	require.Len(t, means, 3)

	assert.Equal(t, StationMean{Station: "B", MeanDays: 35}, means[0], "sorted descending by mean")
	assert.Equal(t, StationMean{Station: "A", MeanDays: 15}, means[1])
	assert.Equal(t, StationMean{Station: "C", MeanDays: 15}, means[2], "ties resolve by station name")
}

func TestStationIdealMeansEmpty(t *testing.T) {
	assert.Empty(t, StationIdealMeans(nil))
}
