package analysis

import (
	"fmt"
	"testing"

	"climatelab/domain/core"
	"climatelab/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nonIdealFrame builds a frame with the given per-year too-cold and too-hot
// day counts for one station, using 10/90 as the qualifying temperatures and
// 50/60 as the comfortable ones.
func nonIdealFrame(t *testing.T, f *table.Frame, station string, year, coldDays, hotDays int) {
	t.Helper()
	day := 1
	appendDay := func(tmax, tmin string) {
		require.NoError(t, f.Append([]string{
			"ID-" + station, station,
			fmt.Sprintf("%d-%02d-%02d", year, 1+day/28, 1+day%28),
			tmax, tmin,
		}))
		day++
	}
	for i := 0; i < coldDays; i++ {
		appendDay("50", "10")
	}
	for i := 0; i < hotDays; i++ {
		appendDay("90", "60")
	}
}

func newNonIdealInput() *table.Frame {
	return table.New([]string{"STATION", "NAME", "DATE", "TMAX", "TMIN"})
}

func TestNonIdealDayCountsRounding(t *testing.T) {
	f := newNonIdealInput()
	// 5 years averaging 10.4 too-cold days, 5 years averaging 5.6 too-hot days
	for i, cold := range []int{10, 10, 10, 11, 11} {
		nonIdealFrame(t, f, "A", 2015+i, cold, 0)
	}
	for i, hot := range []int{5, 6, 6, 6, 5} {
		nonIdealFrame(t, f, "A", 2015+i, 0, hot)
	}

	out, err := NonIdealDayCounts(f, NonIdealParams{ColdMax: 32, HotMin: 85})
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, 10, out[0].TooCold, "10.4 rounds to 10")
	assert.Equal(t, 6, out[0].TooHot, "5.6 rounds to 6")
	assert.Equal(t, 16, out[0].NonIdeal)
}

func TestNonIdealDayCountsInnerJoin(t *testing.T) {
	f := newNonIdealInput()
	nonIdealFrame(t, f, "BOTH", 2020, 3, 4)
	nonIdealFrame(t, f, "ONLY-COLD", 2020, 5, 0)
	nonIdealFrame(t, f, "ONLY-HOT", 2020, 0, 7)

	out, err := NonIdealDayCounts(f, NonIdealParams{ColdMax: 32, HotMin: 85})
	require.NoError(t, err)

	require.Len(t, out, 1, "a station needs at least one year in each category")
	assert.Equal(t, "BOTH", out[0].Station)
	assert.Equal(t, 7, out[0].NonIdeal)
}

func TestNonIdealDayCountsSortedAscending(t *testing.T) {
	f := newNonIdealInput()
	nonIdealFrame(t, f, "HARSH", 2020, 20, 30)
	nonIdealFrame(t, f, "MILD", 2020, 1, 2)

	out, err := NonIdealDayCounts(f, NonIdealParams{ColdMax: 32, HotMin: 85})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "MILD", out[0].Station)
	assert.Equal(t, "HARSH", out[1].Station)
}

func TestNonIdealDayCountsInclusiveThresholds(t *testing.T) {
	f := newNonIdealInput()
	require.NoError(t, f.Append([]string{"S", "EDGE", "2020-01-01", "85", "40"}))  // exactly HotMin
	require.NoError(t, f.Append([]string{"S", "EDGE", "2020-01-15", "50", "32"})) // exactly ColdMax

	out, err := NonIdealDayCounts(f, NonIdealParams{ColdMax: 32, HotMin: 85})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].TooCold)
	assert.Equal(t, 1, out[0].TooHot)
}

func TestNonIdealDayCountsEmptyInput(t *testing.T) {
	out, err := NonIdealDayCounts(newNonIdealInput(), NonIdealParams{ColdMax: 32, HotMin: 85})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNonIdealDayCountsMissingColumn(t *testing.T) {
	f := table.New([]string{"STATION", "NAME", "DATE", "TMAX"})

	_, err := NonIdealDayCounts(f, NonIdealParams{ColdMax: 32, HotMin: 85})
	assert.True(t, core.IsMissingColumn(err))
	assert.Contains(t, err.Error(), "TMIN")
}
