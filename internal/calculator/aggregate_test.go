package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktsuji/cctimeline/internal/types"
)

func block(start string, minutes, tokens, entries int, cost float64, models ...string) types.Block {
	t, err := time.Parse(time.RFC3339, start)
	if err != nil {
		panic(err)
	}
	return types.Block{
		ID:              start,
		StartTime:       t,
		EndTime:         t.Add(time.Duration(minutes) * time.Minute),
		Entries:         entries,
		TotalTokens:     tokens,
		CostUSD:         cost,
		Models:          models,
		DurationMinutes: minutes,
	}
}

func testBlocks() []types.Block {
	return []types.Block{
		block("2025-09-13T00:00:00Z", 60, 1000, 5, 5.0, "opus-4"),
		block("2025-09-13T08:30:00Z", 120, 50000, 30, 22.5, "sonnet-4"),
		block("2025-09-14T10:00:00Z", 240, 300000, 80, 55.0, "opus-4", "sonnet-4"),
		block("2025-09-15T09:00:00Z", 30, 2000, 4, 1.25, "synthetic"),
	}
}

func TestGroupByDateTotalsMatchBlockSums(t *testing.T) {
	blocks := testBlocks()
	daily := GroupByDate(blocks)

	require.Len(t, daily, 3)

	var wantDuration, wantTokens, wantEntries int
	var wantCost float64
	for _, b := range blocks {
		wantDuration += b.DurationMinutes
		wantTokens += b.TotalTokens
		wantEntries += b.Entries
		wantCost += b.CostUSD
	}

	var gotDuration, gotTokens, gotEntries int
	var gotCost float64
	for _, day := range daily {
		gotDuration += day.TotalDuration
		gotTokens += day.TotalTokens
		gotEntries += day.TotalEntries
		gotCost += day.TotalCost

		// per-day totals match the day's own block list exactly
		var dayDuration int
		for _, b := range day.Blocks {
			dayDuration += b.DurationMinutes
		}
		assert.Equal(t, dayDuration, day.TotalDuration)
	}

	assert.Equal(t, wantDuration, gotDuration)
	assert.Equal(t, wantTokens, gotTokens)
	assert.Equal(t, wantEntries, gotEntries)
	assert.InDelta(t, wantCost, gotCost, 1e-9)
}

func TestGroupByDateModelSet(t *testing.T) {
	daily := GroupByDate([]types.Block{
		block("2025-09-13T00:00:00Z", 60, 1000, 5, 5.0, "opus-4"),
		block("2025-09-13T06:00:00Z", 60, 1000, 5, 5.0, "sonnet-4"),
	})

	day := daily["2025-09-13"]
	require.NotNil(t, day)
	assert.Equal(t, map[string]bool{"opus-4": true, "sonnet-4": true}, day.Models)
}

func TestGroupByDateKeepsInputOrder(t *testing.T) {
	blocks := []types.Block{
		block("2025-09-13T09:00:00Z", 30, 1, 1, 0.1, "opus-4"),
		block("2025-09-13T03:00:00Z", 30, 1, 1, 0.1, "opus-4"),
	}
	daily := GroupByDate(blocks)

	day := daily["2025-09-13"]
	require.Len(t, day.Blocks, 2)
	assert.Equal(t, blocks[0].ID, day.Blocks[0].ID)
	assert.Equal(t, blocks[1].ID, day.Blocks[1].ID)
}

func TestSortedDates(t *testing.T) {
	daily := GroupByDate(testBlocks())
	assert.Equal(t, []string{"2025-09-13", "2025-09-14", "2025-09-15"}, SortedDates(daily))
}

func TestDaysByCostDescending(t *testing.T) {
	daily := GroupByDate(testBlocks())
	days := DaysByCost(daily)

	require.Len(t, days, 3)
	assert.Equal(t, "2025-09-14", days[0].Date)
	for i := 1; i < len(days); i++ {
		assert.GreaterOrEqual(t, days[i-1].TotalCost, days[i].TotalCost)
	}
}

func TestDaysByCostTiesKeepDateOrder(t *testing.T) {
	daily := GroupByDate([]types.Block{
		block("2025-09-14T00:00:00Z", 60, 10, 1, 5.0, "opus-4"),
		block("2025-09-13T00:00:00Z", 60, 10, 1, 5.0, "opus-4"),
	})

	days := DaysByCost(daily)
	require.Len(t, days, 2)
	assert.Equal(t, "2025-09-13", days[0].Date)
	assert.Equal(t, "2025-09-14", days[1].Date)
}

func TestDaysByDurationDescending(t *testing.T) {
	daily := GroupByDate(testBlocks())
	days := DaysByDuration(daily)

	require.Len(t, days, 3)
	assert.Equal(t, "2025-09-14", days[0].Date)
	assert.Equal(t, "2025-09-15", days[2].Date)
}

func TestOverallStats(t *testing.T) {
	blocks := testBlocks()
	daily := GroupByDate(blocks)
	stats := OverallStats(blocks, daily)

	assert.Equal(t, 4, stats.BlockCount)
	assert.Equal(t, 3, stats.DayCount)
	assert.Equal(t, 450, stats.TotalDuration)
	assert.Equal(t, 353000, stats.TotalTokens)
	assert.Equal(t, 119, stats.TotalEntries)
	assert.InDelta(t, 83.75, stats.TotalCost, 1e-9)
	assert.InDelta(t, 112.5, stats.AvgBlockMinutes, 1e-9)
	assert.InDelta(t, 83.75/3, stats.AvgDailyCost, 1e-9)
}

func TestOverallStatsEmpty(t *testing.T) {
	stats := OverallStats(nil, GroupByDate(nil))

	assert.Zero(t, stats.BlockCount)
	assert.Zero(t, stats.DayCount)
	assert.Zero(t, stats.AvgBlockMinutes)
	assert.Zero(t, stats.AvgDailyCost)
}

func TestModelSummarySortedByCostDescending(t *testing.T) {
	summary := ModelSummary(testBlocks())

	require.Len(t, summary, 3)
	assert.Equal(t, "sonnet-4", summary[0].Model) // 22.5 + 55.0
	assert.Equal(t, "opus-4", summary[1].Model)   // 5.0 + 55.0
	assert.Equal(t, "synthetic", summary[2].Model)

	assert.InDelta(t, 77.5, summary[0].CostUSD, 1e-9)
	assert.Equal(t, 2, summary[0].Count)
	assert.Equal(t, 350000, summary[0].TotalTokens)
	assert.Equal(t, 360, summary[0].DurationMinutes)
}

func TestModelSummaryEmpty(t *testing.T) {
	assert.Empty(t, ModelSummary(nil))
}
