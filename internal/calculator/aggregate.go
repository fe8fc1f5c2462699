package calculator

import (
	"sort"

	"github.com/samber/lo"

	"github.com/ktsuji/cctimeline/internal/types"
)

// GroupByDate builds the per-day index in a single pass, keyed on the
// calendar date of each block's start time. Blocks keep input order inside
// each day.
func GroupByDate(blocks []types.Block) map[string]*types.DailyUsage {
	daily := make(map[string]*types.DailyUsage)

	for _, block := range blocks {
		key := block.DateKey()
		day, ok := daily[key]
		if !ok {
			day = &types.DailyUsage{
				Date:   key,
				Models: make(map[string]bool),
			}
			daily[key] = day
		}

		day.Blocks = append(day.Blocks, block)
		day.TotalDuration += block.DurationMinutes
		day.TotalCost += block.CostUSD
		day.TotalTokens += block.TotalTokens
		day.TotalEntries += block.Entries
		for _, model := range block.Models {
			day.Models[model] = true
		}
	}

	return daily
}

// SortedDates returns the day keys in chronological order.
func SortedDates(daily map[string]*types.DailyUsage) []string {
	dates := lo.Keys(daily)
	sort.Strings(dates)
	return dates
}

// DaysByCost returns days sorted by total cost descending. The sort is
// stable over chronological order, so equal costs keep date order.
func DaysByCost(daily map[string]*types.DailyUsage) []*types.DailyUsage {
	days := daysInDateOrder(daily)
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].TotalCost > days[j].TotalCost
	})
	return days
}

// DaysByDuration returns days sorted by total usage time descending, with
// the same tie behavior as DaysByCost.
func DaysByDuration(daily map[string]*types.DailyUsage) []*types.DailyUsage {
	days := daysInDateOrder(daily)
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].TotalDuration > days[j].TotalDuration
	})
	return days
}

func daysInDateOrder(daily map[string]*types.DailyUsage) []*types.DailyUsage {
	days := make([]*types.DailyUsage, 0, len(daily))
	for _, date := range SortedDates(daily) {
		days = append(days, daily[date])
	}
	return days
}

// OverallStats computes the dataset-wide aggregates. Averages stay zero when
// there is nothing to divide by.
func OverallStats(blocks []types.Block, daily map[string]*types.DailyUsage) types.Stats {
	stats := types.Stats{
		BlockCount: len(blocks),
		DayCount:   len(daily),
	}

	for _, day := range daily {
		stats.TotalDuration += day.TotalDuration
		stats.TotalCost += day.TotalCost
		stats.TotalTokens += day.TotalTokens
		stats.TotalEntries += day.TotalEntries
	}

	if stats.BlockCount > 0 {
		stats.AvgBlockMinutes = float64(stats.TotalDuration) / float64(stats.BlockCount)
	}
	if stats.DayCount > 0 {
		stats.AvgDailyCost = stats.TotalCost / float64(stats.DayCount)
	}

	return stats
}

// ModelSummary aggregates totals per simplified model name, sorted by cost
// descending. Equal costs keep first-seen order.
func ModelSummary(blocks []types.Block) []types.ModelStat {
	statsByModel := make(map[string]*types.ModelStat)
	var order []string

	for _, block := range blocks {
		for _, model := range block.Models {
			ms, ok := statsByModel[model]
			if !ok {
				ms = &types.ModelStat{Model: model}
				statsByModel[model] = ms
				order = append(order, model)
			}
			ms.Count++
			ms.DurationMinutes += block.DurationMinutes
			ms.TotalTokens += block.TotalTokens
			ms.CostUSD += block.CostUSD
		}
	}

	result := make([]types.ModelStat, 0, len(order))
	for _, model := range order {
		result = append(result, *statsByModel[model])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CostUSD > result[j].CostUSD
	})

	return result
}
