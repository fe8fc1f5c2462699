package calculator

import (
	"time"

	"github.com/ktsuji/cctimeline/internal/types"
)

// WindowHours is the wall-clock alignment of usage windows, matching
// Claude's 5-hour billing blocks. Windows start at hours 0, 5, 10, 15, 20.
const WindowHours = 5

// CurrentWindow computes the usage window covering now and the activity
// recorded inside it. A block belongs to the window when its start time
// falls in [window start, window end).
func CurrentWindow(blocks []types.Block, now time.Time, maxTokens int) types.SessionWindow {
	startHour := (now.Hour() / WindowHours) * WindowHours
	start := time.Date(now.Year(), now.Month(), now.Day(), startHour, 0, 0, 0, now.Location())
	end := start.Add(WindowHours * time.Hour)

	window := types.SessionWindow{
		Start:        start,
		End:          end,
		PrimaryModel: "N/A",
		MaxTokens:    maxTokens,
		Remaining:    end.Sub(now),
	}

	counts := make(map[string]int)
	var order []string

	for _, block := range blocks {
		if block.StartTime.Before(start) || !block.StartTime.Before(end) {
			continue
		}
		window.SessionCount++
		window.TotalTokens += block.TotalTokens
		window.TotalCost += block.CostUSD
		for _, model := range block.Models {
			if _, seen := counts[model]; !seen {
				order = append(order, model)
			}
			counts[model]++
		}
	}

	// Most-used model wins; on a tie the model seen first in input order
	// keeps the slot.
	best := 0
	for _, model := range order {
		if counts[model] > best {
			best = counts[model]
			window.PrimaryModel = model
		}
	}

	if maxTokens > 0 {
		window.UsagePercent = float64(window.TotalTokens) / float64(maxTokens) * 100
	}

	return window
}
