package types

import (
	"time"
)

// Block represents one usage session from a blocks report. Gap blocks are
// dropped at load time, so consumers never see them.
type Block struct {
	ID              string     `json:"id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time"`
	ActualEndTime   *time.Time `json:"actual_end_time,omitempty"`
	IsActive        bool       `json:"is_active"`
	Entries         int        `json:"entries"`
	TotalTokens     int        `json:"total_tokens"`
	CostUSD         float64    `json:"cost_usd"`
	Models          []string   `json:"models"` // simplified names, de-duplicated, input order
	DurationMinutes int        `json:"duration_minutes"`
}

// DateKey returns the calendar date a block is grouped under.
func (b Block) DateKey() string {
	return b.StartTime.Format("2006-01-02")
}

// DailyUsage accumulates the blocks and totals for one calendar date.
type DailyUsage struct {
	Date          string          `json:"date"`
	Blocks        []Block         `json:"blocks"`
	TotalDuration int             `json:"total_duration"` // minutes
	TotalCost     float64         `json:"total_cost"`
	TotalTokens   int             `json:"total_tokens"`
	TotalEntries  int             `json:"total_entries"`
	Models        map[string]bool `json:"-"`
}

// Stats holds the dataset-wide aggregates shown by the summary view.
type Stats struct {
	TotalDuration   int     `json:"total_duration"` // minutes
	TotalCost       float64 `json:"total_cost"`
	TotalTokens     int     `json:"total_tokens"`
	TotalEntries    int     `json:"total_entries"`
	BlockCount      int     `json:"block_count"`
	DayCount        int     `json:"day_count"`
	AvgBlockMinutes float64 `json:"avg_block_minutes"`
	AvgDailyCost    float64 `json:"avg_daily_cost"`
}

// ModelStat holds per-model totals for the model summary view.
type ModelStat struct {
	Model           string  `json:"model"`
	Count           int     `json:"count"`
	DurationMinutes int     `json:"duration_minutes"`
	TotalTokens     int     `json:"total_tokens"`
	CostUSD         float64 `json:"cost_usd"`
}

// SessionWindow describes the 5-hour wall-clock window covering "now" and
// the usage recorded inside it.
type SessionWindow struct {
	Start        time.Time     `json:"start"`
	End          time.Time     `json:"end"`
	SessionCount int           `json:"session_count"`
	TotalTokens  int           `json:"total_tokens"`
	TotalCost    float64       `json:"total_cost"`
	PrimaryModel string        `json:"primary_model"`
	MaxTokens    int           `json:"max_tokens"`
	UsagePercent float64       `json:"usage_percent"`
	Remaining    time.Duration `json:"remaining"`
}
