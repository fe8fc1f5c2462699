package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ktsuji/cctimeline/internal/calculator"
	"github.com/ktsuji/cctimeline/internal/types"
)

// Day-table filter thresholds.
const (
	highUsageMinutes = 300
	highCostUSD      = 50
)

type Filter int

const (
	FilterNone Filter = iota
	FilterHighUsage
	FilterHighCost
)

type Sort int

const (
	SortNone Sort = iota
	SortCost
	SortDuration
)

// TableOptions selects filtering, ordering, and row count for the day table.
// Filters only apply to the chronological order; Limit zero means unlimited.
type TableOptions struct {
	Filter Filter
	Sort   Sort
	Limit  int
}

// Renderer writes the report views. The palette is an explicit value rather
// than process state, so a renderer is safe to construct per invocation.
type Renderer struct {
	out      io.Writer
	palette  Palette
	barWidth int
}

func NewRenderer(out io.Writer, palette Palette, barWidth int) *Renderer {
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}
	return &Renderer{
		out:      out,
		palette:  palette,
		barWidth: barWidth,
	}
}

// Header prints the report banner with the covered date range.
func (r *Renderer) Header(blocks []types.Block) {
	p := r.palette
	rule := strings.Repeat("=", 100)

	fmt.Fprintf(r.out, "\n%s%s%s%s\n", p.Bold, p.Cyan, rule, p.Reset)
	fmt.Fprintf(r.out, "%s%sClaude Code Usage Timeline%s\n", p.Bold, p.Header, p.Reset)

	if len(blocks) > 0 {
		first, last := blocks[0].DateKey(), blocks[0].DateKey()
		for _, block := range blocks[1:] {
			key := block.DateKey()
			if key < first {
				first = key
			}
			if key > last {
				last = key
			}
		}
		fmt.Fprintf(r.out, "%s%s - %s%s\n", p.Gray, first, last, p.Reset)
	}

	fmt.Fprintf(r.out, "%s%s%s%s\n\n", p.Bold, p.Cyan, rule, p.Reset)
}

// Stats prints the aggregate statistics, or a no-data notice.
func (r *Renderer) Stats(stats types.Stats) {
	p := r.palette
	if stats.BlockCount == 0 {
		fmt.Fprintln(r.out, "No usage data.")
		return
	}

	fmt.Fprintf(r.out, "%sStatistics:%s\n", p.Bold, p.Reset)
	fmt.Fprintf(r.out, "  Total time:     %s%dh %dm%s\n", p.Green, stats.TotalDuration/60, stats.TotalDuration%60, p.Reset)
	fmt.Fprintf(r.out, "  Total cost:     %s$%.2f%s\n", p.Yellow, stats.TotalCost, p.Reset)
	fmt.Fprintf(r.out, "  Total tokens:   %s%s%s\n", p.Cyan, formatNumber(stats.TotalTokens), p.Reset)
	fmt.Fprintf(r.out, "  Total entries:  %s%d%s\n", p.Cyan, stats.TotalEntries, p.Reset)
	fmt.Fprintf(r.out, "  Total blocks:   %s%d%s\n", p.Cyan, stats.BlockCount, p.Reset)
	fmt.Fprintf(r.out, "  Days used:      %s%d%s\n", p.Cyan, stats.DayCount, p.Reset)
	fmt.Fprintf(r.out, "  Avg block time: %s%.1fm%s\n", p.Green, stats.AvgBlockMinutes, p.Reset)
	fmt.Fprintf(r.out, "  Avg daily cost: %s$%.2f%s\n\n", p.Yellow, stats.AvgDailyCost, p.Reset)
}

// Legend prints the glyph legend for the timeline bars.
func (r *Renderer) Legend() {
	p := r.palette
	fmt.Fprintf(r.out, "%sLegend:%s\n", p.Bold, p.Reset)
	fmt.Fprintf(r.out, "  %c = Opus-4\n", GlyphOpus)
	fmt.Fprintf(r.out, "  %c = Sonnet-4\n", GlyphSonnet)
	fmt.Fprintf(r.out, "  %c = Synthetic\n", GlyphSynthetic)
	fmt.Fprintf(r.out, "  %c = Mixed models\n", GlyphMixed)
	fmt.Fprintf(r.out, "  %c = Idle\n", GlyphEmpty)
	fmt.Fprintf(r.out, "  %s%c%s = 6-hour marker (00, 06, 12, 18)\n\n", p.Gray, GlyphMarker, p.Reset)
}

// DayTable prints one row per date with the 24-hour timeline bar.
func (r *Renderer) DayTable(daily map[string]*types.DailyUsage, opts TableOptions) {
	p := r.palette
	if len(daily) == 0 {
		fmt.Fprintln(r.out, "No usage data.")
		return
	}

	dashes := r.barWidth - 14
	if dashes < 0 {
		dashes = 0
	}
	fmt.Fprintf(r.out, "%sDate        Day  Blocks  Time    Timeline (00:00 %s 24:00)  Tokens           Cost%s\n",
		p.Bold, strings.Repeat("━", dashes), p.Reset)
	fmt.Fprintln(r.out, strings.Repeat("─", 100))

	for _, day := range r.selectDays(daily, opts) {
		r.dayRow(day)
	}

	fmt.Fprintln(r.out, strings.Repeat("─", 100))
}

// selectDays applies the table's sort/filter/limit rules: an explicit sort
// wins over filters, and the filters only narrow the chronological listing.
func (r *Renderer) selectDays(daily map[string]*types.DailyUsage, opts TableOptions) []*types.DailyUsage {
	var days []*types.DailyUsage

	switch opts.Sort {
	case SortCost:
		days = calculator.DaysByCost(daily)
	case SortDuration:
		days = calculator.DaysByDuration(daily)
	default:
		for _, date := range calculator.SortedDates(daily) {
			day := daily[date]
			if opts.Filter == FilterHighUsage && day.TotalDuration < highUsageMinutes {
				continue
			}
			if opts.Filter == FilterHighCost && day.TotalCost < highCostUSD {
				continue
			}
			days = append(days, day)
		}
	}

	if opts.Limit > 0 && len(days) > opts.Limit {
		days = days[:opts.Limit]
	}
	return days
}

func (r *Renderer) dayRow(day *types.DailyUsage) {
	p := r.palette
	fmt.Fprintf(r.out, "%s  (%s)  %2d blk  %2dh%2dm  %s  %15s  %s$%7.2f%s\n",
		day.Date,
		Weekday(day.Date),
		len(day.Blocks),
		day.TotalDuration/60, day.TotalDuration%60,
		r.renderTimeline(day.Blocks),
		formatNumber(day.TotalTokens),
		p.CostColor(day.TotalCost), day.TotalCost, p.Reset)
}

// DayDetail prints every block of one date followed by day totals and the
// timeline bar. An unknown date is a notice, not an error.
func (r *Renderer) DayDetail(daily map[string]*types.DailyUsage, date string) {
	p := r.palette
	day, ok := daily[date]
	if !ok {
		fmt.Fprintf(r.out, "%sNo data for %s%s\n", p.Red, date, p.Reset)
		return
	}

	fmt.Fprintf(r.out, "%s%s (%s) detail:%s\n", p.Bold, date, Weekday(date), p.Reset)
	fmt.Fprintln(r.out, strings.Repeat("─", 80))

	for _, block := range day.Blocks {
		models := p.Cyan + strings.Join(block.Models, ",") + p.Reset
		fmt.Fprintf(r.out, "  %s - %2dh%2dm  %-30s  %12s tokens  $%6.2f  %s(%d entries)%s\n",
			block.StartTime.Format("15:04"),
			block.DurationMinutes/60, block.DurationMinutes%60,
			models,
			formatNumber(block.TotalTokens),
			block.CostUSD,
			p.Gray, block.Entries, p.Reset)
	}

	fmt.Fprintln(r.out, strings.Repeat("─", 80))
	fmt.Fprintf(r.out, "  Total: %dh %dm  %s tokens  %s$%6.2f%s\n\n",
		day.TotalDuration/60, day.TotalDuration%60,
		formatNumber(day.TotalTokens),
		p.CostColor(day.TotalCost), day.TotalCost, p.Reset)

	fmt.Fprintf(r.out, "%s24-hour timeline:%s\n", p.Bold, p.Reset)
	fmt.Fprintf(r.out, "  00:00 %s 24:00\n\n", r.renderTimeline(day.Blocks))
}

// CurrentSessionLine prints the one-line status for the active 5-hour
// window.
func (r *Renderer) CurrentSessionLine(window types.SessionWindow) {
	p := r.palette
	usageColor := p.UsageColor(window.UsagePercent)

	remaining := window.Remaining
	if remaining < 0 {
		remaining = 0
	}

	fmt.Fprintf(r.out, "%s%-10s%s $%6.2f %12s/%-12s %s[%5.1f%%]%s reset: %s%s%s (%dh%dm) %s[%d sessions]%s\n",
		p.Bold, window.PrimaryModel, p.Reset,
		window.TotalCost,
		formatNumber(window.TotalTokens), formatNumber(window.MaxTokens),
		usageColor, window.UsagePercent, p.Reset,
		p.Cyan, window.End.Format("15:04"), p.Reset,
		int(remaining.Hours()), int(remaining.Minutes())%60,
		p.Gray, window.SessionCount, p.Reset)
}

// renderTimeline returns the day bar as a string with markers in gray.
func (r *Renderer) renderTimeline(blocks []types.Block) string {
	p := r.palette
	var sb strings.Builder

	for _, glyph := range TimelineSlots(blocks, r.barWidth) {
		if glyph == GlyphMarker {
			sb.WriteString(p.Gray)
			sb.WriteRune(glyph)
			sb.WriteString(p.Reset)
			continue
		}
		sb.WriteRune(glyph)
	}

	return sb.String()
}

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Weekday returns the Monday-first weekday abbreviation for a date key.
func Weekday(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "---"
	}
	return weekdayNames[(int(t.Weekday())+6)%7]
}

// formatNumber renders a count with thousand separators.
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}
