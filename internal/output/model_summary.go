package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/ktsuji/cctimeline/internal/types"
)

// ModelSummaryTable renders per-model totals, already sorted by cost
// descending, with a grand-total footer.
func (r *Renderer) ModelSummaryTable(stats []types.ModelStat) {
	p := r.palette
	if len(stats) == 0 {
		fmt.Fprintln(r.out, "No usage data.")
		return
	}

	fmt.Fprintf(r.out, "%sModel usage:%s\n", p.Bold, p.Reset)

	var buf bytes.Buffer
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignRight},
			},
		}),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	table.Header([]string{"Model", "Blocks", "Time", "Tokens", "Cost (USD)"})

	var totalCount, totalMinutes, totalTokens int
	var totalCost float64

	for _, ms := range stats {
		table.Append([]string{
			ms.Model,
			strconv.Itoa(ms.Count),
			fmt.Sprintf("%dh %02dm", ms.DurationMinutes/60, ms.DurationMinutes%60),
			formatNumber(ms.TotalTokens),
			fmt.Sprintf("$%.2f", ms.CostUSD),
		})
		totalCount += ms.Count
		totalMinutes += ms.DurationMinutes
		totalTokens += ms.TotalTokens
		totalCost += ms.CostUSD
	}

	table.Footer([]string{
		"Total",
		strconv.Itoa(totalCount),
		fmt.Sprintf("%dh %02dm", totalMinutes/60, totalMinutes%60),
		formatNumber(totalTokens),
		fmt.Sprintf("$%.2f", totalCost),
	})

	table.Render()
	fmt.Fprint(r.out, buf.String())
}
