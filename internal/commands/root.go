package commands

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/ktsuji/cctimeline/internal/calculator"
	"github.com/ktsuji/cctimeline/internal/config"
	"github.com/ktsuji/cctimeline/internal/loader"
	"github.com/ktsuji/cctimeline/internal/monitor"
	"github.com/ktsuji/cctimeline/internal/output"
)

// NewRootCommand builds the cctimeline CLI. All views hang off the root
// command; flags select which one is printed.
func NewRootCommand() *cobra.Command {
	var (
		file         string
		highUsage    bool
		highCost     bool
		sortCost     bool
		sortDuration bool
		date         string
		summary      bool
		modelSummary bool
		current      bool
		noColor      bool
		noLegend     bool
		limit        int
		watch        bool
		interval     int
	)

	cmd := &cobra.Command{
		Use:   "cctimeline",
		Short: "Terminal timeline viewer for Claude Code usage blocks",
		Long: `Renders "ccusage blocks --json" reports as per-day 24-hour timelines
with aggregate cost and token statistics.

Examples:
  ccusage blocks --json | cctimeline
  cctimeline --file blocks.json
  cctimeline --high-cost
  cctimeline --sort-cost --limit 10
  cctimeline --date 2025-09-13
  cctimeline --current`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if highUsage && highCost {
				return errors.New("--high-usage and --high-cost are mutually exclusive")
			}
			if sortCost && sortDuration {
				return errors.New("--sort-cost and --sort-duration are mutually exclusive")
			}

			limits, err := config.Load()
			if err != nil {
				return err
			}

			if watch {
				if file == "" {
					return errors.New("--watch requires --file")
				}
				return monitor.Start(monitor.Config{
					FilePath: file,
					Interval: time.Duration(interval) * time.Second,
					Limits:   limits,
				})
			}

			blocks, err := loader.New().LoadFromPath(file)
			if err != nil {
				return err
			}

			daily := calculator.GroupByDate(blocks)
			r := output.NewRenderer(cmd.OutOrStdout(), output.NewPalette(noColor), limits.BarWidth)

			switch {
			case current:
				window := calculator.CurrentWindow(blocks, time.Now(), limits.MaxWindowTokens)
				r.CurrentSessionLine(window)

			case date != "":
				r.Header(blocks)
				r.DayDetail(daily, date)

			case modelSummary:
				r.Header(blocks)
				r.ModelSummaryTable(calculator.ModelSummary(blocks))

			case summary:
				r.Header(blocks)
				r.Stats(calculator.OverallStats(blocks, daily))

			default:
				r.Header(blocks)
				r.Stats(calculator.OverallStats(blocks, daily))
				if !noLegend {
					r.Legend()
				}

				opts := output.TableOptions{Limit: limit}
				if highUsage {
					opts.Filter = output.FilterHighUsage
				}
				if highCost {
					opts.Filter = output.FilterHighCost
				}
				if sortCost {
					opts.Sort = output.SortCost
				}
				if sortDuration {
					opts.Sort = output.SortDuration
				}
				if opts.Sort != output.SortNone && opts.Limit == 0 {
					opts.Limit = 10
				}
				r.DayTable(daily, opts)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Input JSON file (defaults to stdin)")
	cmd.Flags().BoolVar(&highUsage, "high-usage", false, "Show only days with 5h+ total usage")
	cmd.Flags().BoolVar(&highCost, "high-cost", false, "Show only days costing $50 or more")
	cmd.Flags().BoolVar(&sortCost, "sort-cost", false, "Sort days by cost, descending")
	cmd.Flags().BoolVar(&sortDuration, "sort-duration", false, "Sort days by usage time, descending")
	cmd.Flags().StringVar(&date, "date", "", "Show a single day's detail (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&summary, "summary", false, "Show aggregate statistics only")
	cmd.Flags().BoolVar(&modelSummary, "model-summary", false, "Show the per-model usage table")
	cmd.Flags().BoolVar(&current, "current", false, "Show the current session window as one line")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&noLegend, "no-legend", false, "Suppress the glyph legend")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit the number of day rows (default 10 when sorting)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Live view of the current session window (requires --file)")
	cmd.Flags().IntVar(&interval, "interval", 5, "Watch refresh interval in seconds")

	return cmd
}
