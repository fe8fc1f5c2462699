package loader

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/samber/lo"

	"github.com/ktsuji/cctimeline/internal/types"
)

// rawBlock mirrors the producer's block object. Pointer fields let the
// loader distinguish a missing key from a zero value.
type rawBlock struct {
	ID            *string   `json:"id"`
	StartTime     *string   `json:"startTime"`
	EndTime       *string   `json:"endTime"`
	ActualEndTime *string   `json:"actualEndTime"`
	IsActive      *bool     `json:"isActive"`
	IsGap         *bool     `json:"isGap"`
	Entries       *int      `json:"entries"`
	TotalTokens   *int      `json:"totalTokens"`
	CostUSD       *float64  `json:"costUSD"`
	Models        *[]string `json:"models"`
}

type rawReport struct {
	Blocks []rawBlock `json:"blocks"`
}

type Loader struct{}

func New() *Loader {
	return &Loader{}
}

// LoadFromPath reads a blocks report from the given file, or from stdin when
// path is empty. The result fully replaces any previously loaded data.
func (l *Loader) LoadFromPath(path string) ([]types.Block, error) {
	if path == "" {
		return l.LoadFromReader(os.Stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.LoaderError{Path: path, Err: err}
	}

	blocks, err := l.Parse(data)
	if err != nil {
		return nil, types.LoaderError{Path: path, Err: err}
	}
	return blocks, nil
}

// LoadFromReader reads an entire report from r before parsing; the input is
// one JSON document, not a stream.
func (l *Loader) LoadFromReader(r io.Reader) ([]types.Block, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, types.LoaderError{Path: "stdin", Err: err}
	}
	return l.Parse(data)
}

// Parse decodes a blocks report, drops gap blocks, and normalizes the rest
// into Block records.
func (l *Loader) Parse(data []byte) ([]types.Block, error) {
	var report rawReport
	if err := sonic.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidJSON, err)
	}

	blocks := make([]types.Block, 0, len(report.Blocks))
	for i, raw := range report.Blocks {
		if raw.IsGap == nil {
			return nil, types.MissingFieldError{Index: i, Field: "isGap"}
		}
		if *raw.IsGap {
			continue
		}

		block, err := buildBlock(i, raw)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}

func buildBlock(index int, raw rawBlock) (types.Block, error) {
	switch {
	case raw.ID == nil:
		return types.Block{}, types.MissingFieldError{Index: index, Field: "id"}
	case raw.StartTime == nil:
		return types.Block{}, types.MissingFieldError{Index: index, Field: "startTime"}
	case raw.EndTime == nil:
		return types.Block{}, types.MissingFieldError{Index: index, Field: "endTime"}
	case raw.IsActive == nil:
		return types.Block{}, types.MissingFieldError{Index: index, Field: "isActive"}
	case raw.Entries == nil:
		return types.Block{}, types.MissingFieldError{Index: index, Field: "entries"}
	case raw.TotalTokens == nil:
		return types.Block{}, types.MissingFieldError{Index: index, Field: "totalTokens"}
	case raw.CostUSD == nil:
		return types.Block{}, types.MissingFieldError{Index: index, Field: "costUSD"}
	case raw.Models == nil:
		return types.Block{}, types.MissingFieldError{Index: index, Field: "models"}
	}

	start, err := parseTimestamp(*raw.StartTime)
	if err != nil {
		return types.Block{}, types.ParseError{Index: index, Field: "startTime", Err: err}
	}

	// The scheduled endTime is the fallback when the block never recorded
	// actual activity past its start.
	end, err := parseTimestamp(*raw.EndTime)
	if err != nil {
		return types.Block{}, types.ParseError{Index: index, Field: "endTime", Err: err}
	}

	var actualEnd *time.Time
	if raw.ActualEndTime != nil {
		t, err := parseTimestamp(*raw.ActualEndTime)
		if err != nil {
			return types.Block{}, types.ParseError{Index: index, Field: "actualEndTime", Err: err}
		}
		actualEnd = &t
		end = t
	}

	duration := int(end.Sub(start).Minutes())
	if duration < 0 {
		duration = 0
	}

	models := lo.Uniq(lo.Map(*raw.Models, func(model string, _ int) string {
		return SimplifyModelName(model)
	}))

	return types.Block{
		ID:              *raw.ID,
		StartTime:       start,
		EndTime:         end,
		ActualEndTime:   actualEnd,
		IsActive:        *raw.IsActive,
		Entries:         *raw.Entries,
		TotalTokens:     *raw.TotalTokens,
		CostUSD:         *raw.CostUSD,
		Models:          models,
		DurationMinutes: duration,
	}, nil
}

// parseTimestamp accepts RFC 3339 timestamps; a literal "Z" suffix reads as
// UTC offset zero.
func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// SimplifyModelName canonicalizes a raw model identifier to the short label
// used throughout the display layer. Unrecognized names pass through, and
// already-simplified names map to themselves.
func SimplifyModelName(model string) string {
	switch {
	case strings.Contains(model, "opus"):
		return "opus-4"
	case strings.Contains(model, "sonnet"):
		return "sonnet-4"
	case strings.Contains(model, "synthetic"):
		return "synthetic"
	default:
		return model
	}
}
