package output

import (
	"strings"

	"github.com/ktsuji/cctimeline/internal/types"
)

// Glyphs for the 24-hour day bar.
const (
	GlyphOpus      = '█'
	GlyphSonnet    = '▓'
	GlyphMixed     = '▒'
	GlyphSynthetic = '░'
	GlyphEmpty     = '·'
	GlyphMarker    = '│'
)

// DefaultBarWidth covers 24 hours at half-hour resolution.
const DefaultBarWidth = 48

// markerInterval places a marker every 6 hours.
const markerInterval = 12

// TimelineSlots fills a width-slot day bar from the given blocks. Each block
// occupies max(1, duration/slot) slots from its start slot, clipped to the
// bar; later blocks overwrite earlier ones where they overlap. Markers are
// laid over the data last, so the slots at 6-hour boundaries always show the
// marker glyph.
func TimelineSlots(blocks []types.Block, width int) []rune {
	if width <= 0 {
		width = DefaultBarWidth
	}

	slots := make([]rune, width)
	for i := range slots {
		slots[i] = GlyphEmpty
	}

	slotMinutes := (24 * 60) / width

	for _, block := range blocks {
		start := (block.StartTime.Hour()*60 + block.StartTime.Minute()) / slotMinutes
		span := block.DurationMinutes / slotMinutes
		if span < 1 {
			span = 1
		}

		glyph := blockGlyph(block)
		for i := 0; i < span && start+i < width; i++ {
			slots[start+i] = glyph
		}
	}

	for i := 0; i < width; i += markerInterval {
		slots[i] = GlyphMarker
	}

	return slots
}

// blockGlyph selects the bar glyph for a block: mixed when it used more than
// one model, otherwise by the first model name with opus as the fallback.
func blockGlyph(block types.Block) rune {
	if len(block.Models) > 1 {
		return GlyphMixed
	}
	if len(block.Models) == 0 {
		return GlyphOpus
	}
	switch {
	case strings.Contains(block.Models[0], "synthetic"):
		return GlyphSynthetic
	case strings.Contains(block.Models[0], "sonnet"):
		return GlyphSonnet
	default:
		return GlyphOpus
	}
}
