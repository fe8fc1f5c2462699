package output

// Palette holds the SGR sequences used by the renderers. A disabled palette
// carries empty strings, so callers interpolate unconditionally.
type Palette struct {
	Header    string
	Blue      string
	Green     string
	Yellow    string
	Red       string
	Cyan      string
	White     string
	Gray      string
	Magenta   string
	Bold      string
	Underline string
	Reset     string
}

// NewPalette returns the standard palette, or an all-empty one when color is
// disabled.
func NewPalette(noColor bool) Palette {
	if noColor {
		return Palette{}
	}
	return Palette{
		Header:    "\033[95m",
		Blue:      "\033[94m",
		Green:     "\033[92m",
		Yellow:    "\033[93m",
		Red:       "\033[91m",
		Cyan:      "\033[96m",
		White:     "\033[97m",
		Gray:      "\033[90m",
		Magenta:   "\033[95m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}
}

// CostColor picks the color band for a daily cost.
func (p Palette) CostColor(cost float64) string {
	switch {
	case cost >= 50:
		return p.Red
	case cost >= 20:
		return p.Yellow
	default:
		return p.Green
	}
}

// UsageColor picks the color band for a window usage percentage.
func (p Palette) UsageColor(percent float64) string {
	switch {
	case percent >= 80:
		return p.Red
	case percent >= 50:
		return p.Yellow
	default:
		return p.Green
	}
}
