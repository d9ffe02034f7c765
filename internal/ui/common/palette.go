package common

import (
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/idursun/scramble/internal/config"
)

var DefaultPalette = NewPalette()

// Palette maps space separated selectors to styles. A selector inherits from
// each of its shorter prefixes, so "scramble done" falls back to "scramble".
type Palette struct {
	styles map[string]lipgloss.Style
	cache  map[string]lipgloss.Style
}

func NewPalette() *Palette {
	return &Palette{
		styles: make(map[string]lipgloss.Style),
		cache:  make(map[string]lipgloss.Style),
	}
}

func (p *Palette) Update(styleMap map[string]config.Color) {
	for key, c := range styleMap {
		p.styles[normalizeSelector(key)] = createStyleFrom(c)
	}
	clear(p.cache)
}

func (p *Palette) Get(selector string) lipgloss.Style {
	selector = normalizeSelector(selector)
	if style, ok := p.cache[selector]; ok {
		return style
	}
	fields := strings.Fields(selector)
	style := lipgloss.NewStyle()
	for end := len(fields); end > 0; end-- {
		if s, ok := p.styles[strings.Join(fields[:end], " ")]; ok {
			style = style.Inherit(s)
		}
	}
	p.cache[selector] = style
	return style
}

func normalizeSelector(selector string) string {
	return strings.Join(strings.Fields(selector), " ")
}

func createStyleFrom(c config.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c.Fg != "" {
		style = style.Foreground(parseColor(c.Fg))
	}
	if c.Bg != "" {
		style = style.Background(parseColor(c.Bg))
	}
	if c.Bold != nil {
		style = style.Bold(*c.Bold)
	}
	if c.Italic != nil {
		style = style.Italic(*c.Italic)
	}
	if c.Underline != nil {
		style = style.Underline(*c.Underline)
	}
	if c.Strikethrough != nil {
		style = style.Strikethrough(*c.Strikethrough)
	}
	if c.Reverse != nil {
		style = style.Reverse(*c.Reverse)
	}
	return style
}

var namedColors = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"bright black":   "8",
	"bright red":     "9",
	"bright green":   "10",
	"bright yellow":  "11",
	"bright blue":    "12",
	"bright magenta": "13",
	"bright cyan":    "14",
	"bright white":   "15",
}

// parseColor understands #rrggbb, ANSI 256 indexes and the sixteen named
// terminal colours. Anything else is no colour.
func parseColor(c string) color.Color {
	if len(c) == 7 && c[0] == '#' {
		return lipgloss.Color(c)
	}
	if code, ok := namedColors[c]; ok {
		return lipgloss.Color(code)
	}
	if v, err := strconv.Atoi(strings.TrimPrefix(c, "ansi-color-")); err == nil && v >= 0 && v <= 255 {
		return lipgloss.Color(strconv.Itoa(v))
	}
	return lipgloss.NoColor{}
}
