package config

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/idursun/scramble/internal/scramble"
	"gopkg.in/yaml.v3"
)

//go:embed default/*.toml
var configFS embed.FS

var Current = loadDefaultConfig()

type Config struct {
	FPS            int  `toml:"fps" yaml:"fps"`
	ExitOnComplete bool `toml:"exit_on_complete" yaml:"exit_on_complete"`
	// FlashMessageDisplaySeconds is how long notices stay up; zero keeps them.
	FlashMessageDisplaySeconds int             `toml:"flash_message_display_seconds" yaml:"flash_message_display_seconds"`
	Animation                  AnimationConfig `toml:"animation" yaml:"animation"`
	Targets                    []TargetConfig  `toml:"targets" yaml:"targets"`
	UI                         UIConfig        `toml:"ui" yaml:"ui"`

	notices []string
}

type AnimationConfig struct {
	Speed        float64 `toml:"speed" yaml:"speed"`
	Direction    string  `toml:"direction" yaml:"direction"`
	RevealLength int     `toml:"reveal_length" yaml:"reveal_length"`
	Easing       string  `toml:"easing" yaml:"easing"`
	Bezier       string  `toml:"bezier" yaml:"bezier"`
	Charset      string  `toml:"charset" yaml:"charset"`
	// Chars, when set, is used verbatim as the palette instead of Charset.
	Chars string `toml:"chars" yaml:"chars"`
	// Seed makes the scramble reproducible; zero seeds from the clock.
	Seed uint64 `toml:"seed" yaml:"seed"`
}

// TargetConfig is one text to reveal. Nil fields inherit [animation].
type TargetConfig struct {
	Text         string   `toml:"text" yaml:"text"`
	Speed        *float64 `toml:"speed" yaml:"speed"`
	Direction    *string  `toml:"direction" yaml:"direction"`
	RevealLength *int     `toml:"reveal_length" yaml:"reveal_length"`
	Easing       *string  `toml:"easing" yaml:"easing"`
	Bezier       *string  `toml:"bezier" yaml:"bezier"`
	Charset      *string  `toml:"charset" yaml:"charset"`
	Chars        *string  `toml:"chars" yaml:"chars"`
}

type UIConfig struct {
	Colors map[string]Color `toml:"colors" yaml:"colors"`
}

type Color struct {
	Fg            string `toml:"fg" yaml:"fg"`
	Bg            string `toml:"bg" yaml:"bg"`
	Bold          *bool  `toml:"bold" yaml:"bold"`
	Italic        *bool  `toml:"italic" yaml:"italic"`
	Underline     *bool  `toml:"underline" yaml:"underline"`
	Strikethrough *bool  `toml:"strikethrough" yaml:"strikethrough"`
	Reverse       *bool  `toml:"reverse" yaml:"reverse"`
}

// UnmarshalTOML accepts either a bare colour string or a table.
func (c *Color) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*c = Color{Fg: v}
		return nil
	case map[string]any:
		return c.setAttributes(v)
	}
	return fmt.Errorf("invalid colour value %v", value)
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*c = Color{Fg: node.Value}
		return nil
	}
	var attributes map[string]any
	if err := node.Decode(&attributes); err != nil {
		return err
	}
	return c.setAttributes(attributes)
}

func (c *Color) setAttributes(attributes map[string]any) error {
	*c = Color{}
	for key, raw := range attributes {
		switch key {
		case "fg":
			c.Fg = colorString(raw)
		case "bg":
			c.Bg = colorString(raw)
		case "bold":
			c.Bold = boolPtr(raw)
		case "italic":
			c.Italic = boolPtr(raw)
		case "underline":
			c.Underline = boolPtr(raw)
		case "strikethrough":
			c.Strikethrough = boolPtr(raw)
		case "reverse":
			c.Reverse = boolPtr(raw)
		default:
			return fmt.Errorf("unknown colour attribute %q", key)
		}
	}
	return nil
}

// colorString accepts ANSI indexes written as bare numbers.
func colorString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case int, int64, uint64:
		return fmt.Sprint(v)
	}
	return ""
}

func boolPtr(raw any) *bool {
	b, ok := raw.(bool)
	if !ok {
		return nil
	}
	return &b
}

// Resolve layers the target's overrides on top of base.
func (t TargetConfig) Resolve(base AnimationConfig) AnimationConfig {
	resolved := base
	if t.Speed != nil {
		resolved.Speed = *t.Speed
	}
	if t.Direction != nil {
		resolved.Direction = *t.Direction
	}
	if t.RevealLength != nil {
		resolved.RevealLength = *t.RevealLength
	}
	if t.Easing != nil {
		resolved.Easing = *t.Easing
	}
	if t.Bezier != nil {
		resolved.Bezier = *t.Bezier
	}
	if t.Charset != nil {
		resolved.Charset = *t.Charset
	}
	if t.Chars != nil {
		resolved.Chars = *t.Chars
	}
	return resolved
}

// Options converts the configuration to animator options. Values that do not
// parse fall back to their defaults; Warnings reports them.
func (a AnimationConfig) Options() scramble.Options {
	direction, _ := scramble.ParseDirection(a.Direction)
	easing, _ := scramble.ResolveEasing(a.Easing, a.Bezier)
	opts := scramble.Options{
		Speed:        a.Speed,
		Direction:    direction,
		RevealLength: a.RevealLength,
		Easing:       easing,
		Charset:      a.charset(),
	}
	if a.Seed != 0 {
		opts.Rand = scramble.NewRand(a.Seed)
	}
	return opts
}

func (a AnimationConfig) charset() scramble.Charset {
	if a.Chars != "" {
		return scramble.CharsetFromString(a.Chars)
	}
	if charset, ok := scramble.LookupCharset(a.Charset); ok {
		return charset
	}
	return scramble.DefaultCharset
}

// Warnings lists every animation value that was not understood and will be
// replaced by its default.
func (a AnimationConfig) Warnings() []string {
	var warnings []string
	if a.Direction != "" {
		if _, ok := scramble.ParseDirection(a.Direction); !ok {
			warnings = append(warnings, fmt.Sprintf("unknown direction %q; using %s", a.Direction, scramble.FromStart))
		}
	}
	if _, ok := scramble.ResolveEasing(a.Easing, a.Bezier); !ok {
		if name := strings.ToLower(strings.TrimSpace(a.Easing)); name == "" || name == scramble.EasingBezier || name == scramble.EasingCubicBezier {
			warnings = append(warnings, fmt.Sprintf("invalid bezier %q; expected \"x1,y1,x2,y2\"", a.Bezier))
		} else {
			warnings = append(warnings, withSuggestion(fmt.Sprintf("unknown easing %q", a.Easing), a.Easing, scramble.EasingNames()))
		}
	}
	if a.Chars == "" && a.Charset != "" {
		if _, ok := scramble.LookupCharset(a.Charset); !ok {
			warnings = append(warnings, withSuggestion(fmt.Sprintf("unknown charset %q", a.Charset), a.Charset, scramble.CharsetNames()))
		}
	}
	return warnings
}

func withSuggestion(message, name string, candidates []string) string {
	if suggestion := scramble.Suggest(name, candidates); suggestion != "" {
		return fmt.Sprintf("%s; did you mean %q?", message, suggestion)
	}
	return message
}

// Warnings collects the animation warnings of the base section and every
// target.
func (c *Config) Warnings() []string {
	warnings := append([]string(nil), c.notices...)
	base := c.Animation.Warnings()
	warnings = append(warnings, base...)
	inherited := make(map[string]bool, len(base))
	for _, w := range base {
		inherited[w] = true
	}
	for i, target := range c.Targets {
		for _, w := range target.Resolve(c.Animation).Warnings() {
			if inherited[w] {
				continue
			}
			warnings = append(warnings, fmt.Sprintf("targets[%d]: %s", i, w))
		}
	}
	return warnings
}

const defaultFPS = 60

func GetFrameInterval(c *Config) time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

func GetExpiringFlashMessageTimeout(c *Config) time.Duration {
	if c.FlashMessageDisplaySeconds <= 0 {
		return 0
	}
	return time.Duration(c.FlashMessageDisplaySeconds) * time.Second
}
