package config

import (
	"testing"
	"time"

	"github.com/idursun/scramble/internal/scramble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultConfig(t *testing.T) {
	config := loadDefaultConfig()

	assert.Equal(t, 60, config.FPS)
	assert.True(t, config.ExitOnComplete)
	assert.Equal(t, 1.0, config.Animation.Speed)
	assert.Equal(t, "fromLeft", config.Animation.Direction)
	assert.Equal(t, "bezier", config.Animation.Easing)
	assert.Equal(t, "0.0,1.0,0.0,1.0", config.Animation.Bezier)
	assert.Equal(t, "alphanumeric", config.Animation.Charset)
	assert.Zero(t, config.Animation.RevealLength)
	assert.Empty(t, config.Targets)
	assert.Empty(t, config.Warnings())

	done, ok := config.UI.Colors["scramble done"]
	require.True(t, ok)
	assert.Equal(t, "2", done.Fg)
	if assert.NotNil(t, done.Bold) {
		assert.True(t, *done.Bold)
	}
}

func TestLoad_Animation(t *testing.T) {
	content := `
fps = 30

[animation]
speed = 2.5
direction = "fromRight"
reveal_length = 6
easing = "cubic-bezier"
bezier = "0.42,0,0.58,1"
`
	config := loadDefaultConfig()
	require.NoError(t, config.Load(content))

	assert.Equal(t, 30, config.FPS)
	assert.Equal(t, 2.5, config.Animation.Speed)
	assert.Equal(t, "fromRight", config.Animation.Direction)
	assert.Equal(t, 6, config.Animation.RevealLength)
	assert.Equal(t, "cubic-bezier", config.Animation.Easing)
	assert.Equal(t, "alphanumeric", config.Animation.Charset)
	assert.True(t, config.ExitOnComplete)
}

func TestLoad_Colors_StringAndObject(t *testing.T) {
	content := `
[ui.colors]
simple = "red"
complex = { fg = "blue", bg = "white", bold = true }
`
	config := &Config{}
	err := config.Load(content)
	assert.NoError(t, err)
	assert.Len(t, config.UI.Colors, 2)

	assert.Equal(t, "red", config.UI.Colors["simple"].Fg)
	assert.Equal(t, "", config.UI.Colors["simple"].Bg)
	assert.Nil(t, config.UI.Colors["simple"].Bold)

	assert.Equal(t, "blue", config.UI.Colors["complex"].Fg)
	assert.Equal(t, "white", config.UI.Colors["complex"].Bg)
	if assert.NotNil(t, config.UI.Colors["complex"].Bold) {
		assert.True(t, *config.UI.Colors["complex"].Bold)
	}
}

func TestLoad_Colors_UnknownAttribute(t *testing.T) {
	content := `
[ui.colors]
broken = { fg = "blue", blink = true }
`
	config := &Config{}
	assert.Error(t, config.Load(content))
}

func TestLoadYAML_Colors_UnknownAttribute(t *testing.T) {
	content := []byte(`
ui:
  colors:
    broken: {fg: red, blink: true}
`)
	config := loadDefaultConfig()
	err := config.LoadYAML(content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown colour attribute "blink"`)
	assert.Contains(t, config.UI.Colors, "scramble text")
}

func TestLoadYAML_Colors_NumericIndex(t *testing.T) {
	content := []byte(`
ui:
  colors:
    scramble text: {fg: 5, bg: 0, italic: true}
`)
	config := loadDefaultConfig()
	require.NoError(t, config.LoadYAML(content))

	text := config.UI.Colors["scramble text"]
	assert.Equal(t, "5", text.Fg)
	assert.Equal(t, "0", text.Bg)
	if assert.NotNil(t, text.Italic) {
		assert.True(t, *text.Italic)
	}
}

func TestLoad_Colors_MergeWithDefaults(t *testing.T) {
	content := `
[ui.colors]
"scramble text" = "magenta"
`
	config := loadDefaultConfig()
	require.NoError(t, config.Load(content))

	assert.Equal(t, "magenta", config.UI.Colors["scramble text"].Fg)
	assert.Equal(t, "2", config.UI.Colors["scramble done"].Fg)
}

func TestLoad_Targets(t *testing.T) {
	config := loadDefaultConfig()
	require.NoError(t, config.Load(`
[[targets]]
text = "first"

[[targets]]
text = "second"
direction = "fromRight"
reveal_length = 3
`))
	require.Len(t, config.Targets, 2)
	assert.Equal(t, "first", config.Targets[0].Text)
	assert.Nil(t, config.Targets[0].Direction)
	if assert.NotNil(t, config.Targets[1].Direction) {
		assert.Equal(t, "fromRight", *config.Targets[1].Direction)
	}

	require.NoError(t, config.Load(`fps = 24`))
	assert.Len(t, config.Targets, 2)

	require.NoError(t, config.Load(`
[[targets]]
text = "only"
`))
	require.Len(t, config.Targets, 1)
	assert.Equal(t, "only", config.Targets[0].Text)
}

func TestLoad_LegacyRevealLengthNames(t *testing.T) {
	config := loadDefaultConfig()
	require.NoError(t, config.Load(`
[animation]
max_char = 4
`))
	assert.Equal(t, 4, config.Animation.RevealLength)
	warnings := config.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "max_char")

	config = loadDefaultConfig()
	require.NoError(t, config.Load(`
[animation]
reveal_length = 9
scramble_length = 2
`))
	assert.Equal(t, 9, config.Animation.RevealLength)
	assert.Contains(t, config.Warnings()[0], "scramble_length")
}

func TestLoadYAML(t *testing.T) {
	content := []byte(`
fps: 25
exit_on_complete: false
animation:
  speed: 3
  direction: fromRight
  charset: blocks
targets:
  - text: hello
    speed: 0.5
  - text: world
ui:
  colors:
    scramble text: cyan
    scramble done:
      fg: "#00ff00"
      underline: true
`)
	config := loadDefaultConfig()
	require.NoError(t, config.LoadYAML(content))

	assert.Equal(t, 25, config.FPS)
	assert.False(t, config.ExitOnComplete)
	assert.Equal(t, 3.0, config.Animation.Speed)
	assert.Equal(t, "fromRight", config.Animation.Direction)
	assert.Equal(t, "blocks", config.Animation.Charset)
	assert.Equal(t, "0.0,1.0,0.0,1.0", config.Animation.Bezier)

	require.Len(t, config.Targets, 2)
	if assert.NotNil(t, config.Targets[0].Speed) {
		assert.Equal(t, 0.5, *config.Targets[0].Speed)
	}
	assert.Nil(t, config.Targets[1].Speed)

	assert.Equal(t, "cyan", config.UI.Colors["scramble text"].Fg)
	assert.Equal(t, "#00ff00", config.UI.Colors["scramble done"].Fg)
	if assert.NotNil(t, config.UI.Colors["scramble done"].Underline) {
		assert.True(t, *config.UI.Colors["scramble done"].Underline)
	}
	assert.Contains(t, config.UI.Colors, "scramble help")
}

func TestLoadYAML_LegacyMaxChar(t *testing.T) {
	config := loadDefaultConfig()
	require.NoError(t, config.LoadYAML([]byte("animation:\n  max_char: 7\n")))
	assert.Equal(t, 7, config.Animation.RevealLength)
	assert.NotEmpty(t, config.Warnings())
}

func TestTargetConfig_Resolve(t *testing.T) {
	speed := 4.0
	direction := "fromRight"
	chars := "01"
	base := AnimationConfig{Speed: 1, Direction: "fromLeft", Charset: "alphanumeric", Seed: 5}
	target := TargetConfig{Text: "x", Speed: &speed, Direction: &direction, Chars: &chars}

	resolved := target.Resolve(base)
	assert.Equal(t, AnimationConfig{Speed: 4, Direction: "fromRight", Charset: "alphanumeric", Chars: "01", Seed: 5}, resolved)
	assert.Equal(t, base, TargetConfig{Text: "y"}.Resolve(base))
}

func TestAnimationConfig_Options(t *testing.T) {
	opts := AnimationConfig{
		Speed:        2,
		Direction:    "fromRight",
		RevealLength: 3,
		Easing:       "linear",
		Charset:      "blocks",
		Seed:         9,
	}.Options()

	assert.Equal(t, 2.0, opts.Speed)
	assert.Equal(t, scramble.FromEnd, opts.Direction)
	assert.Equal(t, 3, opts.RevealLength)
	assert.Equal(t, scramble.Linear, opts.Easing)
	assert.Equal(t, scramble.Charset{"░", "▒", "▓", "█"}, opts.Charset)
	require.NotNil(t, opts.Rand)
	assert.Equal(t, scramble.NewRand(9).IntN(100), opts.Rand.IntN(100))

	opts = AnimationConfig{Direction: "sideways", Easing: "wobble", Charset: "nope", Chars: "xy"}.Options()
	assert.Equal(t, scramble.FromStart, opts.Direction)
	assert.Equal(t, scramble.DefaultBezier, opts.Easing)
	assert.Equal(t, scramble.Charset{"x", "y"}, opts.Charset)
	assert.Nil(t, opts.Rand)

	opts = AnimationConfig{Charset: "nope"}.Options()
	assert.Equal(t, scramble.DefaultCharset, opts.Charset)
}

func TestAnimationConfig_Warnings(t *testing.T) {
	warnings := AnimationConfig{
		Direction: "diagonal",
		Easing:    "in-out-sin",
		Charset:   "blok",
	}.Warnings()
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], `unknown direction "diagonal"`)
	assert.Contains(t, warnings[1], `did you mean "in-out-sine"?`)
	assert.Contains(t, warnings[2], `did you mean "blocks"?`)

	warnings = AnimationConfig{Easing: "bezier", Bezier: "1,2"}.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "invalid bezier")

	assert.Empty(t, AnimationConfig{Charset: "made up", Chars: "ab"}.Warnings())
}

func TestConfig_Warnings_PrefixesTargetsOnce(t *testing.T) {
	bad := "upward"
	config := &Config{
		Animation: AnimationConfig{Charset: "blok"},
		Targets: []TargetConfig{
			{Text: "a"},
			{Text: "b", Direction: &bad},
		},
	}
	warnings := config.Warnings()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "unknown charset")
	assert.Equal(t, `targets[1]: unknown direction "upward"; using fromLeft`, warnings[1])
}

func TestGetFrameInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, GetFrameInterval(&Config{}))
	assert.Equal(t, time.Second/30, GetFrameInterval(&Config{FPS: 30}))
	assert.Equal(t, time.Second/60, GetFrameInterval(&Config{FPS: -5}))
}

func TestGetExpiringFlashMessageTimeout(t *testing.T) {
	config := loadDefaultConfig()
	assert.Equal(t, 4*time.Second, GetExpiringFlashMessageTimeout(config))

	require.NoError(t, config.Load(`flash_message_display_seconds = 10`))
	assert.Equal(t, 10*time.Second, GetExpiringFlashMessageTimeout(config))

	require.NoError(t, config.Load(`flash_message_display_seconds = 0`))
	assert.Zero(t, GetExpiringFlashMessageTimeout(config))
}
