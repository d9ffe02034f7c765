// Package scramble resolves a target string out of random characters, one
// frame at a time.
//
// An Animator is immutable once built; each call to Play starts an
// independent playback driven by an external Scheduler. Rendering reads the
// current frame index, maps it to a number of settled characters through the
// configured Easing and fills every unsettled position with a fresh draw from
// the Charset.
package scramble

import (
	"math"
	"strings"
)

// Direction is the side of the text that settles first.
type Direction int

const (
	// FromStart settles characters left to right over the whole text.
	FromStart Direction = iota
	// FromEnd settles the trailing RevealLength characters right to left.
	FromEnd
)

func (d Direction) String() string {
	if d == FromEnd {
		return "fromRight"
	}
	return "fromLeft"
}

// ParseDirection understands the attribute style names ("fromLeft",
// "fromRight") and a few aliases. Unknown values yield FromStart and false.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fromleft", "from-left", "from-start", "fromstart", "start", "left":
		return FromStart, true
	case "fromright", "from-right", "from-end", "fromend", "end", "right":
		return FromEnd, true
	}
	return FromStart, false
}

// Options configures an Animator. Zero values select the defaults.
type Options struct {
	// Speed multiplies the number of frames per character. Defaults to 1.
	Speed     float64
	Direction Direction
	// RevealLength is the size of the trailing window animated in FromEnd
	// mode. Zero or negative means the whole text; larger values are clamped
	// to the text length.
	RevealLength int
	Easing       Easing
	Charset      Charset
	Rand         Rand
}

// Animator renders frames of one text; it holds no playback state.
type Animator struct {
	text      string
	chars     []string
	speed     float64
	direction Direction
	reveal    int
	easing    Easing
	charset   Charset
	rand      Rand
}

// Frame is one rendered step of a playback.
type Frame struct {
	Text     string
	Settled  int
	Total    int
	Complete bool
}

// New normalizes text and fills in defaults for unset options.
func New(text string, opts Options) *Animator {
	normalized := NormalizeText(text)
	a := &Animator{
		text:      normalized,
		chars:     clusters(normalized),
		speed:     opts.Speed,
		direction: opts.Direction,
		reveal:    opts.RevealLength,
		easing:    opts.Easing,
		charset:   opts.Charset,
		rand:      opts.Rand,
	}
	if math.IsNaN(a.speed) || math.IsInf(a.speed, 0) || a.speed <= 0 {
		a.speed = 1
	}
	if a.direction != FromEnd {
		a.direction = FromStart
	}
	if a.reveal <= 0 || a.reveal > len(a.chars) {
		a.reveal = len(a.chars)
	}
	if a.easing == nil {
		a.easing = DefaultBezier
	}
	if len(a.charset) == 0 {
		a.charset = DefaultCharset
	}
	if a.rand == nil {
		a.rand = newClockRand()
	}
	return a
}

// Text is the normalized target.
func (a *Animator) Text() string { return a.text }

// Len is the number of characters in the normalized target.
func (a *Animator) Len() int { return len(a.chars) }

func (a *Animator) Direction() Direction { return a.direction }

func (a *Animator) Speed() float64 { return a.speed }

// Span is the number of characters a rendered frame carries.
func (a *Animator) Span() int {
	if a.direction == FromEnd {
		return a.reveal
	}
	return len(a.chars)
}

// TotalFrames is Span × Speed rounded to the nearest frame, at least one
// for a non-empty text.
func (a *Animator) TotalFrames() int {
	span := a.Span()
	if span == 0 {
		return 0
	}
	return max(1, int(math.Round(float64(span)*a.speed)))
}

// Progress maps a frame index to an eased fraction. Progress(0, n) is 0 and
// Progress(n, n) is 1 for every curve anchored at (0,0) and (1,1).
func (a *Animator) Progress(frame, total int) float64 {
	if total <= 0 {
		return 1
	}
	t := clampFloat(float64(frame)/float64(total), 0, 1)
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	}
	return a.easing.Ease(t)
}

// SettledCount rounds progress × Span to the nearest character and clamps it
// to [0, Span].
func (a *Animator) SettledCount(progress float64) int {
	span := a.Span()
	if math.IsNaN(progress) {
		return 0
	}
	return max(0, min(span, int(math.Round(progress*float64(span)))))
}

// Render draws the frame at index frame out of total. Unsettled positions are
// redrawn on every call, left to right.
func (a *Animator) Render(frame, total int) Frame {
	span := a.Span()
	settled := a.SettledCount(a.Progress(frame, total))
	window := a.chars[len(a.chars)-span:]

	var b strings.Builder
	b.Grow(len(a.text))
	switch a.direction {
	case FromEnd:
		unsettled := span - settled
		for i, ch := range window {
			if i < unsettled {
				b.WriteString(a.charset.Pick(a.rand))
			} else {
				b.WriteString(ch)
			}
		}
	default:
		for i, ch := range window {
			if i < settled {
				b.WriteString(ch)
			} else {
				b.WriteString(a.charset.Pick(a.rand))
			}
		}
	}

	return Frame{
		Text:     b.String(),
		Settled:  settled,
		Total:    span,
		Complete: settled == span,
	}
}
