package scramble

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing maps a linear fraction in [0,1] to an eased fraction. Results may
// overshoot [0,1] for exotic curves; callers clamp what they derive from it.
type Easing interface {
	Ease(t float64) float64
}

type linear struct{}

func (linear) Ease(t float64) float64 { return t }

// Linear is the identity easing.
var Linear Easing = linear{}

// Bezier is a cubic bezier anchored at (0,0) and (1,1).
//
// Ease evaluates only the y polynomial with t as the curve parameter:
//
//	B(t) = 3(1-t)²t·y1 + 3(1-t)t²·y2 + t³
//
// X1 and X2 are carried for configuration round-tripping but do not take
// part in the result. Use ParametricBezier for CSS style timing.
type Bezier struct {
	X1, Y1, X2, Y2 float64
}

// DefaultBezier is the curve used when no easing is configured.
var DefaultBezier = Bezier{X1: 0, Y1: 1, X2: 0, Y2: 1}

func (b Bezier) Ease(t float64) float64 {
	return cubic(t, b.Y1, b.Y2)
}

func (b Bezier) String() string {
	parts := []string{
		strconv.FormatFloat(b.X1, 'f', -1, 64),
		strconv.FormatFloat(b.Y1, 'f', -1, 64),
		strconv.FormatFloat(b.X2, 'f', -1, 64),
		strconv.FormatFloat(b.Y2, 'f', -1, 64),
	}
	return strings.Join(parts, ",")
}

// cubic is one axis of a bezier whose outer control points are 0 and 1.
func cubic(t, p1, p2 float64) float64 {
	u := 1 - t
	return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
}

func cubicDerivative(t, p1, p2 float64) float64 {
	u := 1 - t
	return 3*u*u*p1 + 6*u*t*(p2-p1) + 3*t*t*(1-p2)
}

// ParseBezier reads "x1,y1,x2,y2". Anything else yields DefaultBezier and
// false.
func ParseBezier(s string) (Bezier, bool) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return DefaultBezier, false
	}
	var values [4]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return DefaultBezier, false
		}
		values[i] = v
	}
	return Bezier{X1: values[0], Y1: values[1], X2: values[2], Y2: values[3]}, true
}

// ParametricBezier is a CSS cubic-bezier timing function: the input fraction
// is treated as x, the curve parameter is solved for it and y is returned.
type ParametricBezier struct {
	Bezier
}

const (
	newtonIterations = 8
	newtonEpsilon    = 1e-7
	bisectIterations = 32
)

func (p ParametricBezier) Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	x1 := clampFloat(p.X1, 0, 1)
	x2 := clampFloat(p.X2, 0, 1)
	return cubic(p.solve(t, x1, x2), p.Y1, p.Y2)
}

func (p ParametricBezier) solve(x, x1, x2 float64) float64 {
	s := x
	for i := 0; i < newtonIterations; i++ {
		diff := cubic(s, x1, x2) - x
		if math.Abs(diff) < newtonEpsilon {
			return s
		}
		d := cubicDerivative(s, x1, x2)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= diff / d
	}

	lo, hi := 0.0, 1.0
	s = x
	for i := 0; i < bisectIterations; i++ {
		v := cubic(s, x1, x2)
		if math.Abs(v-x) < newtonEpsilon {
			break
		}
		if v < x {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}

type tween struct {
	fn ease.TweenFunc
}

func (e tween) Ease(t float64) float64 {
	return float64(e.fn(float32(t), 0, 1, 1))
}

var namedEasings = map[string]ease.TweenFunc{
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-quart":       ease.InQuart,
	"out-quart":      ease.OutQuart,
	"in-out-quart":   ease.InOutQuart,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-circ":        ease.InCirc,
	"out-circ":       ease.OutCirc,
	"in-out-circ":    ease.InOutCirc,
	"out-bounce":     ease.OutBounce,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
	"out-back":       ease.OutBack,
}

// Named returns one of the predefined tween curves.
func Named(name string) (Easing, bool) {
	fn, ok := namedEasings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return tween{fn: fn}, true
}

const (
	EasingBezier      = "bezier"
	EasingLinear      = "linear"
	EasingCubicBezier = "cubic-bezier"
)

// EasingNames lists every name ResolveEasing understands.
func EasingNames() []string {
	names := []string{EasingBezier, EasingLinear, EasingCubicBezier}
	named := make([]string, 0, len(namedEasings))
	for name := range namedEasings {
		named = append(named, name)
	}
	sort.Strings(named)
	return append(names, named...)
}

// ResolveEasing builds an easing from its configured name and bezier control
// points. Unknown names and malformed control points fall back to the
// default curve and report false.
func ResolveEasing(name, bezier string) (Easing, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", EasingBezier:
		if strings.TrimSpace(bezier) == "" {
			return DefaultBezier, true
		}
		return ParseBezier(bezier)
	case EasingLinear, "none":
		return Linear, true
	case EasingCubicBezier:
		if strings.TrimSpace(bezier) == "" {
			return ParametricBezier{DefaultBezier}, true
		}
		b, ok := ParseBezier(bezier)
		return ParametricBezier{b}, ok
	}
	if e, ok := Named(name); ok {
		return e, true
	}
	return DefaultBezier, false
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
