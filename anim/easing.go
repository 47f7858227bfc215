// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package anim implements the keyframe animation evaluator of §3.5/§4.3:
// a fixed menu of easing functions, parsed once at node init time into
// a sum type (§9 REDESIGN FLAGS: "the easing descriptor should be a sum
// type ... with a parser at the boundary, so the interpolation hot path
// does no string work"), plus keyframe interpolation over scalar and
// vector values.
package anim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// Family is the easing family named in an easing spec.
type Family int

const (
	Linear Family = iota
	Quadratic
	Cubic
	Quartic
	Quintic
	Sinus
	Circular
	Exponential
	Bounce
	Elastic
	Back
)

// Direction is the transform applied to a Family's base formula.
type Direction int

const (
	In Direction = iota
	Out
	InOut
	OutIn
)

// MaxArgs is the maximum number of easing arguments (§3.5).
const MaxArgs = 2

// Easing is a parsed easing descriptor: family, direction and up to
// MaxArgs numeric arguments (e.g. the exponential base, the back/bounce
// overshoot constant, or the elastic amplitude/period pair).
type Easing struct {
	Family    Family
	Direction Direction
	Args      [MaxArgs]float32
	NArgs     int
}

// familyNames maps the spec's easing family name to a Family.
var familyNames = map[string]Family{
	"linear":      Linear,
	"quadratic":   Quadratic,
	"cubic":       Cubic,
	"quartic":     Quartic,
	"quintic":     Quintic,
	"sinus":       Sinus,
	"circular":    Circular,
	"exp":         Exponential,
	"bounce":      Bounce,
	"elastic":     Elastic,
	"back":        Back,
}

var directionSuffixes = []struct {
	suffix string
	dir    Direction
}{
	// Longest suffixes first so "in_out"/"out_in" do not get
	// mis-parsed as "in"/"out".
	{"_in_out", InOut},
	{"_out_in", OutIn},
	{"_in", In},
	{"_out", Out},
}

// onlyInOut reports whether a family restricts its menu to in/out
// (§3.5: "Bounce (in/out only)", "Elastic (in/out only)").
func onlyInOut(f Family) bool { return f == Bounce || f == Elastic }

// hasInverse reports whether the family/direction pair has a defined
// inverse (§3.5: back/bounce/elastic have none).
func hasInverse(f Family) bool {
	switch f {
	case Bounce, Elastic, Back:
		return false
	default:
		return true
	}
}

// Parse parses an easing spec of the form
//
//	family[_direction][:arg0,arg1]
//
// e.g. "quadratic_in_out", "exp_in:1024", "linear".
func Parse(spec string) (Easing, error) {
	name, argStr, _ := strings.Cut(spec, ":")

	dir := In
	base := name
	matched := false
	for _, d := range directionSuffixes {
		if strings.HasSuffix(name, d.suffix) {
			base = strings.TrimSuffix(name, d.suffix)
			dir = d.dir
			matched = true
			break
		}
	}
	fam, ok := familyNames[base]
	if !ok {
		return Easing{}, fmt.Errorf("anim: unknown easing %q", spec)
	}
	if fam == Linear {
		dir = In
	} else if !matched {
		return Easing{}, fmt.Errorf("anim: easing %q is missing a direction suffix", spec)
	}
	if onlyInOut(fam) && dir != In && dir != Out {
		return Easing{}, fmt.Errorf("anim: easing family %q only supports in/out", base)
	}

	e := Easing{Family: fam, Direction: dir}
	if argStr != "" {
		for _, a := range strings.Split(argStr, ",") {
			if e.NArgs >= MaxArgs {
				return Easing{}, fmt.Errorf("anim: too many arguments in %q", spec)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(a), 32)
			if err != nil {
				return Easing{}, fmt.Errorf("anim: bad argument in %q: %w", spec, err)
			}
			e.Args[e.NArgs] = float32(v)
			e.NArgs++
		}
	}
	return e, nil
}

func (e Easing) arg(i int, dflt float32) float32 {
	if i < e.NArgs {
		return e.Args[i]
	}
	return dflt
}

// Eval evaluates the easing at x in [0, 1].
func (e Easing) Eval(x float32) float32 {
	return transform(e.Direction, onlyInOut(e.Family), x, func(u float32) float32 {
		return baseEval(e, u)
	})
}

// Invert evaluates the inverse easing at v in [0, 1]. It panics if the
// family/direction has no defined inverse; callers must check
// HasInverse first.
func (e Easing) Invert(v float32) float32 {
	return transform(e.Direction, onlyInOut(e.Family), v, func(u float32) float32 {
		return baseInvert(e, u)
	})
}

// HasInverse reports whether Invert is valid for e.
func (e Easing) HasInverse() bool { return hasInverse(e.Family) }

// transform applies the in/out/in_out/out_in shaping (§3.5) around a
// base [0,1]->[0,1] function. onlyInOut families never reach the
// out_in/in_out branches (Parse rejects them), but the switch stays
// exhaustive for safety.
func transform(dir Direction, _ bool, x float32, base func(float32) float32) float32 {
	switch dir {
	case In:
		return base(x)
	case Out:
		return 1 - base(1-x)
	case InOut:
		if x < 0.5 {
			return base(2*x) / 2
		}
		return 1 - base(2*(1-x))/2
	case OutIn:
		if x < 0.5 {
			return (1 - base(1-2*x)) / 2
		}
		return (1 + base(2*x-1)) / 2
	default:
		return base(x)
	}
}

func baseEval(e Easing, x float32) float32 {
	switch e.Family {
	case Linear:
		return x
	case Quadratic:
		return x * x
	case Cubic:
		return x * x * x
	case Quartic:
		return x * x * x * x
	case Quintic:
		return x * x * x * x * x
	case Sinus:
		return 1 - math32.Cos(x*math32.Pi/2)
	case Circular:
		return 1 - math32.Sqrt(1-x*x)
	case Exponential:
		base := e.arg(0, 1024)
		return (math32.Pow(base, x) - 1) / (base - 1)
	case Bounce:
		a := e.arg(0, 1.70158)
		if e.Direction == Out {
			return bounceOut(x, a)
		}
		return 1 - bounceOut(1-x, a)
	case Elastic:
		amp := e.arg(0, 0.1)
		period := e.arg(1, 0.25)
		if e.Direction == Out {
			return elasticOut(x, amp, period)
		}
		return elasticIn(x, amp, period)
	case Back:
		s := e.arg(0, 1.70158)
		return backEval(e.Direction, x, s)
	default:
		return x
	}
}

func baseInvert(e Easing, x float32) float32 {
	switch e.Family {
	case Linear:
		return x
	case Quadratic:
		return math32.Sqrt(x)
	case Cubic:
		return math32.Cbrt(x)
	case Quartic:
		return math32.Pow(x, 1.0/4.0)
	case Quintic:
		return math32.Pow(x, 1.0/5.0)
	case Sinus:
		return math32.Acos(1-x) * 2 / math32.Pi
	case Circular:
		return math32.Sqrt(x * (2 - x))
	case Exponential:
		base := e.arg(0, 1024)
		return math32.Log(x*(base-1)+1) / math32.Log(base)
	default:
		panic("anim: easing has no inverse")
	}
}

func bounceOut(t, a float32) float32 {
	const c = 1.0
	switch {
	case t == 1:
		return c
	case t < 4.0/11.0:
		return c * (7.5625 * t * t)
	case t < 8.0/11.0:
		t -= 6.0 / 11.0
		return -a*(1-(7.5625*t*t+0.75)) + c
	case t < 10.0/11.0:
		t -= 9.0 / 11.0
		return -a*(1-(7.5625*t*t+0.9375)) + c
	default:
		t -= 21.0 / 22.0
		return -a*(1-(7.5625*t*t+0.984375)) + c
	}
}

func elasticIn(t, amp, period float32) float32 {
	if t == 0 {
		return 0
	}
	if t == 1 {
		return 1
	}
	a, s := amp, float32(0)
	c := float32(1)
	if a < math32.Abs(c) {
		a = c
		s = period / 4
	} else {
		s = period / (2 * math32.Pi) * math32.Asin(c/a)
	}
	t -= 1
	return -(a * math32.Pow(2, 10*t) * math32.Sin((t-s)*(2*math32.Pi)/period))
}

func elasticOut(t, amp, period float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	a, s := amp, float32(0)
	c := float32(1)
	if a < c {
		a = c
		s = period / 4
	} else {
		s = period / (2 * math32.Pi) * math32.Asin(c/a)
	}
	return a*math32.Pow(2, -10*t)*math32.Sin((t-s)*(2*math32.Pi)/period) + c
}

func backIn(t, s float32) float32 { return t * t * ((s+1)*t - s) }

func backOut(t, s float32) float32 {
	t -= 1
	return t*t*((s+1)*t+s) + 1
}

func backEval(dir Direction, t, s float32) float32 {
	switch dir {
	case In:
		return backIn(t, s)
	case Out:
		return backOut(t, s)
	case InOut:
		t *= 2
		if t < 1 {
			s *= 1.525
			return t * t * ((s+1)*t - s) / 2
		}
		t -= 2
		s *= 1.525
		return (t*t*((s+1)*t+s) + 2) / 2
	case OutIn:
		if t < 0.5 {
			return backOut(2*t, s) / 2
		}
		return (backIn(2*t-1, s) + 1) / 2
	default:
		return backIn(t, s)
	}
}
