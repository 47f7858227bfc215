// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package anim

import "github.com/gviegas/nodegfx/linear"

// Value is the set of types that an animated parameter can hold
// (§3.5: scalar or vec2/3/4).
type Value interface {
	~float64 | linear.V2 | linear.V3 | linear.V4
}

// KeyFrame is a single (time, value, easing) sample of an animated
// parameter (§3.5).
type KeyFrame[T Value] struct {
	Time   float64
	Value  T
	Easing Easing
}

// mix linearly interpolates between a and b component-wise by ratio r.
func mix[T Value](a, b T, r float32) T {
	switch av := any(a).(type) {
	case float64:
		bv := any(b).(float64)
		return any(av*(1-float64(r)) + bv*float64(r)).(T)
	case linear.V2:
		bv := any(b).(linear.V2)
		var out linear.V2
		for i := range out {
			out[i] = av[i]*(1-r) + bv[i]*r
		}
		return any(out).(T)
	case linear.V3:
		bv := any(b).(linear.V3)
		var out linear.V3
		for i := range out {
			out[i] = av[i]*(1-r) + bv[i]*r
		}
		return any(out).(T)
	case linear.V4:
		bv := any(b).(linear.V4)
		var out linear.V4
		for i := range out {
			out[i] = av[i]*(1-r) + bv[i]*r
		}
		return any(out).(T)
	default:
		panic("anim: unreachable value type")
	}
}

// Track is a sorted sequence of keyframes together with the cached
// cursor used to keep playback lookups O(1) amortized (§4.3).
type Track[T Value] struct {
	Frames []KeyFrame[T]
	cursor int
}

// Eval returns the interpolated value at time t (§4.3 Interpolation).
// It panics if Frames is empty; callers must guarantee at least one
// keyframe, as the node schema's Constructor flag does in the node
// classes that embed a Track.
func (k *Track[T]) Eval(t float64) T {
	frames := k.Frames
	n := len(frames)
	if n == 1 || t <= frames[0].Time {
		return frames[0].Value
	}
	if t >= frames[n-1].Time {
		return frames[n-1].Value
	}
	i := k.cursor
	if i < 0 || i >= n-1 || !(frames[i].Time <= t && t < frames[i+1].Time) {
		i = 0
		for i < n-1 && frames[i+1].Time <= t {
			i++
		}
	}
	k.cursor = i
	kf0, kf1 := frames[i], frames[i+1]
	if t == kf0.Time {
		return kf0.Value
	}
	tnorm := float32((t - kf0.Time) / (kf1.Time - kf0.Time))
	ratio := kf0.Easing.Eval(tnorm)
	return mix(kf0.Value, kf1.Value, ratio)
}

// Animated holds a parameter that is either a constant Value or,
// once SetFrames has been called with a non-empty slice, driven by a
// keyframe Track (§3.5: transform and uniform parameters may
// optionally be overridden by an animkf node list). Node classes call
// SetFrames from their Init hook, after reading the keyframe values
// out of their animkf NodeList, and rely on the zero value meaning
// "not animated" so a class that has no animkf children never pays
// for a Track lookup.
type Animated[T Value] struct {
	Value    T
	track    Track[T]
	animated bool
}

// SetFrames installs frames as the driving keyframe track. Passing an
// empty slice reverts to the constant Value.
func (a *Animated[T]) SetFrames(frames []KeyFrame[T]) {
	a.track = Track[T]{Frames: frames}
	a.animated = len(frames) > 0
}

// Eval returns Value if no keyframes were installed, otherwise the
// track's interpolated value at t.
func (a *Animated[T]) Eval(t float64) T {
	if !a.animated {
		return a.Value
	}
	return a.track.Eval(t)
}

// ResolveTime remaps a value back to a time using the inverse easing
// of the segment value falls within, per §4.3: "used by the media node
// to remap time." It requires every keyframe's easing (but the last)
// to have a defined inverse; the media node's Init rejects time
// keyframes with any easing other than "linear", which always does.
func ResolveTime(value float64, frames []KeyFrame[float64]) float64 {
	n := len(frames)
	if n == 0 {
		return 0
	}
	if value <= frames[0].Value {
		return frames[0].Time
	}
	if value >= frames[n-1].Value {
		return frames[n-1].Time
	}
	for i := 0; i < n-1; i++ {
		lo, hi := frames[i].Value, frames[i+1].Value
		if value >= lo && value <= hi {
			if hi == lo {
				return frames[i].Time
			}
			r := float32((value - lo) / (hi - lo))
			u := frames[i].Easing.Invert(r)
			return frames[i].Time + float64(u)*(frames[i+1].Time-frames[i].Time)
		}
	}
	return frames[n-1].Time
}
