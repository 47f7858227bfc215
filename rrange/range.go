// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package rrange implements the render-range scheduler of §3.6/§4.4:
// a time-window policy attached to a subtree, selecting between
// Continuous, NoRender and Once behavior as playback time advances.
package rrange

// Kind identifies the behavior of a render range.
type Kind int

const (
	Continuous Kind = iota
	NoRender
	Once
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case NoRender:
		return "norender"
	case Once:
		return "once"
	default:
		return "invalid"
	}
}

// Entry is the minimal view a Scheduler needs of a range node.
// scenegraph adapts its RenderRange node kind to this interface;
// rrange itself never references node types (§9: the scheduler is
// generic infrastructure, not scene-graph-aware).
type Entry interface {
	StartTime() float64
	RangeKind() Kind
}

// OnceEntry is implemented by a Once-kind range node (§3.6): it
// remaps time to a fixed RenderTime the first time the range is
// entered, then suppresses further updates until the subtree leaves
// and re-enters the range (a seek back), tracked by Updated/SetUpdated.
type OnceEntry interface {
	Entry
	RenderTime() float64
	Updated() bool
	SetUpdated(bool)
}

// The look-ahead windows of §4.5: a subtree in a NoRender range is
// force-prefetched PrefetchTime seconds before its next range begins,
// and kept warm (if already Ready) until MaxIdleTime seconds before.
const (
	PrefetchTime = 1.0
	MaxIdleTime  = PrefetchTime + 3.0
)

// Scheduler tracks the currently selected range within a sorted
// (ascending StartTime) list of Entry values, using a cached cursor
// so that monotonic playback is O(1) amortized (§4.3/§3.6: "search
// resumes from a cached cursor ... on miss, restart from 0").
type Scheduler struct {
	cursor int
}

// Select finds the entry with the greatest StartTime <= t among
// entries (which must be sorted ascending by StartTime), or entry 0 if
// t precedes every entry, updates the cursor, and returns its index.
// It returns -1 if entries is empty.
func (s *Scheduler) Select(entries []Entry, t float64) int {
	if len(entries) == 0 {
		return -1
	}
	i := s.cursor
	if i < 0 || i >= len(entries) {
		i = 0
	}
	// Try to resume from the cached cursor first.
	if entries[i].StartTime() <= t {
		for i+1 < len(entries) && entries[i+1].StartTime() <= t {
			i++
		}
	} else {
		// Rewind: restart the scan from 0 on a miss, per §4.3.
		i = 0
		for i+1 < len(entries) && entries[i+1].StartTime() <= t {
			i++
		}
	}
	s.cursor = i
	return i
}

// Cursor returns the last index returned by Select.
func (s *Scheduler) Cursor() int { return s.cursor }

// LookAhead implements the check_activity look-ahead policy of §4.5
// for a subtree whose currently selected range is NoRender: given the
// start time of the next range (has=false if there is none) and
// whether the subtree is currently Ready, it reports whether the
// subtree should be considered active this frame.
//
// If there is no next range, the subtree stays idle indefinitely
// (§9 Open Questions: preserved verbatim from the original).
func LookAhead(t float64, nextStart float64, hasNext bool, ready bool) bool {
	if !hasNext {
		return false
	}
	delta := nextStart - t
	if delta < PrefetchTime {
		return true
	}
	if delta < MaxIdleTime && ready {
		return true
	}
	return false
}
