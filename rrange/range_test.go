// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rrange

import "testing"

type fakeEntry struct {
	start float64
	kind  Kind
}

func (e fakeEntry) StartTime() float64 { return e.start }
func (e fakeEntry) RangeKind() Kind    { return e.kind }

func TestSchedulerSelect(t *testing.T) {
	entries := []Entry{
		fakeEntry{0, NoRender},
		fakeEntry{1.0, Once},
		fakeEntry{2.0, Continuous},
	}
	var s Scheduler
	cases := []struct {
		t    float64
		want int
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0},
		{1.0, 1},
		{1.5, 1},
		{2.0, 2},
		{100, 2},
		{0.1, 0}, // seek backwards: cursor must rewind
	}
	for _, c := range cases {
		got := s.Select(entries, c.t)
		if got != c.want {
			t.Fatalf("Select(%v): have %d, want %d", c.t, got, c.want)
		}
	}
}

func TestSchedulerEmpty(t *testing.T) {
	var s Scheduler
	if got := s.Select(nil, 1.0); got != -1 {
		t.Fatalf("Select(empty): have %d, want -1", got)
	}
}

func TestLookAhead(t *testing.T) {
	// Scenario 4 of §8.3: NoRender(0) then Continuous(5.0).
	if LookAhead(3.9, 5.0, true, false) {
		t.Fatal("t=3.9 should remain idle")
	}
	if !LookAhead(4.2, 5.0, true, false) {
		t.Fatal("t=4.2 should force-prefetch (within PrefetchTime)")
	}
	if !LookAhead(1.5, 5.0, true, true) {
		t.Fatal("t=1.5 with Ready state should stay warm (within MaxIdleTime)")
	}
	if LookAhead(1.5, 5.0, true, false) {
		t.Fatal("t=1.5 without Ready state should not force activity")
	}
	if LookAhead(0, 0, false, true) {
		t.Fatal("no next range: must stay idle indefinitely")
	}
}
