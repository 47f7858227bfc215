// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package anim

import (
	"math"
	"testing"

	"github.com/gviegas/nodegfx/linear"
)

func TestParse(t *testing.T) {
	cases := []struct {
		spec    string
		fam     Family
		dir     Direction
		nargs   int
		wantErr bool
	}{
		{"linear", Linear, In, 0, false},
		{"quadratic_in_out", Quadratic, InOut, 0, false},
		{"exp_in:1024", Exponential, In, 1, false},
		{"back_out_in:2,3", Back, OutIn, 2, false},
		{"bounce_in_out", Bounce, 0, 0, true}, // bounce has no in_out
		{"nonexistent_in", 0, 0, 0, true},
	}
	for _, c := range cases {
		e, err := Parse(c.spec)
		if c.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error", c.spec)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.spec, err)
		}
		if e.Family != c.fam || e.Direction != c.dir || e.NArgs != c.nargs {
			t.Errorf("Parse(%q): have %+v", c.spec, e)
		}
	}
}

func TestEasingEndpoints(t *testing.T) {
	names := []string{
		"linear",
		"quadratic_in", "quadratic_out", "quadratic_in_out", "quadratic_out_in",
		"cubic_in_out", "quartic_in", "quintic_out",
		"sinus_in_out", "circular_in_out", "exp_in_out",
	}
	for _, name := range names {
		e, err := Parse(name)
		if err != nil {
			t.Fatal(err)
		}
		if got := e.Eval(0); math.Abs(float64(got)) > 1e-5 {
			t.Errorf("%s: f(0) = %v, want 0", name, got)
		}
		if got := e.Eval(1); math.Abs(float64(got)-1) > 1e-5 {
			t.Errorf("%s: f(1) = %v, want 1", name, got)
		}
	}
}

func TestEasingInverseRoundTrip(t *testing.T) {
	names := []string{
		"linear", "quadratic_in", "quadratic_out", "quadratic_in_out", "quadratic_out_in",
		"cubic_in", "quartic_out", "quintic_in_out",
		"sinus_in", "sinus_out", "circular_in", "exp_in", "exp_out",
	}
	for _, name := range names {
		e, err := Parse(name)
		if err != nil {
			t.Fatal(err)
		}
		if !e.HasInverse() {
			t.Fatalf("%s: expected HasInverse", name)
		}
		for i := 0; i <= 100; i++ {
			x := float32(i) / 100
			y := e.Eval(x)
			back := e.Invert(y)
			if math.Abs(float64(back-x)) > 1e-4 {
				t.Errorf("%s: Invert(Eval(%v)) = %v, want %v", name, x, back, x)
			}
		}
	}
}

func TestTrackEvalBoundaries(t *testing.T) {
	lin, _ := Parse("linear")
	track := Track[float64]{Frames: []KeyFrame[float64]{
		{Time: 0, Value: 0, Easing: lin},
		{Time: 2, Value: 10, Easing: lin},
	}}
	if v := track.Eval(0); v != 0 {
		t.Errorf("Eval(0) = %v, want 0 (bit-equal)", v)
	}
	if v := track.Eval(2); v != 10 {
		t.Errorf("Eval(2) = %v, want 10 (bit-equal)", v)
	}
	if v := track.Eval(-5); v != 0 {
		t.Errorf("Eval(-5) = %v, want clamp to first value", v)
	}
	if v := track.Eval(50); v != 10 {
		t.Errorf("Eval(50) = %v, want clamp to last value", v)
	}
	if v := track.Eval(0.5); math.Abs(v-2.5) > 1e-9 {
		t.Errorf("Eval(0.5) = %v, want 2.5", v)
	}
}

func TestTrackEvalVec(t *testing.T) {
	lin, _ := Parse("linear")
	track := Track[linear.V3]{Frames: []KeyFrame[linear.V3]{
		{Time: 0, Value: linear.V3{0, 0, 0}, Easing: lin},
		{Time: 1, Value: linear.V3{2, 4, 6}, Easing: lin},
	}}
	got := track.Eval(0.5)
	want := linear.V3{1, 2, 3}
	if got != want {
		t.Errorf("Eval(0.5) = %v, want %v", got, want)
	}
}
