// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package drawable

import "testing"

func TestFPSInitAppliesDefaultLogPeriod(t *testing.T) {
	f := &fpsImpl{}
	if err := f.Init(nil, nil); err != nil {
		t.Fatal(err)
	}
	if f.LogPeriod != DefaultLogPeriod {
		t.Errorf("LogPeriod = %d, want DefaultLogPeriod (%d)", f.LogPeriod, DefaultLogPeriod)
	}
}

func TestFPSInitKeepsExplicitLogPeriod(t *testing.T) {
	f := &fpsImpl{LogPeriod: 10}
	if err := f.Init(nil, nil); err != nil {
		t.Fatal(err)
	}
	if f.LogPeriod != 10 {
		t.Errorf("LogPeriod = %d, want 10 (explicit value must survive Init)", f.LogPeriod)
	}
}

func TestFPSUpdateWithNoChildCountsFrame(t *testing.T) {
	f := &fpsImpl{}
	if err := f.Init(nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := f.Update(nil, nil, 0); err != nil {
		t.Fatal(err)
	}
	if err := f.Update(nil, nil, 1.0/60); err != nil {
		t.Fatal(err)
	}
	if f.frames != 1 {
		t.Errorf("frames = %d, want 1 after one elapsed-time update", f.frames)
	}
}

func TestFPSUpdateIgnoresNonAdvancingTime(t *testing.T) {
	f := &fpsImpl{}
	if err := f.Init(nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := f.Update(nil, nil, 1.0); err != nil {
		t.Fatal(err)
	}
	if err := f.Update(nil, nil, 1.0); err != nil {
		t.Fatal(err)
	}
	if f.frames != 0 {
		t.Errorf("frames = %d, want 0 (a repeated timestamp must not count as a new frame)", f.frames)
	}
}
