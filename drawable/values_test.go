// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package drawable

import (
	"testing"

	"github.com/gviegas/nodegfx/linear"
)

func TestUniformScalarEvalConstant(t *testing.T) {
	u := &uniformScalar{UName: "u_time", Value: 2.5}
	if err := u.Init(nil, nil); err != nil {
		t.Fatal(err)
	}
	if u.UniformName() != "u_time" {
		t.Errorf("UniformName() = %q, want %q", u.UniformName(), "u_time")
	}
	if v := u.UniformValue(0); v != 2.5 {
		t.Errorf("UniformValue(0) = %v, want 2.5 (no keyframes means the constant Value)", v)
	}
}

func TestUniformVec3EvalConstant(t *testing.T) {
	u := &uniformVec3{UName: "u_color", Value: linear.V3{1, 0, 0}}
	if err := u.Init(nil, nil); err != nil {
		t.Fatal(err)
	}
	v, ok := u.UniformValue(0).(linear.V3)
	if !ok || v != (linear.V3{1, 0, 0}) {
		t.Errorf("UniformValue(0) = %v, want {1,0,0}", v)
	}
}

func TestUniformIntAndMat4AndSampler(t *testing.T) {
	ui := &uniformInt{UName: "u_flag", Value: 7}
	if ui.UniformValue(0) != 7 {
		t.Errorf("uniformInt.UniformValue() = %v, want 7", ui.UniformValue(0))
	}

	um := &uniformMat4{UName: "u_mvp", Value: linear.Identity()}
	if um.UniformValue(0).(linear.M4) != linear.Identity() {
		t.Error("uniformMat4.UniformValue() did not round-trip the matrix")
	}

	us := &uniformSampler{UName: "u_tex", TexIndex: 1}
	if us.UniformValue(0) != 1 {
		t.Errorf("uniformSampler.UniformValue() = %v, want 1", us.UniformValue(0))
	}
}

func TestAttributeVecDimsAndDataConversion(t *testing.T) {
	a2 := &attributeVec2{AName: "a_uv", Data: []float64{0, 1, 1, 1}}
	if a2.AttributeDims() != 2 {
		t.Errorf("AttributeDims() = %d, want 2", a2.AttributeDims())
	}
	got := a2.AttributeData()
	want := []float32{0, 1, 1, 1}
	if len(got) != len(want) {
		t.Fatalf("AttributeData() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AttributeData()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	a4 := &attributeVec4{AName: "a_joint", Data: []float64{0, 0, 0, 1}}
	if a4.AttributeDims() != 4 {
		t.Errorf("AttributeDims() = %d, want 4", a4.AttributeDims())
	}
}
