// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package ngl

import "testing"

func TestNarrowFloat(t *testing.T) {
	if v, ok := narrowFloat(3); !ok || v != float32(3) {
		t.Errorf("narrowFloat(3) = %v,%v, want float32(3),true", v, ok)
	}
	if v, ok := narrowFloat(1.5); !ok || v != float32(1.5) {
		t.Errorf("narrowFloat(1.5) = %v,%v, want float32(1.5),true", v, ok)
	}
	if _, ok := narrowFloat("x"); ok {
		t.Error("narrowFloat(\"x\") should report no change")
	}
}

func TestWidenFloat(t *testing.T) {
	if v, ok := widenFloat(3); !ok || v != float64(3) {
		t.Errorf("widenFloat(3) = %v,%v, want float64(3),true", v, ok)
	}
	if _, ok := widenFloat(1.5); ok {
		t.Error("widenFloat(float64) should report no change (already its own native type)")
	}
}

func TestNewNodeCoercedWidensIntToFloat64Field(t *testing.T) {
	// Camera's fov/aspect/near/far are float64; YAML decodes bare
	// integer literals as int, which must widen, not narrow.
	n, err := newNodeCoerced(cameraKindForTest(t), []any{60, 1, 1, 100})
	if err != nil {
		t.Fatal(err)
	}
	if n == nil {
		t.Fatal("expected a constructed node")
	}
}

func cameraKindForTest(t *testing.T) Kind {
	t.Helper()
	k, ok := KindByName("Camera")
	if !ok {
		t.Fatal("Camera kind not registered")
	}
	return k
}
