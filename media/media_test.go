// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package media

import (
	"testing"
	"time"

	"github.com/gviegas/nodegfx/gfx/mockbackend"
	"github.com/gviegas/nodegfx/scenegraph"
)

type fakeSource struct {
	frame Frame
	ok    bool
	err   error
}

func (f *fakeSource) Frame(t float64, timeout time.Duration) (Frame, bool, error) {
	return f.frame, f.ok, f.err
}

func newTestNode(t *testing.T) (*scenegraph.Node, *mediaImpl, *scenegraph.Context) {
	t.Helper()
	n, err := scenegraph.New(KindMedia)
	if err != nil {
		t.Fatal(err)
	}
	ctx := scenegraph.NewContext(mockbackend.New(4, 4), nil)
	if err := ctx.SetScene(n); err != nil {
		t.Fatal(err)
	}
	if err := scenegraph.Prefetch(n); err != nil {
		t.Fatal(err)
	}
	return n, n.Impl().(*mediaImpl), ctx
}

func TestUpdateUploadsSoftwareFrame(t *testing.T) {
	n, impl, ctx := newTestNode(t)
	impl.Source = &fakeSource{
		frame: Frame{Format: RGBASoftware, Width: 4, Height: 4, Data: make([]byte, 4*4*4)},
		ok:    true,
	}
	if err := scenegraph.Update(n, 0); err != nil {
		t.Fatal(err)
	}
	if impl.GPUTexture() == nil {
		t.Fatal("expected a GPU texture after a successful upload")
	}
	if impl.texW != 4 || impl.texH != 4 {
		t.Errorf("texW,texH = %d,%d, want 4,4", impl.texW, impl.texH)
	}
	_ = ctx
}

func TestUpdateDroppedFrameKeepsPreviousTexture(t *testing.T) {
	n, impl, _ := newTestNode(t)
	impl.Source = &fakeSource{
		frame: Frame{Format: RGBASoftware, Width: 2, Height: 2, Data: make([]byte, 2*2*4)},
		ok:    true,
	}
	if err := scenegraph.Update(n, 0); err != nil {
		t.Fatal(err)
	}
	first := impl.GPUTexture()

	impl.Source = &fakeSource{ok: false}
	if err := scenegraph.Update(n, 1); err != nil {
		t.Fatal(err)
	}
	if impl.GPUTexture() != first {
		t.Error("a dropped frame (buffer not ready) must not replace the existing texture")
	}
}

func TestUpdateOpaqueFormatUnsupported(t *testing.T) {
	n, impl, _ := newTestNode(t)
	impl.Source = &fakeSource{
		frame: Frame{Format: OpaqueAndroidBuffer},
		ok:    true,
	}
	if err := scenegraph.Update(n, 0); err == nil {
		t.Fatal("expected an error for an opaque frame format with no import path")
	}
}

func TestLinesizePaddingScalesCoordsMatrix(t *testing.T) {
	n, impl, _ := newTestNode(t)
	impl.Source = &fakeSource{
		frame: Frame{Format: RGBASoftware, Width: 4, Height: 4, Linesize: 8, Data: make([]byte, 8*4*4)},
		ok:    true,
	}
	if err := scenegraph.Update(n, 0); err != nil {
		t.Fatal(err)
	}
	m := impl.CoordsMatrix()
	if m[0][0] != 0.5 {
		t.Errorf("CoordsMatrix[0][0] = %g, want 0.5 (4/8 linesize correction)", m[0][0])
	}
}
