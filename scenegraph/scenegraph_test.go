// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package scenegraph

import (
	"testing"

	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/rrange"
)

const (
	kindGroup Kind = iota + 1
	kindLeaf
	kindRangeContinuous
	kindRangeNoRender
	kindRangeOnce
)

type groupImpl struct {
	NopImpl
	Children []*Node `ngl:"children"`
}

type leafImpl struct {
	NopImpl
	prefetched, released int
	updated, drawn        int
}

func (l *leafImpl) Prefetch(*Node, *Context) error { l.prefetched++; return nil }
func (l *leafImpl) Release(*Node, *Context)        { l.released++ }
func (l *leafImpl) Update(*Node, *Context, float64) error {
	l.updated++
	return nil
}
func (l *leafImpl) Draw(*Node, *Context) { l.drawn++ }

type rangeImpl struct {
	NopImpl
	Start float64
	kind  rrange.Kind
}

func (r *rangeImpl) StartTime() float64    { return r.Start }
func (r *rangeImpl) RangeKind() rrange.Kind { return r.kind }

type onceImpl struct {
	rangeImpl
	Render  float64
	updated bool
}

func (o *onceImpl) RenderTime() float64  { return o.Render }
func (o *onceImpl) Updated() bool        { return o.updated }
func (o *onceImpl) SetUpdated(v bool)    { o.updated = v }

func init() {
	Register(&Class{ID: kindGroup, Name: "TestGroup", New: func() Impl { return &groupImpl{} }})
	Register(&Class{ID: kindLeaf, Name: "TestLeaf", New: func() Impl { return &leafImpl{} }})
	Register(&Class{ID: kindRangeContinuous, Name: "TestRangeContinuous", New: func() Impl {
		return &rangeImpl{kind: rrange.Continuous}
	}})
	Register(&Class{ID: kindRangeNoRender, Name: "TestRangeNoRender", New: func() Impl {
		return &rangeImpl{kind: rrange.NoRender}
	}})
	Register(&Class{ID: kindRangeOnce, Name: "TestRangeOnce", New: func() Impl {
		r := &onceImpl{}
		r.kind = rrange.Once
		return r
	}})
}

type fakeBackend struct{}

func (fakeBackend) Limits() gfx.Limits                                 { return gfx.Limits{} }
func (fakeBackend) Resize(int, int)                                    {}
func (fakeBackend) Clear(gfx.RenderTarget, [4]float32, float32, uint32, gfx.ClearMask) {}
func (fakeBackend) SetViewport(gfx.Viewport)                           {}
func (fakeBackend) SetScissor(gfx.Scissor, bool)                       {}
func (fakeBackend) BindRenderTarget(gfx.RenderTarget) gfx.RenderTarget { return nil }
func (fakeBackend) NewRenderTarget(gfx.RenderTargetDesc) (gfx.RenderTarget, error) { return nil, nil }
func (fakeBackend) NewBuffer(int, gfx.BufferUsage) (gfx.Buffer, error) { return nil, nil }
func (fakeBackend) UpdateBuffer(gfx.Buffer, int, []byte) error         { return nil }
func (fakeBackend) NewTexture(gfx.TextureDesc) (gfx.Texture, error)    { return nil, nil }
func (fakeBackend) UpdateTexture(gfx.Texture, []byte, int, int) error  { return nil }
func (fakeBackend) NewPipeline(gfx.PipelineDesc) (gfx.Pipeline, error) { return nil, nil }
func (fakeBackend) SetPipeline(gfx.Pipeline)                           {}
func (fakeBackend) SetUniform(gfx.Pipeline, string, any) error         { return nil }
func (fakeBackend) SetTexture(int, gfx.Texture)                       {}
func (fakeBackend) SetVertexBuffer(int, gfx.Buffer, int, int)          {}
func (fakeBackend) SetAttribute(int, int, gfx.AttribFormat, int)       {}
func (fakeBackend) Draw(gfx.Topology, int, int, int)                   {}
func (fakeBackend) DrawIndexed(gfx.Topology, int, int, int, gfx.Buffer) {}
func (fakeBackend) Destroy(gfx.Destroyer)                              {}
func (fakeBackend) Present()                                           {}
func (fakeBackend) ReadPixels(int, int, int, int) []byte               { return nil }
func (fakeBackend) SetCapability(gfx.Capability, bool)                 {}
func (fakeBackend) GetCapability(gfx.Capability) bool                  { return false }
func (fakeBackend) SetBlendState(gfx.BlendState)                       {}
func (fakeBackend) GetBlendState() gfx.BlendState                      { return gfx.BlendState{} }
func (fakeBackend) SetStencilState(gfx.StencilState)                   {}
func (fakeBackend) GetStencilState() gfx.StencilState                  { return gfx.StencilState{} }
func (fakeBackend) SetColorMask([4]bool)                               {}
func (fakeBackend) GetColorMask() [4]bool                              { return [4]bool{} }

func newTestContext() *Context {
	return NewContext(fakeBackend{}, nil)
}

func TestAttachInitPrefetch(t *testing.T) {
	leaf, err := New(kindLeaf)
	if err != nil {
		t.Fatal(err)
	}
	group, err := New(kindGroup)
	if err != nil {
		t.Fatal(err)
	}
	if err := group.AddParam("children", leaf); err != nil {
		t.Fatal(err)
	}

	ctx := newTestContext()
	if err := ctx.SetScene(group); err != nil {
		t.Fatal(err)
	}
	if leaf.ctx != ctx || group.ctx != ctx {
		t.Fatal("expected both nodes attached")
	}

	CheckResources(group, 0)
	li := leaf.Impl().(*leafImpl)
	if li.prefetched != 1 {
		t.Errorf("prefetched = %d, want 1", li.prefetched)
	}

	if err := Update(group, 0); err != nil {
		t.Fatal(err)
	}
	if err := Update(leaf, 0); err != nil {
		t.Fatal(err)
	}
	Draw(leaf)
	if li.updated != 1 || li.drawn != 1 {
		t.Errorf("updated=%d drawn=%d, want 1,1", li.updated, li.drawn)
	}

	// A second Update at the same time must not call the hook again.
	if err := Update(leaf, 0); err != nil {
		t.Fatal(err)
	}
	if li.updated != 1 {
		t.Errorf("updated = %d, want 1 (no redundant update)", li.updated)
	}
}

func TestReleaseOnInactivity(t *testing.T) {
	leaf, _ := New(kindLeaf)

	norender, _ := New(kindRangeNoRender)
	norender.Impl().(*rangeImpl).Start = 0
	cont, _ := New(kindRangeContinuous)
	cont.Impl().(*rangeImpl).Start = 10
	if err := leaf.AddParam("ranges", norender, cont); err != nil {
		t.Fatal(err)
	}

	ctx := newTestContext()
	if err := ctx.SetScene(leaf); err != nil {
		t.Fatal(err)
	}
	li := leaf.Impl().(*leafImpl)

	// t=0: NoRender selected, next range 10s away: beyond the
	// look-ahead window, so the node never becomes Ready.
	CheckResources(leaf, 0)
	if li.prefetched != 0 {
		t.Fatalf("prefetched = %d, want 0 (still far from next range)", li.prefetched)
	}

	// t=9.5: within PrefetchTime of the next range: look-ahead forces
	// activity, so the node is prefetched.
	CheckResources(leaf, 9.5)
	if li.prefetched != 1 {
		t.Fatalf("prefetched = %d, want 1", li.prefetched)
	}

	// t=20: the Continuous range is in effect: stays active.
	CheckResources(leaf, 20)
	if li.released != 0 {
		t.Fatalf("released = %d, want 0 while Continuous", li.released)
	}

	// Seek back to t=0: NoRender selected again, far from the next
	// range: the node must be released.
	CheckResources(leaf, 0)
	if li.released != 1 {
		t.Errorf("released = %d, want 1", li.released)
	}
}

func TestSetParamForcesUninit(t *testing.T) {
	leaf, _ := New(kindLeaf)
	ctx := newTestContext()
	ctx.SetScene(leaf)
	if err := Prefetch(leaf); err != nil {
		t.Fatal(err)
	}
	li := leaf.Impl().(*leafImpl)
	if li.prefetched != 1 {
		t.Fatal("expected prefetch")
	}
	if err := leaf.SetParam("name", "renamed"); err != nil {
		t.Fatal(err)
	}
	if li.released != 1 {
		t.Errorf("released = %d, want 1 after SetParam", li.released)
	}
	if leaf.Name != "renamed" {
		t.Errorf("Name = %q", leaf.Name)
	}
}
