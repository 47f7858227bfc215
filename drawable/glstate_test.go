// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package drawable

import (
	"testing"

	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/gfx/mockbackend"
	"github.com/gviegas/nodegfx/scenegraph"
)

// stubDrawable draws nothing but records the capability value it
// observes while inside Draw, so a test can assert a GLState override
// is actually in effect around the wrapped node's draw.
type stubDrawable struct {
	scenegraph.NopImpl
	seenEnabled bool
}

const kindStubDrawable scenegraph.Kind = 9001

func init() {
	scenegraph.Register(&scenegraph.Class{ID: kindStubDrawable, Name: "TestStubDrawable", New: func() scenegraph.Impl { return &stubDrawable{} }})
}

func (s *stubDrawable) Draw(n *scenegraph.Node, ctx *scenegraph.Context) {
	s.seenEnabled = ctx.Backend.GetCapability(gfx.CapBlend)
}

func TestGLStateAppliesAndRestoresAroundDraw(t *testing.T) {
	stub, err := scenegraph.New(kindStubDrawable)
	if err != nil {
		t.Fatal(err)
	}
	gs, err := scenegraph.New(KindGLState, "blend", true)
	if err != nil {
		t.Fatal(err)
	}
	if err := stub.AddParam("glstates", gs); err != nil {
		t.Fatal(err)
	}

	b := mockbackend.New(4, 4)
	ctx := scenegraph.NewContext(b, nil)
	if err := ctx.SetScene(stub); err != nil {
		t.Fatal(err)
	}
	if err := scenegraph.Update(stub, 0); err != nil {
		t.Fatal(err)
	}
	scenegraph.Draw(stub)

	if !stub.Impl().(*stubDrawable).seenEnabled {
		t.Errorf("stubDrawable.Draw observed CapBlend disabled; GLState override was not applied")
	}
	if b.GetCapability(gfx.CapBlend) {
		t.Errorf("CapBlend left enabled after Draw; GLState override was not restored")
	}
}

func TestGLBlendStateRejectsUnknownFactor(t *testing.T) {
	n, err := scenegraph.New(KindGLBlendState, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := n.SetParam("src_factor", "not_a_factor"); err == nil {
		t.Fatalf("SetParam accepted an out-of-enum src_factor")
	}
}

func TestGLColorStateMasksChannels(t *testing.T) {
	n, err := scenegraph.New(KindGLColorState, true, false, true, false)
	if err != nil {
		t.Fatal(err)
	}
	impl := n.Impl().(*glColorStateImpl)
	b := mockbackend.New(2, 2)
	ctx := scenegraph.NewContext(b, nil)
	restore := impl.Apply(ctx)
	if got := b.GetColorMask(); got != [4]bool{true, false, true, false} {
		t.Errorf("GetColorMask = %v, want [true false true false]", got)
	}
	restore()
	if got := b.GetColorMask(); got != [4]bool{true, true, true, true} {
		t.Errorf("GetColorMask after restore = %v, want all-enabled default", got)
	}
}
