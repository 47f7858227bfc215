// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package drawable

import (
	"testing"

	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/gfx/mockbackend"
	"github.com/gviegas/nodegfx/scenegraph"
)

// trackingBackend wraps mockbackend.Backend (the only way to mint
// valid gfx.Destroyer-satisfying resources from outside package gfx)
// and records every render target BindRenderTarget is asked to bind,
// in call order, so a test can check what a nested RTT actually
// rebinds to rather than only the tree's final state.
type trackingBackend struct {
	*mockbackend.Backend
	binds []gfx.RenderTarget
}

func (t *trackingBackend) BindRenderTarget(rt gfx.RenderTarget) gfx.RenderTarget {
	t.binds = append(t.binds, rt)
	return t.Backend.BindRenderTarget(rt)
}

func TestRTTDrawRestoresOuterTargetNotDefaultFramebuffer(t *testing.T) {
	tex, err := scenegraph.New(KindTexture, 4, 4, FormatRGBA8)
	if err != nil {
		t.Fatal(err)
	}
	inner, err := scenegraph.New(KindRTT, 4, 4, []*scenegraph.Node{tex}, false)
	if err != nil {
		t.Fatal(err)
	}
	outerTex, err := scenegraph.New(KindTexture, 4, 4, FormatRGBA8)
	if err != nil {
		t.Fatal(err)
	}
	outer, err := scenegraph.New(KindRTT, 4, 4, []*scenegraph.Node{outerTex}, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := outer.SetParam("child", inner); err != nil {
		t.Fatal(err)
	}

	tb := &trackingBackend{Backend: mockbackend.New(4, 4)}
	ctx := scenegraph.NewContext(tb, nil)
	if err := ctx.SetScene(outer); err != nil {
		t.Fatal(err)
	}
	if err := scenegraph.Update(outer, 0); err != nil {
		t.Fatal(err)
	}
	scenegraph.Draw(outer)

	if len(tb.binds) != 4 {
		t.Fatalf("got %d BindRenderTarget calls, want 4 (outer, inner, restore-to-outer, restore-to-default); calls: %v", len(tb.binds), tb.binds)
	}
	outerRT := outer.Impl().(*rttImpl).rt
	innerRT := inner.Impl().(*rttImpl).rt

	if tb.binds[0] != outerRT {
		t.Error("first bind should be the outer RTT's own target")
	}
	if tb.binds[1] != innerRT {
		t.Error("second bind should be the inner RTT's own target")
	}
	if tb.binds[2] != outerRT {
		t.Errorf("inner RTT must restore the outer RTT's target on exit, not the default framebuffer; got %v, want the outer target", tb.binds[2])
	}
	if tb.binds[3] != nil {
		t.Errorf("outer RTT must restore the default framebuffer on exit; got %v, want nil", tb.binds[3])
	}
}
