// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package statecache

import (
	"testing"

	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/gfx/mockbackend"
)

func TestNewColorMaskDefaultsAllEnabled(t *testing.T) {
	c := New()
	if got := c.ColorMask(); got != [4]bool{true, true, true, true} {
		t.Errorf("ColorMask = %v, want all-enabled", got)
	}
}

func TestSetPipelineElidesRepeat(t *testing.T) {
	b := mockbackend.New(4, 4)
	p1, _ := b.NewPipeline(gfx.PipelineDesc{})
	p2, _ := b.NewPipeline(gfx.PipelineDesc{})

	c := New()
	if !c.SetPipeline(p1) {
		t.Error("first SetPipeline should report a change")
	}
	if c.SetPipeline(p1) {
		t.Error("repeating the same pipeline should not report a change")
	}
	if !c.SetPipeline(p2) {
		t.Error("switching pipelines should report a change")
	}
}

func TestSetBlendAndStencilElision(t *testing.T) {
	c := New()
	st := gfx.BlendState{Enabled: true, SrcFactor: gfx.BlendOne}
	if !c.SetBlend(st) {
		t.Error("first SetBlend should report a change")
	}
	if c.SetBlend(st) {
		t.Error("repeating the same blend state should not report a change")
	}
	if c.Blend() != st {
		t.Errorf("Blend() = %v, want %v", c.Blend(), st)
	}

	sst := gfx.StencilState{Ref: 1}
	if !c.SetStencil(sst) {
		t.Error("first SetStencil should report a change")
	}
	if c.SetStencil(sst) {
		t.Error("repeating the same stencil state should not report a change")
	}
}

func TestSetCapabilityValue(t *testing.T) {
	c := New()
	if !c.SetCapabilityValue(gfx.CapBlend, true) {
		t.Error("enabling a never-set capability should report a change")
	}
	if c.SetCapabilityValue(gfx.CapBlend, true) {
		t.Error("setting the same capability value twice should not report a change")
	}
	if !c.Capability(gfx.CapBlend) {
		t.Error("Capability should reflect the last-set value")
	}
	if !c.SetCapabilityValue(gfx.CapBlend, false) {
		t.Error("toggling a capability should report a change")
	}
}

func TestSetScissorTracksEnableAndRect(t *testing.T) {
	c := New()
	r1 := gfx.Scissor{X: 0, Y: 0, Width: 4, Height: 4}
	if !c.SetScissor(r1, true) {
		t.Error("first SetScissor should report a change")
	}
	if c.SetScissor(r1, true) {
		t.Error("repeating the same scissor rect should not report a change")
	}
	if !c.SetScissor(r1, false) {
		t.Error("disabling the scissor test should report a change even with the same rect")
	}
}

func TestSetTextureAndVertexBufferSlots(t *testing.T) {
	b := mockbackend.New(4, 4)
	tex, _ := b.NewTexture(gfx.TextureDesc{Width: 2, Height: 2, Format: gfx.RGBA8})
	buf, _ := b.NewBuffer(64, gfx.VertexBuffer)

	c := New()
	if !c.SetTexture(0, tex) {
		t.Error("first SetTexture at a slot should report a change")
	}
	if c.SetTexture(0, tex) {
		t.Error("repeating the same texture at the same slot should not report a change")
	}
	if !c.SetTexture(0, nil) {
		t.Error("clearing a bound slot should report a change")
	}

	if !c.SetVertexBuffer(0, buf, 12, 0) {
		t.Error("first SetVertexBuffer at a slot should report a change")
	}
	if c.SetVertexBuffer(0, buf, 12, 0) {
		t.Error("repeating the same binding should not report a change")
	}
	if !c.SetVertexBuffer(0, buf, 16, 0) {
		t.Error("changing the stride should report a change")
	}
}

func TestResetClearsCache(t *testing.T) {
	c := New()
	c.SetCapabilityValue(gfx.CapBlend, true)
	c.Reset()
	if c.Capability(gfx.CapBlend) {
		t.Error("Reset should clear cached capability state")
	}
	if !c.SetCapabilityValue(gfx.CapBlend, false) {
		t.Error("after Reset, setting a value equal to the zero value should still report a change")
	}
}
