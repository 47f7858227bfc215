// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package statecache implements the GL-state elision cache of §4.9:
// a small set of "last bound value" slots that backend implementations
// consult before emitting a state-changing call, grounded on the
// teacher's context state-tracking helpers (engine package internal
// render-state bookkeeping).
package statecache

import "github.com/gviegas/nodegfx/gfx"

// Cache tracks the last value set for each piece of pipeline/binding
// state a backend cares about, so that redundant driver calls (binding
// the same program, the same blend state, the same scissor rect) can
// be skipped.
type Cache struct {
	pipeline gfx.Pipeline
	hasPipe  bool

	blend   gfx.BlendState
	hasBlend bool

	stencil   gfx.StencilState
	hasStencil bool

	viewport gfx.Viewport
	hasVP    bool

	scissor   gfx.Scissor
	scissorOn bool
	hasSciss  bool

	textures [32]gfx.Texture

	vertexBufs [16]vbSlot

	caps    [6]bool // indexed by gfx.Capability
	capsSet [6]bool

	colorMask    [4]bool
	hasColorMask bool
}

type vbSlot struct {
	buf            gfx.Buffer
	stride, offset int
	set            bool
}

// New returns an empty Cache, with the color write mask defaulted to
// all-enabled (the GL default before any GLColorState override runs).
func New() *Cache {
	return &Cache{colorMask: [4]bool{true, true, true, true}, hasColorMask: true}
}

// Reset clears every cached slot, forcing the next Set* call to report
// a change; the one exception is SetTexture(unit, nil), since an empty
// texture slot already holds nil. Callers use this after a context loss
// or backend restart.
func (c *Cache) Reset() { *c = Cache{} }

// SetPipeline reports whether pl differs from the cached pipeline,
// updating the cache as a side effect.
func (c *Cache) SetPipeline(pl gfx.Pipeline) bool {
	if c.hasPipe && c.pipeline == pl {
		return false
	}
	c.pipeline = pl
	c.hasPipe = true
	return true
}

// SetBlend reports whether st differs from the cached blend state.
func (c *Cache) SetBlend(st gfx.BlendState) bool {
	if c.hasBlend && c.blend == st {
		return false
	}
	c.blend = st
	c.hasBlend = true
	return true
}

// Blend returns the currently cached blend state, the zero value
// (disabled, BlendZero/BlendZero) if none has been set yet.
func (c *Cache) Blend() gfx.BlendState { return c.blend }

// SetStencil reports whether st differs from the cached stencil state.
func (c *Cache) SetStencil(st gfx.StencilState) bool {
	if c.hasStencil && c.stencil == st {
		return false
	}
	c.stencil = st
	c.hasStencil = true
	return true
}

// Stencil returns the currently cached stencil state.
func (c *Cache) Stencil() gfx.StencilState { return c.stencil }

// SetCapabilityValue records cap's new enabled value, reporting
// whether it actually changed.
func (c *Cache) SetCapabilityValue(cap gfx.Capability, enabled bool) bool {
	if int(cap) < 0 || int(cap) >= len(c.caps) {
		return true
	}
	if c.capsSet[cap] && c.caps[cap] == enabled {
		return false
	}
	c.caps[cap] = enabled
	c.capsSet[cap] = true
	return true
}

// Capability returns cap's last-set value (false if it was never set).
func (c *Cache) Capability(cap gfx.Capability) bool {
	if int(cap) < 0 || int(cap) >= len(c.caps) {
		return false
	}
	return c.caps[cap]
}

// SetColorMaskValue records the color write mask's new value,
// reporting whether it actually changed.
func (c *Cache) SetColorMaskValue(mask [4]bool) bool {
	if c.hasColorMask && c.colorMask == mask {
		return false
	}
	c.colorMask = mask
	c.hasColorMask = true
	return true
}

// ColorMask returns the currently cached color write mask.
func (c *Cache) ColorMask() [4]bool { return c.colorMask }

// SetViewport reports whether vp differs from the cached viewport.
func (c *Cache) SetViewport(vp gfx.Viewport) bool {
	if c.hasVP && c.viewport == vp {
		return false
	}
	c.viewport = vp
	c.hasVP = true
	return true
}

// SetScissor reports whether (sciss, on) differs from the cached
// scissor state.
func (c *Cache) SetScissor(sciss gfx.Scissor, on bool) bool {
	if c.hasSciss && c.scissorOn == on && (!on || c.scissor == sciss) {
		return false
	}
	c.scissor = sciss
	c.scissorOn = on
	c.hasSciss = true
	return true
}

// SetTexture reports whether tex differs from the texture currently
// cached at the given sampler unit. Units beyond the cache's fixed
// array always report a change (no caching).
func (c *Cache) SetTexture(unit int, tex gfx.Texture) bool {
	if unit < 0 || unit >= len(c.textures) {
		return true
	}
	if c.textures[unit] == tex {
		return false
	}
	c.textures[unit] = tex
	return true
}

// SetVertexBuffer reports whether the binding at slot differs from the
// cached one.
func (c *Cache) SetVertexBuffer(slot int, buf gfx.Buffer, stride, offset int) bool {
	if slot < 0 || slot >= len(c.vertexBufs) {
		return true
	}
	cur := c.vertexBufs[slot]
	if cur.set && cur.buf == buf && cur.stride == stride && cur.offset == offset {
		return false
	}
	c.vertexBufs[slot] = vbSlot{buf, stride, offset, true}
	return true
}
