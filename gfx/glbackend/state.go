// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/gviegas/nodegfx/gfx"
)

var capEnum = [...]uint32{
	gfx.CapDepthTest:          gl.DEPTH_TEST,
	gfx.CapCullFace:           gl.CULL_FACE,
	gfx.CapBlend:              gl.BLEND,
	gfx.CapScissorTest:        gl.SCISSOR_TEST,
	gfx.CapStencilTest:        gl.STENCIL_TEST,
	gfx.CapPolygonOffsetFill:  gl.POLYGON_OFFSET_FILL,
}

// SetCapability applies a dynamic capability toggle, eliding the call
// when the state cache already reflects the requested value (§4.9,
// §6.3 GLState).
func (b *Backend) SetCapability(cap gfx.Capability, enabled bool) {
	if !b.cache.SetCapabilityValue(cap, enabled) {
		return
	}
	if int(cap) < 0 || int(cap) >= len(capEnum) {
		return
	}
	if enabled {
		gl.Enable(capEnum[cap])
	} else {
		gl.Disable(capEnum[cap])
	}
}

func (b *Backend) GetCapability(cap gfx.Capability) bool { return b.cache.Capability(cap) }

var blendFactorEnum = [...]uint32{
	gfx.BlendZero:                gl.ZERO,
	gfx.BlendOne:                 gl.ONE,
	gfx.BlendSrcAlpha:            gl.SRC_ALPHA,
	gfx.BlendOneMinusSrcAlpha:    gl.ONE_MINUS_SRC_ALPHA,
	gfx.BlendDstAlpha:            gl.DST_ALPHA,
	gfx.BlendOneMinusDstAlpha:    gl.ONE_MINUS_DST_ALPHA,
}

var blendOpEnum = [...]uint32{
	gfx.BlendAdd:            gl.FUNC_ADD,
	gfx.BlendSubtract:       gl.FUNC_SUBTRACT,
	gfx.BlendReverseSubtract: gl.FUNC_REVERSE_SUBTRACT,
}

// SetBlendState applies a dynamic blend override (§6.3 GLBlendState),
// distinct from the blend state baked into a PipelineDesc at pipeline
// creation time: this one is meant to be pushed/popped around a single
// node's Draw by scenegraph.Draw's glstates handling.
func (b *Backend) SetBlendState(st gfx.BlendState) {
	if !b.cache.SetBlend(st) {
		return
	}
	if st.Enabled {
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}
	gl.BlendFuncSeparate(blendFactorEnum[st.SrcFactor], blendFactorEnum[st.DstFactor],
		blendFactorEnum[st.SrcAlpha], blendFactorEnum[st.DstAlpha])
	gl.BlendEquationSeparate(blendOpEnum[st.Op], blendOpEnum[st.AlphaOp])
}

func (b *Backend) GetBlendState() gfx.BlendState { return b.cache.Blend() }

var compareFuncEnum = [...]uint32{
	gfx.CmpNever: gl.NEVER, gfx.CmpLess: gl.LESS, gfx.CmpLessEqual: gl.LEQUAL,
	gfx.CmpEqual: gl.EQUAL, gfx.CmpNotEqual: gl.NOTEQUAL,
	gfx.CmpGreaterEqual: gl.GEQUAL, gfx.CmpGreater: gl.GREATER, gfx.CmpAlways: gl.ALWAYS,
}

var stencilOpEnum = [...]uint32{
	gfx.StencilKeep: gl.KEEP, gfx.StencilZero: gl.ZERO, gfx.StencilReplace: gl.REPLACE,
	gfx.StencilIncr: gl.INCR, gfx.StencilDecr: gl.DECR, gfx.StencilInvert: gl.INVERT,
}

// SetStencilState applies a dynamic stencil override (§6.3
// GLStencilState), mirroring SetBlendState's split from the
// pipeline-baked stencil state.
func (b *Backend) SetStencilState(st gfx.StencilState) {
	if !b.cache.SetStencil(st) {
		return
	}
	gl.StencilFunc(compareFuncEnum[st.Func], int32(st.Ref), st.ReadMask)
	gl.StencilMask(st.WriteMask)
	gl.StencilOp(stencilOpEnum[st.Fail], stencilOpEnum[st.DepthFail], stencilOpEnum[st.Pass])
}

func (b *Backend) GetStencilState() gfx.StencilState { return b.cache.Stencil() }

// SetColorMask applies a dynamic color write mask override (§6.3
// GLColorState).
func (b *Backend) SetColorMask(mask [4]bool) {
	if !b.cache.SetColorMaskValue(mask) {
		return
	}
	gl.ColorMask(mask[0], mask[1], mask[2], mask[3])
}

func (b *Backend) GetColorMask() [4]bool { return b.cache.ColorMask() }
