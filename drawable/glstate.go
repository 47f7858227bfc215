// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package drawable

import (
	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/scenegraph"
)

// Node kinds for the GL-state override family (§6.3 State), applied
// around a single node's draw by scenegraph.Draw (§3.1, §4.5, §4.9).
const (
	KindGLState scenegraph.Kind = iota + 360
	KindGLBlendState
	KindGLColorState
	KindGLStencilState
)

func init() {
	scenegraph.Register(&scenegraph.Class{ID: KindGLState, Name: "GLState", New: func() scenegraph.Impl { return &glStateImpl{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindGLBlendState, Name: "GLBlendState", New: func() scenegraph.Impl { return &glBlendStateImpl{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindGLColorState, Name: "GLColorState", New: func() scenegraph.Impl { return &glColorStateImpl{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindGLStencilState, Name: "GLStencilState", New: func() scenegraph.Impl { return &glStencilStateImpl{} }})
}

// glStateImpl toggles a single named capability, e.g. depth testing or
// face culling (§6.3 State: GLState), mirroring the original's generic
// node_glstate.c which wraps a bare GL enable/disable around a subtree.
type glStateImpl struct {
	scenegraph.NopImpl
	Cap     string `ngl:"cap,ctor" nglenum:"depth_test,cull_face,blend,scissor_test,stencil_test,polygon_offset_fill"`
	Enabled bool   `ngl:"enabled,ctor"`
}

var capByName = map[string]gfx.Capability{
	"depth_test":          gfx.CapDepthTest,
	"cull_face":           gfx.CapCullFace,
	"blend":               gfx.CapBlend,
	"scissor_test":        gfx.CapScissorTest,
	"stencil_test":        gfx.CapStencilTest,
	"polygon_offset_fill": gfx.CapPolygonOffsetFill,
}

func (g *glStateImpl) Apply(ctx *scenegraph.Context) func() {
	cap, ok := capByName[g.Cap]
	if !ok {
		return func() {}
	}
	b := ctx.Backend
	prev := b.GetCapability(cap)
	b.SetCapability(cap, g.Enabled)
	return func() { b.SetCapability(cap, prev) }
}

// glBlendStateImpl overrides the blend function/equation around a
// subtree's draw (§6.3 State: GLBlendState).
type glBlendStateImpl struct {
	scenegraph.NopImpl
	Enabled   bool   `ngl:"enabled,ctor"`
	SrcFactor string `ngl:"src_factor" nglenum:"zero,one,src_alpha,one_minus_src_alpha,dst_alpha,one_minus_dst_alpha"`
	DstFactor string `ngl:"dst_factor" nglenum:"zero,one,src_alpha,one_minus_src_alpha,dst_alpha,one_minus_dst_alpha"`
	Op        string `ngl:"op" nglenum:"add,subtract,reverse_subtract"`
}

var blendFactorByName = map[string]gfx.BlendFactor{
	"zero":                   gfx.BlendZero,
	"one":                    gfx.BlendOne,
	"src_alpha":              gfx.BlendSrcAlpha,
	"one_minus_src_alpha":    gfx.BlendOneMinusSrcAlpha,
	"dst_alpha":              gfx.BlendDstAlpha,
	"one_minus_dst_alpha":    gfx.BlendOneMinusDstAlpha,
}

var blendOpByName = map[string]gfx.BlendOp{
	"add":              gfx.BlendAdd,
	"subtract":         gfx.BlendSubtract,
	"reverse_subtract": gfx.BlendReverseSubtract,
}

func (g *glBlendStateImpl) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	if g.SrcFactor != "" {
		if _, ok := blendFactorByName[g.SrcFactor]; !ok {
			return gfxerr.New("drawable.GLBlendState.Init", gfxerr.InvalidArg)
		}
	}
	if g.DstFactor != "" {
		if _, ok := blendFactorByName[g.DstFactor]; !ok {
			return gfxerr.New("drawable.GLBlendState.Init", gfxerr.InvalidArg)
		}
	}
	return nil
}

func (g *glBlendStateImpl) Apply(ctx *scenegraph.Context) func() {
	b := ctx.Backend
	prev := b.GetBlendState()
	src, dst, op := blendFactorByName[g.SrcFactor], blendFactorByName[g.DstFactor], blendOpByName[g.Op]
	next := gfx.BlendState{
		Enabled:   g.Enabled,
		SrcFactor: src, DstFactor: dst,
		SrcAlpha: src, DstAlpha: dst,
		Op: op, AlphaOp: op,
	}
	b.SetBlendState(next)
	return func() { b.SetBlendState(prev) }
}

// glColorStateImpl overrides the color write mask around a subtree's
// draw (§6.3 State: GLColorState).
type glColorStateImpl struct {
	scenegraph.NopImpl
	R bool `ngl:"r,ctor"`
	G bool `ngl:"g,ctor"`
	B bool `ngl:"b,ctor"`
	A bool `ngl:"a,ctor"`
}

func (g *glColorStateImpl) Apply(ctx *scenegraph.Context) func() {
	b := ctx.Backend
	prev := b.GetColorMask()
	b.SetColorMask([4]bool{g.R, g.G, g.B, g.A})
	return func() { b.SetColorMask(prev) }
}

// glStencilStateImpl overrides the stencil test function/ops around a
// subtree's draw (§6.3 State: GLStencilState).
type glStencilStateImpl struct {
	scenegraph.NopImpl
	ReadMask  int    `ngl:"read_mask,ctor"`
	WriteMask int    `ngl:"write_mask,ctor"`
	Ref       int    `ngl:"ref,ctor"`
	Func      string `ngl:"func" nglenum:"never,less,less_equal,equal,not_equal,greater_equal,greater,always"`
	Fail      string `ngl:"fail" nglenum:"keep,zero,replace,incr,decr,invert"`
	DepthFail string `ngl:"depth_fail" nglenum:"keep,zero,replace,incr,decr,invert"`
	Pass      string `ngl:"pass" nglenum:"keep,zero,replace,incr,decr,invert"`
}

var compareFuncByName = map[string]gfx.CompareFunc{
	"never": gfx.CmpNever, "less": gfx.CmpLess, "less_equal": gfx.CmpLessEqual,
	"equal": gfx.CmpEqual, "not_equal": gfx.CmpNotEqual,
	"greater_equal": gfx.CmpGreaterEqual, "greater": gfx.CmpGreater, "always": gfx.CmpAlways,
}

var stencilOpByName = map[string]gfx.StencilOp{
	"keep": gfx.StencilKeep, "zero": gfx.StencilZero, "replace": gfx.StencilReplace,
	"incr": gfx.StencilIncr, "decr": gfx.StencilDecr, "invert": gfx.StencilInvert,
}

func (g *glStencilStateImpl) Apply(ctx *scenegraph.Context) func() {
	b := ctx.Backend
	prev := b.GetStencilState()
	next := gfx.StencilState{
		ReadMask: uint32(g.ReadMask), WriteMask: uint32(g.WriteMask), Ref: uint32(g.Ref),
		Func:      compareFuncByName[g.Func],
		Fail:      stencilOpByName[g.Fail],
		DepthFail: stencilOpByName[g.DepthFail],
		Pass:      stencilOpByName[g.Pass],
	}
	b.SetStencilState(next)
	return func() { b.SetStencilState(prev) }
}
