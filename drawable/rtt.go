// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package drawable

import (
	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/scenegraph"
)

// KindRTT is the node kind for the render-to-texture class (§4.7 RTT).
const KindRTT scenegraph.Kind = 350

func init() {
	scenegraph.Register(&scenegraph.Class{ID: KindRTT, Name: "RTT", New: func() scenegraph.Impl { return &rttImpl{} }})
}

// MaxColorAttachments bounds RTT's ColorTargets list (§4.7: "supports
// multiple color attachments via draw-buffers").
const MaxColorAttachments = 4

// rttImpl allocates an off-screen render target with one RGBA8 color
// attachment per ColorTargets entry (and, when HasDepth is set, a depth
// attachment), redirecting its child's draw calls into it (§4.7 RTT).
// The attachments are textures the backend creates for the target; the
// Texture nodes in ColorTargets are type-checked and counted, but their
// own GPU textures are not attached. Grounded on the teacher's renderer
// pass abstraction, which likewise binds a render target before
// recursing into the pass's draw list and restores the previous
// binding afterward.
type rttImpl struct {
	scenegraph.NopImpl

	Width         int                `ngl:"width,ctor"`
	Height        int                `ngl:"height,ctor"`
	ColorTargets  []*scenegraph.Node `ngl:"color_targets,ctor" nglallowed:"Texture"`
	HasDepth      bool               `ngl:"has_depth,ctor"`
	Samples       int                `ngl:"samples"`
	Child         *scenegraph.Node   `ngl:"child" nglallowed:"Identity,Translate,Rotate,Scale,Group,TexturedShape,Camera,RTT,FPS"`

	rt gfx.RenderTarget
}

func (r *rttImpl) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	if r.Width <= 0 || r.Height <= 0 {
		return gfxerr.New("drawable.RTT.Init", gfxerr.InvalidArg)
	}
	if len(r.ColorTargets) > MaxColorAttachments {
		return gfxerr.New("drawable.RTT.Init", gfxerr.LimitExceeded)
	}
	for _, ct := range r.ColorTargets {
		if _, ok := ct.Impl().(TextureProvider); !ok {
			return gfxerr.New("drawable.RTT.Init", gfxerr.InvalidArg)
		}
	}
	return nil
}

func (r *rttImpl) Prefetch(n *scenegraph.Node, ctx *scenegraph.Context) error {
	desc := gfx.RenderTargetDesc{Width: r.Width, Height: r.Height, HasDepth: r.HasDepth}
	for range r.ColorTargets {
		desc.ColorFormat = append(desc.ColorFormat, gfx.RGBA8)
	}
	rt, err := ctx.Backend.NewRenderTarget(desc)
	if err != nil {
		return gfxerr.Wrap("drawable.RTT.Prefetch", gfxerr.External, err)
	}
	r.rt = rt
	return nil
}

func (r *rttImpl) Release(n *scenegraph.Node, ctx *scenegraph.Context) {
	if r.rt != nil {
		ctx.Backend.Destroy(r.rt)
		r.rt = nil
	}
}

func (r *rttImpl) Update(n *scenegraph.Node, ctx *scenegraph.Context, t float64) error {
	if r.Child == nil {
		return nil
	}
	r.Child.Modelview = n.Modelview
	r.Child.Projection = n.Projection
	return scenegraph.Update(r.Child, t)
}

// Draw binds this target's framebuffer, recurses into the child's
// draw, then restores whatever target was bound before (§4.7 RTT:
// "saves current framebuffer binding... restores binding"), not the
// default framebuffer unconditionally — an RTT nested inside another
// RTT's subtree (both allow "RTT" as a child kind) must hand control
// back to the outer target, not kick the default framebuffer in.
// Samples is not passed to the backend: the target is always
// single-sample and no blit-resolve is performed.
func (r *rttImpl) Draw(n *scenegraph.Node, ctx *scenegraph.Context) {
	b := ctx.Backend
	prev := b.BindRenderTarget(r.rt)
	if r.Child != nil {
		scenegraph.Draw(r.Child)
	}
	b.BindRenderTarget(prev)
}

func (r *rttImpl) RenderTarget() gfx.RenderTarget { return r.rt }
