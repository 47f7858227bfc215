// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package ngl is the public API facade of §6.1/§6.2: a Context type
// wrapping scenegraph.Context with the caller-facing lifecycle
// (create/configure/resize/set_scene/draw/free), and thin Node helpers
// over scenegraph.Node's already-refcounted handle. It is the one
// package every node-registering package (anim, transform, drawable,
// media) is wired through via blank import, so that constructing any
// node kind in §6.3's closed set works the moment a caller imports
// "github.com/gviegas/nodegfx/ngl" — grounded on the teacher's root
// scene.go/node.go, which plays the same "everything is reachable from
// here" role for gviegas/neo3 (kept in the workspace as superseded
// reference, see DESIGN.md).
package ngl

import (
	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/gfx/glbackend"
	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/nglcfg"
	"github.com/gviegas/nodegfx/nglog"
	"github.com/gviegas/nodegfx/scenegraph"

	_ "github.com/gviegas/nodegfx/anim"
	_ "github.com/gviegas/nodegfx/drawable"
	_ "github.com/gviegas/nodegfx/media"
	_ "github.com/gviegas/nodegfx/transform"
)

// Context is the caller-facing handle of §6.1. The zero value (from
// Create) is allocated but not configured; every other method except
// Configure and SetGLContext requires a prior successful Configure.
type Context struct {
	sg  *scenegraph.Context
	own *glbackend.Backend // non-nil only when Configure (not SetGLContext) created it
}

// Create allocates a Context with no GPU work done yet (§6.1 create).
func Create() *Context { return &Context{} }

// Configure sets backend kind, platform kind, offscreen flag,
// dimensions, MSAA samples, swap interval, viewport override and clear
// color from cfg; creates the graphics context and probes its feature
// limits (§6.1 configure). Calling it twice on the same Context is
// InvalidUsage; call Free first.
func (c *Context) Configure(cfg nglcfg.Config) error {
	if c.sg != nil {
		return gfxerr.New("ngl.Context.Configure", gfxerr.InvalidUsage)
	}
	switch cfg.Backend {
	case nglcfg.OpenGL, nglcfg.OpenGLES:
		b, err := glbackend.New(cfg)
		if err != nil {
			return gfxerr.Wrap("ngl.Context.Configure", gfxerr.External, err)
		}
		c.own = b
		c.sg = scenegraph.NewContext(b, nglog.Default())
	default:
		return gfxerr.New("ngl.Context.Configure", gfxerr.InvalidArg)
	}
	if cfg.HasViewport {
		c.applyViewport(cfg.Viewport)
	}
	return nil
}

// SetGLContext wraps an existing, externally owned and already-current
// GL context (§6.1 supplementary: "wraps an existing external GL
// context (no ownership)"). The caller remains responsible for
// make-current/swap-buffers/destroy of the underlying context; Free
// will not tear it down.
func (c *Context) SetGLContext(width, height int, platform nglcfg.Platform, api nglcfg.Backend) error {
	if c.sg != nil {
		return gfxerr.New("ngl.Context.SetGLContext", gfxerr.InvalidUsage)
	}
	b, err := glbackend.Wrap(width, height)
	if err != nil {
		return gfxerr.Wrap("ngl.Context.SetGLContext", gfxerr.External, err)
	}
	c.sg = scenegraph.NewContext(b, nglog.Default())
	return nil
}

func (c *Context) applyViewport(vp [4]int) {
	c.sg.Backend.SetViewport(gfx.Viewport{X: vp[0], Y: vp[1], Width: vp[2], Height: vp[3], MinDepth: 0, MaxDepth: 1})
}

// Resize resizes the swap surface and, if viewport is non-nil, updates
// the current viewport to it; otherwise the viewport is left as-is
// (§6.1 resize).
func (c *Context) Resize(width, height int, viewport *[4]int) error {
	if c.sg == nil {
		return gfxerr.New("ngl.Context.Resize", gfxerr.InvalidUsage)
	}
	c.sg.Backend.Resize(width, height)
	if viewport != nil {
		c.applyViewport(*viewport)
	}
	return nil
}

// SetScene detaches the previous scene, if any, and attaches root as
// the new one, transitively attaching the Context to every reachable
// node (§6.1 set_scene). Passing nil detaches without replacing.
func (c *Context) SetScene(root *Node) error {
	if c.sg == nil {
		return gfxerr.New("ngl.Context.SetScene", gfxerr.InvalidUsage)
	}
	return c.sg.SetScene(root)
}

// Draw runs Pass 1 then Pass 2 of the evaluation pipeline against the
// current scene at t_seconds, then swaps buffers (§6.1 draw).
func (c *Context) Draw(tSeconds float64) error {
	if c.sg == nil {
		return gfxerr.New("ngl.Context.Draw", gfxerr.InvalidUsage)
	}
	return c.sg.Draw(tSeconds)
}

// Free detaches the scene and destroys the graphics context (§6.1
// free). A Context created via SetGLContext leaves the underlying GL
// context alone, matching its "no ownership" contract.
func (c *Context) Free() error {
	if c.sg == nil {
		return nil
	}
	err := c.sg.SetScene(nil)
	if c.own != nil {
		c.own.DestroyContext()
	}
	c.sg, c.own = nil, nil
	return err
}

// Backend exposes the underlying gfx.Backend, for callers that need to
// issue backend calls outside the node pipeline (e.g. a demo's own
// clear-before-draw).
func (c *Context) Backend() gfx.Backend {
	if c.sg == nil {
		return nil
	}
	return c.sg.Backend
}
