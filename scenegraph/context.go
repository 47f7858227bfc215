// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package scenegraph

import (
	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/nglog"
	"github.com/gviegas/nodegfx/statecache"
)

// Context bundles everything a node's lifecycle and draw hooks need
// to reach the GPU (§3.3, §4.8): the backend, its state cache, and a
// logger. A node is attached to at most one Context at a time.
type Context struct {
	Backend gfx.Backend
	Cache   *statecache.Cache
	Log     *nglog.Logger

	root *Node
}

// NewContext creates a Context bound to a backend. log may be nil, in
// which case a Logger with its default (Info) level is used.
func NewContext(backend gfx.Backend, log *nglog.Logger) *Context {
	if log == nil {
		log = nglog.Default()
	}
	return &Context{
		Backend: backend,
		Cache:   statecache.New(),
		Log:     log,
	}
}

// SetScene attaches root as the Context's scene root (§6.1 set_scene),
// detaching any previous root first.
func (c *Context) SetScene(root *Node) error {
	if c.root != nil {
		if err := DetachCtx(c.root); err != nil {
			return err
		}
	}
	c.root = nil
	if root == nil {
		return nil
	}
	if err := AttachCtx(root, c); err != nil {
		return err
	}
	c.root = root
	return nil
}

// Scene returns the current scene root, or nil.
func (c *Context) Scene() *Node { return c.root }

// Draw runs one frame of the evaluation pipeline against the current
// scene at time t (§4.5 Pass 1 + Pass 2), then presents.
func (c *Context) Draw(t float64) error {
	if c.root == nil {
		return nil
	}
	CheckResources(c.root, t)
	if err := Update(c.root, t); err != nil {
		return err
	}
	Draw(c.root)
	c.Backend.Present()
	return nil
}
