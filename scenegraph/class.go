// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package scenegraph

import "fmt"

// Impl is implemented by a node class's private data. The runtime
// calls these hooks during the lifecycle transitions of §4.2; a class
// that has no work to do at a given stage embeds NopImpl to satisfy
// the interface with no-ops.
type Impl interface {
	// Init runs once when the node first gains a Context, before any
	// GPU resource is created (§4.2 Init).
	Init(n *Node, ctx *Context) error

	// Prefetch creates GPU resources, transitioning the node to Ready
	// (§4.2 Ready).
	Prefetch(n *Node, ctx *Context) error

	// Update recomputes the node's derived state for time t. Container
	// classes (Group, transform chains, Camera) call scenegraph.Update
	// on their own children from within this hook; leaf classes just
	// update their own state.
	Update(n *Node, ctx *Context, t float64) error

	// Draw issues the node's draw calls, if any. Container classes call
	// scenegraph.Draw on their children from within this hook.
	Draw(n *Node, ctx *Context)

	// Release destroys GPU resources created by Prefetch, transitioning
	// the node to Idle (§4.2 Idle).
	Release(n *Node, ctx *Context)

	// Uninit clears any derived state computed by Init, transitioning
	// the node back to Uninit. It must not assume Release has run; the
	// runtime always calls Release first if needed.
	Uninit(n *Node)
}

// NopImpl implements Impl with no-ops; node classes embed it and
// override only the hooks they need (mirrors the teacher's pattern of
// small, mostly-empty interface satisfiers for leaf node types).
type NopImpl struct{}

func (NopImpl) Init(*Node, *Context) error          { return nil }
func (NopImpl) Prefetch(*Node, *Context) error      { return nil }
func (NopImpl) Update(*Node, *Context, float64) error { return nil }
func (NopImpl) Draw(*Node, *Context)                {}
func (NopImpl) Release(*Node, *Context)             {}
func (NopImpl) Uninit(*Node)                        {}

// Class describes a node kind: its identity and how to construct a
// fresh Impl for it (§3.2).
type Class struct {
	ID   Kind
	Name string
	New  func() Impl
}

var registry = map[Kind]*Class{}

// Register adds a class to the registry. It panics if kind is already
// registered, since the closed set of kinds (§6.3) is fixed at
// init() time and a duplicate registration is a programming error.
func Register(c *Class) {
	if _, dup := registry[c.ID]; dup {
		panic(fmt.Sprintf("scenegraph: kind %v already registered", c.ID))
	}
	registry[c.ID] = c
	RegisterKindName(c.Name, c.ID)
}

// ClassOf returns the registered Class for kind, if any.
func ClassOf(kind Kind) (*Class, bool) {
	c, ok := registry[kind]
	return c, ok
}
