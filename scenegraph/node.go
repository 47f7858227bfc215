// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package scenegraph

import (
	"fmt"
	"sync/atomic"

	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/lifecycle"
	"github.com/gviegas/nodegfx/linear"
	"github.com/gviegas/nodegfx/param"
	"github.com/gviegas/nodegfx/rrange"
)

// Node is an instance of a node class (§3.1). It owns the common
// schema (name, GL-state overrides, render ranges), the runtime state
// every class needs regardless of its specific parameters, and the
// class-specific Impl.
type Node struct {
	refs int32

	class *Class
	impl  Impl

	Name string

	ctx   *Context
	state lifecycle.State

	// Derived per-frame transform, written by parent transform/camera
	// nodes during Update (§4.6).
	Modelview  linear.M4
	Projection linear.M4

	lastUpdate float64 // -1 until the first Update call
	drawme     bool

	activeTime float64
	activeSet  bool
	isActive   bool

	glStates []*Node
	ranges   []*Node

	// rangeEntries mirrors ranges as the rrange.Entry view Scheduler.Select
	// needs; rebuilt by Init alongside the StartTime sort.
	rangeEntries []rrange.Entry
	rangeSched   rrange.Scheduler
	currentRange int // -1 until a range has been selected
}

// Kind implements param.Handle, letting a *Node be stored in any
// NodeRef/NodeList schema field.
func (n *Node) Kind() Kind { return n.class.ID }

// New creates a node of the given kind, applying ctorArgs to its
// Constructor-flagged parameters in schema order (§3.2).
func New(kind Kind, ctorArgs ...any) (*Node, error) {
	class, ok := ClassOf(kind)
	if !ok {
		return nil, gfxerr.New("scenegraph.New", gfxerr.InvalidArg)
	}
	impl := class.New()
	n := &Node{
		refs:         1,
		class:        class,
		impl:         impl,
		state:        lifecycle.Uninit,
		lastUpdate:   -1,
		currentRange: -1,
	}
	n.Modelview = linear.Identity()
	n.Projection = linear.Identity()

	fields := param.Schema(impl)
	ctors := param.ConstructorFields(fields)
	if len(ctorArgs) != len(ctors) {
		return nil, gfxerr.Wrap("scenegraph.New", gfxerr.InvalidArg,
			fmt.Errorf("%s: want %d constructor arguments, have %d", class.Name, len(ctors), len(ctorArgs)))
	}
	for i, f := range ctors {
		if err := param.Set(impl, f.Key, ctorArgs[i]); err != nil {
			return nil, gfxerr.Wrap("scenegraph.New", gfxerr.InvalidArg, err)
		}
	}
	return n, nil
}

// Ref increments the node's reference count and returns n, mirroring
// the teacher's pattern of chainable handle-acquiring calls.
func (n *Node) Ref() *Node {
	atomic.AddInt32(&n.refs, 1)
	return n
}

// Unref decrements the reference count. When it reaches zero the node
// must already be detached from every context (§3.3, §3.7); Unref
// panics otherwise, since a node reachable from an attached context
// must stay alive.
func (n *Node) Unref() {
	if atomic.AddInt32(&n.refs, -1) == 0 && n.ctx != nil {
		panic("scenegraph: node refcount reached zero while still attached to a context")
	}
}

// RefCount returns the current reference count, for diagnostics.
func (n *Node) RefCount() int32 { return atomic.LoadInt32(&n.refs) }

// State returns the node's lifecycle state.
func (n *Node) State() lifecycle.State { return n.state }

// Context returns the Context the node is attached to, or nil.
func (n *Node) Context() *Context { return n.ctx }

// Impl returns the node's class-specific data, for use by sibling
// packages (transform, drawable) that need to type-assert it to read
// or write class-specific fields from a generic recursive call.
func (n *Node) Impl() Impl { return n.impl }

// LastUpdate returns the effective time of n's most recent Update call
// (after any Once-range time substitution), or -1 if it has never been
// updated (§3.1). Draw hooks that need "the current frame's t" but are
// not themselves passed one (the Impl.Draw signature has no t, since
// §4.5 draws strictly follow the same-frame Update) read it from here.
func (n *Node) LastUpdate() float64 { return n.lastUpdate }

// GLStates returns the GL-state override nodes attached to n (§3.1).
func (n *Node) GLStates() []*Node { return n.glStates }

// Ranges returns the render-range nodes attached to n (§3.1).
func (n *Node) Ranges() []*Node { return n.ranges }

// commonKeys are resolved against the base node before the class
// schema is consulted (§4.1: "Resolve the key first against the base
// node's common schema... then against the class schema").
const (
	keyName     = "name"
	keyGLStates = "glstates"
	keyRanges   = "ranges"
)

// SetParam sets a single-valued parameter, forcing the node back to
// Uninit on success (§4.1: mutating a node's parameters invalidates
// its derived state, but not its subtree's).
func (n *Node) SetParam(key string, value any) error {
	switch key {
	case keyName:
		s, ok := value.(string)
		if !ok {
			return gfxerr.New("scenegraph.SetParam", gfxerr.InvalidArg)
		}
		n.Name = s
		uninitOne(n)
		return nil
	case keyGLStates, keyRanges:
		return gfxerr.New("scenegraph.SetParam", gfxerr.InvalidArg)
	}
	if err := param.Set(n.impl, key, value); err != nil {
		return gfxerr.Wrap("scenegraph.SetParam", gfxerr.InvalidArg, err)
	}
	uninitOne(n)
	return nil
}

// AddParam appends one or more elements to a list-valued parameter
// (§4.1 add), including the common glstates/ranges lists.
func (n *Node) AddParam(key string, elems ...any) error {
	switch key {
	case keyGLStates:
		for _, e := range elems {
			gs, ok := e.(*Node)
			if !ok {
				return gfxerr.New("scenegraph.AddParam", gfxerr.InvalidArg)
			}
			n.glStates = append(n.glStates, gs)
		}
		uninitOne(n)
		return nil
	case keyRanges:
		for _, e := range elems {
			rr, ok := e.(*Node)
			if !ok {
				return gfxerr.New("scenegraph.AddParam", gfxerr.InvalidArg)
			}
			n.ranges = append(n.ranges, rr)
		}
		uninitOne(n)
		return nil
	case keyName:
		return gfxerr.New("scenegraph.AddParam", gfxerr.InvalidArg)
	}
	if err := param.Add(n.impl, key, elems); err != nil {
		return gfxerr.Wrap("scenegraph.AddParam", gfxerr.InvalidArg, err)
	}
	uninitOne(n)
	return nil
}

// Children returns every node reachable through the class schema's
// NodeRef/NodeList fields (§4.1: "the sole mechanism by which the
// evaluation pipeline walks children generically"). It deliberately
// excludes glstates and ranges, matching the teacher's check_activity
// traversal, which only recurses into PARAM_TYPE_NODE/NODELIST fields.
func (n *Node) Children() []*Node {
	handles := param.Children(n.impl)
	out := make([]*Node, len(handles))
	for i, h := range handles {
		out[i] = h.(*Node)
	}
	return out
}

// contextChildren returns every node that AttachCtx/DetachCtx must
// recurse into: the class schema's children plus the common schema's
// glstates and ranges (§4.2: "recursively attach context to every
// child found through parameter reflection, both class schema and
// common schema").
func (n *Node) contextChildren() []*Node {
	out := n.Children()
	out = append(out, n.glStates...)
	out = append(out, n.ranges...)
	return out
}
