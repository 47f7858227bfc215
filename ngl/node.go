// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package ngl

import "github.com/gviegas/nodegfx/scenegraph"

// Kind and Node re-export the scenegraph types so callers never need
// to import "github.com/gviegas/nodegfx/scenegraph" directly (§6.2).
type (
	Kind = scenegraph.Kind
	Node = scenegraph.Node
)

// KindByName re-exports scenegraph.KindByName. No kind constants are
// re-exported here; the closed set of kinds (§6.3) is registered by the
// owning packages (transform, drawable, anim, media, and scenegraph for
// the render-range kinds) and is reachable through KindByName once
// this package has been imported.
var (
	KindByName = scenegraph.KindByName
)

// NodeCreate constructs a node of the given kind, applying ctorArgs to
// its constructor-flagged parameters in schema order; refcount starts
// at 1 (§6.2 node_create).
func NodeCreate(kind Kind, ctorArgs ...any) (*Node, error) {
	return scenegraph.New(kind, ctorArgs...)
}

// NodeRef increments n's reference count and returns n, for shared
// ownership (§6.2 node_ref).
func NodeRef(n *Node) *Node { return n.Ref() }

// NodeUnref decrements n's reference count (§6.2 node_unref). The
// spec's C signature takes a handle pointer so the caller's variable
// can be cleared after the last reference drops; Go's garbage
// collector makes that unnecessary, so this takes n by value — an Open
// Question resolution recorded in DESIGN.md.
func NodeUnref(n *Node) { n.Unref() }

// NodeParamSet writes a single-valued parameter, forcing the node back
// to Uninit (§6.2 node_param_set).
func NodeParamSet(n *Node, key string, value any) error { return n.SetParam(key, value) }

// NodeParamAdd appends one or more elements to a list-valued parameter
// (§6.2 node_param_add).
func NodeParamAdd(n *Node, key string, elems ...any) error { return n.AddParam(key, elems...) }
