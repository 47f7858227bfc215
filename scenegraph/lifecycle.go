// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package scenegraph

import (
	"sort"

	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/lifecycle"
	"github.com/gviegas/nodegfx/rrange"
)

// AttachCtx attaches ctx to n and recursively to every node reachable
// through n's common and class schemas (§4.2). Attaching a node
// already attached to a different Context is InvalidUsage; attaching
// it again to the same Context is a no-op.
func AttachCtx(n *Node, ctx *Context) error {
	if n.ctx == ctx {
		return nil
	}
	if n.ctx != nil {
		return gfxerr.New("scenegraph.AttachCtx", gfxerr.InvalidUsage)
	}
	n.ctx = ctx
	for _, c := range n.contextChildren() {
		if err := AttachCtx(c, ctx); err != nil {
			return err
		}
	}
	return nil
}

// DetachCtx uninitializes n's subtree and clears every context
// pointer in it (§4.2: "detach_ctx(node) calls uninit on the subtree
// and clears the context pointers").
func DetachCtx(n *Node) error {
	uninitOne(n)
	n.ctx = nil
	for _, c := range n.contextChildren() {
		if c.ctx == nil {
			continue
		}
		if err := DetachCtx(c); err != nil {
			return err
		}
	}
	return nil
}

// Init runs the class Init hook if n is still Uninit, then
// recursively initializes its GL-state override nodes and sorts its
// render ranges (§4.2 Init: "does not recurse into children from the
// common schema [for ranges]; children are initialized lazily").
func Init(n *Node) error {
	if n.state != lifecycle.Uninit {
		return nil
	}
	if n.ctx == nil {
		return gfxerr.New("scenegraph.Init", gfxerr.InvalidUsage)
	}
	if err := n.impl.Init(n, n.ctx); err != nil {
		return gfxerr.Wrap("scenegraph.Init", gfxerr.External, err)
	}
	sort.SliceStable(n.ranges, func(i, j int) bool {
		return n.ranges[i].impl.(rrange.Entry).StartTime() < n.ranges[j].impl.(rrange.Entry).StartTime()
	})
	n.rangeEntries = make([]rrange.Entry, len(n.ranges))
	for i, rr := range n.ranges {
		n.rangeEntries[i] = rr.impl.(rrange.Entry)
	}
	for _, gs := range n.glStates {
		if err := Init(gs); err != nil {
			return err
		}
	}
	n.state = lifecycle.Init
	return nil
}

// Prefetch ensures n is Init'd, then runs the class Prefetch hook if
// it is not already Ready (§4.2 Ready).
func Prefetch(n *Node) error {
	if err := Init(n); err != nil {
		return err
	}
	if n.state == lifecycle.Ready {
		return nil
	}
	if err := n.impl.Prefetch(n, n.ctx); err != nil {
		return gfxerr.Wrap("scenegraph.Prefetch", gfxerr.External, err)
	}
	n.state = lifecycle.Ready
	return nil
}

// releaseOne runs the class Release hook if n is Ready, transitioning
// it to Idle. It never recurses; callers that need a subtree release
// do so explicitly (honorReleasePrefetch, DetachCtx via uninitOne).
func releaseOne(n *Node) {
	if n.state != lifecycle.Ready {
		return
	}
	n.impl.Release(n, n.ctx)
	n.state = lifecycle.Idle
}

// uninitOne releases n if needed, runs the class Uninit hook, and
// transitions n back to Uninit. It affects n alone, never its
// subtree (§4.1: a parameter mutation "forces the node back to
// Uninit; its subtree is not").
func uninitOne(n *Node) {
	if n.state == lifecycle.Uninit {
		return
	}
	releaseOne(n)
	n.impl.Uninit(n)
	n.state = lifecycle.Uninit
	n.lastUpdate = -1
	n.currentRange = -1
	n.activeSet = false
}
