// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package scenegraph

import (
	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/lifecycle"
	"github.com/gviegas/nodegfx/rrange"
)

// CheckResources runs Pass 1 of the per-frame evaluation pipeline
// (§4.5): check_activity followed by honor_release_prefetch, walking
// root's subtree to decide which nodes need their GPU resources this
// frame and which can be released.
func CheckResources(root *Node, t float64) {
	checkActivity(root, t, true)
	honorReleasePrefetch(root, t, map[*Node]bool{})
}

// selectRange resolves which of n's render ranges applies at t,
// updating n.currentRange and resetting the Once "updated" flag of
// the range being left, so seeking back into it later replays it
// (§3.6, §4.4). The search itself is delegated to n.rangeSched, which
// resumes from its cached cursor and only rescans from 0 on a miss.
func selectRange(n *Node, t float64) int {
	if len(n.ranges) == 0 {
		return -1
	}
	rrID := n.rangeSched.Select(n.rangeEntries, t)
	if rrID >= 0 && n.currentRange != rrID {
		if n.currentRange >= 0 {
			if once, ok := n.ranges[n.currentRange].impl.(rrange.OnceEntry); ok {
				once.SetUpdated(false)
			}
		}
		n.currentRange = rrID
	}
	return rrID
}

// checkActivity is Pass 1's first traversal (§4.5): it determines,
// for every node reachable from root, whether it is needed this
// frame, OR-ing the result across every branch that reaches it,
// matching the teacher-grounded original's per-epoch activeTime/
// isActive bookkeeping.
func checkActivity(n *Node, t float64, parentActive bool) {
	if err := Init(n); err != nil && n.ctx != nil {
		n.ctx.Log.Warningf("scenegraph: init %s: %v", n.Name, err)
	}

	isActive := parentActive
	if parentActive {
		if rrID := selectRange(n, t); rrID >= 0 {
			rr := n.ranges[rrID].impl.(rrange.Entry)
			if rr.RangeKind() == rrange.NoRender {
				isActive = false
				if rrID < len(n.ranges)-1 {
					next := n.ranges[rrID+1].impl.(rrange.Entry)
					isActive = rrange.LookAhead(t, next.StartTime(), true, n.state == lifecycle.Ready)
				}
			}
		}
	}

	// A dead, already-idle node's subtree was released by an earlier
	// frame's honorReleasePrefetch (unless shared with another active
	// branch, which a later visit this same frame will mark active).
	if !isActive && n.state == lifecycle.Idle {
		return
	}

	if n.activeTime != t || !n.activeSet {
		n.isActive = isActive
		n.activeTime = t
		n.activeSet = true
	} else {
		n.isActive = n.isActive || isActive
	}

	for _, c := range n.Children() {
		checkActivity(c, t, n.isActive)
	}
}

// honorReleasePrefetch is Pass 1's second traversal (§4.5): children
// are visited first so a parent only transitions after its subtree
// has, and done dedups nodes reachable through more than one branch
// so each is prefetched or released at most once per frame (§8.1).
func honorReleasePrefetch(n *Node, t float64, done map[*Node]bool) {
	if done[n] {
		return
	}
	done[n] = true
	for _, c := range n.Children() {
		honorReleasePrefetch(c, t, done)
	}
	if n.activeTime != t {
		return
	}
	if n.isActive {
		if err := Prefetch(n); err != nil && n.ctx != nil {
			n.ctx.Log.Warningf("scenegraph: prefetch %s: %v", n.Name, err)
		}
	} else {
		releaseOne(n)
	}
}

// Update is Pass 2's first traversal (§4.5): it recomputes n's
// derived state for time t, resolving the node's render-range policy
// first (NoRender nodes are skipped entirely; Once nodes remap to
// their fixed render time and update only the first time they are
// entered). Container classes (transform chains, Group, Camera) call
// Update on their own children from within their own Impl.Update.
func Update(n *Node, t float64) error {
	n.drawme = false

	effT := t
	if rrID := selectRange(n, t); rrID >= 0 {
		rr := n.ranges[rrID].impl.(rrange.Entry)
		switch rr.RangeKind() {
		case rrange.NoRender:
			return nil
		case rrange.Once:
			once := n.ranges[rrID].impl.(rrange.OnceEntry)
			if once.Updated() {
				return nil
			}
			effT = once.RenderTime()
			once.SetUpdated(true)
		}
	}

	if n.lastUpdate != effT {
		// The node might not have been prefetched by CheckResources,
		// e.g. because it was constructed and wired in after the last
		// pass; prefetch it now, a bit late but safe.
		if err := Prefetch(n); err != nil {
			return err
		}
		if n.ctx != nil {
			n.ctx.Log.Verbosef("scenegraph: update %s @ t=%g", n.Name, effT)
		}
		if err := n.impl.Update(n, n.ctx, effT); err != nil {
			return gfxerr.Wrap("scenegraph.Update", gfxerr.External, err)
		}
	}
	n.lastUpdate = effT
	n.drawme = true
	return nil
}

// GLStateOverride is implemented by the GL-state family of node kinds
// (§3.1: "a list of GL-state override nodes applied around draw").
// Apply overwrites one piece of backend state and returns a closure
// that restores the value it had before the call (§4.5 Draw: "applies
// this node's glstates overrides (saving previous GL state)... and
// restores previous GL state").
type GLStateOverride interface {
	Apply(ctx *Context) func()
}

// Draw is Pass 2's second traversal (§4.5): it issues n's draw calls
// if Update marked it drawable this frame. Container classes call
// Draw on their own children from within their own Impl.Draw. Any
// glstates override nodes attached to n are applied first and
// restored, in reverse order, after the class Draw hook returns.
func Draw(n *Node) {
	if !n.drawme {
		return
	}
	if len(n.glStates) == 0 {
		n.impl.Draw(n, n.ctx)
		return
	}
	restores := make([]func(), 0, len(n.glStates))
	for _, gs := range n.glStates {
		if ov, ok := gs.impl.(GLStateOverride); ok {
			restores = append(restores, ov.Apply(n.ctx))
		}
	}
	n.impl.Draw(n, n.ctx)
	for i := len(restores) - 1; i >= 0; i-- {
		restores[i]()
	}
}
