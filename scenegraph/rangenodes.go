// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package scenegraph

import "github.com/gviegas/nodegfx/rrange"

// Node kinds for the three RenderRange node classes (§6.3 Ranges).
// They live in this package, rather than in package rrange itself,
// because rrange.Entry/OnceEntry are consumed by Node/pipeline.go:
// rrange cannot import scenegraph without a cycle, so the adapter
// that makes a range policy into a *Node lives on this side.
const (
	KindRenderRangeContinuous Kind = iota + 10
	KindRenderRangeNoRender
	KindRenderRangeOnce
)

func init() {
	Register(&Class{ID: KindRenderRangeContinuous, Name: "RenderRangeContinuous", New: func() Impl {
		return &rangeContinuous{}
	}})
	Register(&Class{ID: KindRenderRangeNoRender, Name: "RenderRangeNoRender", New: func() Impl {
		return &rangeNoRender{}
	}})
	Register(&Class{ID: KindRenderRangeOnce, Name: "RenderRangeOnce", New: func() Impl {
		return &rangeOnce{}
	}})
}

type rangeContinuous struct {
	NopImpl
	Start float64 `ngl:"start_time,ctor"`
}

func (r *rangeContinuous) StartTime() float64     { return r.Start }
func (r *rangeContinuous) RangeKind() rrange.Kind { return rrange.Continuous }

type rangeNoRender struct {
	NopImpl
	Start float64 `ngl:"start_time,ctor"`
}

func (r *rangeNoRender) StartTime() float64     { return r.Start }
func (r *rangeNoRender) RangeKind() rrange.Kind { return rrange.NoRender }

// rangeOnce implements rrange.OnceEntry (§3.6): Updated tracks whether
// this entry into the range has already drawn its substituted frame.
type rangeOnce struct {
	NopImpl
	Start  float64 `ngl:"start_time,ctor"`
	Render float64 `ngl:"render_time,ctor"`

	updated bool
}

func (r *rangeOnce) StartTime() float64     { return r.Start }
func (r *rangeOnce) RangeKind() rrange.Kind { return rrange.Once }
func (r *rangeOnce) RenderTime() float64    { return r.Render }
func (r *rangeOnce) Updated() bool          { return r.updated }
func (r *rangeOnce) SetUpdated(v bool)      { r.updated = v }
