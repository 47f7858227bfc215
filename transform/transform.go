// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package transform implements the matrix-stack transform chain of
// §4.6: Identity, Translate, Rotate and Scale node classes, each
// composing the parent's modelview matrix with its own local matrix
// and writing the result into its child before recursing. It is
// grounded on the teacher's node/node.go world-transform propagation
// (a Graph node holds a local transform and a cached world transform
// derived from its parent's), generalized from the teacher's
// fixed Local-TRS-per-node model to the spec's chain-of-single-purpose-
// nodes model, where each node in the chain contributes exactly one
// operation (translate, rotate, or scale) instead of a combined TRS.
package transform

import (
	"github.com/gviegas/nodegfx/anim"
	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/linear"
	"github.com/gviegas/nodegfx/scenegraph"
)

// Node kinds for the transform chain (§6.3 Structural).
const (
	KindIdentity scenegraph.Kind = iota + 100
	KindTranslate
	KindRotate
	KindScale
	KindGroup
)

func init() {
	scenegraph.Register(&scenegraph.Class{ID: KindIdentity, Name: "Identity", New: func() scenegraph.Impl { return &identityImpl{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindTranslate, Name: "Translate", New: func() scenegraph.Impl { return &translateImpl{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindRotate, Name: "Rotate", New: func() scenegraph.Impl { return &rotateImpl{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindScale, Name: "Scale", New: func() scenegraph.Impl { return &scaleImpl{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindGroup, Name: "Group", New: func() scenegraph.Impl { return &groupImpl{} }})
}

// child is embedded by every chain node: a single NodeRef to the next
// link, whitelisted to the closed set of kinds the spec allows as a
// transform chain continuation. Camera control chains additionally
// require the terminal node to be Identity (§4.6, enforced by
// scenegraph.Class lookups in the Camera's own Init, not here: this
// package has no notion of "is a camera control chain").
type child struct {
	Child *scenegraph.Node `ngl:"child" nglallowed:"Identity,Translate,Rotate,Scale,Group,TexturedShape,Camera,RTT,FPS"`
}

func (c *child) propagate(n *scenegraph.Node, t float64, local *linear.M4) error {
	if c.Child == nil {
		return nil
	}
	var mv linear.M4
	mv.Mul(&n.Modelview, local)
	c.Child.Modelview = mv
	c.Child.Projection = n.Projection
	return scenegraph.Update(c.Child, t)
}

func (c *child) draw(n *scenegraph.Node) {
	if c.Child != nil {
		scenegraph.Draw(c.Child)
	}
}

// ChainChild returns the node at the end of this single link, or nil
// at a chain's terminal node. Camera uses it to walk an eye/center/up
// control chain down to its Identity terminal and read the point that
// chain's accumulated Modelview places at the origin (§4.6).
func (c *child) ChainChild() *scenegraph.Node { return c.Child }

// identityImpl is the terminal node of a chain: it forwards the
// modelview it receives to its child unchanged. It is also the
// required terminal kind for a camera control chain (§4.6).
type identityImpl struct {
	scenegraph.NopImpl
	child
}

func (i *identityImpl) Update(n *scenegraph.Node, ctx *scenegraph.Context, t float64) error {
	return i.propagate(n, t, &identity)
}

func (i *identityImpl) Draw(n *scenegraph.Node, ctx *scenegraph.Context) { i.draw(n) }

var identity = linear.Identity()

// translateImpl translates by Offset, optionally driven by keyframes
// set on AnimKF (§3.5: a transform parameter may be overridden by an
// animkf node list).
type translateImpl struct {
	scenegraph.NopImpl
	child
	Offset linear.V3      `ngl:"offset,ctor"`
	AnimKF []*scenegraph.Node `ngl:"animkf" nglallowed:"AnimKeyFrameVec3"`

	value anim.Animated[linear.V3]
}

func (i *translateImpl) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	frames, err := vec3Frames(i.AnimKF)
	if err != nil {
		return err
	}
	i.value.Value = i.Offset
	i.value.SetFrames(frames)
	return nil
}

func (i *translateImpl) Update(n *scenegraph.Node, ctx *scenegraph.Context, t float64) error {
	v := i.value.Eval(t)
	m := linear.Translation(&v)
	return i.propagate(n, t, &m)
}

func (i *translateImpl) Draw(n *scenegraph.Node, ctx *scenegraph.Context) { i.draw(n) }

// rotateImpl rotates by AngleDeg (degrees) around Axis.
type rotateImpl struct {
	scenegraph.NopImpl
	child
	AngleDeg float64            `ngl:"angle,ctor"`
	Axis     linear.V3          `ngl:"axis,ctor"`
	AnimKF   []*scenegraph.Node `ngl:"animkf" nglallowed:"AnimKeyFrameScalar"`

	value anim.Animated[float64]
}

func (i *rotateImpl) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	frames, err := scalarFrames(i.AnimKF)
	if err != nil {
		return err
	}
	i.value.Value = i.AngleDeg
	i.value.SetFrames(frames)
	return nil
}

func (i *rotateImpl) Update(n *scenegraph.Node, ctx *scenegraph.Context, t float64) error {
	deg := i.value.Eval(t)
	axis := i.Axis
	m := linear.Rotation(float32(deg)*(3.14159265/180), &axis)
	return i.propagate(n, t, &m)
}

func (i *rotateImpl) Draw(n *scenegraph.Node, ctx *scenegraph.Context) { i.draw(n) }

// scaleImpl scales by Factor.
type scaleImpl struct {
	scenegraph.NopImpl
	child
	Factor linear.V3          `ngl:"factor,ctor"`
	AnimKF []*scenegraph.Node `ngl:"animkf" nglallowed:"AnimKeyFrameVec3"`

	value anim.Animated[linear.V3]
}

func (i *scaleImpl) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	frames, err := vec3Frames(i.AnimKF)
	if err != nil {
		return err
	}
	i.value.Value = i.Factor
	i.value.SetFrames(frames)
	return nil
}

func (i *scaleImpl) Update(n *scenegraph.Node, ctx *scenegraph.Context, t float64) error {
	v := i.value.Eval(t)
	m := linear.Scaling(&v)
	return i.propagate(n, t, &m)
}

func (i *scaleImpl) Draw(n *scenegraph.Node, ctx *scenegraph.Context) { i.draw(n) }

// groupImpl fans a single incoming modelview out to an arbitrary
// number of children unchanged (§6.3 Structural: Group), the engine's
// only way to branch the otherwise linear transform chain into a
// subtree with more than one continuation. Grounded on the teacher's
// Graph node, which likewise holds a list of child nodes it recurses
// into during world-transform propagation, generalized here to a
// plain pass-through (Group itself contributes no transform).
type groupImpl struct {
	scenegraph.NopImpl
	Children []*scenegraph.Node `ngl:"children" nglallowed:"Identity,Translate,Rotate,Scale,Group,TexturedShape,Camera,RTT,FPS"`
}

func (g *groupImpl) Update(n *scenegraph.Node, ctx *scenegraph.Context, t float64) error {
	for _, c := range g.Children {
		c.Modelview = n.Modelview
		c.Projection = n.Projection
		if err := scenegraph.Update(c, t); err != nil {
			return err
		}
	}
	return nil
}

func (g *groupImpl) Draw(n *scenegraph.Node, ctx *scenegraph.Context) {
	for _, c := range g.Children {
		scenegraph.Draw(c)
	}
}

// keyframeSource is implemented by the AnimKeyFrame* node kinds
// registered in package anim (scenegraph-facing wrappers), letting
// this package read their resolved value/easing without importing
// scenegraph's concrete private-data types.
type keyframeSource interface {
	Time() float64
	Easing() anim.Easing
}

func vec3Frames(nodes []*scenegraph.Node) ([]anim.KeyFrame[linear.V3], error) {
	out := make([]anim.KeyFrame[linear.V3], 0, len(nodes))
	for _, kfn := range nodes {
		src, ok := kfn.Impl().(interface {
			keyframeSource
			Vec3() linear.V3
		})
		if !ok {
			return nil, gfxerr.New("transform.vec3Frames", gfxerr.InvalidArg)
		}
		out = append(out, anim.KeyFrame[linear.V3]{Time: src.Time(), Value: src.Vec3(), Easing: src.Easing()})
	}
	return out, nil
}

func scalarFrames(nodes []*scenegraph.Node) ([]anim.KeyFrame[float64], error) {
	out := make([]anim.KeyFrame[float64], 0, len(nodes))
	for _, kfn := range nodes {
		src, ok := kfn.Impl().(interface {
			keyframeSource
			Scalar() float64
		})
		if !ok {
			return nil, gfxerr.New("transform.scalarFrames", gfxerr.InvalidArg)
		}
		out = append(out, anim.KeyFrame[float64]{Time: src.Time(), Value: src.Scalar(), Easing: src.Easing()})
	}
	return out, nil
}
