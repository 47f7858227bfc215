// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package anim

import (
	"github.com/gviegas/nodegfx/linear"
	"github.com/gviegas/nodegfx/scenegraph"
)

// Node kinds for the four AnimKeyFrame* classes (§6.3 Animation).
// These are leaf nodes: they hold no children and their lifecycle
// hooks are all no-ops (NopImpl) beyond parsing the easing string
// once, at Init, into the resolved Easing value the hot interpolation
// path consumes (§9 REDESIGN FLAGS).
const (
	KindAnimKeyFrameScalar scenegraph.Kind = iota + 200
	KindAnimKeyFrameVec2
	KindAnimKeyFrameVec3
	KindAnimKeyFrameVec4
)

func init() {
	scenegraph.Register(&scenegraph.Class{ID: KindAnimKeyFrameScalar, Name: "AnimKeyFrameScalar", New: func() scenegraph.Impl { return &kfScalar{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindAnimKeyFrameVec2, Name: "AnimKeyFrameVec2", New: func() scenegraph.Impl { return &kfVec2{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindAnimKeyFrameVec3, Name: "AnimKeyFrameVec3", New: func() scenegraph.Impl { return &kfVec3{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindAnimKeyFrameVec4, Name: "AnimKeyFrameVec4", New: func() scenegraph.Impl { return &kfVec4{} }})
}

// kfCommon holds the fields every AnimKeyFrame* class shares: Time,
// the easing spec string, and the parsed Easing resolved at Init.
type kfCommon struct {
	scenegraph.NopImpl
	KFTime    float64 `ngl:"time,ctor"`
	EasingStr string  `ngl:"easing,ctor"`

	easing Easing
}

func (k *kfCommon) Time() float64   { return k.KFTime }
func (k *kfCommon) Easing() Easing  { return k.easing }

func (k *kfCommon) initEasing(n *scenegraph.Node, ctx *scenegraph.Context) error {
	e, err := Parse(k.EasingStr)
	if err != nil {
		return err
	}
	k.easing = e
	return nil
}

type kfScalar struct {
	kfCommon
	Value float64 `ngl:"value,ctor"`
}

func (k *kfScalar) Init(n *scenegraph.Node, ctx *scenegraph.Context) error { return k.initEasing(n, ctx) }
func (k *kfScalar) Scalar() float64                                       { return k.Value }

type kfVec2 struct {
	kfCommon
	Value linear.V2 `ngl:"value,ctor"`
}

func (k *kfVec2) Init(n *scenegraph.Node, ctx *scenegraph.Context) error { return k.initEasing(n, ctx) }
func (k *kfVec2) Vec2() linear.V2                                       { return k.Value }

type kfVec3 struct {
	kfCommon
	Value linear.V3 `ngl:"value,ctor"`
}

func (k *kfVec3) Init(n *scenegraph.Node, ctx *scenegraph.Context) error { return k.initEasing(n, ctx) }
func (k *kfVec3) Vec3() linear.V3                                       { return k.Value }

type kfVec4 struct {
	kfCommon
	Value linear.V4 `ngl:"value,ctor"`
}

func (k *kfVec4) Init(n *scenegraph.Node, ctx *scenegraph.Context) error { return k.initEasing(n, ctx) }
func (k *kfVec4) Vec4() linear.V4                                       { return k.Value }
