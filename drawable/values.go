// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package drawable

import (
	"github.com/gviegas/nodegfx/anim"
	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/linear"
	"github.com/gviegas/nodegfx/scenegraph"
)

// Node kinds for the Uniform*/Attribute* value classes (§6.3 Values).
const (
	KindUniformScalar scenegraph.Kind = iota + 500
	KindUniformVec2
	KindUniformVec3
	KindUniformVec4
	KindUniformInt
	KindUniformMat4
	KindUniformSampler
	KindAttributeVec2
	KindAttributeVec3
	KindAttributeVec4
)

func init() {
	scenegraph.Register(&scenegraph.Class{ID: KindUniformScalar, Name: "UniformScalar", New: func() scenegraph.Impl { return &uniformScalar{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindUniformVec2, Name: "UniformVec2", New: func() scenegraph.Impl { return &uniformVec2{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindUniformVec3, Name: "UniformVec3", New: func() scenegraph.Impl { return &uniformVec3{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindUniformVec4, Name: "UniformVec4", New: func() scenegraph.Impl { return &uniformVec4{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindUniformInt, Name: "UniformInt", New: func() scenegraph.Impl { return &uniformInt{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindUniformMat4, Name: "UniformMat4", New: func() scenegraph.Impl { return &uniformMat4{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindUniformSampler, Name: "UniformSampler", New: func() scenegraph.Impl { return &uniformSampler{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindAttributeVec2, Name: "AttributeVec2", New: func() scenegraph.Impl { return &attributeVec2{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindAttributeVec3, Name: "AttributeVec3", New: func() scenegraph.Impl { return &attributeVec3{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindAttributeVec4, Name: "AttributeVec4", New: func() scenegraph.Impl { return &attributeVec4{} }})
}

// UniformProvider is implemented by every Uniform* node class
// (§4.7 TexturedShape: "an arbitrary list of Uniform nodes... on
// draw: uploads current uniform values by type").
type UniformProvider interface {
	UniformName() string
	UniformValue(t float64) any
}

// AttributeProvider is implemented by every Attribute* node class
// (§4.7 TexturedShape: "Attribute nodes (vec2/vec3/vec4)").
type AttributeProvider interface {
	AttributeName() string
	AttributeData() []float32
	AttributeDims() int
}

func animKFVec2(nodes []*scenegraph.Node) ([]anim.KeyFrame[linear.V2], error) {
	out := make([]anim.KeyFrame[linear.V2], 0, len(nodes))
	for _, kfn := range nodes {
		src, ok := kfn.Impl().(interface {
			Time() float64
			Easing() anim.Easing
			Vec2() linear.V2
		})
		if !ok {
			return nil, gfxerr.New("drawable.animKFVec2", gfxerr.InvalidArg)
		}
		out = append(out, anim.KeyFrame[linear.V2]{Time: src.Time(), Value: src.Vec2(), Easing: src.Easing()})
	}
	return out, nil
}

func animKFVec3(nodes []*scenegraph.Node) ([]anim.KeyFrame[linear.V3], error) {
	out := make([]anim.KeyFrame[linear.V3], 0, len(nodes))
	for _, kfn := range nodes {
		src, ok := kfn.Impl().(interface {
			Time() float64
			Easing() anim.Easing
			Vec3() linear.V3
		})
		if !ok {
			return nil, gfxerr.New("drawable.animKFVec3", gfxerr.InvalidArg)
		}
		out = append(out, anim.KeyFrame[linear.V3]{Time: src.Time(), Value: src.Vec3(), Easing: src.Easing()})
	}
	return out, nil
}

func animKFVec4(nodes []*scenegraph.Node) ([]anim.KeyFrame[linear.V4], error) {
	out := make([]anim.KeyFrame[linear.V4], 0, len(nodes))
	for _, kfn := range nodes {
		src, ok := kfn.Impl().(interface {
			Time() float64
			Easing() anim.Easing
			Vec4() linear.V4
		})
		if !ok {
			return nil, gfxerr.New("drawable.animKFVec4", gfxerr.InvalidArg)
		}
		out = append(out, anim.KeyFrame[linear.V4]{Time: src.Time(), Value: src.Vec4(), Easing: src.Easing()})
	}
	return out, nil
}

func animKFScalar(nodes []*scenegraph.Node) ([]anim.KeyFrame[float64], error) {
	out := make([]anim.KeyFrame[float64], 0, len(nodes))
	for _, kfn := range nodes {
		src, ok := kfn.Impl().(interface {
			Time() float64
			Easing() anim.Easing
			Scalar() float64
		})
		if !ok {
			return nil, gfxerr.New("drawable.animKFScalar", gfxerr.InvalidArg)
		}
		out = append(out, anim.KeyFrame[float64]{Time: src.Time(), Value: src.Scalar(), Easing: src.Easing()})
	}
	return out, nil
}

type uniformScalar struct {
	scenegraph.NopImpl
	UName  string             `ngl:"name,ctor"`
	Value  float64            `ngl:"value,ctor"`
	AnimKF []*scenegraph.Node `ngl:"animkf" nglallowed:"AnimKeyFrameScalar"`

	ev anim.Animated[float64]
}

func (u *uniformScalar) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	frames, err := animKFScalar(u.AnimKF)
	if err != nil {
		return err
	}
	u.ev.Value = u.Value
	u.ev.SetFrames(frames)
	return nil
}
func (u *uniformScalar) UniformName() string         { return u.UName }
func (u *uniformScalar) UniformValue(t float64) any { return u.ev.Eval(t) }

type uniformVec2 struct {
	scenegraph.NopImpl
	UName  string             `ngl:"name,ctor"`
	Value  linear.V2          `ngl:"value,ctor"`
	AnimKF []*scenegraph.Node `ngl:"animkf" nglallowed:"AnimKeyFrameVec2"`

	ev anim.Animated[linear.V2]
}

func (u *uniformVec2) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	frames, err := animKFVec2(u.AnimKF)
	if err != nil {
		return err
	}
	u.ev.Value = u.Value
	u.ev.SetFrames(frames)
	return nil
}
func (u *uniformVec2) UniformName() string         { return u.UName }
func (u *uniformVec2) UniformValue(t float64) any { return u.ev.Eval(t) }

type uniformVec3 struct {
	scenegraph.NopImpl
	UName  string             `ngl:"name,ctor"`
	Value  linear.V3          `ngl:"value,ctor"`
	AnimKF []*scenegraph.Node `ngl:"animkf" nglallowed:"AnimKeyFrameVec3"`

	ev anim.Animated[linear.V3]
}

func (u *uniformVec3) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	frames, err := animKFVec3(u.AnimKF)
	if err != nil {
		return err
	}
	u.ev.Value = u.Value
	u.ev.SetFrames(frames)
	return nil
}
func (u *uniformVec3) UniformName() string         { return u.UName }
func (u *uniformVec3) UniformValue(t float64) any { return u.ev.Eval(t) }

type uniformVec4 struct {
	scenegraph.NopImpl
	UName  string             `ngl:"name,ctor"`
	Value  linear.V4          `ngl:"value,ctor"`
	AnimKF []*scenegraph.Node `ngl:"animkf" nglallowed:"AnimKeyFrameVec4"`

	ev anim.Animated[linear.V4]
}

func (u *uniformVec4) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	frames, err := animKFVec4(u.AnimKF)
	if err != nil {
		return err
	}
	u.ev.Value = u.Value
	u.ev.SetFrames(frames)
	return nil
}
func (u *uniformVec4) UniformName() string         { return u.UName }
func (u *uniformVec4) UniformValue(t float64) any { return u.ev.Eval(t) }

// uniformInt and uniformMat4 are not animatable (§3.5 lists scalar/
// vec2/3/4 keyframe subclasses only).
type uniformInt struct {
	scenegraph.NopImpl
	UName string `ngl:"name,ctor"`
	Value int    `ngl:"value,ctor"`
}

func (u *uniformInt) UniformName() string         { return u.UName }
func (u *uniformInt) UniformValue(t float64) any { return u.Value }

type uniformMat4 struct {
	scenegraph.NopImpl
	UName string    `ngl:"name,ctor"`
	Value linear.M4 `ngl:"value,ctor"`
}

func (u *uniformMat4) UniformName() string         { return u.UName }
func (u *uniformMat4) UniformValue(t float64) any { return u.Value }

// uniformSampler carries which bound texture slot (by index into
// TexturedShape's Textures list) a sampler uniform refers to.
type uniformSampler struct {
	scenegraph.NopImpl
	UName    string `ngl:"name,ctor"`
	TexIndex int    `ngl:"tex_index,ctor"`
}

func (u *uniformSampler) UniformName() string         { return u.UName }
func (u *uniformSampler) UniformValue(t float64) any { return u.TexIndex }

type attributeVec2 struct {
	scenegraph.NopImpl
	AName string    `ngl:"name,ctor"`
	Data  []float64 `ngl:"data,ctor"`
}

func (a *attributeVec2) AttributeName() string   { return a.AName }
func (a *attributeVec2) AttributeDims() int       { return 2 }
func (a *attributeVec2) AttributeData() []float32 { return toF32(a.Data) }

type attributeVec3 struct {
	scenegraph.NopImpl
	AName string    `ngl:"name,ctor"`
	Data  []float64 `ngl:"data,ctor"`
}

func (a *attributeVec3) AttributeName() string   { return a.AName }
func (a *attributeVec3) AttributeDims() int       { return 3 }
func (a *attributeVec3) AttributeData() []float32 { return toF32(a.Data) }

type attributeVec4 struct {
	scenegraph.NopImpl
	AName string    `ngl:"name,ctor"`
	Data  []float64 `ngl:"data,ctor"`
}

func (a *attributeVec4) AttributeName() string   { return a.AName }
func (a *attributeVec4) AttributeDims() int       { return 4 }
func (a *attributeVec4) AttributeData() []float32 { return toF32(a.Data) }

func toF32(d []float64) []float32 {
	out := make([]float32, len(d))
	for i, v := range d {
		out[i] = float32(v)
	}
	return out
}
