// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package drawable

import (
	"fmt"

	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/linear"
	"github.com/gviegas/nodegfx/scenegraph"
)

// KindTexturedShape is the node kind for the TexturedShape class
// (§6.3 Rendering), the engine's only leaf that actually issues a
// draw call.
const KindTexturedShape scenegraph.Kind = 330

func init() {
	scenegraph.Register(&scenegraph.Class{ID: KindTexturedShape, Name: "TexturedShape", New: func() scenegraph.Impl { return &texturedShapeImpl{} }})
}

// MaxTextures bounds the textures a single TexturedShape can bind
// (§4.7: "up to N textures"); chosen to match gfx.Limits.MaxTextureUnits
// on a conservative backend.
const MaxTextures = 8

type texturedShapeImpl struct {
	scenegraph.NopImpl
	Shape      *scenegraph.Node   `ngl:"shape,ctor" nglallowed:"Quad,Triangle,ShapePrimitive,Shape"`
	Shader     *scenegraph.Node   `ngl:"shader,ctor" nglallowed:"Shader"`
	Textures   []*scenegraph.Node `ngl:"textures" nglallowed:"Texture,Media"`
	Uniforms   []*scenegraph.Node `ngl:"uniforms" nglallowed:"UniformScalar,UniformVec2,UniformVec3,UniformVec4,UniformInt,UniformMat4,UniformSampler"`
	Attributes []*scenegraph.Node `ngl:"attributes" nglallowed:"AttributeVec2,AttributeVec3,AttributeVec4"`

	shape  ShapeProvider
	shader ShaderProvider

	attrBufs []gfx.Buffer
}

func (t *texturedShapeImpl) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	sp, ok := t.Shape.Impl().(ShapeProvider)
	if !ok {
		return gfxerr.New("drawable.TexturedShape.Init", gfxerr.InvalidArg)
	}
	shp, ok := t.Shader.Impl().(ShaderProvider)
	if !ok {
		return gfxerr.New("drawable.TexturedShape.Init", gfxerr.InvalidArg)
	}
	if len(t.Textures) > MaxTextures {
		return gfxerr.New("drawable.TexturedShape.Init", gfxerr.LimitExceeded)
	}
	t.shape, t.shader = sp, shp
	return nil
}

func (t *texturedShapeImpl) Prefetch(n *scenegraph.Node, ctx *scenegraph.Context) error {
	t.attrBufs = t.attrBufs[:0]
	for _, a := range t.Attributes {
		ap, ok := a.Impl().(AttributeProvider)
		if !ok {
			continue
		}
		data := ap.AttributeData()
		if len(data) == 0 {
			t.attrBufs = append(t.attrBufs, nil)
			continue
		}
		buf, err := ctx.Backend.NewBuffer(len(data)*4, gfx.VertexBuffer)
		if err != nil {
			return gfxerr.Wrap("drawable.TexturedShape.Prefetch", gfxerr.External, err)
		}
		if err := ctx.Backend.UpdateBuffer(buf, 0, float32sBytes(data)); err != nil {
			return gfxerr.Wrap("drawable.TexturedShape.Prefetch", gfxerr.External, err)
		}
		t.attrBufs = append(t.attrBufs, buf)
	}
	return nil
}

func (t *texturedShapeImpl) Release(n *scenegraph.Node, ctx *scenegraph.Context) {
	for _, b := range t.attrBufs {
		if b != nil {
			ctx.Backend.Destroy(b)
		}
	}
	t.attrBufs = nil
}

// Update refreshes nothing on its own (the bound Uniform/Texture/Media
// nodes evaluate lazily at Draw time from the current frame's t,
// mirroring the original's draw-time uniform upload); it exists so
// the evaluation pipeline's generic Update pass reaches this node.
func (t *texturedShapeImpl) Update(n *scenegraph.Node, ctx *scenegraph.Context, tm float64) error {
	return nil
}

func (t *texturedShapeImpl) Draw(n *scenegraph.Node, ctx *scenegraph.Context) {
	b := ctx.Backend
	pl := t.shader.Pipeline()
	b.SetPipeline(pl)

	for _, u := range t.Uniforms {
		up, ok := u.Impl().(UniformProvider)
		if !ok {
			continue
		}
		if err := b.SetUniform(pl, up.UniformName(), up.UniformValue(n.LastUpdate())); err != nil && ctx.Log != nil {
			ctx.Log.Warningf("drawable.TexturedShape: uniform %q: %v", up.UniformName(), err)
		}
	}

	for i, texNode := range t.Textures {
		tp, ok := texNode.Impl().(TextureProvider)
		if !ok {
			continue
		}
		gtex := tp.GPUTexture()
		b.SetTexture(i, gtex)
		dims := [2]float32{0, 0}
		if gtex != nil {
			dims = [2]float32{float32(gtex.Width()), float32(gtex.Height())}
		}
		b.SetUniform(pl, fmt.Sprintf("tex%d_sampler", i), i)
		b.SetUniform(pl, fmt.Sprintf("tex%d_coords_matrix", i), tp.CoordsMatrix())
		b.SetUniform(pl, fmt.Sprintf("tex%d_dimensions", i), dims)
	}

	b.SetVertexBuffer(0, t.shape.VertexBuffer(), t.shape.Stride(), 0)
	b.SetAttribute(0, 0, gfx.Float3, 0)  // ngl_position
	b.SetAttribute(1, 0, gfx.Float2, 16) // texcoord
	b.SetAttribute(2, 0, gfx.Float3, 24) // ngl_normal

	for i, a := range t.Attributes {
		if i >= len(t.attrBufs) || t.attrBufs[i] == nil {
			continue
		}
		ap := a.Impl().(AttributeProvider)
		slot := 3 + i
		b.SetVertexBuffer(slot, t.attrBufs[i], ap.AttributeDims()*4, 0)
		b.SetAttribute(3+i, slot, dimsFormat(ap.AttributeDims()), 0)
	}

	b.SetUniform(pl, UniformMV, n.Modelview)
	b.SetUniform(pl, UniformProj, n.Projection)
	var nrm linear.M3
	linear.NormalMatrix(&nrm, &n.Modelview)
	b.SetUniform(pl, UniformNrmM, nrm)

	b.DrawIndexed(t.shape.Topology(), t.shape.IndexCount(), 1, 0, t.shape.IndexBuffer())
}

func dimsFormat(dims int) gfx.AttribFormat {
	switch dims {
	case 2:
		return gfx.Float2
	case 3:
		return gfx.Float3
	case 4:
		return gfx.Float4
	default:
		return gfx.Float1
	}
}

func float32sBytes(vs []float32) []byte {
	out := make([]byte, 0, len(vs)*4)
	for _, v := range vs {
		out = append(out, f32bytes(v)...)
	}
	return out
}
