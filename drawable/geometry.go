// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package drawable implements the §4.7 drawable node classes: geometry
// (Quad, Triangle, generic Shape mesh), Shader, TexturedShape, Camera
// and RTT, plus the GLState family and the FPS diagnostic node. It is
// grounded on the teacher's engine/mesh.go (interleaved vertex layout,
// index buffer upload), engine/material.go (shader/uniform binding
// style) and engine/renderer.go (render-target save/restore around a
// subtree draw), adapted from the teacher's retained-geometry/material
// split into the spec's single TexturedShape binder node.
package drawable

import (
	"math"

	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/linear"
	"github.com/gviegas/nodegfx/scenegraph"
)

// Node kinds for the geometry classes (§6.3 Geometry).
const (
	KindQuad scenegraph.Kind = iota + 300
	KindTriangle
	KindShapePrimitive
	KindShape
)

func init() {
	scenegraph.Register(&scenegraph.Class{ID: KindQuad, Name: "Quad", New: func() scenegraph.Impl { return &quadImpl{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindTriangle, Name: "Triangle", New: func() scenegraph.Impl { return &triangleImpl{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindShapePrimitive, Name: "ShapePrimitive", New: func() scenegraph.Impl { return &shapeImpl{} }})
	scenegraph.Register(&scenegraph.Class{ID: KindShape, Name: "Shape", New: func() scenegraph.Impl { return &shapeImpl{} }})
}

// vertex is the tightly packed interleaved vertex layout of §4.7:
// 9 floats (position xyz + pad w, texcoord uv, normal xyz).
type vertex [9]float32

func packVertex(pos linear.V3, uv linear.V2, nrm linear.V3) vertex {
	return vertex{pos[0], pos[1], pos[2], 0, uv[0], uv[1], nrm[0], nrm[1], nrm[2]}
}

func vertexBytes(vs []vertex) []byte {
	out := make([]byte, 0, len(vs)*9*4)
	for _, v := range vs {
		for _, f := range v {
			out = append(out, f32bytes(f)...)
		}
	}
	return out
}

func f32bytes(f float32) []byte {
	bits := math.Float32bits(f)
	return []byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)}
}

func indexBytes(idx []uint16) []byte {
	out := make([]byte, 0, len(idx)*2)
	for _, i := range idx {
		out = append(out, byte(i), byte(i>>8))
	}
	return out
}

// meshData is the CPU-side geometry shared by Quad/Triangle/Shape:
// an interleaved vertex slice, a uint16 index list, and a topology tag
// (§4.7).
type meshData struct {
	vertices []vertex
	indices  []uint16
	topology gfx.Topology
}

// meshGPU is the GPU-resident half, created on Prefetch and destroyed
// on Release/Uninit (§3.4, §3.7: "GPU objects are owned by the node
// that created them").
type meshGPU struct {
	vbuf   gfx.Buffer
	ibuf   gfx.Buffer
	stride int
}

// ShapeProvider is implemented by every geometry node class, letting
// TexturedShape bind a shape generically (§4.7 TexturedShape: "Binds
// a shape, a shader, ...").
type ShapeProvider interface {
	VertexBuffer() gfx.Buffer
	IndexBuffer() gfx.Buffer
	IndexCount() int
	Stride() int
	Topology() gfx.Topology
}

func prefetchMesh(ctx *scenegraph.Context, data meshData) (meshGPU, error) {
	var g meshGPU
	g.stride = 9 * 4
	vbuf, err := ctx.Backend.NewBuffer(len(data.vertices)*g.stride, gfx.VertexBuffer)
	if err != nil {
		return g, gfxerr.Wrap("drawable.prefetchMesh", gfxerr.External, err)
	}
	if err := ctx.Backend.UpdateBuffer(vbuf, 0, vertexBytes(data.vertices)); err != nil {
		return g, gfxerr.Wrap("drawable.prefetchMesh", gfxerr.External, err)
	}
	ibuf, err := ctx.Backend.NewBuffer(len(data.indices)*2, gfx.IndexBuffer)
	if err != nil {
		return g, gfxerr.Wrap("drawable.prefetchMesh", gfxerr.External, err)
	}
	if err := ctx.Backend.UpdateBuffer(ibuf, 0, indexBytes(data.indices)); err != nil {
		return g, gfxerr.Wrap("drawable.prefetchMesh", gfxerr.External, err)
	}
	g.vbuf, g.ibuf = vbuf, ibuf
	return g, nil
}

func releaseMesh(ctx *scenegraph.Context, g *meshGPU) {
	if g.vbuf != nil {
		ctx.Backend.Destroy(g.vbuf)
		g.vbuf = nil
	}
	if g.ibuf != nil {
		ctx.Backend.Destroy(g.ibuf)
		g.ibuf = nil
	}
}

// quadImpl generates a two-triangle quad from a corner and two edge
// vectors (§4.7: "Quad(corner, width_vec, height_vec) generates four
// vertices and a 6-index triangle list covering corner->corner+w->
// corner+h->corner+h+w").
type quadImpl struct {
	scenegraph.NopImpl
	Corner linear.V3 `ngl:"corner,ctor"`
	Width  linear.V3 `ngl:"width,ctor"`
	Height linear.V3 `ngl:"height,ctor"`

	mesh meshData
	gpu  meshGPU
}

func (q *quadImpl) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	var nrm linear.V3
	nrm.Cross(&q.Width, &q.Height)
	if l := nrm.Len(); l > 0 {
		nrm.Scale(1/l, &nrm)
	}
	c, w, h := q.Corner, q.Width, q.Height
	var cw, ch, cwh linear.V3
	cw.Add(&c, &w)
	ch.Add(&c, &h)
	cwh.Add(&cw, &h)
	q.mesh = meshData{
		vertices: []vertex{
			packVertex(c, linear.V2{0, 0}, nrm),
			packVertex(cw, linear.V2{1, 0}, nrm),
			packVertex(ch, linear.V2{0, 1}, nrm),
			packVertex(cwh, linear.V2{1, 1}, nrm),
		},
		indices:  []uint16{0, 1, 2, 1, 3, 2},
		topology: gfx.Triangles,
	}
	return nil
}

func (q *quadImpl) Prefetch(n *scenegraph.Node, ctx *scenegraph.Context) error {
	g, err := prefetchMesh(ctx, q.mesh)
	if err != nil {
		return err
	}
	q.gpu = g
	return nil
}

func (q *quadImpl) Release(n *scenegraph.Node, ctx *scenegraph.Context) { releaseMesh(ctx, &q.gpu) }
func (q *quadImpl) Uninit(n *scenegraph.Node)                          { q.mesh = meshData{} }

func (q *quadImpl) VertexBuffer() gfx.Buffer   { return q.gpu.vbuf }
func (q *quadImpl) IndexBuffer() gfx.Buffer    { return q.gpu.ibuf }
func (q *quadImpl) IndexCount() int            { return len(q.mesh.indices) }
func (q *quadImpl) Stride() int                { return q.gpu.stride }
func (q *quadImpl) Topology() gfx.Topology     { return q.mesh.topology }

// triangleImpl generates a single triangle with a computed face normal
// (§4.7: "Triangle(e0, e1, e2, uv0, uv1, uv2) generates three vertices
// with a computed face normal (unit cross of two edge vectors)").
type triangleImpl struct {
	scenegraph.NopImpl
	E0  linear.V3 `ngl:"e0,ctor"`
	E1  linear.V3 `ngl:"e1,ctor"`
	E2  linear.V3 `ngl:"e2,ctor"`
	UV0 linear.V2 `ngl:"uv0,ctor"`
	UV1 linear.V2 `ngl:"uv1,ctor"`
	UV2 linear.V2 `ngl:"uv2,ctor"`

	mesh meshData
	gpu  meshGPU
}

func (t *triangleImpl) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	var e10, e20, nrm linear.V3
	e10.Sub(&t.E1, &t.E0)
	e20.Sub(&t.E2, &t.E0)
	nrm.Cross(&e10, &e20)
	if l := nrm.Len(); l > 0 {
		nrm.Scale(1/l, &nrm)
	}
	t.mesh = meshData{
		vertices: []vertex{
			packVertex(t.E0, t.UV0, nrm),
			packVertex(t.E1, t.UV1, nrm),
			packVertex(t.E2, t.UV2, nrm),
		},
		indices:  []uint16{0, 1, 2},
		topology: gfx.Triangles,
	}
	return nil
}

func (t *triangleImpl) Prefetch(n *scenegraph.Node, ctx *scenegraph.Context) error {
	g, err := prefetchMesh(ctx, t.mesh)
	if err != nil {
		return err
	}
	t.gpu = g
	return nil
}

func (t *triangleImpl) Release(n *scenegraph.Node, ctx *scenegraph.Context) { releaseMesh(ctx, &t.gpu) }
func (t *triangleImpl) Uninit(n *scenegraph.Node)                          { t.mesh = meshData{} }

func (t *triangleImpl) VertexBuffer() gfx.Buffer { return t.gpu.vbuf }
func (t *triangleImpl) IndexBuffer() gfx.Buffer  { return t.gpu.ibuf }
func (t *triangleImpl) IndexCount() int          { return len(t.mesh.indices) }
func (t *triangleImpl) Stride() int              { return t.gpu.stride }
func (t *triangleImpl) Topology() gfx.Topology   { return t.mesh.topology }

// shapeImpl is the generic mesh of §4.7: caller-supplied interleaved
// vertices, uint16-valued indices and a topology tag. ShapePrimitive
// and Shape register as two kinds backed by the same private-data
// shape.
type shapeImpl struct {
	scenegraph.NopImpl
	Vertices  []float64 `ngl:"vertices,ctor"` // flattened, 9 per vertex
	Indices   []float64 `ngl:"indices,ctor"`  // uint16-valued, as doubles for schema uniformity
	TopologyName string `ngl:"topology,ctor" nglenum:"triangles,strip,fan"`

	mesh meshData
	gpu  meshGPU
}

func (s *shapeImpl) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	if len(s.Vertices)%9 != 0 {
		return gfxerr.New("drawable.Shape.Init", gfxerr.InvalidArg)
	}
	vs := make([]vertex, len(s.Vertices)/9)
	for i := range vs {
		for j := 0; j < 9; j++ {
			vs[i][j] = float32(s.Vertices[i*9+j])
		}
	}
	idx := make([]uint16, len(s.Indices))
	for i, f := range s.Indices {
		idx[i] = uint16(f)
	}
	topo := gfx.Triangles
	switch s.TopologyName {
	case "strip":
		topo = gfx.TriangleStrip
	case "fan":
		topo = gfx.TriangleFan
	}
	s.mesh = meshData{vertices: vs, indices: idx, topology: topo}
	return nil
}

func (s *shapeImpl) Prefetch(n *scenegraph.Node, ctx *scenegraph.Context) error {
	g, err := prefetchMesh(ctx, s.mesh)
	if err != nil {
		return err
	}
	s.gpu = g
	return nil
}

func (s *shapeImpl) Release(n *scenegraph.Node, ctx *scenegraph.Context) { releaseMesh(ctx, &s.gpu) }
func (s *shapeImpl) Uninit(n *scenegraph.Node)                           { s.mesh = meshData{} }

func (s *shapeImpl) VertexBuffer() gfx.Buffer { return s.gpu.vbuf }
func (s *shapeImpl) IndexBuffer() gfx.Buffer  { return s.gpu.ibuf }
func (s *shapeImpl) IndexCount() int          { return len(s.mesh.indices) }
func (s *shapeImpl) Stride() int              { return s.gpu.stride }
func (s *shapeImpl) Topology() gfx.Topology   { return s.mesh.topology }
