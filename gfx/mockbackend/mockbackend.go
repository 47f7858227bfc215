// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package mockbackend implements an in-memory gfx.Backend for tests
// (§4.8, §9 DESIGN NOTES: "a mock for tests" alongside the real
// OpenGL/GLES implementations), grounded on the teacher's pattern of
// exercising driver.GPU-consuming code through the interface rather
// than a concrete driver/vk type (driver/vk/*_test.go). It keeps the
// smallest state needed to make §8.3's end-to-end scenarios
// observable: a software framebuffer that SetUniform/SetTexture/Draw
// fill with a flat color derived from the bound pipeline's uniforms
// and textures, so tests can ReadPixels and assert on the result
// without a real GPU.
package mockbackend

import (
	"fmt"
	"sync/atomic"

	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/statecache"
)

type buffer struct {
	id   int
	data []byte
}

func (*buffer) destroyerSentinel() {}

type texture struct {
	id            int
	width, height int
	format        gfx.PixelFmt
	pixels        []byte // RGBA8, row-major top-down
}

func (*texture) destroyerSentinel() {}
func (t *texture) Width() int        { return t.width }
func (t *texture) Height() int       { return t.height }
func (t *texture) Format() gfx.PixelFmt { return t.format }

type pipeline struct {
	id       int
	desc     gfx.PipelineDesc
	uniforms map[string]any
}

func (*pipeline) destroyerSentinel() {}

type renderTarget struct {
	id     int
	width  int
	height int
	color  []*texture
	depth  *texture
}

func (*renderTarget) destroyerSentinel() {}
func (r *renderTarget) ColorTexture(i int) gfx.Texture {
	if i < 0 || i >= len(r.color) {
		return nil
	}
	return r.color[i]
}
func (r *renderTarget) DepthTexture() gfx.Texture {
	if r.depth == nil {
		return nil
	}
	return r.depth
}

// boundTexture records the texture bound at a sampler unit;
// sampleColor reads its first texel when a draw is "rendered".
type boundTexture struct {
	tex *texture
}

// Backend is a software gfx.Backend. The zero value is not usable;
// use New.
type Backend struct {
	limits gfx.Limits
	cache  *statecache.Cache

	width, height int
	fb            []byte // default render target, RGBA8

	curRT   *renderTarget
	curPl   *pipeline
	textures map[int]*boundTexture

	nextID int32

	clear [4]float32

	// Calls records every backend method invoked, in order, for tests
	// that assert on call sequence (state-cache elision, draw order)
	// rather than pixel output.
	Calls []string
}

// New creates a Backend with a default-sized default render target.
func New(width, height int) *Backend {
	b := &Backend{
		limits: gfx.Limits{
			MaxTextureSize:      4096,
			MaxColorAttach:      4,
			MaxVertexAttribs:    16,
			MaxTextureUnits:     16,
			SupportsYUVSample:   true,
			SupportsExternalOES: true,
		},
		cache:    statecache.New(),
		width:    width,
		height:   height,
		fb:       make([]byte, width*height*4),
		textures: map[int]*boundTexture{},
	}
	return b
}

func (b *Backend) record(format string, args ...any) {
	b.Calls = append(b.Calls, fmt.Sprintf(format, args...))
}

func (b *Backend) newID() int { return int(atomic.AddInt32(&b.nextID, 1)) }

func (b *Backend) Limits() gfx.Limits { return b.limits }

func (b *Backend) Resize(width, height int) {
	b.record("Resize(%d,%d)", width, height)
	b.width, b.height = width, height
	b.fb = make([]byte, width*height*4)
}

func (b *Backend) Clear(rt gfx.RenderTarget, color [4]float32, depth float32, stencil uint32, mask gfx.ClearMask) {
	b.record("Clear")
	if mask&gfx.ClearColor == 0 {
		return
	}
	fb, w, h := b.framebuffer(rt)
	px := rgba8(color)
	for i := 0; i+3 < len(fb); i += 4 {
		copy(fb[i:i+4], px[:])
	}
	_ = w
	_ = h
}

func (b *Backend) SetViewport(vp gfx.Viewport) {
	if !b.cache.SetViewport(vp) {
		return
	}
	b.record("SetViewport(%+v)", vp)
}

func (b *Backend) SetScissor(sciss gfx.Scissor, ok bool) {
	if !b.cache.SetScissor(sciss, ok) {
		return
	}
	b.record("SetScissor(%+v,%v)", sciss, ok)
}

func (b *Backend) BindRenderTarget(rt gfx.RenderTarget) gfx.RenderTarget {
	b.record("BindRenderTarget")
	var prev gfx.RenderTarget
	if b.curRT != nil {
		prev = b.curRT
	}
	if rt == nil {
		b.curRT = nil
		return prev
	}
	b.curRT = rt.(*renderTarget)
	return prev
}

func (b *Backend) NewRenderTarget(desc gfx.RenderTargetDesc) (gfx.RenderTarget, error) {
	rt := &renderTarget{id: b.newID(), width: desc.Width, height: desc.Height}
	for _, fmt := range desc.ColorFormat {
		rt.color = append(rt.color, &texture{
			id: b.newID(), width: desc.Width, height: desc.Height, format: fmt,
			pixels: make([]byte, desc.Width*desc.Height*4),
		})
	}
	if desc.HasDepth {
		rt.depth = &texture{id: b.newID(), width: desc.Width, height: desc.Height, format: desc.DepthFormat}
	}
	b.record("NewRenderTarget(%dx%d)", desc.Width, desc.Height)
	return rt, nil
}

func (b *Backend) NewBuffer(size int, usage gfx.BufferUsage) (gfx.Buffer, error) {
	b.record("NewBuffer(%d,%v)", size, usage)
	return &buffer{id: b.newID(), data: make([]byte, size)}, nil
}

func (b *Backend) UpdateBuffer(buf gfx.Buffer, offset int, data []byte) error {
	b.record("UpdateBuffer(off=%d,len=%d)", offset, len(data))
	bb := buf.(*buffer)
	if offset+len(data) > len(bb.data) {
		grown := make([]byte, offset+len(data))
		copy(grown, bb.data)
		bb.data = grown
	}
	copy(bb.data[offset:], data)
	return nil
}

func (b *Backend) NewTexture(desc gfx.TextureDesc) (gfx.Texture, error) {
	b.record("NewTexture(%dx%d,%v)", desc.Width, desc.Height, desc.Format)
	return &texture{
		id: b.newID(), width: desc.Width, height: desc.Height, format: desc.Format,
		pixels: make([]byte, desc.Width*desc.Height*4),
	}, nil
}

func (b *Backend) UpdateTexture(tex gfx.Texture, data []byte, width, height int) error {
	b.record("UpdateTexture(%dx%d,len=%d)", width, height, len(data))
	t := tex.(*texture)
	n := width * height * 4
	if n > len(data) {
		n = len(data)
	}
	if len(t.pixels) < n {
		t.pixels = make([]byte, n)
	}
	copy(t.pixels, data[:n])
	return nil
}

func (b *Backend) NewPipeline(desc gfx.PipelineDesc) (gfx.Pipeline, error) {
	b.record("NewPipeline")
	return &pipeline{id: b.newID(), desc: desc, uniforms: map[string]any{}}, nil
}

func (b *Backend) SetPipeline(pl gfx.Pipeline) {
	if pl == nil {
		b.curPl = nil
		return
	}
	p := pl.(*pipeline)
	if !b.cache.SetPipeline(pl) {
		b.curPl = p
		return
	}
	b.record("SetPipeline(%d)", p.id)
	b.curPl = p
}

func (b *Backend) SetUniform(pl gfx.Pipeline, name string, value any) error {
	p := pl.(*pipeline)
	p.uniforms[name] = value
	return nil
}

func (b *Backend) SetTexture(unit int, tex gfx.Texture) {
	if !b.cache.SetTexture(unit, tex) {
		return
	}
	b.record("SetTexture(%d)", unit)
	if tex == nil {
		delete(b.textures, unit)
		return
	}
	b.textures[unit] = &boundTexture{tex: tex.(*texture)}
}

func (b *Backend) SetVertexBuffer(slot int, buf gfx.Buffer, stride, offset int) {
	if !b.cache.SetVertexBuffer(slot, buf, stride, offset) {
		return
	}
	b.record("SetVertexBuffer(%d)", slot)
}

func (b *Backend) SetAttribute(index, slot int, format gfx.AttribFormat, offset int) {
	b.record("SetAttribute(%d,%d)", index, slot)
}

// Draw and DrawIndexed both "render" by writing a flat color derived
// from the bound pipeline's "k" uniform, if set, else from a bound
// texture's first texel, into the bound render target (see sampleColor).
// This is enough to make §8.3 scenario 1/2's center-pixel assertions
// observable without a real rasterizer.
func (b *Backend) Draw(topology gfx.Topology, vertexCount, instanceCount, firstVertex int) {
	b.record("Draw(%v,%d)", topology, vertexCount)
	b.rasterizeFlat()
}

func (b *Backend) DrawIndexed(topology gfx.Topology, indexCount, instanceCount, firstIndex int, indexBuf gfx.Buffer) {
	b.record("DrawIndexed(%v,%d)", topology, indexCount)
	b.rasterizeFlat()
}

func (b *Backend) rasterizeFlat() {
	fb, _, _ := b.framebuffer(b.curRT)
	px := b.sampleColor()
	for i := 0; i+3 < len(fb); i += 4 {
		copy(fb[i:i+4], px[:])
	}
}

// sampleColor picks the color this mock backend would have painted
// the whole viewport with: the "k" scalar uniform drives red (§8.3
// scenario 2's UniformScalar test), else a bound texture's first texel
// (scenario 1's solid-color quad), else opaque black. Bound textures are
// kept in a map, so with several units bound, which one is read is not
// defined.
func (b *Backend) sampleColor() [4]byte {
	if b.curPl != nil {
		if k, ok := b.curPl.uniforms["k"].(float64); ok {
			return [4]byte{byte(k * 255 / 10), 0, 0, 255}
		}
	}
	for _, t := range b.textures {
		if len(t.tex.pixels) >= 4 {
			return [4]byte{t.tex.pixels[0], t.tex.pixels[1], t.tex.pixels[2], t.tex.pixels[3]}
		}
	}
	return [4]byte{0, 0, 0, 255}
}

func (b *Backend) Destroy(res gfx.Destroyer) {
	b.record("Destroy")
}

func (b *Backend) Present() { b.record("Present") }

func (b *Backend) framebuffer(rt gfx.RenderTarget) (fb []byte, width, height int) {
	if rt == nil {
		return b.fb, b.width, b.height
	}
	r := rt.(*renderTarget)
	if len(r.color) == 0 {
		return b.fb, b.width, b.height
	}
	return r.color[0].pixels, r.width, r.height
}

// ReadPixel returns the RGBA8 pixel at (x, y) of the default render
// target's color buffer, for assertions like §8.3 scenario 1's
// "read_pixels at center returns (255,0,0,255) +-1".
func (b *Backend) ReadPixel(x, y int) [4]byte {
	i := (y*b.width + x) * 4
	if i < 0 || i+3 >= len(b.fb) {
		return [4]byte{}
	}
	return [4]byte{b.fb[i], b.fb[i+1], b.fb[i+2], b.fb[i+3]}
}

// ReadPixels implements gfx.Backend's rectangle readback (§6.4), used
// by drawable.Camera's pipe-capture path.
func (b *Backend) ReadPixels(x, y, width, height int) []byte {
	out := make([]byte, width*height*4)
	for row := 0; row < height; row++ {
		srcY := y + row
		srcOff := (srcY*b.width + x) * 4
		dstOff := row * width * 4
		n := width * 4
		if srcOff < 0 || srcOff+n > len(b.fb) {
			continue
		}
		copy(out[dstOff:dstOff+n], b.fb[srcOff:srcOff+n])
	}
	return out
}

// SetCapability toggles a dynamic GL capability (§6.3 GLState),
// recording the change through the state cache the same way every
// other Set* call elides redundant driver work (§4.9).
func (b *Backend) SetCapability(cap gfx.Capability, enabled bool) {
	if !b.cache.SetCapabilityValue(cap, enabled) {
		return
	}
	b.record("SetCapability(%v,%v)", cap, enabled)
}

func (b *Backend) GetCapability(cap gfx.Capability) bool { return b.cache.Capability(cap) }

func (b *Backend) SetBlendState(st gfx.BlendState) {
	if !b.cache.SetBlend(st) {
		return
	}
	b.record("SetBlendState(%+v)", st)
}

func (b *Backend) GetBlendState() gfx.BlendState { return b.cache.Blend() }

func (b *Backend) SetStencilState(st gfx.StencilState) {
	if !b.cache.SetStencil(st) {
		return
	}
	b.record("SetStencilState(%+v)", st)
}

func (b *Backend) GetStencilState() gfx.StencilState { return b.cache.Stencil() }

func (b *Backend) SetColorMask(mask [4]bool) {
	if !b.cache.SetColorMaskValue(mask) {
		return
	}
	b.record("SetColorMask(%v)", mask)
}

func (b *Backend) GetColorMask() [4]bool { return b.cache.ColorMask() }

func rgba8(c [4]float32) [4]byte {
	clamp := func(f float32) byte {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 255
		}
		return byte(f * 255)
	}
	return [4]byte{clamp(c[0]), clamp(c[1]), clamp(c[2]), clamp(c[3])}
}
