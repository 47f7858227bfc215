// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/linear"
)

type buffer struct {
	id     uint32
	target uint32
	size   int
}

func (*buffer) destroyerSentinel() {}

type texture struct {
	id            uint32
	width, height int
	format        gfx.PixelFmt
}

func (*texture) destroyerSentinel() {}
func (t *texture) Width() int          { return t.width }
func (t *texture) Height() int         { return t.height }
func (t *texture) Format() gfx.PixelFmt { return t.format }

type pipeline struct {
	id        uint32
	uniformLoc map[string]int32
}

func (*pipeline) destroyerSentinel() {}

type renderTarget struct {
	fbo           uint32
	width, height int
	colorIDs      []uint32
	colorTex      []*texture
	depthTex      uint32
	depthRB       uint32
	depth         *texture
	drawBufs      []uint32
}

func (*renderTarget) destroyerSentinel() {}
func (r *renderTarget) ColorTexture(i int) gfx.Texture {
	if i < 0 || i >= len(r.colorTex) {
		return nil
	}
	return r.colorTex[i]
}
func (r *renderTarget) DepthTexture() gfx.Texture {
	if r.depth == nil {
		return nil
	}
	return r.depth
}

var pixelFmtGL = [...]struct{ internal, format, typ uint32 }{
	gfx.RGBA8:           {gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE},
	gfx.RGBA8sRGB:       {gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE},
	gfx.RGBA16F:         {gl.RGBA16F, gl.RGBA, gl.FLOAT},
	gfx.RGBA32F:         {gl.RGBA32F, gl.RGBA, gl.FLOAT},
	gfx.Depth24Stencil8: {gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8},
	gfx.Depth32F:        {gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT},
}

func (b *Backend) NewRenderTarget(desc gfx.RenderTargetDesc) (gfx.RenderTarget, error) {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	rt := &renderTarget{fbo: fbo, width: desc.Width, height: desc.Height}
	for i, fmtID := range desc.ColorFormat {
		var id uint32
		gl.GenTextures(1, &id)
		gl.BindTexture(gl.TEXTURE_2D, id)
		pf := pixelFmtGL[fmtID]
		gl.TexImage2D(gl.TEXTURE_2D, 0, int32(pf.internal), int32(desc.Width), int32(desc.Height), 0, pf.format, pf.typ, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(i), gl.TEXTURE_2D, id, 0)
		rt.colorIDs = append(rt.colorIDs, id)
		rt.colorTex = append(rt.colorTex, &texture{id: id, width: desc.Width, height: desc.Height, format: fmtID})
		rt.drawBufs = append(rt.drawBufs, gl.COLOR_ATTACHMENT0+uint32(i))
	}
	if desc.HasDepth {
		df := desc.DepthFormat
		if df != gfx.Depth24Stencil8 && df != gfx.Depth32F {
			df = gfx.Depth24Stencil8
		}
		var id uint32
		gl.GenTextures(1, &id)
		gl.BindTexture(gl.TEXTURE_2D, id)
		pf := pixelFmtGL[df]
		gl.TexImage2D(gl.TEXTURE_2D, 0, int32(pf.internal), int32(desc.Width), int32(desc.Height), 0, pf.format, pf.typ, nil)
		attach := uint32(gl.DEPTH_ATTACHMENT)
		if df == gfx.Depth24Stencil8 {
			attach = gl.DEPTH_STENCIL_ATTACHMENT
		}
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attach, gl.TEXTURE_2D, id, 0)
		rt.depthTex = id
		rt.depth = &texture{id: id, width: desc.Width, height: desc.Height, format: df}
	}
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return nil, fmt.Errorf("glbackend: incomplete framebuffer (0x%x)", status)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return rt, nil
}

func (b *Backend) NewBuffer(size int, usage gfx.BufferUsage) (gfx.Buffer, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	target := bufferTarget(usage)
	gl.BindBuffer(target, id)
	gl.BufferData(target, size, nil, gl.DYNAMIC_DRAW)
	return &buffer{id: id, target: target, size: size}, nil
}

func bufferTarget(usage gfx.BufferUsage) uint32 {
	switch usage {
	case gfx.IndexBuffer:
		return gl.ELEMENT_ARRAY_BUFFER
	case gfx.UniformBuffer:
		return gl.UNIFORM_BUFFER
	default:
		return gl.ARRAY_BUFFER
	}
}

func (b *Backend) UpdateBuffer(buf gfx.Buffer, offset int, data []byte) error {
	bb := buf.(*buffer)
	gl.BindBuffer(bb.target, bb.id)
	if offset+len(data) > bb.size {
		gl.BufferData(bb.target, offset+len(data), nil, gl.DYNAMIC_DRAW)
		bb.size = offset + len(data)
	}
	if len(data) > 0 {
		gl.BufferSubData(bb.target, offset, len(data), gl.Ptr(data))
	}
	return nil
}

func (b *Backend) NewTexture(desc gfx.TextureDesc) (gfx.Texture, error) {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	pf := pixelFmtGL[desc.Format]
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(pf.internal), int32(desc.Width), int32(desc.Height), 0, pf.format, pf.typ, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return &texture{id: id, width: desc.Width, height: desc.Height, format: desc.Format}, nil
}

func (b *Backend) UpdateTexture(tex gfx.Texture, data []byte, width, height int) error {
	t := tex.(*texture)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	pf := pixelFmtGL[t.format]
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), pf.format, pf.typ, gl.Ptr(data))
	return nil
}

func (b *Backend) NewPipeline(desc gfx.PipelineDesc) (gfx.Pipeline, error) {
	vs, err := compileShader(desc.VertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("glbackend: vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(desc.FragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("glbackend: fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("glbackend: link failed: %s", log)
	}
	return &pipeline{id: prog, uniformLoc: map[string]int32{}}, nil
}

func compileShader(src string, kind uint32) (uint32, error) {
	sh := gl.CreateShader(kind)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)
	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("%s", log)
	}
	return sh, nil
}

func (b *Backend) SetPipeline(pl gfx.Pipeline) {
	if !b.cache.SetPipeline(pl) {
		return
	}
	if pl == nil {
		gl.UseProgram(0)
		return
	}
	gl.UseProgram(pl.(*pipeline).id)
}

func (b *Backend) SetUniform(pl gfx.Pipeline, name string, value any) error {
	p := pl.(*pipeline)
	loc, ok := p.uniformLoc[name]
	if !ok {
		loc = gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
		p.uniformLoc[name] = loc
	}
	if loc < 0 {
		return nil
	}
	switch v := value.(type) {
	case float32:
		gl.Uniform1f(loc, v)
	case float64:
		gl.Uniform1f(loc, float32(v))
	case int:
		gl.Uniform1i(loc, int32(v))
	case [2]float32:
		gl.Uniform2f(loc, v[0], v[1])
	case [3]float32:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case [4]float32:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case [16]float32:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	case linear.V2:
		gl.Uniform2f(loc, v[0], v[1])
	case linear.V3:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case linear.V4:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case linear.M3:
		gl.UniformMatrix3fv(loc, 1, false, &v[0][0])
	case linear.M4:
		gl.UniformMatrix4fv(loc, 1, false, &v[0][0])
	default:
		return fmt.Errorf("glbackend: unsupported uniform type %T", value)
	}
	return nil
}

func (b *Backend) SetTexture(unit int, tex gfx.Texture) {
	if !b.cache.SetTexture(unit, tex) {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	if tex == nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.(*texture).id)
}

func (b *Backend) SetVertexBuffer(slot int, buf gfx.Buffer, stride, offset int) {
	if !b.cache.SetVertexBuffer(slot, buf, stride, offset) {
		return
	}
	if buf == nil {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.(*buffer).id)
}

var attribGL = [...]struct {
	size int32
	typ  uint32
}{
	gfx.Float1: {1, gl.FLOAT},
	gfx.Float2: {2, gl.FLOAT},
	gfx.Float3: {3, gl.FLOAT},
	gfx.Float4: {4, gl.FLOAT},
}

func (b *Backend) SetAttribute(index, slot int, format gfx.AttribFormat, offset int) {
	f := attribGL[format]
	gl.EnableVertexAttribArray(uint32(index))
	gl.VertexAttribPointer(uint32(index), f.size, f.typ, false, 0, gl.PtrOffset(offset))
}

var topologyGL = [...]uint32{
	gfx.Points: gl.POINTS, gfx.Lines: gl.LINES, gfx.LineStrip: gl.LINE_STRIP,
	gfx.Triangles: gl.TRIANGLES, gfx.TriangleStrip: gl.TRIANGLE_STRIP, gfx.TriangleFan: gl.TRIANGLE_FAN,
}

func (b *Backend) Draw(topology gfx.Topology, vertexCount, instanceCount, firstVertex int) {
	if instanceCount > 1 {
		gl.DrawArraysInstanced(topologyGL[topology], int32(firstVertex), int32(vertexCount), int32(instanceCount))
		return
	}
	gl.DrawArrays(topologyGL[topology], int32(firstVertex), int32(vertexCount))
}

func (b *Backend) DrawIndexed(topology gfx.Topology, indexCount, instanceCount, firstIndex int, indexBuf gfx.Buffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, indexBuf.(*buffer).id)
	offset := gl.PtrOffset(firstIndex * 2)
	if instanceCount > 1 {
		gl.DrawElementsInstanced(topologyGL[topology], int32(indexCount), gl.UNSIGNED_SHORT, offset, int32(instanceCount))
		return
	}
	gl.DrawElements(topologyGL[topology], int32(indexCount), gl.UNSIGNED_SHORT, offset)
}
