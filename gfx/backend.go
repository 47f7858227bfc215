// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package gfx defines the graphics-context abstraction of §4.8: a
// backend-agnostic dispatch table for render targets, pipelines and
// resources, adapted from the teacher's driver.GPU/CmdBuffer split
// into a single interface matching the engine's immediate-mode draw
// model (nodes issue draw calls directly, not through recorded
// command buffers).
package gfx

// Backend is implemented by a concrete graphics API binding
// (gfx/glbackend for a real one, gfx/mockbackend for tests).
type Backend interface {
	// Limits returns the implementation limits, immutable for the
	// backend's lifetime.
	Limits() Limits

	// Resize notifies the backend that the default render target
	// changed size (window resize).
	Resize(width, height int)

	// Clear clears the bound render target.
	Clear(rt RenderTarget, color [4]float32, depth float32, stencil uint32, mask ClearMask)

	// SetViewport sets the viewport rectangle.
	SetViewport(vp Viewport)

	// SetScissor sets the scissor rectangle; ok reports whether
	// scissor testing is enabled.
	SetScissor(sciss Scissor, ok bool)

	// BindRenderTarget binds rt (the zero value binds the default
	// framebuffer) for subsequent Clear/Draw calls, and returns
	// whatever render target was bound before the call so a caller
	// can restore it later instead of assuming the default framebuffer.
	BindRenderTarget(rt RenderTarget) RenderTarget

	// NewRenderTarget creates an off-screen render target (§4.7 RTT).
	NewRenderTarget(desc RenderTargetDesc) (RenderTarget, error)

	// NewBuffer creates a buffer (vertex, index or uniform data).
	NewBuffer(size int, usage BufferUsage) (Buffer, error)

	// UpdateBuffer uploads data at the given byte offset.
	UpdateBuffer(buf Buffer, offset int, data []byte) error

	// NewTexture creates a 2D texture.
	NewTexture(desc TextureDesc) (Texture, error)

	// UpdateTexture uploads pixel data to a texture's base level.
	UpdateTexture(tex Texture, data []byte, width, height int) error

	// NewPipeline compiles a shader program and its fixed-function
	// state into a pipeline object.
	NewPipeline(desc PipelineDesc) (Pipeline, error)

	// SetPipeline binds a pipeline for subsequent draw calls.
	SetPipeline(pl Pipeline)

	// SetUniform writes a uniform value by name (§4.7 Uniform* nodes).
	SetUniform(pl Pipeline, name string, value any) error

	// SetTexture binds tex to the given sampler unit.
	SetTexture(unit int, tex Texture)

	// SetVertexBuffer binds buf as the source of attribute data.
	SetVertexBuffer(slot int, buf Buffer, stride, offset int)

	// SetAttribute describes one vertex attribute sourced from the
	// buffer bound at slot (§4.7 Attribute* nodes).
	SetAttribute(index, slot int, format AttribFormat, offset int)

	// Draw issues a non-indexed draw call.
	Draw(topology Topology, vertexCount, instanceCount, firstVertex int)

	// DrawIndexed issues an indexed draw call.
	DrawIndexed(topology Topology, indexCount, instanceCount, firstIndex int, indexBuf Buffer)

	// Destroy releases a resource created by this backend.
	Destroy(res Destroyer)

	// Present swaps the default render target to the screen (no-op
	// for an offscreen backend).
	Present()

	// ReadPixels reads back an RGBA8, row-major top-down rectangle of
	// the bound render target's color buffer (§6.4: camera pipe
	// capture, "a rectangle originating at (0,0), GL_RGBA,
	// GL_UNSIGNED_BYTE").
	ReadPixels(x, y, width, height int) []byte

	// SetCapability toggles a dynamic capability (§3.1 GLState: "a
	// list of GL-state override nodes applied around draw"). Like the
	// blend/stencil/color-mask overrides below, and unlike the defaults
	// baked into PipelineDesc, the boolean capabilities a GLState node
	// toggles are applied and restored per-draw.
	SetCapability(cap Capability, enabled bool)

	// GetCapability returns the capability's current value, so a
	// GLState override can save it before overwriting and restore it
	// after (§4.9: "records both the requested value and the previous
	// one and restores the previous in post-draw").
	GetCapability(cap Capability) bool

	// SetBlendState applies a dynamic blend override (§6.3
	// GLBlendState). GetBlendState returns the value currently applied.
	SetBlendState(st BlendState)
	GetBlendState() BlendState

	// SetStencilState applies a dynamic stencil override (§6.3
	// GLStencilState). GetStencilState returns the value currently
	// applied.
	SetStencilState(st StencilState)
	GetStencilState() StencilState

	// SetColorMask applies a dynamic color write mask override (§6.3
	// GLColorState). GetColorMask returns the mask currently applied.
	SetColorMask(mask [4]bool)
	GetColorMask() [4]bool
}

// Capability identifies a toggleable GL capability a GLState override
// node can enable or disable around a single draw (§6.3 State:
// GLState).
type Capability int

const (
	CapDepthTest Capability = iota
	CapCullFace
	CapBlend
	CapScissorTest
	CapStencilTest
	CapPolygonOffsetFill
)

func (c Capability) String() string {
	switch c {
	case CapDepthTest:
		return "depth_test"
	case CapCullFace:
		return "cull_face"
	case CapBlend:
		return "blend"
	case CapScissorTest:
		return "scissor_test"
	case CapStencilTest:
		return "stencil_test"
	case CapPolygonOffsetFill:
		return "polygon_offset_fill"
	default:
		return "unknown"
	}
}

// Destroyer is implemented by every backend-owned resource handle.
type Destroyer interface {
	destroyerSentinel()
}

// ClearMask selects which planes Clear affects.
type ClearMask int

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
	ClearStencil
)

// Viewport is a normalized device rectangle in pixels.
type Viewport struct {
	X, Y, Width, Height int
	MinDepth, MaxDepth  float32
}

// Scissor is a pixel-space clip rectangle.
type Scissor struct {
	X, Y, Width, Height int
}

// Topology is the primitive assembly mode (§4.7 Shape/Quad/Triangle).
type Topology int

const (
	Points Topology = iota
	Lines
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
)

// BufferUsage hints at how a buffer will be accessed.
type BufferUsage int

const (
	VertexBuffer BufferUsage = iota
	IndexBuffer
	UniformBuffer
)

// PixelFmt identifies a texture or render target pixel format,
// adapted from the teacher driver.PixelFmt enumeration (§4.8).
type PixelFmt int

const (
	RGBA8 PixelFmt = iota
	RGBA8sRGB
	RGBA16F
	RGBA32F
	Depth24Stencil8
	Depth32F
)

// AttribFormat describes the element type/count of a vertex attribute.
type AttribFormat int

const (
	Float1 AttribFormat = iota
	Float2
	Float3
	Float4
)

// Limits describes implementation limits queryable at runtime
// (§4.8 feature probing).
type Limits struct {
	MaxTextureSize    int
	MaxColorAttach    int
	MaxVertexAttribs  int
	MaxTextureUnits   int
	SupportsYUVSample bool
	SupportsExternalOES bool
}

// Buffer, Texture, Pipeline and RenderTarget are opaque backend
// resource handles. Concrete backends define their own underlying
// types satisfying these interfaces.
type (
	Buffer interface{ Destroyer }
	Texture interface {
		Destroyer
		Width() int
		Height() int
		Format() PixelFmt
	}
	Pipeline      interface{ Destroyer }
	RenderTarget  interface {
		Destroyer
		ColorTexture(index int) Texture
		DepthTexture() Texture
	}
)

// TextureDesc describes a texture to create.
type TextureDesc struct {
	Width, Height int
	Format        PixelFmt
	RenderTarget  bool // usable as a color/depth attachment
}

// RenderTargetDesc describes an off-screen render target (§4.7 RTT).
type RenderTargetDesc struct {
	Width, Height int
	ColorFormat   []PixelFmt
	DepthFormat   PixelFmt // zero value: PixelFmt default, see HasDepth
	HasDepth      bool
}

// PipelineDesc describes a shader program and the fixed-function
// state bound alongside it (§4.7 Shader, §3.1 GLState family).
type PipelineDesc struct {
	VertexSrc, FragmentSrc string
	Blend                  BlendState
	DepthTest, DepthWrite  bool
	StencilTest            bool
	Stencil                StencilState
}

// BlendState mirrors the spec's GLBlendState node parameters (§3.1).
type BlendState struct {
	Enabled                bool
	SrcFactor, DstFactor   BlendFactor
	SrcAlpha, DstAlpha     BlendFactor
	Op, AlphaOp            BlendOp
}

type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
)

type BlendOp int

const (
	BlendAdd BlendOp = iota
	BlendSubtract
	BlendReverseSubtract
)

// StencilState mirrors the spec's GLStencilState node parameters (§3.1).
type StencilState struct {
	ReadMask, WriteMask uint32
	Ref                 uint32
	Func                CompareFunc
	Fail, DepthFail, Pass StencilOp
}

type CompareFunc int

const (
	CmpNever CompareFunc = iota
	CmpLess
	CmpLessEqual
	CmpEqual
	CmpNotEqual
	CmpGreaterEqual
	CmpGreater
	CmpAlways
)

type StencilOp int

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncr
	StencilDecr
	StencilInvert
)
