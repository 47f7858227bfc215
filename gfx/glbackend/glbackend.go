// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package glbackend implements gfx.Backend against a real OpenGL 3.3
// core-profile context, using github.com/go-gl/gl/v3.3-core/gl for the
// driver calls and github.com/go-gl/glfw/v3.3/glfw for context
// bring-up (§4.8, §1: "the concrete GL/GLES loader and per-platform
// context bring-up" is otherwise out of scope, but a reference backend
// still needs to exist and be callable from Go for the package to
// build and be used outside of tests). It is grounded on the teacher's
// driver/vk package shape: one file owning device/context bring-up,
// resource types implementing small Destroyer-style interfaces, and a
// dispatch surface the rest of the engine only ever touches through
// gfx.Backend.
package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/nglcfg"
	"github.com/gviegas/nodegfx/statecache"
)

// Backend is a gfx.Backend backed by a live OpenGL 3.3 core context.
// The zero value is not usable; use New or Wrap.
type Backend struct {
	win    *glfw.Window
	owns   bool
	limits gfx.Limits
	cache  *statecache.Cache

	width, height int
	curRT         *renderTarget

	clearColor [4]float32
}

// New creates a hidden (or visible, for Config.Offscreen == false)
// GLFW window and an OpenGL 3.3 core context bound to it (§6.1
// configure: "creates the graphics context; probes features").
func New(cfg nglcfg.Config) (*Backend, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glbackend: glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Offscreen {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	if cfg.Samples > 0 {
		glfw.WindowHint(glfw.Samples, cfg.Samples)
	}
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, "nodegfx", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glbackend: create window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glbackend: gl init: %w", err)
	}
	glfw.SwapInterval(cfg.SwapInterval)

	b := &Backend{
		win: win, owns: true,
		cache: statecache.New(),
		width: cfg.Width, height: cfg.Height,
		clearColor: cfg.ClearColor,
	}
	b.probeLimits()
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return b, nil
}

// Wrap adopts an already-current, externally owned GL context (§6.1
// supplementary: "set_glcontext... wraps an existing external GL
// context (no ownership)"). The caller remains responsible for
// make_current/swap_buffers/destroy; this Backend's own Present only
// polls window events and does not swap buffers.
func Wrap(width, height int) (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glbackend: gl init: %w", err)
	}
	b := &Backend{cache: statecache.New(), width: width, height: height}
	b.probeLimits()
	return b, nil
}

func (b *Backend) probeLimits() {
	var maxTex, maxAttribs, maxUnits, maxColorAttach int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTex)
	gl.GetIntegerv(gl.MAX_VERTEX_ATTRIBS, &maxAttribs)
	gl.GetIntegerv(gl.MAX_TEXTURE_IMAGE_UNITS, &maxUnits)
	gl.GetIntegerv(gl.MAX_COLOR_ATTACHMENTS, &maxColorAttach)
	ext := gl.GoStr(gl.GetString(gl.EXTENSIONS))
	b.limits = gfx.Limits{
		MaxTextureSize:      int(maxTex),
		MaxColorAttach:      int(maxColorAttach),
		MaxVertexAttribs:    int(maxAttribs),
		MaxTextureUnits:     int(maxUnits),
		SupportsYUVSample:   true,
		SupportsExternalOES: strings.Contains(ext, "GL_OES_EGL_image_external"),
	}
}

func (b *Backend) Limits() gfx.Limits { return b.limits }

func (b *Backend) Resize(width, height int) {
	b.width, b.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *Backend) Clear(rt gfx.RenderTarget, color [4]float32, depth float32, stencil uint32, mask gfx.ClearMask) {
	b.BindRenderTarget(rt)
	// §4.9: "clear_color/clear_depth_stencil... disables scissor-test
	// transparently... restores the scissor-test enable."
	wasScissor := b.cache.Capability(gfx.CapScissorTest)
	if wasScissor {
		gl.Disable(gl.SCISSOR_TEST)
	}
	var bits uint32
	if mask&gfx.ClearColor != 0 {
		gl.ClearColor(color[0], color[1], color[2], color[3])
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gfx.ClearDepth != 0 {
		gl.ClearDepth(float64(depth))
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&gfx.ClearStencil != 0 {
		gl.ClearStencil(int32(stencil))
		bits |= gl.STENCIL_BUFFER_BIT
	}
	if bits != 0 {
		gl.Clear(bits)
	}
	if wasScissor {
		gl.Enable(gl.SCISSOR_TEST)
	}
}

func (b *Backend) SetViewport(vp gfx.Viewport) {
	if !b.cache.SetViewport(vp) {
		return
	}
	gl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
	gl.DepthRange(float64(vp.MinDepth), float64(vp.MaxDepth))
}

func (b *Backend) SetScissor(sciss gfx.Scissor, ok bool) {
	if !b.cache.SetScissor(sciss, ok) {
		return
	}
	b.SetCapability(gfx.CapScissorTest, ok)
	if ok {
		gl.Scissor(int32(sciss.X), int32(sciss.Y), int32(sciss.Width), int32(sciss.Height))
	}
}

func (b *Backend) BindRenderTarget(rt gfx.RenderTarget) gfx.RenderTarget {
	// b.curRT is a *renderTarget; reporting it through the interface
	// only when non-nil avoids returning a non-nil interface wrapping
	// a nil pointer, which would no longer compare equal to nil.
	var prev gfx.RenderTarget
	if b.curRT != nil {
		prev = b.curRT
	}
	if rt == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		b.curRT = nil
		return prev
	}
	r := rt.(*renderTarget)
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	if len(r.drawBufs) > 0 {
		gl.DrawBuffers(int32(len(r.drawBufs)), &r.drawBufs[0])
	}
	b.curRT = r
	return prev
}

func (b *Backend) Destroy(res gfx.Destroyer) {
	switch r := res.(type) {
	case *buffer:
		gl.DeleteBuffers(1, &r.id)
	case *texture:
		gl.DeleteTextures(1, &r.id)
	case *pipeline:
		gl.DeleteProgram(r.id)
	case *renderTarget:
		if len(r.colorIDs) > 0 {
			gl.DeleteTextures(int32(len(r.colorIDs)), &r.colorIDs[0])
		}
		if r.depthTex != 0 {
			gl.DeleteTextures(1, &r.depthTex)
		}
		if r.depthRB != 0 {
			gl.DeleteRenderbuffers(1, &r.depthRB)
		}
		gl.DeleteFramebuffers(1, &r.fbo)
	}
}

func (b *Backend) Present() {
	if b.win != nil {
		b.win.SwapBuffers()
	}
	glfw.PollEvents()
}

func (b *Backend) ReadPixels(x, y, width, height int) []byte {
	out := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(out))
	// GL's origin is bottom-left; flip to the engine's top-down
	// convention for pipe capture (§6.4).
	flipped := make([]byte, len(out))
	stride := width * 4
	for row := 0; row < height; row++ {
		src := (height - 1 - row) * stride
		dst := row * stride
		copy(flipped[dst:dst+stride], out[src:src+stride])
	}
	return flipped
}

// DestroyContext releases the window/context this Backend created (Context
// API's free(Ctx), §6.1). It is a no-op for a Wrap()-ed backend.
func (b *Backend) DestroyContext() {
	if b.owns && b.win != nil {
		b.win.Destroy()
	}
}

// ShouldClose reports whether the window this Backend owns has
// received a close request (e.g. the user clicked the close button).
// It always returns false for a Wrap()-ed backend, since there is no
// window to ask.
func (b *Backend) ShouldClose() bool {
	return b.win != nil && b.win.ShouldClose()
}

// Now returns the GLFW monotonic clock, for a caller driving its own
// draw loop (cmd/nglplay) without inventing a second time source.
func Now() float64 { return glfw.GetTime() }
