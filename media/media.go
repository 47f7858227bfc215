// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package media implements the media/texture update path of §4.1.L
// and §6.4: a Media node class that uploads externally delivered,
// timestamped frames into a GPU texture, branching on a pixel-format
// tag the way the original's node_media.c dispatches to a per-format
// upload routine, and populating a coordinate transform matrix the
// shader samples through (§6.4). Demuxing/decoding/JNI/VAAPI import
// are out of scope (§1); this package only defines the FrameSource
// contract an external collaborator implements and the fast-path
// upload logic that runs once a Frame has been produced.
package media

import (
	"time"

	"github.com/gviegas/nodegfx/anim"
	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/linear"
	"github.com/gviegas/nodegfx/scenegraph"
)

// PixelFormat tags the layout of a Frame's pixel data (§6.4: "the core
// upload path branches on the frame's pixel-format tag").
type PixelFormat int

const (
	// RGBASoftware is a tightly (or linesize-padded) packed RGBA8
	// buffer the engine uploads directly (§4.8 "classic" texture
	// storage mode).
	RGBASoftware PixelFormat = iota
	// OpaqueAndroidBuffer, OpaqueDarwinPixelBuffer and
	// OpaqueLinuxDMABuf identify platform-opaque frame handles the
	// backend would import without an engine-side copy (§1, §6.4);
	// this module's reference backends have no import path for them
	// and surface gfxerr.Unsupported (see DESIGN.md).
	OpaqueAndroidBuffer
	OpaqueDarwinPixelBuffer
	OpaqueLinuxDMABuf
)

// Frame is one timestamped sample a FrameSource hands to the engine
// (§6.4: "a frame source that returns, per timestamp, either software
// frames... or opaque handles").
type Frame struct {
	Format PixelFormat

	// Width, Height are the frame's pixel dimensions.
	Width, Height int

	// Linesize is the stride, in pixels, of Data's rows; it may exceed
	// Width when the source pads rows (common in hardware decoders).
	// Zero means "tightly packed" (Linesize == Width).
	Linesize int

	// Data holds RGBA8 bytes when Format == RGBASoftware; nil
	// otherwise.
	Data []byte

	// Opaque holds a platform-specific handle when Format names an
	// opaque format; nil for software frames.
	Opaque any

	// CoordsMatrix is the frame-supplied sampling transform (e.g. a
	// crop/flip baked in by the decoder); the zero value is treated as
	// identity. The Media node composes it with the linesize padding
	// correction before exposing it through CoordsMatrix (§6.4).
	CoordsMatrix linear.M4
}

// FrameSource is the external collaborator this package consumes
// (§1: media demuxing/decoding is out of scope; only this contract is
// specified). Frame blocks for up to timeout waiting for a buffer to
// become available; ok is false on timeout, the only wait the core
// observes (§5).
type FrameSource interface {
	Frame(t float64, timeout time.Duration) (frame Frame, ok bool, err error)
}

// BufferTimeout is the fixed wait §5 specifies for the Android
// image-available path: "a 1-second timeout".
const BufferTimeout = time.Second

// KindMedia is the node kind for the Media class (§6.3 Rendering).
const KindMedia scenegraph.Kind = 325

func init() {
	scenegraph.Register(&scenegraph.Class{ID: KindMedia, Name: "Media", New: func() scenegraph.Impl { return &mediaImpl{} }})
}

// mediaImpl implements scenegraph.Impl and the TextureProvider
// interface textureImpl.GPUTexture/CoordsMatrix satisfies, so a Media
// node is interchangeable with a Texture node in TexturedShape's
// texture list (§4.7: "for each bound texture slot").
type mediaImpl struct {
	scenegraph.NopImpl

	// Source is the frame producer; set directly, like textureImpl.Data,
	// since an external collaborator has no reflectable param type.
	Source FrameSource

	// AnimKF remaps playback time through a linear-only keyframe list
	// before it reaches Source (§3.5: "Only linear easing is allowed
	// for kf lists used as time remappers on media nodes").
	AnimKF []*scenegraph.Node `ngl:"animkf" nglallowed:"AnimKeyFrameScalar"`

	remap []anim.KeyFrame[float64]

	tex     gfx.Texture
	texW    int
	texH    int
	coords  linear.M4
	lastFmt PixelFormat
}

func (m *mediaImpl) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	frames, err := scalarFrames(m.AnimKF)
	if err != nil {
		return err
	}
	for _, f := range frames {
		if f.Easing.Family != anim.Linear {
			return gfxerr.New("media.Media.Init", gfxerr.InvalidArg)
		}
	}
	m.remap = frames
	m.coords = linear.Identity()
	return nil
}

func (m *mediaImpl) Release(n *scenegraph.Node, ctx *scenegraph.Context) {
	if m.tex != nil {
		ctx.Backend.Destroy(m.tex)
		m.tex = nil
	}
}

func (m *mediaImpl) Uninit(n *scenegraph.Node) {
	m.texW, m.texH = 0, 0
	m.coords = linear.M4{}
}

// Update pulls the frame active at the remapped media time and
// uploads it into the GPU texture, recreating the texture whenever its
// dimensions change (§4.1.L "upload of externally delivered frames...
// with per-pixel-format fast paths and a coordinate transform matrix").
func (m *mediaImpl) Update(n *scenegraph.Node, ctx *scenegraph.Context, t float64) error {
	if m.Source == nil {
		return nil
	}
	mediaT := t
	if len(m.remap) > 0 {
		mediaT = anim.ResolveTime(t, m.remap)
	}

	frame, ok, err := m.Source.Frame(mediaT, BufferTimeout)
	if err != nil {
		return gfxerr.Wrap("media.Media.Update", gfxerr.External, err)
	}
	if !ok {
		// Backpressure: no buffer became available within the
		// timeout; keep displaying the previously uploaded texture
		// rather than fail the frame (§5 "dropped frames").
		if ctx.Log != nil {
			ctx.Log.Warningf("media.Media: dropped frame at t=%g (buffer not ready)", mediaT)
		}
		return nil
	}

	switch frame.Format {
	case RGBASoftware:
		return m.uploadSoftware(ctx, frame)
	default:
		if ctx.Log != nil {
			ctx.Log.Warningf("media.Media: opaque format %d not supported by this backend", frame.Format)
		}
		return gfxerr.New("media.Media.Update", gfxerr.Unsupported)
	}
}

func (m *mediaImpl) uploadSoftware(ctx *scenegraph.Context, frame Frame) error {
	if frame.Width <= 0 || frame.Height <= 0 {
		return gfxerr.New("media.Media.uploadSoftware", gfxerr.InvalidArg)
	}
	texW := frame.Width
	if frame.Linesize > frame.Width {
		texW = frame.Linesize
	}
	if m.tex == nil || m.texW != texW || m.texH != frame.Height {
		if m.tex != nil {
			ctx.Backend.Destroy(m.tex)
		}
		tex, err := ctx.Backend.NewTexture(gfx.TextureDesc{Width: texW, Height: frame.Height, Format: gfx.RGBA8})
		if err != nil {
			return gfxerr.Wrap("media.Media.uploadSoftware", gfxerr.External, err)
		}
		m.tex, m.texW, m.texH = tex, texW, frame.Height
	}
	if err := ctx.Backend.UpdateTexture(m.tex, frame.Data, texW, frame.Height); err != nil {
		return gfxerr.Wrap("media.Media.uploadSoftware", gfxerr.External, err)
	}

	m.coords = frame.CoordsMatrix
	if m.coords == (linear.M4{}) {
		m.coords = linear.Identity()
	}
	if frame.Linesize > frame.Width {
		// Scale the U coordinate so sampling stays within the real
		// image area when the source pads each row (§6.4).
		var scale linear.M4
		sv := linear.V3{float32(frame.Width) / float32(frame.Linesize), 1, 1}
		scale = linear.Scaling(&sv)
		var composed linear.M4
		composed.Mul(&m.coords, &scale)
		m.coords = composed
	}
	return nil
}

func (m *mediaImpl) GPUTexture() gfx.Texture { return m.tex }
func (m *mediaImpl) CoordsMatrix() linear.M4 { return m.coords }

// keyframeSource mirrors the unexported interface package transform
// uses to read AnimKeyFrame* nodes generically.
type keyframeSource interface {
	Time() float64
	Easing() anim.Easing
}

func scalarFrames(nodes []*scenegraph.Node) ([]anim.KeyFrame[float64], error) {
	out := make([]anim.KeyFrame[float64], 0, len(nodes))
	for _, kfn := range nodes {
		src, ok := kfn.Impl().(interface {
			keyframeSource
			Scalar() float64
		})
		if !ok {
			return nil, gfxerr.New("media.scalarFrames", gfxerr.InvalidArg)
		}
		out = append(out, anim.KeyFrame[float64]{Time: src.Time(), Value: src.Scalar(), Easing: src.Easing()})
	}
	return out, nil
}
