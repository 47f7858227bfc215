// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package drawable

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/linear"
	"github.com/gviegas/nodegfx/scenegraph"
)

// KindTexture is the node kind for the Texture class (§6.3 Rendering).
const KindTexture scenegraph.Kind = 320

func init() {
	scenegraph.Register(&scenegraph.Class{ID: KindTexture, Name: "Texture", New: func() scenegraph.Impl { return &textureImpl{} }})
}

// TextureProvider is implemented by Texture and, through an adapter,
// by the media package's Media node (§4.7 TexturedShape: "for each
// bound texture slot... resolves texi_coords_matrix"; §6.4: "a 4x4
// coordinate matrix is populated per frame").
type TextureProvider interface {
	GPUTexture() gfx.Texture
	CoordsMatrix() linear.M4
}

// FormatName selects the pixel layout of static texture data, mirroring
// gfx.PixelFmt's RGBA8 family (§4.8 format translation table collapsed
// to the subset the engine core actually creates textures with).
const (
	FormatRGBA8 = "rgba8"
)

type textureImpl struct {
	scenegraph.NopImpl
	Width         int    `ngl:"width,ctor"`
	Height        int    `ngl:"height,ctor"`
	FormatName    string `ngl:"format,ctor" nglenum:"rgba8"`
	// Data holds raw pixel bytes; it has no scalar param type so it is
	// set directly through SetData rather than through the reflection
	// schema (no `ngl` tag: buildSchema skips untagged fields).
	Data []byte

	tex    gfx.Texture
	coords linear.M4
}

func (t *textureImpl) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	if t.Width <= 0 || t.Height <= 0 {
		return gfxerr.New("drawable.Texture.Init", gfxerr.InvalidArg)
	}
	t.coords = linear.Identity()
	return nil
}

func (t *textureImpl) Prefetch(n *scenegraph.Node, ctx *scenegraph.Context) error {
	tex, err := ctx.Backend.NewTexture(gfx.TextureDesc{Width: t.Width, Height: t.Height, Format: gfx.RGBA8})
	if err != nil {
		return gfxerr.Wrap("drawable.Texture.Prefetch", gfxerr.External, err)
	}
	if len(t.Data) > 0 {
		if err := ctx.Backend.UpdateTexture(tex, t.Data, t.Width, t.Height); err != nil {
			return gfxerr.Wrap("drawable.Texture.Prefetch", gfxerr.External, err)
		}
	}
	t.tex = tex
	return nil
}

func (t *textureImpl) Release(n *scenegraph.Node, ctx *scenegraph.Context) {
	if t.tex != nil {
		ctx.Backend.Destroy(t.tex)
		t.tex = nil
	}
}

func (t *textureImpl) GPUTexture() gfx.Texture   { return t.tex }
func (t *textureImpl) CoordsMatrix() linear.M4   { return t.coords }

// SetData assigns the pixel bytes a subsequent Prefetch uploads. It
// must be called before the node is attached to a Context (or after
// a parameter mutation forces it back to Uninit), mirroring how every
// other constructor-flagged field is only meaningful pre-Init.
func (t *textureImpl) SetData(data []byte) { t.Data = data }

// SetImage decodes src into tightly packed RGBA8 data scaled to the
// node's configured Width/Height and assigns it as if through SetData.
// It accepts whatever color model the caller's decoder produced
// (paletted, YCbCr, NRGBA, ...) and handles the scale-and-convert pass
// with golang.org/x/image/draw rather than a hand-rolled pixel walk.
func (t *textureImpl) SetImage(src image.Image) {
	t.Data = ImageToRGBA8(src, t.Width, t.Height)
}

// ImageToRGBA8 scales src to width x height and returns it as tightly
// packed, top-down RGBA8 bytes suitable for gfx.Backend.UpdateTexture.
func ImageToRGBA8(src image.Image, width, height int) []byte {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst.Pix
}
