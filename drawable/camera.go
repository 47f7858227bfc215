// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package drawable

import (
	"github.com/gviegas/nodegfx/anim"
	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/linear"
	"github.com/gviegas/nodegfx/scenegraph"
	"github.com/gviegas/nodegfx/transform"
)

// KindCamera is the node kind for the Camera class (§4.7 Camera).
const KindCamera scenegraph.Kind = 340

func init() {
	scenegraph.Register(&scenegraph.Class{ID: KindCamera, Name: "Camera", New: func() scenegraph.Impl { return &cameraImpl{} }})
}

// chainLink is implemented by every transform chain node (identity,
// translate, rotate, scale), letting this package walk an eye/center/up
// control chain down to its terminal without importing transform's
// unexported impl types.
type chainLink interface {
	ChainChild() *scenegraph.Node
}

// cameraImpl evaluates eye/center/up control points through independent
// transform chains, builds a look-at view and a perspective projection,
// and writes both into its child (§4.6, §4.7 Camera). When PipeFD >= 0
// it reads back the frame just drawn and hands it to PipeWriter, the
// file-descriptor capture path of §6.4.
type cameraImpl struct {
	scenegraph.NopImpl

	Eye    *scenegraph.Node `ngl:"eye" nglallowed:"Identity,Translate,Rotate,Scale"`
	Center *scenegraph.Node `ngl:"center" nglallowed:"Identity,Translate,Rotate,Scale"`
	Up     *scenegraph.Node `ngl:"up" nglallowed:"Identity,Translate,Rotate,Scale"`

	FovDeg float64            `ngl:"fov,ctor"`
	Aspect float64            `ngl:"aspect,ctor"`
	Near   float64            `ngl:"near,ctor"`
	Far    float64            `ngl:"far,ctor"`
	AnimKF []*scenegraph.Node `ngl:"animkf" nglallowed:"AnimKeyFrameScalar"`

	Child *scenegraph.Node `ngl:"child" nglallowed:"Identity,Translate,Rotate,Scale,Group,TexturedShape,Camera,RTT,FPS"`

	// PipeFD, when >= 0, enables per-frame RGBA8 readback of the
	// default framebuffer written to PipeWriter after Draw (§6.4). It
	// is set directly rather than through the reflection schema, since
	// a raw fd has no scalar param type.
	PipeFD                int
	PipeWidth, PipeHeight int
	PipeWriter            func([]byte) error

	fov anim.Animated[float64]
}

func (c *cameraImpl) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	frames, err := animKFScalar(c.AnimKF)
	if err != nil {
		return err
	}
	c.fov.Value = c.FovDeg
	c.fov.SetFrames(frames)
	if c.Eye != nil {
		if err := requireIdentityTerminal(c.Eye); err != nil {
			return err
		}
	}
	if c.Center != nil {
		if err := requireIdentityTerminal(c.Center); err != nil {
			return err
		}
	}
	if c.Up != nil {
		if err := requireIdentityTerminal(c.Up); err != nil {
			return err
		}
	}
	return nil
}

// SetPipe configures the pipe capture surface (§6.4). width and height
// must match the render target's dimensions; a fd < 0 disables capture.
func (c *cameraImpl) SetPipe(fd, width, height int, writer func([]byte) error) {
	c.PipeFD, c.PipeWidth, c.PipeHeight, c.PipeWriter = fd, width, height, writer
}

func (c *cameraImpl) Update(n *scenegraph.Node, ctx *scenegraph.Context, t float64) error {
	eye, err := evalControlPoint(c.Eye, t)
	if err != nil {
		return err
	}
	center, err := evalControlPoint(c.Center, t)
	if err != nil {
		return err
	}
	up, err := evalControlPoint(c.Up, t)
	if err != nil {
		return err
	}
	if c.Up == nil {
		up = linear.V3{0, 1, 0}
	}

	view := linear.LookAt(&eye, &center, &up)
	if c.PipeFD >= 0 {
		// Negate Y so the row-major, bottom-left-origin pipe capture
		// convention matches a top-down RGBA8 dump (§4.7 Camera,
		// §8 open question: "preserve the camera-local flip").
		view[0][1] = -view[0][1]
		view[1][1] = -view[1][1]
		view[2][1] = -view[2][1]
		view[3][1] = -view[3][1]
	}

	var mv linear.M4
	mv.Mul(&n.Modelview, &view)

	fov := c.fov.Eval(t)
	proj := linear.Perspective(float32(fov)*(3.14159265/180), float32(c.Aspect), float32(c.Near), float32(c.Far))

	if c.Child == nil {
		return nil
	}
	c.Child.Modelview = mv
	c.Child.Projection = proj
	return scenegraph.Update(c.Child, t)
}

func (c *cameraImpl) Draw(n *scenegraph.Node, ctx *scenegraph.Context) {
	if c.Child != nil {
		scenegraph.Draw(c.Child)
	}
	if c.PipeFD < 0 || c.PipeWriter == nil {
		return
	}
	pixels := ctx.Backend.ReadPixels(0, 0, c.PipeWidth, c.PipeHeight)
	if err := c.PipeWriter(pixels); err != nil && ctx.Log != nil {
		ctx.Log.Warningf("drawable.Camera: pipe write: %v", err)
	}
}

func requireIdentityTerminal(root *scenegraph.Node) error {
	n := root
	for {
		link, ok := n.Impl().(chainLink)
		if !ok {
			return gfxerr.New("drawable.Camera", gfxerr.InvalidArg)
		}
		next := link.ChainChild()
		if next == nil {
			break
		}
		n = next
	}
	if n.Kind() != transform.KindIdentity {
		return gfxerr.New("drawable.Camera", gfxerr.InvalidArg)
	}
	return nil
}

// evalControlPoint updates root's chain from an identity base and
// returns the 3D point accumulated at its Identity terminal (§4.6: "the
// leaf's modelview-matrix slot is the accumulation result"). A nil root
// evaluates to the origin.
func evalControlPoint(root *scenegraph.Node, t float64) (linear.V3, error) {
	if root == nil {
		return linear.V3{}, nil
	}
	root.Modelview = linear.Identity()
	root.Projection = linear.Identity()
	if err := scenegraph.Update(root, t); err != nil {
		return linear.V3{}, err
	}
	n := root
	for {
		link := n.Impl().(chainLink)
		next := link.ChainChild()
		if next == nil {
			break
		}
		n = next
	}
	mv := n.Modelview
	return linear.V3{mv[3][0], mv[3][1], mv[3][2]}, nil
}
