// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package drawable

import "github.com/gviegas/nodegfx/scenegraph"

// KindFPS is the node kind for the FPS diagnostic class (§6.3
// Rendering: FPS). Listed in the closed set but left unspecified by
// spec.md beyond its name; grounded minimally here as a non-drawable
// node that accumulates the timestamps its Update hook receives and
// logs a rolling average every LogPeriod frames, the role a frame-rate
// counter plays in the original engine's node tree (an Open Question
// resolution recorded in DESIGN.md).
const KindFPS scenegraph.Kind = 370

func init() {
	scenegraph.Register(&scenegraph.Class{ID: KindFPS, Name: "FPS", New: func() scenegraph.Impl { return &fpsImpl{} }})
}

// DefaultLogPeriod is how many Update calls elapse between rolling
// FPS log lines when LogPeriod is left at zero.
const DefaultLogPeriod = 60

type fpsImpl struct {
	scenegraph.NopImpl
	LogPeriod int              `ngl:"log_period"`
	Child     *scenegraph.Node `ngl:"child" nglallowed:"Identity,Translate,Rotate,Scale,Group,TexturedShape,Camera,RTT,FPS"`

	frames      int
	windowStart float64
	lastT       float64
	hasLastT    bool
}

func (f *fpsImpl) Init(n *scenegraph.Node, ctx *scenegraph.Context) error {
	f.frames = 0
	f.hasLastT = false
	if f.LogPeriod <= 0 {
		f.LogPeriod = DefaultLogPeriod
	}
	return nil
}

func (f *fpsImpl) Update(n *scenegraph.Node, ctx *scenegraph.Context, t float64) error {
	if !f.hasLastT {
		f.windowStart = t
		f.hasLastT = true
	} else if t > f.lastT {
		f.frames++
		if f.frames >= f.LogPeriod {
			dt := t - f.windowStart
			if dt > 0 && ctx.Log != nil {
				ctx.Log.Debugf("drawable.FPS: %.2f fps (avg over %d frames)", float64(f.frames)/dt, f.frames)
			}
			f.frames = 0
			f.windowStart = t
		}
	}
	f.lastT = t

	if f.Child == nil {
		return nil
	}
	f.Child.Modelview = n.Modelview
	f.Child.Projection = n.Projection
	return scenegraph.Update(f.Child, t)
}

func (f *fpsImpl) Draw(n *scenegraph.Node, ctx *scenegraph.Context) {
	if f.Child != nil {
		scenegraph.Draw(f.Child)
	}
}
