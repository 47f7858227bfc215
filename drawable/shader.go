// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package drawable

import (
	"github.com/gviegas/nodegfx/gfx"
	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/scenegraph"
)

// KindShader is the node kind for the Shader class (§6.3 Rendering).
const KindShader scenegraph.Kind = 310

func init() {
	scenegraph.Register(&scenegraph.Class{ID: KindShader, Name: "Shader", New: func() scenegraph.Impl { return &shaderImpl{} }})
}

// Conventional attribute/uniform names a Shader resolves on init
// (§4.7 Shader).
const (
	AttrPosition = "ngl_position"
	AttrNormal   = "ngl_normal"
	UniformMV    = "ngl_modelview_matrix"
	UniformProj  = "ngl_projection_matrix"
	UniformNrmM  = "ngl_normal_matrix"
)

// defaultVertexSrc and defaultFragmentSrc are the fallback GLSL
// sources a Shader compiles when VertexSrc/FragmentSrc are left empty
// (§4.7: "Carries vertex and fragment GLSL sources (defaults
// provided)"). They implement a minimal unlit pass-through whose
// fragment stage fills the shape with the color sampled at the center
// of tex0, sufficient for §8.3 scenario 1's solid-color quad.
const defaultVertexSrc = `#version 330 core
layout(location = 0) in vec3 ngl_position;
layout(location = 2) in vec3 ngl_normal;
uniform mat4 ngl_modelview_matrix;
uniform mat4 ngl_projection_matrix;
void main() {
	gl_Position = ngl_projection_matrix * ngl_modelview_matrix * vec4(ngl_position, 1.0);
}
`

const defaultFragmentSrc = `#version 330 core
uniform sampler2D tex0_sampler;
out vec4 fragColor;
void main() {
	fragColor = texture(tex0_sampler, vec2(0.5, 0.5));
}
`

// ShaderProvider is implemented by the Shader node class (§4.7
// TexturedShape: "Binds a shape, a shader, ...").
type ShaderProvider interface {
	Pipeline() gfx.Pipeline
}

type shaderImpl struct {
	scenegraph.NopImpl
	VertexSrc   string `ngl:"vertex"`
	FragmentSrc string `ngl:"fragment"`

	pl gfx.Pipeline
}

func (s *shaderImpl) Prefetch(n *scenegraph.Node, ctx *scenegraph.Context) error {
	vs, fs := s.VertexSrc, s.FragmentSrc
	if vs == "" {
		vs = defaultVertexSrc
	}
	if fs == "" {
		fs = defaultFragmentSrc
	}
	pl, err := ctx.Backend.NewPipeline(gfx.PipelineDesc{VertexSrc: vs, FragmentSrc: fs, DepthTest: true, DepthWrite: true})
	if err != nil {
		if ctx.Log != nil {
			ctx.Log.Errorf("drawable.Shader: compile/link failed: %v", err)
		}
		return gfxerr.Wrap("drawable.Shader.Prefetch", gfxerr.External, err)
	}
	s.pl = pl
	return nil
}

func (s *shaderImpl) Release(n *scenegraph.Node, ctx *scenegraph.Context) {
	if s.pl != nil {
		ctx.Backend.Destroy(s.pl)
		s.pl = nil
	}
}

func (s *shaderImpl) Pipeline() gfx.Pipeline { return s.pl }
