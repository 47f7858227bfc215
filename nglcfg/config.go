// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package nglcfg implements the §6.1 Config struct the caller passes
// to Context.Configure, plus an optional YAML loader (ambient
// convenience carried from the pack's declarative-asset-description
// convention, see gazed-vu's use of gopkg.in/yaml.v3 for load-time
// configuration).
package nglcfg

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Backend identifies the graphics API a Context targets (§4.8).
type Backend int

const (
	OpenGL Backend = iota
	OpenGLES
	ExternalGL
)

func (b Backend) String() string {
	switch b {
	case OpenGL:
		return "opengl"
	case OpenGLES:
		return "opengles"
	case ExternalGL:
		return "external"
	default:
		return "unknown"
	}
}

// Platform identifies the windowing system a Context's context
// bring-up targets (§1: "the concrete GL/GLES loader and per-platform
// context bring-up" is an external collaborator; Platform just tags
// which one so the backend picks the right init path).
type Platform int

const (
	PlatformGLFW Platform = iota
	PlatformX11
	PlatformEGL
	PlatformWGL
	PlatformCGL
	PlatformEAGL
)

// Config mirrors §6.1's Config argument to `configure(Ctx, Config)`.
type Config struct {
	Backend   Backend  `yaml:"backend"`
	Platform  Platform `yaml:"platform"`
	Offscreen bool     `yaml:"offscreen"`

	Width         int `yaml:"width"`
	Height        int `yaml:"height"`
	Samples       int `yaml:"samples"`
	SwapInterval  int `yaml:"swap_interval"`

	HasViewport bool       `yaml:"-"`
	Viewport    [4]int     `yaml:"viewport,flow"`
	ClearColor  [4]float32 `yaml:"clear_color,flow"`
}

// Default returns a Config with the engine's baseline values: onscreen
// OpenGL, no MSAA, vsync on, opaque black clear color.
func Default() Config {
	return Config{
		Backend:      OpenGL,
		Platform:     PlatformGLFW,
		Width:        1280,
		Height:       720,
		SwapInterval: 1,
		ClearColor:   [4]float32{0, 0, 0, 1},
	}
}

// Load reads a Config from a YAML document at path, starting from
// Default() so the file only needs to name the fields it overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
