// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package nglcfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Backend != OpenGL {
		t.Errorf("Backend = %v, want OpenGL", cfg.Backend)
	}
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("Width,Height = %d,%d, want 1280,720", cfg.Width, cfg.Height)
	}
	if cfg.SwapInterval != 1 {
		t.Errorf("SwapInterval = %d, want 1", cfg.SwapInterval)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := "width: 640\nheight: 480\noffscreen: true\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("Width,Height = %d,%d, want 640,480", cfg.Width, cfg.Height)
	}
	if !cfg.Offscreen {
		t.Error("Offscreen = false, want true")
	}
	// Fields the document didn't mention keep Default()'s values.
	if cfg.SwapInterval != 1 {
		t.Errorf("SwapInterval = %d, want Default()'s 1 to survive", cfg.SwapInterval)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a nonexistent config file")
	}
}

func TestBackendString(t *testing.T) {
	cases := map[Backend]string{OpenGL: "opengl", OpenGLES: "opengles", ExternalGL: "external", Backend(99): "unknown"}
	for b, want := range cases {
		if got := b.String(); got != want {
			t.Errorf("Backend(%d).String() = %q, want %q", b, got, want)
		}
	}
}
