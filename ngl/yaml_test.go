// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package ngl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gviegas/nodegfx/drawable"
)

func writeSceneYAML(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSceneYAMLBuildsCameraWithForwardRefs(t *testing.T) {
	doc := `
root: cam
nodes:
  - id: cam
    kind: Camera
    ctor: [60.0, 1.777, 0.1, 100.0]
    refs:
      eye: eyeNode
      center: centerNode
      up: upNode
      child: childNode
  - id: eyeNode
    kind: Identity
  - id: centerNode
    kind: Identity
  - id: upNode
    kind: Identity
  - id: childNode
    kind: Identity
`
	path := writeSceneYAML(t, doc)
	root, err := LoadSceneYAML(path)
	if err != nil {
		t.Fatal(err)
	}
	if root.Kind() != drawable.KindCamera {
		t.Errorf("root kind = %v, want KindCamera", root.Kind())
	}
	// New() starts a node at refcount 1; LoadSceneYAML adds one more
	// explicit ref before returning the root handle to the caller.
	if root.RefCount() != 2 {
		t.Errorf("RefCount() = %d, want 2", root.RefCount())
	}
}

func TestLoadSceneYAMLUnknownKind(t *testing.T) {
	doc := "root: n\nnodes:\n  - id: n\n    kind: NotARealKind\n"
	path := writeSceneYAML(t, doc)
	if _, err := LoadSceneYAML(path); err == nil {
		t.Fatal("expected an error for an unregistered node kind")
	}
}

func TestLoadSceneYAMLMissingRoot(t *testing.T) {
	doc := "root: missing\nnodes:\n  - id: n\n    kind: Identity\n"
	path := writeSceneYAML(t, doc)
	if _, err := LoadSceneYAML(path); err == nil {
		t.Fatal("expected an error when root names an id absent from nodes")
	}
}

func TestLoadSceneYAMLUnresolvedRef(t *testing.T) {
	doc := `
root: cam
nodes:
  - id: cam
    kind: Camera
    ctor: [60.0, 1.777, 0.1, 100.0]
    refs:
      eye: doesNotExist
`
	path := writeSceneYAML(t, doc)
	if _, err := LoadSceneYAML(path); err == nil {
		t.Fatal("expected an error for a ref naming an id not present in the document")
	}
}
