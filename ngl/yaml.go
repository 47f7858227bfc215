// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package ngl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gviegas/nodegfx/gfxerr"
	"github.com/gviegas/nodegfx/scenegraph"
)

// sceneNodeDesc is one entry of a YAML scene document (§2 DOMAIN STACK:
// "an optional declarative scene-description loader... an additive
// convenience the C original exposes only through its C ABI").
type sceneNodeDesc struct {
	ID     string         `yaml:"id"`
	Kind   string         `yaml:"kind"`
	Ctor   []any          `yaml:"ctor"`
	Params map[string]any `yaml:"params"`
	// Refs names NodeRef/NodeList parameters by the id(s) of other
	// nodes in this document; a string value is a single NodeRef
	// (node_param_set), a sequence is a NodeList (node_param_add).
	Refs map[string]any `yaml:"refs"`
}

type sceneDoc struct {
	Nodes []sceneNodeDesc `yaml:"nodes"`
	Root  string          `yaml:"root"`
}

// LoadSceneYAML builds a node DAG from a YAML document at path and
// returns its root, ref'd once. Nodes are constructed in document
// order, then every param/ref is applied in a second pass so forward
// references (a node listing a child declared later in the file) are
// allowed.
func LoadSceneYAML(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc sceneDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, gfxerr.Wrap("ngl.LoadSceneYAML", gfxerr.InvalidArg, err)
	}

	built := make(map[string]*Node, len(doc.Nodes))
	for _, nd := range doc.Nodes {
		kind, ok := scenegraph.KindByName(nd.Kind)
		if !ok {
			return nil, gfxerr.Wrap("ngl.LoadSceneYAML", gfxerr.InvalidArg,
				fmt.Errorf("unknown node kind %q (id %q)", nd.Kind, nd.ID))
		}
		n, err := newNodeCoerced(kind, nd.Ctor)
		if err != nil {
			return nil, gfxerr.Wrap("ngl.LoadSceneYAML", gfxerr.InvalidArg,
				fmt.Errorf("id %q: %w", nd.ID, err))
		}
		built[nd.ID] = n
	}

	for _, nd := range doc.Nodes {
		n := built[nd.ID]
		for key, v := range nd.Params {
			if err := setParamCoerced(n, key, v); err != nil {
				return nil, gfxerr.Wrap("ngl.LoadSceneYAML", gfxerr.InvalidArg,
					fmt.Errorf("id %q, param %q: %w", nd.ID, key, err))
			}
		}
		for key, v := range nd.Refs {
			if err := applyRef(built, n, key, v); err != nil {
				return nil, gfxerr.Wrap("ngl.LoadSceneYAML", gfxerr.InvalidArg,
					fmt.Errorf("id %q, ref %q: %w", nd.ID, key, err))
			}
		}
	}

	root, ok := built[doc.Root]
	if !ok {
		return nil, gfxerr.New("ngl.LoadSceneYAML", gfxerr.InvalidArg)
	}
	return root.Ref(), nil
}

func applyRef(built map[string]*Node, n *Node, key string, v any) error {
	switch rv := v.(type) {
	case string:
		target, ok := built[rv]
		if !ok {
			return fmt.Errorf("no node with id %q", rv)
		}
		return n.SetParam(key, target)
	case []any:
		elems := make([]any, 0, len(rv))
		for _, raw := range rv {
			id, ok := raw.(string)
			if !ok {
				return fmt.Errorf("list element is not a node id: %v", raw)
			}
			target, ok := built[id]
			if !ok {
				return fmt.Errorf("no node with id %q", id)
			}
			elems = append(elems, target)
		}
		return n.AddParam(key, elems...)
	default:
		return fmt.Errorf("unsupported ref value %T", v)
	}
}

// newNodeCoerced retries node construction with ctor arguments coerced
// to either float32 or float64 when the literal YAML-decoded types
// (int/float64) don't directly assign to the schema field's numeric
// type — yaml.v3 has no notion of the target Go type, so this bridges
// the gap the way a hand-written caller normally closes it by passing
// float32/float64 literals directly. float32 is tried first, then
// float64; the engine's scalar schema fields are float64 (e.g. Camera's
// fov/aspect/near/far), and a YAML sequence is not converted to a
// linear vector type here.
func newNodeCoerced(kind scenegraph.Kind, ctorArgs []any) (*Node, error) {
	n, err := scenegraph.New(kind, ctorArgs...)
	if err == nil {
		return n, nil
	}
	for _, coerce := range []func(any) (any, bool){narrowFloat, widenFloat} {
		if alt, changed := coerceAll(ctorArgs, coerce); changed {
			if n, err2 := scenegraph.New(kind, alt...); err2 == nil {
				return n, nil
			}
		}
	}
	return nil, err
}

func setParamCoerced(n *Node, key string, value any) error {
	if err := n.SetParam(key, value); err == nil {
		return nil
	} else {
		for _, coerce := range []func(any) (any, bool){narrowFloat, widenFloat} {
			if alt, changed := coerce(value); changed {
				if err2 := n.SetParam(key, alt); err2 == nil {
					return nil
				}
			}
		}
		return err
	}
}

func coerceAll(vs []any, coerce func(any) (any, bool)) ([]any, bool) {
	out := make([]any, len(vs))
	changed := false
	for i, v := range vs {
		if alt, ok := coerce(v); ok {
			out[i] = alt
			changed = true
		} else {
			out[i] = v
		}
	}
	return out, changed
}

// narrowFloat coerces a scalar int/float64 to float32. It does not
// build linear.V2/V3/V4 values, and param has no float32 scalar field
// type, so this coercion is only tried before widenFloat.
func narrowFloat(v any) (any, bool) {
	switch x := v.(type) {
	case int:
		return float32(x), true
	case float64:
		return float32(x), true
	default:
		return v, false
	}
}

// widenFloat coerces int to float64, for the small number of schema
// fields (e.g. Camera's fov/aspect/near/far) typed float64.
func widenFloat(v any) (any, bool) {
	if x, ok := v.(int); ok {
		return float64(x), true
	}
	return v, false
}
