// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package scenegraph is the node runtime of §3/§4.1/§4.2/§4.5: node
// and class descriptors, the registry/factory, the lifecycle
// controller, and the two-pass per-frame evaluation pipeline. It is
// grounded on the teacher's node.Graph (array-of-slots, cached
// world-transform propagation) generalized from a pure-transform graph
// to a typed, reflection-driven node DAG, and on nodes.c's
// check_activity/honor_release_prefetch/update/draw contract.
package scenegraph

import "github.com/gviegas/nodegfx/param"

// Kind identifies a node class (§6.3's closed set of kinds). It is an
// alias for param.Kind so that the param package can validate
// NodeRef/NodeList whitelists without importing scenegraph.
type Kind = param.Kind

// RegisterKindName associates a class name with a Kind so that struct
// tags (`nglallowed:"Name1,Name2"`) can reference it. Each node
// package calls this from its init() alongside Register.
func RegisterKindName(name string, kind Kind) { param.RegisterKindName(name, kind) }

// KindByName resolves a class name (as registered by RegisterKindName)
// to its Kind, for callers that name a node class as a string (e.g. a
// YAML scene description).
func KindByName(name string) (Kind, bool) { return param.KindByName(name) }
