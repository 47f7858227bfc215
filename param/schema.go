// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package param implements the declarative parameter reflection of
// §4.1: a schema describing each node class's fields (name, semantic
// type, default, flags, and — for reference-typed fields — a
// whitelist of allowed child kinds), generated from Go struct tags
// rather than from hand-maintained byte offsets (§9 REDESIGN FLAGS:
// "generate the schema from the type definitions" when the host
// language has cheap reflection).
package param

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Kind identifies a node class (§6.3's closed set of node kinds).
// It is defined here, rather than in the scenegraph package, so that
// this package can validate NodeRef/NodeList whitelists without
// importing scenegraph; scenegraph re-exports this type as its own
// Kind.
type Kind int

// Type is a parameter's semantic type (§3.2).
type Type int

const (
	Int Type = iota
	I64
	Double
	String
	Vec2
	Vec3
	Vec4
	Mat4
	NodeRef
	NodeList
	DoubleList
	Select
)

func (t Type) String() string {
	return [...]string{
		"Int", "I64", "Double", "String", "Vec2", "Vec3", "Vec4", "Mat4",
		"NodeRef", "NodeList", "DoubleList", "Select",
	}[t]
}

// Flag bits (§3.2).
type Flag int

const (
	// Constructor: must be supplied, in schema order, on creation.
	Constructor Flag = 1 << iota
	// DotDisplayPacked: presentation hint for introspection.
	DotDisplayPacked
)

// Field describes one parameter slot.
type Field struct {
	Key     string
	Type    Type
	Flags   Flag
	Allowed []Kind   // NodeRef/NodeList whitelist; nil = unrestricted
	Enum    []string // valid values for Select

	index []int // reflect.Value.FieldByIndex path
}

// Handle is the interface a NodeRef/NodeList-typed struct field's
// pointee must implement, so that this package can validate child
// kinds without depending on the scenegraph package.
type Handle interface {
	Kind() Kind
}

var handleType = reflect.TypeOf((*Handle)(nil)).Elem()

// kindNames maps a class name (as it appears in an `nglallowed` tag)
// to its registered Kind. Populated by RegisterKindName, typically
// from each node class's package init().
var (
	kindNamesMu sync.Mutex
	kindNames   = map[string]Kind{}
)

// RegisterKindName associates a class name with its Kind so that
// `nglallowed` tags can reference it by name.
func RegisterKindName(name string, kind Kind) {
	kindNamesMu.Lock()
	defer kindNamesMu.Unlock()
	kindNames[name] = kind
}

func lookupKindName(name string) (Kind, bool) {
	kindNamesMu.Lock()
	defer kindNamesMu.Unlock()
	k, ok := kindNames[name]
	return k, ok
}

// KindByName exposes lookupKindName to callers outside this package,
// e.g. a YAML scene loader resolving a node's `kind:` field by name.
func KindByName(name string) (Kind, bool) { return lookupKindName(name) }

var schemaCache sync.Map // reflect.Type -> []Field

// Schema returns the parameter schema for impl's type, which must be
// a pointer to a struct. Exported fields tagged `ngl:"key[,ctor][,packed]"`
// become parameters; an `nglallowed:"A,B,C"` tag restricts a
// NodeRef/NodeList field; an `nglenum:"a,b,c"` tag turns a string field
// into a Select parameter. The schema is built once per type and
// cached.
func Schema(impl any) []Field {
	t := reflect.TypeOf(impl)
	if t.Kind() != reflect.Ptr {
		panic("param: Schema requires a pointer to a struct")
	}
	t = t.Elem()
	if cached, ok := schemaCache.Load(t); ok {
		return cached.([]Field)
	}
	fields := buildSchema(t, nil)
	schemaCache.Store(t, fields)
	return fields
}

func buildSchema(t reflect.Type, prefix []int) []Field {
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		idx := append(append([]int{}, prefix...), i)
		if sf.Anonymous && sf.Tag.Get("ngl") == "" {
			fields = append(fields, buildSchema(sf.Type, idx)...)
			continue
		}
		tag, ok := sf.Tag.Lookup("ngl")
		if !ok {
			continue
		}
		parts := strings.Split(tag, ",")
		f := Field{Key: parts[0], index: idx}
		for _, p := range parts[1:] {
			switch strings.TrimSpace(p) {
			case "ctor":
				f.Flags |= Constructor
			case "packed":
				f.Flags |= DotDisplayPacked
			}
		}
		if enum, ok := sf.Tag.Lookup("nglenum"); ok {
			f.Enum = strings.Split(enum, ",")
		}
		f.Type = fieldType(sf.Type, f.Enum != nil)
		if allowed, ok := sf.Tag.Lookup("nglallowed"); ok {
			for _, name := range strings.Split(allowed, ",") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				k, ok := lookupKindName(name)
				if !ok {
					panic(fmt.Sprintf("param: nglallowed references unknown kind %q", name))
				}
				f.Allowed = append(f.Allowed, k)
			}
		}
		fields = append(fields, f)
	}
	return fields
}

func fieldType(t reflect.Type, isEnum bool) Type {
	switch {
	case isEnum && t.Kind() == reflect.String:
		return Select
	case t.Kind() == reflect.String:
		return String
	case t.Kind() == reflect.Int || t.Kind() == reflect.Int32:
		return Int
	case t.Kind() == reflect.Int64:
		return I64
	case t.Kind() == reflect.Float64:
		return Double
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Float64:
		return DoubleList
	case t.Kind() == reflect.Ptr && t.Implements(handleType):
		return NodeRef
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Ptr && t.Elem().Implements(handleType):
		return NodeList
	case t.Name() == "V2":
		return Vec2
	case t.Name() == "V3":
		return Vec3
	case t.Name() == "V4":
		return Vec4
	case t.Name() == "M4":
		return Mat4
	default:
		panic(fmt.Sprintf("param: unsupported field type %s", t))
	}
}

// Find returns the Field named key, if any.
func Find(fields []Field, key string) (Field, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// ConstructorFields returns the Constructor-flagged fields of fields,
// in schema (declaration) order.
func ConstructorFields(fields []Field) []Field {
	var out []Field
	for _, f := range fields {
		if f.Flags&Constructor != 0 {
			out = append(out, f)
		}
	}
	return out
}
