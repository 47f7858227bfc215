// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package param

import (
	"fmt"
	"reflect"
)

// Get reads the current value of key from impl (a pointer to a
// schema-tagged struct).
func Get(impl any, key string) (any, error) {
	fields := Schema(impl)
	f, ok := Find(fields, key)
	if !ok {
		return nil, fmt.Errorf("param: unknown key %q", key)
	}
	v := reflect.ValueOf(impl).Elem().FieldByIndex(f.index)
	return v.Interface(), nil
}

// Set writes value into key on impl, validating its type and, for
// NodeRef, the child's Kind against the field's whitelist (§4.1:
// "validate the child's class id against the allowed-types whitelist;
// fail with InvalidArg otherwise").
func Set(impl any, key string, value any) error {
	fields := Schema(impl)
	f, ok := Find(fields, key)
	if !ok {
		return fmt.Errorf("param: unknown key %q", key)
	}
	field := reflect.ValueOf(impl).Elem().FieldByIndex(f.index)
	switch f.Type {
	case NodeRef:
		if value == nil {
			field.Set(reflect.Zero(field.Type()))
			return nil
		}
		h, ok := value.(Handle)
		if !ok {
			return fmt.Errorf("param: %q: value does not implement param.Handle", key)
		}
		if err := checkAllowed(f, h.Kind()); err != nil {
			return err
		}
		rv := reflect.ValueOf(value)
		if !rv.Type().AssignableTo(field.Type()) {
			return fmt.Errorf("param: %q: cannot assign %T to %s", key, value, field.Type())
		}
		field.Set(rv)
		return nil
	case Select:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("param: %q: expected string, have %T", key, value)
		}
		if !validEnum(f.Enum, s) {
			return fmt.Errorf("param: %q: %q is not one of %v", key, s, f.Enum)
		}
		field.SetString(s)
		return nil
	default:
		rv := reflect.ValueOf(value)
		if !rv.Type().AssignableTo(field.Type()) {
			return fmt.Errorf("param: %q: cannot assign %T to %s", key, value, field.Type())
		}
		field.Set(rv)
		return nil
	}
}

// Add appends elems to a NodeList or DoubleList field (§4.1 `add`).
func Add(impl any, key string, elems []any) error {
	fields := Schema(impl)
	f, ok := Find(fields, key)
	if !ok {
		return fmt.Errorf("param: unknown key %q", key)
	}
	field := reflect.ValueOf(impl).Elem().FieldByIndex(f.index)
	switch f.Type {
	case NodeList:
		for _, e := range elems {
			h, ok := e.(Handle)
			if !ok {
				return fmt.Errorf("param: %q: value does not implement param.Handle", key)
			}
			if err := checkAllowed(f, h.Kind()); err != nil {
				return err
			}
			rv := reflect.ValueOf(e)
			if !rv.Type().AssignableTo(field.Type().Elem()) {
				return fmt.Errorf("param: %q: cannot assign %T", key, e)
			}
			field.Set(reflect.Append(field, rv))
		}
		return nil
	case DoubleList:
		for _, e := range elems {
			d, ok := e.(float64)
			if !ok {
				return fmt.Errorf("param: %q: expected float64, have %T", key, e)
			}
			field.Set(reflect.Append(field, reflect.ValueOf(d)))
		}
		return nil
	default:
		return fmt.Errorf("param: %q: Add not valid for type %s", key, f.Type)
	}
}

func checkAllowed(f Field, k Kind) error {
	if f.Allowed == nil {
		return nil
	}
	for _, a := range f.Allowed {
		if a == k {
			return nil
		}
	}
	return fmt.Errorf("param: %q: child kind %v not in allowed set %v", f.Key, k, f.Allowed)
}

func validEnum(enum []string, v string) bool {
	for _, e := range enum {
		if e == v {
			return true
		}
	}
	return false
}

// Children returns every Handle referenced by a NodeRef or NodeList
// field of impl (§4.1: "the reflection is also the sole mechanism by
// which the evaluation pipeline walks children generically").
func Children(impl any) []Handle {
	fields := Schema(impl)
	var out []Handle
	v := reflect.ValueOf(impl).Elem()
	for _, f := range fields {
		fv := v.FieldByIndex(f.index)
		switch f.Type {
		case NodeRef:
			if fv.IsNil() {
				continue
			}
			out = append(out, fv.Interface().(Handle))
		case NodeList:
			for i := 0; i < fv.Len(); i++ {
				e := fv.Index(i)
				if e.IsNil() {
					continue
				}
				out = append(out, e.Interface().(Handle))
			}
		}
	}
	return out
}
