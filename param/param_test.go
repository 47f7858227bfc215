// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package param

import "testing"

type fakeHandle struct {
	kind Kind
}

func (h *fakeHandle) Kind() Kind { return h.kind }

const (
	kindA Kind = iota + 1
	kindB
)

func init() {
	RegisterKindName("fakeA", kindA)
	RegisterKindName("fakeB", kindB)
}

type fakeImpl struct {
	Name     string     `ngl:"name,ctor"`
	Count    int        `ngl:"count"`
	Child    *fakeHandle `ngl:"child" nglallowed:"fakeA,fakeB"`
	Children []*fakeHandle `ngl:"children" nglallowed:"fakeA"`
	Weights  []float64  `ngl:"weights"`
	Mode     string     `ngl:"mode" nglenum:"on,off,auto"`
}

func TestSchema(t *testing.T) {
	fields := Schema(&fakeImpl{})
	if len(fields) != 6 {
		t.Fatalf("got %d fields, want 6", len(fields))
	}
	name, ok := Find(fields, "name")
	if !ok || name.Type != String || name.Flags&Constructor == 0 {
		t.Errorf("name field: %+v", name)
	}
	mode, ok := Find(fields, "mode")
	if !ok || mode.Type != Select {
		t.Errorf("mode field: %+v", mode)
	}
	ctors := ConstructorFields(fields)
	if len(ctors) != 1 || ctors[0].Key != "name" {
		t.Errorf("ConstructorFields = %+v", ctors)
	}
}

func TestGetSet(t *testing.T) {
	impl := &fakeImpl{Name: "x"}
	if err := Set(impl, "count", 7); err != nil {
		t.Fatal(err)
	}
	v, err := Get(impl, "count")
	if err != nil || v.(int) != 7 {
		t.Errorf("Get(count) = %v, %v", v, err)
	}
	if err := Set(impl, "mode", "auto"); err != nil {
		t.Fatal(err)
	}
	if err := Set(impl, "mode", "bogus"); err == nil {
		t.Error("expected error for invalid enum value")
	}
}

func TestSetNodeRef(t *testing.T) {
	impl := &fakeImpl{}
	a := &fakeHandle{kind: kindA}
	if err := Set(impl, "child", a); err != nil {
		t.Fatal(err)
	}
	b := &fakeHandle{kind: kindB}
	if err := Set(impl, "child", b); err != nil {
		t.Fatal(err)
	}
	if err := Set(impl, "child", nil); err != nil {
		t.Fatal(err)
	}
	if impl.Child != nil {
		t.Error("expected nil child after Set(nil)")
	}
}

func TestAddNodeList(t *testing.T) {
	impl := &fakeImpl{}
	a := &fakeHandle{kind: kindA}
	if err := Add(impl, "children", []any{a}); err != nil {
		t.Fatal(err)
	}
	b := &fakeHandle{kind: kindB}
	if err := Add(impl, "children", []any{b}); err == nil {
		t.Error("expected error: kindB not allowed in children")
	}
	if len(impl.Children) != 1 {
		t.Errorf("Children = %v, want len 1", impl.Children)
	}
	if err := Add(impl, "weights", []any{1.0, 2.0}); err != nil {
		t.Fatal(err)
	}
	if len(impl.Weights) != 2 {
		t.Errorf("Weights = %v", impl.Weights)
	}
}

func TestChildren(t *testing.T) {
	impl := &fakeImpl{}
	a := &fakeHandle{kind: kindA}
	impl.Child = a
	impl.Children = append(impl.Children, &fakeHandle{kind: kindA})
	children := Children(impl)
	if len(children) != 2 {
		t.Errorf("Children = %v, want len 2", children)
	}
}
