package world

import "testing"

func TestArenaLookup(t *testing.T) {
	a := NewArena()
	obj := &Object{Kind: KindUnit}
	h := a.Add(obj)

	if got := a.Lookup(h); got != obj {
		t.Fatal("lookup after add returned wrong object")
	}
	if obj.Handle != h {
		t.Error("Add must stamp the handle on the object")
	}
	if a.Lookup(Handle{}) != nil {
		t.Error("zero handle must resolve to nil")
	}
}

func TestArenaStaleHandle(t *testing.T) {
	a := NewArena()
	first := &Object{Kind: KindUnit}
	h := a.Add(first)
	a.Release(h)

	if a.Lookup(h) != nil {
		t.Fatal("released handle must be stale")
	}

	// Reusing the slot bumps the generation; the old handle stays dead.
	second := &Object{Kind: KindStructure}
	h2 := a.Add(second)
	if h2.Index == h.Index && h2.Gen == h.Gen {
		t.Fatal("slot reuse must change the generation")
	}
	if a.Lookup(h) != nil {
		t.Error("old handle resolves after slot reuse")
	}
	if a.Lookup(h2) != second {
		t.Error("new handle must resolve")
	}
}

func TestArenaLen(t *testing.T) {
	a := NewArena()
	h1 := a.Add(&Object{})
	a.Add(&Object{})
	if a.Len() != 2 {
		t.Fatalf("Len = %d, want 2", a.Len())
	}
	a.Release(h1)
	if a.Len() != 1 {
		t.Fatalf("Len after release = %d, want 1", a.Len())
	}
	if a.Release(h1) {
		t.Error("double release must report false")
	}
}
