// Package world owns the game-object side of the simulation boundary:
// stable object storage addressed by generation handles, the spatial
// index, the terrain oracle, per-kind damage handlers and alliances.
// Projectiles reference objects only through Handles, so a destroyed
// object can never be dereferenced through a stale pointer.
package world

// Handle addresses an arena slot. A zero Handle is null; a Handle whose
// generation no longer matches its slot resolves to nil on Lookup.
type Handle struct {
	Index uint32
	Gen   uint32
}

// Zero reports whether h is the null handle.
func (h Handle) Zero() bool {
	return h.Gen == 0
}

type slot struct {
	gen uint32
	obj *Object
}

// Arena is the exclusive owner of Object storage. Addresses are stable
// for the lifetime of a slot occupancy, and slot reuse bumps the
// generation so stale handles miss.
type Arena struct {
	slots []slot
	free  []uint32
	count int
}

func NewArena() *Arena {
	return &Arena{}
}

// Add places obj in the arena and stamps its Handle. The arena owns the
// object until Release.
func (a *Arena) Add(obj *Object) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	s := &a.slots[idx]
	s.gen++
	s.obj = obj
	obj.Handle = Handle{Index: idx, Gen: s.gen}
	a.count++
	return obj.Handle
}

// Lookup resolves h, returning nil for null, stale, or released handles.
func (a *Arena) Lookup(h Handle) *Object {
	if h.Gen == 0 || h.Index >= uint32(len(a.slots)) {
		return nil
	}
	s := &a.slots[h.Index]
	if s.obj == nil || s.gen != h.Gen {
		return nil
	}
	return s.obj
}

// Release frees the slot behind h. Returns false if h no longer resolves.
func (a *Arena) Release(h Handle) bool {
	if a.Lookup(h) == nil {
		return false
	}
	s := &a.slots[h.Index]
	s.obj = nil
	a.free = append(a.free, h.Index)
	a.count--
	return true
}

// Len returns the number of live objects.
func (a *Arena) Len() int {
	return a.count
}

// ForEach visits every live object in slot order.
func (a *Arena) ForEach(fn func(*Object)) {
	for i := range a.slots {
		if a.slots[i].obj != nil {
			fn(a.slots[i].obj)
		}
	}
}
