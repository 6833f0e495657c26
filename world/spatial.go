package world

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/veyra/ballista/gmath"
)

// SpatialIndex answers broad-phase "what is near this point" queries.
// Results are exact (integer center distance) and returned in ascending
// handle-index order, which is the collision tie-break order.
type SpatialIndex interface {
	ObjectsNear(pos gmath.Vector2, radius int32) []Handle
}

type rtreeItem struct {
	h    Handle
	rect *rtreego.Rect
}

func (it *rtreeItem) Bounds() *rtreego.Rect {
	return it.rect
}

// RTreeIndex is the provided SpatialIndex, an R-tree over object
// bounding boxes. The tree is float-based broad phase only: candidates
// are re-filtered with exact integer distance against the arena, so
// query results do not depend on floating-point rounding.
type RTreeIndex struct {
	arena *Arena
	tree  *rtreego.Rtree
	items map[uint32]*rtreeItem
}

func NewRTreeIndex(arena *Arena) *RTreeIndex {
	return &RTreeIndex{
		arena: arena,
		tree:  rtreego.NewTree(2, 25, 50),
		items: make(map[uint32]*rtreeItem),
	}
}

func objectRect(obj *Object) *rtreego.Rect {
	half := gmath.Max(obj.HitRadius, gmath.Max(obj.Footprint.X, obj.Footprint.Y))
	// +1 pads against float truncation at the boundary.
	ext := float64(half + 1)
	rect, err := rtreego.NewRect(
		rtreego.Point{float64(obj.Pos.X) - ext, float64(obj.Pos.Y) - ext},
		[]float64{2 * ext, 2 * ext},
	)
	if err != nil {
		panic(err)
	}
	return rect
}

// Insert registers obj under its handle.
func (x *RTreeIndex) Insert(obj *Object) {
	item := &rtreeItem{h: obj.Handle, rect: objectRect(obj)}
	x.items[obj.Handle.Index] = item
	x.tree.Insert(item)
}

// Update refreshes the stored bounds of obj after it moved.
func (x *RTreeIndex) Update(obj *Object) {
	x.Remove(obj.Handle)
	x.Insert(obj)
}

// Remove drops the entry for h, if present.
func (x *RTreeIndex) Remove(h Handle) {
	item, ok := x.items[h.Index]
	if !ok || item.h != h {
		return
	}
	x.tree.Delete(item)
	delete(x.items, h.Index)
}

func (x *RTreeIndex) ObjectsNear(pos gmath.Vector2, radius int32) []Handle {
	if radius < 0 {
		return nil
	}
	ext := float64(radius + 1)
	rect, err := rtreego.NewRect(
		rtreego.Point{float64(pos.X) - ext, float64(pos.Y) - ext},
		[]float64{2 * ext, 2 * ext},
	)
	if err != nil {
		panic(err)
	}

	var out []Handle
	for _, sp := range x.tree.SearchIntersect(rect) {
		item := sp.(*rtreeItem)
		obj := x.arena.Lookup(item.h)
		if obj == nil {
			continue
		}
		d := obj.Pos.XY().Sub(pos)
		reach := radius + gmath.Max(obj.HitRadius, gmath.Max(obj.Footprint.X, obj.Footprint.Y))
		if int64(d.X)*int64(d.X)+int64(d.Y)*int64(d.Y) > int64(reach)*int64(reach) {
			continue
		}
		out = append(out, item.h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
