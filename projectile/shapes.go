package projectile

import (
	"github.com/veyra/ballista/constants"
	"github.com/veyra/ballista/gmath"
	"github.com/veyra/ballista/world"
)

// shape is a target hitbox cross-section: circular for units,
// rectangular for structures and features.
type shape struct {
	rectangular bool
	size        gmath.Vector2 // half extents, rectangular only
	radius      int32         // circular only
}

func circle(r int32) shape {
	return shape{radius: r}
}

func rectangle(halfExtents gmath.Vector2) shape {
	return shape{rectangular: true, size: halfExtents}
}

// targetShape returns the swept-collision cross-section of obj.
func targetShape(obj *world.Object) shape {
	switch obj.Kind {
	case world.KindUnit:
		r := obj.HitRadius
		if r <= 0 {
			r = constants.TileUnits / 4
		}
		return circle(r)
	default:
		return rectangle(obj.Footprint)
	}
}

// targetHeight returns the vertical hitbox extent of obj. VTOLs get a
// pad so fast fliers stay hittable despite coarse altitude sampling.
func targetHeight(obj *world.Object) int32 {
	if obj == nil {
		return 0
	}
	h := obj.Height
	if obj.Kind == world.KindUnit && obj.VTOL {
		h += constants.VTOLHitboxPad
	}
	return h
}
