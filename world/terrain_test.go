package world

import (
	"testing"

	"github.com/veyra/ballista/constants"
	"github.com/veyra/ballista/gmath"
)

func TestHeightAtVerticesAndCenters(t *testing.T) {
	m := NewHeightmap(4, 4)
	m.SetVertexHeight(1, 1, 400)

	if got := m.HeightAt(1*constants.TileUnits, 1*constants.TileUnits); got != 400 {
		t.Errorf("height at raised vertex = %d, want 400", got)
	}
	if got := m.HeightAt(0, 0); got != 0 {
		t.Errorf("height at flat corner = %d, want 0", got)
	}
	// Halfway along the edge between a 0 and a 400 vertex.
	if got := m.HeightAt(constants.TileUnits/2, constants.TileUnits); got != 200 {
		t.Errorf("midpoint height = %d, want 200", got)
	}
}

func TestHeightAtClampsToMap(t *testing.T) {
	m := NewHeightmap(2, 2)
	m.SetVertexHeight(2, 2, 100)
	got := m.HeightAt(10*constants.TileUnits, 10*constants.TileUnits)
	if got != 100 {
		t.Errorf("clamped height = %d, want 100", got)
	}
}

func TestLineIntersectFlatGround(t *testing.T) {
	m := NewHeightmap(8, 8)

	// Level flight above flat ground never intersects.
	p0 := gmath.Vector3{X: 100, Y: 100, Z: 50}
	p1 := gmath.Vector3{X: 900, Y: 100, Z: 50}
	if _, hit := m.LineIntersect(p0, p1, 1000); hit {
		t.Fatal("level segment above ground reported a hit")
	}

	// A descending segment crosses z=0 halfway along.
	p1 = gmath.Vector3{X: 900, Y: 100, Z: -50}
	off, hit := m.LineIntersect(p0, p1, 1000)
	if !hit {
		t.Fatal("descending segment missed the ground")
	}
	if off < 350 || off > 650 {
		t.Errorf("ground crossing at %d/1000, want near 500", off)
	}
}

func TestLineIntersectStartsUnderground(t *testing.T) {
	m := NewHeightmap(4, 4)
	m.SetVertexHeight(0, 0, 300)
	m.SetVertexHeight(1, 0, 300)
	m.SetVertexHeight(0, 1, 300)
	m.SetVertexHeight(1, 1, 300)

	p0 := gmath.Vector3{X: 10, Y: 10, Z: 100}
	off, hit := m.LineIntersect(p0, gmath.Vector3{X: 500, Y: 10, Z: 100}, 777)
	if !hit || off != 0 {
		t.Errorf("underground start: off=%d hit=%v, want 0,true", off, hit)
	}
}

func TestTileTypesAndFire(t *testing.T) {
	m := NewHeightmap(4, 4)
	m.SetTileType(2, 1, TerrainWater)

	var x int32 = 2*constants.TileUnits + 5
	var y int32 = 1*constants.TileUnits + 5
	if m.TypeAt(x, y) != TerrainWater {
		t.Error("tile type not stored")
	}
	if m.TypeAt(0, 0) != TerrainLand {
		t.Error("default tile type must be land")
	}

	m.SetFire(x, y, 500, 100)
	if !m.OnFire(x, y, 100) || !m.OnFire(x, y, 599) {
		t.Error("tile should burn until expiry")
	}
	if m.OnFire(x, y, 600) {
		t.Error("tile should stop burning at expiry")
	}
	// A shorter overlapping fire never truncates a longer one.
	m.SetFire(x, y, 10, 101)
	if !m.OnFire(x, y, 599) {
		t.Error("weaker fire shortened the burn")
	}
}
