package world

import (
	"github.com/veyra/ballista/constants"
	"github.com/veyra/ballista/gmath"
)

// TerrainType classifies a tile surface, chiefly to pick between splash
// and crater visuals on a miss.
type TerrainType uint8

const (
	TerrainLand TerrainType = iota
	TerrainWater
	TerrainCliff
)

// Terrain is the heightmap oracle the projectile core flies against.
type Terrain interface {
	// Size returns the world extent in units.
	Size() (w, h int32)

	// HeightAt returns the ground elevation at (x, y), clamped to the map.
	HeightAt(x, y int32) int32

	// LineIntersect tests the segment p0..p1 against the ground. When the
	// segment dips below terrain it returns the offset within [0, span]
	// proportional to where along the segment the crossing happens.
	LineIntersect(p0, p1 gmath.Vector3, span uint32) (uint32, bool)

	// TypeAt returns the tile surface under (x, y).
	TypeAt(x, y int32) TerrainType

	// SetFire marks the tile under (x, y) burning until now+duration.
	SetFire(x, y int32, duration, now uint32)

	// OnFire reports whether the tile under (x, y) is burning at now.
	OnFire(x, y int32, now uint32) bool
}

// Heightmap is the provided Terrain: per-vertex elevations with bilinear
// interpolation inside each tile.
type Heightmap struct {
	tilesW, tilesH int32
	heights        []int32 // (tilesW+1) x (tilesH+1) vertices
	types          []TerrainType
	fire           []uint32 // per-tile burn expiry tick
}

// NewHeightmap returns a flat map of tilesW x tilesH tiles.
func NewHeightmap(tilesW, tilesH int32) *Heightmap {
	if tilesW < 1 {
		tilesW = 1
	}
	if tilesH < 1 {
		tilesH = 1
	}
	return &Heightmap{
		tilesW:  tilesW,
		tilesH:  tilesH,
		heights: make([]int32, (tilesW+1)*(tilesH+1)),
		types:   make([]TerrainType, tilesW*tilesH),
		fire:    make([]uint32, tilesW*tilesH),
	}
}

func (m *Heightmap) Size() (int32, int32) {
	return m.tilesW * constants.TileUnits, m.tilesH * constants.TileUnits
}

// SetVertexHeight sets the elevation of the vertex at tile corner (tx, ty).
func (m *Heightmap) SetVertexHeight(tx, ty, h int32) {
	if tx < 0 || ty < 0 || tx > m.tilesW || ty > m.tilesH {
		return
	}
	m.heights[ty*(m.tilesW+1)+tx] = h
}

// SetTileType sets the surface of tile (tx, ty).
func (m *Heightmap) SetTileType(tx, ty int32, t TerrainType) {
	if tx < 0 || ty < 0 || tx >= m.tilesW || ty >= m.tilesH {
		return
	}
	m.types[ty*m.tilesW+tx] = t
}

func (m *Heightmap) vertex(tx, ty int32) int32 {
	tx = gmath.Clip(tx, 0, m.tilesW)
	ty = gmath.Clip(ty, 0, m.tilesH)
	return m.heights[ty*(m.tilesW+1)+tx]
}

func (m *Heightmap) HeightAt(x, y int32) int32 {
	w, h := m.Size()
	x = gmath.Clip(x, 0, w-1)
	y = gmath.Clip(y, 0, h-1)
	tx, ty := x/constants.TileUnits, y/constants.TileUnits
	fx, fy := x%constants.TileUnits, y%constants.TileUnits

	h00 := int64(m.vertex(tx, ty))
	h10 := int64(m.vertex(tx+1, ty))
	h01 := int64(m.vertex(tx, ty+1))
	h11 := int64(m.vertex(tx+1, ty+1))

	const t = constants.TileUnits
	top := h00*int64(t-fx) + h10*int64(fx)
	bot := h01*int64(t-fx) + h11*int64(fx)
	return int32((top*int64(t-fy) + bot*int64(fy)) / (t * t))
}

// LineIntersect marches the segment in sub-tile steps and reports the
// first sample below ground, refined linearly between the bracketing
// samples. Pure integer arithmetic keeps it deterministic.
func (m *Heightmap) LineIntersect(p0, p1 gmath.Vector3, span uint32) (uint32, bool) {
	if p0.Z <= m.HeightAt(p0.X, p0.Y) {
		return 0, true
	}
	d := p1.Sub(p0)
	steps := gmath.Clip(d.XY().Hypot()/(constants.TileUnits/4), 1, 256)

	prevAbove := p0.Z - m.HeightAt(p0.X, p0.Y)
	for i := int32(1); i <= steps; i++ {
		pos := p0.Add(d.MulDiv(i, steps))
		above := pos.Z - m.HeightAt(pos.X, pos.Y)
		if above <= 0 {
			// Refine within the bracketing step.
			frac := int64(i-1)*int64(span)/int64(steps) +
				int64(prevAbove)*int64(span)/(int64(steps)*int64(prevAbove-above))
			if frac < 0 {
				frac = 0
			}
			if frac > int64(span) {
				frac = int64(span)
			}
			return uint32(frac), true
		}
		prevAbove = above
	}
	return 0, false
}

func (m *Heightmap) tileIndex(x, y int32) int32 {
	w, h := m.Size()
	x = gmath.Clip(x, 0, w-1)
	y = gmath.Clip(y, 0, h-1)
	return (y/constants.TileUnits)*m.tilesW + x/constants.TileUnits
}

func (m *Heightmap) TypeAt(x, y int32) TerrainType {
	return m.types[m.tileIndex(x, y)]
}

func (m *Heightmap) SetFire(x, y int32, duration, now uint32) {
	idx := m.tileIndex(x, y)
	if expiry := now + duration; m.fire[idx] < expiry {
		m.fire[idx] = expiry
	}
}

func (m *Heightmap) OnFire(x, y int32, now uint32) bool {
	return m.fire[m.tileIndex(x, y)] > now
}
