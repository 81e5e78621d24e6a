// Package geom provides the coordinate and diff primitives the rest of the
// solver builds on: a cubic grid position, the vector between two
// positions, and the move-class tests (linear, short-linear, long-linear,
// near) the command codec and path search rely on.
package geom

// Coord is an integer grid position, 0 <= each component < R for the
// active model's R.
type Coord struct {
	X, Y, Z int
}

// Origin is the coordinate every solve starts and ends at.
var Origin = Coord{}

// IsOrigin reports whether c is the origin.
func (c Coord) IsOrigin() bool {
	return c == Origin
}

// InRange reports whether c lies within a cube of side r.
func (c Coord) InRange(r int) bool {
	return c.X >= 0 && c.X < r &&
		c.Y >= 0 && c.Y < r &&
		c.Z >= 0 && c.Z < r
}

// LinearIndex maps c to its position in a flattened R^3 bitmap,
// x*r*r + y*r + z.
func (c Coord) LinearIndex(r int) int {
	return r*r*c.X + r*c.Y + c.Z
}

// Add returns c+d.
func (c Coord) Add(d Diff) Coord {
	return Coord{c.X + d.DX, c.Y + d.DY, c.Z + d.DZ}
}

// Sub returns the diff from other to c (c - other).
func (c Coord) Sub(other Coord) Diff {
	return Diff{c.X - other.X, c.Y - other.Y, c.Z - other.Z}
}

// Diff is a signed displacement between two coordinates.
type Diff struct {
	DX, DY, DZ int
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// MLen is the Manhattan length |dx|+|dy|+|dz|.
func (d Diff) MLen() int {
	return abs(d.DX) + abs(d.DY) + abs(d.DZ)
}

// CLen is the Chebyshev length max(|dx|,|dy|,|dz|).
func (d Diff) CLen() int {
	m := abs(d.DX)
	if v := abs(d.DY); v > m {
		m = v
	}
	if v := abs(d.DZ); v > m {
		m = v
	}
	return m
}

// IsLinear reports whether exactly one component of d is nonzero.
func (d Diff) IsLinear() bool {
	nz := 0
	if d.DX != 0 {
		nz++
	}
	if d.DY != 0 {
		nz++
	}
	if d.DZ != 0 {
		nz++
	}
	return nz == 1
}

// IsShortLinear reports linear and mlen <= 5 (an LMove sub-segment).
func (d Diff) IsShortLinear() bool {
	return d.IsLinear() && d.MLen() <= 5
}

// IsLongLinear reports linear and mlen <= 15 (an SMove).
func (d Diff) IsLongLinear() bool {
	return d.IsLinear() && d.MLen() <= 15
}

// IsNear reports mlen <= 2 and clen == 1: the 18-cell halo used by
// Fill/Void/Fusion/Fission.
func (d Diff) IsNear() bool {
	return d.MLen() <= 2 && d.CLen() == 1
}

// Direc returns the unit step along a linear diff's axis, toward d.
func (d Diff) Direc() Diff {
	switch {
	case d.DX < 0:
		return Diff{-1, 0, 0}
	case d.DX > 0:
		return Diff{1, 0, 0}
	case d.DY < 0:
		return Diff{0, -1, 0}
	case d.DY > 0:
		return Diff{0, 1, 0}
	case d.DZ < 0:
		return Diff{0, 0, -1}
	case d.DZ > 0:
		return Diff{0, 0, 1}
	default:
		panic("geom: Direc of a zero diff")
	}
}

// AllDiffs are the 6 face-neighbour diffs (mlen == 1), built once.
var AllDiffs = buildAllDiffs()

// AllNearDiffs are the 18 near-shell diffs (mlen<=2, clen==1), built once.
var AllNearDiffs = buildAllNearDiffs()

func buildAllDiffs() []Diff {
	var out []Diff
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				d := Diff{dx, dy, dz}
				if d.MLen() == 1 {
					out = append(out, d)
				}
			}
		}
	}
	return out
}

func buildAllNearDiffs() []Diff {
	var out []Diff
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				d := Diff{dx, dy, dz}
				if d.IsNear() {
					out = append(out, d)
				}
			}
		}
	}
	return out
}

// Region is an axis-aligned box spanning two (inclusive) endpoints.
type Region struct {
	minX, maxX int
	minY, maxY int
	minZ, maxZ int
}

// NewRegion builds the region spanning c1 and c2, in either order.
func NewRegion(c1, c2 Coord) Region {
	return Region{
		minX: min(c1.X, c2.X), maxX: max(c1.X, c2.X),
		minY: min(c1.Y, c2.Y), maxY: max(c1.Y, c2.Y),
		minZ: min(c1.Z, c2.Z), maxZ: max(c1.Z, c2.Z),
	}
}

// AllCoords enumerates every integer coordinate within the region.
func (r Region) AllCoords() []Coord {
	coords := make([]Coord, 0, (r.maxX-r.minX+1)*(r.maxY-r.minY+1)*(r.maxZ-r.minZ+1))
	for x := r.minX; x <= r.maxX; x++ {
		for y := r.minY; y <= r.maxY; y++ {
			for z := r.minZ; z <= r.maxZ; z++ {
				coords = append(coords, Coord{x, y, z})
			}
		}
	}
	return coords
}
