package sim

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Neighbor is an agent found by a grid query, by its index in the tick's
// snapshot slice.
type Neighbor struct {
	Index  int
	DistSq float64
}

type gridEntry struct {
	index int
	pos   r3.Vec
}

// SpatialGrid buckets agent positions into cubic cells for neighbor lookups.
// The grid covers [-halfExtent, halfExtent] on every axis; positions outside
// are clamped into the border cells, which keeps queries exact.
type SpatialGrid struct {
	cellSize   float64
	dim        int // cells per axis
	halfExtent float64
	cells      [][]gridEntry
}

// NewSpatialGrid creates a grid covering a cube of the given half extent.
func NewSpatialGrid(halfExtent, cellSize float64) *SpatialGrid {
	dim := int(2*halfExtent/cellSize) + 1

	cells := make([][]gridEntry, dim*dim*dim)
	for i := range cells {
		cells[i] = make([]gridEntry, 0, 4)
	}

	return &SpatialGrid{
		cellSize:   cellSize,
		dim:        dim,
		halfExtent: halfExtent,
		cells:      cells,
	}
}

// CellSize returns the edge length of one cell.
func (g *SpatialGrid) CellSize() float64 { return g.cellSize }

// Clear removes all agents from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds the agent at snapshot index i.
func (g *SpatialGrid) Insert(i int, pos r3.Vec) {
	idx := g.cellIndex(g.coord(pos.X), g.coord(pos.Y), g.coord(pos.Z))
	g.cells[idx] = append(g.cells[idx], gridEntry{index: i, pos: pos})
}

// MaxQueryResults caps the number of neighbors returned by spatial queries.
// This prevents density spikes from causing unbounded work.
const MaxQueryResults = 128

// QueryRadiusInto appends agents within radius of pos to dst, skipping the
// agent at index exclude, and returns the updated slice. Reuse dst across
// calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, pos r3.Vec, radius float64, exclude int) []Neighbor {
	cellRadius := int(radius/g.cellSize) + 1

	cx, cy, cz := g.coord(pos.X), g.coord(pos.Y), g.coord(pos.Z)
	x0, x1 := g.clampCell(cx-cellRadius), g.clampCell(cx+cellRadius)
	y0, y1 := g.clampCell(cy-cellRadius), g.clampCell(cy+cellRadius)
	z0, z1 := g.clampCell(cz-cellRadius), g.clampCell(cz+cellRadius)

	radiusSq := radius * radius

	for z := z0; z <= z1; z++ {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				for _, e := range g.cells[g.cellIndex(x, y, z)] {
					if e.index == exclude {
						continue
					}
					d := r3.Sub(e.pos, pos)
					distSq := r3.Dot(d, d)
					if distSq <= radiusSq {
						dst = append(dst, Neighbor{Index: e.index, DistSq: distSq})
						if len(dst) >= MaxQueryResults {
							return dst
						}
					}
				}
			}
		}
	}

	return dst
}

// coord returns the clamped cell coordinate along one axis.
func (g *SpatialGrid) coord(v float64) int {
	return g.clampCell(int((v + g.halfExtent) / g.cellSize))
}

func (g *SpatialGrid) clampCell(c int) int {
	if c < 0 {
		return 0
	}
	if c >= g.dim {
		return g.dim - 1
	}
	return c
}

func (g *SpatialGrid) cellIndex(x, y, z int) int {
	return (z*g.dim+y)*g.dim + x
}
