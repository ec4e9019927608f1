// Package geom provides concrete collaborators for the steer package:
// a polyline pathway, spherical obstacles and flow fields.
package geom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/steer"
)

// ErrTooFewPoints is returned when a pathway has fewer than two points.
var ErrTooFewPoints = errors.New("geom: pathway needs at least two points")

// PolylinePathway is a tube of fixed radius around a sequence of line segments.
type PolylinePathway struct {
	points  []r3.Vec
	lengths []float64 // lengths[i] is the segment ending at points[i]
	normals []r3.Vec  // unit direction of that segment
	radius  float64
	cyclic  bool
	total   float64
}

var _ steer.Pathway = (*PolylinePathway)(nil)

// NewPolylinePathway builds a pathway. A cyclic pathway closes back to its
// first point.
func NewPolylinePathway(points []r3.Vec, radius float64, cyclic bool) (*PolylinePathway, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}

	pts := make([]r3.Vec, len(points), len(points)+1)
	copy(pts, points)
	if cyclic {
		pts = append(pts, points[0])
	}

	p := &PolylinePathway{
		points:  pts,
		lengths: make([]float64, len(pts)),
		normals: make([]r3.Vec, len(pts)),
		radius:  radius,
		cyclic:  cyclic,
	}
	for i := 1; i < len(pts); i++ {
		seg := r3.Sub(pts[i], pts[i-1])
		p.lengths[i] = r3.Norm(seg)
		p.normals[i] = steer.SafeUnit(seg)
		p.total += p.lengths[i]
	}
	return p, nil
}

// Radius returns the corridor radius.
func (p *PolylinePathway) Radius() float64 { return p.radius }

// Length returns the total arclength.
func (p *PolylinePathway) Length() float64 { return p.total }

// Cyclic reports whether the pathway loops.
func (p *PolylinePathway) Cyclic() bool { return p.cyclic }

// Points returns the vertices, including the closing vertex of a cyclic path.
func (p *PolylinePathway) Points() []r3.Vec { return p.points }

// segmentProjection finds the closest point to point on segment i.
func (p *PolylinePathway) segmentProjection(point r3.Vec, i int) (closest r3.Vec, along, dist float64) {
	start := p.points[i-1]
	local := r3.Sub(point, start)
	along = r3.Dot(p.normals[i], local)
	switch {
	case along < 0:
		closest, along = start, 0
	case along > p.lengths[i]:
		closest, along = p.points[i], p.lengths[i]
	default:
		closest = r3.Add(start, r3.Scale(along, p.normals[i]))
	}
	return closest, along, steer.Distance(point, closest)
}

// nearestSegment returns the segment closest to point along with the
// projection and the arclength up to that segment's start.
func (p *PolylinePathway) nearestSegment(point r3.Vec) (seg int, closest r3.Vec, along, before float64) {
	minDist := math.Inf(1)
	var running float64
	for i := 1; i < len(p.points); i++ {
		c, a, d := p.segmentProjection(point, i)
		if d < minDist {
			minDist = d
			seg, closest, along, before = i, c, a, running
		}
		running += p.lengths[i]
	}
	return seg, closest, along, before
}

// MapPointToPath projects point onto the path centerline.
func (p *PolylinePathway) MapPointToPath(point r3.Vec) (onPath, tangent r3.Vec, outside float64) {
	seg, closest, _, _ := p.nearestSegment(point)
	return closest, p.normals[seg], steer.Distance(point, closest) - p.radius
}

// MapPointToPathDistance returns the arclength of point's projection.
func (p *PolylinePathway) MapPointToPathDistance(point r3.Vec) float64 {
	_, _, along, before := p.nearestSegment(point)
	return before + along
}

// MapPathDistanceToPoint returns the centerline point at arclength distance.
// Cyclic paths wrap; open paths clamp to their ends.
func (p *PolylinePathway) MapPathDistanceToPoint(distance float64) r3.Vec {
	if p.cyclic {
		if p.total > 0 {
			distance = math.Mod(distance, p.total)
			if distance < 0 {
				distance += p.total
			}
		}
	} else {
		distance = steer.Clamp(distance, 0, p.total)
	}

	remaining := distance
	for i := 1; i < len(p.points); i++ {
		if p.lengths[i] < remaining {
			remaining -= p.lengths[i]
			continue
		}
		if p.lengths[i] == 0 {
			return p.points[i]
		}
		ratio := remaining / p.lengths[i]
		return r3.Add(p.points[i-1], r3.Scale(ratio, r3.Sub(p.points[i], p.points[i-1])))
	}
	return p.points[len(p.points)-1]
}
