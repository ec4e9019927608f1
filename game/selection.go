package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/steer"
)

// rayPicker finds the sphere hit nearest to a ray's origin.
type rayPicker struct {
	origin, dir r3.Vec
	best        int
	bestT       float64
}

func newRayPicker(origin, dir r3.Vec) *rayPicker {
	return &rayPicker{
		origin: origin,
		dir:    steer.SafeUnit(dir),
		best:   -1,
		bestT:  math.Inf(1),
	}
}

// consider records id if the ray passes within radius of center closer to
// the origin than the current best. Spheres behind the origin are ignored.
func (p *rayPicker) consider(id int, center r3.Vec, radius float64) {
	t := r3.Dot(r3.Sub(center, p.origin), p.dir)
	if t < 0 || t >= p.bestT {
		return
	}
	closest := r3.Add(p.origin, r3.Scale(t, p.dir))
	if r3.Norm2(r3.Sub(center, closest)) > radius*radius {
		return
	}
	p.best = id
	p.bestT = t
}
