// Package renderer draws the simulation with raylib.
package renderer

import (
	"image/color"
	"math"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/steer"
)

// Annotation colors.
var (
	colorPathInside  = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colorPathOutside = color.RGBA{R: 230, G: 60, B: 60, A: 255}
	colorPathTarget  = color.RGBA{R: 80, G: 220, B: 80, A: 255}
	colorCloseAvoid  = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	colorThreat      = color.RGBA{R: 255, G: 60, B: 200, A: 255}
	colorVelocity    = color.RGBA{R: 120, G: 180, B: 255, A: 255}
	colorAccel       = color.RGBA{R: 255, G: 230, B: 90, A: 255}
)

type line struct {
	a, b r3.Vec
	c    color.RGBA
}

type disk struct {
	center, axis r3.Vec
	radius       float64
	segments     int
	c            color.RGBA
}

// Annotator implements steer.Annotation by queuing 3D primitives that Draw
// renders inside a raylib 3D mode block. It is safe for concurrent use.
type Annotator struct {
	mu      sync.Mutex
	enabled bool
	lines   []line
	disks   []disk
}

var _ steer.Annotation = (*Annotator)(nil)

// NewAnnotator creates a disabled annotator.
func NewAnnotator() *Annotator {
	return &Annotator{}
}

// IsEnabled reports whether primitives are being collected.
func (a *Annotator) IsEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// Enable turns collection on or off. Disabling drops queued primitives.
func (a *Annotator) Enable(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
	if !enabled {
		a.lines = a.lines[:0]
		a.disks = a.disks[:0]
	}
}

// Reset drops queued primitives, typically before the next simulation step.
func (a *Annotator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lines = a.lines[:0]
	a.disks = a.disks[:0]
}

// Len returns the number of queued lines and disks.
func (a *Annotator) Len() (lines, disks int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.lines), len(a.disks)
}

func (a *Annotator) addLine(start, end r3.Vec, c color.RGBA) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.enabled {
		a.lines = append(a.lines, line{a: start, b: end, c: c})
	}
}

func (a *Annotator) addCircle(radius float64, center, axis r3.Vec, c color.RGBA, segments int) {
	points := circlePoints(radius, center, axis, segments)
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.enabled {
		return
	}
	for i := range points {
		a.lines = append(a.lines, line{a: points[i], b: points[(i+1)%len(points)], c: c})
	}
}

func (a *Annotator) addDisk(radius float64, center, axis r3.Vec, c color.RGBA, segments int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.enabled {
		a.disks = append(a.disks, disk{center: center, axis: axis, radius: radius, segments: segments, c: c})
	}
}

func (a *Annotator) Line(start, end r3.Vec, c color.RGBA) { a.addLine(start, end, c) }

func (a *Annotator) CircleXZ(radius float64, center r3.Vec, c color.RGBA, segments int) {
	a.addCircle(radius, center, r3.Vec{Y: 1}, c, segments)
}

func (a *Annotator) DiskXZ(radius float64, center r3.Vec, c color.RGBA, segments int) {
	a.addDisk(radius, center, r3.Vec{Y: 1}, c, segments)
}

func (a *Annotator) Circle3D(radius float64, center, axis r3.Vec, c color.RGBA, segments int) {
	a.addCircle(radius, center, axis, c, segments)
}

func (a *Annotator) Disk3D(radius float64, center, axis r3.Vec, c color.RGBA, segments int) {
	a.addDisk(radius, center, axis, c, segments)
}

// PathFollowing links the predicted position to its projection on the path,
// red when the prediction leaves the corridor, and marks the seek target.
func (a *Annotator) PathFollowing(future, onPath, target r3.Vec, outside float64) {
	c := colorPathInside
	if outside > 0 {
		c = colorPathOutside
	}
	a.addLine(future, onPath, c)
	a.addCircle(0.3, target, r3.Vec{Y: 1}, colorPathTarget, 8)
}

func (a *Annotator) AvoidCloseNeighbor(other steer.Kinematics, additionalDistance float64) {
	a.addCircle(other.Radius()+additionalDistance, other.Position(), other.Up(), colorCloseAvoid, 12)
}

func (a *Annotator) AvoidNeighbor(threat steer.Kinematics, _ float64, ourFuture, threatFuture r3.Vec) {
	a.addLine(threat.Position(), threatFuture, colorThreat)
	a.addCircle(threat.Radius(), ourFuture, r3.Vec{Y: 1}, colorThreat, 10)
	a.addCircle(threat.Radius(), threatFuture, r3.Vec{Y: 1}, colorThreat, 10)
}

// VelocityAcceleration draws velocity and acceleration as lines from the
// agent, scaled so that MaxSpeed and MaxForce span the given lengths.
func (a *Annotator) VelocityAcceleration(k steer.Kinematics, maxAccelerationLength, maxVelocityLength float64) {
	pos := k.Position()
	if k.MaxSpeed() > 0 {
		vel := r3.Scale(maxVelocityLength/k.MaxSpeed(), k.Velocity())
		a.addLine(pos, r3.Add(pos, vel), colorVelocity)
	}
	if k.MaxForce() > 0 {
		acc := r3.Scale(maxAccelerationLength*k.Mass()/k.MaxForce(), k.Acceleration())
		a.addLine(pos, r3.Add(pos, acc), colorAccel)
	}
}

// Draw renders the queued primitives. Call between rl.BeginMode3D and
// rl.EndMode3D.
func (a *Annotator) Draw() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, l := range a.lines {
		rl.DrawLine3D(vec3(l.a), vec3(l.b), rl.Color(l.c))
	}
	for _, d := range a.disks {
		points := circlePoints(d.radius, d.center, d.axis, d.segments)
		center := vec3(d.center)
		fill := rl.Color(d.c)
		for i := range points {
			p0, p1 := vec3(points[i]), vec3(points[(i+1)%len(points)])
			// both windings so the disk shows from either side
			rl.DrawTriangle3D(center, p0, p1, fill)
			rl.DrawTriangle3D(center, p1, p0, fill)
		}
	}
}

// circlePoints returns segments points on a circle around center whose plane
// is perpendicular to axis.
func circlePoints(radius float64, center, axis r3.Vec, segments int) []r3.Vec {
	if segments < 3 {
		segments = 3
	}
	u, w := perpendicularBasis(axis)

	points := make([]r3.Vec, segments)
	step := 2 * math.Pi / float64(segments)
	for i := range points {
		s, c := math.Sincos(float64(i) * step)
		offset := r3.Add(r3.Scale(radius*c, u), r3.Scale(radius*s, w))
		points[i] = r3.Add(center, offset)
	}
	return points
}

// perpendicularBasis returns two unit vectors spanning the plane normal to
// axis. A zero axis is treated as +Y.
func perpendicularBasis(axis r3.Vec) (u, w r3.Vec) {
	n := steer.SafeUnit(axis)
	if n == steer.Zero {
		n = r3.Vec{Y: 1}
	}
	ref := r3.Vec{X: 1}
	if math.Abs(n.X) > 0.9 {
		ref = r3.Vec{Z: 1}
	}
	u = r3.Unit(r3.Cross(n, ref))
	w = r3.Cross(n, u)
	return u, w
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
