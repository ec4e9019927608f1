package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/components"
	"github.com/pthm-cable/steer/geom"
	"github.com/pthm-cable/steer/steer"
)

// roleColors is indexed by components.Role.
var roleColors = []color.RGBA{
	{R: 110, G: 190, B: 255, A: 255}, // boid
	{R: 255, G: 80, B: 70, A: 255},   // pursuer
	{R: 255, G: 220, B: 90, A: 255},  // evader
	{R: 120, G: 230, B: 130, A: 255}, // path follower
	{R: 200, G: 140, B: 255, A: 255}, // wanderer
}

var (
	colorPath     = color.RGBA{R: 90, G: 160, B: 90, A: 255}
	colorObstacle = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	colorBounds   = color.RGBA{R: 60, G: 70, B: 80, A: 255}
	colorFlow     = color.RGBA{R: 50, G: 100, B: 130, A: 160}
	colorSelected = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// RoleColor returns the display color for a role.
func RoleColor(role components.Role) color.RGBA {
	if int(role) < len(roleColors) {
		return roleColors[role]
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// agentShape returns the nose, left tail, right tail and dorsal points of the
// dart drawn for an agent of the given radius.
func agentShape(basis steer.LocalSpaceBasis, radius float64) (nose, left, right, top r3.Vec) {
	pos := basis.Position()
	back := r3.Sub(pos, r3.Scale(radius, basis.Forward()))
	nose = r3.Add(pos, r3.Scale(2*radius, basis.Forward()))
	left = r3.Sub(back, r3.Scale(radius, basis.Side()))
	right = r3.Add(back, r3.Scale(radius, basis.Side()))
	top = r3.Add(back, r3.Scale(0.6*radius, basis.Up()))
	return nose, left, right, top
}

// DrawAgent draws an agent as a dart pointing along its forward axis.
func DrawAgent(basis steer.LocalSpaceBasis, radius float64, c color.RGBA) {
	nose, left, right, top := agentShape(basis, radius)
	n, l, r, t := vec3(nose), vec3(left), vec3(right), vec3(top)
	fill := rl.Color(c)

	rl.DrawTriangle3D(n, l, t, fill)
	rl.DrawTriangle3D(n, t, r, fill)
	rl.DrawTriangle3D(n, r, l, fill)
	rl.DrawTriangle3D(l, r, t, fill)
}

// DrawSelection circles the selected agent.
func DrawSelection(basis steer.LocalSpaceBasis, radius float64) {
	points := circlePoints(radius*3, basis.Position(), basis.Up(), 16)
	for i := range points {
		rl.DrawLine3D(vec3(points[i]), vec3(points[(i+1)%len(points)]), rl.Color(colorSelected))
	}
}

// DrawPath draws the pathway spine and a ring marking its radius at each
// vertex.
func DrawPath(path *geom.PolylinePathway) {
	if path == nil {
		return
	}
	points := path.Points()
	for i := 0; i+1 < len(points); i++ {
		rl.DrawLine3D(vec3(points[i]), vec3(points[i+1]), rl.Color(colorPath))

		axis := r3.Sub(points[i+1], points[i])
		ring := circlePoints(path.Radius(), points[i], axis, 16)
		for j := range ring {
			rl.DrawLine3D(vec3(ring[j]), vec3(ring[(j+1)%len(ring)]), rl.Color(colorPath))
		}
	}
}

// DrawObstacles draws each sphere as a wireframe.
func DrawObstacles(obstacles []geom.SphereObstacle) {
	for _, o := range obstacles {
		rl.DrawSphereWires(vec3(o.Center), float32(o.Radius), 10, 14, rl.Color(colorObstacle))
	}
}

// DrawWorldBounds draws three great circles of the world sphere.
func DrawWorldBounds(radius float64) {
	for _, axis := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		ring := circlePoints(radius, r3.Vec{}, axis, 64)
		for j := range ring {
			rl.DrawLine3D(vec3(ring[j]), vec3(ring[(j+1)%len(ring)]), rl.Color(colorBounds))
		}
	}
}

// FlowRenderer draws a flow field as short line segments on a lattice.
type FlowRenderer struct {
	samples []r3.Vec
	scale   float64
}

// NewFlowRenderer creates a renderer sampling a cube of the given half extent
// every spacing units. scale converts flow magnitude to line length.
func NewFlowRenderer(halfExtent, spacing, scale float64) *FlowRenderer {
	var samples []r3.Vec
	for x := -halfExtent; x <= halfExtent; x += spacing {
		for y := -halfExtent; y <= halfExtent; y += spacing {
			for z := -halfExtent; z <= halfExtent; z += spacing {
				samples = append(samples, r3.Vec{X: x, Y: y, Z: z})
			}
		}
	}
	return &FlowRenderer{samples: samples, scale: scale}
}

// Draw samples field at every lattice point.
func (r *FlowRenderer) Draw(field steer.FlowField) {
	if field == nil {
		return
	}
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, p := range r.samples {
		flow := field.Sample(p)
		rl.DrawLine3D(vec3(p), vec3(r3.Add(p, r3.Scale(r.scale, flow))), rl.Color(colorFlow))
	}
	rl.EndBlendMode()
}
