package geom

import (
	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/steer"
)

// UniformFlowField returns the same vector everywhere.
type UniformFlowField struct {
	Flow r3.Vec
}

func (u UniformFlowField) Sample(r3.Vec) r3.Vec { return u.Flow }

// Noise channel offsets keep the three axes decorrelated.
const (
	noiseOffsetY = 100.0
	noiseOffsetZ = 200.0
)

// NoiseFlowField is a smooth, slowly evolving current built from 3D simplex
// noise, one noise channel per axis.
type NoiseFlowField struct {
	noise    opensimplex.Noise
	Scale    float64 // spatial frequency
	Strength float64 // peak magnitude per axis
	Speed    float64 // time drift per second
	time     float64
}

var (
	_ steer.FlowField = UniformFlowField{}
	_ steer.FlowField = (*NoiseFlowField)(nil)
)

// NewNoiseFlowField creates a seeded noise field.
func NewNoiseFlowField(seed int64, scale, strength, speed float64) *NoiseFlowField {
	return &NoiseFlowField{
		noise:    opensimplex.New(seed),
		Scale:    scale,
		Strength: strength,
		Speed:    speed,
	}
}

// Advance moves the field forward in time. Not safe to call concurrently
// with Sample.
func (n *NoiseFlowField) Advance(dt float64) {
	n.time += dt * n.Speed
}

// Time returns the current noise time coordinate.
func (n *NoiseFlowField) Time() float64 { return n.time }

// Sample reads the field at point. Safe for concurrent use.
func (n *NoiseFlowField) Sample(point r3.Vec) r3.Vec {
	x := point.X * n.Scale
	y := point.Y * n.Scale
	z := point.Z*n.Scale + n.time
	return r3.Vec{
		X: n.noise.Eval3(x, y, z) * n.Strength,
		Y: n.noise.Eval3(x+noiseOffsetY, y, z) * n.Strength,
		Z: n.noise.Eval3(x, y+noiseOffsetZ, z) * n.Strength,
	}
}
