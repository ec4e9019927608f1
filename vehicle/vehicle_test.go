package vehicle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/steer"
)

func TestNewVehicleDefaults(t *testing.T) {
	v := New(r3.Vec{X: 1}, r3.Vec{Z: 1})

	assert.Equal(t, DefaultMass, v.Mass())
	assert.Equal(t, DefaultRadius, v.Radius())
	assert.Equal(t, DefaultMaxForce, v.MaxForce())
	assert.Equal(t, DefaultMaxSpeed, v.MaxSpeed())
	assert.Zero(t, v.Speed())
	assert.Equal(t, r3.Vec{X: 1}, v.Position())
	assert.Equal(t, r3.Vec{Z: 1}, v.Forward())
}

func TestApplySteeringForce(t *testing.T) {
	tests := []struct {
		name      string
		force     r3.Vec
		dt        float64
		wantVel   r3.Vec
		wantSpeed float64
	}{
		{"force is clipped to max force", r3.Vec{Z: 1}, 1, r3.Vec{Z: 0.1}, 0.1},
		{"small force passes through", r3.Vec{Z: 0.05}, 1, r3.Vec{Z: 0.05}, 0.05},
		{"zero dt is a no-op", r3.Vec{Z: 1}, 0, r3.Vec{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(r3.Vec{}, r3.Vec{Z: 1})
			v.ApplySteeringForce(tt.force, tt.dt)
			assert.InDelta(t, tt.wantVel.Z, v.Velocity().Z, 1e-12)
			assert.InDelta(t, tt.wantSpeed, v.Speed(), 1e-12)
			assert.InDelta(t, tt.wantVel.Z*tt.dt, v.Position().Z, 1e-12)
		})
	}
}

func TestApplySteeringForceCapsSpeed(t *testing.T) {
	v := New(r3.Vec{}, r3.Vec{Z: 1})
	for i := 0; i < 200; i++ {
		v.ApplySteeringForce(r3.Vec{Z: 1}, 0.5)
	}
	assert.InDelta(t, v.MaxSpeed(), v.Speed(), 1e-9)
}

func TestApplySteeringForceTurnsFrame(t *testing.T) {
	v := New(r3.Vec{}, r3.Vec{Z: 1})
	v.SetMaxForce(10)
	v.ApplySteeringForce(r3.Vec{X: 1}, 1)

	assert.InDelta(t, 1, v.Forward().X, 1e-12)
	// frame stays orthonormal
	assert.InDelta(t, 0, r3.Dot(v.Forward(), v.Up()), 1e-12)
	assert.InDelta(t, 1, r3.Norm(v.Side()), 1e-12)
}

func TestSetVelocity(t *testing.T) {
	v := New(r3.Vec{}, r3.Vec{Z: 1})
	v.SetVelocity(r3.Vec{X: 3, Z: 4})

	assert.InDelta(t, 5, v.Speed(), 1e-12)
	assert.InDelta(t, 0.6, v.Forward().X, 1e-12)
	assert.Equal(t, r3.Vec{X: 6, Z: 8}, v.PredictPosition(2))
}

func TestApplyBrakingForce(t *testing.T) {
	v := New(r3.Vec{}, r3.Vec{Z: 1})
	v.SetMaxSpeed(10)
	v.SetMaxForce(1)
	v.SetSpeed(2)

	v.ApplyBrakingForce(0.25, 1)
	assert.InDelta(t, 1.5, v.Speed(), 1e-12)

	v.ApplyBrakingForce(10, 10)
	assert.Zero(t, v.Speed())
}

func TestSetters(t *testing.T) {
	v := New(r3.Vec{}, r3.Vec{Z: 1})
	v.SetMass(-1)
	v.SetRadius(-2)
	assert.Equal(t, DefaultMass, v.Mass())
	assert.Zero(t, v.Radius())
}

type countingAnnotation struct {
	steer.NopAnnotation
	calls int
}

func (c *countingAnnotation) IsEnabled() bool { return true }
func (c *countingAnnotation) VelocityAcceleration(steer.Kinematics, float64, float64) {
	c.calls++
}

func TestApplySteeringForceAnnotates(t *testing.T) {
	ann := &countingAnnotation{}
	v := New(r3.Vec{}, r3.Vec{Z: 1})
	v.Annotation = ann

	v.ApplySteeringForce(r3.Vec{Z: 1}, 0.1)
	require.Equal(t, 1, ann.calls)
	assert.False(t, math.IsNaN(v.Position().Z))
}

func TestSeekDrivesVehicleToTarget(t *testing.T) {
	v := New(r3.Vec{}, r3.Vec{Z: 1})
	v.SetMaxForce(2)
	v.SetMaxSpeed(2)
	target := r3.Vec{X: 5, Z: 5}

	for i := 0; i < 900; i++ {
		v.ApplySteeringForce(steer.Arrival(v, target, v.MaxSpeed(), 2), 1.0/60)
	}
	assert.Less(t, steer.Distance(v.Position(), target), 1.0)
}
