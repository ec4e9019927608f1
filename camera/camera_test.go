package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func near(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) < 1e-9
}

func TestNew(t *testing.T) {
	cam := New(100)

	if cam.Target != (r3.Vec{}) {
		t.Errorf("expected target at origin, got %v", cam.Target)
	}
	if cam.Distance != 100 {
		t.Errorf("expected distance 100, got %f", cam.Distance)
	}
	if d := r3.Norm(cam.Position()); math.Abs(d-100) > 1e-9 {
		t.Errorf("eye is %f from target, want 100", d)
	}
}

func TestPosition(t *testing.T) {
	testCases := []struct {
		name       string
		yaw, pitch float64
		want       r3.Vec
	}{
		{"level front", 0, 0, r3.Vec{Z: 10}},
		{"level right", math.Pi / 2, 0, r3.Vec{X: 10}},
		{"level back", math.Pi, 0, r3.Vec{Z: -10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cam := &Orbit{Yaw: tc.yaw, Pitch: tc.pitch, Distance: 10}
			if got := cam.Position(); !near(got, tc.want) {
				t.Errorf("Position() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPositionFollowsTarget(t *testing.T) {
	cam := &Orbit{Target: r3.Vec{X: 5, Y: 1}, Distance: 3}
	if got := cam.Position(); !near(got, r3.Vec{X: 5, Y: 1, Z: 3}) {
		t.Errorf("Position() = %v", got)
	}
	if got := cam.Forward(); !near(got, r3.Vec{Z: -1}) {
		t.Errorf("Forward() = %v, want -Z", got)
	}
}

func TestRotateClampsPitch(t *testing.T) {
	cam := New(10)

	cam.Rotate(0, 10)
	if cam.Pitch != maxPitch {
		t.Errorf("pitch = %f, want clamped to %f", cam.Pitch, maxPitch)
	}
	cam.Rotate(0, -20)
	if cam.Pitch != minPitch {
		t.Errorf("pitch = %f, want clamped to %f", cam.Pitch, minPitch)
	}

	cam.Rotate(3*math.Pi, 0)
	if math.Abs(cam.Yaw-math.Pi) > 1e-9 {
		t.Errorf("yaw = %f, want wrapped to pi", cam.Yaw)
	}
}

func TestZoomLimits(t *testing.T) {
	cam := New(10)

	cam.Zoom(0.01)
	if cam.Distance != cam.MinDistance {
		t.Errorf("distance = %f, want min %f", cam.Distance, cam.MinDistance)
	}
	cam.Zoom(1000)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("distance = %f, want max %f", cam.Distance, cam.MaxDistance)
	}
	before := cam.Distance
	cam.Zoom(-1)
	if cam.Distance != before {
		t.Error("non-positive zoom factor should be ignored")
	}
}

func TestFollow(t *testing.T) {
	cam := New(10)
	cam.Follow(r3.Vec{X: 10}, 0.5)
	if !near(cam.Target, r3.Vec{X: 5}) {
		t.Errorf("Target = %v, want halfway", cam.Target)
	}
	cam.Follow(r3.Vec{X: 10}, 2)
	if !near(cam.Target, r3.Vec{X: 10}) {
		t.Errorf("Target = %v, want snapped with clamped rate", cam.Target)
	}
}

func TestIsVisible(t *testing.T) {
	cam := &Orbit{Distance: 10} // eye at +Z looking toward -Z

	if !cam.IsVisible(r3.Vec{}, 1) {
		t.Error("target should be visible")
	}
	if cam.IsVisible(r3.Vec{Z: 20}, 1) {
		t.Error("point behind the eye should be culled")
	}
	if !cam.IsVisible(r3.Vec{Z: 10.5}, 1) {
		t.Error("sphere straddling the eye plane should be kept")
	}
}
