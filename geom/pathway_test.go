package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertVec(t *testing.T, want, got r3.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y of %v", got)
	assert.InDelta(t, want.Z, got.Z, 1e-9, "z of %v", got)
}

func elbow(t *testing.T) *PolylinePathway {
	t.Helper()
	p, err := NewPolylinePathway([]r3.Vec{{}, {X: 10}, {X: 10, Z: 10}}, 1, false)
	require.NoError(t, err)
	return p
}

func TestNewPolylinePathway(t *testing.T) {
	_, err := NewPolylinePathway([]r3.Vec{{X: 1}}, 1, false)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	p := elbow(t)
	assert.InDelta(t, 20, p.Length(), 1e-12)
	assert.False(t, p.Cyclic())
	assert.Len(t, p.Points(), 3)
}

func TestMapPointToPath(t *testing.T) {
	p := elbow(t)

	tests := []struct {
		name        string
		point       r3.Vec
		wantOnPath  r3.Vec
		wantTangent r3.Vec
		wantOutside float64
	}{
		{"beside first leg", r3.Vec{X: 5, Y: 2}, r3.Vec{X: 5}, r3.Vec{X: 1}, 1},
		{"beside second leg", r3.Vec{X: 12, Z: 5}, r3.Vec{X: 10, Z: 5}, r3.Vec{Z: 1}, 1},
		{"inside corridor", r3.Vec{X: 3, Y: 0.5}, r3.Vec{X: 3}, r3.Vec{X: 1}, -0.5},
		{"before start", r3.Vec{X: -3}, r3.Vec{}, r3.Vec{X: 1}, 2},
		{"on corner picks first leg", r3.Vec{X: 10}, r3.Vec{X: 10}, r3.Vec{X: 1}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			onPath, tangent, outside := p.MapPointToPath(tt.point)
			assertVec(t, tt.wantOnPath, onPath)
			assertVec(t, tt.wantTangent, tangent)
			assert.InDelta(t, tt.wantOutside, outside, 1e-9)
		})
	}
}

func TestPathDistanceRoundTrip(t *testing.T) {
	p := elbow(t)

	tests := []struct {
		name     string
		distance float64
		want     r3.Vec
	}{
		{"start", 0, r3.Vec{}},
		{"first leg", 4, r3.Vec{X: 4}},
		{"corner", 10, r3.Vec{X: 10}},
		{"second leg", 15, r3.Vec{X: 10, Z: 5}},
		{"clamped before", -3, r3.Vec{}},
		{"clamped after", 100, r3.Vec{X: 10, Z: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, tt.want, p.MapPathDistanceToPoint(tt.distance))
		})
	}

	assert.InDelta(t, 15, p.MapPointToPathDistance(r3.Vec{X: 12, Z: 5}), 1e-9)
	assert.InDelta(t, 4, p.MapPointToPathDistance(r3.Vec{X: 4, Y: -3}), 1e-9)
}

func TestCyclicPathway(t *testing.T) {
	square := []r3.Vec{{}, {X: 10}, {X: 10, Z: 10}, {Z: 10}}
	p, err := NewPolylinePathway(square, 2, true)
	require.NoError(t, err)

	assert.InDelta(t, 40, p.Length(), 1e-12)
	assertVec(t, r3.Vec{X: 5}, p.MapPathDistanceToPoint(45))
	assertVec(t, r3.Vec{Z: 5}, p.MapPathDistanceToPoint(-5))

	// the closing leg runs from (0,0,10) back to the origin
	onPath, tangent, _ := p.MapPointToPath(r3.Vec{X: -1, Z: 5})
	assertVec(t, r3.Vec{Z: 5}, onPath)
	assertVec(t, r3.Vec{Z: -1}, tangent)
	assert.InDelta(t, 35, p.MapPointToPathDistance(r3.Vec{X: -1, Z: 5}), 1e-9)
}
