package steer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/steer"
)

func TestAvoidCloseNeighbors(t *testing.T) {
	a := newAgent(r3.Vec{}, r3.Vec{Z: 1})

	tests := []struct {
		name   string
		others []*agent
		want   r3.Vec
		events int
	}{
		{"overlapping", []*agent{newAgent(r3.Vec{X: 0.5, Z: 0.5}, r3.Vec{})}, r3.Vec{X: -0.5}, 1},
		{"clear", []*agent{newAgent(r3.Vec{X: 5}, r3.Vec{})}, r3.Vec{}, 0},
		{"self is ignored", []*agent{a}, r3.Vec{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			assertVec(t, tt.want, steer.AvoidCloseNeighbors(a, 0, kinematics(tt.others...), rec))
			assert.Equal(t, tt.events, rec.closeNeighbor)
		})
	}
}

func TestPredictNearestApproachTime(t *testing.T) {
	a := newAgent(r3.Vec{}, r3.Vec{})

	closing := newAgent(r3.Vec{X: 10}, r3.Vec{X: -1})
	assert.InDelta(t, 10.0, steer.PredictNearestApproachTime(a, closing), tol)

	receding := newAgent(r3.Vec{X: 10}, r3.Vec{X: 1})
	assert.InDelta(t, -10.0, steer.PredictNearestApproachTime(a, receding), tol)

	matched := newAgent(r3.Vec{X: 10}, r3.Vec{})
	assert.Zero(t, steer.PredictNearestApproachTime(a, matched))
}

func TestNearestApproachPositions(t *testing.T) {
	a := newAgent(r3.Vec{}, r3.Vec{Z: 1})
	b := newAgent(r3.Vec{X: 3}, r3.Vec{X: -1})

	ours, theirs, d := steer.NearestApproachPositions(a, b, 2)
	assertVec(t, r3.Vec{Z: 2}, ours)
	assertVec(t, r3.Vec{X: 1}, theirs)
	assert.InDelta(t, 2.2360679775, d, 1e-9)
}

func TestAvoidNeighbors(t *testing.T) {
	tests := []struct {
		name    string
		self    *agent
		other   *agent
		minTime float64
		want    r3.Vec
	}{
		{
			// threat passes on +X; self side is -X so steer +1 moves toward -X
			name:    "head on",
			self:    newAgent(r3.Vec{}, r3.Vec{Z: 1}),
			other:   newAgent(r3.Vec{X: 0.2, Z: 10}, r3.Vec{Z: -1}),
			minTime: 10,
			want:    r3.Vec{X: -1},
		},
		{
			name:    "head on beyond horizon",
			self:    newAgent(r3.Vec{}, r3.Vec{Z: 1}),
			other:   newAgent(r3.Vec{X: 0.2, Z: 10}, r3.Vec{Z: -1}),
			minTime: 4,
			want:    r3.Vec{},
		},
		{
			name:    "overtaken from behind",
			self:    newAgent(r3.Vec{}, r3.Vec{Z: 1}),
			other:   newAgent(r3.Vec{X: 0.3, Z: -2}, r3.Vec{Z: 2}),
			minTime: 10,
			want:    r3.Vec{X: -1},
		},
		{
			// threat crosses toward -X; passing behind it means going +X
			name:    "crossing slower threat",
			self:    newAgent(r3.Vec{}, r3.Vec{Z: 2}),
			other:   newAgent(r3.Vec{X: 3, Z: 6}, r3.Vec{X: -1}),
			minTime: 10,
			want:    r3.Vec{X: 1},
		},
		{
			name:    "crossing faster threat",
			self:    newAgent(r3.Vec{}, r3.Vec{Z: 1}),
			other:   newAgent(r3.Vec{X: 6, Z: 3}, r3.Vec{X: -2}),
			minTime: 10,
			want:    r3.Vec{},
		},
		{
			name:    "diverging",
			self:    newAgent(r3.Vec{}, r3.Vec{Z: 1}),
			other:   newAgent(r3.Vec{X: 5}, r3.Vec{X: 1}),
			minTime: 10,
			want:    r3.Vec{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := steer.AvoidNeighbors(tt.self, tt.minTime, kinematics(tt.self, tt.other), nil)
			assertVec(t, tt.want, got)
		})
	}
}

func TestAvoidNeighborsPrefersCloseNeighbor(t *testing.T) {
	a := newAgent(r3.Vec{}, r3.Vec{Z: 1})
	touching := newAgent(r3.Vec{X: 0.5, Z: 0.5}, r3.Vec{})
	rec := &recorder{}

	assertVec(t, r3.Vec{X: -0.5}, steer.AvoidNeighbors(a, 10, kinematics(touching), rec))
	assert.Equal(t, 1, rec.closeNeighbor)
	assert.Zero(t, rec.neighbor)
}
