package steer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/steer"
)

func TestSeekAndFlee(t *testing.T) {
	a := newAgent(r3.Vec{}, r3.Vec{})
	target := r3.Vec{Z: 10}

	assertVec(t, r3.Vec{Z: 5}, steer.Seek(a, target, 5))
	assertVec(t, r3.Vec{Z: -5}, steer.Flee(a, target, 5))
}

func TestSeekSubtractsVelocity(t *testing.T) {
	a := newAgent(r3.Vec{}, r3.Vec{X: 1})
	assertVec(t, r3.Vec{X: -1, Z: 2}, steer.Seek(a, r3.Vec{Z: 2}, 5))
}

func TestArrivalSpeed(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		slowing  float64
		want     float64
	}{
		{"outside slowing radius", 10, 5, 5},
		{"halfway in", 2.5, 5, 2.5},
		{"at target", 0, 5, 0},
		{"no slowing radius", 3, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, steer.ArrivalSpeed(tt.distance, 5, tt.slowing), tol)
		})
	}
}

func TestArrival(t *testing.T) {
	t.Run("inside slowing distance", func(t *testing.T) {
		a := newAgent(r3.Vec{}, r3.Vec{})
		assertVec(t, r3.Vec{Z: 4}, steer.Arrival(a, r3.Vec{Z: 4}, 5, 5))
	})
	t.Run("at target brakes", func(t *testing.T) {
		a := newAgent(r3.Vec{X: 1}, r3.Vec{Z: 2})
		assertVec(t, r3.Vec{Z: -2}, steer.Arrival(a, r3.Vec{X: 1}, 5, 5))
	})
}

func TestTargetSpeed(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		want   r3.Vec
	}{
		{"speed up capped", 5, r3.Vec{Z: 1}},
		{"speed up", 2.5, r3.Vec{Z: 0.5}},
		{"hold", 2, r3.Vec{}},
		{"slow down capped", 0, r3.Vec{Z: -1}},
	}

	a := newAgent(r3.Vec{}, r3.Vec{Z: 2})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, tt.want, steer.TargetSpeed(a, tt.target, 1))
		})
	}
}

func TestFollowFlowField(t *testing.T) {
	field := steer.FlowFieldFunc(func(r3.Vec) r3.Vec { return r3.Vec{Z: 3} })

	still := newAgent(r3.Vec{}, r3.Vec{})
	assertVec(t, r3.Vec{Z: 2}, steer.FollowFlowField(still, field, 2, 1))

	aligned := newAgent(r3.Vec{}, r3.Vec{Z: 2})
	assertVec(t, r3.Vec{}, steer.FollowFlowField(aligned, field, 2, 1))
}

func TestStayOnPath(t *testing.T) {
	path := zAxisPath{radius: 1}

	t.Run("inside corridor", func(t *testing.T) {
		rec := &recorder{}
		a := newAgent(r3.Vec{X: 0.5}, r3.Vec{Z: 1})
		assertVec(t, r3.Vec{}, steer.StayOnPath(a, 1, path, 10, rec))
		assert.Zero(t, rec.pathFollowing)
	})
	t.Run("outside corridor seeks back", func(t *testing.T) {
		rec := &recorder{}
		a := newAgent(r3.Vec{X: 5}, r3.Vec{})
		assertVec(t, r3.Vec{X: -5}, steer.StayOnPath(a, 1, path, 10, rec))
		assert.Equal(t, 1, rec.pathFollowing)
	})
}

func TestFollowPath(t *testing.T) {
	path := zAxisPath{radius: 1}

	t.Run("moving the right way inside", func(t *testing.T) {
		a := newAgent(r3.Vec{}, r3.Vec{Z: 1})
		assertVec(t, r3.Vec{}, steer.FollowPath(a, 1, 1, path, 10, nil))
	})
	t.Run("moving the wrong way", func(t *testing.T) {
		a := newAgent(r3.Vec{}, r3.Vec{Z: 1})
		// target is one unit behind; seek (0,0,-1) minus velocity (0,0,1)
		assertVec(t, r3.Vec{Z: -2}, steer.FollowPath(a, -1, 1, path, 10, nil))
	})
	t.Run("outside corridor", func(t *testing.T) {
		a := newAgent(r3.Vec{X: 3}, r3.Vec{Z: 1})
		// target is (0,0,1); seek gives (-3,0,1) minus velocity
		assertVec(t, r3.Vec{X: -3}, steer.FollowPath(a, 1, 1, path, 10, nil))
	})
}

func TestPredictionTime(t *testing.T) {
	a := newAgent(r3.Vec{}, r3.Vec{})
	moving := newAgent(r3.Vec{X: 10}, r3.Vec{X: 5})
	still := newAgent(r3.Vec{X: 10}, r3.Vec{})

	assert.InDelta(t, 2.0, steer.PredictionTime(a, moving, 100), tol)
	assert.InDelta(t, 1.0, steer.PredictionTime(a, moving, 1), tol)
	assert.InDelta(t, 3.0, steer.PredictionTime(a, still, 3), tol)
}

func TestEvasion(t *testing.T) {
	a := newAgent(r3.Vec{}, r3.Vec{})
	menace := newAgent(r3.Vec{X: 10}, r3.Vec{X: 5})

	tests := []struct {
		name    string
		maxPred float64
		want    r3.Vec
	}{
		// predicted menace at (20,0,0)
		{"uncapped", 100, r3.Vec{X: -20}},
		// capped to 1s: menace at (15,0,0)
		{"capped", 1, r3.Vec{X: -15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, tt.want, steer.Evasion(a, menace, tt.maxPred, 100))
		})
	}
}

func TestPursuit(t *testing.T) {
	a := newAgent(r3.Vec{}, r3.Vec{})

	t.Run("leads a moving quarry", func(t *testing.T) {
		quarry := newAgent(r3.Vec{X: 10}, r3.Vec{Z: 5})
		assertVec(t, r3.Vec{X: 10, Z: 10}, steer.Pursuit(a, quarry, 100, 100))
	})
	t.Run("stationary quarry", func(t *testing.T) {
		quarry := newAgent(r3.Vec{X: 10}, r3.Vec{})
		assertVec(t, r3.Vec{X: 10}, steer.Pursuit(a, quarry, 3, 100))
	})
}

func TestAvoidObstacles(t *testing.T) {
	a := newAgent(r3.Vec{}, r3.Vec{Z: 1})
	far := stubObstacle{t: 3, hit: true, force: r3.Vec{X: 1}}
	near := stubObstacle{t: 1, hit: true, force: r3.Vec{Y: 1}}
	miss := stubObstacle{t: 0.1, hit: false, force: r3.Vec{Z: 1}}

	tests := []struct {
		name      string
		obstacles []steer.Obstacle
		minTime   float64
		want      r3.Vec
	}{
		{"nearest wins", []steer.Obstacle{far, near, miss}, 5, r3.Vec{Y: 1}},
		{"beyond horizon", []steer.Obstacle{far, near}, 0.5, r3.Vec{}},
		{"no hits", []steer.Obstacle{miss}, 5, r3.Vec{}},
		{"none", nil, 5, r3.Vec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, tt.want, steer.AvoidObstacles(a, tt.minTime, tt.obstacles))
		})
	}
}

func TestAvoidObstacleDelegates(t *testing.T) {
	a := newAgent(r3.Vec{}, r3.Vec{Z: 1})
	o := stubObstacle{force: r3.Vec{X: 2}}
	assertVec(t, r3.Vec{X: 2}, steer.AvoidObstacle(a, 1, o))
}
