package game

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestRayPicker(t *testing.T) {
	tests := []struct {
		name    string
		centers []r3.Vec
		want    int
	}{
		{"miss", []r3.Vec{{X: 5, Z: 10}}, -1},
		{"hit", []r3.Vec{{X: 0.5, Z: 10}}, 0},
		{"nearest along ray wins", []r3.Vec{{Z: 20}, {Z: 8}, {Z: 12}}, 1},
		{"behind origin ignored", []r3.Vec{{Z: -3}}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newRayPicker(r3.Vec{}, r3.Vec{Z: 2})
			for i, c := range tt.centers {
				p.consider(i, c, 1)
			}
			if p.best != tt.want {
				t.Errorf("best = %d, want %d", p.best, tt.want)
			}
		})
	}
}

func TestRayPickerZeroDirection(t *testing.T) {
	p := newRayPicker(r3.Vec{}, r3.Vec{})
	p.consider(0, r3.Vec{Z: 10}, 1)
	if p.best != -1 {
		t.Errorf("degenerate ray picked %d", p.best)
	}
	// the origin itself is within reach at t == 0
	p.consider(1, r3.Vec{X: 0.5}, 1)
	if p.best != 1 {
		t.Errorf("best = %d, want 1", p.best)
	}
}
