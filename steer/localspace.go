package steer

import "gonum.org/v1/gonum/spatial/r3"

// LocalSpaceBasis exposes an agent's orientation frame and position.
// The frame is right-handed: Side() == Forward() × Up().
type LocalSpaceBasis interface {
	Side() r3.Vec
	Up() r3.Vec
	Forward() r3.Vec
	Position() r3.Vec
}

var (
	worldUp      = r3.Vec{Y: 1}
	worldForward = r3.Vec{Z: 1}
	worldSide    = r3.Vec{X: 1}
)

// LocalSpace is a plain orthonormal frame. It is the default LocalSpaceBasis
// used by the reference vehicle and by tests.
type LocalSpace struct {
	side     r3.Vec
	up       r3.Vec
	forward  r3.Vec
	position r3.Vec
}

// NewLocalSpace builds an orthonormal frame from a heading and an approximate up.
// A degenerate forward falls back to +Z; an up parallel to forward is replaced.
func NewLocalSpace(forward, up, position r3.Vec) LocalSpace {
	ls := LocalSpace{position: position}
	ls.setBasis(forward, up)
	return ls
}

func (ls *LocalSpace) setBasis(forward, up r3.Vec) {
	f := SafeUnit(forward)
	if f == Zero {
		f = worldForward
	}
	if IsNearZero(up) {
		up = worldUp
	}
	s := SafeUnit(r3.Cross(f, up))
	if s == Zero {
		// up is parallel to forward; any perpendicular reference will do
		alt := worldUp
		if IsNearZero(r3.Cross(f, alt)) {
			alt = worldSide
		}
		s = SafeUnit(r3.Cross(f, alt))
	}
	ls.forward = f
	ls.side = s
	ls.up = r3.Cross(s, f)
}

func (ls LocalSpace) Side() r3.Vec     { return ls.side }
func (ls LocalSpace) Up() r3.Vec       { return ls.up }
func (ls LocalSpace) Forward() r3.Vec  { return ls.forward }
func (ls LocalSpace) Position() r3.Vec { return ls.position }

// SetPosition moves the frame origin.
func (ls *LocalSpace) SetPosition(p r3.Vec) {
	ls.position = p
}

// RegenerateOrthonormalBasis turns the frame to face newForward, keeping the
// current up as the reference. Zero-length headings leave the frame unchanged.
func (ls *LocalSpace) RegenerateOrthonormalBasis(newForward r3.Vec) {
	if IsNearZero(newForward) {
		return
	}
	ls.setBasis(newForward, ls.up)
}

// LocalizeDirection expresses a world direction in (side, up, forward) coordinates.
func (ls LocalSpace) LocalizeDirection(global r3.Vec) r3.Vec {
	return r3.Vec{
		X: r3.Dot(global, ls.side),
		Y: r3.Dot(global, ls.up),
		Z: r3.Dot(global, ls.forward),
	}
}

// GlobalizeDirection maps a local (side, up, forward) direction to world space.
func (ls LocalSpace) GlobalizeDirection(local r3.Vec) r3.Vec {
	v := r3.Scale(local.X, ls.side)
	v = r3.Add(v, r3.Scale(local.Y, ls.up))
	return r3.Add(v, r3.Scale(local.Z, ls.forward))
}

// LocalizePosition expresses a world point relative to the frame.
func (ls LocalSpace) LocalizePosition(global r3.Vec) r3.Vec {
	return ls.LocalizeDirection(r3.Sub(global, ls.position))
}

// GlobalizePosition maps a local point to world space.
func (ls LocalSpace) GlobalizePosition(local r3.Vec) r3.Vec {
	return r3.Add(ls.position, ls.GlobalizeDirection(local))
}
