// Package components defines ECS components for the simulation.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/steer"
)

// Role selects which steering blend an agent runs.
type Role uint8

const (
	RoleBoid         Role = iota // flocks with other boids
	RolePursuer                  // chases the nearest evader
	RoleEvader                   // flocks, and flees pursuers in range
	RolePathFollower             // follows the shared pathway
	RoleWanderer                 // wanders at cruising speed
)

// String returns the display name for a Role.
func (r Role) String() string {
	names := RoleNames()
	if int(r) < len(names) {
		return names[r]
	}
	return "Unknown"
}

// RoleNames returns the display names for all roles.
// The order matches the Role constants.
func RoleNames() []string {
	return []string{"Boid", "Pursuer", "Evader", "PathFollower", "Wanderer"}
}

// RoleCount returns the number of roles.
func RoleCount() int {
	return len(RoleNames())
}

// Agent identifies a simulated agent.
type Agent struct {
	ID   uint32
	Role Role
	Seed uint64 // seeds the agent's private RNG
}

// Wander holds the wander behavior's random-walk state between ticks.
type Wander struct {
	State steer.WanderState
}

// PathFollow holds an agent's progress along the shared pathway.
// Agents of other roles carry it with a zero Direction.
type PathFollow struct {
	Direction float64 // +1 forward along the path, -1 backward
	Outside   float64 // distance outside the corridor on the last tick
}

// Steering records the force applied on the last tick.
type Steering struct {
	Force r3.Vec
}
