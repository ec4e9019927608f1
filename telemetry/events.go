// Package telemetry provides flock health tracking, bookmarking, and CSV output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventNearMiss EventType = iota // surfaces came within the near-miss gap
	EventContact                   // surfaces overlapped
	EventCapture                   // a pursuer touched an evader
	EventPathExit                  // a path follower left the corridor
)

// Event represents a single telemetry event.
type Event struct {
	Type    EventType
	Tick    int32
	AgentID uint32
	OtherID uint32  // second agent for pairwise events
	Amount  float64 // surface gap, or distance outside the path
}

// NewNearMissEvent creates a near-miss event between two agents.
func NewNearMissEvent(tick int32, a, b uint32, gap float64) Event {
	return Event{Type: EventNearMiss, Tick: tick, AgentID: a, OtherID: b, Amount: gap}
}

// NewContactEvent creates an overlap event between two agents.
func NewContactEvent(tick int32, a, b uint32, gap float64) Event {
	return Event{Type: EventContact, Tick: tick, AgentID: a, OtherID: b, Amount: gap}
}

// NewCaptureEvent records a pursuer reaching an evader.
func NewCaptureEvent(tick int32, pursuerID, evaderID uint32) Event {
	return Event{Type: EventCapture, Tick: tick, AgentID: pursuerID, OtherID: evaderID}
}

// NewPathExitEvent records a path follower crossing out of the corridor.
func NewPathExitEvent(tick int32, agentID uint32, outside float64) Event {
	return Event{Type: EventPathExit, Tick: tick, AgentID: agentID, Amount: outside}
}
