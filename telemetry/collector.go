package telemetry

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Sample is the per-agent state gathered at the end of a window.
type Sample struct {
	Speeds           []float64
	Headings         []r3.Vec // unit forward vectors
	NearestDistances []float64
	PathOutside      []float64 // path followers only
	SteerMagnitudes  []float64
}

// Reset empties the sample while keeping its buffers.
func (s *Sample) Reset() {
	s.Speeds = s.Speeds[:0]
	s.Headings = s.Headings[:0]
	s.NearestDistances = s.NearestDistances[:0]
	s.PathOutside = s.PathOutside[:0]
	s.SteerMagnitudes = s.SteerMagnitudes[:0]
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	// Event counters for current window
	nearMisses int
	contacts   int
	captures   int
	pathExits  int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts an event toward the current window.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventNearMiss:
		c.nearMisses++
	case EventContact:
		c.contacts++
	case EventCapture:
		c.captures++
	case EventPathExit:
		c.pathExits++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s *Sample) WindowStats {
	speedMean, speedStd := ComputeSpread(s.Speeds)
	nnMean, nnP10, nnP50, nnP90 := ComputeDistribution(s.NearestDistances)
	outsideMean, _ := ComputeSpread(s.PathOutside)
	steerMean, _ := ComputeSpread(s.SteerMagnitudes)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Agents: len(s.Speeds),

		SpeedMean:    speedMean,
		SpeedStd:     speedStd,
		Polarization: Polarization(s.Headings),
		SteerMean:    steerMean,

		NearestMean: nnMean,
		NearestP10:  nnP10,
		NearestP50:  nnP50,
		NearestP90:  nnP90,

		PathOutsideMean: outsideMean,

		NearMisses: c.nearMisses,
		Contacts:   c.contacts,
		Captures:   c.captures,
		PathExits:  c.pathExits,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.nearMisses = 0
	c.contacts = 0
	c.captures = 0
	c.pathExits = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

// HasPending reports whether ticks have elapsed since the last flush.
func (c *Collector) HasPending(currentTick int32) bool {
	return currentTick > c.windowStartTick
}
