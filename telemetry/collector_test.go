package telemetry

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	if c.WindowDurationTicks() != 10 {
		t.Fatalf("WindowDurationTicks = %d, want 10", c.WindowDurationTicks())
	}
	if c.ShouldFlush(9) {
		t.Error("ShouldFlush(9) = true before window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("ShouldFlush(10) = false at window end")
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0.001, 0.1)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("WindowDurationTicks = %d, want 1", c.WindowDurationTicks())
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.5)

	c.Record(NewNearMissEvent(1, 1, 2, 0.2))
	c.Record(NewNearMissEvent(1, 3, 4, 0.1))
	c.Record(NewContactEvent(2, 1, 2, -0.1))
	c.Record(NewCaptureEvent(2, 7, 8))
	c.Record(NewPathExitEvent(2, 9, 0.5))

	sample := &Sample{
		Speeds:           []float64{1, 3},
		Headings:         []r3.Vec{{Z: 1}, {Z: 1}},
		NearestDistances: []float64{2, 4},
		PathOutside:      []float64{-1, 0},
		SteerMagnitudes:  []float64{0.5, 1.5},
	}
	stats := c.Flush(4, sample)

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 4 {
		t.Errorf("window = [%d, %d], want [0, 4]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.SimTimeSec != 2 {
		t.Errorf("SimTimeSec = %v, want 2", stats.SimTimeSec)
	}
	if stats.Agents != 2 || stats.SpeedMean != 2 || stats.Polarization != 1 {
		t.Errorf("motion stats wrong: %+v", stats)
	}
	if stats.NearestMean != 3 || stats.PathOutsideMean != -0.5 || stats.SteerMean != 1 {
		t.Errorf("distribution stats wrong: %+v", stats)
	}
	if stats.NearMisses != 2 || stats.Contacts != 1 || stats.Captures != 1 || stats.PathExits != 1 {
		t.Errorf("event counts wrong: %+v", stats)
	}

	// counters reset and the next window starts where this one ended
	sample.Reset()
	next := c.Flush(6, sample)
	if next.WindowStartTick != 4 || next.NearMisses != 0 || next.Agents != 0 {
		t.Errorf("next window not reset: %+v", next)
	}
}
