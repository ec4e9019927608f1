package sim

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/components"
	"github.com/pthm-cable/steer/telemetry"
)

// recordEvents turns this tick's intents into telemetry events and resolves
// captures.
func (s *Sim) recordEvents() {
	p := s.parallel
	nearMiss := s.cfg.Telemetry.NearMissDistance

	if cap(p.captured) < len(p.snapshots) {
		p.captured = make([]bool, len(p.snapshots))
	}
	p.captured = p.captured[:len(p.snapshots)]
	clear(p.captured)

	for i := range p.snapshots {
		snap := &p.snapshots[i]
		in := &p.intents[i]

		// Count each close pair once: mutual nearest pairs from the lower ID
		if j := in.Nearest; j >= 0 {
			mutual := p.intents[j].Nearest == i
			if !mutual || snap.Agent.ID < p.snapshots[j].Agent.ID {
				other := p.snapshots[j].Agent.ID
				switch {
				case in.NearestGap < 0:
					s.collector.Record(telemetry.NewContactEvent(s.tick, snap.Agent.ID, other, in.NearestGap))
				case in.NearestGap < nearMiss:
					s.collector.Record(telemetry.NewNearMissEvent(s.tick, snap.Agent.ID, other, in.NearestGap))
				}
			}
		}

		if snap.Agent.Role == components.RolePathFollower && s.path != nil {
			if in.Outside > 0 && snap.PathFollow.Outside <= 0 {
				s.collector.Record(telemetry.NewPathExitEvent(s.tick, snap.Agent.ID, in.Outside))
			}
		}

		if q := in.Captured; q >= 0 && !p.captured[q] {
			p.captured[q] = true
			s.collector.Record(telemetry.NewCaptureEvent(s.tick, snap.Agent.ID, p.snapshots[q].Agent.ID))
			if v := s.vehicleMap.Get(p.snapshots[q].Entity); v != nil {
				s.respawn(v)
			}
		}
	}
}

// sampleAgents gathers the per-agent distributions for a stats window from
// the last tick.
func (s *Sim) sampleAgents() *telemetry.Sample {
	p := s.parallel
	sample := &s.sample
	sample.Reset()

	for i := range p.snapshots {
		snap := &p.snapshots[i]
		in := &p.intents[i]

		sample.Speeds = append(sample.Speeds, snap.Vehicle.Speed())
		sample.Headings = append(sample.Headings, snap.Vehicle.Forward())
		sample.SteerMagnitudes = append(sample.SteerMagnitudes, r3.Norm(in.Force))
		if !math.IsInf(in.NearestDist, 1) {
			sample.NearestDistances = append(sample.NearestDistances, in.NearestDist)
		}
		if snap.Agent.Role == components.RolePathFollower && s.path != nil {
			sample.PathOutside = append(sample.PathOutside, in.Outside)
		}
	}
	return sample
}

// flushTelemetry checks if the stats window should be flushed and handles
// bookmarks. force flushes a partial window.
func (s *Sim) flushTelemetry(force bool) {
	if force {
		if !s.collector.HasPending(s.tick) {
			return
		}
	} else if !s.collector.ShouldFlush(s.tick) {
		return
	}

	stats := s.collector.Flush(s.tick, s.sampleAgents())
	stats.RunID = s.runID
	s.lastStats = stats
	perfStats := s.perf.Stats()

	if s.opts.StatsCallback != nil {
		s.opts.StatsCallback(stats)
	}

	if s.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.opts.Output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := s.opts.Output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range s.bookmarks.Check(stats) {
		if s.opts.LogStats {
			bm.LogBookmark()
		}
		if err := s.opts.Output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}
