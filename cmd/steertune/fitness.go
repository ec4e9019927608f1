package main

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/steer/config"
	"github.com/pthm-cable/steer/sim"
	"github.com/pthm-cable/steer/telemetry"
)

// Fitness weights. Spacing error is relative to the target spacing.
const (
	spacingWeight      = 1.0
	polarizationWeight = 1.0
	contactWeight      = 0.5 // per contact per agent per window
	warmupWindows      = 1   // windows ignored while the flock forms
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params        *ParamVector
	maxTicks      int
	seeds         []int64
	baseConfig    *config.Config
	targetSpacing float64

	mu          sync.Mutex
	lastSummary runSummary
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config, targetSpacing float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:        params,
		maxTicks:      maxTicks,
		seeds:         seeds,
		baseConfig:    baseCfg,
		targetSpacing: targetSpacing,
	}
}

// runSummary averages the scored windows of one or more runs.
type runSummary struct {
	NearestP50   float64
	Polarization float64
	Contacts     float64 // per agent per window
	Windows      int
}

// LastSummary returns the averaged metrics from the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() runSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Seeds run in parallel; a failed run scores +Inf.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	summaries := make([]runSummary, len(fe.seeds))

	g, ctx := errgroup.WithContext(context.Background())
	for i, seed := range fe.seeds {
		g.Go(func() error {
			s, err := fe.runSimulation(ctx, x, seed)
			summaries[i] = s
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return math.Inf(1)
	}

	var total runSummary
	for _, s := range summaries {
		total.NearestP50 += s.NearestP50
		total.Polarization += s.Polarization
		total.Contacts += s.Contacts
		total.Windows += s.Windows
	}
	n := float64(len(summaries))
	avg := runSummary{
		NearestP50:   total.NearestP50 / n,
		Polarization: total.Polarization / n,
		Contacts:     total.Contacts / n,
		Windows:      total.Windows,
	}

	fe.mu.Lock()
	fe.lastSummary = avg
	fe.mu.Unlock()

	return fe.computeFitness(avg)
}

// runSimulation runs one seed to maxTicks and averages its stats windows.
func (fe *FitnessEvaluator) runSimulation(ctx context.Context, x []float64, seed int64) (runSummary, error) {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	var windows []telemetry.WindowStats
	s, err := sim.New(&cfg, sim.Options{
		Seed:    seed,
		Workers: 1, // seeds already run in parallel
		StatsCallback: func(w telemetry.WindowStats) {
			windows = append(windows, w)
		},
	})
	if err != nil {
		return runSummary{}, err
	}
	if err := s.Run(ctx, fe.maxTicks); err != nil {
		return runSummary{}, err
	}
	if err := s.Close(); err != nil {
		return runSummary{}, err
	}
	return summarize(windows), nil
}

// summarize averages the windows after warmup. With too few windows it uses
// all of them.
func summarize(windows []telemetry.WindowStats) runSummary {
	if len(windows) > warmupWindows {
		windows = windows[warmupWindows:]
	}
	var s runSummary
	for _, w := range windows {
		s.NearestP50 += w.NearestP50
		s.Polarization += w.Polarization
		if w.Agents > 0 {
			s.Contacts += float64(w.Contacts) / float64(w.Agents)
		}
	}
	if n := float64(len(windows)); n > 0 {
		s.NearestP50 /= n
		s.Polarization /= n
		s.Contacts /= n
	}
	s.Windows = len(windows)
	return s
}

// computeFitness scores a summary: squared relative spacing error, missing
// alignment, and contacts all add cost.
func (fe *FitnessEvaluator) computeFitness(s runSummary) float64 {
	if s.Windows == 0 {
		return math.Inf(1)
	}
	spacing := (s.NearestP50 - fe.targetSpacing) / fe.targetSpacing
	return spacingWeight*spacing*spacing +
		polarizationWeight*(1-s.Polarization) +
		contactWeight*s.Contacts
}
