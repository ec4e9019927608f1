package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/steer/config"
	"github.com/pthm-cable/steer/telemetry"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-12 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, def[i], back[i])
		}
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s default %v, config has %v", spec.Path, spec.Default, got[i])
		}
		if spec.Default < spec.Min || spec.Default > spec.Max {
			t.Errorf("%s default %v outside [%v, %v]", spec.Path, spec.Default, spec.Min, spec.Max)
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()

	values := make([]float64, pv.Dim())
	for i := range values {
		values[i] = 1e6
	}
	pv.ApplyToConfig(cfg, values)

	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if got[i] != spec.Max {
			t.Errorf("%s = %v, want clamped to %v", spec.Path, got[i], spec.Max)
		}
	}
	if cfg.Derived.NeighborRadius != 25 {
		t.Errorf("derived neighbor radius = %v, want 25", cfg.Derived.NeighborRadius)
	}
}

func TestSummarizeSkipsWarmup(t *testing.T) {
	windows := []telemetry.WindowStats{
		{NearestP50: 100, Polarization: 0, Agents: 10},
		{NearestP50: 2, Polarization: 0.8, Agents: 10, Contacts: 5},
		{NearestP50: 4, Polarization: 0.6, Agents: 10, Contacts: 1},
	}
	s := summarize(windows)
	if s.Windows != 2 {
		t.Fatalf("Windows = %d, want 2", s.Windows)
	}
	if math.Abs(s.NearestP50-3) > 1e-12 || math.Abs(s.Polarization-0.7) > 1e-12 {
		t.Errorf("summary = %+v", s)
	}
	if math.Abs(s.Contacts-0.3) > 1e-12 {
		t.Errorf("contacts per agent = %v, want 0.3", s.Contacts)
	}
}

func TestComputeFitness(t *testing.T) {
	fe := &FitnessEvaluator{targetSpacing: 3}

	perfect := fe.computeFitness(runSummary{NearestP50: 3, Polarization: 1, Windows: 1})
	if perfect != 0 {
		t.Errorf("perfect flock scored %v", perfect)
	}
	loose := fe.computeFitness(runSummary{NearestP50: 6, Polarization: 1, Windows: 1})
	if loose <= perfect {
		t.Error("spacing error should add cost")
	}
	if !math.IsInf(fe.computeFitness(runSummary{}), 1) {
		t.Error("a run with no windows should score +Inf")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    string
		want string
	}{
		{"75s", "1m15s"},
		{"2h3m4s", "2h03m04s"},
	}
	for _, tt := range tests {
		d, _ := time.ParseDuration(tt.d)
		if got := formatDuration(d); got != tt.want {
			t.Errorf("formatDuration(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
