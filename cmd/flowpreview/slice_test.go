package main

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/steer/config"
	"github.com/pthm-cable/steer/geom"
)

func TestSampleSliceUniform(t *testing.T) {
	field := geom.UniformFlowField{Flow: r3.Vec{X: 3, Z: 4}}
	s := sampleSlice(field, 4, 10, 0)

	if len(s.Flow) != 16 {
		t.Fatalf("got %d samples, want 16", len(s.Flow))
	}
	if s.Min != 5 || s.Max != 5 || math.Abs(s.Mean-5) > 1e-12 {
		t.Errorf("stats = %v/%v/%v, want all 5", s.Min, s.Max, s.Mean)
	}
	for i, p := range s.colors() {
		if p != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
			t.Fatalf("pixel %d = %v, want white at max", i, p)
		}
	}
}

func TestSampleSliceNoiseVaries(t *testing.T) {
	field := geom.NewNoiseFlowField(1, 0.05, 1, 0)
	s := sampleSlice(field, 16, 60, 0)
	if s.Max <= s.Min {
		t.Errorf("noise slice is flat: min %v max %v", s.Min, s.Max)
	}
}

func TestRampEnds(t *testing.T) {
	if got := ramp(0); got != (color.RGBA{R: 10, G: 20, B: 60, A: 255}) {
		t.Errorf("ramp(0) = %v", got)
	}
	if got := ramp(2); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("ramp(2) = %v", got)
	}
}

func TestFlowYAMLParses(t *testing.T) {
	snippet, err := flowYAML(previewParams{Scale: 0.05, Strength: 2, Speed: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(snippet, "flow:") {
		t.Errorf("snippet should start with the flow key:\n%s", snippet)
	}

	var cfg config.Config
	if err := yaml.Unmarshal([]byte(snippet), &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Flow.Kind != "noise" || cfg.Flow.Strength != 2 || cfg.Flow.Speed != 0.5 {
		t.Errorf("round-tripped flow = %+v", cfg.Flow)
	}
}
