// Package main provides CMA-ES tuning of flocking parameters.
package main

import (
	"github.com/pthm-cable/steer/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value

	field func(*config.Config) *float64
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "sep_weight", Path: "steering.separation.weight", Min: 0, Max: 12, Default: 4.0,
				field: func(c *config.Config) *float64 { return &c.Steering.Separation.Weight }},
			{Name: "sep_distance", Path: "steering.separation.max_distance", Min: 1, Max: 12, Default: 5.0,
				field: func(c *config.Config) *float64 { return &c.Steering.Separation.MaxDistance }},
			{Name: "ali_weight", Path: "steering.alignment.weight", Min: 0, Max: 12, Default: 2.0,
				field: func(c *config.Config) *float64 { return &c.Steering.Alignment.Weight }},
			{Name: "ali_distance", Path: "steering.alignment.max_distance", Min: 1, Max: 20, Default: 7.5,
				field: func(c *config.Config) *float64 { return &c.Steering.Alignment.MaxDistance }},
			{Name: "coh_weight", Path: "steering.cohesion.weight", Min: 0, Max: 12, Default: 1.5,
				field: func(c *config.Config) *float64 { return &c.Steering.Cohesion.Weight }},
			{Name: "coh_distance", Path: "steering.cohesion.max_distance", Min: 1, Max: 25, Default: 9.0,
				field: func(c *config.Config) *float64 { return &c.Steering.Cohesion.MaxDistance }},
			{Name: "cruise_speed", Path: "steering.cruise_speed", Min: 0.2, Max: 1.0, Default: 0.6,
				field: func(c *config.Config) *float64 { return &c.Steering.CruiseSpeed }},
			{Name: "wander_weight", Path: "steering.wander_weight", Min: 0, Max: 3, Default: 1.0,
				field: func(c *config.Config) *float64 { return &c.Steering.WanderWeight }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped values into cfg and refreshes derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.Specs[i].field(cfg) = v
	}
	cfg.Recompute()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = *spec.field(cfg)
	}
	return v
}
