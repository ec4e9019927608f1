package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Overlay IDs.
const (
	OverlayAnnotations OverlayID = "annotations"
	OverlayFlowField   OverlayID = "flow_field"
	OverlayPath        OverlayID = "path"
	OverlayObstacles   OverlayID = "obstacles"
	OverlayBounds      OverlayID = "bounds"
	OverlayFollow      OverlayID = "follow"
	OverlayTuning      OverlayID = "tuning"
	OverlayStats       OverlayID = "stats"
	OverlayPerf        OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID        OverlayID
	Name      string
	Key       int32  // 0 = no key
	KeyLabel  string // e.g. "A"
	Category  string // "scene", "debug" or "panels"
	Default   bool   // enabled at startup
	Exclusive []OverlayID
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the standard overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	for _, desc := range defaultOverlays() {
		reg.Register(desc)
	}
	return reg
}

func defaultOverlays() []OverlayDescriptor {
	return []OverlayDescriptor{
		{ID: OverlayPath, Name: "Pathway", Key: rl.KeyP, KeyLabel: "P", Category: "scene", Default: true},
		{ID: OverlayObstacles, Name: "Obstacles", Key: rl.KeyO, KeyLabel: "O", Category: "scene", Default: true},
		{ID: OverlayBounds, Name: "World Bounds", Key: rl.KeyB, KeyLabel: "B", Category: "scene", Default: true},
		{ID: OverlayFlowField, Name: "Flow Field", Key: rl.KeyG, KeyLabel: "G", Category: "scene"},

		{ID: OverlayAnnotations, Name: "Annotations", Key: rl.KeyA, KeyLabel: "A", Category: "debug"},
		{ID: OverlayFollow, Name: "Follow Selected", Key: rl.KeyF, KeyLabel: "F", Category: "debug"},

		// The tuning panel and the perf panel share the right edge.
		{ID: OverlayTuning, Name: "Tuning", Key: rl.KeyT, KeyLabel: "T", Category: "panels", Exclusive: []OverlayID{OverlayPerf}},
		{ID: OverlayStats, Name: "Window Stats", Key: rl.KeyS, KeyLabel: "S", Category: "panels", Default: true},
		{ID: OverlayPerf, Name: "Performance", Key: rl.KeyF3, KeyLabel: "F3", Category: "panels", Exclusive: []OverlayID{OverlayTuning}},
	}
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on or off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled sets an overlay's state. Enabling an overlay disables its
// exclusive partners.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in registration order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay ID, its new state, and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// EnabledOverlays returns the enabled overlay IDs in registration order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, desc := range r.descriptors {
		if r.enabled[desc.ID] {
			result = append(result, desc.ID)
		}
	}
	return result
}
