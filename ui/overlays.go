package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayGrid     OverlayID = "grid"
	OverlayAimGuide OverlayID = "aim_guide"
	OverlayBaseline OverlayID = "baseline"
	OverlayCellKeys OverlayID = "cell_keys"
	OverlayPerf     OverlayID = "perf"
	OverlayInspect  OverlayID = "inspect"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // keyboard key to toggle (0 = no key)
	KeyLabel    string // key label for display
	Category    string
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays. The aim guide
// and baseline plane start enabled.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	reg.enabled[OverlayAimGuide] = true
	reg.enabled[OverlayBaseline] = true
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayAimGuide,
		Name:        "Aim Guide",
		Description: "Dotted line along the launch direction",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "play",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayBaseline,
		Name:        "Baseline",
		Description: "Plane at the loss row",
		Key:         rl.KeyB,
		KeyLabel:    "B",
		Category:    "play",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayGrid,
		Name:        "Lattice Grid",
		Description: "Wireframe of the play volume",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayCellKeys,
		Name:        "Cell Keys",
		Description: "Label the cell under each bubble",
		Key:         rl.KeyK,
		KeyLabel:    "K",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Frame time by phase",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayInspect,
		Name:        "Inspector",
		Description: "Click a bubble to inspect it",
		Key:         rl.KeyI,
		KeyLabel:    "I",
		Category:    "debug",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
}

// Toggle switches an overlay on or off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
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

// Categories returns all unique categories in order.
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

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// Keys returns every bound toggle key.
func (r *OverlayRegistry) Keys() []int32 {
	keys := make([]int32, 0, len(r.descriptors))
	for _, desc := range r.descriptors {
		if desc.Key != 0 {
			keys = append(keys, desc.Key)
		}
	}
	return keys
}
