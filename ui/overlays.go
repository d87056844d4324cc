package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies a toggle.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayWireframe     OverlayID = "wireframe"
	OverlayInnerLinks    OverlayID = "inner_links"
	OverlayHitSpheres    OverlayID = "hit_spheres"
	OverlayHeadings      OverlayID = "headings"
	OverlaySwimBounds    OverlayID = "swim_bounds"
	OverlayPerf          OverlayID = "perf"
	OverlayClickSurfaces OverlayID = "click_surfaces"
)

// OverlayDescriptor defines a toggle.
type OverlayDescriptor struct {
	ID          OverlayID // Unique identifier
	Name        string    // Display name
	Description string    // What this toggle does
	Key         int32     // Keyboard key to toggle (0 = no key)
	KeyLabel    string    // Key label for display (e.g., "W")
	Category    string    // Grouping (e.g., "render", "debug")
	Default     bool      // Initial state
}

// OverlayRegistry manages toggle state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the aquarium toggles.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayWireframe,
		Name:        "Wireframe",
		Description: "Draw bell, tail and mouth faces as edges",
		Key:         rl.KeyW,
		KeyLabel:    "W",
		Category:    "render",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayInnerLinks,
		Name:        "Inner Links",
		Description: "Show the tripod and radial links holding the bell",
		Key:         rl.KeyI,
		KeyLabel:    "I",
		Category:    "render",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayHitSpheres,
		Name:        "Hit Spheres",
		Description: "Show the pick sphere around each bell",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayHeadings,
		Name:        "Headings",
		Description: "Show swim direction and velocity",
		Key:         rl.KeyV,
		KeyLabel:    "V",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlaySwimBounds,
		Name:        "Swim Bounds",
		Description: "Show the volume the jellies are steered back into",
		Key:         rl.KeyB,
		KeyLabel:    "B",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Perf",
		Description: "Show frame phase timings",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayClickSurfaces,
		Name:        "Click Surfaces",
		Description: "Clicking a jelly also sends it to the surface",
		Key:         rl.KeyC,
		KeyLabel:    "C",
		Category:    "interaction",
		Default:     true,
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if _, ok := r.byID[desc.ID]; !ok {
		r.descriptors = append(r.descriptors, desc)
	}
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.byID[id]; ok {
		r.enabled[id] = enabled
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// Get returns an overlay descriptor by ID.
func (r *OverlayRegistry) Get(id OverlayID) (OverlayDescriptor, bool) {
	desc, ok := r.byID[id]
	return desc, ok
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

// Keys returns every key bound to a toggle.
func (r *OverlayRegistry) Keys() []int32 {
	var keys []int32
	for _, desc := range r.descriptors {
		if desc.Key != 0 {
			keys = append(keys, desc.Key)
		}
	}
	return keys
}
