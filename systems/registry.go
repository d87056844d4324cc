package systems

import "github.com/pthm-cable/aquarium/telemetry"

// SystemInfo describes a frame phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "physics", "visual")
}

// SystemRegistry holds metadata about all frame phases.
// This centralizes naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the aquarium's phases in frame order.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseWater, Name: "Water", Description: "Propagates ripples and injects rain", Category: "environment"})
	r.Register(SystemInfo{ID: telemetry.PhaseSwim, Name: "Swim", Description: "Locomotion and soft body relaxation", Category: "physics"})
	r.Register(SystemInfo{ID: telemetry.PhaseBubbles, Name: "Bubbles", Description: "Spawns, lifts and bursts bubbles", Category: "physics"})
	r.Register(SystemInfo{ID: telemetry.PhasePick, Name: "Pick", Description: "Hover and click hit tests", Category: "input"})
	r.Register(SystemInfo{ID: telemetry.PhaseRender, Name: "Render", Description: "Draws pool, water and creatures", Category: "visual"})
	r.Register(SystemInfo{ID: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Window stats and CSV output", Category: "internal"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
