package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the observable scene state at one tick.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Tick    int32   `json:"tick"`
	SimTime float64 `json:"sim_time"`

	Jellies []JellyState `json:"jellies"`
	Bubbles int          `json:"bubbles"`

	WaterAmplitude float64 `json:"water_amplitude"`
}

// JellyState holds one jelly's locomotion state.
type JellyState struct {
	Name  string `json:"name"`
	Route string `json:"route"`
	State string `json:"state"`

	Position    [3]float64 `json:"position"`
	Velocity    [3]float64 `json:"velocity"`
	Orientation [4]float64 `json:"orientation"` // w, x, y, z
	Heading     float64    `json:"heading"`
	Pitch       float64    `json:"pitch"`
	Phase       float64    `json:"phase"`

	Steps    int `json:"steps"`
	Surfaced int `json:"surfaced"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Tick))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
