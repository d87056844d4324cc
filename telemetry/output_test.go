package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	require.Nil(t, om)

	// A nil manager discards everything.
	assert.NoError(t, om.WriteSurfacing(SurfacingEvent{}))
	assert.NoError(t, om.WriteDrop(DropEvent{}))
	assert.NoError(t, om.WriteWindow(WindowStats{}, PerfReport{}))
	assert.NoError(t, om.WriteConfig(nil))
	path, err := om.WriteSnapshot(&Snapshot{})
	assert.NoError(t, err)
	assert.Empty(t, path)
	assert.NoError(t, om.Close())
}

func TestOutputManagerWritesStreams(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, om.WriteSurfacing(SurfacingEvent{Tick: int32(i), Name: "Coral", Route: "/now"}))
		require.NoError(t, om.WriteDrop(DropEvent{Tick: int32(i), Source: DropRain, Radius: 0.04}))
		require.NoError(t, om.WriteDrop(DropEvent{Tick: int32(i), Source: DropSurfacing, Radius: 0.08}))
		require.NoError(t, om.WriteWindow(WindowStats{WindowEndTick: int32(i), Surfacings: i}, PerfReport{StepsPerFrame: 3}))
	}
	require.NoError(t, om.Close())

	tests := []struct {
		file   string
		header string
		rows   int
	}{
		{"surfacings.csv", "tick,sim_time,name,route", 2},
		{"drops.csv", "tick,sim_time,source,sim_x,sim_y,radius,strength", 4},
		{"windows.csv", "window_end,sim_time,jellies", 2},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			lines := readLines(t, filepath.Join(dir, tt.file))
			require.Len(t, lines, tt.rows+1)
			assert.True(t, strings.HasPrefix(lines[0], tt.header), lines[0])
		})
	}

	header := readLines(t, filepath.Join(dir, "windows.csv"))[0]
	assert.Contains(t, header, "max_violation")
	assert.Contains(t, header, "steps_per_frame")
	assert.Contains(t, header, "solver_ns_per_step")

	drops := readLines(t, filepath.Join(dir, "drops.csv"))
	assert.True(t, strings.HasPrefix(drops[1], "0,0,rain,"), drops[1])
	assert.True(t, strings.HasPrefix(drops[2], "0,0,surfacing,"), drops[2])
}

func TestOutputManagerCreatesFilesLazily(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	require.NoError(t, err)
	require.NoError(t, om.WriteDrop(DropEvent{Source: DropBubble}))
	require.NoError(t, om.Close())

	assert.FileExists(t, filepath.Join(dir, "drops.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "surfacings.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "windows.csv"))

	// Closing twice is harmless.
	assert.NoError(t, om.Close())
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	snap := &Snapshot{
		Version: SnapshotVersion,
		RNGSeed: 7,
		Tick:    42,
		Jellies: []JellyState{{Name: "Gold", Route: "/uses", Position: [3]float64{1, 2, 3}, Surfaced: 2}},
	}
	path, err := SaveSnapshot(snap, dir)
	require.NoError(t, err)
	assert.Equal(t, "snapshot_42.json", filepath.Base(path))

	back, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), back.RNGSeed)
	require.Len(t, back.Jellies, 1)
	assert.Equal(t, snap.Jellies[0].Position, back.Jellies[0].Position)
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveSnapshot(&Snapshot{Version: SnapshotVersion + 1}, dir)
	require.NoError(t, err)

	_, err = LoadSnapshot(path)
	assert.Error(t, err)
}
