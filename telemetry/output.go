package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/aquarium/config"
)

// WindowRow is one windows.csv line: the window stats followed by the
// frame cost averaged at flush time.
type WindowRow struct {
	WindowStats
	PerfRow
}

// csvLog appends rows of T to one file. The file and its header are
// written on the first row, so a run without events leaves no file.
type csvLog[T any] struct {
	path string
	f    *os.File
}

func (l *csvLog[T]) append(row T) error {
	rows := []T{row}
	if l.f != nil {
		return gocsv.MarshalWithoutHeaders(rows, l.f)
	}
	f, err := os.Create(l.path)
	if err != nil {
		return err
	}
	l.f = f
	return gocsv.Marshal(rows, f)
}

func (l *csvLog[T]) close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// OutputManager writes a run's surfacings, drops and window rows as CSV
// next to its config and final snapshot. A nil manager discards output.
type OutputManager struct {
	dir        string
	surfacings csvLog[SurfacingEvent]
	drops      csvLog[DropEvent]
	windows    csvLog[WindowRow]
}

// NewOutputManager creates dir. It returns nil for an empty dir.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &OutputManager{
		dir:        dir,
		surfacings: csvLog[SurfacingEvent]{path: filepath.Join(dir, "surfacings.csv")},
		drops:      csvLog[DropEvent]{path: filepath.Join(dir, "drops.csv")},
		windows:    csvLog[WindowRow]{path: filepath.Join(dir, "windows.csv")},
	}, nil
}

// WriteConfig saves the effective configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteSurfacing appends a row to surfacings.csv.
func (om *OutputManager) WriteSurfacing(e SurfacingEvent) error {
	if om == nil {
		return nil
	}
	if err := om.surfacings.append(e); err != nil {
		return fmt.Errorf("writing surfacing: %w", err)
	}
	return nil
}

// WriteDrop appends a row to drops.csv.
func (om *OutputManager) WriteDrop(e DropEvent) error {
	if om == nil {
		return nil
	}
	if err := om.drops.append(e); err != nil {
		return fmt.Errorf("writing drop: %w", err)
	}
	return nil
}

// WriteWindow appends a flushed window and the current frame cost to
// windows.csv.
func (om *OutputManager) WriteWindow(stats WindowStats, perf PerfReport) error {
	if om == nil {
		return nil
	}
	if err := om.windows.append(WindowRow{WindowStats: stats, PerfRow: perf.Row()}); err != nil {
		return fmt.Errorf("writing window: %w", err)
	}
	return nil
}

// WriteSnapshot saves the scene state as JSON and returns its path.
func (om *OutputManager) WriteSnapshot(snap *Snapshot) (string, error) {
	if om == nil {
		return "", nil
	}
	return SaveSnapshot(snap, om.dir)
}

// Close closes every file opened so far.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.surfacings.close(), om.drops.close(), om.windows.close())
}
