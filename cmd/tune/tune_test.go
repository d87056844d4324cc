package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/aquarium/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Load("")
	require.NoError(t, err)

	raw := pv.Extract(cfg)
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		assert.InDelta(t, raw[i], back[i], 1e-9, pv.Specs[i].Name)
	}
}

func TestParamVectorApplyClamps(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Load("")
	require.NoError(t, err)

	values := make([]float64, pv.Dim())
	for i := range values {
		values[i] = 1e6
	}
	pv.Apply(cfg, values)
	for i, s := range pv.Specs {
		assert.Equal(t, s.Max, pv.Extract(cfg)[i], s.Name)
	}
}

func TestScore(t *testing.T) {
	assert.Zero(t, Score(RunResult{MeanSpeed: 0.3}, 0.3))
	assert.Greater(t, Score(RunResult{MeanSpeed: 0.3, MaxStretch: 0.1}, 0.3), 0.0)
	assert.InDelta(t, 0.01, Score(RunResult{MeanSpeed: 0.4}, 0.3), 1e-12)
}

func TestRunIsDeterministic(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	a := Run(cfg, 7, 3)
	b := Run(cfg, 7, 3)
	assert.Equal(t, a, b)
	assert.Greater(t, a.MeanSpeed, 0.0)
}
