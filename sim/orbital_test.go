package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOrbital_LightTimeBounds checks the documented envelope: the perigee
// round trip lands near 2.37 s and the apogee surface link near 2.66 s.
func TestOrbital_LightTimeBounds(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	model, err := NewOrbitalLinkModel(cfg)
	require.NoError(t, err)

	perigee, err := model.LightTimeOver(cfg.LunarSurfaceDistanceKm(cfg.LunarPerigeeKm))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, perigee.RoundTripS, 2.36)
	assert.LessOrEqual(t, perigee.RoundTripS, 2.38)

	apogee, err := model.LightTimeOver(cfg.LunarSurfaceDistanceKm(cfg.LunarApogeeKm))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, apogee.RoundTripS, 2.65)
	assert.LessOrEqual(t, apogee.RoundTripS, 2.67)

	// A commonly quoted perigee center distance stays inside the same band.
	center, err := model.LightTimeOver(356500.0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, center.RoundTripS, 2.36)
	assert.LessOrEqual(t, center.RoundTripS, 2.38)

	assert.InDelta(t, perigee.RoundTripS, 2*perigee.OneWayS, 1e-12)
}

// TestOrbital_DistanceCycle verifies the cosine interpolation hits perigee
// at day 0, apogee at half a month, and perigee again at a full month.
func TestOrbital_DistanceCycle(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	model, err := NewOrbitalLinkModel(cfg)
	require.NoError(t, err)

	assert.InDelta(t, cfg.LunarPerigeeKm, model.StateAtDay(0).DistanceKm, 1e-6)
	assert.InDelta(t, cfg.LunarApogeeKm, model.StateAtDay(cfg.AnomalisticMonthDays/2).DistanceKm, 1e-6)
	assert.InDelta(t, cfg.LunarPerigeeKm, model.StateAtDay(cfg.AnomalisticMonthDays).DistanceKm, 1e-6)

	for day := 0.0; day <= cfg.AnomalisticMonthDays; day += 0.5 {
		d := model.StateAtDay(day).DistanceKm
		assert.GreaterOrEqual(t, d, cfg.LunarPerigeeKm-1e-6)
		assert.LessOrEqual(t, d, cfg.LunarApogeeKm+1e-6)
	}
}

// TestOrbital_SweepDeterministic verifies the month sweep is finite, ordered
// by phase, and restartable: two passes yield identical samples.
func TestOrbital_SweepDeterministic(t *testing.T) {
	model, err := NewOrbitalLinkModel(DefaultPhysicsConfig())
	require.NoError(t, err)

	sweep, err := model.MonthSweep(37)
	require.NoError(t, err)

	first := sweep.Collect()
	second := sweep.Collect()
	require.Len(t, first, 37)
	assert.Equal(t, first, second, "restarted sweep must reproduce the sample sequence")

	for i := 1; i < len(first); i++ {
		assert.Greater(t, first[i].PhaseDays, first[i-1].PhaseDays, "samples ordered by phase")
	}

	// A second sweep object with identical configuration agrees too.
	other, err := model.MonthSweep(37)
	require.NoError(t, err)
	assert.Equal(t, first, other.Collect())
}

func TestOrbital_InvalidInput(t *testing.T) {
	model, err := NewOrbitalLinkModel(DefaultPhysicsConfig())
	require.NoError(t, err)

	_, err = model.LightTimeOver(0)
	assert.True(t, errors.Is(err, ErrInvalidInput), "zero distance: got %v", err)

	_, err = model.MonthSweep(1)
	assert.True(t, errors.Is(err, ErrInvalidInput), "single-sample sweep: got %v", err)

	bad := DefaultPhysicsConfig()
	bad.LunarApogeeKm = bad.LunarPerigeeKm // degenerate orbit
	_, err = NewOrbitalLinkModel(bad)
	assert.True(t, errors.Is(err, ErrInvalidInput), "degenerate orbit: got %v", err)
}
