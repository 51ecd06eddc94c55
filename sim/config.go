package sim

import "fmt"

// PhysicsConfig carries every physical constant the models consume. Nothing
// in the package reads a global: tests substitute alternative constants by
// passing a modified config.
//
// Distance convention: WindingFactor is a multiplier on straight-line
// distance (1.30 means the fiber run is 30% longer than the great circle).
// Lunar perigee/apogee are Earth-Moon center-to-center distances; surface
// link distances subtract both body radii.
type PhysicsConfig struct {
	// SpeedOfLightKmPerS is c in vacuum, km/s.
	SpeedOfLightKmPerS float64

	// FiberRefractiveIndex slows light in glass relative to vacuum.
	FiberRefractiveIndex float64

	// WindingFactor inflates straight-line distance to approximate real
	// cable routing. Must be >= 1.
	WindingFactor float64

	EarthRadiusKm float64
	MoonRadiusKm  float64

	// Earth-Moon center distances at the closest and farthest points of the
	// lunar orbit.
	LunarPerigeeKm float64
	LunarApogeeKm  float64

	// AnomalisticMonthDays is the perigee-to-perigee period driving the
	// distance cycle; SiderealMonthDays drives the libration cycle.
	AnomalisticMonthDays float64
	SiderealMonthDays    float64

	// LibrationAmplitudeDeg is the peak longitudinal libration swing of the
	// sub-Earth point.
	LibrationAmplitudeDeg float64

	// LunarSiteLongitudeDeg places the surface site in selenographic
	// longitude. The default sits just past the near-side limb.
	LunarSiteLongitudeDeg float64

	// Relay orbit, reduced to a duty-cycle model: the relay repeats a
	// RelayPeriodDays cycle and is unusable for the leading
	// RelayOutageFraction of each cycle.
	RelayPeriodDays     float64
	RelayOutageFraction float64

	// RelayExtraPathKm is the added path length of the two relay legs
	// (Earth<->relay plus relay<->site) over the direct line.
	RelayExtraPathKm float64

	// DTNContactWaitMs is the assumed average wait until the next scheduled
	// contact window when no visibility schedule is supplied.
	DTNContactWaitMs float64

	// HandshakeOverheadMs is fixed per-connection protocol processing time
	// added on top of round-trip costs.
	HandshakeOverheadMs float64
}

// DefaultPhysicsConfig returns the calibrated constants used throughout the
// documentation examples.
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		SpeedOfLightKmPerS:    299792.458,
		FiberRefractiveIndex:  1.47,
		WindingFactor:         1.30,
		EarthRadiusKm:         6371.0,
		MoonRadiusKm:          1737.4,
		LunarPerigeeKm:        363300.0,
		LunarApogeeKm:         405500.0,
		AnomalisticMonthDays:  27.55455,
		SiderealMonthDays:     27.321661,
		LibrationAmplitudeDeg: 7.9,
		LunarSiteLongitudeDeg: 95.0,
		RelayPeriodDays:       0.5,
		RelayOutageFraction:   0.002,
		RelayExtraPathKm:      12000.0,
		DTNContactWaitMs:      7.5 * 60.0 * 1000.0,
		HandshakeOverheadMs:   0,
	}
}

// Validate fails fast on constants outside their physical range.
func (c PhysicsConfig) Validate() error {
	if c.SpeedOfLightKmPerS <= 0 {
		return fmt.Errorf("%w: speed of light must be positive, got %v", ErrInvalidInput, c.SpeedOfLightKmPerS)
	}
	if c.FiberRefractiveIndex < 1 {
		return fmt.Errorf("%w: refractive index must be >= 1, got %v", ErrInvalidInput, c.FiberRefractiveIndex)
	}
	if c.WindingFactor < 1 {
		return fmt.Errorf("%w: winding factor is a distance multiplier and must be >= 1, got %v", ErrInvalidInput, c.WindingFactor)
	}
	if c.EarthRadiusKm <= 0 || c.MoonRadiusKm <= 0 {
		return fmt.Errorf("%w: body radii must be positive, got earth=%v moon=%v", ErrInvalidInput, c.EarthRadiusKm, c.MoonRadiusKm)
	}
	if c.LunarPerigeeKm <= 0 || c.LunarApogeeKm <= c.LunarPerigeeKm {
		return fmt.Errorf("%w: need 0 < perigee < apogee, got perigee=%v apogee=%v", ErrInvalidInput, c.LunarPerigeeKm, c.LunarApogeeKm)
	}
	if c.LunarPerigeeKm <= c.EarthRadiusKm+c.MoonRadiusKm {
		return fmt.Errorf("%w: perigee %v km leaves no surface separation", ErrInvalidInput, c.LunarPerigeeKm)
	}
	if c.AnomalisticMonthDays <= 0 || c.SiderealMonthDays <= 0 {
		return fmt.Errorf("%w: month lengths must be positive", ErrInvalidInput)
	}
	if c.LibrationAmplitudeDeg < 0 {
		return fmt.Errorf("%w: libration amplitude must be non-negative, got %v", ErrInvalidInput, c.LibrationAmplitudeDeg)
	}
	if c.RelayPeriodDays <= 0 {
		return fmt.Errorf("%w: relay period must be positive, got %v", ErrInvalidInput, c.RelayPeriodDays)
	}
	if c.RelayOutageFraction < 0 || c.RelayOutageFraction >= 1 {
		return fmt.Errorf("%w: relay outage fraction must be in [0,1), got %v", ErrInvalidInput, c.RelayOutageFraction)
	}
	if c.RelayExtraPathKm < 0 {
		return fmt.Errorf("%w: relay extra path must be non-negative, got %v", ErrInvalidInput, c.RelayExtraPathKm)
	}
	if c.DTNContactWaitMs < 0 {
		return fmt.Errorf("%w: DTN contact wait must be non-negative, got %v", ErrInvalidInput, c.DTNContactWaitMs)
	}
	if c.HandshakeOverheadMs < 0 {
		return fmt.Errorf("%w: handshake overhead must be non-negative, got %v", ErrInvalidInput, c.HandshakeOverheadMs)
	}
	return nil
}

// fiberSpeedKmPerMs is the signal speed inside glass, in km per millisecond.
func (c PhysicsConfig) fiberSpeedKmPerMs() float64 {
	return c.SpeedOfLightKmPerS / 1000.0 / c.FiberRefractiveIndex
}

// vacuumOneWayMs is the light time over a straight vacuum path, in ms.
func (c PhysicsConfig) vacuumOneWayMs(distanceKm float64) float64 {
	return distanceKm / c.SpeedOfLightKmPerS * 1000.0
}

// LunarSurfaceDistanceKm converts an Earth-Moon center distance to the
// surface-to-surface link distance.
func (c PhysicsConfig) LunarSurfaceDistanceKm(centerKm float64) float64 {
	return centerKm - c.EarthRadiusKm - c.MoonRadiusKm
}
