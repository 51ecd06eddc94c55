package sim

import (
	"fmt"
	"math"
)

// OrbitalState is a point in the lunar distance cycle: PhaseDays since
// perigee and the Earth-Moon center distance at that phase.
type OrbitalState struct {
	PhaseDays  float64
	DistanceKm float64
}

// LightTime is the vacuum propagation delay over an orbital link.
type LightTime struct {
	OneWayS    float64
	RoundTripS float64
}

// OrbitalLinkModel computes Earth-Moon light time as the distance swings
// between perigee and apogee over an anomalistic month. The distance curve
// is a cosine interpolation with day 0 at perigee:
//
//	d(t) = avg - amp * cos(2*pi*t / anomalisticMonth)
type OrbitalLinkModel struct {
	cfg PhysicsConfig
}

// NewOrbitalLinkModel validates the config before constructing the model.
func NewOrbitalLinkModel(cfg PhysicsConfig) (*OrbitalLinkModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &OrbitalLinkModel{cfg: cfg}, nil
}

// StateAtDay interpolates the Earth-Moon center distance at a day offset
// from perigee. Days outside [0, month) wrap around the cycle.
func (m *OrbitalLinkModel) StateAtDay(day float64) OrbitalState {
	avg := (m.cfg.LunarApogeeKm + m.cfg.LunarPerigeeKm) / 2.0
	amp := (m.cfg.LunarApogeeKm - m.cfg.LunarPerigeeKm) / 2.0
	dist := avg - amp*math.Cos(2.0*math.Pi*day/m.cfg.AnomalisticMonthDays)
	return OrbitalState{PhaseDays: day, DistanceKm: dist}
}

// LightTimeOver returns the one-way and round-trip light time over a link
// distance in km.
func (m *OrbitalLinkModel) LightTimeOver(distanceKm float64) (LightTime, error) {
	if distanceKm <= 0 {
		return LightTime{}, fmt.Errorf("%w: link distance must be positive, got %v km", ErrInvalidInput, distanceKm)
	}
	oneWay := distanceKm / m.cfg.SpeedOfLightKmPerS
	return LightTime{OneWayS: oneWay, RoundTripS: 2 * oneWay}, nil
}

// SurfaceLightTimeAtDay is the light time between ground stations on the two
// bodies: center distance at the given day minus both radii.
func (m *OrbitalLinkModel) SurfaceLightTimeAtDay(day float64) (LightTime, error) {
	state := m.StateAtDay(day)
	return m.LightTimeOver(m.cfg.LunarSurfaceDistanceKm(state.DistanceKm))
}

// SweepSample is one row of a month sweep.
type SweepSample struct {
	PhaseDays  float64
	DistanceKm float64 // surface-to-surface link distance
	OneWayS    float64
	RoundTripS float64
}

// MonthSweep lazily yields evenly spaced samples over one anomalistic month.
// The sequence is finite, ordered by phase, and deterministic: Reset rewinds
// it to produce the identical samples again.
type MonthSweep struct {
	model   *OrbitalLinkModel
	samples int
	next    int
}

// MonthSweep creates a sweep of n samples covering [0, month] inclusive.
func (m *OrbitalLinkModel) MonthSweep(n int) (*MonthSweep, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 samples, got %d", ErrInvalidInput, n)
	}
	return &MonthSweep{model: m, samples: n}, nil
}

// Next returns the next sample, or false when the sweep is exhausted.
func (s *MonthSweep) Next() (SweepSample, bool) {
	if s.next >= s.samples {
		return SweepSample{}, false
	}
	month := s.model.cfg.AnomalisticMonthDays
	day := month * float64(s.next) / float64(s.samples-1)
	s.next++

	state := s.model.StateAtDay(day)
	surface := s.model.cfg.LunarSurfaceDistanceKm(state.DistanceKm)
	lt, err := s.model.LightTimeOver(surface)
	if err != nil {
		// Validate() guarantees a positive surface distance.
		panic(fmt.Sprintf("month sweep: %v", err))
	}
	return SweepSample{
		PhaseDays:  day,
		DistanceKm: surface,
		OneWayS:    lt.OneWayS,
		RoundTripS: lt.RoundTripS,
	}, true
}

// Reset rewinds the sweep to its first sample.
func (s *MonthSweep) Reset() {
	s.next = 0
}

// Collect drains the sweep into a slice, resetting it first so repeated
// calls return identical results.
func (s *MonthSweep) Collect() []SweepSample {
	s.Reset()
	out := make([]SweepSample, 0, s.samples)
	for {
		sample, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, sample)
	}
}
