package sim

import "fmt"

// LinkSegment is a fiber run derived from a straight-line distance. Distances
// are in km; WindingFactor is the multiplier already applied to produce
// EffectiveKm.
type LinkSegment struct {
	DistanceKm      float64
	EffectiveKm     float64
	RefractiveIndex float64
	WindingFactor   float64
}

// LatencyEstimate is the propagation delay over a LinkSegment.
type LatencyEstimate struct {
	OneWayMs    float64
	RoundTripMs float64
}

// FiberLatencyModel converts great-circle distances into fiber propagation
// delays: the straight line is inflated by the winding factor, then divided
// by the speed of light in glass.
type FiberLatencyModel struct {
	cfg PhysicsConfig
}

// NewFiberLatencyModel validates the config before constructing the model.
func NewFiberLatencyModel(cfg PhysicsConfig) (*FiberLatencyModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &FiberLatencyModel{cfg: cfg}, nil
}

// Segment derives the fiber run for a straight-line distance.
func (m *FiberLatencyModel) Segment(distanceKm float64) (LinkSegment, error) {
	if distanceKm < 0 {
		return LinkSegment{}, fmt.Errorf("%w: distance must be non-negative, got %v km", ErrInvalidInput, distanceKm)
	}
	return LinkSegment{
		DistanceKm:      distanceKm,
		EffectiveKm:     distanceKm * m.cfg.WindingFactor,
		RefractiveIndex: m.cfg.FiberRefractiveIndex,
		WindingFactor:   m.cfg.WindingFactor,
	}, nil
}

// Estimate computes one-way and round-trip propagation delay for a
// straight-line distance.
func (m *FiberLatencyModel) Estimate(distanceKm float64) (LatencyEstimate, error) {
	seg, err := m.Segment(distanceKm)
	if err != nil {
		return LatencyEstimate{}, err
	}
	oneWay := seg.EffectiveKm / m.cfg.fiberSpeedKmPerMs()
	return LatencyEstimate{OneWayMs: oneWay, RoundTripMs: 2 * oneWay}, nil
}

// EstimateBetween is the composed path: great-circle distance between two
// points, then fiber delay over it.
func (m *FiberLatencyModel) EstimateBetween(a, b GeoPoint) (LatencyEstimate, error) {
	dist, err := m.cfg.GreatCircleKm(a, b)
	if err != nil {
		return LatencyEstimate{}, err
	}
	return m.Estimate(dist)
}
