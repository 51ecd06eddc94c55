package sim

import (
	"fmt"
	"math"
)

// GeoPoint is an immutable latitude/longitude pair in degrees.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// NewGeoPoint validates coordinate ranges before constructing a point.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{Latitude: latitude, Longitude: longitude}
	if err := p.Validate(); err != nil {
		return GeoPoint{}, err
	}
	return p, nil
}

// Validate checks latitude in [-90,90] and longitude in [-180,180].
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90,90]", ErrInvalidInput, p.Latitude)
	}
	if math.IsNaN(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180,180]", ErrInvalidInput, p.Longitude)
	}
	return nil
}

// GreatCircleKm returns the Haversine great-circle distance between two
// points on a sphere of the configured Earth radius. Symmetric in its
// arguments and zero for identical points.
func (c PhysicsConfig) GreatCircleKm(a, b GeoPoint) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	lat1 := a.Latitude * math.Pi / 180.0
	lat2 := b.Latitude * math.Pi / 180.0
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180.0
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180.0

	s := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	arc := 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))
	return c.EarthRadiusKm * arc, nil
}
