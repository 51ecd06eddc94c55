package sim

// Site is a named GeoPoint used when assembling scenario networks.
type Site struct {
	Name  string
	Point GeoPoint
}

// BuiltinSites returns the reference cities used by the documentation
// scenarios, in a stable order.
func BuiltinSites() []Site {
	return []Site{
		{Name: "Pretoria", Point: GeoPoint{Latitude: -25.7479, Longitude: 28.2293}},
		{Name: "Johannesburg", Point: GeoPoint{Latitude: -26.2041, Longitude: 28.0473}},
		{Name: "New York", Point: GeoPoint{Latitude: 40.7128, Longitude: -74.0060}},
		{Name: "London", Point: GeoPoint{Latitude: 51.5074, Longitude: -0.1278}},
		{Name: "Tokyo", Point: GeoPoint{Latitude: 35.6762, Longitude: 139.6503}},
		{Name: "San Francisco", Point: GeoPoint{Latitude: 37.7749, Longitude: -122.4194}},
	}
}

// FindSite looks a builtin site up by name. The second return is false when
// the name is unknown.
func FindSite(name string) (Site, bool) {
	for _, s := range BuiltinSites() {
		if s.Name == name {
			return s, true
		}
	}
	return Site{}, false
}
