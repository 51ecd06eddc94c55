package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/latency-sim/latency-sim/sim"
)

// PhysicsOverrides mirrors sim.PhysicsConfig with optional fields; only the
// keys present in the YAML replace the defaults.
type PhysicsOverrides struct {
	SpeedOfLightKmPerS    *float64 `yaml:"speed_of_light_km_per_s"`
	RefractiveIndex       *float64 `yaml:"refractive_index"`
	WindingFactor         *float64 `yaml:"winding_factor"`
	EarthRadiusKm         *float64 `yaml:"earth_radius_km"`
	MoonRadiusKm          *float64 `yaml:"moon_radius_km"`
	LunarPerigeeKm        *float64 `yaml:"lunar_perigee_km"`
	LunarApogeeKm         *float64 `yaml:"lunar_apogee_km"`
	AnomalisticMonthDays  *float64 `yaml:"anomalistic_month_days"`
	SiderealMonthDays     *float64 `yaml:"sidereal_month_days"`
	LibrationAmplitudeDeg *float64 `yaml:"libration_amplitude_deg"`
	LunarSiteLongitudeDeg *float64 `yaml:"lunar_site_longitude_deg"`
	RelayPeriodDays       *float64 `yaml:"relay_period_days"`
	RelayOutageFraction   *float64 `yaml:"relay_outage_fraction"`
	RelayExtraPathKm      *float64 `yaml:"relay_extra_path_km"`
	DTNContactWaitMs      *float64 `yaml:"dtn_contact_wait_ms"`
	HandshakeOverheadMs   *float64 `yaml:"handshake_overhead_ms"`
}

// SiteConfig is an additional or replacement named site.
type SiteConfig struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// Config represents the full override file structure. All top-level sections
// must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Physics PhysicsOverrides `yaml:"physics"`
	Sites   []SiteConfig     `yaml:"sites"`
}

// LoadConfig parses an override YAML with strict field checking, so typos in
// constant names fail instead of silently keeping a default.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Apply layers the overrides onto a base physics config.
func (c Config) Apply(base sim.PhysicsConfig) sim.PhysicsConfig {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&base.SpeedOfLightKmPerS, c.Physics.SpeedOfLightKmPerS)
	set(&base.FiberRefractiveIndex, c.Physics.RefractiveIndex)
	set(&base.WindingFactor, c.Physics.WindingFactor)
	set(&base.EarthRadiusKm, c.Physics.EarthRadiusKm)
	set(&base.MoonRadiusKm, c.Physics.MoonRadiusKm)
	set(&base.LunarPerigeeKm, c.Physics.LunarPerigeeKm)
	set(&base.LunarApogeeKm, c.Physics.LunarApogeeKm)
	set(&base.AnomalisticMonthDays, c.Physics.AnomalisticMonthDays)
	set(&base.SiderealMonthDays, c.Physics.SiderealMonthDays)
	set(&base.LibrationAmplitudeDeg, c.Physics.LibrationAmplitudeDeg)
	set(&base.LunarSiteLongitudeDeg, c.Physics.LunarSiteLongitudeDeg)
	set(&base.RelayPeriodDays, c.Physics.RelayPeriodDays)
	set(&base.RelayOutageFraction, c.Physics.RelayOutageFraction)
	set(&base.RelayExtraPathKm, c.Physics.RelayExtraPathKm)
	set(&base.DTNContactWaitMs, c.Physics.DTNContactWaitMs)
	set(&base.HandshakeOverheadMs, c.Physics.HandshakeOverheadMs)
	return base
}

// Site resolves a named site from the config file first, then the builtins.
func (c Config) Site(name string) (sim.Site, bool) {
	for _, s := range c.Sites {
		if s.Name == name {
			return sim.Site{Name: s.Name, Point: sim.GeoPoint{Latitude: s.Latitude, Longitude: s.Longitude}}, true
		}
	}
	return sim.FindSite(name)
}

// loadPhysics builds the effective physics config from the --config flag (if
// any) and validates it before any model sees it.
func loadPhysics() (sim.PhysicsConfig, Config, error) {
	base := sim.DefaultPhysicsConfig()
	var cfg Config
	if configPath != "" {
		loaded, err := LoadConfig(configPath)
		if err != nil {
			return sim.PhysicsConfig{}, Config{}, err
		}
		cfg = loaded
		base = cfg.Apply(base)
	}
	if err := base.Validate(); err != nil {
		return sim.PhysicsConfig{}, Config{}, err
	}
	return base, cfg, nil
}
