package sim

import (
	"fmt"
	"math"
)

// LinkType distinguishes the two Earth-link paths available to the lunar
// site.
type LinkType int

const (
	// LinkDirect is the straight site-to-Earth path, available only while
	// Earth is above the site's horizon.
	LinkDirect LinkType = iota
	// LinkRelay goes through the relay spacecraft and covers occlusion gaps
	// at the cost of a longer path.
	LinkRelay
)

func (l LinkType) String() string {
	switch l {
	case LinkDirect:
		return "Direct"
	case LinkRelay:
		return "Relay"
	default:
		return fmt.Sprintf("LinkType(%d)", int(l))
	}
}

// VisibilitySample is the link state at one sampled instant.
type VisibilitySample struct {
	Day            float64
	Direct         bool
	Relay          bool
	DirectOneWayMs float64 // physical light time; meaningful even when occluded
	RelayOneWayMs  float64
}

// VisibilityWindow is a half-open [StartDay, EndDay) interval during which
// one link type stays continuously available.
type VisibilityWindow struct {
	StartDay float64
	EndDay   float64
	Link     LinkType
}

// DurationDays is the window length.
func (w VisibilityWindow) DurationDays() float64 {
	return w.EndDay - w.StartDay
}

// LineOfSightModel decides when the lunar surface site can see Earth and the
// relay.
//
// Occlusion approximation: the Moon is tidally locked, so Earth visibility at
// a site of selenographic longitude L holds when the angular separation
// between L and the sub-Earth longitude is at most 90 degrees. The sub-Earth
// longitude oscillates sinusoidally with the configured libration amplitude
// over a sidereal month; latitude libration is ignored. The relay is reduced
// to a duty cycle: it repeats a RelayPeriodDays cycle and is unusable for the
// leading RelayOutageFraction of each cycle.
type LineOfSightModel struct {
	cfg     PhysicsConfig
	orbital *OrbitalLinkModel
}

// NewLineOfSightModel validates the config before constructing the model.
func NewLineOfSightModel(cfg PhysicsConfig) (*LineOfSightModel, error) {
	orbital, err := NewOrbitalLinkModel(cfg)
	if err != nil {
		return nil, err
	}
	return &LineOfSightModel{cfg: cfg, orbital: orbital}, nil
}

// SubEarthLongitudeDeg is the selenographic longitude of the sub-Earth point
// at a day offset, per the sinusoidal libration approximation.
func (m *LineOfSightModel) SubEarthLongitudeDeg(day float64) float64 {
	return m.cfg.LibrationAmplitudeDeg * math.Sin(2.0*math.Pi*day/m.cfg.SiderealMonthDays)
}

// normalizeDeg maps an angle into (-180, 180].
func normalizeDeg(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}

// SampleAtDay evaluates both links at a single instant.
func (m *LineOfSightModel) SampleAtDay(day float64) VisibilitySample {
	separation := math.Abs(normalizeDeg(m.cfg.LunarSiteLongitudeDeg - m.SubEarthLongitudeDeg(day)))
	direct := separation <= 90.0

	cyclePos := math.Mod(day/m.cfg.RelayPeriodDays, 1.0)
	if cyclePos < 0 {
		cyclePos += 1.0
	}
	relay := cyclePos >= m.cfg.RelayOutageFraction

	lt, err := m.orbital.SurfaceLightTimeAtDay(day)
	if err != nil {
		// Validate() guarantees a positive surface distance.
		panic(fmt.Sprintf("visibility sample: %v", err))
	}
	directMs := lt.OneWayS * 1000.0
	return VisibilitySample{
		Day:            day,
		Direct:         direct,
		Relay:          relay,
		DirectOneWayMs: directMs,
		RelayOneWayMs:  directMs + m.cfg.vacuumOneWayMs(m.cfg.RelayExtraPathKm),
	}
}

// Sample evaluates the horizon at a fixed cadence. Each sample sits at the
// midpoint of its interval so an outage shorter than the cadence is not
// over- or under-counted by grid alignment. Deterministic: identical
// arguments produce identical sample slices.
func (m *LineOfSightModel) Sample(horizonDays float64, samplesPerDay int) ([]VisibilitySample, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("%w: horizon must be positive, got %v days", ErrInvalidInput, horizonDays)
	}
	if samplesPerDay <= 0 {
		return nil, fmt.Errorf("%w: samples per day must be positive, got %d", ErrInvalidInput, samplesPerDay)
	}

	total := int(math.Ceil(horizonDays * float64(samplesPerDay)))
	out := make([]VisibilitySample, 0, total)
	for i := 0; i < total; i++ {
		day := (float64(i) + 0.5) / float64(samplesPerDay)
		out = append(out, m.SampleAtDay(day))
	}
	return out, nil
}

// Windows folds contiguous visible samples into non-overlapping windows for
// one link type, ordered by start time. The sample cadence defines window
// edges; each sample covers the interval up to the next one.
func Windows(samples []VisibilitySample, link LinkType, samplesPerDay int) []VisibilityWindow {
	step := 1.0 / float64(samplesPerDay)
	var out []VisibilityWindow
	open := false
	var start float64

	visible := func(s VisibilitySample) bool {
		if link == LinkDirect {
			return s.Direct
		}
		return s.Relay
	}

	for _, s := range samples {
		switch {
		case visible(s) && !open:
			open = true
			start = s.Day
		case !visible(s) && open:
			open = false
			out = append(out, VisibilityWindow{StartDay: start, EndDay: s.Day, Link: link})
		}
	}
	if open && len(samples) > 0 {
		out = append(out, VisibilityWindow{StartDay: start, EndDay: samples[len(samples)-1].Day + step, Link: link})
	}
	return out
}

// CoverageReport aggregates link availability over a sampled horizon.
type CoverageReport struct {
	HorizonDays      float64
	DirectFraction   float64
	RelayFraction    float64
	CombinedFraction float64 // Direct union Relay
	DirectWindows    []VisibilityWindow
	RelayWindows     []VisibilityWindow

	// AvgDirectOneWayMs averages over visible samples only; infinite when
	// the site never sees Earth. AvgRelayOneWayMs averages the relay path
	// over its own visible samples.
	AvgDirectOneWayMs float64
	AvgRelayOneWayMs  float64
	RelayPenaltyMs    float64
}

// Coverage samples the horizon and aggregates availability per link type.
func (m *LineOfSightModel) Coverage(horizonDays float64, samplesPerDay int) (CoverageReport, error) {
	samples, err := m.Sample(horizonDays, samplesPerDay)
	if err != nil {
		return CoverageReport{}, err
	}

	var directN, relayN, combinedN int
	var directSum, relaySum float64
	for _, s := range samples {
		if s.Direct {
			directN++
			directSum += s.DirectOneWayMs
		}
		if s.Relay {
			relayN++
			relaySum += s.RelayOneWayMs
		}
		if s.Direct || s.Relay {
			combinedN++
		}
	}

	total := float64(len(samples))
	report := CoverageReport{
		HorizonDays:      horizonDays,
		DirectFraction:   float64(directN) / total,
		RelayFraction:    float64(relayN) / total,
		CombinedFraction: float64(combinedN) / total,
		DirectWindows:    Windows(samples, LinkDirect, samplesPerDay),
		RelayWindows:     Windows(samples, LinkRelay, samplesPerDay),
		RelayPenaltyMs:   m.cfg.vacuumOneWayMs(m.cfg.RelayExtraPathKm),
	}
	if directN > 0 {
		report.AvgDirectOneWayMs = directSum / float64(directN)
	} else {
		report.AvgDirectOneWayMs = math.Inf(1)
	}
	if relayN > 0 {
		report.AvgRelayOneWayMs = relaySum / float64(relayN)
	} else {
		report.AvgRelayOneWayMs = math.Inf(1)
	}
	return report, nil
}

// Fraction returns the coverage fraction for one link type, failing with
// ErrUnreachable when the link never came up over the horizon.
func (r CoverageReport) Fraction(link LinkType) (float64, error) {
	var f float64
	if link == LinkDirect {
		f = r.DirectFraction
	} else {
		f = r.RelayFraction
	}
	if f == 0 {
		return 0, fmt.Errorf("%w: %s link has zero coverage over %.1f days", ErrUnreachable, link, r.HorizonDays)
	}
	return f, nil
}

// NextContactWaitMs returns the wait from the given day until the requested
// link type next becomes available, in ms. Zero when already inside a
// window; ErrUnreachable when no window remains on the horizon.
func NextContactWaitMs(windows []VisibilityWindow, fromDay float64) (float64, error) {
	const msPerDay = 24 * 60 * 60 * 1000
	for _, w := range windows {
		if fromDay < w.EndDay {
			if fromDay >= w.StartDay {
				return 0, nil
			}
			return (w.StartDay - fromDay) * msPerDay, nil
		}
	}
	return 0, fmt.Errorf("%w: no contact window after day %.2f", ErrUnreachable, fromDay)
}

// UptimeAssessment answers whether an uptime target is met by the direct
// link alone, and if not, what the relay adds and what it costs.
type UptimeAssessment struct {
	TargetFraction   float64
	DirectFraction   float64
	DirectMeets      bool
	CombinedFraction float64
	CombinedMeets    bool
	// AddedOneWayMs is the extra one-way delay of relay hops over the
	// direct path (a second light-time leg: Earth<->relay plus relay<->site).
	AddedOneWayMs float64
}

// AssessUptime evaluates a requested total uptime target against a coverage
// report.
func AssessUptime(report CoverageReport, target float64) (UptimeAssessment, error) {
	if target <= 0 || target > 1 {
		return UptimeAssessment{}, fmt.Errorf("%w: uptime target must be in (0,1], got %v", ErrInvalidInput, target)
	}
	return UptimeAssessment{
		TargetFraction:   target,
		DirectFraction:   report.DirectFraction,
		DirectMeets:      report.DirectFraction >= target,
		CombinedFraction: report.CombinedFraction,
		CombinedMeets:    report.CombinedFraction >= target,
		AddedOneWayMs:    report.RelayPenaltyMs,
	}, nil
}
