package sim

import (
	"fmt"
	"sort"
)

// StartupEntry is one ranked row of a protocol startup comparison.
type StartupEntry struct {
	Profile           HandshakeProfile
	TimeToFirstByteMs float64
	// ContactWaitMs is the scheduled-contact wait included in the total.
	// Zero for interactive profiles.
	ContactWaitMs float64
}

// ComparisonResult ranks protocol startup strategies by time-to-first-byte,
// ascending. Ties break by profile declaration order.
type ComparisonResult struct {
	BaseOneWayMs    float64
	BaseRoundTripMs float64
	Entries         []StartupEntry
}

// ProtocolStartupComparator ranks handshake strategies over a shared base
// delay. Interactive profiles cost RTT multiples via the HandshakeModel;
// DTN/LTP costs the wait to the next contact window plus one one-way trip,
// a different computation path entirely.
type ProtocolStartupComparator struct {
	handshake        HandshakeModel
	defaultDTNWaitMs float64
}

// NewProtocolStartupComparator validates the config before constructing the
// comparator.
func NewProtocolStartupComparator(cfg PhysicsConfig) (*ProtocolStartupComparator, error) {
	hs, err := NewHandshakeModel(cfg)
	if err != nil {
		return nil, err
	}
	return &ProtocolStartupComparator{
		handshake:        hs,
		defaultDTNWaitMs: cfg.DTNContactWaitMs,
	}, nil
}

// Compare ranks the given profiles on a link with the given one-way delay,
// using the configured average contact wait for DTN entries.
func (c *ProtocolStartupComparator) Compare(oneWayMs float64, profiles []HandshakeProfile) (ComparisonResult, error) {
	return c.compare(oneWayMs, profiles, c.defaultDTNWaitMs)
}

// CompareWithSchedule ranks profiles using a real visibility schedule for
// DTN contact timing: the wait until the first window at or after fromDay.
func (c *ProtocolStartupComparator) CompareWithSchedule(oneWayMs float64, profiles []HandshakeProfile, windows []VisibilityWindow, fromDay float64) (ComparisonResult, error) {
	wait, err := NextContactWaitMs(windows, fromDay)
	if err != nil {
		return ComparisonResult{}, err
	}
	return c.compare(oneWayMs, profiles, wait)
}

func (c *ProtocolStartupComparator) compare(oneWayMs float64, profiles []HandshakeProfile, dtnWaitMs float64) (ComparisonResult, error) {
	if oneWayMs <= 0 {
		return ComparisonResult{}, fmt.Errorf("%w: one-way delay must be positive, got %v ms", ErrInvalidInput, oneWayMs)
	}
	if len(profiles) == 0 {
		return ComparisonResult{}, fmt.Errorf("%w: no profiles to compare", ErrInvalidInput)
	}

	rtt := 2 * oneWayMs
	entries := make([]StartupEntry, 0, len(profiles))
	for _, p := range profiles {
		if p.Interactive() {
			ttfb, err := c.handshake.TimeToFirstByteMs(rtt, p)
			if err != nil {
				return ComparisonResult{}, err
			}
			entries = append(entries, StartupEntry{Profile: p, TimeToFirstByteMs: ttfb})
			continue
		}
		// Store-and-forward: first byte lands one light trip after the next
		// contact window opens.
		entries = append(entries, StartupEntry{
			Profile:           p,
			TimeToFirstByteMs: dtnWaitMs + oneWayMs,
			ContactWaitMs:     dtnWaitMs,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TimeToFirstByteMs != entries[j].TimeToFirstByteMs {
			return entries[i].TimeToFirstByteMs < entries[j].TimeToFirstByteMs
		}
		return entries[i].Profile < entries[j].Profile
	})

	return ComparisonResult{
		BaseOneWayMs:    oneWayMs,
		BaseRoundTripMs: rtt,
		Entries:         entries,
	}, nil
}
