package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComparator(t *testing.T) *ProtocolStartupComparator {
	t.Helper()
	c, err := NewProtocolStartupComparator(DefaultPhysicsConfig())
	require.NoError(t, err)
	return c
}

// TestComparator_InteractiveRanking: on any shared RTT the interactive
// profiles rank QUIC-0RTT <= QUIC-1RTT <= TCP+TLS1.3 <= TCP+TLS1.2.
func TestComparator_InteractiveRanking(t *testing.T) {
	c := newComparator(t)
	profiles := []HandshakeProfile{ProfileTCPTLS12, ProfileTCPTLS13, ProfileQUIC1RTT, ProfileQUIC0RTT}

	for _, oneWay := range []float64{0.35, 80.0, 1282.0} {
		result, err := c.Compare(oneWay, profiles)
		require.NoError(t, err)
		require.Len(t, result.Entries, 4)

		var got []HandshakeProfile
		for i, e := range result.Entries {
			got = append(got, e.Profile)
			if i > 0 {
				assert.GreaterOrEqual(t, e.TimeToFirstByteMs, result.Entries[i-1].TimeToFirstByteMs)
			}
		}
		assert.Equal(t, []HandshakeProfile{ProfileQUIC0RTT, ProfileQUIC1RTT, ProfileTCPTLS13, ProfileTCPTLS12}, got)
		assert.Equal(t, 2*oneWay, result.BaseRoundTripMs)
	}
}

// TestComparator_TieBreak: TCP and QUIC-1RTT cost one RTT each; the tie
// resolves by declaration order, TCP first.
func TestComparator_TieBreak(t *testing.T) {
	c := newComparator(t)
	result, err := c.Compare(100.0, []HandshakeProfile{ProfileQUIC1RTT, ProfileTCP})
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, ProfileTCP, result.Entries[0].Profile)
	assert.Equal(t, ProfileQUIC1RTT, result.Entries[1].Profile)
	assert.Equal(t, result.Entries[0].TimeToFirstByteMs, result.Entries[1].TimeToFirstByteMs)
}

// TestComparator_DTNPath: DTN time-to-first-byte is contact wait plus one
// one-way trip, not an RTT multiple.
func TestComparator_DTNPath(t *testing.T) {
	cfg := DefaultPhysicsConfig()
	cfg.DTNContactWaitMs = 450000 // 7.5 minutes
	c, err := NewProtocolStartupComparator(cfg)
	require.NoError(t, err)

	oneWay := 1280.0
	result, err := c.Compare(oneWay, AllProfiles())
	require.NoError(t, err)

	var dtn *StartupEntry
	for i := range result.Entries {
		if result.Entries[i].Profile == ProfileDTNLTP {
			dtn = &result.Entries[i]
		}
	}
	require.NotNil(t, dtn)
	assert.Equal(t, 450000.0+oneWay, dtn.TimeToFirstByteMs)
	assert.Equal(t, 450000.0, dtn.ContactWaitMs)
	// With a long contact wait DTN ranks last among all profiles.
	assert.Equal(t, ProfileDTNLTP, result.Entries[len(result.Entries)-1].Profile)
}

// TestComparator_DTNWithSchedule: given a real visibility schedule, the DTN
// wait is the gap to the next window start.
func TestComparator_DTNWithSchedule(t *testing.T) {
	c := newComparator(t)
	windows := []VisibilityWindow{{StartDay: 0.25, EndDay: 0.5, Link: LinkDirect}}
	const msPerDay = 24 * 60 * 60 * 1000

	result, err := c.CompareWithSchedule(1280.0, []HandshakeProfile{ProfileDTNLTP, ProfileQUIC0RTT}, windows, 0.0)
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)

	last := result.Entries[1]
	assert.Equal(t, ProfileDTNLTP, last.Profile)
	assert.InDelta(t, 0.25*msPerDay+1280.0, last.TimeToFirstByteMs, 1e-6)

	// No window left on the horizon: the DTN link is unreachable.
	_, err = c.CompareWithSchedule(1280.0, []HandshakeProfile{ProfileDTNLTP}, windows, 1.0)
	assert.True(t, errors.Is(err, ErrUnreachable), "got %v", err)
}

func TestComparator_InvalidInput(t *testing.T) {
	c := newComparator(t)
	_, err := c.Compare(0, AllProfiles())
	assert.True(t, errors.Is(err, ErrInvalidInput), "zero one-way: got %v", err)
	_, err = c.Compare(100, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput), "empty profile set: got %v", err)
}
