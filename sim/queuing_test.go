package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQueuing_MonotonicUntilCapacity verifies the bufferbloat shape: the
// last packet's delay grows linearly with burst size until the buffer fills,
// then stays capped while the excess is reported dropped.
func TestQueuing_MonotonicUntilCapacity(t *testing.T) {
	model, err := NewQueuingModel(1e6, 8, 1000) // 8 ms per packet
	require.NoError(t, err)

	prev := -1.0
	capacity := model.BufferDepthPackets + 1
	for burst := 1; burst <= 2*capacity; burst++ {
		report, err := model.Burst(burst)
		require.NoError(t, err)

		if burst <= capacity {
			assert.Greater(t, report.LastPacketDelayMs, prev, "burst %d should delay more than burst %d", burst, burst-1)
			assert.Zero(t, report.DroppedPackets, "burst %d fits the buffer", burst)
		} else {
			assert.Equal(t, float64(model.BufferDepthPackets)*report.TransmissionMs, report.LastPacketDelayMs,
				"burst %d: delay capped at buffer depth", burst)
			assert.Equal(t, burst-capacity, report.DroppedPackets, "burst %d overflow", burst)
		}
		assert.Equal(t, burst, report.DeliveredPackets+report.DroppedPackets)
		prev = report.LastPacketDelayMs
	}
}

// TestQueuing_BandwidthIsNotLatency: doubling the link rate halves the
// per-packet transmission time, but delay still grows with burst length.
func TestQueuing_BandwidthIsNotLatency(t *testing.T) {
	slow, err := NewQueuingModel(1e6, 100, 1250)
	require.NoError(t, err)
	fast, err := NewQueuingModel(2e6, 100, 1250)
	require.NoError(t, err)

	assert.InDelta(t, slow.TransmissionMs()/2, fast.TransmissionMs(), 1e-12)

	small, err := fast.Burst(2)
	require.NoError(t, err)
	big, err := fast.Burst(50)
	require.NoError(t, err)
	assert.Greater(t, big.LastPacketDelayMs, small.LastPacketDelayMs,
		"a fat pipe still queues a long burst")
}

func TestQueuing_InvalidInput(t *testing.T) {
	cases := []struct {
		name       string
		rate       float64
		depth, pkt int
	}{
		{"zero rate", 0, 10, 1000},
		{"negative rate", -5, 10, 1000},
		{"negative depth", 1e6, -1, 1000},
		{"zero packet size", 1e6, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewQueuingModel(tc.rate, tc.depth, tc.pkt)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}

	model, err := NewQueuingModel(1e6, 10, 1000)
	require.NoError(t, err)
	_, err = model.Burst(0)
	assert.True(t, errors.Is(err, ErrInvalidInput), "zero burst: got %v", err)
}
