package sim

import "fmt"

// QueuingModel approximates bufferbloat on a single rate-limited link with a
// finite drop-tail buffer. One packet can be in transmission while up to
// BufferDepthPackets wait behind it; arrivals beyond that are dropped.
//
// The point of the model: doubling the link rate halves per-packet
// transmission time, but the last packet of a burst still waits behind every
// packet ahead of it, so queuing delay grows linearly with burst length until
// the buffer caps it.
type QueuingModel struct {
	LinkRateBitsPerSec float64
	BufferDepthPackets int
	PacketSizeBytes    int
}

// NewQueuingModel validates rates and sizes before constructing the model.
func NewQueuingModel(linkRateBitsPerSec float64, bufferDepthPackets, packetSizeBytes int) (*QueuingModel, error) {
	if linkRateBitsPerSec <= 0 {
		return nil, fmt.Errorf("%w: link rate must be positive, got %v bit/s", ErrInvalidInput, linkRateBitsPerSec)
	}
	if bufferDepthPackets < 0 {
		return nil, fmt.Errorf("%w: buffer depth must be non-negative, got %d packets", ErrInvalidInput, bufferDepthPackets)
	}
	if packetSizeBytes <= 0 {
		return nil, fmt.Errorf("%w: packet size must be positive, got %d bytes", ErrInvalidInput, packetSizeBytes)
	}
	return &QueuingModel{
		LinkRateBitsPerSec: linkRateBitsPerSec,
		BufferDepthPackets: bufferDepthPackets,
		PacketSizeBytes:    packetSizeBytes,
	}, nil
}

// TransmissionMs is the serialization time of one packet onto the wire.
func (m *QueuingModel) TransmissionMs() float64 {
	return float64(m.PacketSizeBytes) * 8.0 / m.LinkRateBitsPerSec * 1000.0
}

// QueuingReport describes what happened to a burst offered to the link at a
// single instant. DroppedPackets is a reported outcome, not an error.
type QueuingReport struct {
	BurstSize         int
	DeliveredPackets  int
	DroppedPackets    int
	TransmissionMs    float64
	LastPacketDelayMs float64
}

// Burst offers burstSize equally sized packets to the link at once. Packet i
// waits i transmission times; the wait is capped once the buffer is full and
// later packets are dropped.
func (m *QueuingModel) Burst(burstSize int) (QueuingReport, error) {
	if burstSize <= 0 {
		return QueuingReport{}, fmt.Errorf("%w: burst size must be positive, got %d", ErrInvalidInput, burstSize)
	}

	trans := m.TransmissionMs()
	capacity := m.BufferDepthPackets + 1 // one in flight plus the buffer
	delivered := burstSize
	if delivered > capacity {
		delivered = capacity
	}

	return QueuingReport{
		BurstSize:         burstSize,
		DeliveredPackets:  delivered,
		DroppedPackets:    burstSize - delivered,
		TransmissionMs:    trans,
		LastPacketDelayMs: float64(delivered-1) * trans,
	}, nil
}
