// Tracks delivery statistics for a simulation run: completed packets,
// per-packet latency, and routing failures.

package sim

// Delivery is one completed packet with its end-to-end latency in ticks.
type Delivery struct {
	Packet       Packet
	LatencyTicks int64
}

// Metrics aggregates statistics about the simulation for final reporting.
// It is a plain value object; rendering belongs to the caller.
type Metrics struct {
	Deliveries      []Delivery
	UnroutedPackets int

	totalLatencyTicks int64
	maxLatencyTicks   int64
}

// NewMetrics creates an empty metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordDelivery adds a completed packet.
func (m *Metrics) RecordDelivery(pkt Packet, latencyTicks int64) {
	m.Deliveries = append(m.Deliveries, Delivery{Packet: pkt, LatencyTicks: latencyTicks})
	m.totalLatencyTicks += latencyTicks
	if latencyTicks > m.maxLatencyTicks {
		m.maxLatencyTicks = latencyTicks
	}
}

// RecordUnrouted counts a packet that had no path to its destination.
func (m *Metrics) RecordUnrouted() {
	m.UnroutedPackets++
}

// DeliveredCount is the number of completed packets.
func (m *Metrics) DeliveredCount() int {
	return len(m.Deliveries)
}

// AvgLatencyMs is the mean end-to-end latency; zero when nothing completed.
func (m *Metrics) AvgLatencyMs() float64 {
	if len(m.Deliveries) == 0 {
		return 0
	}
	return float64(m.totalLatencyTicks) / float64(len(m.Deliveries)) / TicksPerMs
}

// MaxLatencyMs is the worst end-to-end latency seen.
func (m *Metrics) MaxLatencyMs() float64 {
	return float64(m.maxLatencyTicks) / TicksPerMs
}
