// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// EventQueue implements heap.Interface and orders events by timestamp.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []Event

func (eq EventQueue) Len() int           { return len(eq) }
func (eq EventQueue) Less(i, j int) bool { return eq[i].Timestamp() < eq[j].Timestamp() }
func (eq EventQueue) Swap(i, j int)      { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds simulation time, the topology, and
// the event loop. Time is in ticks (microseconds).
type Simulator struct {
	Clock   int64
	Horizon int64
	// EventQueue has all pending packet arrival and forward events
	EventQueue EventQueue
	Network    *Network
	Metrics    *Metrics

	nextPacketID int64
}

// NewSimulator wraps a topology with an event loop bounded by a horizon.
func NewSimulator(network *Network, horizonMs float64) (*Simulator, error) {
	if network == nil {
		return nil, fmt.Errorf("%w: network must not be nil", ErrInvalidInput)
	}
	if horizonMs <= 0 {
		return nil, fmt.Errorf("%w: horizon must be positive, got %v ms", ErrInvalidInput, horizonMs)
	}
	return &Simulator{
		Horizon: msToTicks(horizonMs),
		Network: network,
		Metrics: NewMetrics(),
	}, nil
}

// Schedule pushes an event into the queue.
func (sim *Simulator) Schedule(ev Event) {
	heap.Push(&sim.EventQueue, ev)
}

// SendPacket injects a packet at its source node at the current clock. The
// packet is routed hop by hop; an unroutable packet is counted, not an error.
func (sim *Simulator) SendPacket(from, to, sizeBytes int, ptype PacketType) error {
	if sizeBytes <= 0 {
		return fmt.Errorf("%w: packet size must be positive, got %d bytes", ErrInvalidInput, sizeBytes)
	}
	if _, ok := sim.Network.location(from); !ok {
		return fmt.Errorf("%w: unknown source node %d", ErrInvalidInput, from)
	}
	if _, ok := sim.Network.location(to); !ok {
		return fmt.Errorf("%w: unknown destination node %d", ErrInvalidInput, to)
	}

	sim.nextPacketID++
	pkt := Packet{
		ID:            sim.nextPacketID,
		SourceID:      from,
		DestinationID: to,
		SizeBytes:     sizeBytes,
		CreatedAtTick: sim.Clock,
		Type:          ptype,
	}
	sim.transmit(from, pkt)
	return nil
}

// transmit pushes a packet onto the outbound link toward its next hop. The
// link's transmitter serializes one packet at a time, so a burst queues up
// behind queueEndTick; that wait is the bufferbloat the queuing model
// predicts analytically.
func (sim *Simulator) transmit(nodeID int, pkt Packet) {
	nextHop, ok := sim.Network.NextHop(nodeID, pkt.DestinationID)
	if !ok {
		logrus.Warnf("no route from %s to %s for packet %d",
			sim.Network.NodeName(nodeID), sim.Network.NodeName(pkt.DestinationID), pkt.ID)
		sim.Metrics.RecordUnrouted()
		return
	}
	link, ok := sim.Network.link(nodeID, nextHop)
	if !ok {
		sim.Metrics.RecordUnrouted()
		return
	}

	trans := link.TransmissionTicks(pkt.SizeBytes)
	start := sim.Clock
	if link.queueEndTick > start {
		start = link.queueEndTick
	}
	link.queueEndTick = start + trans
	arrival := start + trans + msToTicks(link.Latency.OneWayMs)

	sim.Schedule(&ArrivalEvent{time: arrival, Packet: pkt, NodeID: nextHop})
}

// deliver records a completed packet and generates the protocol reply its
// type calls for: the SYN dance answers itself, and CDN nodes respond with
// the cached object.
func (sim *Simulator) deliver(pkt Packet, now int64) {
	latency := now - pkt.CreatedAtTick
	logrus.Infof("[%.4fs] %s packet %d arrived at %s | latency %.2f ms",
		float64(now)/1e6, pkt.Type, pkt.ID, sim.Network.NodeName(pkt.DestinationID),
		float64(latency)/TicksPerMs)
	sim.Metrics.RecordDelivery(pkt, latency)

	switch pkt.Type {
	case PacketTCPSyn:
		_ = sim.SendPacket(pkt.DestinationID, pkt.SourceID, 64, PacketTCPSynAck)
	case PacketTCPSynAck:
		_ = sim.SendPacket(pkt.DestinationID, pkt.SourceID, 64, PacketTCPAck)
	case PacketCDNRequest:
		// The cache answers immediately with the stored object (1 KiB demo payload).
		_ = sim.SendPacket(pkt.DestinationID, pkt.SourceID, 1024, PacketCDNResponse)
	}
}

// Run drains the event queue until it empties or the horizon passes.
func (sim *Simulator) Run() {
	for sim.EventQueue.Len() > 0 {
		ev := heap.Pop(&sim.EventQueue).(Event)
		if ev.Timestamp() > sim.Horizon {
			break
		}
		sim.Clock = ev.Timestamp()
		ev.Execute(sim)
	}
}
