package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events. Each event has a
// Timestamp (in ticks) and an Execute method that advances simulation state
// when invoked.
type Event interface {
	Timestamp() int64
	Execute(*Simulator)
}

// ArrivalEvent represents a packet reaching a node, either its destination
// or an intermediate hop.
type ArrivalEvent struct {
	time   int64
	Packet Packet
	NodeID int
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() int64 {
	return e.time
}

// Execute delivers the packet or queues it for forwarding after the node's
// processing delay.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	if e.NodeID == e.Packet.DestinationID {
		sim.deliver(e.Packet, e.time)
		return
	}

	var delayTicks int64
	if srv, ok := sim.Network.server(e.NodeID); ok {
		delayTicks = msToTicks(srv.ProcessingDelayMs)
	}
	logrus.Debugf("<< Arrival: %s packet %d at %s (forwarding after %d ticks)",
		e.Packet.Type, e.Packet.ID, sim.Network.NodeName(e.NodeID), delayTicks)
	sim.Schedule(&ForwardEvent{
		time:   e.time + delayTicks,
		Packet: e.Packet,
		NodeID: e.NodeID,
	})
}

// ForwardEvent represents a node finishing local processing and pushing the
// packet onto its next outbound link.
type ForwardEvent struct {
	time   int64
	Packet Packet
	NodeID int
}

// Timestamp returns the scheduled time of the ForwardEvent.
func (e *ForwardEvent) Timestamp() int64 {
	return e.time
}

// Execute transmits the packet toward its destination.
func (e *ForwardEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Forward: packet %d leaving %s at %d ticks",
		e.Packet.ID, sim.Network.NodeName(e.NodeID), e.time)
	sim.transmit(e.NodeID, e.Packet)
}
