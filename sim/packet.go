package sim

import "fmt"

// PacketType tags a packet with its role in the scenario so arrival handling
// can generate the matching reply.
type PacketType int

const (
	PacketStandard PacketType = iota
	PacketTCPSyn
	PacketTCPSynAck
	PacketTCPAck
	PacketCDNRequest
	PacketCDNResponse
)

func (t PacketType) String() string {
	switch t {
	case PacketStandard:
		return "Standard"
	case PacketTCPSyn:
		return "TcpSyn"
	case PacketTCPSynAck:
		return "TcpSynAck"
	case PacketTCPAck:
		return "TcpAck"
	case PacketCDNRequest:
		return "CdnRequest"
	case PacketCDNResponse:
		return "CdnResponse"
	default:
		return fmt.Sprintf("PacketType(%d)", int(t))
	}
}

// Packet is a unit of traffic moving through the simulated network.
// Timestamps are in ticks (microseconds of simulated time).
type Packet struct {
	ID            int64
	SourceID      int
	DestinationID int
	SizeBytes     int
	CreatedAtTick int64
	Type          PacketType
}
