package sim

import "fmt"

// HandshakeProfile identifies a connection-establishment strategy. The
// declaration order is the tie-break order used when ranking profiles.
type HandshakeProfile int

const (
	ProfileTCP HandshakeProfile = iota
	ProfileTCPTLS12
	ProfileTCPTLS13
	ProfileQUIC1RTT
	ProfileQUIC0RTT
	ProfileDTNLTP
)

// AllProfiles returns every profile in declaration order.
func AllProfiles() []HandshakeProfile {
	return []HandshakeProfile{
		ProfileTCP, ProfileTCPTLS12, ProfileTCPTLS13,
		ProfileQUIC1RTT, ProfileQUIC0RTT, ProfileDTNLTP,
	}
}

func (p HandshakeProfile) String() string {
	switch p {
	case ProfileTCP:
		return "TCP"
	case ProfileTCPTLS12:
		return "TCP+TLS1.2"
	case ProfileTCPTLS13:
		return "TCP+TLS1.3"
	case ProfileQUIC1RTT:
		return "QUIC (1-RTT)"
	case ProfileQUIC0RTT:
		return "QUIC (0-RTT)"
	case ProfileDTNLTP:
		return "DTN/LTP"
	default:
		return fmt.Sprintf("HandshakeProfile(%d)", int(p))
	}
}

// RequiredRoundTrips is the number of full round trips before the first
// application byte can arrive. TCP's SYN/SYN-ACK/ACK counts as one round
// trip since data rides on the ACK flight; TLS adds its own trips on top.
// DTN/LTP is store-and-forward and spends zero interactive round trips.
func (p HandshakeProfile) RequiredRoundTrips() float64 {
	switch p {
	case ProfileTCP:
		return 1
	case ProfileTCPTLS12:
		return 3
	case ProfileTCPTLS13:
		return 2
	case ProfileQUIC1RTT:
		return 1
	case ProfileQUIC0RTT:
		return 0
	case ProfileDTNLTP:
		return 0
	default:
		return 0
	}
}

// Interactive reports whether the profile's startup cost is a multiple of
// the link RTT. DTN/LTP is not: its cost is contact-window scheduling, which
// the comparator handles on a separate path.
func (p HandshakeProfile) Interactive() bool {
	return p != ProfileDTNLTP
}

// HandshakeModel turns an underlying round-trip time into the
// connection-establishment tax a protocol pays before first byte.
type HandshakeModel struct {
	// OverheadMs is fixed protocol processing time added once per
	// connection, independent of distance.
	OverheadMs float64
}

// NewHandshakeModel builds a model from the configured fixed overhead.
func NewHandshakeModel(cfg PhysicsConfig) (HandshakeModel, error) {
	if err := cfg.Validate(); err != nil {
		return HandshakeModel{}, err
	}
	return HandshakeModel{OverheadMs: cfg.HandshakeOverheadMs}, nil
}

// TimeToFirstByteMs computes the startup delay for an interactive profile on
// a link with the given round-trip time. DTN/LTP is rejected here because
// its delay is not an RTT multiple.
func (m HandshakeModel) TimeToFirstByteMs(roundTripMs float64, p HandshakeProfile) (float64, error) {
	if roundTripMs <= 0 {
		return 0, fmt.Errorf("%w: round trip must be positive, got %v ms", ErrInvalidInput, roundTripMs)
	}
	if !p.Interactive() {
		return 0, fmt.Errorf("%w: %s startup is contact-window scheduled, not an RTT multiple", ErrInvalidInput, p)
	}
	return p.RequiredRoundTrips()*roundTripMs + m.OverheadMs, nil
}
