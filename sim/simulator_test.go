package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testClient = 100
	testRelay  = 1
	testFar    = 5
)

// testTriangle wires Pretoria -> Johannesburg -> New York with return links.
func testTriangle(t *testing.T, bandwidth float64) *Network {
	t.Helper()
	net, err := NewNetwork(DefaultPhysicsConfig())
	require.NoError(t, err)

	pta, _ := FindSite("Pretoria")
	jhb, _ := FindSite("Johannesburg")
	nyc, _ := FindSite("New York")

	require.NoError(t, net.AddClient(Client{ID: testClient, Site: pta}))
	require.NoError(t, net.AddServer(Server{ID: testRelay, Site: jhb, ProcessingDelayMs: 0.5, BandwidthBitsPerSec: 100e9}))
	require.NoError(t, net.AddServer(Server{ID: testFar, Site: nyc, ProcessingDelayMs: 0.6, BandwidthBitsPerSec: 200e9}))

	for _, pair := range [][2]int{
		{testClient, testRelay}, {testRelay, testFar},
		{testFar, testRelay}, {testRelay, testClient},
	} {
		_, err := net.Connect(pair[0], pair[1], bandwidth)
		require.NoError(t, err)
	}
	return net
}

// TestSimulator_TCPHandshake plays the SYN dance across the triangle and
// checks both the delivery sequence and the clock: the ACK lands after three
// one-way traversals of the path.
func TestSimulator_TCPHandshake(t *testing.T) {
	net := testTriangle(t, 10e9)
	s, err := NewSimulator(net, 2000)
	require.NoError(t, err)

	require.NoError(t, s.SendPacket(testClient, testFar, 64, PacketTCPSyn))
	s.Run()

	require.Equal(t, 3, s.Metrics.DeliveredCount())
	types := []PacketType{}
	for _, d := range s.Metrics.Deliveries {
		types = append(types, d.Packet.Type)
	}
	assert.Equal(t, []PacketType{PacketTCPSyn, PacketTCPSynAck, PacketTCPAck}, types)

	// Expected one-way traversal: two fiber legs plus the relay hop's
	// processing delay; 64-byte transmissions round to zero ticks at 10 Gbps.
	fiber, err := NewFiberLatencyModel(DefaultPhysicsConfig())
	require.NoError(t, err)
	pta, _ := FindSite("Pretoria")
	jhb, _ := FindSite("Johannesburg")
	nyc, _ := FindSite("New York")
	legA, err := fiber.EstimateBetween(pta.Point, jhb.Point)
	require.NoError(t, err)
	legB, err := fiber.EstimateBetween(jhb.Point, nyc.Point)
	require.NoError(t, err)
	traversal := legA.OneWayMs + 0.5 + legB.OneWayMs

	assert.InDelta(t, 3*traversal, float64(s.Clock)/TicksPerMs, 0.1,
		"ACK should land after 1.5 RTTs of the end-to-end path")
}

// TestSimulator_BufferbloatBurst: packets of a burst leave one transmission
// time apart, so delivery latency grows linearly across the burst.
func TestSimulator_BufferbloatBurst(t *testing.T) {
	net := testTriangle(t, 1e6) // 8 ms to serialize 1000 bytes
	s, err := NewSimulator(net, 10000)
	require.NoError(t, err)

	const burst = 5
	for i := 0; i < burst; i++ {
		require.NoError(t, s.SendPacket(testClient, testRelay, 1000, PacketStandard))
	}
	s.Run()

	require.Equal(t, burst, s.Metrics.DeliveredCount())
	transTicks := int64(8 * TicksPerMs)
	for i, d := range s.Metrics.Deliveries {
		if i == 0 {
			continue
		}
		gap := d.LatencyTicks - s.Metrics.Deliveries[i-1].LatencyTicks
		assert.Equal(t, transTicks, gap, "packet %d should queue one transmission behind packet %d", i, i-1)
	}
}

// TestSimulator_CDNEdgeBeatsOrigin: the cached response from the nearby edge
// arrives far sooner than the one from the far origin.
func TestSimulator_CDNEdgeBeatsOrigin(t *testing.T) {
	net := testTriangle(t, 10e9)
	s, err := NewSimulator(net, 2000)
	require.NoError(t, err)

	require.NoError(t, s.SendPacket(testClient, testFar, 512, PacketCDNRequest))
	require.NoError(t, s.SendPacket(testClient, testRelay, 512, PacketCDNRequest))
	s.Run()

	var edge, origin *Delivery
	for i := range s.Metrics.Deliveries {
		d := &s.Metrics.Deliveries[i]
		if d.Packet.Type != PacketCDNResponse {
			continue
		}
		switch d.Packet.SourceID {
		case testRelay:
			edge = d
		case testFar:
			origin = d
		}
	}
	require.NotNil(t, edge, "edge response missing")
	require.NotNil(t, origin, "origin response missing")
	assert.Less(t, edge.LatencyTicks, origin.LatencyTicks/10,
		"edge response should be an order of magnitude faster")
}

// TestSimulator_Deterministic: identical scenarios produce identical
// delivery records.
func TestSimulator_Deterministic(t *testing.T) {
	runOnce := func() []Delivery {
		net := testTriangle(t, 10e9)
		s, err := NewSimulator(net, 2000)
		require.NoError(t, err)
		require.NoError(t, s.SendPacket(testClient, testFar, 64, PacketTCPSyn))
		require.NoError(t, s.SendPacket(testClient, testRelay, 512, PacketCDNRequest))
		s.Run()
		return s.Metrics.Deliveries
	}
	assert.Equal(t, runOnce(), runOnce())
}

// TestSimulator_UnroutedPacket: a destination with no path is counted, not
// an error and not a delivery.
func TestSimulator_UnroutedPacket(t *testing.T) {
	net, err := NewNetwork(DefaultPhysicsConfig())
	require.NoError(t, err)
	pta, _ := FindSite("Pretoria")
	ldn, _ := FindSite("London")
	require.NoError(t, net.AddClient(Client{ID: 1, Site: pta}))
	require.NoError(t, net.AddClient(Client{ID: 2, Site: ldn}))
	// no links at all

	s, err := NewSimulator(net, 1000)
	require.NoError(t, err)
	require.NoError(t, s.SendPacket(1, 2, 64, PacketStandard))
	s.Run()

	assert.Zero(t, s.Metrics.DeliveredCount())
	assert.Equal(t, 1, s.Metrics.UnroutedPackets)
}

func TestSimulator_InvalidInput(t *testing.T) {
	net := testTriangle(t, 10e9)
	s, err := NewSimulator(net, 2000)
	require.NoError(t, err)

	err = s.SendPacket(testClient, 999, 64, PacketStandard)
	assert.True(t, errors.Is(err, ErrInvalidInput), "unknown node: got %v", err)
	err = s.SendPacket(testClient, testFar, 0, PacketStandard)
	assert.True(t, errors.Is(err, ErrInvalidInput), "zero size: got %v", err)

	_, err = NewSimulator(nil, 2000)
	assert.True(t, errors.Is(err, ErrInvalidInput), "nil network: got %v", err)
	_, err = NewSimulator(net, 0)
	assert.True(t, errors.Is(err, ErrInvalidInput), "zero horizon: got %v", err)
}
