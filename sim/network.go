package sim

import (
	"fmt"
	"math"
)

// TicksPerMs converts the package's millisecond model outputs into simulator
// ticks (one tick = one microsecond).
const TicksPerMs = 1000

func msToTicks(ms float64) int64 {
	return int64(math.Round(ms * TicksPerMs))
}

// Server is a network node that forwards and answers traffic.
type Server struct {
	ID                  int
	Site                Site
	ProcessingDelayMs   float64
	BandwidthBitsPerSec float64
}

// Client is a traffic source/sink with no forwarding role.
type Client struct {
	ID   int
	Site Site
}

// Link is a directed fiber connection between two nodes. Latency comes from
// the fiber model over the great-circle distance; queueEndTick tracks when
// the link's transmitter frees up, which is what makes bursts queue.
type Link struct {
	From                int
	To                  int
	Segment             LinkSegment
	Latency             LatencyEstimate
	BandwidthBitsPerSec float64

	queueEndTick int64
}

// TransmissionTicks is the serialization time of a packet onto this link.
func (l *Link) TransmissionTicks(sizeBytes int) int64 {
	ms := float64(sizeBytes) * 8.0 / l.BandwidthBitsPerSec * 1000.0
	return msToTicks(ms)
}

// Network holds the simulated topology: named nodes at real coordinates and
// the fiber links between them.
type Network struct {
	fiber   *FiberLatencyModel
	cfg     PhysicsConfig
	servers map[int]*Server
	clients map[int]*Client
	links   []*Link
}

// NewNetwork builds an empty topology over the given physics constants.
func NewNetwork(cfg PhysicsConfig) (*Network, error) {
	fiber, err := NewFiberLatencyModel(cfg)
	if err != nil {
		return nil, err
	}
	return &Network{
		fiber:   fiber,
		cfg:     cfg,
		servers: make(map[int]*Server),
		clients: make(map[int]*Client),
	}, nil
}

// AddServer registers a server node. IDs are shared between servers and
// clients and must be unique.
func (n *Network) AddServer(s Server) error {
	if err := n.checkNode(s.ID, s.Site); err != nil {
		return err
	}
	if s.ProcessingDelayMs < 0 {
		return fmt.Errorf("%w: processing delay must be non-negative, got %v ms", ErrInvalidInput, s.ProcessingDelayMs)
	}
	if s.BandwidthBitsPerSec <= 0 {
		return fmt.Errorf("%w: server bandwidth must be positive, got %v bit/s", ErrInvalidInput, s.BandwidthBitsPerSec)
	}
	n.servers[s.ID] = &s
	return nil
}

// AddClient registers a client node.
func (n *Network) AddClient(c Client) error {
	if err := n.checkNode(c.ID, c.Site); err != nil {
		return err
	}
	n.clients[c.ID] = &c
	return nil
}

func (n *Network) checkNode(id int, site Site) error {
	if _, dup := n.servers[id]; dup {
		return fmt.Errorf("%w: node ID %d already registered", ErrInvalidInput, id)
	}
	if _, dup := n.clients[id]; dup {
		return fmt.Errorf("%w: node ID %d already registered", ErrInvalidInput, id)
	}
	return site.Point.Validate()
}

// Connect adds a directed fiber link between two registered nodes and
// returns it so callers can report the derived distance and RTT.
func (n *Network) Connect(from, to int, bandwidthBitsPerSec float64) (*Link, error) {
	if bandwidthBitsPerSec <= 0 {
		return nil, fmt.Errorf("%w: link bandwidth must be positive, got %v bit/s", ErrInvalidInput, bandwidthBitsPerSec)
	}
	a, ok := n.location(from)
	if !ok {
		return nil, fmt.Errorf("%w: unknown source node %d", ErrInvalidInput, from)
	}
	b, ok := n.location(to)
	if !ok {
		return nil, fmt.Errorf("%w: unknown destination node %d", ErrInvalidInput, to)
	}

	dist, err := n.cfg.GreatCircleKm(a, b)
	if err != nil {
		return nil, err
	}
	seg, err := n.fiber.Segment(dist)
	if err != nil {
		return nil, err
	}
	est, err := n.fiber.Estimate(dist)
	if err != nil {
		return nil, err
	}

	link := &Link{
		From:                from,
		To:                  to,
		Segment:             seg,
		Latency:             est,
		BandwidthBitsPerSec: bandwidthBitsPerSec,
	}
	n.links = append(n.links, link)
	return link, nil
}

// NodeName resolves a node ID to its site name for reporting.
func (n *Network) NodeName(id int) string {
	if s, ok := n.servers[id]; ok {
		return s.Site.Name
	}
	if c, ok := n.clients[id]; ok {
		return c.Site.Name
	}
	return fmt.Sprintf("Node %d", id)
}

func (n *Network) location(id int) (GeoPoint, bool) {
	if s, ok := n.servers[id]; ok {
		return s.Site.Point, true
	}
	if c, ok := n.clients[id]; ok {
		return c.Site.Point, true
	}
	return GeoPoint{}, false
}

func (n *Network) server(id int) (*Server, bool) {
	s, ok := n.servers[id]
	return s, ok
}

func (n *Network) link(from, to int) (*Link, bool) {
	for _, l := range n.links {
		if l.From == from && l.To == to {
			return l, true
		}
	}
	return nil, false
}

// NextHop returns the first hop of a shortest-hop-count path from one node
// to another, or false when no path exists. Plain BFS over directed links.
func (n *Network) NextHop(from, to int) (int, bool) {
	type frontier struct {
		node     int
		firstHop int
		hasFirst bool
	}
	queue := []frontier{{node: from}}
	visited := map[int]bool{from: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.node == to {
			return cur.firstHop, cur.hasFirst
		}
		for _, l := range n.links {
			if l.From != cur.node || visited[l.To] {
				continue
			}
			visited[l.To] = true
			next := cur
			next.node = l.To
			if !cur.hasFirst {
				next.firstHop = l.To
				next.hasFirst = true
			}
			queue = append(queue, next)
		}
	}
	return 0, false
}

// TotalServerCapacityBitsPerSec sums server bandwidth for reporting.
func (n *Network) TotalServerCapacityBitsPerSec() float64 {
	var total float64
	for _, s := range n.servers {
		total += s.BandwidthBitsPerSec
	}
	return total
}
