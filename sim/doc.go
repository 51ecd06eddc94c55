// Package sim computes first-principles latency estimates for terrestrial
// fiber paths and Earth-Moon links, and runs a small discrete-event packet
// simulation on top of them.
//
// # Reading Guide
//
// Start with these files to understand the analytic models:
//   - config.go: PhysicsConfig, the single source of physical constants
//   - geo.go / fiber.go: great-circle distance -> fiber propagation delay
//   - handshake.go: round-trip cost of connection-establishment protocols
//   - orbital.go / visibility.go: Earth-Moon light time and line-of-sight
//   - comparator.go: protocol startup ranking over a shared base RTT
//
// The event-driven half lives in:
//   - packet.go / network.go: nodes, fiber links, BFS next-hop routing
//   - event.go / simulator.go: the event heap and run loop
//   - metrics.go: delivery statistics collected during a run
//
// All analytic models are pure functions over immutable inputs: same config,
// same numbers. The simulator mutates only its own state and performs no I/O;
// callers render results however they like.
package sim
