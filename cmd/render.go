// Terminal rendering of the core's value objects. Everything here formats;
// nothing here computes.

package cmd

import (
	"fmt"
	"math"

	sim "github.com/latency-sim/latency-sim/sim"
)

func renderLink(net *sim.Network, link *sim.Link) {
	fmt.Printf("Linking %s -> %s | Physical Gap: %.0f km | Actual Fiber: %.0f km | Min RTT: %.2f ms\n",
		net.NodeName(link.From), net.NodeName(link.To),
		link.Segment.DistanceKm, link.Segment.EffectiveKm, link.Latency.RoundTripMs)
}

func renderHandshakeDemo(net *sim.Network, clientID, serverID int) {
	fmt.Println("\n--- TCP Handshake Overhead ---")
	fmt.Println("Scenario: Establishing a TCP connection to a server across the world.")
	fmt.Printf("Starting the SYN dance: %s -> %s\n", net.NodeName(clientID), net.NodeName(serverID))
}

func renderBufferbloatDemo(burst int) {
	fmt.Println("\n--- Queuing Theory & Bufferbloat ---")
	fmt.Printf("Scenario: Sending a burst of %d packets at once. Watch the last one cry.\n", burst)
}

func renderCDNDemo(net *sim.Network, clientID, originID, edgeID int) {
	fmt.Println("\n--- Edge Computing / CDN ---")
	fmt.Printf("Request 1: %s -> %s (Origin)\n", net.NodeName(clientID), net.NodeName(originID))
	fmt.Printf("Request 2: %s -> %s (Edge Cache)\n", net.NodeName(clientID), net.NodeName(edgeID))
}

func renderMetrics(m *sim.Metrics, net *sim.Network) {
	fmt.Println("\n=== Simulation Results ===")
	fmt.Printf("Total delivered: %d\n", m.DeliveredCount())
	if m.UnroutedPackets > 0 {
		fmt.Printf("Unrouted packets: %d\n", m.UnroutedPackets)
	}
	if m.DeliveredCount() == 0 {
		return
	}
	fmt.Printf("Total Capacity: %.2f Gbps\n", net.TotalServerCapacityBitsPerSec()/1e9)
	fmt.Printf("Avg Latency: %.2f ms\n", m.AvgLatencyMs())
	fmt.Printf("Max Latency: %.2f ms\n", m.MaxLatencyMs())
}

func renderQueuingReport(r sim.QueuingReport) {
	fmt.Println("\n--- Analytic queuing check ---")
	fmt.Printf("Burst of %d x %.2f ms transmissions: last packet waits %.2f ms",
		r.BurstSize, r.TransmissionMs, r.LastPacketDelayMs)
	if r.DroppedPackets > 0 {
		fmt.Printf(" | %d dropped at the buffer", r.DroppedPackets)
	}
	fmt.Println()
}

func renderTakeaway(phys sim.PhysicsConfig, cfg Config) error {
	pta, err := site(cfg, "Pretoria")
	if err != nil {
		return err
	}
	nyc, err := site(cfg, "New York")
	if err != nil {
		return err
	}
	dist, err := phys.GreatCircleKm(pta.Point, nyc.Point)
	if err != nil {
		return err
	}
	fmt.Println("\n=== Final Physics Takeaway ===")
	fmt.Printf("Physical Distance PTA -> NYC: %.0f km\n", dist)
	fmt.Printf("Min Theoretical RTT (Vacuum): %.2f ms\n", 2.0*dist/phys.SpeedOfLightKmPerS*1000.0)
	fmt.Println("Actual Simulated RTT (Fiber + Winding + Handshake): shows why you see 350ms+ in the real world.")
	return nil
}

func renderMoonScenario(r sim.MoonScenarioReport) {
	fmt.Println("\n=== Earth -> Moon Scenario ===")
	fmt.Println("Assumptions: surface-to-surface link, free-space propagation, no routing detours.")
	fmt.Printf("Surface distance (min/avg/max): %.0f / %.0f / %.0f km\n",
		r.Perigee.SurfaceKm, r.Mean.SurfaceKm, r.Apogee.SurfaceKm)
	fmt.Printf("One-way light time (min/avg/max): %.0f / %.0f / %.0f ms\n",
		r.Perigee.OneWayMs, r.Mean.OneWayMs, r.Apogee.OneWayMs)
	fmt.Printf("RTT (min/avg/max): %.0f / %.0f / %.0f ms\n",
		r.Perigee.RTTMs, r.Mean.RTTMs, r.Apogee.RTTMs)
	fmt.Printf("TCP handshake window: client ready %.0f-%.0f ms, server ready %.0f-%.0f ms\n",
		r.ClientReadyMinMs, r.ClientReadyMaxMs, r.ServerReadyMinMs, r.ServerReadyMaxMs)
	fmt.Println("Takeaway: even in perfect vacuum, Earth-Moon latency is measured in seconds.")
}

func renderExtension1(samples []sim.SweepSample) {
	fmt.Println("\nExtension 1: Orbital Dynamics Over Time")
	fmt.Println("Model: monthly Earth-Moon distance variation (perigee <-> apogee).")
	fmt.Println("Day | Surface Distance (km) | One-way (ms) | RTT (ms)")

	minRTT := math.Inf(1)
	maxRTT := 0.0
	for _, s := range samples {
		rttMs := s.RoundTripS * 1000.0
		minRTT = math.Min(minRTT, rttMs)
		maxRTT = math.Max(maxRTT, rttMs)
		fmt.Printf("%5.1f | %21.0f | %12.0f | %8.0f\n",
			s.PhaseDays, s.DistanceKm, s.OneWayS*1000.0, rttMs)
	}
	fmt.Printf("RTT swing over one cycle: %.0f ms -> %.0f ms (delta %.0f ms)\n",
		minRTT, maxRTT, maxRTT-minRTT)
}

func renderExtension2(c sim.CoverageReport, a sim.UptimeAssessment) {
	fmt.Println("\nExtension 2: Line-of-Sight Outages and Relay Impact")
	fmt.Printf("Sim horizon: %.0f days.\n", c.HorizonDays)
	fmt.Printf("Without relay: uptime %.1f%% | avg one-way when visible: %.0f ms | %d windows\n",
		c.DirectFraction*100.0, c.AvgDirectOneWayMs, len(c.DirectWindows))
	fmt.Printf("With relay: uptime %.1f%% | avg one-way: %.0f ms | %d windows\n",
		c.RelayFraction*100.0, c.AvgRelayOneWayMs, len(c.RelayWindows))
	fmt.Printf("Tradeoff: relay adds ~%.0f ms one-way but recovers coverage.\n", c.RelayPenaltyMs)

	fmt.Printf("Uptime target %.1f%%: direct alone ", a.TargetFraction*100.0)
	if a.DirectMeets {
		fmt.Println("meets it.")
		return
	}
	fmt.Printf("misses it (%.1f%%); combined coverage %.1f%% ", a.DirectFraction*100.0, a.CombinedFraction*100.0)
	if a.CombinedMeets {
		fmt.Printf("meets it at +%.0f ms one-way.\n", a.AddedOneWayMs)
	} else {
		fmt.Println("still misses it.")
	}
}

func renderExtension3(r sim.ComparisonResult) {
	fmt.Println("\nExtension 3: Protocol Startup Comparison")
	fmt.Printf("Base one-way %.0f ms, RTT %.0f ms.\n", r.BaseOneWayMs, r.BaseRoundTripMs)
	fmt.Println("Protocol | Time to first byte (ms)")
	for _, e := range r.Entries {
		if e.ContactWaitMs > 0 {
			fmt.Printf("%-14s | %10.0f  (contact wait %.0f ms + one-way delivery)\n",
				e.Profile, e.TimeToFirstByteMs, e.ContactWaitMs)
			continue
		}
		fmt.Printf("%-14s | %10.0f  (%.1f RTTs)\n",
			e.Profile, e.TimeToFirstByteMs, e.Profile.RequiredRoundTrips())
	}
}
