package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/latency-sim/latency-sim/sim"
)

var (
	// CLI flags for the run subcommand
	scenario      string  // Which demonstration to run
	horizonMs     float64 // Event-loop horizon for packet scenarios (ms)
	linkBandwidth float64 // Fiber link bandwidth (bits/sec)
	burstSize     int     // Packets per bufferbloat burst
	burstBytes    int     // Size of each burst packet
	sweepSamples  int     // Samples across one lunar month (extension 1)
	horizonDays   float64 // Visibility horizon (extension 2)
	samplesPerDay int     // Visibility sampling cadence (extension 2)
	uptimeTarget  float64 // Requested total uptime fraction (extension 2)
)

// Node IDs for the packet scenarios. Arbitrary but stable, so log output is
// comparable across runs.
const (
	nodeJohannesburg = 1
	nodeNewYork      = 5
	nodePretoria     = 100
)

// runCmd executes the selected scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a latency demonstration scenario",
	Long: `Scenarios:
  terrestrial  fiber links between real cities, TCP handshake and bufferbloat demos
  cdn          the same request served from a far origin and a nearby edge cache
  moon         Earth-Moon link budget and TCP handshake window
  extension1   orbital dynamics over a lunar month
  extension2   line-of-sight outages and relay impact
  extension3   protocol startup comparison on the Earth-Moon link
  all          everything above in order`,
	Run: func(cmd *cobra.Command, args []string) {
		phys, cfg, err := loadPhysics()
		if err != nil {
			logrus.Fatalf("configuration: %v", err)
		}

		run := func(name string) error {
			switch name {
			case "terrestrial":
				return runTerrestrial(phys, cfg)
			case "cdn":
				return runCDN(phys, cfg)
			case "moon":
				return runMoon(phys)
			case "extension1":
				return runExtension1(phys)
			case "extension2":
				return runExtension2(phys)
			case "extension3":
				return runExtension3(phys)
			default:
				logrus.Fatalf("unknown scenario %q", name)
				return nil
			}
		}

		names := []string{scenario}
		if scenario == "all" {
			names = []string{"terrestrial", "cdn", "moon", "extension1", "extension2", "extension3"}
		} else if scenario == "extensions" {
			names = []string{"extension1", "extension2", "extension3"}
		}
		for _, name := range names {
			if err := run(name); err != nil {
				logrus.Fatalf("scenario %s: %v", name, err)
			}
		}
	},
}

func init() {
	runCmd.Flags().StringVar(&scenario, "scenario", "all", "Scenario to run")
	runCmd.Flags().Float64Var(&horizonMs, "horizon-ms", 2000, "Event-loop horizon in ms for packet scenarios")
	runCmd.Flags().Float64Var(&linkBandwidth, "bandwidth", 10e9, "Fiber link bandwidth in bits/sec")
	runCmd.Flags().IntVar(&burstSize, "burst", 10, "Packets per bufferbloat burst")
	runCmd.Flags().IntVar(&burstBytes, "burst-bytes", 10_000_000, "Size of each burst packet in bytes")
	runCmd.Flags().IntVar(&sweepSamples, "samples", 10, "Samples across one lunar month")
	runCmd.Flags().Float64Var(&horizonDays, "horizon-days", 28, "Visibility horizon in days")
	runCmd.Flags().IntVar(&samplesPerDay, "samples-per-day", 24, "Visibility samples per day")
	runCmd.Flags().Float64Var(&uptimeTarget, "uptime-target", 0.99, "Requested total uptime fraction")
	rootCmd.AddCommand(runCmd)
}

// site resolves a scenario city, honoring --config replacements.
func site(cfg Config, name string) (sim.Site, error) {
	s, ok := cfg.Site(name)
	if !ok {
		return sim.Site{}, fmt.Errorf("unknown site %q", name)
	}
	return s, nil
}

// buildTriangle wires the Pretoria client to Johannesburg and on to New
// York, with return links, reporting each link as it is created.
func buildTriangle(phys sim.PhysicsConfig, cfg Config) (*sim.Network, error) {
	pta, err := site(cfg, "Pretoria")
	if err != nil {
		return nil, err
	}
	jhb, err := site(cfg, "Johannesburg")
	if err != nil {
		return nil, err
	}
	nyc, err := site(cfg, "New York")
	if err != nil {
		return nil, err
	}

	net, err := sim.NewNetwork(phys)
	if err != nil {
		return nil, err
	}
	if err := net.AddClient(sim.Client{ID: nodePretoria, Site: pta}); err != nil {
		return nil, err
	}
	if err := net.AddServer(sim.Server{ID: nodeJohannesburg, Site: jhb, ProcessingDelayMs: 0.5, BandwidthBitsPerSec: 100e9}); err != nil {
		return nil, err
	}
	if err := net.AddServer(sim.Server{ID: nodeNewYork, Site: nyc, ProcessingDelayMs: 0.6, BandwidthBitsPerSec: 200e9}); err != nil {
		return nil, err
	}

	for _, pair := range [][2]int{
		{nodePretoria, nodeJohannesburg},
		{nodeJohannesburg, nodeNewYork},
		{nodeNewYork, nodeJohannesburg},
		{nodeJohannesburg, nodePretoria},
	} {
		link, err := net.Connect(pair[0], pair[1], linkBandwidth)
		if err != nil {
			return nil, err
		}
		renderLink(net, link)
	}
	return net, nil
}

func runTerrestrial(phys sim.PhysicsConfig, cfg Config) error {
	net, err := buildTriangle(phys, cfg)
	if err != nil {
		return err
	}
	s, err := sim.NewSimulator(net, horizonMs)
	if err != nil {
		return err
	}

	renderHandshakeDemo(net, nodePretoria, nodeNewYork)
	if err := s.SendPacket(nodePretoria, nodeNewYork, 64, sim.PacketTCPSyn); err != nil {
		return err
	}

	renderBufferbloatDemo(burstSize)
	for i := 0; i < burstSize; i++ {
		if err := s.SendPacket(nodePretoria, nodeJohannesburg, burstBytes, sim.PacketStandard); err != nil {
			return err
		}
	}

	s.Run()
	renderMetrics(s.Metrics, net)

	// Analytic cross-check of the same burst, on the first link's rate.
	q, err := sim.NewQueuingModel(linkBandwidth, 64, burstBytes)
	if err != nil {
		return err
	}
	report, err := q.Burst(burstSize)
	if err != nil {
		return err
	}
	renderQueuingReport(report)

	return renderTakeaway(phys, cfg)
}

func runCDN(phys sim.PhysicsConfig, cfg Config) error {
	net, err := buildTriangle(phys, cfg)
	if err != nil {
		return err
	}
	s, err := sim.NewSimulator(net, horizonMs)
	if err != nil {
		return err
	}

	renderCDNDemo(net, nodePretoria, nodeNewYork, nodeJohannesburg)
	if err := s.SendPacket(nodePretoria, nodeNewYork, 512, sim.PacketCDNRequest); err != nil {
		return err
	}
	if err := s.SendPacket(nodePretoria, nodeJohannesburg, 512, sim.PacketCDNRequest); err != nil {
		return err
	}
	s.Run()
	renderMetrics(s.Metrics, net)
	return nil
}

func runMoon(phys sim.PhysicsConfig) error {
	orbital, err := sim.NewOrbitalLinkModel(phys)
	if err != nil {
		return err
	}
	report, err := orbital.MoonScenario()
	if err != nil {
		return err
	}
	renderMoonScenario(report)
	return nil
}

func runExtension1(phys sim.PhysicsConfig) error {
	orbital, err := sim.NewOrbitalLinkModel(phys)
	if err != nil {
		return err
	}
	sweep, err := orbital.MonthSweep(sweepSamples)
	if err != nil {
		return err
	}
	renderExtension1(sweep.Collect())
	return nil
}

func runExtension2(phys sim.PhysicsConfig) error {
	los, err := sim.NewLineOfSightModel(phys)
	if err != nil {
		return err
	}
	coverage, err := los.Coverage(horizonDays, samplesPerDay)
	if err != nil {
		return err
	}
	assessment, err := sim.AssessUptime(coverage, uptimeTarget)
	if err != nil {
		return err
	}
	renderExtension2(coverage, assessment)
	return nil
}

func runExtension3(phys sim.PhysicsConfig) error {
	orbital, err := sim.NewOrbitalLinkModel(phys)
	if err != nil {
		return err
	}
	comparator, err := sim.NewProtocolStartupComparator(phys)
	if err != nil {
		return err
	}

	mean := (phys.LunarPerigeeKm + phys.LunarApogeeKm) / 2.0
	lt, err := orbital.LightTimeOver(phys.LunarSurfaceDistanceKm(mean))
	if err != nil {
		return err
	}
	result, err := comparator.Compare(lt.OneWayS*1000.0, sim.AllProfiles())
	if err != nil {
		return err
	}
	renderExtension3(result)
	return nil
}
