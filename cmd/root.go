package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags shared across subcommands
	logLevel   string // Log verbosity level
	configPath string // Optional YAML overriding physics constants and sites
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "latency-sim",
	Short: "First-principles network latency estimates, from city pairs to the Moon",
	Long: `latency-sim computes what physics says about network latency: great-circle
distance through winding fiber for terrestrial paths, light time over the
lunar orbit for Earth-Moon links, and the round-trip tax each handshake
protocol pays on top. The point it makes: distance and signaling overhead
dominate round-trip time, not application code.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file overriding physics constants and scenario sites")
}
