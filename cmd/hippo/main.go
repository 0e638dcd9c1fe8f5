package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hippo",
		Short: "Spatial cognition and synaptic learning for simulated agents",
		Long: `hippo simulates the spatial memory of autonomous agents: multi-scale
localization from place and grid cells, a learned landmark graph,
Hebbian synaptic plasticity, path value learning, and periodic memory
consolidation.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newEventsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
