package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/stlmesh/internal/config"
	"github.com/philipparndt/stlmesh/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	// cfg is loaded before every command runs
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gostl",
	Short: "A modern CLI tool for inspecting and measuring STL files",
	Long: `gostl is a command-line tool for analyzing STL (Stereolithography) files.
It reads and writes both ASCII and binary STL and computes surface area,
enclosed volume and centroids, along with edge and triangle statistics.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a gostl.yaml configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if err := setupLogging(verbose); err != nil {
		return err
	}
	setupStyles(cmd.OutOrStdout(), cfg.Output.Color)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
