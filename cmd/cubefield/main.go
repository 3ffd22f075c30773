// cubefield opens the Cubefield window and runs the game loop.
//
// Usage:
//
//	cubefield                 - Run the game
//	cubefield inspect         - Watch frame statistics of a running game
//	cubefield config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - YAML config file (default: ~/.cubefield/config.yaml)
//	--root <dir>        - Installation root holding assets/ (default: executable dir)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cubefield/internal/config"
	"cubefield/internal/cubefield"
)

var (
	// Global flags
	flagConfig   string
	flagRoot     string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cubefield",
	Short: "Cubefield - a shaded 3D window",
	Long: `Cubefield opens a 1024x768 window and renders a shaded 3D scene
over a light grey background.

Examples:
  cubefield
  cubefield --inspect :7878
  cubefield --root /opt/cubefield --log-level debug
  cubefield inspect --url ws://localhost:7878/ws`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGame,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "Installation root directory (overrides $CUBEFIELD_ROOT)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig overlays the config file and command-line flags on the
// Cubefield defaults.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig, cubefield.Config())
	if err != nil {
		return cfg, err
	}
	if flagLogLevel != "" {
		cfg.Logger.Level = flagLogLevel
	}
	return cfg, nil
}
