// wasteland is a turn-based survival roguelike for the terminal.
//
// Usage:
//
//	wasteland play            - Resume the saved game or start a new one
//	wasteland new             - Discard the save and start fresh
//	wasteland scores          - Show the deepest runs
//	wasteland saves           - List the SSH save slots
//	wasteland serve           - Start SSH server for remote play
//	wasteland config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Animation tick rate (default: 30)
//	--seed <value>        - RNG seed for reproducible boards
//	--db <path>           - Database path (default: ~/.wasteland/wasteland.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/capnchainsaw/WastelandSurvivor/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wasteland",
	Short: "Wasteland Survivor - scavenge, fight and starve in your terminal",
	Long: `Wasteland Survivor is a turn-based survival roguelike. Cross procedurally
generated boards, smash walls, fight off scavengers and find the exit
before your food runs out.

Available commands:
  play     - Resume the saved game or start a new one
  new      - Start a fresh game, discarding the save
  scores   - Show the deepest runs
  saves    - List the save slots of SSH players
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  wasteland play
  wasteland play --difficulty hard
  wasteland scores --tui
  wasteland serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Animation tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.wasteland/wasteland.db", "Path to runs and saves database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies the difficulty preset.
func loadConfig() (config.WastelandConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
