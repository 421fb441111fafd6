package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/capnchainsaw/WastelandSurvivor/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the search path and difficulty preset
are applied. Redirect it to ~/.wasteland/configs/wasteland.yaml to start
customizing.

Examples:
  wasteland config
  wasteland config --difficulty hard > ~/.wasteland/configs/wasteland.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fail("%v", err)
	}
	os.Stdout.Write(data)
}
