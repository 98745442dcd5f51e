package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

var flagValidate bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would start with, after the config
file, INVADERS_* environment overrides and --difficulty are applied.

Config search order:
  --config <path>
  ~/.invaders/configs/invaders.yaml
  ./configs/invaders.yaml
  built-in defaults

Examples:
  invaders config > my-invaders.yaml
  invaders config --config ./my-invaders.yaml --validate
  INVADERS_PLAYER_LIVES=5 invaders config`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagValidate, "validate", false, "Only check the configuration")
}

func runConfig(cmd *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		fail("creating logger", err)
	}
	defer closeLog()

	cfg, _, err := loadConfig(logger)
	if err != nil {
		fail("loading config", err)
	}

	if flagValidate {
		fmt.Println("Config OK")
		return
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fail("printing config", err)
	}
	os.Stdout.Write(data)
}
