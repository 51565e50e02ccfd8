package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/keyrunner/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use, after the config file,
KEYRUNNER_* environment variables (also read from ./.env) and the
difficulty preset. Redirect it to a file to start a custom config.

Examples:
  keyrunner config > my-maze.yaml
  keyrunner config --defaults
  KEYRUNNER_STRATEGY=astar keyrunner config`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}
	out, err := config.Marshal(gameConfig)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
