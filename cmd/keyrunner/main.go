// keyrunner is a terminal maze runner: collect every key while a hunter
// closes in, then drop through the opened floor to the next maze.
//
// Usage:
//
//	keyrunner list             - List game modes
//	keyrunner play [mode]      - Play a mode (default: keyrunner)
//	keyrunner menu             - Pick modes interactively
//	keyrunner serve            - Start SSH server for remote play
//	keyrunner scores [mode]    - Show high scores and recent runs
//	keyrunner gen              - Print generated mazes
//	keyrunner autoplay         - Let the autopilot play a headless run
//	keyrunner config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible mazes
//	--db <path>          - Set database path (default: ~/.keyrunner/scores.db)
//	--config <path>      - Use a custom YAML config
//	--difficulty <name>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/keyrunner/internal/config"
	"github.com/vovakirdan/keyrunner/internal/games/keyrunner"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	// gameConfig is the configuration after file, environment and preset.
	gameConfig config.KeyRunnerConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "keyrunner",
	Short: "Key Runner - a maze chase in your terminal",
	Long: `Key Runner drops you into a random maze with a hunter on your tail.
Collect every key to open the floor, then escape downwards to the next maze.

Available commands:
  list      - Show game modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  serve     - Start SSH server for remote play
  scores    - View high scores and recent runs
  gen       - Print generated mazes
  autoplay  - Watch the autopilot play headless
  config    - Print the effective configuration

Examples:
  keyrunner play
  keyrunner play keyrunner_astar --difficulty hard
  keyrunner gen --seed 42 --count 3
  keyrunner serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: loadGameConfig,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.keyrunner/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig resolves the configuration once for every command and
// installs it for new games.
func loadGameConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		config.ApplyKeyRunnerPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	gameConfig = cfg
	keyrunner.SetConfig(cfg)
	return nil
}

// newLogger returns a stderr logger at the requested level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// fileLogger writes to ~/.keyrunner/keyrunner.log while a TUI owns the
// terminal. It falls back to a discarding logger.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, func() {}
	}
	dir := filepath.Join(home, ".keyrunner")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "keyrunner.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, func() {}
	}

	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "keyrunner"})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return logger, func() { f.Close() }
}

// playerName is the local user name recorded with runs.
func playerName() string {
	for _, k := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return "player"
}
