package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/keyrunner/internal/core"
	"github.com/vovakirdan/keyrunner/internal/games/keyrunner"
	"github.com/vovakirdan/keyrunner/internal/platform/tui"
	"github.com/vovakirdan/keyrunner/internal/registry"
	"github.com/vovakirdan/keyrunner/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start a run in the given mode.

Controls:
  Arrows/WASD/hjkl - Move
  P/Space          - Pause
  R                - Restart the run
  Esc              - Leave
  Ctrl+S           - Save a screenshot to ~/.keyrunner/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Sparse walls, being caught only costs time
  normal - Starts at 30% hunter speed-up, grows with score
  hard   - Denser walls and an A* hunter
  fixed  - No progression, stays at the config's initial level

Examples:
  keyrunner play
  keyrunner play keyrunner_astar
  keyrunner play --difficulty easy
  keyrunner play --seed 42 --config ./my-maze.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := string(keyrunner.ModeClassic)
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'keyrunner list' to see modes", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	_, err = tui.Run(game, store, terminalConfig(), tui.Options{Player: playerName(), Logger: logger})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	if kr, ok := game.(*keyrunner.Game); ok && kr.Err() != nil {
		return kr.Err()
	}
	return nil
}

// terminalConfig sizes the screen to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
