package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/platform/tui"
	"github.com/vovakirdan/tui-pairs/internal/registry"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var (
	flagLevel    int
	flagContinue bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a puzzle",
	Long: `Start playing the specified puzzle (default: memory).

Controls:
  Arrows/WASD/HJKL  - Move cursor
  Space/Enter       - Flip tile, or next level after a clear
  Mouse click       - Flip tile
  P/Esc             - Pause
  R                 - Restart (after the last level)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slow resets, shortening as levels grow
  normal - Default reset delay, shortening as levels grow
  hard   - Fast resets from the first level
  fixed  - Reset delay never changes

Examples:
  pairs play
  pairs play memory_strict
  pairs play --level 3
  pairs play --continue
  pairs play --difficulty hard --config ./my-memory.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start at (0 = from config)")
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Start after your best cleared level")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "memory"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown puzzle %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'pairs list' to see available puzzles.")
		os.Exit(1)
	}

	maxLevel, err := applyPuzzleFlags()
	if err != nil {
		fail("%v", err)
	}
	if flagLevel < 0 {
		fail("level must be positive, got %d", flagLevel)
	}

	cfg := runtimeConfig()

	// Open clear history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		// Continue without storage - the puzzle still works
		store = nil
	}

	switch {
	case flagLevel > 0:
		cfg.StartLevel = flagLevel
	case flagContinue:
		cfg.StartLevel = tui.ResumeLevel(store, gameID, cfg.Player, maxLevel)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fail("creating puzzle: %v", err)
	}

	runErr := tui.Run(game, tui.NewClearRecorder(store, cfg.Player, ""), cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running puzzle: %v", runErr)
	}
}
