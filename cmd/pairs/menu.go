package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/platform/tui"
	"github.com/vovakirdan/tui-pairs/internal/registry"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a puzzle picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a puzzle, then choose
a starting level. After a run ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Clear history
  Q            - Quit

Examples:
  pairs menu
  pairs menu --fps 30
  pairs menu --db ./pairs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	maxLevel, err := applyPuzzleFlags()
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()
	recorder := tui.NewClearRecorder(store, cfg.Player, "")
	historyGame := "memory"

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(store, historyGame, cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue
			}
			break
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}
		historyGame = gameID

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating puzzle: %v\n", err)
			continue
		}

		resume := tui.ResumeLevel(store, gameID, cfg.Player, maxLevel)
		selection, updatedCfg, selErr := tui.RunLevelSelector(cfg, game.Title(), maxLevel, resume)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			continue
		}
		cfg = updatedCfg

		// User pressed back or quit
		if selection == nil {
			continue
		}

		runCfg := cfg
		runCfg.StartLevel = selection.Level
		if flagSeed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, recorder, runCfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running puzzle: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
