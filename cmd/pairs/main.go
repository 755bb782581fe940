// pairs is a terminal memory-matching puzzle.
//
// Usage:
//
//	pairs list              - List available puzzles
//	pairs play [game]       - Play a puzzle
//	pairs menu              - Start menu to pick puzzles interactively
//	pairs serve             - Start SSH server for remote play
//	pairs history [game]    - Show the clear history
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible boards
//	--db <path>     - Set database path (default: ~/.arcade/pairs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/games/memory"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Pairs - a memory-matching puzzle in your terminal",
	Long: `Pairs is a terminal memory-matching puzzle. Reveal two tiles per turn,
matched pairs stay face-up, and a board is cleared when every pair is found.
Each level doubles into a bigger grid.

Available commands:
  list     - Show all available puzzles
  play     - Play a puzzle directly
  menu     - Interactive puzzle picker menu
  serve    - Start SSH server for remote play
  history  - View the clear history
  stats    - Clear totals per puzzle
  config   - Print the puzzle config

Examples:
  pairs list
  pairs play
  pairs play memory_strict --level 2
  pairs menu
  pairs serve --ssh :2222
  pairs history memory`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/pairs.db", "Path to clear history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom puzzle config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig builds the runtime config from the global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if user := os.Getenv("USER"); user != "" {
		cfg.Player = user
	}
	return cfg
}

// applyPuzzleFlags hands --config and --difficulty to the puzzle package
// and returns the configured maximum level.
func applyPuzzleFlags() (int, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return 0, err
	}
	memory.SetConfigPath(flagConfig)
	memory.SetDifficultyPreset(preset)

	cfg, err := config.LoadMemory(flagConfig)
	if err != nil {
		return 0, err
	}
	return cfg.Board.MaxLevel, nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
