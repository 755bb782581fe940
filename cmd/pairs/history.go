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
	flagInteractive bool
	flagPlayer      string
	flagRecent      bool
	flagReset       bool
	flagLimit       int
)

var historyCmd = &cobra.Command{
	Use:   "history [game]",
	Short: "Show the clear history for a puzzle",
	Long: `Display the best clears for the specified puzzle (default: memory).
Clears rank by level reached, then fewest flips, then fastest time.

Examples:
  pairs history
  pairs history memory_strict
  pairs history --player alice
  pairs history --recent
  pairs history -i
  pairs history --reset`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive history board")
	historyCmd.Flags().StringVar(&flagPlayer, "player", "", "Show the latest clears of one player")
	historyCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest clears across all puzzles")
	historyCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the history of the puzzle")
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of clears to show")
}

func runHistory(cmd *cobra.Command, args []string) {
	gameID := "memory"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown puzzle %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'pairs list' to see available puzzles.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating puzzle: %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening history database: %v", err)
	}
	defer store.Close()

	var (
		clears []storage.Clear
		title  string
	)
	switch {
	case flagReset:
		if err := store.ClearHistory(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("History for %s deleted.\n", game.Title())
		return

	case flagInteractive:
		cfg := runtimeConfig()
		if _, err := tui.RunHistory(store, gameID, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return

	case flagPlayer != "":
		title = "Latest Clears - " + flagPlayer
		clears, err = store.PlayerClears(flagPlayer, flagLimit)

	case flagRecent:
		title = "Latest Clears"
		clears, err = store.RecentClears(flagLimit)

	default:
		title = "Clear History - " + game.Title()
		clears, err = store.TopClears(gameID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving clears: %v\n", err)
		return
	}

	fmt.Println(title)
	fmt.Println()

	if len(clears) == 0 {
		fmt.Println("No clears recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pairs play %s' to record the first one!\n", gameID)
		return
	}

	printClears(clears)

	if flagPlayer == "" && !flagRecent {
		if stats, err := store.GetGameStats(gameID); err == nil {
			fmt.Println()
			fmt.Printf("Clears: %d  Best level: %d  Avg flips: %.1f\n", stats.Clears, stats.HighestLevel, stats.AvgFlips)
		}
	}
}

func printClears(clears []storage.Clear) {
	fmt.Printf("  %-4s  %-14s  %-12s  %-5s  %-5s  %-6s  %s\n", "Rank", "Puzzle", "Player", "Level", "Flips", "Time", "Date")
	fmt.Printf("  %-4s  %-14s  %-12s  %-5s  %-5s  %-6s  %s\n", "----", "------", "------", "-----", "-----", "----", "----")

	for i, c := range clears {
		secs := int(c.Duration.Seconds())
		elapsed := fmt.Sprintf("%d:%02d", secs/60, secs%60)
		fmt.Printf("  %-4d  %-14s  %-12s  %-5d  %-5d  %-6s  %s\n",
			i+1, c.GameID, c.Player, c.Level, c.Flips, elapsed, c.CreatedAt.Format("2006-01-02 15:04"))
	}
}
