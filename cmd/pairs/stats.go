package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/registry"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show clear totals for every puzzle",
	Long: `Summarize the clear history per puzzle: number of clears, best level,
average flips per board and when it was last played.

Examples:
  pairs stats
  pairs stats --db ./pairs.db`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening history database: %v", err)
	}
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		fail("%v", err)
	}

	if len(all) == 0 {
		fmt.Println("No clears recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-18s  %-6s  %-5s  %-9s  %s\n", "Puzzle", "Clears", "Best", "Avg flips", "Last played")
	fmt.Printf("  %-18s  %-6s  %-5s  %-9s  %s\n", "------", "------", "----", "---------", "-----------")

	for _, id := range ids {
		st := all[id]
		name := id
		if g, err := registry.Create(id); err == nil {
			name = g.Title()
		}
		fmt.Printf("  %-18s  %-6d  %-5d  %-9.1f  %s\n",
			name, st.Clears, st.HighestLevel, st.AvgFlips, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
