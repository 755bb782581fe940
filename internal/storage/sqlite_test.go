package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	clears := []Clear{
		{GameID: "memory", Player: "ann", Level: 1, Flips: 6, Duration: 4 * time.Second},
		{GameID: "memory", Player: "ann", Level: 2, Flips: 30, Duration: 40 * time.Second},
		{GameID: "memory", Player: "bob", Level: 2, Flips: 22, Duration: 35 * time.Second},
		{GameID: "memory_strict", Player: "ann", Level: 1, Flips: 4},
	}
	for _, c := range clears {
		if _, err := store.SaveClear(c); err != nil {
			t.Fatalf("SaveClear() failed: %v", err)
		}
	}

	top, err := store.TopClears("memory", 10)
	if err != nil {
		t.Fatalf("TopClears() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 clears, got %d", len(top))
	}

	// Level descending, then fewer flips
	if top[0].Player != "bob" || top[0].Level != 2 {
		t.Errorf("Expected bob's level 2 clear first, got %+v", top[0])
	}
	if top[1].Player != "ann" || top[1].Level != 2 {
		t.Errorf("Expected ann's level 2 clear second, got %+v", top[1])
	}
	if top[2].Level != 1 {
		t.Errorf("Expected level 1 clear last, got %+v", top[2])
	}
	if top[0].Duration != 35*time.Second {
		t.Errorf("Duration round-trip = %v, want 35s", top[0].Duration)
	}

	strict, err := store.TopClears("memory_strict", 10)
	if err != nil {
		t.Fatalf("TopClears() failed: %v", err)
	}
	if len(strict) != 1 {
		t.Errorf("Expected 1 strict clear, got %d", len(strict))
	}
}

func TestStoreTopClearsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveClear(Clear{GameID: "test", Level: i + 1})
	}

	top, err := store.TopClears("test", 3)
	if err != nil {
		t.Fatalf("TopClears() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 clears with limit, got %d", len(top))
	}
	if top[0].Level != 5 || top[1].Level != 4 || top[2].Level != 3 {
		t.Errorf("Clears not in expected order: %v", top)
	}
}

func TestStoreHighestLevel(t *testing.T) {
	store := openTestStore(t)

	// No clears yet
	level, err := store.HighestLevel("memory", "ann")
	if err != nil {
		t.Fatalf("HighestLevel() failed: %v", err)
	}
	if level != 0 {
		t.Errorf("Expected 0 for empty history, got %d", level)
	}

	store.SaveClear(Clear{GameID: "memory", Player: "ann", Level: 1})
	store.SaveClear(Clear{GameID: "memory", Player: "ann", Level: 3})
	store.SaveClear(Clear{GameID: "memory", Player: "bob", Level: 5})
	store.SaveClear(Clear{GameID: "memory_strict", Player: "ann", Level: 4})

	level, err = store.HighestLevel("memory", "ann")
	if err != nil {
		t.Fatalf("HighestLevel() failed: %v", err)
	}
	if level != 3 {
		t.Errorf("Expected highest level 3, got %d", level)
	}
}

func TestStoreRecentAndPlayerClears(t *testing.T) {
	store := openTestStore(t)

	store.SaveClear(Clear{GameID: "memory", Player: "ann", Session: "s1", Level: 1})
	store.SaveClear(Clear{GameID: "memory", Player: "bob", Session: "s2", Level: 1})
	store.SaveClear(Clear{GameID: "memory", Player: "ann", Session: "s1", Level: 2})

	recent, err := store.RecentClears(2)
	if err != nil {
		t.Fatalf("RecentClears() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 recent clears, got %d", len(recent))
	}
	if recent[0].Level != 2 || recent[0].Player != "ann" {
		t.Errorf("Expected newest clear first, got %+v", recent[0])
	}

	mine, err := store.PlayerClears("ann", 10)
	if err != nil {
		t.Fatalf("PlayerClears() failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("Expected 2 clears for ann, got %d", len(mine))
	}
	for _, c := range mine {
		if c.Session != "s1" {
			t.Errorf("Session round-trip = %q, want s1", c.Session)
		}
	}
}

func TestStoreClearHistory(t *testing.T) {
	store := openTestStore(t)

	store.SaveClear(Clear{GameID: "memory", Level: 1})
	store.SaveClear(Clear{GameID: "memory", Level: 2})
	store.SaveClear(Clear{GameID: "memory_strict", Level: 1})

	if err := store.ClearHistory("memory"); err != nil {
		t.Fatalf("ClearHistory() failed: %v", err)
	}

	top, _ := store.TopClears("memory", 10)
	if len(top) != 0 {
		t.Errorf("Expected 0 clears after ClearHistory, got %d", len(top))
	}

	// Other games untouched
	strict, _ := store.TopClears("memory_strict", 10)
	if len(strict) != 1 {
		t.Errorf("Expected 1 strict clear, got %d", len(strict))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveClear(Clear{GameID: "memory", Level: 1, Flips: 4})
	store.SaveClear(Clear{GameID: "memory", Level: 2, Flips: 20})
	store.SaveClear(Clear{GameID: "memory_strict", Level: 1, Flips: 6})

	stats, err := store.GetGameStats("memory")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Clears != 2 || stats.HighestLevel != 2 || stats.TotalFlips != 24 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgFlips != 12 {
		t.Errorf("Expected average 12 flips, got %v", stats.AvgFlips)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected LastPlayed to be set")
	}

	empty, err := store.GetGameStats("unknown")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.Clears != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["memory_strict"].Clears != 1 {
		t.Errorf("Unexpected all-games stats: %v", all)
	}
}
