package memory

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StatePaused       GameStateType = "paused"
	StateLevelCleared GameStateType = "level_cleared"
	StateFinished     GameStateType = "finished"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// TileSnapshot is the visible state of one cell.
type TileSnapshot struct {
	ID      int
	Value   int
	Flipped bool
	Matched bool
}

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Level     int
	CursorRow int
	CursorCol int
	Flips     int
	Pending   int // Pending tile id, -1 if none
	Cells     [][]TileSnapshot
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.finished:
		state = StateFinished
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:      g.tick,
		CursorRow: g.cursorY,
		CursorCol: g.cursorX,
		Pending:   -1,
		State:     state,
	}
	if g.board == nil {
		return snap
	}

	snap.Level = g.board.Level()
	snap.Flips = g.board.Flips()
	if p := g.board.Pending(); p != nil {
		snap.Pending = p.ID()
	}
	for _, row := range g.board.Cells() {
		cells := make([]TileSnapshot, len(row))
		for i, tile := range row {
			cells[i] = TileSnapshot{
				ID:      tile.ID(),
				Value:   tile.Value(),
				Flipped: tile.Flipped(),
				Matched: tile.Matched(),
			}
		}
		snap.Cells = append(snap.Cells, cells)
	}
	return snap
}
