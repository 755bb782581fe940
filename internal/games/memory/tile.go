package memory

import "sync/atomic"

// Tile is a single grid cell holding a pair value.
// Identity and value never change; the matched and flipped flags are owned
// by the Board that created the tile.
type Tile struct {
	id      int
	value   int
	matched atomic.Bool
	flipped atomic.Bool
}

func newTile(id, value int) *Tile {
	return &Tile{id: id, value: value}
}

// ID returns the tile's unique identifier.
func (t *Tile) ID() int {
	return t.id
}

// Value returns the pair label (1..N).
func (t *Tile) Value() int {
	return t.value
}

// Matched reports whether the tile has been paired.
func (t *Tile) Matched() bool {
	return t.matched.Load()
}

// Flipped reports whether the tile is face-up awaiting a partner.
func (t *Tile) Flipped() bool {
	return t.flipped.Load()
}

// Revealed reports whether the tile's value should be shown.
func (t *Tile) Revealed() bool {
	return t.Matched() || t.Flipped()
}

// IsMatch reports whether other is a different tile with the same value.
// A nil tile never matches.
func (t *Tile) IsMatch(other *Tile) bool {
	if other == nil {
		return false
	}
	return other.id != t.id && other.value == t.value
}

// MarkMatched marks the tile as matched. Idempotent.
func (t *Tile) MarkMatched() {
	t.matched.Store(true)
}
