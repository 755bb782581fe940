package memory

// EventKind identifies a board state change.
type EventKind int

const (
	EventFlipped EventKind = iota + 1 // A tile was revealed and is now pending
	EventMatched                      // Tile and Partner were paired
	EventHidden                       // A deferred reset hid an unmatched tile
	EventWon                          // Every tile is matched
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventFlipped:
		return "flipped"
	case EventMatched:
		return "matched"
	case EventHidden:
		return "hidden"
	case EventWon:
		return "won"
	default:
		return "unknown"
	}
}

// Event describes a change to the board.
type Event struct {
	Kind    EventKind
	Tile    *Tile
	Partner *Tile // Set for EventMatched
}

// Observer receives board events. It is called without the board lock held,
// so it may read the board freely.
type Observer func(Event)

type subscription struct {
	fn Observer
}
