package memory

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// DefaultResetDelay is how long an unmatched tile stays face-up.
const DefaultResetDelay = 1200 * time.Millisecond

var (
	// ErrInvalidLevel is returned when a board is requested for a level below 1.
	ErrInvalidLevel = errors.New("memory: level must be a positive integer")

	// ErrOutOfRange is returned for grid coordinates outside the board.
	ErrOutOfRange = errors.New("memory: cell out of range")
)

// TurnPolicy controls whether a flip is accepted while a mismatch is still
// face-up.
type TurnPolicy string

const (
	// PolicyReplace accepts every flip; the newest reveal becomes pending and
	// older reveals wait for their own reset.
	PolicyReplace TurnPolicy = "replace"

	// PolicyStrict ignores flips of hidden tiles while two or more unmatched
	// tiles are face-up. Face-up tiles can still be flipped again.
	PolicyStrict TurnPolicy = "strict"
)

// ParsePolicy converts a config string to a TurnPolicy.
// The empty string selects PolicyReplace.
func ParsePolicy(s string) (TurnPolicy, error) {
	switch TurnPolicy(s) {
	case "", PolicyReplace:
		return PolicyReplace, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("memory: unknown turn policy %q", s)
	}
}

// Options configures board construction. Zero values select defaults.
type Options struct {
	Sequence   *Sequence  // Tile id source; a fresh sequence from 0 if nil
	Rand       *rand.Rand // Shuffle source; time-seeded if nil
	Scheduler  Scheduler  // Deferred reset timer; TimerScheduler if nil
	ResetDelay time.Duration
	Policy     TurnPolicy
}

func (o Options) withDefaults() Options {
	if o.Sequence == nil {
		o.Sequence = NewSequence(0)
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Scheduler == nil {
		o.Scheduler = TimerScheduler{}
	}
	if o.ResetDelay <= 0 {
		o.ResetDelay = DefaultResetDelay
	}
	if o.Policy == "" {
		o.Policy = PolicyReplace
	}
	return o
}

// resetToken identifies the latest deferred reset scheduled for a tile.
type resetToken struct {
	cancel Cancel
}

// Board owns a size x size grid of paired tiles and runs the
// flip/match/reset protocol. All methods are safe for concurrent use.
type Board struct {
	mu sync.Mutex

	level int
	size  int
	tiles []*Tile
	cells [][]*Tile
	byID  map[int]*Tile

	pending *Tile
	resets  map[*Tile]*resetToken
	flips   int

	scheduler  Scheduler
	resetDelay time.Duration
	policy     TurnPolicy

	observers []*subscription
}

// NewBoard generates a shuffled board for the given level.
// The grid is level*2 tiles on each side.
func NewBoard(level int, opts Options) (*Board, error) {
	if level < 1 {
		return nil, ErrInvalidLevel
	}
	opts = opts.withDefaults()

	size := level * 2
	pairs := size * size / 2

	b := &Board{
		level:      level,
		size:       size,
		tiles:      make([]*Tile, 0, size*size),
		byID:       make(map[int]*Tile, size*size),
		resets:     make(map[*Tile]*resetToken),
		scheduler:  opts.Scheduler,
		resetDelay: opts.ResetDelay,
		policy:     opts.Policy,
	}

	// Two tiles per value
	randomTiles := make([]*Tile, 0, size*size)
	for value := 1; value <= pairs; value++ {
		for range 2 {
			tile := newTile(opts.Sequence.Next(), value)
			b.tiles = append(b.tiles, tile)
			b.byID[tile.id] = tile
			randomTiles = append(randomTiles, tile)
		}
	}

	randomTiles = Shuffle(opts.Rand, randomTiles)

	// Deal row-major from the back of the shuffled list
	b.cells = make([][]*Tile, size)
	for y := range size {
		row := make([]*Tile, size)
		for x := range size {
			last := len(randomTiles) - 1
			row[x] = randomTiles[last]
			randomTiles = randomTiles[:last]
		}
		b.cells[y] = row
	}

	return b, nil
}

// NewBoardFromCounter builds a board at the counter's current level.
func NewBoardFromCounter(c *Counter, opts Options) (*Board, error) {
	return NewBoard(c.Current(), opts)
}

// Flip reveals tile and resolves the turn.
//
// It returns true when the tile is (or already was) matched, and false when
// the tile is left face-up pending a partner or the flip was ignored.
func (b *Board) Flip(tile *Tile) bool {
	b.mu.Lock()
	var events []Event
	matched := b.flipLocked(tile, &events)
	observers := b.observersLocked()
	b.mu.Unlock()

	b.notify(observers, events)
	return matched
}

// FlipAt flips the tile at (row, col).
func (b *Board) FlipAt(row, col int) (bool, error) {
	tile := b.Cell(row, col)
	if tile == nil {
		return false, fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfRange, row, col, b.size, b.size)
	}
	return b.Flip(tile), nil
}

func (b *Board) flipLocked(tile *Tile, events *[]Event) bool {
	if tile == nil || b.byID[tile.id] != tile {
		return false
	}

	// Matched tiles are terminal
	if tile.Matched() {
		return true
	}

	if b.policy == PolicyStrict && !tile.Flipped() && b.unresolvedLocked() >= 2 {
		return false
	}

	b.flips++

	if tile.IsMatch(b.pending) {
		partner := b.pending
		partner.MarkMatched()
		tile.MarkMatched()
		b.cancelResetLocked(partner)
		b.cancelResetLocked(tile)
		b.pending = nil

		*events = append(*events, Event{Kind: EventMatched, Tile: tile, Partner: partner})
		if b.hasWonLocked() {
			*events = append(*events, Event{Kind: EventWon})
		}
		return true
	}

	tile.flipped.Store(true)
	b.scheduleResetLocked(tile)
	b.pending = tile

	*events = append(*events, Event{Kind: EventFlipped, Tile: tile})
	return false
}

// scheduleResetLocked arms the deferred reset for tile, superseding any
// earlier reset still outstanding for it.
func (b *Board) scheduleResetLocked(tile *Tile) {
	b.cancelResetLocked(tile)

	token := &resetToken{}
	b.resets[tile] = token
	token.cancel = b.scheduler.Schedule(b.resetDelay, func() {
		b.fireReset(tile, token)
	})
}

func (b *Board) cancelResetLocked(tile *Tile) {
	token, ok := b.resets[tile]
	if !ok {
		return
	}
	delete(b.resets, tile)
	if token.cancel != nil {
		token.cancel()
	}
}

// fireReset hides tile unless it matched (or was re-flipped) since the
// reset was scheduled.
func (b *Board) fireReset(tile *Tile, token *resetToken) {
	b.mu.Lock()
	if b.resets[tile] != token {
		b.mu.Unlock()
		return
	}
	delete(b.resets, tile)

	// Read matched at fire time, not schedule time
	if tile.Matched() {
		b.mu.Unlock()
		return
	}

	tile.flipped.Store(false)
	if b.pending == tile {
		b.pending = nil
	}
	observers := b.observersLocked()
	b.mu.Unlock()

	b.notify(observers, []Event{{Kind: EventHidden, Tile: tile}})
}

// HasWon reports whether every tile is matched.
func (b *Board) HasWon() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasWonLocked()
}

func (b *Board) hasWonLocked() bool {
	for _, tile := range b.tiles {
		if !tile.Matched() {
			return false
		}
	}
	return true
}

// unresolvedLocked counts face-up tiles that are not matched.
func (b *Board) unresolvedLocked() int {
	n := 0
	for _, tile := range b.tiles {
		if tile.Flipped() && !tile.Matched() {
			n++
		}
	}
	return n
}

// Subscribe registers fn for board events and returns a function that
// removes it.
func (b *Board) Subscribe(fn Observer) func() {
	sub := &subscription{fn: fn}

	b.mu.Lock()
	b.observers = append(b.observers, sub)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.observers {
			if s == sub {
				b.observers = append(b.observers[:i], b.observers[i+1:]...)
				return
			}
		}
	}
}

func (b *Board) observersLocked() []Observer {
	if len(b.observers) == 0 {
		return nil
	}
	fns := make([]Observer, len(b.observers))
	for i, s := range b.observers {
		fns[i] = s.fn
	}
	return fns
}

func (b *Board) notify(observers []Observer, events []Event) {
	for _, ev := range events {
		for _, fn := range observers {
			fn(ev)
		}
	}
}

// Level returns the board's level.
func (b *Board) Level() int {
	return b.level
}

// Size returns the number of rows (and columns).
func (b *Board) Size() int {
	return b.size
}

// Pairs returns the number of value pairs on the board.
func (b *Board) Pairs() int {
	return len(b.tiles) / 2
}

// Tiles returns every tile in generation order.
func (b *Board) Tiles() []*Tile {
	out := make([]*Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// Cells returns a copy of the grid, indexed [row][col].
func (b *Board) Cells() [][]*Tile {
	out := make([][]*Tile, b.size)
	for y, row := range b.cells {
		out[y] = make([]*Tile, len(row))
		copy(out[y], row)
	}
	return out
}

// Cell returns the tile at (row, col), or nil if out of range.
func (b *Board) Cell(row, col int) *Tile {
	if row < 0 || row >= b.size || col < 0 || col >= b.size {
		return nil
	}
	return b.cells[row][col]
}

// Pending returns the most recently revealed unmatched tile, or nil.
func (b *Board) Pending() *Tile {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending
}

// MatchedPairs returns the number of pairs found so far.
func (b *Board) MatchedPairs() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, tile := range b.tiles {
		if tile.Matched() {
			n++
		}
	}
	return n / 2
}

// Flips returns how many flips changed the board.
func (b *Board) Flips() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flips
}

// Policy returns the board's turn policy.
func (b *Board) Policy() TurnPolicy {
	return b.policy
}
