package memory

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/registry"
)

// Game adapts the puzzle engine to the arcade platform: it owns the session
// level counter, moves a cursor over the board and advances the reset
// scheduler once per tick.
type Game struct {
	strict bool
	cfg    config.MemoryConfig
	diff   *config.DifficultyManager

	rng     *rand.Rand
	seq     *Sequence
	sched   *TickScheduler
	counter *Counter
	board   *Board
	unsub   func()

	tick    uint64
	tickDur time.Duration

	cursorX int
	cursorY int

	cleared      int  // Highest level cleared this run
	boards       int  // Boards dealt this run
	justCleared  bool // Set by the won event, reported by the next Step
	levelCleared bool
	finished     bool
	paused       bool
	tooSmall     bool

	status      string
	statusTicks int

	// Screen layout
	screenW int
	screenH int
	boardX  int
	boardY  int
	rowStep int
}

// Package-level variables for config
var (
	configPath         string
	difficultyPreset   config.DifficultyPreset
	selectedStartLevel int
)

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on the next Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetStartLevel sets the level the next run starts at. 0 uses the config.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// New creates a memory game that takes its turn policy from config.
func New() *Game {
	return &Game{}
}

// NewStrict creates a memory game that always uses the strict turn policy.
func NewStrict() *Game {
	return &Game{strict: true}
}

func init() {
	registry.Register("memory", func() registry.Game {
		return New()
	})
	registry.Register("memory_strict", func() registry.Game {
		return NewStrict()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.strict {
		return "memory_strict"
	}
	return "memory"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.strict {
		return "Memory (Strict)"
	}
	return "Memory"
}

// Reset initializes/restarts the run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	mcfg, err := config.LoadMemory(configPath)
	if err != nil {
		mcfg = config.DefaultMemoryConfig()
	}
	config.ApplyMemoryPreset(&mcfg, difficultyPreset)
	g.cfg = mcfg
	g.diff = config.NewDifficultyManager(mcfg.Difficulty)

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.seq = NewSequence(mcfg.Board.SequenceOrigin)
	g.tick = 0

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.tickDur = time.Second / time.Duration(tickRate)

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.cleared = 0
	g.boards = 0
	g.justCleared = false
	g.finished = false
	g.paused = false
	g.setStatus("")

	// Start level: runtime config, then menu selection, then file config
	start := mcfg.Board.StartLevel
	switch {
	case cfg.StartLevel > 0:
		start = cfg.StartLevel
	case selectedStartLevel > 0:
		start = selectedStartLevel
		selectedStartLevel = 0 // Reset after use
	}
	g.counter = NewCounter(start, max(mcfg.Board.MaxLevel, start))

	g.loadBoard()
}

// policy resolves the turn policy for this game.
func (g *Game) policy() TurnPolicy {
	if g.strict {
		return PolicyStrict
	}
	p, err := ParsePolicy(g.cfg.Rules.Policy)
	if err != nil {
		return PolicyReplace
	}
	return p
}

// loadBoard builds a board at the counter's level and subscribes to it.
func (g *Game) loadBoard() {
	if g.unsub != nil {
		g.unsub()
		g.unsub = nil
	}

	level := g.counter.Current()
	base := time.Duration(g.cfg.Timing.ResetDelayMS) * time.Millisecond

	// Fresh clock per board so resets left over from the last board never fire
	g.sched = NewTickScheduler()
	board, err := NewBoardFromCounter(g.counter, Options{
		Sequence:   g.seq,
		Rand:       g.rng,
		Scheduler:  g.sched,
		ResetDelay: g.diff.ResetDelay(base, level),
		Policy:     g.policy(),
	})
	if err != nil {
		g.finished = true
		g.setStatus(err.Error())
		return
	}

	g.board = board
	g.boards++
	g.unsub = board.Subscribe(g.onEvent)
	g.cursorX = 0
	g.cursorY = 0
	g.levelCleared = false
	g.layout()
}

// onEvent reacts to board changes. Events arrive on the game's own goroutine
// because the board is driven by Step and the tick scheduler.
func (g *Game) onEvent(ev Event) {
	switch ev.Kind {
	case EventMatched:
		g.setStatus(fmt.Sprintf("Match! %d/%d", g.board.MatchedPairs(), g.board.Pairs()))
	case EventWon:
		g.levelCleared = true
		g.justCleared = true
		g.cleared = max(g.cleared, g.board.Level())
		g.setStatus("Good Job!")
		if g.cfg.Rules.Advance && !g.counter.HasNext() {
			g.finished = true
		}
	}
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTicks = g.cfg.Timing.StatusTicks
	if msg == "" {
		g.statusTicks = 0
	}
}

// layout positions the board and checks the screen is large enough.
func (g *Game) layout() {
	if g.board == nil {
		return
	}
	size := g.board.Size()

	// Prefer a blank line between rows, fall back to packed rows
	g.rowStep = 2
	boardH := size*2 - 1
	if boardH+chromeHeight > g.screenH {
		g.rowStep = 1
		boardH = size
	}
	boardW := size * cellWidth

	g.tooSmall = boardW+2 > g.screenW || boardH+chromeHeight > g.screenH
	g.boardX = (g.screenW - boardW) / 2
	g.boardY = hudHeight + 1
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.board == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.finished {
		g.paused = !g.paused
	}
	if g.paused || g.finished {
		return g.result()
	}

	// Resets only run while the game is live, so pausing freezes them too
	g.sched.Advance(g.tickDur)

	if g.statusTicks > 0 {
		g.statusTicks--
		if g.statusTicks == 0 {
			g.status = ""
		}
	}

	if g.levelCleared {
		if in.Has(core.ActionConfirm) {
			g.advanceLevel()
		}
		return g.result()
	}

	g.moveCursor(in)

	if in.Has(core.ActionConfirm) {
		g.board.Flip(g.board.Cell(g.cursorY, g.cursorX))
	}

	if p, ok := in.Click(); ok {
		if row, col, ok := g.cellAt(p); ok {
			g.cursorY, g.cursorX = row, col
			g.board.Flip(g.board.Cell(row, col))
		}
	}

	return g.result()
}

// result builds the step result, reporting a clear exactly once.
func (g *Game) result() core.StepResult {
	res := core.StepResult{State: g.State(), BoardCleared: g.justCleared}
	g.justCleared = false
	return res
}

func (g *Game) moveCursor(in core.InputFrame) {
	size := g.board.Size()
	switch {
	case in.Has(core.ActionUp):
		g.cursorY = core.Wrap(g.cursorY-1, size)
	case in.Has(core.ActionDown):
		g.cursorY = core.Wrap(g.cursorY+1, size)
	case in.Has(core.ActionLeft):
		g.cursorX = core.Wrap(g.cursorX-1, size)
	case in.Has(core.ActionRight):
		g.cursorX = core.Wrap(g.cursorX+1, size)
	}
}

// cellAt maps a screen position to a board cell.
func (g *Game) cellAt(p core.Point) (row, col int, ok bool) {
	dx := p.X - g.boardX
	dy := p.Y - g.boardY
	if dx < 0 || dy < 0 || dy%g.rowStep != 0 {
		return 0, 0, false
	}
	row = dy / g.rowStep
	col = dx / cellWidth
	if g.board.Cell(row, col) == nil {
		return 0, 0, false
	}
	return row, col, true
}

// advanceLevel moves past a cleared board.
func (g *Game) advanceLevel() {
	if g.cfg.Rules.Advance {
		if !g.counter.HasNext() {
			g.finished = true
			return
		}
		g.counter.Next()
	}
	g.setStatus(fmt.Sprintf("Level %d", g.counter.Current()))
	g.loadBoard()
}

// Board returns the board in play.
func (g *Game) Board() *Board {
	return g.board
}

// Cursor returns the cursor position as (row, col).
func (g *Game) Cursor() (int, int) {
	return g.cursorY, g.cursorX
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Cleared:  g.cleared,
		Boards:   g.boards,
		Finished: g.finished,
		Paused:   g.paused || g.tooSmall,
	}
	if g.board != nil {
		st.Level = g.board.Level()
		st.Flips = g.board.Flips()
	}
	return st
}
