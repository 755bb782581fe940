package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/registry"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

// ClearRecorder writes solved boards to the history store.
// A nil store turns recording into a no-op.
type ClearRecorder struct {
	store   *storage.Store
	player  string
	session string
	logger  *log.Logger
}

// NewClearRecorder creates a recorder for one player session.
func NewClearRecorder(store *storage.Store, player, session string) ClearRecorder {
	return ClearRecorder{store: store, player: player, session: session}
}

// WithLogger returns a copy of the recorder that logs every clear.
func (r ClearRecorder) WithLogger(logger *log.Logger) ClearRecorder {
	r.logger = logger
	return r
}

// Record saves a clear of the board described by state.
func (r ClearRecorder) Record(gameID string, state core.GameState, elapsed time.Duration) error {
	if r.logger != nil {
		r.logger.Info("board cleared",
			"game", gameID,
			"player", r.player,
			"session", r.session,
			"level", state.Level,
			"flips", state.Flips,
			"elapsed", elapsed.Round(time.Millisecond),
		)
	}
	if r.store == nil {
		return nil
	}
	_, err := r.store.SaveClear(storage.Clear{
		GameID:   gameID,
		Player:   r.player,
		Session:  r.session,
		Level:    state.Level,
		Flips:    state.Flips,
		Duration: elapsed,
	})
	if err != nil && r.logger != nil {
		r.logger.Error("could not record clear", "game", gameID, "error", err)
	}
	return err
}

// GameModel runs one game inside Bubble Tea: it maps input to frames, steps
// the game on every tick and records each cleared board.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	recorder   ClearRecorder
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool // Quit the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	boardStart time.Time
	lastErr    error
}

// NewGameModel creates a game model that reports back to an enclosing menu.
func NewGameModel(game registry.Game, recorder ClearRecorder, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   recorder,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		// The game lays itself out again on the next render; progress is kept
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves a paused or finished game; otherwise it pauses
	if action == core.ActionBack {
		if m.gameState.Paused || m.gameState.Finished {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		}
		action = core.ActionPause
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}
	if m.boardStart.IsZero() {
		m.boardStart = time.Now()
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.Finished {
		m.config.Seed = time.Now().UnixNano()
		m.config.StartLevel = 0
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.boardStart = time.Now()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	prevBoards := m.gameState.Boards

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.BoardCleared {
		m.lastErr = m.recorder.Record(m.game.ID(), m.gameState, time.Since(m.boardStart))
	}
	// A new board restarts the clock, even when it repeats the level
	if prevBoards != 0 && m.gameState.Boards != prevBoards {
		m.boardStart = time.Now()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// LastError returns the last error from recording a clear, if any.
func (m GameModel) LastError() error {
	return m.lastErr
}

// Run starts a Bubble Tea program for a single game.
// It returns when the player quits or backs out of a paused or finished game.
func Run(game registry.Game, recorder ClearRecorder, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, recorder, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks flip tiles
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(GameModel); ok && m.LastError() != nil {
		return fmt.Errorf("could not record clear: %w", m.LastError())
	}
	return nil
}
