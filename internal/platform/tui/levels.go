package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

// LevelSelection holds the user's choice of starting level.
type LevelSelection struct {
	Level int // 1-based starting level
}

type levelOption struct {
	label string
	level int // 0 opens the level list
}

// LevelSelectModel lets users start a new run, continue from their best
// clear, or pick any level.
type LevelSelectModel struct {
	title         string
	maxLevel      int
	options       []levelOption
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     LevelSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewLevelSelectModel creates a level selection model. resumeLevel is the
// level a continued run starts at; values below 2 hide the Continue option.
func NewLevelSelectModel(title string, width, height, maxLevel, resumeLevel int) LevelSelectModel {
	maxLevel = max(maxLevel, 1)

	options := []levelOption{{label: "New Run (level 1)", level: 1}}
	if resumeLevel > 1 {
		options = append(options, levelOption{
			label: fmt.Sprintf("Continue (level %d)", min(resumeLevel, maxLevel)),
			level: min(resumeLevel, maxLevel),
		})
	}
	options = append(options, levelOption{label: "Select Level..."})

	return LevelSelectModel{
		title:     title,
		maxLevel:  maxLevel,
		options:   options,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelListKey(action)
	}
	return m.handleOptionKey(action)
}

func (m LevelSelectModel) handleOptionKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		opt := m.options[m.cursor]
		if opt.level == 0 {
			m.inLevelSelect = true
			m.levelCursor = 0
			return m, nil
		}
		m.choosing = false
		m.selection = LevelSelection{Level: opt.level}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelSelectModel) handleLevelListKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < m.maxLevel-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = LevelSelection{Level: m.levelCursor + 1}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the option or level list.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelList()
	}
	return m.viewOptions()
}

func (m LevelSelectModel) viewOptions() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Start a run:", m.width))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+opt.label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m LevelSelectModel) viewLevelList() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for level := 1; level <= m.maxLevel; level++ {
		cursor := "  "
		if level-1 == m.levelCursor {
			cursor = "> "
		}

		size := level * 2
		line := fmt.Sprintf("%s%2d. %dx%d grid, %d pairs", cursor, level, size, size, size*size/2)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelSelectModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// ResumeLevel returns the level after the player's best clear, capped at
// maxLevel. Without a store or any clears it returns 1.
func ResumeLevel(store *storage.Store, gameID, player string, maxLevel int) int {
	if store == nil {
		return 1
	}
	highest, err := store.HighestLevel(gameID, player)
	if err != nil || highest < 1 {
		return 1
	}
	if maxLevel > 0 {
		return min(highest+1, maxLevel)
	}
	return highest + 1
}

// RunLevelSelector runs the level selection and returns the selection.
// A nil selection means the user backed out or quit.
func RunLevelSelector(cfg core.RuntimeConfig, title string, maxLevel, resumeLevel int) (*LevelSelection, core.RuntimeConfig, error) {
	model := NewLevelSelectModel(title, cfg.ScreenW, cfg.ScreenH, maxLevel, resumeLevel)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
