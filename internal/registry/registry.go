// Package registry maps puzzle variant ids to factories.
// Variants register themselves in init() so the CLI, menu and SSH server
// can list and create them without importing each one by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

// Game is what the platform drives. Implementations hold pure puzzle state
// and never import Bubble Tea; the platform maps input, runs the tick loop
// and paints the screen.
type Game interface {
	// ID is the variant id used by the CLI and the clear history.
	ID() string

	// Title is the display name shown in menus and the HUD.
	Title() string

	// Reset starts a new run. cfg carries the screen size, seed, tick rate
	// and the level the run starts at.
	Reset(cfg core.RuntimeConfig)

	// Step advances the run by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which is cleared before the call.
	Render(dst *core.Screen)

	// State reports level progress, pause and finish flags.
	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh, unreset game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a variant. It panics on an empty or duplicate id.
func Register(id string, f Factory) {
	if id == "" || f == nil {
		panic("registry: Register needs an id and a factory")
	}

	title := f().Title()

	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = title
}

// List returns every registered variant sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id, title := range titles {
		result = append(result, GameInfo{ID: id, Title: title})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create returns a new instance of the variant id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
