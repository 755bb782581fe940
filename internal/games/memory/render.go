package memory

import (
	"fmt"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

const (
	cellWidth    = 4 // " 12 " or "[12]" under the cursor
	hudHeight    = 2
	chromeHeight = hudHeight + 3 // HUD, box top and bottom, help line
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() != g.screenW || dst.Height() != g.screenH {
		g.screenW, g.screenH = dst.Width(), dst.Height()
		g.layout()
	}

	if g.board == nil {
		g.renderNoBoard(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	size := g.board.Size()
	boardW := size * cellWidth
	boardH := (size-1)*g.rowStep + 1

	g.renderHUD(dst, boardW)
	dst.DrawBoxWithColor(core.NewRect(g.boardX-1, g.boardY-1, boardW+2, boardH+2), core.ColorGray)
	g.renderBoard(dst)
	g.renderOverlays(dst, boardH)

	help := "arrows/wasd move  space flip  p pause  esc menu"
	dst.DrawTextWithColor((g.screenW-len(help))/2, g.boardY+boardH+1, help, core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderNoBoard shows why no board could be dealt.
func (g *Game) renderNoBoard(dst *core.Screen) {
	y := g.screenH / 2
	msg := g.status
	if msg == "" {
		msg = "No board"
	}
	dst.DrawTextCentered(y, msg)
	dst.DrawTextCentered(y+1, "Press q to quit")
}

// renderHUD draws level, pair and flip counters above the board.
func (g *Game) renderHUD(dst *core.Screen, boardW int) {
	dst.DrawTextWithColor(g.boardX, 0, g.Title(), core.ColorBrightCyan)

	left := fmt.Sprintf("Level %d/%d", g.board.Level(), g.counter.Max())
	dst.DrawText(g.boardX, 1, left)

	right := fmt.Sprintf("Pairs %d/%d  Flips %d", g.board.MatchedPairs(), g.board.Pairs(), g.board.Flips())
	rightX := max(g.boardX+boardW-len(right), g.boardX+len(left)+1)
	dst.DrawText(rightX, 1, right)

	// Right-aligned with the board, but never over the title
	if g.status != "" {
		x := max(g.boardX+boardW-len(g.status), g.boardX+len(g.Title())+1)
		dst.DrawTextWithColor(x, 0, g.status, core.ColorBrightYellow)
	}
}

// renderBoard draws every tile, revealing values in their pair colour.
func (g *Game) renderBoard(dst *core.Screen) {
	for row, cells := range g.board.Cells() {
		y := g.boardY + row*g.rowStep
		for col, tile := range cells {
			x := g.boardX + col*cellWidth

			switch {
			case tile.Matched():
				dst.DrawTextWithColor(x+1, y, fmt.Sprintf("%2d", tile.Value()), core.PaletteColor(tile.Value()))
			case tile.Flipped():
				dst.DrawTextWithColor(x+1, y, fmt.Sprintf("%2d", tile.Value()), core.ColorBrightWhite)
			default:
				dst.DrawTextWithColor(x+1, y, "##", core.ColorBlue)
			}

			if row == g.cursorY && col == g.cursorX && !g.levelCleared {
				dst.SetWithColor(x, y, '[', core.ColorBrightYellow)
				dst.SetWithColor(x+3, y, ']', core.ColorBrightYellow)
			}
		}
	}
}

// renderOverlays draws pause, level-clear and run-complete messages.
func (g *Game) renderOverlays(dst *core.Screen, boardH int) {
	centerY := g.boardY + boardH/2

	switch {
	case g.finished:
		g.drawOverlay(dst, centerY, "ALL CLEAR!", fmt.Sprintf("Cleared level %d", g.cleared), "R restart  Esc menu")
	case g.levelCleared:
		g.drawOverlay(dst, centerY, "Good Job!", fmt.Sprintf("Level %d in %d flips", g.board.Level(), g.board.Flips()), "Enter to continue")
	case g.paused:
		g.drawOverlay(dst, centerY, "PAUSED", "", "P to resume")
	}
}

func (g *Game) drawOverlay(dst *core.Screen, y int, title, detail, hint string) {
	lines := []string{title}
	if detail != "" {
		lines = append(lines, detail)
	}
	lines = append(lines, hint)

	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	w += 4
	h := len(lines) + 2
	x := (g.screenW - w) / 2
	top := y - h/2

	// Blank the area behind the box
	dst.DrawRect(core.NewRect(x, top, w, h), ' ')
	dst.DrawBoxWithColor(core.NewRect(x, top, w, h), core.ColorBrightCyan)
	for i, l := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = core.ColorBrightYellow
		}
		dst.DrawTextWithColor((g.screenW-len(l))/2, top+1+i, l, c)
	}
}
