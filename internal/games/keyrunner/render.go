package keyrunner

import (
	"fmt"

	platformcore "github.com/vovakirdan/keyrunner/internal/core"
	"github.com/vovakirdan/keyrunner/internal/games/keyrunner/core"
)

const (
	hudHeight  = 1
	helpHeight = 1
)

// Resize updates the layout without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.layout()
}

// layout picks the cell width and centres the board. Cells are two columns
// wide when the terminal allows it so the maze keeps a square look.
func (g *Game) layout() {
	if g.session == nil {
		return
	}
	grid := g.session.Grid()
	needH := grid.Rows() + 2 + hudHeight + helpHeight

	g.cellW = platformcore.Clamp((g.screenW-2)/grid.Cols(), 1, 2)
	boardW := grid.Cols()*g.cellW + 2
	g.offsetX = platformcore.Max((g.screenW-boardW)/2, 0)
	g.offsetY = hudHeight

	// The board plus the help line below it must fit on screen.
	screen := platformcore.NewRect(0, 0, g.screenW, g.screenH)
	board := platformcore.NewRect(g.offsetX, 0, boardW, needH)
	g.tooSmall = !screen.Contains(board.Right()-1, board.Bottom()-1)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.session == nil {
		msg := "Key Runner could not start"
		if g.err != nil {
			msg = g.err.Error()
		}
		dst.DrawTextCentered(dst.Height()/2, msg, platformcore.ColorRed)
		return
	}
	if g.tooSmall {
		g.renderHUD(dst, g.session.Snapshot())
		dst.DrawTextCentered(dst.Height()/2, "Window too small", platformcore.ColorYellow)
		dst.DrawTextCentered(dst.Height()/2+1, "Resize to continue", platformcore.ColorGray)
		return
	}

	snap := g.session.Snapshot()
	g.renderHUD(dst, snap)
	g.renderBoard(dst, snap)
	g.renderHelp(dst, len(snap.Grid))

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "CAUGHT!", fmt.Sprintf("Score %d  R to run again", snap.Score), platformcore.ColorRed)
	case snap.Paused:
		g.renderOverlay(dst, "PAUSED", "P to continue", platformcore.ColorYellow)
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen, snap core.Snapshot) {
	hud := fmt.Sprintf(" %s  Score %d  Level %d  Keys %d/%d", g.Title(), snap.Score, snap.Level, snap.CollectedKeys, snap.TotalKeys)
	if snap.BottomRowCleared {
		hud = fmt.Sprintf(" %s  Score %d  Level %d  EXIT OPEN", g.Title(), snap.Score, snap.Level)
	}
	dst.DrawTextColor(0, 0, hud, platformcore.ColorWhite)

	if g.notice != "" && g.frame < g.noticeUntil {
		x := dst.Width() - len([]rune(g.notice)) - 1
		if x > len([]rune(hud))+1 {
			dst.DrawTextColor(x, 0, g.notice, platformcore.ColorCyan)
		}
	}
}

func (g *Game) renderBoard(dst *platformcore.Screen, snap core.Snapshot) {
	rows := len(snap.Grid)
	cols := len(snap.Grid[0])
	border := platformcore.ColorGray
	if snap.BottomRowCleared {
		border = platformcore.ColorGreen
	}
	dst.DrawBox(platformcore.NewRect(g.offsetX, g.offsetY, cols*g.cellW+2, rows+2), border)

	// The open exit pulses twice a second.
	blink := g.tickRate > 0 && (g.frame/uint64(platformcore.Max(g.tickRate/4, 1)))%2 == 0

	for r, row := range snap.Grid {
		for c, t := range row {
			ch, color := terrainGlyph(t)
			if r == rows-1 && snap.BottomRowCleared {
				ch, color = '░', platformcore.ColorGreen
				if blink {
					color = platformcore.ColorBrightGreen
				}
			}
			g.drawCell(dst, core.P(r, c), ch, color, false)
		}
	}

	g.drawCell(dst, snap.Pursuer, '&', platformcore.ColorMagenta, true)
	g.drawCell(dst, snap.Runner, '@', platformcore.ColorBlue, true)
}

func terrainGlyph(t core.Terrain) (rune, platformcore.Color) {
	switch t {
	case core.Obstacle:
		return '█', platformcore.ColorRed
	case core.Key:
		return '◆', platformcore.ColorYellow
	case core.Path:
		return '*', platformcore.ColorCyan
	default:
		return '·', platformcore.ColorGray
	}
}

// drawCell paints one maze cell. Wide cells repeat walls so they stay solid.
func (g *Game) drawCell(dst *platformcore.Screen, p core.Pos, ch rune, color platformcore.Color, bold bool) {
	x := g.offsetX + 1 + p.Col*g.cellW
	y := g.offsetY + 1 + p.Row
	dst.SetCell(x, y, platformcore.Cell{Rune: ch, Color: color, Bold: bold})
	if g.cellW == 2 {
		fill := ' '
		if ch == '█' || ch == '░' {
			fill = ch
		}
		dst.SetCell(x+1, y, platformcore.Cell{Rune: fill, Color: color})
	}
}

func (g *Game) renderHelp(dst *platformcore.Screen, rows int) {
	y := g.offsetY + rows + 2
	dst.DrawTextCentered(y, "arrows/wasd move  p pause  r restart  q quit", platformcore.ColorGray)
}

func (g *Game) renderOverlay(dst *platformcore.Screen, title, sub string, color platformcore.Color) {
	w := platformcore.Min(platformcore.Max(len([]rune(title)), len([]rune(sub)))+4, dst.Width())
	h := 4
	x := platformcore.Max((dst.Width()-w)/2, 0)
	y := (dst.Height() - h) / 2

	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			dst.Set(xx, yy, ' ')
		}
	}
	dst.DrawBox(platformcore.NewRect(x, y, w, h), color)
	dst.DrawTextCentered(y+1, title, color)
	dst.DrawTextCentered(y+2, sub, platformcore.ColorWhite)
}
