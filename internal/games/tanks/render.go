package tanks

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
)

const (
	hudRows    = 1 // status line above the field
	footerRows = 1 // key help below the field
)

const (
	glyphGrass = '·'
	glyphBrick = '▒'
	glyphSteel = '█'
	glyphTank  = '▓'
	glyphShot  = '•'
)

// scale maps world units onto terminal cells. One map cell becomes cw×ch
// characters; cw is twice ch so cells look roughly square.
type scale struct {
	cw, ch int
	cols   int
	rows   int
}

func (s scale) width() int  { return s.cols * s.cw }
func (s scale) height() int { return s.rows * s.ch }

// toScreen converts a world position to a character offset inside the field.
func (s scale) toScreen(x, y int) (int, int) {
	return floorDiv(x*s.cw, sim.CellSize), floorDiv(y*s.ch, sim.CellSize)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// fitScale picks the largest scale whose bordered field fits the screen.
// ok is false when even the smallest one does not.
func fitScale(screenW, screenH, cols, rows int) (scale, bool) {
	availW := screenW - 2
	availH := screenH - hudRows - footerRows - 2

	best := scale{}
	for ch := 1; ; ch++ {
		s := scale{cw: ch * 2, ch: ch, cols: cols, rows: rows}
		if s.width() > availW || s.height() > availH {
			break
		}
		best = s
	}
	return best, best.ch > 0
}

// Render draws the HUD, the field and any overlay.
func (g *Game) Render(dst *core.Screen) {
	if g.engine == nil {
		return
	}
	snap := g.engine.Snapshot()

	g.renderHUD(dst, snap)

	sc, ok := fitScale(dst.Width(), dst.Height(), g.engine.Map().Cols(), g.engine.Map().Rows())
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, "Resize to continue")
		return
	}

	frame := core.NewRect(
		(dst.Width()-sc.width()-2)/2,
		hudRows,
		sc.width()+2,
		sc.height()+2,
	)
	field := core.NewRect(frame.X+1, frame.Y+1, sc.width(), sc.height())

	dst.DrawBox(frame, core.ColorGray)
	dst.Blit(g.mapLayer(snap, sc), field.X, field.Y)
	g.renderTank(dst, field, sc, snap.Player)
	g.renderTank(dst, field, sc, snap.Enemy)
	g.renderProjectiles(dst, field, sc, snap.Projectiles)
	g.renderFooter(dst, frame.Bottom())

	switch {
	case snap.Ended:
		g.renderResult(dst)
	case snap.Paused:
		g.renderPause(dst)
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap sim.Snapshot) {
	best := g.best
	if res := g.engine.Result(); res != nil {
		best = res.Best
	}

	gun := "READY"
	gunColor := core.ColorBrightGreen
	if !snap.CanShoot {
		gun = fmt.Sprintf("reload %.1fs", snap.Reload.Seconds())
		gunColor = core.ColorYellow
	}

	hud := fmt.Sprintf(" Tank Battle  Time %s  Best %s  Walls %d  Gun ",
		clock(snap.Elapsed), core.DisplayBestTime(best), snap.Score)
	dst.DrawText(0, 0, hud)
	dst.DrawTextColored(len([]rune(hud)), 0, gun, gunColor)
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	dst.DrawTextCentered(y, "arrows/wasd move  space fire  p pause  q quit")
}

// mapLayer returns the cached terrain and wall layer, redrawing it when a
// wall fell or the scale changed.
func (g *Game) mapLayer(snap sim.Snapshot, sc scale) *core.Screen {
	if g.layer != nil && !g.mapDirty && g.layerScale == sc {
		return g.layer
	}
	if g.layer == nil {
		g.layer = core.NewScreen(sc.width(), sc.height())
	} else {
		g.layer.Resize(sc.width(), sc.height())
	}

	g.layer.Fill(glyphGrass, core.ColorDarkGreen)
	for _, w := range snap.Walls {
		if w.Destroyed {
			continue
		}
		glyph, color := glyphSteel, core.ColorGray
		if w.Destructible {
			glyph, color = glyphBrick, core.ColorOrange
		}
		x, y := sc.toScreen(w.CellX*sim.CellSize, w.CellY*sim.CellSize)
		g.layer.DrawRect(core.NewRect(x, y, sc.cw, sc.ch), glyph, color)
	}

	g.layerScale = sc
	g.mapDirty = false
	return g.layer
}

func (g *Game) renderTank(dst *core.Screen, field core.Rect, sc scale, t sim.TankView) {
	color := core.ColorBrightGreen
	if t.Kind == sim.KindEnemy {
		color = core.ColorBrightRed
	}

	x, y := sc.toScreen(t.X, t.Y)
	body := core.NewRect(field.X+x, field.Y+y, sc.cw, sc.ch)
	if !body.Intersects(field) {
		return
	}
	drawClipped(dst, field, body, glyphTank, color)

	gx, gy, glyph := turret(body, t.Angle)
	if field.Contains(gx, gy) {
		dst.SetColored(gx, gy, glyph, color)
	}
}

// turret returns where the facing marker goes on a tank body.
func turret(body core.Rect, angle int) (int, int, rune) {
	midX := body.X + body.W/2
	midY := body.Y + body.H/2
	switch angle {
	case sim.AngleLeft:
		return body.X, midY, '◄'
	case sim.AngleRight:
		return body.Right() - 1, midY, '►'
	case sim.AngleDown:
		return midX, body.Bottom() - 1, '▼'
	default:
		return midX, body.Y, '▲'
	}
}

func (g *Game) renderProjectiles(dst *core.Screen, field core.Rect, sc scale, shots []sim.ProjectileView) {
	for _, p := range shots {
		x, y := sc.toScreen(p.X+sim.ProjectileSize/2, p.Y+sim.ProjectileSize/2)
		x += field.X
		y += field.Y
		if !field.Contains(x, y) {
			continue
		}
		color := core.ColorBrightYellow
		if p.Owner == sim.KindEnemy {
			color = core.ColorRed
		}
		dst.SetColored(x, y, glyphShot, color)
	}
}

func drawClipped(dst *core.Screen, clip, r core.Rect, glyph rune, color core.Color) {
	for y := max(r.Y, clip.Y); y < min(r.Bottom(), clip.Bottom()); y++ {
		for x := max(r.X, clip.X); x < min(r.Right(), clip.Right()); x++ {
			dst.SetColored(x, y, glyph, color)
		}
	}
}

func (g *Game) renderPause(dst *core.Screen) {
	items := []string{"Resume", "Exit to menu"}
	lines := []string{"PAUSED", ""}
	for i, item := range items {
		prefix := "  "
		if i == g.pauseChoice {
			prefix = "> "
		}
		lines = append(lines, prefix+item)
	}
	renderOverlay(dst, lines, core.ColorBrightCyan)
}

func (g *Game) renderResult(dst *core.Screen) {
	res := g.engine.Result()
	if res == nil {
		return
	}

	color := core.ColorBrightGreen
	if res.Outcome == core.OutcomeDefeat {
		color = core.ColorBrightRed
	}

	lines := []string{res.Outcome.String(), ""}
	if res.IsNewBest {
		lines = append(lines, "New best time: "+core.FormatBestTime(res.Elapsed))
	} else {
		lines = append(lines,
			"Your time: "+core.FormatBestTime(res.Elapsed),
			"Best time: "+core.DisplayBestTime(res.Best),
		)
	}
	if res.RecordErr != nil {
		lines = append(lines, "(best time not saved)")
	}
	lines = append(lines, "", "enter menu  r restart")
	renderOverlay(dst, lines, color)
}

// renderOverlay draws a bordered box with centered lines in the middle of
// the screen.
func renderOverlay(dst *core.Screen, lines []string, color core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}

	box := core.NewRect(0, 0, width+6, len(lines)+2)
	box.X = (dst.Width() - box.W) / 2
	box.Y = (dst.Height() - box.H) / 2

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColored(x, box.Y+1+i, l, color)
	}
}

// clock formats a match time as mm:ss without clamping.
func clock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
