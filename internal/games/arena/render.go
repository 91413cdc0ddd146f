package arena

import (
	"fmt"
	"math"

	"github.com/vovakirdan/ball-arena/internal/core"
	"github.com/vovakirdan/ball-arena/internal/motion"
)

// Visual characters for rendering
const (
	PlayerChar = '@'
	EnemyChar  = '●'
	StarChar   = '*'
)

// Render draws the playfield below the HUD row.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	for _, s := range g.world.Stars() {
		drawBody(dst, s, StarChar, core.ColorBrightYellow)
	}
	for _, e := range g.world.Enemies() {
		drawBody(dst, e, EnemyChar, core.ColorBrightRed)
	}
	playerColor := core.ColorBrightCyan
	if g.gameOver {
		playerColor = core.ColorGray
	}
	drawBody(dst, g.world.Player(), PlayerChar, playerColor)

	g.renderHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawBody fills the cells covered by a body's footprint.
func drawBody(dst *core.Screen, b *motion.Body, glyph rune, c core.Color) {
	if b == nil || len(b.Position) < 2 {
		return
	}
	w := int(math.Round(b.Kind.Footprint[0]))
	h := int(math.Round(b.Kind.Footprint[1]))
	r := core.RectAround(b.Position[0], b.Position[1], max(w, 1), max(h, 1))
	r.Y += HUDRows
	dst.DrawRectColored(r, glyph, c)
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Stars: %d  Enemies: %d",
		g.Title(), g.score, len(g.world.Stars()), len(g.world.Enemies()))
	if g.difficulty.IsEnabled() {
		hud += fmt.Sprintf("  Level: %d%%", int(g.difficulty.Level(g.score, g.ticks)*100))
	}
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	help := "arrows/wasd move  p pause  q quit "
	if x := dst.Width() - len(help); x > len([]rune(hud))+1 {
		dst.DrawTextColored(x, 0, help, core.ColorGray)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
