package invaders

import (
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/render"
)

// Text shown by the HUD and the overlay screens.
const (
	TitleText       = "SPACE INVADERS"
	StartHintText   = "Press SPACE or ENTER to start"
	MoveHintText    = "Use ARROW KEYS or WASD to move"
	ShootHintText   = "Press SPACE or UP ARROW to shoot"
	GameOverText    = "GAME OVER"
	RestartHintText = "Press SPACE or ENTER to restart"
)

const (
	hudSize         = 20
	titleSize       = 48
	overlayTextSize = 24

	backgroundColor = core.ColorBlack
	playerColor     = core.ColorBrightGreen
	accentColor     = core.ColorBrightWhite
	playerShotColor = core.ColorBrightWhite
	enemyShotColor  = core.ColorBrightRed
	hudColor        = core.ColorBrightWhite
	titleColor      = core.ColorBrightGreen
	gameOverColor   = core.ColorBrightRed
)

// Render draws a snapshot. Drawing order: background, then (while running)
// the ship, enemies, player bullets and enemy bullets, then the HUD and
// any phase overlay. It reads nothing but the snapshot.
func Render(snap Snapshot, c render.Canvas) {
	c.FillRect(snap.Playfield, render.Solid(backgroundColor))

	if snap.Phase == PhaseRunning {
		drawPlayer(snap.Player, c)
		for _, e := range snap.Enemies {
			drawEnemy(e, c)
		}
		for _, b := range snap.PlayerBullets {
			c.FillRect(b, render.Solid(playerShotColor))
		}
		for _, b := range snap.EnemyBullets {
			c.FillRect(b, render.Solid(enemyShotColor))
		}
	}

	drawHUD(snap, c)

	switch snap.Phase {
	case PhaseNotStarted:
		drawStartScreen(snap.Playfield, c)
	case PhaseGameOver:
		drawGameOver(snap, c)
	}
}

// drawPlayer draws the ship body with a cannon on top of its center.
func drawPlayer(r core.Rect, c render.Canvas) {
	c.FillRect(r, render.Solid(playerColor))
	cw, ch := r.W/5, r.H*3/8
	c.FillRect(core.NewRect(r.X+(r.W-cw)/2, r.Y-r.H/8, cw, ch), render.Detail(accentColor))
}

// drawEnemy draws the body in the tier color with an inset accent.
func drawEnemy(e EnemyView, c render.Canvas) {
	c.FillRect(e.Rect, render.Solid(e.Tier.Color()))
	inset := min(e.Rect.W, e.Rect.H) / 6
	c.FillRect(core.NewRect(e.Rect.X+inset, e.Rect.Y+inset, e.Rect.W-2*inset, e.Rect.H-2*inset),
		render.Detail(accentColor))
}

func drawHUD(snap Snapshot, c render.Canvas) {
	style := render.TextStyle{Size: hudSize, Color: hudColor}
	c.DrawText(10, 30, fmt.Sprintf("Score: %d", snap.Score), style)
	c.DrawText(10, 60, fmt.Sprintf("Lives: %d", snap.Lives), style)
	c.DrawText(10, 90, fmt.Sprintf("Level: %d", snap.Level), style)
}

func drawStartScreen(field core.Rect, c render.Canvas) {
	cx, cy := field.Center()
	c.DrawText(cx, cy-100, TitleText,
		render.TextStyle{Size: titleSize, Color: titleColor, Align: render.AlignCenter})
	body := render.TextStyle{Size: overlayTextSize, Color: hudColor, Align: render.AlignCenter}
	c.DrawText(cx, cy-50, StartHintText, body)
	c.DrawText(cx, cy-20, MoveHintText, body)
	c.DrawText(cx, cy+10, ShootHintText, body)
}

func drawGameOver(snap Snapshot, c render.Canvas) {
	cx, cy := snap.Playfield.Center()
	c.DrawText(cx, cy-50, GameOverText,
		render.TextStyle{Size: titleSize, Color: gameOverColor, Align: render.AlignCenter})
	body := render.TextStyle{Size: overlayTextSize, Color: hudColor, Align: render.AlignCenter}
	c.DrawText(cx, cy, fmt.Sprintf("Final Score: %d", snap.Score), body)
	c.DrawText(cx, cy+40, RestartHintText, body)
}
