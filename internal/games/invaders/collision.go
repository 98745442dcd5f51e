package invaders

import (
	"slices"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// resolveCollisions applies the three collision rules in order:
// player bullets against enemies, enemy bullets against the ship,
// then the formation reaching the ship's row.
func (s *Session) resolveCollisions() {
	s.hitEnemies()
	s.hitPlayer()
	s.checkInvasion()
}

// hitEnemies lets each player bullet destroy at most one enemy, the first
// one in formation order it overlaps.
func (s *Session) hitEnemies() {
	for i := len(s.playerBullets) - 1; i >= 0; i-- {
		b := s.playerBullets[i]
		for j, e := range s.enemies {
			if !b.Rect.Intersects(e.Rect) {
				continue
			}
			points := e.Tier.Points()
			s.score += points
			s.enemies = slices.Delete(s.enemies, j, j+1)
			s.playerBullets = slices.Delete(s.playerBullets, i, i+1)
			s.emit(core.EventEnemyDestroyed, points)
			break
		}
	}
}

// hitPlayer removes at most one enemy bullet per tick that overlaps the ship
// and costs one life for it.
func (s *Session) hitPlayer() {
	for i, b := range s.enemyBullets {
		if !b.Rect.Intersects(s.player.Rect) {
			continue
		}
		s.enemyBullets = slices.Delete(s.enemyBullets, i, i+1)
		s.lives = max(s.lives-1, 0)
		s.emit(core.EventPlayerHit, s.lives)
		if s.lives == 0 {
			s.endGame()
		}
		return
	}
}

// checkInvasion ends the game when any enemy's bottom edge reaches the
// ship's top edge, regardless of lives left.
func (s *Session) checkInvasion() {
	for _, e := range s.enemies {
		if e.Rect.Bottom() >= s.player.Rect.Y {
			s.endGame()
			return
		}
	}
}
