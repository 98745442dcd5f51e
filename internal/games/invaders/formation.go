package invaders

import (
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// buildFormation lays out a full rows x cols grid of enemies in row-major order.
func buildFormation(f config.FormationConfig) []Enemy {
	enemies := make([]Enemy, 0, f.Rows*f.Cols)
	for row := range f.Rows {
		for col := range f.Cols {
			enemies = append(enemies, Enemy{
				Rect: core.NewRect(
					f.StartX+float64(col)*(f.EnemyWidth+f.Spacing),
					f.StartY+float64(row)*(f.EnemyHeight+f.Spacing),
					f.EnemyWidth,
					f.EnemyHeight,
				),
				Tier: tierForRow(row, f.FastRows, f.MediumRows),
				Row:  row,
				Col:  col,
			})
		}
	}
	return enemies
}

// wouldHitEdge reports whether the next horizontal step of any enemy,
// taken from its current position, would cross a playfield edge.
func (s *Session) wouldHitEdge() bool {
	step := s.speed * float64(s.direction)
	for _, e := range s.enemies {
		next := e.Rect.X + step
		if s.direction < 0 && next < 0 {
			return true
		}
		if s.direction > 0 && next > s.cfg.Playfield.Width-e.Rect.W {
			return true
		}
	}
	return false
}

// updateFormation moves the formation as one body: either a sideways step,
// or a drop with a direction flip when the step would leave the playfield.
func (s *Session) updateFormation() {
	if s.wouldHitEdge() {
		drop := s.cfg.Formation.DropDistance
		for i := range s.enemies {
			s.enemies[i].Rect.Y += drop
		}
		s.direction = -s.direction
	} else {
		dx := s.speed * float64(s.direction)
		for i := range s.enemies {
			s.enemies[i].Rect.X += dx
		}
	}

	s.enemyFire()
}

// enemyFire rolls once per tick and, on success, fires from one enemy
// picked uniformly at random.
func (s *Session) enemyFire() {
	if len(s.enemies) == 0 {
		return
	}
	if s.rng.Float64() >= s.cfg.Formation.FireProbability {
		return
	}

	shooter := s.enemies[s.rng.Intn(len(s.enemies))]
	b := s.cfg.Bullets
	x := shooter.Rect.X + shooter.Rect.W/2 - b.Width/2
	y := shooter.Rect.Bottom()
	if y > s.cfg.Playfield.Height {
		return
	}
	s.enemyBullets = append(s.enemyBullets, Bullet{
		Rect: core.NewRect(x, y, b.Width, b.Height),
		Side: SideEnemy,
	})
}
