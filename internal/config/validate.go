package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// FieldError describes one invalid configuration value.
type FieldError struct {
	Field  string // YAML path, e.g. "formation.rows"
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfig) match any FieldError.
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Validate checks the configuration and returns every problem found,
// joined into one error. Values are never clamped.
func (c InvadersConfig) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}
	positive := func(field string, v float64) {
		if v <= 0 {
			bad(field, "must be positive, got %v", v)
		}
	}
	nonNegative := func(field string, v float64) {
		if v < 0 {
			bad(field, "must not be negative, got %v", v)
		}
	}

	pf := c.Playfield
	positive("playfield.width", pf.Width)
	positive("playfield.height", pf.Height)

	p := c.Player
	positive("player.width", p.Width)
	positive("player.height", p.Height)
	positive("player.speed", p.Speed)
	nonNegative("player.bottom_offset", p.BottomOffset)
	if p.Lives <= 0 {
		bad("player.lives", "must be positive, got %d", p.Lives)
	}
	if p.ShootCooldownMs < 0 {
		bad("player.shoot_cooldown_ms", "must not be negative, got %d", p.ShootCooldownMs)
	}
	if pf.Width > 0 && p.Width > pf.Width {
		bad("player.width", "%v does not fit in playfield width %v", p.Width, pf.Width)
	}
	if pf.Height > 0 && (p.BottomOffset > pf.Height || c.PlayerY()+p.Height > pf.Height) {
		bad("player.bottom_offset", "ship at y=%v with height %v does not fit in playfield height %v",
			c.PlayerY(), p.Height, pf.Height)
	}

	b := c.Bullets
	positive("bullets.width", b.Width)
	positive("bullets.height", b.Height)
	positive("bullets.player_speed", b.PlayerSpeed)
	positive("bullets.enemy_speed", b.EnemySpeed)

	f := c.Formation
	if f.Rows <= 0 {
		bad("formation.rows", "must be positive, got %d", f.Rows)
	}
	if f.Cols <= 0 {
		bad("formation.cols", "must be positive, got %d", f.Cols)
	}
	positive("formation.enemy_width", f.EnemyWidth)
	positive("formation.enemy_height", f.EnemyHeight)
	nonNegative("formation.spacing", f.Spacing)
	nonNegative("formation.start_x", f.StartX)
	nonNegative("formation.start_y", f.StartY)
	positive("formation.speed", f.Speed)
	positive("formation.drop_distance", f.DropDistance)
	nonNegative("formation.speed_increment", f.SpeedIncrement)
	if f.FireProbability < 0 || f.FireProbability > 1 {
		bad("formation.fire_probability", "must be within [0, 1], got %v", f.FireProbability)
	}
	if f.FastRows < 0 {
		bad("formation.fast_rows", "must not be negative, got %d", f.FastRows)
	}
	if f.MediumRows < 0 {
		bad("formation.medium_rows", "must not be negative, got %d", f.MediumRows)
	}
	if pf.Width > 0 && f.Cols > 0 && f.StartX+f.Width() > pf.Width {
		bad("formation.cols", "formation spans x=%v..%v, beyond playfield width %v",
			f.StartX, f.StartX+f.Width(), pf.Width)
	}
	if pf.Height > 0 && f.Rows > 0 && f.StartY+f.Height() >= c.PlayerY() {
		bad("formation.rows", "formation bottom %v already reaches the player row at %v",
			f.StartY+f.Height(), c.PlayerY())
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
