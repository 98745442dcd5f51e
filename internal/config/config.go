// Package config provides YAML-based game configuration loading,
// environment overrides, validation and difficulty presets.
package config

import "time"

// InvadersConfig contains all tunable constants of the simulation.
// Distances are in playfield units, speeds in units per tick.
type InvadersConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield" envPrefix:"PLAYFIELD_"`
	Player    PlayerConfig    `yaml:"player" envPrefix:"PLAYER_"`
	Bullets   BulletConfig    `yaml:"bullets" envPrefix:"BULLETS_"`
	Formation FormationConfig `yaml:"formation" envPrefix:"FORMATION_"`
}

// PlayfieldConfig defines the size of the simulated area.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width" env:"WIDTH"`
	Height float64 `yaml:"height" env:"HEIGHT"`
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Width           float64 `yaml:"width" env:"WIDTH"`
	Height          float64 `yaml:"height" env:"HEIGHT"`
	Speed           float64 `yaml:"speed" env:"SPEED"`
	BottomOffset    float64 `yaml:"bottom_offset" env:"BOTTOM_OFFSET"` // Distance from the playfield bottom to the ship's top edge
	Lives           int     `yaml:"lives" env:"LIVES"`
	ShootCooldownMs int     `yaml:"shoot_cooldown_ms" env:"SHOOT_COOLDOWN_MS"`
}

// ShootCooldown returns the minimum time between two player shots.
func (p PlayerConfig) ShootCooldown() time.Duration {
	return time.Duration(p.ShootCooldownMs) * time.Millisecond
}

// BulletConfig defines projectile geometry and speed.
type BulletConfig struct {
	Width       float64 `yaml:"width" env:"WIDTH"`
	Height      float64 `yaml:"height" env:"HEIGHT"`
	PlayerSpeed float64 `yaml:"player_speed" env:"PLAYER_SPEED"`
	EnemySpeed  float64 `yaml:"enemy_speed" env:"ENEMY_SPEED"`
}

// FormationConfig defines the enemy grid, its movement and its fire rate.
type FormationConfig struct {
	Rows            int     `yaml:"rows" env:"ROWS"`
	Cols            int     `yaml:"cols" env:"COLS"`
	EnemyWidth      float64 `yaml:"enemy_width" env:"ENEMY_WIDTH"`
	EnemyHeight     float64 `yaml:"enemy_height" env:"ENEMY_HEIGHT"`
	Spacing         float64 `yaml:"spacing" env:"SPACING"`
	StartX          float64 `yaml:"start_x" env:"START_X"`
	StartY          float64 `yaml:"start_y" env:"START_Y"`
	Speed           float64 `yaml:"speed" env:"SPEED"`
	DropDistance    float64 `yaml:"drop_distance" env:"DROP_DISTANCE"`
	SpeedIncrement  float64 `yaml:"speed_increment" env:"SPEED_INCREMENT"` // Added to Speed on each cleared level
	FireProbability float64 `yaml:"fire_probability" env:"FIRE_PROBABILITY"`
	FastRows        int     `yaml:"fast_rows" env:"FAST_ROWS"`     // Top rows worth 30 points
	MediumRows      int     `yaml:"medium_rows" env:"MEDIUM_ROWS"` // Following rows worth 20 points
}

// Width returns the horizontal extent of a full formation.
func (f FormationConfig) Width() float64 {
	if f.Cols <= 0 {
		return 0
	}
	return float64(f.Cols)*(f.EnemyWidth+f.Spacing) - f.Spacing
}

// Height returns the vertical extent of a full formation.
func (f FormationConfig) Height() float64 {
	if f.Rows <= 0 {
		return 0
	}
	return float64(f.Rows)*(f.EnemyHeight+f.Spacing) - f.Spacing
}

// PlayerY returns the fixed y coordinate of the player's top edge.
func (c InvadersConfig) PlayerY() float64 {
	return c.Playfield.Height - c.Player.BottomOffset
}
