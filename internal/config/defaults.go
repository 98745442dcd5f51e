package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the default configuration.
// It mirrors defaults/invaders.yaml and is used when the embedded file
// cannot be parsed.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Playfield: PlayfieldConfig{
			Width:  800,
			Height: 600,
		},
		Player: PlayerConfig{
			Width:           50,
			Height:          40,
			Speed:           5,
			BottomOffset:    60,
			Lives:           3,
			ShootCooldownMs: 250,
		},
		Bullets: BulletConfig{
			Width:       4,
			Height:      10,
			PlayerSpeed: 7,
			EnemySpeed:  3,
		},
		Formation: FormationConfig{
			Rows:            5,
			Cols:            10,
			EnemyWidth:      40,
			EnemyHeight:     30,
			Spacing:         20,
			StartX:          50,
			StartY:          50,
			Speed:           1,
			DropDistance:    40,
			SpeedIncrement:  0.5,
			FireProbability: 0.005,
			FastRows:        2,
			MediumRows:      2,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultInvadersYAML
}
