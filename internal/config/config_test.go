package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	parsed, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if parsed != DefaultInvadersConfig() {
		t.Errorf("embedded YAML and DefaultInvadersConfig differ:\n%+v\n%+v", parsed, DefaultInvadersConfig())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultInvadersConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("formation:\n  rows: 3\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Formation.Rows != 3 {
		t.Errorf("Rows = %d, expected 3", cfg.Formation.Rows)
	}
	if cfg.Formation.Cols != 10 {
		t.Errorf("Cols = %d, expected default 10", cfg.Formation.Cols)
	}
	if cfg.Player.ShootCooldownMs != 250 {
		t.Errorf("ShootCooldownMs = %d, expected default 250", cfg.Player.ShootCooldownMs)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("player:\n  lives: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := LoadInvaders(path)
	if err != nil {
		t.Fatalf("LoadInvaders failed: %v", err)
	}
	if src != SourceCustom {
		t.Errorf("source = %q, expected custom", src)
	}
	if cfg.Player.Lives != 7 {
		t.Errorf("Lives = %d, expected 7", cfg.Player.Lives)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, _, err := LoadInvaders(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("formation:\n  fire_probability: 0.01\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INVADERS_FORMATION_FIRE_PROBABILITY", "0.25")
	t.Setenv("INVADERS_PLAYER_LIVES", "9")

	cfg, _, err := LoadInvaders(path)
	if err != nil {
		t.Fatalf("LoadInvaders failed: %v", err)
	}
	if cfg.Formation.FireProbability != 0.25 {
		t.Errorf("FireProbability = %v, expected env override 0.25", cfg.Formation.FireProbability)
	}
	if cfg.Player.Lives != 9 {
		t.Errorf("Lives = %d, expected env override 9", cfg.Player.Lives)
	}
	if cfg.Formation.Rows != 5 {
		t.Errorf("Rows = %d, untouched fields should keep defaults", cfg.Formation.Rows)
	}
}

func TestLoadEnvOverrideBadValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INVADERS_FORMATION_ROWS", "lots")

	if _, _, err := LoadInvaders(path); err == nil {
		t.Fatal("expected error for unparsable env override")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InvadersConfig)
		field  string
	}{
		{"zero width", func(c *InvadersConfig) { c.Playfield.Width = 0 }, "playfield.width"},
		{"negative height", func(c *InvadersConfig) { c.Playfield.Height = -1 }, "playfield.height"},
		{"player wider than field", func(c *InvadersConfig) { c.Player.Width = 900 }, "player.width"},
		{"zero lives", func(c *InvadersConfig) { c.Player.Lives = 0 }, "player.lives"},
		{"negative cooldown", func(c *InvadersConfig) { c.Player.ShootCooldownMs = -5 }, "player.shoot_cooldown_ms"},
		{"zero bullet speed", func(c *InvadersConfig) { c.Bullets.PlayerSpeed = 0 }, "bullets.player_speed"},
		{"zero rows", func(c *InvadersConfig) { c.Formation.Rows = 0 }, "formation.rows"},
		{"probability above one", func(c *InvadersConfig) { c.Formation.FireProbability = 1.5 }, "formation.fire_probability"},
		{"zero formation speed", func(c *InvadersConfig) { c.Formation.Speed = 0 }, "formation.speed"},
		{"formation too wide", func(c *InvadersConfig) { c.Formation.Cols = 20 }, "formation.cols"},
		{"formation too tall", func(c *InvadersConfig) { c.Formation.Rows = 12 }, "formation.rows"},
		{"ship below field", func(c *InvadersConfig) { c.Player.BottomOffset = 10 }, "player.bottom_offset"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultInvadersConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig: %v", err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("error should contain a FieldError: %v", err)
			}
			if !containsField(err, tc.field) {
				t.Errorf("expected a problem with %s, got %v", tc.field, err)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := DefaultInvadersConfig()
	cfg.Playfield.Height = 0
	cfg.Bullets.Width = 0
	cfg.Formation.DropDistance = 0

	err := cfg.Validate()
	for _, field := range []string{"playfield.height", "bullets.width", "formation.drop_distance"} {
		if !containsField(err, field) {
			t.Errorf("expected %s in %v", field, err)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultInvadersConfig()

	easy := base
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Player.Lives != 5 || easy.Formation.FireProbability >= base.Formation.FireProbability {
		t.Errorf("easy preset not applied: %+v", easy)
	}

	hard := base
	ApplyPreset(&hard, DifficultyHard)
	if hard.Player.Lives != 2 || hard.Formation.Speed <= base.Formation.Speed {
		t.Errorf("hard preset not applied: %+v", hard)
	}

	fixed := base
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Formation.SpeedIncrement != 0 {
		t.Errorf("fixed preset should disable progression, got increment %v", fixed.Formation.SpeedIncrement)
	}

	normal := base
	ApplyPreset(&normal, DifficultyNormal)
	if normal != base {
		t.Error("normal preset should keep loaded values")
	}

	for _, p := range []DifficultyPreset{"", DifficultyEasy, DifficultyHard, DifficultyFixed} {
		cfg := base
		ApplyPreset(&cfg, p)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q produced invalid config: %v", p, err)
		}
	}
}

func TestParsePreset(t *testing.T) {
	if _, err := ParsePreset("hard"); err != nil {
		t.Errorf("ParsePreset(hard) failed: %v", err)
	}
	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("brutal"); err == nil {
		t.Error("ParsePreset(brutal) should fail")
	}
}

func containsField(err error, field string) bool {
	var joined interface{ Unwrap() []error }
	for e := err; e != nil; {
		if fe, ok := e.(*FieldError); ok && fe.Field == field {
			return true
		}
		if errors.As(e, &joined) {
			for _, inner := range joined.Unwrap() {
				if containsField(inner, field) {
					return true
				}
			}
			return false
		}
		e = errors.Unwrap(e)
	}
	return false
}
