package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "INVADERS_"

// Source describes where a loaded configuration came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// LoadInvaders loads the game configuration.
// Search order: customPath -> ~/.invaders/configs/invaders.yaml -> ./configs/invaders.yaml -> embedded default.
// Environment overrides are applied on top of whichever file was used.
// The result is not validated; callers validate after applying presets.
func LoadInvaders(customPath string) (InvadersConfig, Source, error) {
	cfg, src, err := loadInvadersFile(customPath)
	if err != nil {
		return cfg, src, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, src, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, src, nil
}

func loadInvadersFile(customPath string) (InvadersConfig, Source, error) {
	var cfg InvadersConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, SourceCustom, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err = Parse(data)
		if err != nil {
			return cfg, SourceCustom, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("invaders.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if parsed, err := Parse(data); err == nil {
				return parsed, SourceUser, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "invaders.yaml")); err == nil {
		if parsed, err := Parse(data); err == nil {
			return parsed, SourceLocal, nil
		}
	}

	// Use embedded default YAML
	parsed, err := Parse(defaultInvadersYAML)
	if err != nil {
		return DefaultInvadersConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return parsed, SourceEmbedded, nil
}

// Parse decodes YAML on top of the built-in defaults, so a file only needs
// to list the values it changes.
func Parse(data []byte) (InvadersConfig, error) {
	cfg := DefaultInvadersConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg InvadersConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".invaders", "configs", filename)
}
