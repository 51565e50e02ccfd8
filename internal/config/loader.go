package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "keyrunner.yaml"

// LoadKeyRunner loads the game configuration.
// Search order: customPath -> ~/.keyrunner/configs/keyrunner.yaml ->
// ./configs/keyrunner.yaml -> embedded default -> hard-coded default.
// Files are decoded over the defaults, so omitted keys keep their default value.
func LoadKeyRunner(customPath string) (KeyRunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return KeyRunnerConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return KeyRunnerConfig{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if path := userConfigPath(configFile); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := decode(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultKeyRunnerYAML)
	if err != nil {
		return DefaultKeyRunnerConfig(), nil
	}
	return cfg, nil
}

// Load is LoadKeyRunner followed by environment overrides and validation.
func Load(customPath string) (KeyRunnerConfig, error) {
	cfg, err := LoadKeyRunner(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decode(data []byte) (KeyRunnerConfig, error) {
	cfg := DefaultKeyRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return KeyRunnerConfig{}, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg KeyRunnerConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".keyrunner", "configs", filename)
}
