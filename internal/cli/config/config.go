package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = "courtly.yaml"

// EnvServerURL overrides the configured server URL.
const EnvServerURL = "COURTLY_SERVER_URL"

// Config is the CLI configuration file. It lives next to the project (or
// any parent directory) so teams can commit a shared server address.
type Config struct {
	// Server is the base URL of the Courtly API, e.g. http://localhost:8080
	Server string `yaml:"server"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Server: "http://localhost:8080"}
}

// Load finds courtly.yaml in the current directory or any parent and
// parses it. A missing file is not an error; the defaults apply. The
// COURTLY_SERVER_URL environment variable wins over both.
func Load() (*Config, error) {
	cfg := Default()

	if path, ok := findConfigFile(); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if url := os.Getenv(EnvServerURL); url != "" {
		cfg.Server = url
	}

	if cfg.Server == "" {
		return nil, fmt.Errorf("server URL is empty; set it in %s or via %s", ConfigFileName, EnvServerURL)
	}
	return cfg, nil
}

// Save writes the configuration to the current directory.
func Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(ConfigFileName, data, 0o644)
}

func findConfigFile() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
