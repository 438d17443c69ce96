// Package config loads the optional YAML configuration file the CLI
// accepts via --config, the way the teacher's cmd/init.go and
// lint.Config load .tlin.yaml.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultPath = ".opqlcheck.yaml"

// Config never changes grammar acceptance. It records per-class
// severity overrides and a color preference. The CLI writes a default
// file with init-config but never calls Load, so neither field affects
// the diagnostics or the coloring of a check.
type Config struct {
	Name              string            `yaml:"name"`
	SeverityOverrides map[string]string `yaml:"severity_overrides"`
	Color             bool              `yaml:"color"`
}

func Default() Config {
	return Config{
		Name:              "opqlcheck",
		SeverityOverrides: map[string]string{},
		Color:             true,
	}
}

// Load reads and parses the YAML document at path, returning Default()
// merged under whatever the file sets.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Write serializes cfg to path, overwriting any existing file.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
