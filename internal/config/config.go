// Package config provides hierarchical configuration management for relnotes
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.relnotes.yml) > user config (~/.config/relnotes/config.yml)
// > defaults. Project config may also be JSON (.relnotes.json).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the relnotes CLI tool configuration
type Configuration struct {
	// Changelog is the path of the markdown change log to read, relative to
	// the working directory. Can be set via RELNOTES_CHANGELOG.
	Changelog string `koanf:"changelog"`

	// Plain disables colors and the fetch spinner.
	// Can be set via RELNOTES_PLAIN.
	Plain bool `koanf:"plain"`

	// RemoteTimeout bounds --url fetches, in seconds.
	// Can be set via RELNOTES_REMOTE_TIMEOUT.
	RemoteTimeout int `koanf:"remote_timeout"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relnotes.yml)
	ProjectConfigPath string
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog":      "CHANGES.md",
		"plain":          false,
		"remote_timeout": 10,
	}
}

// UserConfigPath returns the path to the user-level config file,
// following the XDG Base Directory Specification on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relnotes", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
func ProjectConfigPath() string {
	return ".relnotes.yml"
}

// ProjectJSONConfigPath returns the JSON variant of the project config.
func ProjectJSONConfigPath() string {
	return ".relnotes.json"
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("RELNOTES_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Changelog == "" {
		return nil, fmt.Errorf("config: changelog path is empty")
	}
	if cfg.RemoteTimeout <= 0 {
		return nil, fmt.Errorf("config: remote_timeout must be positive, got %d", cfg.RemoteTimeout)
	}

	return &cfg, nil
}

// loadUserConfig loads the user-level YAML config when present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil {
		// No resolvable home directory; defaults still apply.
		return nil
	}
	if !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads project-level config, preferring YAML over JSON.
// A custom path selects its parser by extension.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("project config %s does not exist", customPath)
		}
		return loadByExtension(k, customPath)
	}

	yamlPath := ProjectConfigPath()
	if fileExists(yamlPath) {
		return loadByExtension(k, yamlPath)
	}

	jsonPath := ProjectJSONConfigPath()
	if fileExists(jsonPath) {
		return loadByExtension(k, jsonPath)
	}

	return nil
}

func loadByExtension(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = yaml.Parser()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		parser = json.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("failed to load project config %s: %w", path, err)
	}
	return nil
}

// envTransform maps RELNOTES_REMOTE_TIMEOUT to remote_timeout and so on.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RELNOTES_"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
