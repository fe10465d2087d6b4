package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"dynix/internal/constants"
)

// Config holds the small set of user-tunable settings. It lives at
// ~/.dynix/dynix.yaml and is created with defaults on first run.
type Config struct {
	VaultDir    string   `yaml:"vaultdir"`
	Editor      string   `yaml:"editor"`
	EditorArgs  string   `yaml:"editorargs"`
	IgnoredDirs []string `yaml:"ignoredirs"`

	path string `yaml:"-"`
}

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// Defaults returns the configuration used when no file exists yet.
// The vault defaults to ~/obsidian and the editor to $EDITOR, falling
// back to nvim.
func Defaults(homeDir string) *Config {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = constants.DefaultEditor
	}

	return &Config{
		VaultDir:    filepath.Join(homeDir, constants.DefaultVaultSubdir),
		Editor:      editor,
		IgnoredDirs: []string{".git", ".obsidian", ".trash"},
		path:        GetConfigPath(homeDir),
	}
}

// EnsureConfigExists creates the config directory and writes a default
// config file if none is present yet.
func EnsureConfigExists(homeDir string) error {
	configPath := GetConfigPath(homeDir)
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if saveErr := Defaults(homeDir).Save(); saveErr != nil {
			return fmt.Errorf("failed to write default config: %w", saveErr)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	return nil
}

// Load reads the config file for homeDir. An empty or partially filled
// file is topped up with defaults; a missing file is an error (call
// EnsureConfigExists first).
func Load(homeDir string) (*Config, error) {
	path := GetConfigPath(homeDir)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.path = path

	defaults := Defaults(homeDir)
	if cfg.VaultDir == "" {
		cfg.VaultDir = defaults.VaultDir
	}
	if cfg.Editor == "" {
		cfg.Editor = defaults.Editor
	}
	if cfg.IgnoredDirs == nil {
		cfg.IgnoredDirs = defaults.IgnoredDirs
	}

	cfg.syncViper()
	return cfg, nil
}

func (cfg *Config) Save() error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cfg.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", cfg.path, err)
	}

	cfg.syncViper()
	return nil
}

// syncViper mirrors the loaded values into viper so flag overrides and
// config values resolve through one lookup path.
func (cfg *Config) syncViper() {
	viper.Set("vaultdir", cfg.VaultDir)
	viper.Set("editor", cfg.Editor)
	viper.Set("editorargs", cfg.EditorArgs)
	viper.Set("ignoredirs", append([]string(nil), cfg.IgnoredDirs...))
}
