// Package state carries the resolved runtime context that every
// command constructor receives: config, home directory, vault.
package state

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"dynix/internal/config"
	"dynix/internal/search"
	"dynix/internal/vault"
)

type State struct {
	Config *config.Config
	Home   string
}

// NewState loads the config for home. Call config.EnsureConfigExists
// beforehand so first runs find a file.
func NewState(home string) (*State, error) {
	cfg, err := config.Load(home)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &State{Config: cfg, Home: home}, nil
}

// VaultDir resolves through viper so --vault flag overrides win over
// the config file value.
func (s *State) VaultDir() string {
	if dir := viper.GetString("vaultdir"); dir != "" {
		return dir
	}
	return s.Config.VaultDir
}

// ValidateVault confirms the vault root exists. An absent vault is
// the one fatal configuration error, caught before any UI starts.
func (s *State) ValidateVault() error {
	dir := s.VaultDir()
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("vault root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault root %s is not a directory", dir)
	}
	return nil
}

// Scanner builds a scanner for the current vault. Built per call so
// flag overrides parsed after state construction still apply.
func (s *State) Scanner() *vault.Scanner {
	return vault.NewScanner(s.VaultDir(), s.Config.IgnoredDirs)
}

func (s *State) Engine() *search.Engine {
	return search.NewEngine(s.Scanner())
}
