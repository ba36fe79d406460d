package userconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig is the per-user state kept between runs in ~/.config/burgerctl/config.json
type UserConfig struct {
	SelectedServerURL string `json:"selected_server_url"`
	LastEmail         string `json:"last_email,omitempty"`
}

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", "burgerctl", "config.json"), nil
}

// Load reads the user config. A missing file is an empty config.
func Load() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := &UserConfig{}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg, creating the config directory on first use
func Save(cfg *UserConfig) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}
	return nil
}

// Update loads the config, applies change and saves the result
func Update(change func(*UserConfig)) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	change(cfg)
	return Save(cfg)
}

// SetSelectedServer remembers the server used by later commands
func SetSelectedServer(serverURL string) error {
	return Update(func(cfg *UserConfig) { cfg.SelectedServerURL = serverURL })
}

// GetSelectedServer returns the remembered server URL or ""
func GetSelectedServer() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}
	return cfg.SelectedServerURL, nil
}

// SetLastEmail remembers the email of the last successful login
func SetLastEmail(email string) error {
	return Update(func(cfg *UserConfig) { cfg.LastEmail = email })
}

// GetLastEmail returns the email of the last successful login, if any
func GetLastEmail() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}
	return cfg.LastEmail, nil
}
