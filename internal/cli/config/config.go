package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const ConfigFileName = "burgerctl.json"

// DefaultServerURL is the public Stellar Burgers API
const DefaultServerURL = "https://norma.nomoreparties.space/api"

// ErrNotFound is returned when no burgerctl.json exists in the directory tree
var ErrNotFound = errors.New("burgerctl.json not found")

// Server represents a Stellar Burgers API endpoint
type Server struct {
	Alias  string `json:"alias"`
	URL    string `json:"url"`
	WebURL string `json:"webUrl,omitempty"` // Storefront opened by `burgerctl open`
}

// Preset is a named burger recipe
type Preset struct {
	Name     string   `json:"name"`
	Bun      string   `json:"bun"`
	Fillings []string `json:"fillings"`
}

// Ingredients expands the preset into the order body: the bun wraps the fillings
func (p *Preset) Ingredients() ([]string, error) {
	if p.Bun == "" {
		return nil, fmt.Errorf("preset '%s' has no bun", p.Name)
	}
	if len(p.Fillings) == 0 {
		return nil, fmt.Errorf("preset '%s' has no fillings", p.Name)
	}

	ids := make([]string, 0, len(p.Fillings)+2)
	ids = append(ids, p.Bun)
	for _, id := range p.Fillings {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("preset '%s' has an empty filling", p.Name)
		}
		ids = append(ids, id)
	}
	return append(ids, p.Bun), nil
}

// Config represents the CLI configuration file
type Config struct {
	Servers []Server `json:"servers"`
	Presets []Preset `json:"presets,omitempty"`
}

// DefaultConfig returns a configuration pointing at the public API
func DefaultConfig() *Config {
	return &Config{
		Servers: []Server{
			{
				Alias:  "norma",
				URL:    DefaultServerURL,
				WebURL: "https://stellarburgers.nomoreparties.site",
			},
		},
	}
}

// Validate checks server URLs and alias uniqueness
func (c *Config) Validate() error {
	aliases := make(map[string]bool, len(c.Servers))
	for i, server := range c.Servers {
		if server.URL == "" {
			return fmt.Errorf("server #%d has no url", i+1)
		}
		u, err := url.Parse(server.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("server #%d has an invalid url '%s'", i+1, server.URL)
		}
		if server.Alias != "" {
			if aliases[server.Alias] {
				return fmt.Errorf("duplicate server alias '%s'", server.Alias)
			}
			aliases[server.Alias] = true
		}
	}

	names := make(map[string]bool, len(c.Presets))
	for _, preset := range c.Presets {
		if preset.Name == "" {
			return fmt.Errorf("preset without a name")
		}
		if names[preset.Name] {
			return fmt.Errorf("duplicate preset '%s'", preset.Name)
		}
		names[preset.Name] = true
	}
	return nil
}

// FindConfigFile searches for burgerctl.json in current directory and parent directories
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	// Search upwards until we find burgerctl.json or reach root
	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w in %s or any parent directory", ErrNotFound, currentDir)
}

// Load reads the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads config from current directory or parent directories.
// Without a config file the default configuration is returned.
func LoadFromCurrentDir() (*Config, error) {
	configPath, err := FindConfigFile()
	if errors.Is(err, ErrNotFound) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	return Load(configPath)
}

// Save writes the configuration to a file
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetServerByAlias returns a server by its alias
func (c *Config) GetServerByAlias(alias string) (*Server, error) {
	for _, server := range c.Servers {
		if server.Alias == alias {
			return &server, nil
		}
	}
	return nil, fmt.Errorf("server with alias '%s' not found", alias)
}

// GetServerByURLOrAlias matches a server by URL (ignoring a trailing slash) or alias
func (c *Config) GetServerByURLOrAlias(value string) (*Server, error) {
	want := strings.TrimRight(value, "/")
	for _, server := range c.Servers {
		if strings.TrimRight(server.URL, "/") == want || server.Alias == value {
			return &server, nil
		}
	}
	return nil, fmt.Errorf("server '%s' not found in %s", value, ConfigFileName)
}

// GetDefaultServer returns the first server in the list
func (c *Config) GetDefaultServer() (*Server, error) {
	if len(c.Servers) == 0 {
		return nil, fmt.Errorf("no servers configured in %s", ConfigFileName)
	}
	return &c.Servers[0], nil
}

// GetPreset returns a burger preset by name
func (c *Config) GetPreset(name string) (*Preset, error) {
	for _, preset := range c.Presets {
		if preset.Name == name {
			return &preset, nil
		}
	}
	return nil, fmt.Errorf("preset '%s' not found", name)
}
