// Package config loads the solver's settings from a TOML file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// DirName is the settings directory created under the user's home.
const DirName = ".gocube_solver"

// Config holds every setting the CLI reads. Zero paths are derived from
// DataDir by Resolve.
type Config struct {
	DataDir  string `toml:"data_dir"`
	DBPath   string `toml:"db_path"`
	TableDir string `toml:"table_dir"`

	// Solver settings.
	Workers  int  `toml:"workers"`
	Pruning  bool `toml:"pruning"`
	MaxDepth int  `toml:"max_depth"`

	// Table build settings.
	Tables        []string `toml:"tables"`
	BuildMaxDepth int      `toml:"build_max_depth"`
	BuildWorkers  int      `toml:"build_workers"`
}

// DefaultDir returns the settings directory, creating it if needed.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return dir, nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Default returns the built-in settings rooted at dataDir.
func Default(dataDir string) *Config {
	c := &Config{
		DataDir:      dataDir,
		Workers:      runtime.NumCPU(),
		Pruning:      true,
		Tables:       []string{"corners", "edges1", "edges2"},
		BuildWorkers: 3,
	}
	c.Resolve()
	return c
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default(filepath.Dir(path))
	// Paths are re-derived unless the file sets them.
	c.DBPath, c.TableDir = "", ""

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	c.Resolve()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// LoadDefault loads the config file at the default path.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Resolve fills empty paths from DataDir and expands a leading ~.
func (c *Config) Resolve() {
	c.DataDir = expandHome(c.DataDir)
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "solver.db")
	}
	if c.TableDir == "" {
		c.TableDir = filepath.Join(c.DataDir, "tables")
	}
	c.DBPath = expandHome(c.DBPath)
	c.TableDir = expandHome(c.TableDir)
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.BuildWorkers < 1 {
		return fmt.Errorf("build_workers must be at least 1, got %d", c.BuildWorkers)
	}
	if c.MaxDepth < 0 || c.BuildMaxDepth < 0 {
		return fmt.Errorf("depth limits must not be negative")
	}
	if c.BuildMaxDepth > 253 {
		return fmt.Errorf("build_max_depth %d does not fit a table entry", c.BuildMaxDepth)
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("no tables configured")
	}
	return nil
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
