// Package config loads the optional YAML configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/workplan/internal/constants"
	"github.com/julianstephens/workplan/internal/models"
)

// Config is the on-disk configuration. Every field is optional.
type Config struct {
	Store    string   `yaml:"store"`
	Debug    bool     `yaml:"debug"`
	Defaults Defaults `yaml:"defaults"`
	Print    Print    `yaml:"print"`
	Server   Server   `yaml:"server"`
}

// Defaults prefill the add-action dialog
type Defaults struct {
	CycleCount  int  `yaml:"cycle_count"`
	TotalCycles int  `yaml:"total_cycles"`
	TrackWeight bool `yaml:"track_weight"`
}

// Print controls where printable pages go and what opens them
type Print struct {
	Opener    []string `yaml:"opener"`
	OutputDir string   `yaml:"output_dir"`
}

// Server controls the read-only HTTP view
type Server struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file exists
func Default() Config {
	return Config{
		Store: constants.DefaultStorePath,
		Defaults: Defaults{
			CycleCount:  models.DefaultCycleCount,
			TotalCycles: models.DefaultTotalCycles,
		},
		Server: Server{Addr: constants.DefaultServeAddr},
	}
}

// Parse decodes a YAML payload on top of the defaults
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Load reads the file at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	def := Default()
	c.Store = strings.TrimSpace(c.Store)
	if c.Store == "" {
		c.Store = def.Store
	}
	if c.Defaults.CycleCount <= 0 {
		c.Defaults.CycleCount = def.Defaults.CycleCount
	}
	if c.Defaults.TotalCycles <= 0 {
		c.Defaults.TotalCycles = def.Defaults.TotalCycles
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = def.Server.Addr
	}
	c.Print.OutputDir = ExpandHome(strings.TrimSpace(c.Print.OutputDir))
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
