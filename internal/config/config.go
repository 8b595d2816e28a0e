package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// ProjectFile is the name of a project-local config file
const ProjectFile = "mdsite.yaml"

// Config represents the mdsite configuration
type Config struct {
	ContentDir  string        `yaml:"content_dir"`
	StaticDir   string        `yaml:"static_dir"`
	PublicDir   string        `yaml:"public_dir"`
	Template    string        `yaml:"template"`
	BasePath    string        `yaml:"base_path"`
	LogFile     string        `yaml:"log_file,omitempty"`
	StateFile   string        `yaml:"state_file,omitempty"`
	Interval    time.Duration `yaml:"-"` // Custom YAML handling below
	Incremental bool          `yaml:"incremental"`
}

// rawConfig mirrors Config with the interval as a duration string
type rawConfig struct {
	ContentDir  string `yaml:"content_dir"`
	StaticDir   string `yaml:"static_dir"`
	PublicDir   string `yaml:"public_dir"`
	Template    string `yaml:"template"`
	BasePath    string `yaml:"base_path"`
	LogFile     string `yaml:"log_file,omitempty"`
	StateFile   string `yaml:"state_file,omitempty"`
	Interval    string `yaml:"interval"`
	Incremental bool   `yaml:"incremental"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		ContentDir:  "content",
		StaticDir:   "static",
		PublicDir:   "public",
		Template:    "template.html",
		BasePath:    "/",
		StateFile:   StateFilePath(),
		Interval:    2 * time.Second,
		Incremental: false,
	}
}

// ConfigPath returns the path to the config file.
// A mdsite.yaml in the working directory wins over the user config.
// Can be overridden for testing
var ConfigPath = func() string {
	if _, err := os.Stat(ProjectFile); err == nil {
		return ProjectFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "mdsite", "config.yaml")
	}
	return filepath.Join(home, ".config", "mdsite", "config.yaml")
}

// StateFilePath returns the path to the build state file
// Uses platform-specific XDG data directory
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "mdsite", "state.json")
}

// Load reads configuration from ConfigPath
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads configuration from the given file.
// A missing file yields the default configuration.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := cfg.ExpandPaths(); err != nil {
				return nil, fmt.Errorf("failed to expand paths: %w", err)
			}
			return cfg, nil
		}
		return nil, err
	}

	defaults := DefaultConfig()
	raw := rawConfig{
		ContentDir:  defaults.ContentDir,
		StaticDir:   defaults.StaticDir,
		PublicDir:   defaults.PublicDir,
		Template:    defaults.Template,
		BasePath:    defaults.BasePath,
		StateFile:   defaults.StateFile,
		Interval:    defaults.Interval.String(),
		Incremental: defaults.Incremental,
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Parse interval duration
	interval, err := time.ParseDuration(raw.Interval)
	if err != nil {
		return nil, fmt.Errorf("invalid interval format '%s': %w", raw.Interval, err)
	}

	cfg := &Config{
		ContentDir:  raw.ContentDir,
		StaticDir:   raw.StaticDir,
		PublicDir:   raw.PublicDir,
		Template:    raw.Template,
		BasePath:    raw.BasePath,
		LogFile:     raw.LogFile,
		StateFile:   raw.StateFile,
		Interval:    interval,
		Incremental: raw.Incremental,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Relative paths resolve against the config file's directory
	if err := cfg.resolveRelative(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to ConfigPath
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes configuration to the given file
func (c *Config) SaveTo(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	raw := rawConfig{
		ContentDir:  c.ContentDir,
		StaticDir:   c.StaticDir,
		PublicDir:   c.PublicDir,
		Template:    c.Template,
		BasePath:    c.BasePath,
		LogFile:     c.LogFile,
		StateFile:   c.StateFile,
		Interval:    c.Interval.String(),
		Incremental: c.Incremental,
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir cannot be empty")
	}
	if c.PublicDir == "" {
		return fmt.Errorf("public_dir cannot be empty")
	}
	if c.Template == "" {
		return fmt.Errorf("template cannot be empty")
	}
	if c.StateFile == "" {
		return fmt.Errorf("state_file cannot be empty")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if !strings.HasPrefix(c.BasePath, "/") || !strings.HasSuffix(c.BasePath, "/") {
		return fmt.Errorf("invalid base_path '%s': must start and end with '/'", c.BasePath)
	}
	if c.PublicDir == c.ContentDir || (c.StaticDir != "" && c.PublicDir == c.StaticDir) {
		return fmt.Errorf("public_dir must differ from content_dir and static_dir")
	}

	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	return c.resolveRelative("")
}

func (c *Config) resolveRelative(base string) error {
	fields := []struct {
		name string
		ptr  *string
	}{
		{"content_dir", &c.ContentDir},
		{"static_dir", &c.StaticDir},
		{"public_dir", &c.PublicDir},
		{"template", &c.Template},
		{"log_file", &c.LogFile},
		{"state_file", &c.StateFile},
	}

	for _, f := range fields {
		p := *f.ptr
		if base != "" && p != "" && p[0] != '~' && !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		expanded, err := expandPath(p)
		if err != nil {
			return fmt.Errorf("failed to expand %s: %w", f.name, err)
		}
		*f.ptr = expanded
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
