package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/histy/config.yaml"

// Config holds all histy configuration.
type Config struct {
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Chart    ChartConfig    `yaml:"chart"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SnapshotConfig controls where the live history store lives and how long
// a cached copy of it stays valid.
type SnapshotConfig struct {
	SourcePath string `yaml:"source_path"`
	CacheDir   string `yaml:"cache_dir"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// ChartConfig controls ranking size and diagnostic output.
type ChartConfig struct {
	DefaultTop     int      `yaml:"default_top"`
	MaxTop         int      `yaml:"max_top"`
	MaxURLLength   int      `yaml:"max_url_length"`
	ExcludeDomains []string `yaml:"exclude_domains"`
}

// OutputConfig controls the HTML renderer.
type OutputConfig struct {
	HTMLFile    string `yaml:"html_file"`
	OpenBrowser bool   `yaml:"open_browser"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// TTL returns the snapshot cache validity window as a duration.
func (c SnapshotConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// ResolveSourcePath returns the configured history store path, falling back
// to the platform default Chrome profile location when unset. A leading ~
// is expanded in either case.
func (c SnapshotConfig) ResolveSourcePath() (string, error) {
	if c.SourcePath != "" {
		return ExpandPath(c.SourcePath)
	}
	return defaultHistoryPath()
}

// ResolveCacheDir expands the configured cache directory.
func (c SnapshotConfig) ResolveCacheDir() (string, error) {
	return ExpandPath(c.CacheDir)
}

// defaultHistoryPath returns the default Chrome History location for the
// current platform.
func defaultHistoryPath() (string, error) {
	switch runtime.GOOS {
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			return "", fmt.Errorf("resolving history path: LOCALAPPDATA not set")
		}
		return filepath.Join(local, "Google", "Chrome", "User Data", "Default", "History"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", "Google", "Chrome", "Default", "History"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, ".config", "google-chrome", "Default", "History"), nil
	}
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.normalize()

	return cfg, nil
}

// normalize repairs out-of-range sizing values rather than rejecting the
// file: the knobs come from user-editable YAML, and a nonsensical value
// falls back to its default.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Chart.DefaultTop <= 0 {
		c.Chart.DefaultTop = def.Chart.DefaultTop
	}
	if c.Chart.MaxTop <= 0 {
		c.Chart.MaxTop = def.Chart.MaxTop
	}
	if c.Chart.MaxURLLength <= 0 {
		c.Chart.MaxURLLength = def.Chart.MaxURLLength
	}
	if c.Snapshot.TTLSeconds < 0 {
		c.Snapshot.TTLSeconds = def.Snapshot.TTLSeconds
	}
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
