package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kalpyotish/kalp-admin/internal/api"
)

// Environment overrides, read from the process or a .env file.
const (
	EnvAPIURL   = "KALP_API_URL"
	EnvLogFile  = "KALP_LOG_FILE"
	EnvLogLevel = "KALP_LOG_LEVEL"
)

// Config holds CLI configuration stored at ~/.kalp-admin/config.
type Config struct {
	BaseURL  string     `yaml:"base_url,omitempty"`
	LogFile  string     `yaml:"log_file,omitempty"`
	LogLevel string     `yaml:"log_level,omitempty"`
	VimKeys  bool       `yaml:"vim_keys"`
	Admin    *api.Admin `yaml:"admin,omitempty"`
}

// Dir returns the per-user state directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".kalp-admin")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// Load reads and parses the config file. Returns error if missing or insecure.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields an empty config.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return nil, err
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// ApplyEnv overlays KALP_* variables onto c. Process environment wins over
// the given .env files; missing files are skipped.
func (c *Config) ApplyEnv(envFiles ...string) error {
	fromFiles := map[string]string{}
	for _, f := range envFiles {
		vals, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range vals {
			if _, seen := fromFiles[k]; !seen {
				fromFiles[k] = v
			}
		}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(fromFiles[key])
	}
	if v := lookup(EnvAPIURL); v != "" {
		c.BaseURL = v
	}
	if v := lookup(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := lookup(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}

// APIURL returns the configured API root or the production default.
func (c *Config) APIURL() string {
	if strings.TrimSpace(c.BaseURL) == "" {
		return api.DefaultBaseURL
	}
	return strings.TrimSpace(c.BaseURL)
}

// LogPath returns the log file, defaulting to kalp-admin.log in Dir.
func (c *Config) LogPath() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return filepath.Join(Dir(), "kalp-admin.log")
	}
	return c.LogFile
}
