package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/example/drawg/internal/export"
)

// Environment variables that override the configuration file.
const (
	EnvFormat  = "DRAWG_FORMAT"
	EnvSaveDir = "DRAWG_SAVE_DIR"
	EnvTheme   = "DRAWG_THEME"
	// EnvDotenv names an alternative .env file.
	EnvDotenv = "DRAWG_ENV_FILE"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the configuration file, then applies .env and environment overrides.
func (l *Loader) Load() (*Config, error) {
	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if cfg, err = Parse(f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// Existing environment variables win over the .env file.
	if envPath := l.GetEnvPath(); envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from DRAWG_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFormat); ok && strings.TrimSpace(v) != "" {
		f, err := export.ParseFormat(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFormat, err)
		}
		c.Format = f
	}
	if v, ok := lookup(EnvSaveDir); ok && strings.TrimSpace(v) != "" {
		c.SaveDir = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTheme); ok && strings.TrimSpace(v) != "" {
		c.Theme = strings.TrimSpace(v)
	}
	return nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Variable override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// 2. Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".drawgrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG Config Path
	if path := userPath("config.rc"); path != "" {
		return path
	}
	return ""
}

// GetEnvPath returns the .env file to load, or empty string if there is none.
func (l *Loader) GetEnvPath() string {
	if alt := strings.TrimSpace(os.Getenv(EnvDotenv)); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".env")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}
	return userPath(".env")
}

// SavePath is where `config save` writes when no override path is set.
func (l *Loader) SavePath() (string, error) {
	if l.OverridePath != "" {
		return l.OverridePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "drawg", "config.rc"), nil
}

// Save writes cfg in rc format to SavePath.
func (l *Loader) Save(cfg *Config) (string, error) {
	path, err := l.SavePath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

func userPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".config", "drawg", name)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
