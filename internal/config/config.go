// Package config loads tasks settings from TOML files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Makepad-fr/tasks/internal/ui"
)

const (
	DefaultTheme     = "classic"
	DefaultLogLevel  = "info"
	DefaultCharLimit = 200

	ProjectFileName = "tasks.toml"
	EnvPrefix       = "TASKS_"
)

// Config holds every tunable of the screen and the shell.
type Config struct {
	Theme     string `toml:"theme"`
	LogLevel  string `toml:"log_level"`
	LogFile   string `toml:"log_file"`
	Seed      string `toml:"seed"`
	CharLimit int    `toml:"char_limit"`
	AltScreen bool   `toml:"alt_screen"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Theme:     DefaultTheme,
		LogLevel:  DefaultLogLevel,
		CharLimit: DefaultCharLimit,
		AltScreen: true,
	}
}

// Load layers settings in priority order:
// 1. Defaults
// 2. User config file (<user config dir>/tasks/config.toml)
// 3. Project config file (./tasks.toml), or path when non-empty
// 4. Environment variables (TASKS_*)
// Flags are applied by the caller on top of the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if p := userConfigFile(); p != "" {
		if err := decodeFile(&cfg, p); err != nil {
			return cfg, err
		}
	}

	if path == "" {
		if _, err := os.Stat(ProjectFileName); err == nil {
			path = ProjectFileName
		}
	}
	if path != "" {
		if err := decodeFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	if err := loadFromEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the program cannot run with.
func (c Config) Validate() error {
	if !ui.Known(strings.ToLower(c.Theme)) {
		return fmt.Errorf("theme: unknown %q (want one of %s)", c.Theme, strings.Join(ui.Themes, ", "))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unknown %q", c.LogLevel)
	}
	if c.CharLimit <= 0 {
		return fmt.Errorf("char_limit: must be positive, got %d", c.CharLimit)
	}
	return nil
}

func decodeFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("read config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v, ok := env("THEME"); ok {
		cfg.Theme = v
	}
	if v, ok := env("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := env("LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := env("SEED"); ok {
		cfg.Seed = v
	}
	if v, ok := env("CHAR_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCHAR_LIMIT: %w", EnvPrefix, err)
		}
		cfg.CharLimit = n
	}
	if v, ok := env("ALT_SCREEN"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sALT_SCREEN: %w", EnvPrefix, err)
		}
		cfg.AltScreen = b
	}
	return nil
}

func env(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// userConfigFile returns the user-level config path if it exists.
func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "tasks", "config.toml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}
