package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the user config dir at an empty temp dir and moves into
// another temp dir so no real tasks.toml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("HOME", home)
	for _, k := range []string{"THEME", "LOG_LEVEL", "LOG_FILE", "SEED", "CHAR_LIMIT", "ALT_SCREEN"} {
		t.Setenv(EnvPrefix+k, "")
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestProjectFile(t *testing.T) {
	dir := isolate(t)
	data := "theme = \"neon\"\nchar_limit = 80\nalt_screen = false\n"
	if err := os.WriteFile(filepath.Join(dir, ProjectFileName), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "neon" || cfg.CharLimit != 80 || cfg.AltScreen {
		t.Errorf("got %+v", cfg)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: got %q, want default", cfg.LogLevel)
	}
}

func TestExplicitFileAndEnvOverride(t *testing.T) {
	dir := isolate(t)
	p := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(p, []byte("log_level = \"debug\"\ntheme = \"mono\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPrefix+"THEME", "classic")
	t.Setenv(EnvPrefix+"SEED", "seed.json")

	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.Theme != "classic" {
		t.Errorf("env should win over file, got %q", cfg.Theme)
	}
	if cfg.Seed != "seed.json" {
		t.Errorf("Seed: got %q", cfg.Seed)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr string
	}{
		{"bad toml", "theme = ", nil, "read config"},
		{"unknown key", "colour = \"red\"\n", nil, "unknown keys colour"},
		{"bad char limit env", "", map[string]string{"CHAR_LIMIT": "lots"}, "TASKS_CHAR_LIMIT"},
		{"bad alt screen env", "", map[string]string{"ALT_SCREEN": "maybe"}, "TASKS_ALT_SCREEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := ""
			if tt.file != "" {
				path = filepath.Join(dir, "c.toml")
				if err := os.WriteFile(path, []byte(tt.file), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			for k, v := range tt.env {
				t.Setenv(EnvPrefix+k, v)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"theme case-insensitive", func(c *Config) { c.Theme = "NEON" }, ""},
		{"unknown theme", func(c *Config) { c.Theme = "sepia" }, "theme"},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"zero char limit", func(c *Config) { c.CharLimit = 0 }, "char_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
