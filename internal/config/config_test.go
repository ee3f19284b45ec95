package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, used, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if used != "" {
		t.Errorf("config file used = %q, want none", used)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
	if cfg.CoverWidth != DefaultCoverWidth {
		t.Errorf("CoverWidth = %d, want %d", cfg.CoverWidth, DefaultCoverWidth)
	}
	if !strings.HasSuffix(cfg.LibraryDir, filepath.Join("epub2text", "library")) {
		t.Errorf("LibraryDir = %q", cfg.LibraryDir)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "epub2text.toml")
	content := `library_dir = "/srv/books"
log_level = "debug"
cover_width = 120
no_import = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, used, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if used != path {
		t.Errorf("config file used = %q, want %q", used, path)
	}
	if cfg.LibraryDir != "/srv/books" {
		t.Errorf("LibraryDir = %q", cfg.LibraryDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.CoverWidth != 120 {
		t.Errorf("CoverWidth = %d", cfg.CoverWidth)
	}
	if !cfg.NoImport {
		t.Error("NoImport = false, want true")
	}
}

func TestLoad_DefaultLocationYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "epub2text")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log_format: json\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, used, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if filepath.Base(used) != "config.yaml" {
		t.Errorf("config file used = %q", used)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EPUB2TEXT_LIBRARY_DIR", "/env/books")
	t.Setenv("EPUB2TEXT_NO_IMPORT", "true")

	cfg, _, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LibraryDir != "/env/books" {
		t.Errorf("LibraryDir = %q, want /env/books", cfg.LibraryDir)
	}
	if !cfg.NoImport {
		t.Error("NoImport = false, want true")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, _, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("Load should fail for a missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{LogLevel: "INFO", LogFormat: "Json", CoverWidth: 10}
	}

	cfg := valid()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("Validate did not normalise: %+v", cfg)
	}

	cfg = valid()
	cfg.Verbose = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("--verbose should force debug, got %q", cfg.LogLevel)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		flag   string
	}{
		{"bad level", func(c *Config) { c.LogLevel = "trace" }, "--log-level"},
		{"bad format", func(c *Config) { c.LogFormat = "yaml" }, "--log-format"},
		{"bad cover width", func(c *Config) { c.CoverWidth = 0 }, "--cover-width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.flag) {
				t.Fatalf("Validate() error = %v, want mention of %s", err, tt.flag)
			}
		})
	}
}
