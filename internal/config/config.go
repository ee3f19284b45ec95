package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds app configuration
type Config struct {
	// OutputFile is where the extracted text is written; empty means next to
	// the input with a .txt extension, "-" means stdout
	OutputFile string `mapstructure:"output"`

	// LibraryDir receives a copy of every converted book unless NoImport is set
	LibraryDir string `mapstructure:"library_dir"`
	NoImport   bool   `mapstructure:"no_import"`

	// CoverFile, if set, receives a JPEG thumbnail of the cover image
	CoverFile  string `mapstructure:"cover"`
	CoverWidth int    `mapstructure:"cover_width"`

	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
	LogOutputDir string `mapstructure:"log_output_dir"`
	Verbose      bool   `mapstructure:"verbose"`
}

const (
	DefaultCoverWidth = 300
	EnvPrefix         = "EPUB2TEXT"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// DefaultLibraryDir returns the default location for imported books.
func DefaultLibraryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "epub2text", "library")
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output", "")
	v.SetDefault("library_dir", DefaultLibraryDir())
	v.SetDefault("no_import", false)
	v.SetDefault("cover", "")
	v.SetDefault("cover_width", DefaultCoverWidth)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_output_dir", "")
	v.SetDefault("verbose", false)
}

// Load reads configuration into v from cfgFile, or from config.{toml,yaml,json}
// in $HOME/.config/epub2text when cfgFile is empty, then from EPUB2TEXT_*
// environment variables. A missing default config file is not an error.
// It returns the config and the path of the file used, if any.
func Load(v *viper.Viper, cfgFile string) (*Config, string, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "epub2text"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, used, nil
}

// Validate normalises and checks option values.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("--log-level must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.LogLevel)
	}
	if !contains(validLogFormats, c.LogFormat) {
		return fmt.Errorf("--log-format must be one of %s, got %q", strings.Join(validLogFormats, ", "), c.LogFormat)
	}
	if c.CoverWidth <= 0 {
		return fmt.Errorf("--cover-width must be positive, got %d", c.CoverWidth)
	}
	if c.Verbose {
		c.LogLevel = "debug"
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
