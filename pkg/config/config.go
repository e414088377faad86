// Package config loads grid settings from a .grid config file, GRID_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/grid/pkg/editor"
	"tableflip.dev/grid/pkg/grid"
)

const (
	// EnvPrefix prefixes every environment override, e.g. GRID_ROWS.
	EnvPrefix = "GRID"
	// EnvConfigPath names a directory searched for the config file first.
	EnvConfigPath = "GRID_CONFIG_PATH"
	// DefaultSettle is how long a save suppresses its own change events.
	DefaultSettle = 250 * time.Millisecond
)

// Config is the resolved configuration. It satisfies store.Config.
type Config struct {
	Path         string
	Rows         int
	Columns      int
	Settle       time.Duration
	LogLevel     string
	LogFormat    string
	Capabilities editor.Capabilities
}

// BasePath is the directory holding the grid database.
func (c *Config) BasePath() string {
	return c.Path
}

// Load reads the config file (.grid.yaml and friends) from $GRID_CONFIG_PATH
// or the working directory. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName(".grid") // .yaml is implicit
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}
	return FromViper(v)
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	caps := editor.DefaultCapabilities()
	v.SetDefault("path", "~/.grid.db")
	v.SetDefault("rows", editor.DefaultRows)
	v.SetDefault("columns", editor.DefaultColumns)
	v.SetDefault("settle", DefaultSettle)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("capabilities.merge", caps.Merge)
	v.SetDefault("capabilities.blank", caps.Blank)
	v.SetDefault("capabilities.checkbox", caps.Checkbox)
	v.SetDefault("capabilities.edit", caps.Edit)
	v.SetDefault("capabilities.addRow", caps.AddRow)
	v.SetDefault("capabilities.addColumn", caps.AddColumn)
	v.SetDefault("capabilities.generate", caps.Generate)
}

// FromViper resolves a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	cfg := &Config{
		Path:      path,
		Rows:      v.GetInt("rows"),
		Columns:   v.GetInt("columns"),
		Settle:    v.GetDuration("settle"),
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		Capabilities: editor.Capabilities{
			Merge:     v.GetBool("capabilities.merge"),
			Blank:     v.GetBool("capabilities.blank"),
			Checkbox:  v.GetBool("capabilities.checkbox"),
			Edit:      v.GetBool("capabilities.edit"),
			AddRow:    v.GetBool("capabilities.addRow"),
			AddColumn: v.GetBool("capabilities.addColumn"),
			Generate:  v.GetBool("capabilities.generate"),
		},
	}
	if !grid.ValidDimensions(cfg.Rows, cfg.Columns) {
		return nil, fmt.Errorf("config: default size %dx%d: %w", cfg.Rows, cfg.Columns, grid.ErrDimensionOutOfRange)
	}
	if cfg.Settle < 0 {
		return nil, fmt.Errorf("config: settle must not be negative, got %s", cfg.Settle)
	}
	return cfg, nil
}
