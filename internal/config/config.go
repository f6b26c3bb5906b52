// Package config loads the shell's settings from an optional TOML file and
// ZUKUS_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"zukus-desktop/internal/logger"
)

const (
	AppName = "Zukus"
	AppID   = "com.zukus.desktop"
	dirName = "zukus"
)

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type Instance struct {
	Single  bool   `toml:"single" env:"ZUKUS_SINGLE_INSTANCE"`
	DataDir string `toml:"data_dir" env:"ZUKUS_DATA_DIR"`
}

type Logging struct {
	Level  string `toml:"level" env:"ZUKUS_LOG_LEVEL"`
	Format string `toml:"format" env:"ZUKUS_LOG_FORMAT"`
	File   string `toml:"file" env:"ZUKUS_LOG_FILE"`
}

// Plugin converts the section into the logging facility's settings.
func (l Logging) Plugin() logger.Plugin {
	return logger.Plugin{Level: l.Level, Format: l.Format, File: l.File}
}

type Config struct {
	Window   Window   `toml:"window"`
	Logging  Logging  `toml:"logging"`
	Instance Instance `toml:"instance"`
}

func Default() Config {
	plugin := logger.DefaultPlugin()
	return Config{
		Window: Window{
			Title:  AppName,
			Width:  1200,
			Height: 800,
		},
		Logging: Logging{
			Level:  plugin.Level,
			Format: plugin.Format,
		},
		Instance: Instance{
			Single:  true,
			DataDir: defaultDataDir(),
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path resolves to DefaultPath. A missing
// file is not an error.
func Load(path string) (Config, string, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, path, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, path, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, path, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// DefaultPath honours ZUKUS_CONFIG, then the user config directory.
func DefaultPath() string {
	if p := os.Getenv("ZUKUS_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, dirName, "config.toml")
}

func defaultDataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, dirName)
	}
	return filepath.Join(os.TempDir(), dirName)
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if err := c.Logging.Plugin().Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if c.Instance.Single && c.Instance.DataDir == "" {
		return errors.New("instance: data_dir is required when single is enabled")
	}
	return nil
}
