// Package config loads tool configuration from a TOML file.
//
// Configuration is optional: every field has a working default, and a
// missing file yields the defaults without error. The CLI looks for
// gigcard.toml in the working directory, then under the user config
// directory.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/soundpress/gigcard/pkg/errors"
)

// FileName is the configuration file the CLI searches for.
const FileName = "gigcard.toml"

// Config is the root configuration document.
type Config struct {
	// Listen is the HTTP service bind address.
	Listen string `toml:"listen"`

	// FontFile optionally pins font loading to one TTF file instead of
	// system font discovery.
	FontFile string `toml:"font_file"`

	// Style and Format replace the render command's built-in defaults.
	// Explicit flags still win. Empty keeps the built-ins.
	Style  string `toml:"style"`
	Format string `toml:"format"`

	// Output is the default output path for rendered graphics.
	Output string `toml:"output"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and parameterizes the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty uses a gigcard
	// subdirectory of the user cache dir.
	Dir string `toml:"dir"`

	// TTL bounds entry lifetime, e.g. "24h". Empty keeps the backend
	// defaults.
	TTL duration `toml:"ttl"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig parameterizes the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// duration wraps time.Duration for TOML string decoding.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Listen: ":8480",
		Cache: CacheConfig{
			Backend: "file",
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
	}
}

// Load reads path and overlays it onto the defaults. An empty path
// searches the standard locations; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = locate()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	return cfg, nil
}

// CacheDir resolves the file backend directory.
func (c CacheConfig) CacheDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return ".gigcard-cache"
	}
	return filepath.Join(base, "gigcard")
}

// locate searches the working directory, then the user config directory.
func locate() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if base, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(base, "gigcard", FileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
