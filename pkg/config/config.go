// Package config loads the demise TOML configuration.
//
// A configuration file is optional. Lookup order is an explicit path
// (the --config flag), then ./demise.toml, then
// $XDG_CONFIG_HOME/demise/config.toml (~/.config/demise/config.toml when
// XDG_CONFIG_HOME is unset). Values missing from the file keep their
// defaults, and command-line flags override both.
//
// Example file:
//
//	catalogue  = "catalogue_MOD.ttl"
//	output_dir = "images"
//	root       = "modeOfDemise"
//	categories = ["naturalSupernaturalCauses", "physicalViolence"]
//
//	[render]
//	format  = "svg"
//	rankdir = "TB"
//
//	[cache]
//	backend   = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl       = "12h"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	demerr "github.com/FPannach/Fanfiction-Annotation-Project/pkg/errors"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/render/nodelink"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

const (
	// AppName names the config and cache directories.
	AppName = "demise"

	// LocalFile is looked up in the working directory.
	LocalFile = "demise.toml"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full configuration.
type Config struct {
	Catalogue  string   `toml:"catalogue"`
	OutputDir  string   `toml:"output_dir"`
	Root       string   `toml:"root"`
	Strict     bool     `toml:"strict"`
	Categories []string `toml:"categories"`

	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`

	// Path is the file the configuration was read from; empty for defaults.
	Path string `toml:"-"`
}

// RenderConfig holds node-link diagram settings.
type RenderConfig struct {
	Format  string `toml:"format"`
	RankDir string `toml:"rankdir"`
	Shape   string `toml:"shape"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Catalogue:  "catalogue_MOD.ttl",
		OutputDir:  "images",
		Root:       taxonomy.WellKnownRoot,
		Categories: slices.Clone(taxonomy.DefaultCategories),
		Render: RenderConfig{
			Format:  nodelink.FormatPNG,
			RankDir: "LR",
			Shape:   "plaintext",
		},
		Cache: CacheConfig{
			Backend:  CacheFile,
			RedisURL: "redis://localhost:6379/0",
			TTL:      24 * time.Hour,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads the configuration at path on top of [Default]. Unknown keys
// are rejected so that typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, demerr.Wrap(demerr.ErrCodeInputNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return cfg, demerr.Wrap(demerr.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, demerr.New(demerr.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Find returns the configuration file to use, or "" when none exists.
// An explicit path is returned as is, even if it does not exist, so that
// [Load] can report it.
func Find(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidates := []string{LocalFile}
	if dir, err := Dir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// Resolve finds and loads the configuration. With no file anywhere it
// returns [Default].
func Resolve(explicit string) (Config, error) {
	path := Find(explicit)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Dir returns the configuration directory ($XDG_CONFIG_HOME/demise).
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// CacheDir returns the directory for the file cache: Cache.Dir when set,
// otherwise $XDG_CACHE_HOME/demise (~/.cache/demise).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Validate checks every field that has a closed set of values.
func (c Config) Validate() error {
	if c.Catalogue == "" {
		return demerr.New(demerr.ErrCodeInvalidConfig, "catalogue path cannot be empty")
	}
	if err := demerr.ValidateConceptID(c.Root); err != nil {
		return demerr.Wrap(demerr.ErrCodeInvalidConfig, err, "root: %s", demerr.UserMessage(err))
	}
	for _, id := range c.Categories {
		if err := demerr.ValidateConceptID(id); err != nil {
			return demerr.Wrap(demerr.ErrCodeInvalidConfig, err, "categories: %s", demerr.UserMessage(err))
		}
	}
	if err := demerr.ValidateFormat(c.Render.Format, nodelink.Formats...); err != nil {
		return demerr.Wrap(demerr.ErrCodeInvalidConfig, err, "render.format: %s", demerr.UserMessage(err))
	}
	if !slices.Contains(nodelink.RankDirs, c.Render.RankDir) {
		return demerr.New(demerr.ErrCodeInvalidConfig, "render.rankdir: %q is not one of %s", c.Render.RankDir, strings.Join(nodelink.RankDirs, ", "))
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return demerr.New(demerr.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return demerr.New(demerr.ErrCodeInvalidConfig, "cache.backend: %q is not one of file, redis, none", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return demerr.New(demerr.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	return nil
}

// String renders the configuration as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
