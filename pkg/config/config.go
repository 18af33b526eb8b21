// Package config loads user preferences for gitlanes from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/gitlanes/config.toml (falling back to
// ~/.config/gitlanes/config.toml) and every key is optional:
//
//	charset    = "unicode"   # unicode | ascii
//	color      = "auto"      # auto | always | never
//	color_mode = "lane"      # lane | lineage
//	hflip      = false
//	vflip      = false
//	labels     = true
//	max_lanes  = 1024        # wider streams are rejected
//
//	[cache]
//	backend        = "file"      # file | redis | mongo | none
//	ttl            = "168h"
//	dir            = "/tmp/gitlanes"
//	redis_addr     = "localhost:6379"
//	redis_db       = 0
//	mongo_uri      = "mongodb://localhost:27017"
//	mongo_database = "gitlanes"
//
//	[server]
//	addr             = ":8080"
//	shutdown_timeout = "10s"
//
// A few settings can be overridden from the environment, which is the only
// place the Redis password is read from: GITLANES_CACHE_BACKEND,
// GITLANES_REDIS_ADDR, GITLANES_REDIS_PASSWORD and GITLANES_MONGO_URI.
//
// Command-line flags take precedence over both.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gitlanes/pkg/errors"
	"github.com/matzehuels/gitlanes/pkg/graph"
	"github.com/matzehuels/gitlanes/pkg/render/rows"
)

// appName is used for the config and cache directories.
const appName = "gitlanes"

// Color output policies.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Environment variables read by [Config.ApplyEnv].
const (
	EnvCacheBackend  = "GITLANES_CACHE_BACKEND"
	EnvRedisAddr     = "GITLANES_REDIS_ADDR"
	EnvRedisPassword = "GITLANES_REDIS_PASSWORD"
	EnvMongoURI      = "GITLANES_MONGO_URI"
)

// Config is the decoded configuration file.
type Config struct {
	Charset   string `toml:"charset"`
	Color     string `toml:"color"`
	ColorMode string `toml:"color_mode"`
	HFlip     bool   `toml:"hflip"`
	VFlip     bool   `toml:"vflip"`
	Labels    bool   `toml:"labels"`
	MaxLanes  int    `toml:"max_lanes"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the render cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	TTL           time.Duration `toml:"ttl"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisDB       int           `toml:"redis_db"`
	RedisPassword string        `toml:"-"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
}

// ServerConfig configures `gitlanes serve`.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Charset:   rows.CharsetUnicode,
		Color:     ColorAuto,
		ColorMode: rows.ColorModeLane,
		Labels:    true,
		MaxLanes:  graph.DefaultMaxLanes,
		Cache: CacheConfig{
			Backend:       BackendFile,
			TTL:           7 * 24 * time.Hour,
			RedisAddr:     "localhost:6379",
			MongoDatabase: "gitlanes",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Dir returns the configuration directory using XDG standard (~/.config/gitlanes/).
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/gitlanes/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the file at path on top of [Default]. A missing file is not an
// error; use [LoadFile] when the file must exist.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads the file at path on top of [Default] and validates it.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config")
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Read decodes TOML from r on top of [Default] and validates the result.
// Keys that do not map to a setting are rejected.
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if _, ok := rows.GlyphSetByName(c.Charset); !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "charset: %q (must be one of: unicode, ascii)", c.Charset)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "color: %q (must be one of: auto, always, never)", c.Color)
	}
	if c.ColorMode != rows.ColorModeLane && c.ColorMode != rows.ColorModeLineage {
		return errors.New(errors.ErrCodeInvalidConfig, "color_mode: %q (must be one of: lane, lineage)", c.ColorMode)
	}
	if c.MaxLanes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_lanes must not be negative")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend: %q (must be one of: file, redis, mongo, none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.Backend == BackendMongo && c.Cache.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.mongo_uri is required for the mongo backend")
	}
	return nil
}

// ApplyEnv overrides settings from the GITLANES_* environment variables.
// The result is validated again.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvCacheBackend); ok {
		c.Cache.Backend = v
	}
	if v, ok := os.LookupEnv(EnvRedisAddr); ok {
		c.Cache.RedisAddr = v
	}
	if v, ok := os.LookupEnv(EnvRedisPassword); ok {
		c.Cache.RedisPassword = v
	}
	if v, ok := os.LookupEnv(EnvMongoURI); ok {
		c.Cache.MongoURI = v
	}
	return c.Validate()
}

// Encode writes c as TOML, for `gitlanes config init`.
func Encode(w io.Writer, c Config) error {
	return toml.NewEncoder(w).Encode(c)
}
