package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/gitlanes/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() should validate: %v", err)
	}
}

func TestRead(t *testing.T) {
	src := `
charset = "ascii"
color = "never"
color_mode = "lineage"
hflip = true
labels = false
max_lanes = 64

[cache]
backend = "redis"
ttl = "1h"
redis_addr = "cache:6379"
redis_db = 2

[server]
addr = ":9090"
`
	cfg, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if cfg.Charset != "ascii" || cfg.Color != ColorNever || cfg.ColorMode != "lineage" {
		t.Errorf("top-level keys not decoded: %+v", cfg)
	}
	if !cfg.HFlip || cfg.VFlip || cfg.Labels {
		t.Errorf("flags = hflip:%v vflip:%v labels:%v", cfg.HFlip, cfg.VFlip, cfg.Labels)
	}
	if cfg.MaxLanes != 64 {
		t.Errorf("max_lanes = %d, want 64", cfg.MaxLanes)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL != time.Hour ||
		cfg.Cache.RedisAddr != "cache:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("server.addr = %q", cfg.Server.Addr)
	}
	// Unset keys keep their defaults.
	if cfg.Server.ShutdownTimeout != Default().Server.ShutdownTimeout {
		t.Errorf("shutdown_timeout = %v, want default", cfg.Server.ShutdownTimeout)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", `colour = "auto"`, "colour"},
		{"unknown table key", "[cache]\nbackend = \"file\"\nsize = 3", "cache.size"},
		{"bad charset", `charset = "braille"`, "charset"},
		{"bad color", `color = "sometimes"`, "color"},
		{"color mode none", `color_mode = "none"`, "color_mode"},
		{"negative max lanes", `max_lanes = -1`, "max_lanes"},
		{"bad backend", "[cache]\nbackend = \"memcached\"", "cache.backend"},
		{"negative ttl", "[cache]\nttl = \"-1h\"", "ttl"},
		{"mongo without uri", "[cache]\nbackend = \"mongo\"", "mongo_uri"},
		{"syntax", `charset = `, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %s, want INVALID_CONFIG", errors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of missing file should not fail: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load of missing file = %+v, want defaults", cfg)
	}

	if _, err := LoadFile(path); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadFile error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("vflip = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.VFlip {
		t.Error("vflip should be set from file")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	want := Default()
	want.Charset = "ascii"
	want.Cache.TTL = 90 * time.Minute

	var buf bytes.Buffer
	if err := Encode(&buf, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read encoded config: %v\n%s", err, buf.String())
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvCacheBackend, BackendRedis)
	t.Setenv(EnvRedisAddr, "redis:6380")
	t.Setenv(EnvRedisPassword, "s3cret")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisAddr != "redis:6380" || cfg.Cache.RedisPassword != "s3cret" {
		t.Errorf("cache = %+v", cfg.Cache)
	}

	t.Setenv(EnvCacheBackend, BackendMongo)
	t.Setenv(EnvMongoURI, "mongodb://db:27017")
	cfg = Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv mongo: %v", err)
	}
	if cfg.Cache.MongoURI != "mongodb://db:27017" || cfg.Cache.MongoDatabase != "gitlanes" {
		t.Errorf("mongo cache = %+v", cfg.Cache)
	}

	t.Setenv(EnvCacheBackend, "bogus")
	cfg = Default()
	if err := cfg.ApplyEnv(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bogus backend error = %v", err)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	if p, _ := Path(); p != filepath.Join("/xdg/config", "gitlanes", "config.toml") {
		t.Errorf("Path() = %q", p)
	}
	if d, _ := CacheDir(); d != filepath.Join("/xdg/cache", "gitlanes") {
		t.Errorf("CacheDir() = %q", d)
	}
}
