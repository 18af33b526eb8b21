// Package cache stores rendered artifacts keyed by stream content and
// render options.
//
// Rendering is cheap per row but large histories produce megabytes of
// escape-laden text; the CLI pager and the HTTP API both re-render the same
// streams often. A [Cache] short-circuits that work.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for multi-instance API deployments
//   - [MongoCache]: shared cache backed by a MongoDB collection with a TTL index
//
// # Keys
//
// A [Keyer] derives keys from the stream hash ([Hash] of the canonical JSON
// encoding) and the options that affect output. [ScopedKeyer] adds a prefix
// for per-tenant isolation.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored data and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLRender is how long rendered artifacts stay cached. Output depends only on
// the stream and the options, so entries never go stale.
const TTLRender = 7 * 24 * time.Hour

// RenderKeyOpts lists every option that changes rendered output.
type RenderKeyOpts struct {
	Format    string `json:"format"`
	Charset   string `json:"charset"`
	ColorMode string `json:"color_mode"`
	HFlip     bool   `json:"hflip"`
	VFlip     bool   `json:"vflip"`
	Reverse   bool   `json:"reverse"`
	Labels    bool   `json:"labels"`
}

// Keyer derives cache keys.
type Keyer interface {
	// RenderKey returns the key for one rendered artifact of a stream.
	RenderKey(streamHash string, opts RenderKeyOpts) string
}

// DefaultKeyer derives "render:<format>:<digest>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) RenderKey(streamHash string, opts RenderKeyOpts) string {
	return renderKey(streamHash, opts)
}
