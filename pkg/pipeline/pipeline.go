// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP API.
//
// A pipeline run takes a validated [graph.Stream], renders every node with a
// fresh [rows.Renderer] and composes the rows into output artifacts. Results
// are cached by stream hash and options, so both entry points behave the same
// and repeated requests are served from the cache.
//
// # Formats
//
//   - text: two lines per node, ready for a terminal
//   - json: the same lines with node ids, for programmatic consumers
//   - dot, svg: a node-link diagram of the stream via Graphviz
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, stream, pipeline.Options{
//	    HFlip:   true,
//	    Formats: []string{pipeline.FormatText},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifacts[pipeline.FormatText])
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitlanes/pkg/cache"
	"github.com/matzehuels/gitlanes/pkg/errors"
	"github.com/matzehuels/gitlanes/pkg/render/rows"
)

// Defaults shared by the CLI, the config file and the API.
const (
	DefaultCharset   = rows.CharsetUnicode
	DefaultColorMode = rows.ColorModeLane
	DefaultFormat    = FormatText
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	HFlip     bool     `json:"hflip,omitempty"`
	VFlip     bool     `json:"vflip,omitempty"`
	Reverse   bool     `json:"reverse,omitempty"` // emit rows bottom-up
	Charset   string   `json:"charset,omitempty"`
	ColorMode string   `json:"color_mode,omitempty"`
	Labels    bool     `json:"labels,omitempty"` // append node labels to transition lines
	Formats   []string `json:"formats,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"` // skip cache reads

	// Runtime options (not serialized)
	Logger   *log.Logger `json:"-"`
	MaxLanes int         `json:"-"` // lane limit; zero means graph.DefaultMaxLanes

	glyphs    rows.GlyphSet
	colorMode rows.ColorMode
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// StreamHash is the content hash of the input stream.
	StreamHash string

	// Lanes is the session's lane count.
	Lanes int

	// Rows holds the rendered rows in traversal order. It is nil when every
	// artifact came from the cache.
	Rows []rows.Row

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the cache served the run.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: text, json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list as given on the command
// line, dropping empty entries.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Charset == "" {
		o.Charset = DefaultCharset
	}
	if o.ColorMode == "" {
		o.ColorMode = DefaultColorMode
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	glyphs, ok := rows.GlyphSetByName(o.Charset)
	if !ok {
		return errors.New(errors.ErrCodeInvalidCharset,
			"invalid charset: %q (must be one of: unicode, ascii)", o.Charset)
	}
	mode, ok := rows.ColorModeByName(o.ColorMode)
	if !ok {
		return errors.New(errors.ErrCodeInvalidColorMode,
			"invalid color mode: %q (must be one of: lane, lineage, none)", o.ColorMode)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	o.glyphs = glyphs
	o.colorMode = mode
	o.validated = true
	return nil
}

// RowOptions returns the renderer options. It must be called after
// [Options.ValidateAndSetDefaults].
func (o *Options) RowOptions() rows.Options {
	return rows.Options{
		Glyphs:      o.glyphs,
		Orientation: rows.Orientation{HFlip: o.HFlip, VFlip: o.VFlip},
		ColorMode:   o.colorMode,
	}
}

// Colored reports whether output carries SGR escapes.
func (o *Options) Colored() bool {
	return o.ColorMode != rows.ColorModeNone
}

// RenderKeyOpts returns cache key options for one artifact format.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Format:    format,
		Charset:   o.Charset,
		ColorMode: o.ColorMode,
		HFlip:     o.HFlip,
		VFlip:     o.VFlip,
		Reverse:   o.Reverse,
		Labels:    o.Labels,
	}
}
