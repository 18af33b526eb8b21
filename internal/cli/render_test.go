package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gitlanes/pkg/config"
	"github.com/matzehuels/gitlanes/pkg/errors"
	"github.com/matzehuels/gitlanes/pkg/pipeline"
	"github.com/matzehuels/gitlanes/pkg/render/rows"
)

const mergeJSON = `{"nodes": [
	{"id": 1, "column": 0, "parents": [2, 3], "label": "merge"},
	{"id": 2, "column": 0, "parents": [4]},
	{"id": 3, "column": 1, "parents": [4], "label": "feature"},
	{"id": 4, "column": 0, "label": "root"}
]}`

const (
	mergeText        = "•  \n│  \n✕  \n│  \n├─•\n│ │\n•─╯\n   \n"
	mergeTextFlipped = "  •\n  │\n  ✕\n  │\n•─┤\n│ │\n╰─•\n   \n"
)

// isolate points config and cache lookups at fresh temp directories and
// clears the GITLANES_* overrides.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, key := range []string{config.EnvCacheBackend, config.EnvRedisAddr, config.EnvRedisPassword, config.EnvMongoURI} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// runCLI executes the root command with args and returns stdout and the
// status output.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var out, status bytes.Buffer
	restore := setStatusOut(&status)
	defer restore()

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), status.String(), err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderStdin(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, mergeJSON, "render", "--labels=false")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != mergeText {
		t.Errorf("render output = %q, want %q", out, mergeText)
	}
}

func TestRenderLabels(t *testing.T) {
	isolate(t)
	input := writeInput(t, "history.json", mergeJSON)

	out, _, err := runCLI(t, "", "render", input)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"•   merge\n", "├─• feature\n", "•─╯ root\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderColorAlways(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, mergeJSON, "render", "--color", "always")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "\x1b[31m") || !strings.Contains(out, rows.Reset.SGR()) {
		t.Errorf("expected SGR sequences in %q", out)
	}
}

func TestRenderConfigFile(t *testing.T) {
	isolate(t)
	cfgPath := writeInput(t, "config.toml", "hflip = true\nlabels = false\n")

	out, _, err := runCLI(t, mergeJSON, "--config", cfgPath, "render")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != mergeTextFlipped {
		t.Errorf("render output = %q, want %q", out, mergeTextFlipped)
	}

	// Flags win over the file.
	out, _, err = runCLI(t, mergeJSON, "--config", cfgPath, "render", "--hflip=false")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != mergeText {
		t.Errorf("render output = %q, want %q", out, mergeText)
	}
}

func TestRenderMaxLanes(t *testing.T) {
	isolate(t)
	cfgPath := writeInput(t, "config.toml", "max_lanes = 1\n")

	_, _, err := runCLI(t, mergeJSON, "--config", cfgPath, "render")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestRenderMultipleFormats(t *testing.T) {
	isolate(t)
	input := writeInput(t, "history.json", mergeJSON)
	base := filepath.Join(t.TempDir(), "out", "history")

	_, status, err := runCLI(t, "", "render", input, "-f", "text,json,dot", "-o", base)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(status, iconFresh) {
		t.Errorf("first render should be fresh: %q", status)
	}

	for _, ext := range []string{"txt", "json", "dot"} {
		if _, err := os.Stat(base + "." + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}

	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	var doc pipeline.JSONOutput
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode json output: %v", err)
	}
	if doc.Lanes != 2 || len(doc.Rows) != 4 {
		t.Errorf("json output = %+v", doc)
	}

	_, status, err = runCLI(t, "", "render", input, "-f", "text,json,dot", "-o", base)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(status, iconCached) {
		t.Errorf("second render should be cached: %q", status)
	}
}

func TestRenderNoCache(t *testing.T) {
	isolate(t)
	input := writeInput(t, "history.json", mergeJSON)

	for i := 0; i < 2; i++ {
		_, status, err := runCLI(t, "", "render", input, "-f", "json", "--no-cache")
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if strings.Contains(status, iconCached) {
			t.Errorf("run %d: --no-cache served from cache", i)
		}
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(input), "history.lanes.json")); err != nil {
		t.Errorf("derived output path not written: %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  errors.Code
	}{
		{"bad format", mergeJSON, []string{"render", "-f", "png"}, errors.ErrCodeInvalidFormat},
		{"bad color policy", mergeJSON, []string{"render", "--color", "sometimes"}, errors.ErrCodeInvalidInput},
		{"bad color mode", mergeJSON, []string{"render", "--color", "always", "--color-mode", "rainbow"}, errors.ErrCodeInvalidColorMode},
		{"bad column", `{"lanes": 1, "nodes": [{"id": 1, "column": 4}]}`, []string{"render"}, errors.ErrCodeInvalidColumn},
		{"malformed json", `{"nodes": [`, []string{"render"}, errors.ErrCodeInvalidInput},
		{"missing file", "", []string{"render", "does-not-exist.json"}, errors.ErrCodeFileNotFound},
		{"traversal output", mergeJSON, []string{"render", "-f", "json", "-o", "../escape.json"}, errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, _, err := runCLI(t, tt.stdin, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		policy string
		w      io.Writer
		want   bool
	}{
		{config.ColorAlways, nil, true},
		{config.ColorNever, &buf, false},
		{config.ColorAuto, nil, false},
		{config.ColorAuto, &buf, false}, // not a terminal
		{"", nil, false},
	}

	for _, tt := range tests {
		got, err := useColor(tt.policy, tt.w)
		if err != nil {
			t.Errorf("useColor(%q) error: %v", tt.policy, err)
		}
		if got != tt.want {
			t.Errorf("useColor(%q, %T) = %v, want %v", tt.policy, tt.w, got, tt.want)
		}
	}

	if _, err := useColor("sometimes", nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("useColor(sometimes) error = %v", err)
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := config.Default()
	cfg.HFlip = true
	cfg.ColorMode = rows.ColorModeLineage
	cfg.Color = config.ColorAlways

	set := map[string]bool{"vflip": true, "ascii": true}
	d := displayOpts{vflip: true, ascii: true, hflip: false, reverse: true}

	opts, err := d.pipelineOptions(cfg, func(name string) bool { return set[name] }, nil)
	if err != nil {
		t.Fatalf("pipelineOptions: %v", err)
	}
	if !opts.HFlip {
		t.Error("unset --hflip should keep the config value")
	}
	if !opts.VFlip || !opts.Reverse {
		t.Errorf("flags not applied: %+v", opts)
	}
	if opts.Charset != rows.CharsetASCII {
		t.Errorf("Charset = %q, want ascii", opts.Charset)
	}
	if opts.ColorMode != rows.ColorModeLineage {
		t.Errorf("ColorMode = %q, want lineage", opts.ColorMode)
	}

	cfg.Color = config.ColorNever
	opts, err = d.pipelineOptions(cfg, func(string) bool { return false }, nil)
	if err != nil {
		t.Fatalf("pipelineOptions: %v", err)
	}
	if opts.ColorMode != rows.ColorModeNone {
		t.Errorf("color=never should disable colors, got %q", opts.ColorMode)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "history.json", "history.lanes"},
		{"", "dir/history.toml", "dir/history.lanes"},
		{"", "-", "gitlanes"},
		{"out/graph.svg", "history.json", "out/graph"},
		{"out/graph.txt", "history.json", "out/graph"},
		{"out/graph", "history.json", "out/graph"},
		{"out/graph.v2", "history.json", "out/graph.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, input, format string
		multiple              bool
		want                  string
	}{
		{"", "history.json", "json", false, "history.lanes.json"},
		{"", "history.json", "text", true, "history.lanes.txt"},
		{"graph.svg", "history.json", "svg", false, "graph.svg"},
		{"graph", "history.json", "svg", true, "graph.svg"},
		{"graph.svg", "history.json", "dot", true, "graph.dot"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.output, tt.input, tt.format, tt.multiple); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q, %v) = %q, want %q",
				tt.output, tt.input, tt.format, tt.multiple, got, tt.want)
		}
	}
}
