package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlanes/pkg/config"
	"github.com/matzehuels/gitlanes/pkg/errors"
	"github.com/matzehuels/gitlanes/pkg/graph"
	gio "github.com/matzehuels/gitlanes/pkg/io"
	"github.com/matzehuels/gitlanes/pkg/pipeline"
	"github.com/matzehuels/gitlanes/pkg/render/rows"
)

// displayOpts holds the flags shared by render and view. Flags left unset
// on the command line fall back to the config file.
type displayOpts struct {
	hflip     bool
	vflip     bool
	reverse   bool
	ascii     bool
	labels    bool
	color     string // auto, always, never
	colorMode string // lane, lineage, none
}

// renderOpts holds command-line flags for the render command.
type renderOpts struct {
	display displayOpts
	output  string // output file (single format) or base path (multiple)
	formats string
	noCache bool
	refresh bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a node stream as lane rows",
		Long: `Render a node stream as lane rows.

The input is a JSON or TOML stream file, or JSON on stdin when the file is
omitted or "-". Text output goes to stdout unless -o is given; other formats
are written next to the input as <name>.lanes.<ext>.`,
		Example: `  gitlanes render history.json
  gitlanes render history.toml --hflip --color-mode lineage
  git-export | gitlanes render --ascii --color never
  gitlanes render history.json -f text,json,svg -o out/history`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := gio.Stdin
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd, input, &opts)
		},
	}

	addDisplayFlags(cmd, &opts.display)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.DefaultFormat, "output format(s): text, json, dot, svg (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render and overwrite cached output")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{pipeline.FormatText, pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatSVG},
		cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// addDisplayFlags registers the orientation, charset and color flags.
func addDisplayFlags(cmd *cobra.Command, d *displayOpts) {
	f := cmd.Flags()
	f.BoolVar(&d.hflip, "hflip", false, "mirror lanes horizontally")
	f.BoolVar(&d.vflip, "vflip", false, "draw connectors for bottom-up output")
	f.BoolVar(&d.reverse, "reverse", false, "emit rows bottom-up")
	f.BoolVar(&d.ascii, "ascii", false, "use plain ASCII glyphs")
	f.BoolVar(&d.labels, "labels", true, "append node labels to transition lines")
	f.StringVar(&d.color, "color", config.ColorAuto, "color output: auto, always, never")
	f.StringVar(&d.colorMode, "color-mode", rows.ColorModeLane, "color assignment: lane, lineage, none")

	_ = cmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{config.ColorAuto, config.ColorAlways, config.ColorNever}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("color-mode", cobra.FixedCompletions(
		[]string{rows.ColorModeLane, rows.ColorModeLineage, rows.ColorModeNone}, cobra.ShellCompDirectiveNoFileComp))
}

// pipelineOptions merges config values with the flags that were set and
// resolves the color policy against target. A nil target means the output
// goes to a file, where "auto" disables color.
func (d displayOpts) pipelineOptions(cfg config.Config, changed func(string) bool, target io.Writer) (pipeline.Options, error) {
	opts := pipeline.Options{
		HFlip:     cfg.HFlip,
		VFlip:     cfg.VFlip,
		Reverse:   d.reverse,
		Charset:   cfg.Charset,
		ColorMode: cfg.ColorMode,
		Labels:    cfg.Labels,
		MaxLanes:  cfg.MaxLanes,
	}
	if changed("hflip") {
		opts.HFlip = d.hflip
	}
	if changed("vflip") {
		opts.VFlip = d.vflip
	}
	if changed("labels") {
		opts.Labels = d.labels
	}
	if changed("ascii") {
		opts.Charset = rows.CharsetUnicode
		if d.ascii {
			opts.Charset = rows.CharsetASCII
		}
	}
	if changed("color-mode") {
		opts.ColorMode = d.colorMode
	}

	policy := cfg.Color
	if changed("color") {
		policy = d.color
	}
	colored, err := useColor(policy, target)
	if err != nil {
		return pipeline.Options{}, err
	}
	if !colored {
		opts.ColorMode = rows.ColorModeNone
	}
	return opts, nil
}

// useColor reports whether escape sequences should be written to w under
// the given policy.
func useColor(policy string, w io.Writer) (bool, error) {
	switch policy {
	case config.ColorAlways:
		return true, nil
	case config.ColorNever:
		return false, nil
	case config.ColorAuto, "":
		return w != nil && colorCapable(w), nil
	}
	return false, errors.New(errors.ErrCodeInvalidInput,
		"invalid color policy %q (want auto, always or never)", policy)
}

// colorCapable reports whether w is a terminal that accepts ANSI colors,
// honoring NO_COLOR and CLICOLOR_FORCE.
func colorCapable(w io.Writer) bool {
	return termenv.NewOutput(w).EnvColorProfile() != termenv.Ascii
}

// runRender loads the stream, runs the pipeline and writes every artifact.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	formats := pipeline.ParseFormats(opts.formats)
	if len(formats) == 0 {
		formats = []string{pipeline.DefaultFormat}
	}
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	toStdout := len(formats) == 1 && formats[0] == pipeline.FormatText && (opts.output == "" || opts.output == gio.Stdin)
	var target io.Writer
	if toStdout {
		target = cmd.OutOrStdout()
	}
	popts, err := opts.display.pipelineOptions(c.cfg, cmd.Flags().Changed, target)
	if err != nil {
		return err
	}
	popts.Formats = formats
	popts.Refresh = opts.refresh
	popts.Logger = logger

	s, err := readStream(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}
	logger.Debug("loaded stream", "input", input, "nodes", len(s.Nodes), "lanes", s.LaneCount())

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := executeWithSpinner(ctx, runner, s, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d rows", len(s.Nodes)))

	if toStdout {
		_, err := cmd.OutOrStdout().Write(result.Artifacts[pipeline.FormatText])
		return err
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := outputPath(opts.output, input, format, len(formats) > 1)
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %s", displayName(input))
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Lanes, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// executeWithSpinner runs the pipeline, showing a spinner on an interactive
// stderr when graphviz layout is involved.
func executeWithSpinner(ctx context.Context, runner *pipeline.Runner, s graph.Stream, opts pipeline.Options) (*pipeline.Result, error) {
	needsLayout := false
	for _, f := range opts.Formats {
		if f == pipeline.FormatSVG {
			needsLayout = true
		}
	}
	if !needsLayout || !colorCapable(statusOut) {
		return runner.Execute(ctx, s, opts)
	}

	spinner := newSpinnerWithContext(ctx, "Laying out graph...")
	spinner.Start()
	result, err := runner.Execute(ctx, s, opts)
	spinner.Stop()
	return result, err
}

// readStream decodes the stream from stdin when input is "-" and from the
// named file otherwise, then checks node labels.
func readStream(stdin io.Reader, input string) (graph.Stream, error) {
	var (
		s   graph.Stream
		err error
	)
	if input == gio.Stdin {
		s, err = gio.ReadJSON(stdin)
	} else {
		s, err = gio.Import(input)
	}
	if err != nil {
		return graph.Stream{}, err
	}
	return s, gio.Validate(s)
}

// formatExt maps an output format to its file extension.
func formatExt(format string) string {
	if format == pipeline.FormatText {
		return "txt"
	}
	return format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, the input's extension is replaced by ".lanes", or
// "gitlanes" is used for stdin. A format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == gio.Stdin || input == "" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input)) + ".lanes"
	}
	ext := filepath.Ext(output)
	if ext == ".txt" || pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file for one format. A single format written with
// -o goes exactly where asked; otherwise the format's extension is appended
// to the base path.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output, input) + "." + formatExt(format)
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// displayName names the input in status lines.
func displayName(input string) string {
	if input == gio.Stdin {
		return "stdin"
	}
	return filepath.Base(input)
}
