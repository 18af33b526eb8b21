package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlanes/pkg/buildinfo"
	gio "github.com/matzehuels/gitlanes/pkg/io"
	"github.com/matzehuels/gitlanes/pkg/pipeline"
)

// viewCommand creates the interactive pager command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		display displayOpts
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Page through rendered rows interactively",
		Long: `Render a node stream and open the rows in a full-screen pager.

Takes the same display flags as render. When the stream is read from stdin,
keys are read from the terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := gio.Stdin
			if len(args) == 1 {
				input = args[0]
			}
			return c.runView(cmd, input, display, noCache)
		},
	}

	addDisplayFlags(cmd, &display)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// runView renders the stream as text and hands the lines to the pager.
func (c *CLI) runView(cmd *cobra.Command, input string, display displayOpts, noCache bool) error {
	ctx := cmd.Context()

	opts, err := display.pipelineOptions(c.cfg, cmd.Flags().Changed, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	opts.Formats = []string{pipeline.FormatText}
	opts.Logger = loggerFromContext(ctx)

	s, err := readStream(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, s, opts)
	if err != nil {
		return err
	}

	title := buildinfo.Short() + " · " + displayName(input)
	status := statsLine(result.Stats.NodeCount, result.Stats.EdgeCount, result.Lanes, result.CacheInfo.RenderHit)
	model := NewPagerModel(title, status, textLines(result.Artifacts[pipeline.FormatText]))

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if input == gio.Stdin {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	_, err = tea.NewProgram(model, progOpts...).Run()
	return err
}

// textLines splits a text artifact into its lines.
func textLines(text []byte) []string {
	s := strings.TrimSuffix(string(text), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
