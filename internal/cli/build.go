package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	gp "github.com/VantageDataChat/GoDeck"
	"github.com/VantageDataChat/GoDeck/internal/deck"
	"github.com/spf13/cobra"
)

type buildOpts struct {
	output      string
	format      string
	concurrency int
}

func newBuildCmd() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <deck>",
		Short: "Write a presentation from a deck file",
		Long: `Build reads a deck file (.toml, .yaml or .yml) and writes a presentation.

The output format follows --format, or the extension of --output when no format
is given. Without --output the presentation is written next to the deck.`,
		Example: `  godeck build talk.toml
  godeck build talk.yaml -o out/talk.odp
  godeck build talk.toml --format odp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: pptx or odp")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "parts rendered at once (0 = one per CPU)")

	return cmd
}

func runBuild(cmd *cobra.Command, input string, opts buildOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	format, output, err := resolveOutput(input, opts.output, opts.format)
	if err != nil {
		return err
	}

	d, err := deck.Load(input)
	if err != nil {
		return err
	}
	p, err := d.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	logger.Debug("deck loaded", "path", input, "slides", p.GetSlideCount())

	options := []gp.Option{gp.WithLogger(logger)}
	if opts.concurrency > 0 {
		options = append(options, gp.WithConcurrency(opts.concurrency))
	}
	if err := p.SaveAs(output, format, options...); err != nil {
		return err
	}
	prog.done("wrote presentation", "path", output, "slides", p.GetSlideCount())
	return nil
}

// resolveOutput picks the writer format and output path from the flags.
func resolveOutput(input, output, format string) (gp.WriterType, string, error) {
	if format == "" && output != "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	var wt gp.WriterType
	switch format {
	case "", "pptx":
		wt = gp.WriterPowerPoint2007
	case "odp":
		wt = gp.WriterODPresentation
	default:
		return "", "", fmt.Errorf("%w: %q", gp.ErrUnsupportedFormat, format)
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + wt.Extension()
	}
	return wt, output, nil
}
