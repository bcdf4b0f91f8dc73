package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flexline/pkg/pipeline"
)

// renderCommand creates the render command, which runs layout and rendering
// in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		cf         cacheFlags
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Lay out a scene and render it",
		Long: `Lay out a scene and render it.

The render command is a shortcut for 'layout' followed by 'visualize'. It
reads a scene document and writes one file per requested format:

  svg   frames drawn in the chosen style
  png   the same drawing rasterised
  pdf   the SVG converted with rsvg-convert
  json  the layout, annotated with the style
  dot   the container → line → item structure as Graphviz source

With --view tree, svg, png and pdf show the line structure rendered by
Graphviz instead of the frames.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cf.register(cmd)
	layoutFlags(cmd, &opts)
	renderFlags(cmd, &opts, &formatsStr)

	return cmd
}

// runRender loads the scene and executes the full pipeline.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, cf cacheFlags) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	doc, err := pipeline.LoadScene(ctx, input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
		itemCount: result.Stats.ItemCount,
		lineCount: result.Stats.LineCount,
	}); err != nil {
		return err
	}
	warnState(result.Layout)
	return nil
}
