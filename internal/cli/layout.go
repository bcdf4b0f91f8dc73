package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flexline/pkg/pipeline"
	"github.com/matzehuels/flexline/pkg/scene"
)

// layoutCommand creates the layout command for computing scene layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		cf     cacheFlags
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [scene]",
		Short: "Compute the layout of a scene document",
		Long: `Compute the layout of a scene document.

The layout command reads a scene (.json, .toml, .yaml or .yml), runs the
flexbox engine and writes the placed geometry to a layout.json file (same
format as 'render -f json'). The layout can then be rendered with
'visualize' or browsed with 'inspect'.

--width and --height override the scene's own container constraints.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>"+layoutSuffix+")")
	cf.register(cmd)
	layoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the scene, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, cf cacheFlags) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

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

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + layoutSuffix
	}
	if err := scene.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	prog.done("Computed layout")

	printSuccess("Layout complete (%dx%d)", l.Width, l.Height)
	printFile(outputPath)
	printStats(len(l.Visible()), len(l.ContentLines()), cacheHit)
	warnState(l)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// warnState reports constraint violations recorded in the layout.
func warnState(l scene.Layout) {
	for _, s := range l.State {
		printWarning("Content does not fit: %s", s)
	}
}
