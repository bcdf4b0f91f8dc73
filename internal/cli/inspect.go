package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flexline/pkg/pipeline"
	"github.com/matzehuels/flexline/pkg/scene"
)

// inspectCommand creates the inspect command for browsing a layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		cf    cacheFlags
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "inspect [scene|layout.json]",
		Short: "Browse the lines and items of a layout",
		Long: `Browse the lines and items of a layout.

The input is either a layout file written by 'layout' (*` + layoutSuffix + `) or
a scene document, which is laid out first. On a terminal an interactive
browser opens; otherwise (or with --plain) the line table is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l, err := c.loadLayout(ctx, args[0], opts, cf)
			if err != nil {
				return err
			}
			if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
				printLayout(l)
				return nil
			}
			_, err = tea.NewProgram(NewInspectModel(l), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print tables instead of opening the browser")
	cf.register(cmd)
	layoutFlags(cmd, &opts)

	return cmd
}

// loadLayout reads a layout file, or lays out a scene document.
func (c *CLI) loadLayout(ctx context.Context, input string, opts pipeline.Options, cf cacheFlags) (scene.Layout, error) {
	if strings.HasSuffix(input, layoutSuffix) {
		l, err := scene.ReadLayoutFile(input)
		if err != nil {
			return scene.Layout{}, fmt.Errorf("load layout %s: %w", input, err)
		}
		return l, nil
	}

	doc, err := pipeline.LoadScene(ctx, input)
	if err != nil {
		return scene.Layout{}, fmt.Errorf("load scene %s: %w", input, err)
	}
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return scene.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	l, err := runner.ComputeLayout(ctx, doc, opts)
	if err != nil {
		return scene.Layout{}, fmt.Errorf("compute layout: %w", err)
	}
	return l, nil
}

// printLayout writes the line table and each line's items to stdout.
func printLayout(l scene.Layout) {
	fmt.Println(StyleTitle.Render(layoutTitle(l)))
	warnState(l)
	lines := l.ContentLines()
	if len(lines) == 0 {
		printInfo("No lines")
		return
	}
	fmt.Println(lineTable(lines, -1, 0, len(lines)).Render())
	for _, ln := range lines {
		items := lineFrames(l, ln.Index)
		fmt.Println()
		fmt.Println(StyleHighlight.Render(fmt.Sprintf("Line %d", ln.Index)))
		fmt.Println(itemTable(items, -1, 0, len(items)).Render())
	}
}
