package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flexline/pkg/buildinfo"
	"github.com/matzehuels/flexline/pkg/cache"
	"github.com/matzehuels/flexline/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "flexline"

	// layoutSuffix marks files written by the layout command.
	layoutSuffix = ".layout.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Flexline lays out boxes with flexbox rules",
		Long: `Flexline is a flexbox layout engine. It reads scene documents (a container
and its items, in JSON, TOML or YAML), computes where every item goes and
renders the result as SVG, PNG, PDF, JSON or a Graphviz diagram of the lines.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backend for commands that run the pipeline.
type cacheFlags struct {
	url     string
	noCache bool
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.url, "cache", "", "cache backend: directory, file://, redis:// or mongodb:// URL (default: user cache dir)")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache opens the configured backend. Without one, the file cache in the
// user cache directory is used, or no cache if that directory is unknown.
func newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.url != "" {
		return cache.Open(ctx, f.url)
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// setCLIDefaults applies pipeline defaults so flag help shows them.
func setCLIDefaults(opts *pipeline.Options) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	// formats come from --format; the logger from the CLI
	opts.Formats = nil
	opts.Logger = nil
}

// layoutFlags registers the flags shared by commands that compute layouts.
func layoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Width, "width", "", "width constraint: exact:N, at-most:N, N or unspecified (overrides the scene)")
	cmd.Flags().StringVar(&opts.Height, "height", "", "height constraint: exact:N, at-most:N, N or unspecified (overrides the scene)")
	cmd.Flags().BoolVar(&opts.DisableScripts, "no-scripts", false, "reject items with script content")
	cmd.Flags().DurationVar(&opts.ScriptTimeout, "script-timeout", opts.ScriptTimeout, "time limit for one script measure call")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")
}

// renderFlags registers the flags shared by commands that produce artifacts.
func renderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.View, "view", opts.View, "view: frames (default), tree")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: simple (default), outline")
	cmd.Flags().BoolVar(&opts.LineBounds, "line-bounds", false, "draw the bounds of each line")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "omit item labels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG pixel scale")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include geometry in tree view labels")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if f := pipeline.ParseFormats(s); len(f) > 0 {
		return f
	}
	return []string{pipeline.FormatSVG}
}
