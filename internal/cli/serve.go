package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flexline/internal/api"
	"github.com/matzehuels/flexline/pkg/scene"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		cf   cacheFlags
		cfg  api.Config
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Serve the layout pipeline over HTTP.

Routes:

  GET  /healthz
  POST /v1/layout            scene document → layout JSON
  POST /v1/render?format=F   scene document → svg, png, pdf, json or dot

Script content is rejected unless --allow-scripts is set. Use --cache with
a redis:// or mongodb:// URL to share the cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cf)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printKeyValue("Address", addr)
			printKeyValue("Scripts", fmt.Sprintf("%t", cfg.AllowScripts))
			return api.New(runner, c.Logger, cfg).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&cfg.AllowScripts, "allow-scripts", false, "accept items with script content")
	cmd.Flags().DurationVar(&cfg.ScriptTimeout, "script-timeout", scene.DefaultScriptTimeout, "time limit for one script measure call")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", api.DefaultMaxBodyBytes, "maximum request body size in bytes")
	cf.register(cmd)

	return cmd
}
