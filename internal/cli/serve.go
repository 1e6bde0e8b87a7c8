package cli

import (
	"github.com/spf13/cobra"

	"github.com/soundpress/gigcard/internal/server"
)

// serveCommand creates the "serve" command running the HTTP export service.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP export service",
		Long: `Serve exposes the export pipeline over HTTP. POST a render request to
/v1/render and receive the finished PNG; GET /v1/styles and /v1/formats
list the registries. Renders are cached by request hash.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.Config()
			if err != nil {
				return err
			}
			if listen == "" {
				listen = cfg.Listen
			}

			runner, err := c.newRunner(false)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			return server.New(runner, c.Logger, listen).Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "bind address (default from config, then :8480)")
	return cmd
}
