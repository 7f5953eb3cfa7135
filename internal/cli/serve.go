package cli

import (
	"github.com/spf13/cobra"

	"github.com/B3RT1337/lookup-bot/internal/metrics"
	"github.com/B3RT1337/lookup-bot/internal/server"
)

func newServeCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve bot commands on POST /execute-command",
		Long: `Start the HTTP endpoint. Each request body {"command": "..."} is answered
with {"success": bool, "message": "..."}. GET /health and GET /metrics are
served alongside. SIGINT or SIGTERM stops accepting connections and drains
in-flight requests for up to 10 seconds.`,
		Example: `  lookupbot serve --port 3000
  PORT=8080 lookupbot serve --log-format json`,
		Args:    cobra.NoArgs,
		GroupID: "bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := metrics.New()
			disp, closeFn, err := d.newDispatcher(m)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeFn(); err != nil {
					d.logger.Warn("closing GeoIP database", "error", err)
				}
			}()

			srv := server.New(disp, m, d.logger)
			return srv.Start(cmd.Context(), d.cfg.Addr())
		},
	}
}
