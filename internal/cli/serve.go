package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shodgson/mdlist/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP render API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if a.cfg.Server.Token == "" {
				a.log.Warn("server.token is empty; /api routes are unauthenticated")
			}
			return server.NewServer(a.cfg, a.log).ListenAndServe(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	cmd.Flags().Int("indent-unit", 0, "left padding in pixels per list level (overrides render.indent_unit)")
	return cmd
}
