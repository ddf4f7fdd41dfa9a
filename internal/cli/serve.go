package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/newsroom/internal/api"
	"github.com/example/newsroom/internal/config"
	"github.com/example/newsroom/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rundown API over HTTP",
		Long: `Serve the rundown API over HTTP until interrupted.

Clients sign in with POST /api/v1/auth/login and send the returned token
as "Authorization: Bearer <token>". Prometheus metrics are on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			if cfg.JWTSecret == config.DevSecret {
				fmt.Fprintln(cmd.ErrOrStderr(), "⚠ Using the development token secret; set NEWSROOM_JWT_SECRET before exposing the API")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			router := api.NewRouter(wire.APIServices(), api.Options{
				RateLimit:  cfg.RateLimit,
				RateWindow: cfg.RateWindow,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving on http://%s\n", cfg.HTTPAddr)
			return api.NewServer(cfg.HTTPAddr, router).Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8080)")
	cmd.Flags().Int("rate-limit", 0, "Requests per window and client IP (0 disables limiting)")
	cmd.Flags().Duration("rate-window", 0, "Rate limit window")

	return cmd
}

