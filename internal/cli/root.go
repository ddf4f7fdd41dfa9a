// Package cli provides CLI commands for the newsroom application.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/newsroom/internal/config"
	"github.com/example/newsroom/internal/ctxutil"
	"github.com/example/newsroom/internal/logging"
	"github.com/example/newsroom/internal/version"
	"github.com/example/newsroom/internal/wire"
)

// RootCmd returns the newsroom root command with every subcommand attached.
func RootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:     "newsroom",
		Short:   "Newsroom - rundown editor for TV news programs",
		Version: version.String(),
		Long: `newsroom manages programs, daily rundowns, their blocks and items,
and the live timing of a show while it is on air.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: configFile,
				Flags:      cmd.Flags(),
			})
			if err != nil {
				return err
			}
			logging.Reconfigure(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
			wire.Configure(cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.newsroom/config.yaml)")
	root.PersistentFlags().String("db", "", "Database file (default ~/.newsroom/newsroom.db)")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "Log format (console or json)")

	root.AddCommand(InitCmd())
	root.AddCommand(ConfigCmd())
	root.AddCommand(LoginCmd())
	root.AddCommand(LogoutCmd())
	root.AddCommand(WhoAmICmd())
	root.AddCommand(UserCmd())
	root.AddCommand(ProgramCmd())
	root.AddCommand(RundownCmd())
	root.AddCommand(BlockCmd())
	root.AddCommand(ItemCmd())
	root.AddCommand(CommentCmd())
	root.AddCommand(TrashCmd())
	root.AddCommand(AuditCmd())
	root.AddCommand(DeskCmd())
	root.AddCommand(ServeCmd())

	return root
}

// NewContext returns the command context with the signed-in user, if any,
// attached as the acting user. CLI commands should use this instead of
// context.Background() directly.
func NewContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	user, err := wire.AuthService().CurrentUser(ctx)
	if err != nil {
		logging.FromContext(ctx, "cli").Debug().Err(err).Msg("no session")
		return ctx
	}
	if user == nil {
		return ctx
	}
	return ctxutil.WithActor(ctx, ctxutil.Actor{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
}
