package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/newsroom/internal/config"
	"github.com/example/newsroom/internal/wire"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create configuration files",
	}
	cmd.AddCommand(configInitCmd())
	cmd.AddCommand(configShowCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current effective settings",
		Example: `  newsroom config init
  newsroom config init --path ./newsroom.yaml --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.DefaultConfigFile()
			}
			if err := config.WriteSample(path, wire.Config(), force); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Destination file (default ~/.newsroom/config.yaml)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *wire.Config()
			if cfg.JWTSecret != "" && !cfg.UsesDevSecret() {
				cfg.JWTSecret = "********"
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			if cfg.FileUsed != "" {
				fmt.Printf("# loaded from %s\n", cfg.FileUsed)
			}
			fmt.Print(string(out))
			return nil
		},
	}
}
