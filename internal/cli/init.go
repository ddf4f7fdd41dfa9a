package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/newsroom/internal/db"
	"github.com/example/newsroom/internal/wire"
)

// seedPassword is the password of the seeded development users.
const seedPassword = "newsroom"

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the newsroom database",
		Long: `Create the newsroom database and apply all schema migrations.

With --seed, an empty database also receives development fixtures: three
programs, an admin and an editor (password "newsroom"), and one rundown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			fmt.Printf("Initializing newsroom database at %s\n", cfg.DBPath)

			database := wire.DB()
			v, err := db.Version(database)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}
			fmt.Printf("✓ Schema at version %d\n", v)

			if seed {
				programs, err := wire.ProgramService().ListPrograms(cmd.Context(), true)
				if err != nil {
					return err
				}
				if len(programs) > 0 {
					fmt.Println("⚠ Database already has programs; skipping fixtures")
				} else {
					hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
					if err != nil {
						return fmt.Errorf("failed to hash seed password: %w", err)
					}
					if err := db.SeedFixtures(database, string(hash)); err != nil {
						return fmt.Errorf("failed to seed database: %w", err)
					}
					fmt.Println("✓ Development fixtures loaded")
					fmt.Printf("  Users: admin@newsroom.local, editor@newsroom.local (password %q)\n", seedPassword)
				}
			}

			if cfg.UsesDevSecret() {
				fmt.Println()
				fmt.Println("⚠ Session tokens are signed with the development secret.")
				fmt.Println("  Set jwt_secret in the config file or NEWSROOM_JWT_SECRET before sharing this database.")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  newsroom login --email admin@newsroom.local")
			fmt.Println("  newsroom program list")
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Load development fixtures into an empty database")

	return cmd
}
