package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/wire"
)

// AuditCmd returns the audit command
func AuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit log of changes",
	}
	cmd.AddCommand(auditListCmd())
	return cmd
}

func auditListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the audit log, newest first",
		Long: `Show the audit log of changes, newest first.

Examples:
  newsroom audit list --entity rundown --id RD-001
  newsroom audit list --actor USR-002 --action update -n 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, _ := cmd.Flags().GetString("entity")
			entityID, _ := cmd.Flags().GetString("id")
			actor, _ := cmd.Flags().GetString("actor")
			action, _ := cmd.Flags().GetString("action")
			limit, _ := cmd.Flags().GetInt("limit")

			_, err := wire.LogAdapter().List(cmd.Context(), primary.LogFilters{
				EntityType: entityType,
				EntityID:   entityID,
				ActorID:    actor,
				Action:     action,
				Limit:      limit,
			})
			return err
		},
	}

	cmd.Flags().String("entity", "", "Entity type (rundown, block, item, program, comment, user)")
	cmd.Flags().String("id", "", "Entity ID")
	cmd.Flags().String("actor", "", "Actor user ID")
	cmd.Flags().String("action", "", "create, update or delete")
	cmd.Flags().IntP("limit", "n", 50, "Maximum entries")

	return cmd
}
