package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/newsroom/internal/wire"
)

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "Inspect and restore deleted rundowns",
}

var trashListCmd = &cobra.Command{
	Use:   "list",
	Short: "List deleted rundowns",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.TrashAdapter().List(cmd.Context())
		return err
	},
}

var trashRestoreCmd = &cobra.Command{
	Use:   "restore [rundown-id]",
	Short: "Bring a deleted rundown back",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.TrashAdapter().Restore(NewContext(cmd), args[0])
		return err
	},
}

func init() {
	trashCmd.AddCommand(trashListCmd)
	trashCmd.AddCommand(trashRestoreCmd)
}

// TrashCmd returns the trash command
func TrashCmd() *cobra.Command {
	return trashCmd
}
