package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/wire"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Edit the blocks of a rundown",
}

var blockAddCmd = &cobra.Command{
	Use:   "add [rundown-id] [title]",
	Short: "Add a block to a rundown",
	Long: `Add a block to a rundown. Without a title the block is named after its
position ("Bloco N"). Without --position it is appended.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, _ := cmd.Flags().GetInt("position")
		idx, err := position("position", pos)
		if err != nil {
			return err
		}
		_, err = wire.RundownAdapter().AddBlock(NewContext(cmd), primary.AddBlockRequest{
			RundownID: args[0],
			Title:     joinArgs(args[1:]),
			Index:     idx,
		})
		return err
	},
}

var blockRenameCmd = &cobra.Command{
	Use:   "rename [block-id] [title]",
	Short: "Rename a block",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.RundownAdapter().RenameBlock(NewContext(cmd), args[0], joinArgs(args[1:]))
		return err
	},
}

var blockMoveCmd = &cobra.Command{
	Use:     "move [block-id] [position]",
	Short:   "Move a block to a 1-based position within its rundown",
	Args:    cobra.ExactArgs(2),
	Example: `  newsroom block move BLK-002 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		_, err = wire.RundownAdapter().MoveBlock(NewContext(cmd), args[0], pos)
		return err
	},
}

var blockDeleteCmd = &cobra.Command{
	Use:   "delete [block-id]",
	Short: "Delete a block and all of its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.RundownAdapter().DeleteBlock(NewContext(cmd), args[0])
		return err
	},
}

func init() {
	blockAddCmd.Flags().IntP("position", "P", 0, "1-based position (default: append)")

	blockCmd.AddCommand(blockAddCmd)
	blockCmd.AddCommand(blockRenameCmd)
	blockCmd.AddCommand(blockMoveCmd)
	blockCmd.AddCommand(blockDeleteCmd)
}

// BlockCmd returns the block command
func BlockCmd() *cobra.Command {
	return blockCmd
}

// parsePosition reads a 1-based positional argument.
func parsePosition(arg string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 1 {
		return 0, errs.InvalidInput("position must be a number of 1 or greater, got %q", arg)
	}
	return pos, nil
}
