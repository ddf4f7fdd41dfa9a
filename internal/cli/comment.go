package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/newsroom/internal/wire"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Discuss a rundown with the desk",
}

var commentAddCmd = &cobra.Command{
	Use:   "add [rundown-id] [text]",
	Short: "Post a comment on a rundown",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.CommentAdapter().Add(NewContext(cmd), args[0], joinArgs(args[1:]))
		return err
	},
}

var commentListCmd = &cobra.Command{
	Use:   "list [rundown-id]",
	Short: "List the comments on a rundown, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.CommentAdapter().List(cmd.Context(), args[0])
		return err
	},
}

func init() {
	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentListCmd)
}

// CommentCmd returns the comment command
func CommentCmd() *cobra.Command {
	return commentCmd
}
