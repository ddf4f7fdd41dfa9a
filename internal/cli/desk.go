package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	deskui "github.com/example/newsroom/internal/adapters/cli"
	"github.com/example/newsroom/internal/config"
	"github.com/example/newsroom/internal/wire"
)

// DeskCmd returns the desk command
func DeskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "desk [rundown-id...]",
		Short: "Edit several rundowns interactively",
		Long: `Open an interactive editing desk. Each rundown opens in its own tab;
edits go straight to the database and the tab shows what was saved.

Type help inside the desk for the command list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext(cmd)
			out := cmd.OutOrStdout()
			desk := wire.Desk(out)

			for _, id := range args {
				if _, err := desk.Exec(ctx, "open "+id); err != nil {
					return err
				}
			}

			items := make([]readline.PrefixCompleterInterface, 0, len(deskui.DeskCommands))
			for _, name := range deskui.DeskCommands {
				items = append(items, readline.PcItem(name))
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          desk.Prompt(),
				HistoryFile:     filepath.Join(config.Dir(), "desk_history"),
				AutoComplete:    readline.NewPrefixCompleter(items...),
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize desk: %w", err)
			}
			defer func() { _ = rl.Close() }()

			_, _ = fmt.Fprintln(out, "Newsroom desk. Type help for commands, quit to exit.")

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}

				quit, err := desk.Exec(ctx, strings.TrimSpace(line))
				if err != nil {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), FormatError(err))
				}
				if quit {
					return nil
				}
				rl.SetPrompt(desk.Prompt())
			}
		},
	}
}
