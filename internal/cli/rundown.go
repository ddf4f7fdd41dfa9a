package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/wire"
)

var rundownCmd = &cobra.Command{
	Use:     "rundown",
	Aliases: []string{"espelho"},
	Short:   "Load, inspect and manage daily rundowns",
}

var rundownLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Open the rundown of a program on an air date, creating it if needed",
	Long: `Open the rundown of a program on an air date. When none exists an empty
draft is created; --block titles are only used on that creation path.`,
	Example: `  newsroom rundown load --program PROG-001 --date 2024-05-01
  newsroom rundown load -p PROG-001 -d 2024-05-02 --block Abertura --block "Bloco 2"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		programID, _ := cmd.Flags().GetString("program")
		date, _ := cmd.Flags().GetString("date")
		blocks, _ := cmd.Flags().GetStringArray("block")

		_, err := wire.RundownAdapter().Load(NewContext(cmd), primary.LoadRundownRequest{
			ProgramID:     programID,
			AirDate:       date,
			InitialBlocks: blocks,
		})
		return err
	},
}

var rundownShowCmd = &cobra.Command{
	Use:   "show [rundown-id]",
	Short: "Show a rundown with its blocks and items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.RundownAdapter().Show(cmd.Context(), args[0])
		return err
	},
}

var rundownListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rundowns, newest air date first",
	RunE: func(cmd *cobra.Command, args []string) error {
		programID, _ := cmd.Flags().GetString("program")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		limit, _ := cmd.Flags().GetInt("limit")

		_, err := wire.RundownAdapter().List(cmd.Context(), primary.RundownFilters{
			ProgramID: programID,
			From:      from,
			To:        to,
			Limit:     limit,
		})
		return err
	},
}

var rundownUpdateCmd = &cobra.Command{
	Use:   "update [rundown-id]",
	Short: "Change the editor, presenters, mode or air time of a rundown",
	Args:  cobra.ExactArgs(1),
	Example: `  newsroom rundown update RD-001 --editor "Marta" --presenter "Ana Souza" --presenter "Carlos Lima"
  newsroom rundown update RD-001 --mode recorded --air-time 19:30:00`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := primary.UpdateRundownRequest{RundownID: args[0]}
		flags := cmd.Flags()

		if flags.Changed("editor") {
			v, _ := flags.GetString("editor")
			req.Editor = &v
		}
		if flags.Changed("presenter") || flags.Changed("clear-presenters") {
			v, _ := flags.GetStringArray("presenter")
			if v == nil {
				v = []string{}
			}
			req.Presenters = &v
		}
		if flags.Changed("mode") {
			v, _ := flags.GetString("mode")
			req.Mode = &v
		}
		if flags.Changed("air-time") {
			v, _ := flags.GetString("air-time")
			req.AirTime = &v
		}
		if req.Editor == nil && req.Presenters == nil && req.Mode == nil && req.AirTime == nil {
			return errs.InvalidInput("nothing to update; pass --editor, --presenter, --clear-presenters, --mode or --air-time")
		}

		_, err := wire.RundownAdapter().Update(NewContext(cmd), req)
		return err
	},
}

var rundownStatusCmd = &cobra.Command{
	Use:   "status [rundown-id] [draft|approved|on_air|closed]",
	Short: "Move a rundown through the status workflow",
	Long: `Move a rundown one step along draft -> approved -> on_air -> closed.
--force allows any other move (for example reopening a closed rundown).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		_, err := wire.RundownAdapter().Transition(NewContext(cmd), primary.TransitionRundownRequest{
			RundownID: args[0],
			Target:    args[1],
			Force:     force,
		})
		return err
	},
}

var rundownTimingCmd = &cobra.Command{
	Use:   "timing [rundown-id]",
	Short: "Show planned, real and estimated durations and live progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		if at, _ := cmd.Flags().GetString("at"); at != "" {
			parsed, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return errs.InvalidInput("--at: want RFC3339, got %q", at)
			}
			now = parsed
		}
		_, err := wire.RundownAdapter().Timing(cmd.Context(), args[0], now)
		return err
	},
}

var rundownDeleteCmd = &cobra.Command{
	Use:   "delete [rundown-id]",
	Short: "Move a rundown to the trash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.RundownAdapter().Delete(NewContext(cmd), args[0])
	},
}

func init() {
	rundownLoadCmd.Flags().StringP("program", "p", "", "Program ID (required)")
	rundownLoadCmd.Flags().StringP("date", "d", time.Now().Format("2006-01-02"), "Air date (YYYY-MM-DD)")
	rundownLoadCmd.Flags().StringArray("block", nil, "Initial block title (repeatable, creation only)")
	_ = rundownLoadCmd.MarkFlagRequired("program")

	rundownListCmd.Flags().StringP("program", "p", "", "Filter by program")
	rundownListCmd.Flags().String("from", "", "Earliest air date (YYYY-MM-DD)")
	rundownListCmd.Flags().String("to", "", "Latest air date (YYYY-MM-DD)")
	rundownListCmd.Flags().IntP("limit", "n", 0, "Maximum rows")

	rundownUpdateCmd.Flags().String("editor", "", "Editor in charge")
	rundownUpdateCmd.Flags().StringArray("presenter", nil, "Presenter (repeatable; replaces the list)")
	rundownUpdateCmd.Flags().Bool("clear-presenters", false, "Remove all presenters")
	rundownUpdateCmd.Flags().String("mode", "", "live or recorded")
	rundownUpdateCmd.Flags().String("air-time", "", "Scheduled start (HH:MM:SS)")

	rundownStatusCmd.Flags().Bool("force", false, "Allow moves outside the workflow")

	rundownTimingCmd.Flags().String("at", "", "Evaluate at this instant (RFC3339) instead of now")

	rundownCmd.AddCommand(rundownLoadCmd)
	rundownCmd.AddCommand(rundownShowCmd)
	rundownCmd.AddCommand(rundownListCmd)
	rundownCmd.AddCommand(rundownUpdateCmd)
	rundownCmd.AddCommand(rundownStatusCmd)
	rundownCmd.AddCommand(rundownTimingCmd)
	rundownCmd.AddCommand(rundownDeleteCmd)
}

// RundownCmd returns the rundown command
func RundownCmd() *cobra.Command {
	return rundownCmd
}

