package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/newsroom/internal/wire"
)

var programCmd = &cobra.Command{
	Use:   "program",
	Short: "Manage programs (recurring shows)",
}

var programCreateCmd = &cobra.Command{
	Use:     "create [name]",
	Short:   "Create a program",
	Args:    cobra.MinimumNArgs(1),
	Example: `  newsroom program create "Jornal da Noite" --duration 00:45:00`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("duration")
		secs, err := parseDuration("duration", raw)
		if err != nil {
			return err
		}
		_, err = wire.ProgramAdapter().Create(NewContext(cmd), joinArgs(args), secs)
		return err
	},
}

var programListCmd = &cobra.Command{
	Use:   "list",
	Short: "List programs",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		_, err := wire.ProgramAdapter().List(cmd.Context(), all)
		return err
	},
}

var programShowCmd = &cobra.Command{
	Use:   "show [program-id]",
	Short: "Show program details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.ProgramAdapter().Show(cmd.Context(), args[0])
		return err
	},
}

var programActivateCmd = &cobra.Command{
	Use:   "activate [program-id]",
	Short: "Allow rundowns to be loaded for a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ProgramAdapter().SetActive(NewContext(cmd), args[0], true)
	},
}

var programDeactivateCmd = &cobra.Command{
	Use:   "deactivate [program-id]",
	Short: "Stop loading rundowns for a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ProgramAdapter().SetActive(NewContext(cmd), args[0], false)
	},
}

func init() {
	programCreateCmd.Flags().StringP("duration", "d", "00:30:00", "Default show length (HH:MM:SS)")
	programListCmd.Flags().BoolP("all", "a", false, "Include inactive programs")

	programCmd.AddCommand(programCreateCmd)
	programCmd.AddCommand(programListCmd)
	programCmd.AddCommand(programShowCmd)
	programCmd.AddCommand(programActivateCmd)
	programCmd.AddCommand(programDeactivateCmd)
}

// ProgramCmd returns the program command
func ProgramCmd() *cobra.Command {
	return programCmd
}
