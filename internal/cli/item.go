package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/wire"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Edit the items of a block",
	Long: `Edit the items of a block.

Item types: VT (tape), REP (reporter package), LIVE, NOTE (anchor read), BREAK.
Item statuses: awaiting, producing, approved. BREAK items carry no status.`,
}

var itemAddCmd = &cobra.Command{
	Use:   "add [block-id] [title]",
	Short: "Add an item to a block",
	Args:  cobra.MinimumNArgs(1),
	Example: `  newsroom item add BLK-001 "Abertura" --type VT --planned 00:01:30
  newsroom item add BLK-002 --type BREAK --planned 00:03:00 --position 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		itemType, _ := flags.GetString("type")
		rawPlanned, _ := flags.GetString("planned")
		planned, err := parseDuration("planned", rawPlanned)
		if err != nil {
			return err
		}
		pos, _ := flags.GetInt("position")
		idx, err := position("position", pos)
		if err != nil {
			return err
		}

		req := primary.AddItemRequest{
			BlockID: args[0],
			Index:   idx,
			Type:    strings.ToUpper(itemType),
			Title:   joinArgs(args[1:]),
			Planned: planned,
		}
		req.Details, _ = flags.GetString("details")
		req.Talent, _ = flags.GetString("talent")
		req.Reporter, _ = flags.GetString("reporter")
		req.VideoEditor, _ = flags.GetString("video-editor")
		req.Source, _ = flags.GetString("source")
		req.Status, _ = flags.GetString("status")
		req.ReportID, _ = flags.GetString("report")
		if flags.Changed("real") {
			raw, _ := flags.GetString("real")
			secs, err := parseDuration("real", raw)
			if err != nil {
				return err
			}
			req.Real = &secs
		}

		_, err = wire.RundownAdapter().AddItem(NewContext(cmd), req)
		return err
	},
}

var itemUpdateCmd = &cobra.Command{
	Use:   "update [item-id]",
	Short: "Change the fields of an item",
	Long:  `Change the fields of an item. Only the flags given are applied.`,
	Args:  cobra.ExactArgs(1),
	Example: `  newsroom item update ITEM-002 --real 00:07:40
  newsroom item update ITEM-002 --clear-real`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		req := primary.UpdateItemRequest{ItemID: args[0]}

		req.Type = changedString(flags, "type")
		if req.Type != nil {
			upper := strings.ToUpper(*req.Type)
			req.Type = &upper
		}
		req.Title = changedString(flags, "title")
		req.Details = changedString(flags, "details")
		req.Talent = changedString(flags, "talent")
		req.Reporter = changedString(flags, "reporter")
		req.VideoEditor = changedString(flags, "video-editor")
		req.Source = changedString(flags, "source")
		req.ReportID = changedString(flags, "report")

		if raw := changedString(flags, "planned"); raw != nil {
			secs, err := parseDuration("planned", *raw)
			if err != nil {
				return err
			}
			req.Planned = &secs
		}
		if raw := changedString(flags, "real"); raw != nil {
			secs, err := parseDuration("real", *raw)
			if err != nil {
				return err
			}
			req.Real = &secs
		}
		req.ClearReal, _ = flags.GetBool("clear-real")
		if req.ClearReal && req.Real != nil {
			return errs.InvalidInput("--real and --clear-real cannot be combined")
		}

		if !flags.Changed("type") && !flags.Changed("title") && !flags.Changed("details") &&
			!flags.Changed("talent") && !flags.Changed("reporter") && !flags.Changed("video-editor") &&
			!flags.Changed("source") && !flags.Changed("report") && !flags.Changed("planned") &&
			!flags.Changed("real") && !req.ClearReal {
			return errs.InvalidInput("nothing to update")
		}

		_, err := wire.RundownAdapter().UpdateItem(NewContext(cmd), req)
		return err
	},
}

var itemStatusCmd = &cobra.Command{
	Use:   "status [item-id] [awaiting|producing|approved]",
	Short: "Set the production status of an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.RundownAdapter().SetItemStatus(NewContext(cmd), args[0], args[1])
		return err
	},
}

var itemMoveCmd = &cobra.Command{
	Use:   "move [item-id] [position]",
	Short: "Move an item to a 1-based position within its block",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		_, err = wire.RundownAdapter().MoveItem(NewContext(cmd), args[0], pos)
		return err
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete [item-id]",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.RundownAdapter().DeleteItem(NewContext(cmd), args[0])
		return err
	},
}

func init() {
	addItemFieldFlags(itemAddCmd.Flags())
	itemAddCmd.Flags().String("status", "", "Initial status (default awaiting; none for BREAK)")
	itemAddCmd.Flags().IntP("position", "P", 0, "1-based position (default: append)")
	_ = itemAddCmd.MarkFlagRequired("type")

	addItemFieldFlags(itemUpdateCmd.Flags())
	itemUpdateCmd.Flags().String("title", "", "Item title")
	itemUpdateCmd.Flags().Bool("clear-real", false, "Forget the real duration")

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemUpdateCmd)
	itemCmd.AddCommand(itemStatusCmd)
	itemCmd.AddCommand(itemMoveCmd)
	itemCmd.AddCommand(itemDeleteCmd)
}

func addItemFieldFlags(flags *pflag.FlagSet) {
	flags.StringP("type", "t", "", "VT, REP, LIVE, NOTE or BREAK")
	flags.String("details", "", "Script or notes")
	flags.String("talent", "", "On-air talent")
	flags.String("reporter", "", "Reporter")
	flags.String("video-editor", "", "Video editor")
	flags.String("source", "", "Signal or media source")
	flags.String("report", "", "Linked report ID")
	flags.String("planned", "00:00:00", "Planned duration (HH:MM:SS)")
	flags.String("real", "", "Real duration (HH:MM:SS)")
}

// changedString returns a pointer to the flag value only when the user set it.
func changedString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

// ItemCmd returns the item command
func ItemCmd() *cobra.Command {
	return itemCmd
}
