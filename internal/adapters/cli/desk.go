package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/example/newsroom/internal/core/editing"
	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/logging"
	"github.com/example/newsroom/internal/ports/primary"
)

// DeskCommands lists the commands Exec understands, for completion.
var DeskCommands = []string{
	"open", "load", "tabs", "switch", "close", "show", "timing", "reload",
	"status", "block-add", "block-move", "item-move", "item-status",
	"help", "quit",
}

// Desk is an interactive editing session over several open rundowns.
// Every edit goes to the service first; a tab is only replaced by the
// rundown the service returns.
type Desk struct {
	service primary.RundownService
	tabs    *editing.Session[*primary.Rundown]
	out     io.Writer
	now     func() time.Time
}

// NewDesk creates a desk with no open tabs.
func NewDesk(service primary.RundownService, out io.Writer) *Desk {
	return &Desk{
		service: service,
		tabs:    editing.NewSession(func(r *primary.Rundown) string { return r.ID }),
		out:     out,
		now:     time.Now,
	}
}

// SetClock replaces the clock used by the timing command.
func (d *Desk) SetClock(now func() time.Time) { d.now = now }

// Prompt returns the prompt naming the active tab.
func (d *Desk) Prompt() string {
	key := d.tabs.ActiveKey()
	if key == editing.NewKey {
		return "desk> "
	}
	if d.tabs.IsStale(key) {
		return fmt.Sprintf("desk[%s!]> ", key)
	}
	return fmt.Sprintf("desk[%s]> ", key)
}

// Exec runs one command line. quit is true when the session should end.
func (d *Desk) Exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	logging.FromContext(ctx, "desk").Debug().Str("cmd", cmd).Strs("args", args).Msg("exec")

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		d.help()
		return false, nil
	case "open":
		return false, d.open(ctx, args)
	case "load":
		return false, d.load(ctx, args)
	case "tabs":
		d.listTabs()
		return false, nil
	case "switch":
		return false, d.switchTab(args)
	case "close":
		return false, d.closeTab(args)
	case "show":
		return false, d.show()
	case "timing":
		return false, d.timing(ctx)
	case "reload":
		return false, d.reload(ctx)
	case "status":
		return false, d.status(ctx, args)
	case "block-add":
		return false, d.blockAdd(ctx, args)
	case "block-move":
		return false, d.blockMove(ctx, args)
	case "item-move":
		return false, d.itemMove(ctx, args)
	case "item-status":
		return false, d.itemStatus(ctx, args)
	default:
		return false, errs.InvalidInput("unknown command %q (type help)", cmd)
	}
}

func (d *Desk) open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errs.InvalidInput("usage: open <rundown-id>")
	}
	r, err := d.service.GetRundown(ctx, args[0])
	if err != nil {
		return err
	}
	d.tabs.Open(r)
	RenderRundown(d.out, r)
	return nil
}

func (d *Desk) load(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errs.InvalidInput("usage: load <program-id> <YYYY-MM-DD>")
	}
	resp, err := d.service.LoadRundown(ctx, primary.LoadRundownRequest{ProgramID: args[0], AirDate: args[1]})
	if err != nil {
		return err
	}
	if resp.Created {
		fmt.Fprintf(d.out, "✓ Created rundown %s\n", resp.Rundown.ID)
	}
	d.tabs.Open(resp.Rundown)
	RenderRundown(d.out, resp.Rundown)
	return nil
}

func (d *Desk) listTabs() {
	if d.tabs.Len() == 0 {
		fmt.Fprintln(d.out, "No open rundowns.")
		return
	}
	for _, key := range d.tabs.Keys() {
		r, _ := d.tabs.Get(key)
		marker := " "
		if key == d.tabs.ActiveKey() {
			marker = "*"
		}
		suffix := ""
		if d.tabs.IsStale(key) {
			suffix = "  (stale, reload)"
		}
		fmt.Fprintf(d.out, "%s %s  %s  %s  %s%s\n", marker, key, r.ProgramName, r.AirDate, r.Status, suffix)
	}
}

func (d *Desk) switchTab(args []string) error {
	if len(args) != 1 {
		return errs.InvalidInput("usage: switch <rundown-id>")
	}
	if err := d.tabs.SetActive(args[0]); err != nil {
		return err
	}
	return d.show()
}

func (d *Desk) closeTab(args []string) error {
	key := d.tabs.ActiveKey()
	if len(args) == 1 {
		key = args[0]
	}
	if err := d.tabs.Close(key); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "✓ Closed %s\n", key)
	return nil
}

func (d *Desk) show() error {
	r, err := d.active()
	if err != nil {
		return err
	}
	if d.tabs.IsStale(r.ID) {
		fmt.Fprintln(d.out, "⚠ This tab may be out of date; run reload.")
	}
	RenderRundown(d.out, r)
	return nil
}

func (d *Desk) timing(ctx context.Context) error {
	r, err := d.active()
	if err != nil {
		return err
	}
	t, err := d.service.Timing(ctx, r.ID, d.now())
	if err != nil {
		return err
	}
	RenderTiming(d.out, t)
	return nil
}

func (d *Desk) reload(ctx context.Context) error {
	r, err := d.active()
	if err != nil {
		return err
	}
	fresh, err := d.service.GetRundown(ctx, r.ID)
	if err != nil {
		return err
	}
	if err := d.tabs.Replace(fresh); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "✓ Reloaded %s\n", fresh.ID)
	RenderRundown(d.out, fresh)
	return nil
}

func (d *Desk) status(ctx context.Context, args []string) error {
	r, err := d.editable()
	if err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 || (len(args) == 2 && args[1] != "--force") {
		return errs.InvalidInput("usage: status <draft|approved|on_air|closed> [--force]")
	}
	resp, err := d.service.TransitionRundown(ctx, primary.TransitionRundownRequest{
		RundownID: r.ID,
		Target:    args[0],
		Force:     len(args) == 2,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "✓ %s: %s → %s\n", r.ID, resp.From, resp.To)
	if resp.Rundown != nil {
		return d.tabs.Replace(resp.Rundown)
	}
	return nil
}

func (d *Desk) blockAdd(ctx context.Context, args []string) error {
	r, err := d.editable()
	if err != nil {
		return err
	}
	resp, err := d.service.AddBlock(ctx, primary.AddBlockRequest{
		RundownID: r.ID,
		Title:     strings.Join(args, " "),
	})
	return d.apply(r.ID, "Block added", resp, err)
}

func (d *Desk) blockMove(ctx context.Context, args []string) error {
	r, err := d.editable()
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return errs.InvalidInput("usage: block-move <block-id> <position>")
	}
	if !hasBlock(r, args[0]) {
		return errs.NotFound("block", args[0])
	}
	pos, err := deskPosition(args[1])
	if err != nil {
		return err
	}
	resp, err := d.service.MoveBlock(ctx, args[0], pos-1)
	return d.apply(r.ID, fmt.Sprintf("Block %s moved to position %d", args[0], pos), resp, err)
}

func (d *Desk) itemMove(ctx context.Context, args []string) error {
	r, err := d.editable()
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return errs.InvalidInput("usage: item-move <item-id> <position>")
	}
	if !hasItem(r, args[0]) {
		return errs.NotFound("item", args[0])
	}
	pos, err := deskPosition(args[1])
	if err != nil {
		return err
	}
	resp, err := d.service.MoveItem(ctx, args[0], pos-1)
	return d.apply(r.ID, fmt.Sprintf("Item %s moved to position %d", args[0], pos), resp, err)
}

func (d *Desk) itemStatus(ctx context.Context, args []string) error {
	r, err := d.editable()
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return errs.InvalidInput("usage: item-status <item-id> <awaiting|producing|approved>")
	}
	if !hasItem(r, args[0]) {
		return errs.NotFound("item", args[0])
	}
	resp, err := d.service.SetItemStatus(ctx, args[0], args[1])
	return d.apply(r.ID, fmt.Sprintf("Item %s is %s", args[0], ItemStatusBadge(args[1])), resp, err)
}

// apply installs the rundown returned by a mutation. A partial ordering
// failure leaves the persisted order unknown, so the tab is marked stale.
func (d *Desk) apply(key, done string, resp *primary.MutationResponse, err error) error {
	if err != nil {
		if errs.IsPartialOrdering(err) {
			d.tabs.MarkStale(key)
		}
		return err
	}
	if err := d.tabs.Replace(resp.Rundown); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "✓ %s\n", done)
	RenderRundown(d.out, resp.Rundown)
	return nil
}

func (d *Desk) active() (*primary.Rundown, error) {
	r, ok := d.tabs.Active()
	if !ok {
		return nil, errs.InvalidInput("no rundown open (use open <rundown-id>)")
	}
	return r, nil
}

func (d *Desk) editable() (*primary.Rundown, error) {
	r, err := d.active()
	if err != nil {
		return nil, err
	}
	if d.tabs.IsStale(r.ID) {
		return nil, errs.Conflict("rundown", r.ID, "tab is out of date, run reload before editing")
	}
	return r, nil
}

func (d *Desk) help() {
	fmt.Fprint(d.out, `
Tabs:
  open <rundown-id>            Open a rundown in a new tab
  load <program-id> <date>     Open (or create) the rundown of a program on a date
  tabs                         List open tabs (* marks the active one)
  switch <rundown-id>          Make a tab active
  close [rundown-id]           Close a tab (default: the active one)
  show                         Show the active rundown
  timing                       Show live timing of the active rundown
  reload                       Re-read the active rundown from the database

Editing (active tab):
  status <target> [--force]    Move the rundown through its workflow
  block-add [title]            Append a block
  block-move <block-id> <pos>  Move a block to a 1-based position
  item-move <item-id> <pos>    Move an item within its block
  item-status <item-id> <s>    Set an item to awaiting, producing or approved

  help                         Show this help
  quit                         Leave the desk
`)
}

func deskPosition(arg string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 1 {
		return 0, errs.InvalidInput("position must be 1 or greater, got %q", arg)
	}
	return pos, nil
}

func hasBlock(r *primary.Rundown, blockID string) bool {
	for _, b := range r.Blocks {
		if b.ID == blockID {
			return true
		}
	}
	return false
}

func hasItem(r *primary.Rundown, itemID string) bool {
	for _, b := range r.Blocks {
		for _, it := range b.Items {
			if it.ID == itemID {
				return true
			}
		}
	}
	return false
}
