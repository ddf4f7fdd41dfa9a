package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/example/newsroom/internal/core/duration"
	"github.com/example/newsroom/internal/ports/primary"
)

// noDuration is shown for durations that are not known yet.
const noDuration = "--:--:--"

// StatusBadge renders a rundown status as a coloured tag.
func StatusBadge(status string) string {
	upper := "[" + strings.ToUpper(status) + "]"
	switch status {
	case "draft":
		return color.New(color.FgHiBlack).Sprint(upper)
	case "approved":
		return color.New(color.FgHiGreen).Sprint(upper)
	case "on_air":
		return color.New(color.FgHiRed, color.Bold).Sprint("[ON AIR]")
	case "closed":
		return color.New(color.FgWhite).Sprint(upper)
	default:
		return upper
	}
}

// ItemStatusBadge renders an item status. Breaks have none.
func ItemStatusBadge(status string) string {
	switch status {
	case "awaiting":
		return color.New(color.FgYellow).Sprint(status)
	case "producing":
		return color.New(color.FgHiCyan).Sprint(status)
	case "approved":
		return color.New(color.FgHiGreen).Sprint(status)
	default:
		return status
	}
}

// optionalDuration renders a nullable duration.
func optionalDuration(seconds *int) string {
	if seconds == nil {
		return noDuration
	}
	return duration.FormatHMS(*seconds)
}

func optionalPercent(p *int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d%%", *p)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// RenderRundownHeader writes the one-line summary and crew of a rundown.
func RenderRundownHeader(w io.Writer, r *primary.Rundown) {
	program := r.ProgramName
	if program == "" {
		program = r.ProgramID
	}
	fmt.Fprintf(w, "%s  %s  %s %s  %s  %s\n", r.ID, program, r.AirDate, r.AirTime, StatusBadge(r.Status), r.Mode)
	if r.Editor != "" {
		fmt.Fprintf(w, "Editor:     %s\n", r.Editor)
	}
	if len(r.Presenters) > 0 {
		fmt.Fprintf(w, "Presenters: %s\n", strings.Join(r.Presenters, ", "))
	}
	if r.DeletedAt != "" {
		fmt.Fprintf(w, "Deleted:    %s\n", r.DeletedAt)
	}
}

// RenderRundown writes a hydrated rundown as a table, one section per block.
func RenderRundown(w io.Writer, r *primary.Rundown) {
	RenderRundownHeader(w, r)
	fmt.Fprintf(w, "Planned:    %s   Real: %s\n", duration.FormatHMS(r.Planned), optionalDuration(r.Real))
	fmt.Fprintln(w)

	if len(r.Blocks) == 0 {
		fmt.Fprintln(w, "No blocks yet.")
		fmt.Fprintf(w, "  newsroom block add %s \"Bloco 1\"\n", r.ID)
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "ID", "TYPE", "TITLE", "TALENT / REPORTER", "PLANNED", "REAL", "STATUS"})
	for bi, b := range r.Blocks {
		if bi > 0 {
			t.AppendSeparator()
		}
		t.AppendRow(table.Row{
			bi + 1,
			b.ID,
			"BLOCK",
			color.New(color.Bold).Sprint(b.Title),
			"",
			duration.FormatHMS(b.Planned),
			optionalDuration(b.Real),
			"",
		})
		for ii, it := range b.Items {
			t.AppendRow(table.Row{
				fmt.Sprintf("%d.%d", bi+1, ii+1),
				it.ID,
				it.Type,
				it.Title,
				crew(it),
				duration.FormatHMS(it.Planned),
				optionalDuration(it.Real),
				ItemStatusBadge(it.Status),
			})
		}
	}
	t.Render()
}

func crew(it *primary.Item) string {
	var parts []string
	for _, p := range []string{it.Talent, it.Reporter} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " / ")
}

// RenderTiming writes the live timing view.
func RenderTiming(w io.Writer, t *primary.Timing) {
	fmt.Fprintf(w, "Timing for %s %s\n", t.RundownID, StatusBadge(t.Status))
	fmt.Fprintf(w, "  Scheduled:  %s\n", t.ScheduledStart.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "  Planned:    %s\n", duration.FormatHMS(t.Planned))
	fmt.Fprintf(w, "  Real:       %s\n", optionalDuration(t.Real))
	fmt.Fprintf(w, "  Estimated:  %s\n", duration.FormatHMS(t.Estimated))

	diff := duration.FormatSigned(t.Difference)
	if t.Overrun {
		diff = color.New(color.FgHiRed).Sprint(diff + " overrun")
	}
	fmt.Fprintf(w, "  Difference: %s\n", diff)

	if t.Elapsed != nil {
		fmt.Fprintf(w, "  Elapsed:    %s\n", duration.FormatHMS(*t.Elapsed))
		fmt.Fprintf(w, "  Remaining:  %s\n", duration.FormatSigned(*t.Remaining))
		fmt.Fprintf(w, "  Progress:   %s\n", optionalPercent(t.Progress))
	}
}
