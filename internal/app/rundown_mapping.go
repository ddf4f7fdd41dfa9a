package app

import (
	"github.com/example/newsroom/internal/core/rundown"
	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/ports/secondary"
)

// Hydration at the gateway boundary: typed records in, typed core tree out.

func recordToRundown(rec *secondary.RundownRecord) *rundown.Rundown {
	presenters := make([]string, len(rec.Presenters))
	copy(presenters, rec.Presenters)
	return &rundown.Rundown{
		ID:          rec.ID,
		ProgramID:   rec.ProgramID,
		ProgramName: rec.ProgramName,
		AirDate:     rec.AirDate,
		AirTime:     rec.AirTime,
		Editor:      rec.Editor,
		Presenters:  presenters,
		Mode:        rundown.Mode(rec.Mode),
		Status:      rundown.Status(rec.Status),
		CreatedBy:   rec.CreatedBy,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
		DeletedAt:   rec.DeletedAt,
	}
}

func recordToBlock(rec *secondary.BlockRecord) *rundown.Block {
	return &rundown.Block{
		ID:        rec.ID,
		RundownID: rec.RundownID,
		Order:     rec.Order,
		Seq:       rec.Seq,
		Title:     rec.Title,
		Items:     []*rundown.Item{},
	}
}

func recordToItem(rec *secondary.ItemRecord) *rundown.Item {
	return &rundown.Item{
		ID:          rec.ID,
		BlockID:     rec.BlockID,
		Order:       rec.Order,
		Seq:         rec.Seq,
		Type:        rundown.ItemType(rec.Type),
		Title:       rec.Title,
		Details:     rec.Details,
		Talent:      rec.Talent,
		Reporter:    rec.Reporter,
		VideoEditor: rec.VideoEditor,
		Source:      rec.Source,
		Planned:     rec.PlannedDuration,
		Real:        copyInt(rec.RealDuration),
		Status:      rundown.ItemStatus(rec.Status),
		ReportID:    rec.ReportID,
	}
}

func itemToRecord(it *rundown.Item) *secondary.ItemRecord {
	return &secondary.ItemRecord{
		ID:              it.ID,
		BlockID:         it.BlockID,
		Order:           it.Order,
		Seq:             it.Seq,
		Type:            string(it.Type),
		Title:           it.Title,
		Details:         it.Details,
		Talent:          it.Talent,
		Reporter:        it.Reporter,
		VideoEditor:     it.VideoEditor,
		Source:          it.Source,
		PlannedDuration: it.Planned,
		RealDuration:    copyInt(it.Real),
		Status:          string(it.Status),
		ReportID:        it.ReportID,
	}
}

// rundownHeader maps a record to a view without blocks.
func rundownHeader(rec *secondary.RundownRecord) *primary.Rundown {
	presenters := make([]string, len(rec.Presenters))
	copy(presenters, rec.Presenters)
	return &primary.Rundown{
		ID:          rec.ID,
		ProgramID:   rec.ProgramID,
		ProgramName: rec.ProgramName,
		AirDate:     rec.AirDate,
		AirTime:     rec.AirTime,
		Editor:      rec.Editor,
		Presenters:  presenters,
		Mode:        rec.Mode,
		Status:      rec.Status,
		CreatedBy:   rec.CreatedBy,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
		DeletedAt:   rec.DeletedAt,
	}
}

// rundownView maps a hydrated core tree to the port view, with totals
// recomputed from items.
func rundownView(r *rundown.Rundown) *primary.Rundown {
	totals := rundown.AggregateRundown(r)
	view := &primary.Rundown{
		ID:          r.ID,
		ProgramID:   r.ProgramID,
		ProgramName: r.ProgramName,
		AirDate:     r.AirDate,
		AirTime:     r.AirTime,
		Editor:      r.Editor,
		Presenters:  r.Presenters,
		Mode:        string(r.Mode),
		Status:      string(r.Status),
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
		Planned:     totals.Planned,
		Real:        totals.Real,
		Blocks:      make([]*primary.Block, 0, len(r.Blocks)),
	}
	if view.Presenters == nil {
		view.Presenters = []string{}
	}

	for _, b := range r.Blocks {
		bt := rundown.AggregateBlock(b)
		block := &primary.Block{
			ID:        b.ID,
			RundownID: b.RundownID,
			Order:     b.Order,
			Title:     b.Title,
			Planned:   bt.Planned,
			Real:      bt.Real,
			Items:     make([]*primary.Item, 0, len(b.Items)),
		}
		for _, it := range b.Items {
			block.Items = append(block.Items, &primary.Item{
				ID:          it.ID,
				BlockID:     it.BlockID,
				Order:       it.Order,
				Type:        string(it.Type),
				Title:       it.Title,
				Details:     it.Details,
				Talent:      it.Talent,
				Reporter:    it.Reporter,
				VideoEditor: it.VideoEditor,
				Source:      it.Source,
				Planned:     it.Planned,
				Real:        copyInt(it.Real),
				Status:      string(it.Status),
				ReportID:    it.ReportID,
			})
		}
		view.Blocks = append(view.Blocks, block)
	}

	return view
}

func timingView(r *rundown.Rundown, t rundown.Timing) *primary.Timing {
	return &primary.Timing{
		RundownID:      r.ID,
		Status:         string(r.Status),
		ScheduledStart: t.ScheduledStart,
		Planned:        t.Planned,
		Real:           t.Real,
		Estimated:      t.Estimated,
		Elapsed:        t.Elapsed,
		Progress:       t.Progress,
		Difference:     t.Difference,
		Overrun:        t.Overrun,
		Remaining:      t.Remaining,
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
