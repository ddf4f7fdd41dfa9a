package api

import (
	"time"

	"github.com/example/newsroom/internal/core/duration"
	"github.com/example/newsroom/internal/ports/primary"
)

// Durations travel as HH:MM:SS strings; unknown real durations are null.

type userJSON struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type programJSON struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DefaultDuration string `json:"default_duration"`
	Active          bool   `json:"active"`
	CreatedAt       string `json:"created_at"`
}

type rundownHeaderJSON struct {
	ID          string   `json:"id"`
	ProgramID   string   `json:"program_id"`
	ProgramName string   `json:"program_name,omitempty"`
	AirDate     string   `json:"air_date"`
	AirTime     string   `json:"air_time"`
	Editor      string   `json:"editor"`
	Presenters  []string `json:"presenters"`
	Mode        string   `json:"mode"`
	Status      string   `json:"status"`
	CreatedBy   string   `json:"created_by,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	DeletedAt   string   `json:"deleted_at,omitempty"`
}

type rundownJSON struct {
	rundownHeaderJSON
	Planned string      `json:"planned"`
	Real    *string     `json:"real"`
	Blocks  []blockJSON `json:"blocks"`
}

type blockJSON struct {
	ID      string     `json:"id"`
	Order   int        `json:"order"`
	Title   string     `json:"title"`
	Planned string     `json:"planned"`
	Real    *string    `json:"real"`
	Items   []itemJSON `json:"items"`
}

type itemJSON struct {
	ID          string  `json:"id"`
	Order       int     `json:"order"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Details     string  `json:"details,omitempty"`
	Talent      string  `json:"talent,omitempty"`
	Reporter    string  `json:"reporter,omitempty"`
	VideoEditor string  `json:"video_editor,omitempty"`
	Source      string  `json:"source,omitempty"`
	Planned     string  `json:"planned"`
	Real        *string `json:"real"`
	Status      string  `json:"status,omitempty"`
	ReportID    string  `json:"report_id,omitempty"`
}

type mutationJSON struct {
	EntityID string      `json:"entity_id"`
	Rundown  rundownJSON `json:"rundown"`
}

type timingJSON struct {
	RundownID      string  `json:"rundown_id"`
	Status         string  `json:"status"`
	ScheduledStart string  `json:"scheduled_start"`
	Planned        string  `json:"planned"`
	Real           *string `json:"real"`
	Estimated      string  `json:"estimated"`
	Difference     string  `json:"difference"`
	Overrun        bool    `json:"overrun"`
	Elapsed        *string `json:"elapsed,omitempty"`
	Remaining      *string `json:"remaining,omitempty"`
	Progress       *int    `json:"progress,omitempty"`
}

type commentJSON struct {
	ID         string `json:"id"`
	RundownID  string `json:"rundown_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name,omitempty"`
	Text       string `json:"text"`
	CreatedAt  string `json:"created_at"`
}

type logEntryJSON struct {
	ID         string `json:"id"`
	Timestamp  string `json:"timestamp"`
	ActorID    string `json:"actor_id,omitempty"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Action     string `json:"action"`
	FieldName  string `json:"field_name,omitempty"`
	OldValue   string `json:"old_value,omitempty"`
	NewValue   string `json:"new_value,omitempty"`
}

func hmsPtr(v *int) *string {
	if v == nil {
		return nil
	}
	s := duration.FormatHMS(*v)
	return &s
}

func toUserJSON(u *primary.User) userJSON {
	return userJSON{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func toProgramJSON(p *primary.Program) programJSON {
	return programJSON{
		ID:              p.ID,
		Name:            p.Name,
		DefaultDuration: duration.FormatHMS(p.DefaultDuration),
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
	}
}

func toHeaderJSON(r *primary.Rundown) rundownHeaderJSON {
	presenters := r.Presenters
	if presenters == nil {
		presenters = []string{}
	}
	return rundownHeaderJSON{
		ID:          r.ID,
		ProgramID:   r.ProgramID,
		ProgramName: r.ProgramName,
		AirDate:     r.AirDate,
		AirTime:     r.AirTime,
		Editor:      r.Editor,
		Presenters:  presenters,
		Mode:        r.Mode,
		Status:      r.Status,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

func toRundownJSON(r *primary.Rundown) rundownJSON {
	out := rundownJSON{
		rundownHeaderJSON: toHeaderJSON(r),
		Planned:           duration.FormatHMS(r.Planned),
		Real:              hmsPtr(r.Real),
		Blocks:            make([]blockJSON, 0, len(r.Blocks)),
	}
	for _, b := range r.Blocks {
		bj := blockJSON{
			ID:      b.ID,
			Order:   b.Order,
			Title:   b.Title,
			Planned: duration.FormatHMS(b.Planned),
			Real:    hmsPtr(b.Real),
			Items:   make([]itemJSON, 0, len(b.Items)),
		}
		for _, it := range b.Items {
			bj.Items = append(bj.Items, itemJSON{
				ID:          it.ID,
				Order:       it.Order,
				Type:        it.Type,
				Title:       it.Title,
				Details:     it.Details,
				Talent:      it.Talent,
				Reporter:    it.Reporter,
				VideoEditor: it.VideoEditor,
				Source:      it.Source,
				Planned:     duration.FormatHMS(it.Planned),
				Real:        hmsPtr(it.Real),
				Status:      it.Status,
				ReportID:    it.ReportID,
			})
		}
		out.Blocks = append(out.Blocks, bj)
	}
	return out
}

func toMutationJSON(m *primary.MutationResponse) mutationJSON {
	return mutationJSON{EntityID: m.EntityID, Rundown: toRundownJSON(m.Rundown)}
}

func toTimingJSON(t *primary.Timing) timingJSON {
	out := timingJSON{
		RundownID:      t.RundownID,
		Status:         t.Status,
		ScheduledStart: t.ScheduledStart.Format(time.RFC3339),
		Planned:        duration.FormatHMS(t.Planned),
		Real:           hmsPtr(t.Real),
		Estimated:      duration.FormatHMS(t.Estimated),
		Difference:     duration.FormatSigned(t.Difference),
		Overrun:        t.Overrun,
		Elapsed:        hmsPtr(t.Elapsed),
		Progress:       t.Progress,
	}
	if t.Remaining != nil {
		s := duration.FormatSigned(*t.Remaining)
		out.Remaining = &s
	}
	return out
}

func toCommentJSON(c *primary.Comment) commentJSON {
	return commentJSON{
		ID:         c.ID,
		RundownID:  c.RundownID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
}

func toLogEntryJSON(e *primary.LogEntry) logEntryJSON {
	return logEntryJSON{
		ID:         e.ID,
		Timestamp:  e.Timestamp,
		ActorID:    e.ActorID,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     e.Action,
		FieldName:  e.FieldName,
		OldValue:   e.OldValue,
		NewValue:   e.NewValue,
	}
}
