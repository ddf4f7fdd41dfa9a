package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/primary"
)

// ============================================================================
// Auth
// ============================================================================

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":      resp.Token,
		"expires_at": resp.ExpiresAt,
		"user":       toUserJSON(resp.User),
	})
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Auth.CurrentUser(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil {
		writeError(w, r, errs.Unauthenticated("not signed in"))
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(user))
}

// ============================================================================
// Programs
// ============================================================================

func (h *handler) listPrograms(w http.ResponseWriter, r *http.Request) {
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))
	programs, err := h.svc.Programs.ListPrograms(r.Context(), all)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]programJSON, 0, len(programs))
	for _, p := range programs {
		out = append(out, toProgramJSON(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) createProgram(w http.ResponseWriter, r *http.Request) {
	var req createProgramRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.svc.Programs.CreateProgram(r.Context(), primary.CreateProgramRequest{
		Name:            req.Name,
		DefaultDuration: seconds(req.DefaultDuration),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProgramJSON(resp.Program))
}

// ============================================================================
// Rundowns
// ============================================================================

func (h *handler) loadRundown(w http.ResponseWriter, r *http.Request) {
	var req loadRundownRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.svc.Rundowns.LoadRundown(r.Context(), primary.LoadRundownRequest{
		ProgramID:     req.ProgramID,
		AirDate:       req.AirDate,
		InitialBlocks: req.InitialBlocks,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]any{
		"created": resp.Created,
		"rundown": toRundownJSON(resp.Rundown),
	})
}

func (h *handler) listRundowns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	rundowns, err := h.svc.Rundowns.ListRundowns(r.Context(), primary.RundownFilters{
		ProgramID: q.Get("program_id"),
		From:      q.Get("from"),
		To:        q.Get("to"),
		Limit:     limit,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]rundownHeaderJSON, 0, len(rundowns))
	for _, rd := range rundowns {
		out = append(out, toHeaderJSON(rd))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getRundown(w http.ResponseWriter, r *http.Request) {
	rd, err := h.svc.Rundowns.GetRundown(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRundownJSON(rd))
}

func (h *handler) updateRundown(w http.ResponseWriter, r *http.Request) {
	var req updateRundownRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rd, err := h.svc.Rundowns.UpdateRundownDetails(r.Context(), primary.UpdateRundownRequest{
		RundownID:  chi.URLParam(r, "id"),
		Editor:     req.Editor,
		Presenters: req.Presenters,
		Mode:       req.Mode,
		AirTime:    req.AirTime,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRundownJSON(rd))
}

func (h *handler) deleteRundown(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Rundowns.DeleteRundown(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) transitionRundown(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.svc.Rundowns.TransitionRundown(r.Context(), primary.TransitionRundownRequest{
		RundownID: chi.URLParam(r, "id"),
		Target:    req.Status,
		Force:     req.Force,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"from":    resp.From,
		"to":      resp.To,
		"changed": resp.Changed,
		"forced":  resp.Forced,
		"rundown": toRundownJSON(resp.Rundown),
	})
}

func (h *handler) timing(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	if at := r.URL.Query().Get("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			writeError(w, r, errs.InvalidInput("invalid at %q: want RFC3339", at))
			return
		}
		now = parsed
	}
	t, err := h.svc.Rundowns.Timing(r.Context(), chi.URLParam(r, "id"), now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTimingJSON(t))
}

// ============================================================================
// Blocks and items
// ============================================================================

func (h *handler) addBlock(w http.ResponseWriter, r *http.Request) {
	var req addBlockRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.svc.Rundowns.AddBlock(r.Context(), primary.AddBlockRequest{
		RundownID: chi.URLParam(r, "id"),
		Title:     req.Title,
		Index:     req.Index,
	})
	h.writeMutation(w, r, http.StatusCreated, resp, err)
}

func (h *handler) renameBlock(w http.ResponseWriter, r *http.Request) {
	var req renameBlockRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.svc.Rundowns.RenameBlock(r.Context(), chi.URLParam(r, "id"), req.Title)
	h.writeMutation(w, r, http.StatusOK, resp, err)
}

func (h *handler) moveBlock(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.svc.Rundowns.MoveBlock(r.Context(), chi.URLParam(r, "id"), *req.Index)
	h.writeMutation(w, r, http.StatusOK, resp, err)
}

func (h *handler) deleteBlock(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Rundowns.DeleteBlock(r.Context(), chi.URLParam(r, "id"))
	h.writeMutation(w, r, http.StatusOK, resp, err)
}

func (h *handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.svc.Rundowns.AddItem(r.Context(), primary.AddItemRequest{
		BlockID:     chi.URLParam(r, "id"),
		Index:       req.Index,
		Type:        req.Type,
		Title:       req.Title,
		Details:     req.Details,
		Talent:      req.Talent,
		Reporter:    req.Reporter,
		VideoEditor: req.VideoEditor,
		Source:      req.Source,
		Planned:     seconds(req.Planned),
		Real:        optionalSeconds(req.Real),
		Status:      req.Status,
		ReportID:    req.ReportID,
	})
	h.writeMutation(w, r, http.StatusCreated, resp, err)
}

func (h *handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.svc.Rundowns.UpdateItem(r.Context(), primary.UpdateItemRequest{
		ItemID:      chi.URLParam(r, "id"),
		Type:        req.Type,
		Title:       req.Title,
		Details:     req.Details,
		Talent:      req.Talent,
		Reporter:    req.Reporter,
		VideoEditor: req.VideoEditor,
		Source:      req.Source,
		Planned:     optionalSeconds(req.Planned),
		Real:        optionalSeconds(req.Real),
		ClearReal:   req.ClearReal,
		ReportID:    req.ReportID,
	})
	h.writeMutation(w, r, http.StatusOK, resp, err)
}

func (h *handler) setItemStatus(w http.ResponseWriter, r *http.Request) {
	var req itemStatusRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.svc.Rundowns.SetItemStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	h.writeMutation(w, r, http.StatusOK, resp, err)
}

func (h *handler) moveItem(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.svc.Rundowns.MoveItem(r.Context(), chi.URLParam(r, "id"), *req.Index)
	h.writeMutation(w, r, http.StatusOK, resp, err)
}

func (h *handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Rundowns.DeleteItem(r.Context(), chi.URLParam(r, "id"))
	h.writeMutation(w, r, http.StatusOK, resp, err)
}

func (h *handler) writeMutation(w http.ResponseWriter, r *http.Request, status int, resp *primary.MutationResponse, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, toMutationJSON(resp))
}

// ============================================================================
// Comments, trash and audit
// ============================================================================

func (h *handler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.Comments.ListComments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]commentJSON, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentJSON(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) addComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.svc.Comments.AddComment(r.Context(), chi.URLParam(r, "id"), req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentJSON(c))
}

func (h *handler) listTrash(w http.ResponseWriter, r *http.Request) {
	rundowns, err := h.svc.Trash.ListDeleted(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]rundownHeaderJSON, 0, len(rundowns))
	for _, rd := range rundowns {
		out = append(out, toHeaderJSON(rd))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) restoreRundown(w http.ResponseWriter, r *http.Request) {
	rd, err := h.svc.Trash.Restore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toHeaderJSON(rd))
}

func (h *handler) listAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.svc.Logs.ListLogs(r.Context(), primary.LogFilters{
		EntityType: q.Get("entity_type"),
		EntityID:   q.Get("entity_id"),
		ActorID:    q.Get("actor_id"),
		Action:     q.Get("action"),
		Limit:      limit,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]logEntryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLogEntryJSON(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func queryInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errs.InvalidInput("invalid limit %q", raw)
	}
	return n, nil
}
