package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/newsroom/internal/core/duration"
	"github.com/example/newsroom/internal/core/rundown"
	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/logging"
	"github.com/example/newsroom/internal/metrics"
	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/ports/secondary"
)

// DefaultAirTime is the scheduled time given to provisioned rundowns.
const DefaultAirTime = "20:00:00"

// RundownOptions carries the settings the rundown service needs.
type RundownOptions struct {
	DefaultAirTime string         // HH:MM:SS; DefaultAirTime when empty
	Location       *time.Location // timezone of air dates; UTC when nil
}

// RundownServiceImpl implements the RundownService interface.
type RundownServiceImpl struct {
	programRepo secondary.ProgramRepository
	rundownRepo secondary.RundownRepository
	blockRepo   secondary.BlockRepository
	itemRepo    secondary.ItemRepository
	identity    secondary.IdentityProvider
	logWriter   secondary.LogWriter
	airTime     string
	location    *time.Location
}

// NewRundownService creates a new RundownService with injected dependencies.
func NewRundownService(
	programRepo secondary.ProgramRepository,
	rundownRepo secondary.RundownRepository,
	blockRepo secondary.BlockRepository,
	itemRepo secondary.ItemRepository,
	identity secondary.IdentityProvider,
	logWriter secondary.LogWriter,
	opts RundownOptions,
) *RundownServiceImpl {
	airTime := opts.DefaultAirTime
	if airTime == "" {
		airTime = DefaultAirTime
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &RundownServiceImpl{
		programRepo: programRepo,
		rundownRepo: rundownRepo,
		blockRepo:   blockRepo,
		itemRepo:    itemRepo,
		identity:    identity,
		logWriter:   logWriter,
		airTime:     airTime,
		location:    loc,
	}
}

// LoadRundown returns the live rundown for (air date, program), provisioning
// an empty draft if the slot is empty.
func (s *RundownServiceImpl) LoadRundown(ctx context.Context, req primary.LoadRundownRequest) (*primary.LoadRundownResponse, error) {
	if err := validateAirDate(req.AirDate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ProgramID) == "" {
		return nil, errs.InvalidInput("program is required")
	}

	program, err := s.programRepo.GetByID(ctx, req.ProgramID)
	if err != nil {
		return nil, err
	}
	if !program.Active {
		return nil, &errs.Error{
			Kind:   errs.KindNotFound,
			Entity: "program",
			ID:     program.ID,
			Msg:    fmt.Sprintf("program %s is not active", program.ID),
		}
	}

	existing, err := s.rundownRepo.FindBySlot(ctx, req.ProgramID, req.AirDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		r, err := s.hydrate(ctx, existing)
		if err != nil {
			return nil, err
		}
		return &primary.LoadRundownResponse{Rundown: rundownView(r)}, nil
	}

	created, err := s.provision(ctx, req)
	if errs.KindOf(err) == errs.KindConflict {
		// Lost a race for the slot: the winner is the rundown.
		winner, findErr := s.rundownRepo.FindBySlot(ctx, req.ProgramID, req.AirDate)
		if findErr != nil {
			return nil, findErr
		}
		if winner == nil {
			return nil, err
		}
		r, err := s.hydrate(ctx, winner)
		if err != nil {
			return nil, err
		}
		return &primary.LoadRundownResponse{Rundown: rundownView(r)}, nil
	}
	if err != nil {
		return nil, err
	}

	r, err := s.hydrate(ctx, created)
	if err != nil {
		return nil, err
	}
	return &primary.LoadRundownResponse{Rundown: rundownView(r), Created: true}, nil
}

// provision creates the rundown record and its optional initial blocks.
// Blocks are created one by one after the rundown; there is no rollback.
func (s *RundownServiceImpl) provision(ctx context.Context, req primary.LoadRundownRequest) (*secondary.RundownRecord, error) {
	logger := logging.FromContext(ctx, "rundown")

	nextID, err := s.rundownRepo.GetNextID(ctx)
	if err != nil {
		return nil, err
	}

	createdBy := ""
	if user, err := s.identity.CurrentUser(ctx); err != nil {
		return nil, err
	} else if user != nil {
		createdBy = user.UserID
	}

	record := &secondary.RundownRecord{
		ID:         nextID,
		ProgramID:  req.ProgramID,
		AirDate:    req.AirDate,
		AirTime:    s.airTime,
		Presenters: []string{},
		Mode:       string(rundown.DefaultMode()),
		Status:     string(rundown.InitialStatus()),
		CreatedBy:  createdBy,
	}
	if err := s.rundownRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	metrics.RecordProvisioned()
	logger.Info().
		Str("rundown_id", record.ID).
		Str("program_id", record.ProgramID).
		Str("air_date", record.AirDate).
		Msg("rundown provisioned")
	if err := s.logWriter.LogCreate(ctx, "rundown", record.ID); err != nil {
		return nil, err
	}

	for i, title := range req.InitialBlocks {
		title = strings.TrimSpace(title)
		if title == "" {
			title = fmt.Sprintf("Bloco %d", i+1)
		}
		blockID, err := s.blockRepo.GetNextID(ctx)
		if err == nil {
			err = s.blockRepo.Create(ctx, &secondary.BlockRecord{
				ID:        blockID,
				RundownID: record.ID,
				Order:     i + 1,
				Title:     title,
			})
		}
		if err != nil {
			logger.Warn().Err(err).Str("rundown_id", record.ID).Int("blocks_created", i).Msg("initial blocks incomplete")
			return nil, &errs.Error{
				Kind:   errs.KindPersistence,
				Entity: "rundown",
				ID:     record.ID,
				Msg: fmt.Sprintf("rundown %s was created but only %d of %d initial blocks were saved; reload before retrying",
					record.ID, i, len(req.InitialBlocks)),
				Err: err,
			}
		}
	}

	return s.rundownRepo.GetByID(ctx, record.ID, false)
}

// GetRundown retrieves a fully hydrated rundown by ID.
func (s *RundownServiceImpl) GetRundown(ctx context.Context, rundownID string) (*primary.Rundown, error) {
	r, err := s.loadTree(ctx, rundownID)
	if err != nil {
		return nil, err
	}
	return rundownView(r), nil
}

// ListRundowns retrieves rundown headers, newest air date first.
func (s *RundownServiceImpl) ListRundowns(ctx context.Context, filters primary.RundownFilters) ([]*primary.Rundown, error) {
	for _, d := range []string{filters.From, filters.To} {
		if d != "" {
			if err := validateAirDate(d); err != nil {
				return nil, err
			}
		}
	}

	records, err := s.rundownRepo.List(ctx, secondary.RundownFilters{
		ProgramID: filters.ProgramID,
		From:      filters.From,
		To:        filters.To,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, err
	}

	rundowns := make([]*primary.Rundown, len(records))
	for i, rec := range records {
		rundowns[i] = rundownHeader(rec)
	}
	return rundowns, nil
}

// UpdateRundownDetails changes the header fields of a rundown.
func (s *RundownServiceImpl) UpdateRundownDetails(ctx context.Context, req primary.UpdateRundownRequest) (*primary.Rundown, error) {
	record, err := s.rundownRepo.GetByID(ctx, req.RundownID, false)
	if err != nil {
		return nil, err
	}

	var changes []fieldChange

	if req.Editor != nil {
		if editor := strings.TrimSpace(*req.Editor); editor != record.Editor {
			changes = append(changes, fieldChange{"editor", record.Editor, editor})
			record.Editor = editor
		}
	}
	if req.Presenters != nil {
		presenters := make([]string, 0, len(*req.Presenters))
		for _, p := range *req.Presenters {
			if p = strings.TrimSpace(p); p != "" {
				presenters = append(presenters, p)
			}
		}
		old := strings.Join(record.Presenters, ", ")
		if joined := strings.Join(presenters, ", "); joined != old {
			changes = append(changes, fieldChange{"presenters", old, joined})
		}
		record.Presenters = presenters
	}
	if req.Mode != nil && *req.Mode != record.Mode {
		if !rundown.ValidMode(rundown.Mode(*req.Mode)) {
			return nil, errs.InvalidInput("invalid mode %q (want live or recorded)", *req.Mode)
		}
		changes = append(changes, fieldChange{"mode", record.Mode, *req.Mode})
		record.Mode = *req.Mode
	}
	if req.AirTime != nil && *req.AirTime != record.AirTime {
		if err := validateAirTime(*req.AirTime); err != nil {
			return nil, err
		}
		changes = append(changes, fieldChange{"air_time", record.AirTime, *req.AirTime})
		record.AirTime = *req.AirTime
	}

	if len(changes) > 0 {
		if err := s.rundownRepo.Update(ctx, record); err != nil {
			return nil, err
		}
		for _, c := range changes {
			if err := s.logWriter.LogUpdate(ctx, "rundown", record.ID, c.field, c.from, c.to); err != nil {
				return nil, err
			}
		}
	}

	return s.GetRundown(ctx, record.ID)
}

// TransitionRundown moves a rundown through the status workflow. Force
// applies any known target and is logged at warn.
func (s *RundownServiceImpl) TransitionRundown(ctx context.Context, req primary.TransitionRundownRequest) (*primary.TransitionRundownResponse, error) {
	record, err := s.rundownRepo.GetByID(ctx, req.RundownID, false)
	if err != nil {
		return nil, err
	}

	current := rundown.Status(record.Status)
	target := rundown.Status(req.Target)

	var next rundown.Status
	if req.Force {
		next, err = rundown.ForceTransitionRundown(current, target)
	} else {
		next, err = rundown.TransitionRundown(current, target)
	}
	if err != nil {
		return nil, err
	}

	resp := &primary.TransitionRundownResponse{
		From:   string(current),
		To:     string(next),
		Forced: req.Force,
	}

	if next != current {
		record.Status = string(next)
		if err := s.rundownRepo.Update(ctx, record); err != nil {
			return nil, err
		}

		field := "status"
		logger := logging.FromContext(ctx, "rundown")
		if req.Force {
			field = "status (forced)"
			logger.Warn().Str("rundown_id", record.ID).Str("from", string(current)).Str("to", string(next)).Msg("forced status transition")
		} else {
			logger.Info().Str("rundown_id", record.ID).Str("from", string(current)).Str("to", string(next)).Msg("status transition")
		}
		metrics.RecordTransition(string(current), string(next), req.Force)
		if err := s.logWriter.LogUpdate(ctx, "rundown", record.ID, field, string(current), string(next)); err != nil {
			return nil, err
		}
		resp.Changed = true
	}

	view, err := s.GetRundown(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	resp.Rundown = view
	return resp, nil
}

// DeleteRundown soft-deletes a rundown.
func (s *RundownServiceImpl) DeleteRundown(ctx context.Context, rundownID string) error {
	if err := s.rundownRepo.SoftDelete(ctx, rundownID); err != nil {
		return err
	}
	logging.FromContext(ctx, "rundown").Info().Str("rundown_id", rundownID).Msg("rundown moved to trash")
	return s.logWriter.LogDelete(ctx, "rundown", rundownID)
}

// Timing evaluates the live timing view at now.
func (s *RundownServiceImpl) Timing(ctx context.Context, rundownID string, now time.Time) (*primary.Timing, error) {
	r, err := s.loadTree(ctx, rundownID)
	if err != nil {
		return nil, err
	}
	t, err := rundown.ComputeTiming(r, now, s.location)
	if err != nil {
		return nil, errs.InvalidInput("rundown %s: %v", rundownID, err)
	}
	return timingView(r, t), nil
}

// loadTree reads a live rundown and hydrates it.
func (s *RundownServiceImpl) loadTree(ctx context.Context, rundownID string) (*rundown.Rundown, error) {
	record, err := s.rundownRepo.GetByID(ctx, rundownID, false)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, record)
}

// hydrate fetches blocks and items and returns the sorted tree. A failed
// read fails the whole load; no partial tree is returned.
func (s *RundownServiceImpl) hydrate(ctx context.Context, record *secondary.RundownRecord) (*rundown.Rundown, error) {
	r := recordToRundown(record)

	blockRecords, err := s.blockRepo.ListByRundown(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	r.Blocks = make([]*rundown.Block, 0, len(blockRecords))
	byID := make(map[string]*rundown.Block, len(blockRecords))
	ids := make([]string, 0, len(blockRecords))
	for _, br := range blockRecords {
		b := recordToBlock(br)
		r.Blocks = append(r.Blocks, b)
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	itemRecords, err := s.itemRepo.ListByBlocks(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, ir := range itemRecords {
		if b, ok := byID[ir.BlockID]; ok {
			b.Items = append(b.Items, recordToItem(ir))
		}
	}

	rundown.SortTree(r)
	return r, nil
}

func validateAirDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return errs.InvalidInput("invalid air date %q (want YYYY-MM-DD)", date)
	}
	return nil
}

func validateAirTime(value string) error {
	secs, err := duration.ParseHMS(value)
	if err != nil || secs >= 24*60*60 {
		return errs.InvalidInput("invalid air time %q (want HH:MM:SS)", value)
	}
	return nil
}

// Ensure RundownServiceImpl implements the interface.
var _ primary.RundownService = (*RundownServiceImpl)(nil)
