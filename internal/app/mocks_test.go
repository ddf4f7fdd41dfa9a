package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockProgramRepository implements secondary.ProgramRepository for testing.
type mockProgramRepository struct {
	programs  map[string]*secondary.ProgramRecord
	nextID    int
	createErr error
}

func newMockProgramRepository() *mockProgramRepository {
	return &mockProgramRepository{
		programs: make(map[string]*secondary.ProgramRecord),
		nextID:   1,
	}
}

func (m *mockProgramRepository) Create(ctx context.Context, program *secondary.ProgramRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	stored := *program
	stored.CreatedAt = "2024-01-01T00:00:00Z"
	m.programs[program.ID] = &stored
	return nil
}

func (m *mockProgramRepository) GetByID(ctx context.Context, id string) (*secondary.ProgramRecord, error) {
	p, ok := m.programs[id]
	if !ok {
		return nil, errs.NotFound("program", id)
	}
	c := *p
	return &c, nil
}

func (m *mockProgramRepository) List(ctx context.Context, filters secondary.ProgramFilters) ([]*secondary.ProgramRecord, error) {
	var result []*secondary.ProgramRecord
	for _, p := range m.programs {
		if filters.ActiveOnly && !p.Active {
			continue
		}
		c := *p
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockProgramRepository) SetActive(ctx context.Context, id string, active bool) error {
	p, ok := m.programs[id]
	if !ok {
		return errs.NotFound("program", id)
	}
	p.Active = active
	return nil
}

func (m *mockProgramRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("PROG-%03d", id), nil
}

// mockRundownRepository implements secondary.RundownRepository for testing.
type mockRundownRepository struct {
	rundowns  map[string]*secondary.RundownRecord
	nextID    int
	createErr error
	// raceWinner is stored on the next Create, which then fails with a slot conflict.
	raceWinner *secondary.RundownRecord
}

func newMockRundownRepository() *mockRundownRepository {
	return &mockRundownRepository{
		rundowns: make(map[string]*secondary.RundownRecord),
		nextID:   1,
	}
}

func (m *mockRundownRepository) Create(ctx context.Context, rundown *secondary.RundownRecord) error {
	if m.raceWinner != nil {
		winner := m.raceWinner
		m.raceWinner = nil
		m.rundowns[winner.ID] = winner
		return errs.Conflict("rundown", rundown.ID, "slot taken")
	}
	if m.createErr != nil {
		return m.createErr
	}
	for _, r := range m.rundowns {
		if r.DeletedAt == "" && r.ProgramID == rundown.ProgramID && r.AirDate == rundown.AirDate {
			return errs.Conflict("rundown", rundown.ID, "slot taken")
		}
	}
	stored := *rundown
	stored.CreatedAt = "2024-01-01T00:00:00Z"
	m.rundowns[rundown.ID] = &stored
	return nil
}

func (m *mockRundownRepository) GetByID(ctx context.Context, id string, includeDeleted bool) (*secondary.RundownRecord, error) {
	r, ok := m.rundowns[id]
	if !ok || (r.DeletedAt != "" && !includeDeleted) {
		return nil, errs.NotFound("rundown", id)
	}
	c := *r
	return &c, nil
}

func (m *mockRundownRepository) FindBySlot(ctx context.Context, programID, airDate string) (*secondary.RundownRecord, error) {
	for _, r := range m.rundowns {
		if r.DeletedAt == "" && r.ProgramID == programID && r.AirDate == airDate {
			c := *r
			return &c, nil
		}
	}
	return nil, nil
}

func (m *mockRundownRepository) List(ctx context.Context, filters secondary.RundownFilters) ([]*secondary.RundownRecord, error) {
	var result []*secondary.RundownRecord
	for _, r := range m.rundowns {
		if r.DeletedAt != "" {
			continue
		}
		if filters.ProgramID != "" && r.ProgramID != filters.ProgramID {
			continue
		}
		if filters.From != "" && r.AirDate < filters.From {
			continue
		}
		if filters.To != "" && r.AirDate > filters.To {
			continue
		}
		c := *r
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AirDate > result[j].AirDate })
	return result, nil
}

func (m *mockRundownRepository) ListDeleted(ctx context.Context) ([]*secondary.RundownRecord, error) {
	var result []*secondary.RundownRecord
	for _, r := range m.rundowns {
		if r.DeletedAt != "" {
			c := *r
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DeletedAt > result[j].DeletedAt })
	return result, nil
}

func (m *mockRundownRepository) Update(ctx context.Context, rundown *secondary.RundownRecord) error {
	if _, ok := m.rundowns[rundown.ID]; !ok {
		return errs.NotFound("rundown", rundown.ID)
	}
	stored := *rundown
	m.rundowns[rundown.ID] = &stored
	return nil
}

func (m *mockRundownRepository) SoftDelete(ctx context.Context, id string) error {
	r, ok := m.rundowns[id]
	if !ok || r.DeletedAt != "" {
		return errs.NotFound("rundown", id)
	}
	r.DeletedAt = time.Now().UTC().Format(time.RFC3339)
	return nil
}

func (m *mockRundownRepository) Restore(ctx context.Context, id string) error {
	r, ok := m.rundowns[id]
	if !ok {
		return errs.NotFound("rundown", id)
	}
	for _, other := range m.rundowns {
		if other.ID != id && other.DeletedAt == "" && other.ProgramID == r.ProgramID && other.AirDate == r.AirDate {
			return errs.Conflict("rundown", id, "slot %s %s is taken by %s", r.ProgramID, r.AirDate, other.ID)
		}
	}
	r.DeletedAt = ""
	return nil
}

func (m *mockRundownRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("RD-%03d", id), nil
}

// mockBlockRepository implements secondary.BlockRepository for testing.
type mockBlockRepository struct {
	blocks    map[string]*secondary.BlockRecord
	items     *mockItemRepository // cascade target for Delete
	nextID    int
	seq       int64
	createErr error
	// failOrders makes UpdateOrders fail for these block IDs.
	failOrders map[string]bool
	orderCalls [][]secondary.OrderUpdate
}

func newMockBlockRepository(items *mockItemRepository) *mockBlockRepository {
	return &mockBlockRepository{
		blocks:     make(map[string]*secondary.BlockRecord),
		items:      items,
		nextID:     1,
		failOrders: make(map[string]bool),
	}
}

func (m *mockBlockRepository) Create(ctx context.Context, block *secondary.BlockRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	stored := *block
	stored.Seq = m.seq
	m.blocks[block.ID] = &stored
	return nil
}

func (m *mockBlockRepository) GetByID(ctx context.Context, id string) (*secondary.BlockRecord, error) {
	b, ok := m.blocks[id]
	if !ok {
		return nil, errs.NotFound("block", id)
	}
	c := *b
	return &c, nil
}

func (m *mockBlockRepository) ListByRundown(ctx context.Context, rundownID string) ([]*secondary.BlockRecord, error) {
	var result []*secondary.BlockRecord
	for _, b := range m.blocks {
		if b.RundownID == rundownID {
			c := *b
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].Seq < result[j].Seq
	})
	return result, nil
}

func (m *mockBlockRepository) Update(ctx context.Context, block *secondary.BlockRecord) error {
	if _, ok := m.blocks[block.ID]; !ok {
		return errs.NotFound("block", block.ID)
	}
	stored := *block
	m.blocks[block.ID] = &stored
	return nil
}

func (m *mockBlockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.blocks[id]; !ok {
		return errs.NotFound("block", id)
	}
	delete(m.blocks, id)
	if m.items != nil {
		for itemID, it := range m.items.items {
			if it.BlockID == id {
				delete(m.items.items, itemID)
			}
		}
	}
	return nil
}

func (m *mockBlockRepository) UpdateOrders(ctx context.Context, updates []secondary.OrderUpdate) error {
	m.orderCalls = append(m.orderCalls, updates)
	return applyMockOrders("block", updates, m.failOrders, func(id string, order int) bool {
		b, ok := m.blocks[id]
		if ok {
			b.Order = order
		}
		return ok
	})
}

func (m *mockBlockRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("BLK-%03d", id), nil
}

// mockItemRepository implements secondary.ItemRepository for testing.
type mockItemRepository struct {
	items      map[string]*secondary.ItemRecord
	nextID     int
	seq        int64
	failOrders map[string]bool
}

func newMockItemRepository() *mockItemRepository {
	return &mockItemRepository{
		items:      make(map[string]*secondary.ItemRecord),
		nextID:     1,
		failOrders: make(map[string]bool),
	}
}

func (m *mockItemRepository) Create(ctx context.Context, item *secondary.ItemRecord) error {
	m.seq++
	stored := *item
	stored.Seq = m.seq
	m.items[item.ID] = &stored
	return nil
}

func (m *mockItemRepository) GetByID(ctx context.Context, id string) (*secondary.ItemRecord, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, errs.NotFound("item", id)
	}
	c := *it
	return &c, nil
}

func (m *mockItemRepository) ListByBlock(ctx context.Context, blockID string) ([]*secondary.ItemRecord, error) {
	return m.ListByBlocks(ctx, []string{blockID})
}

func (m *mockItemRepository) ListByBlocks(ctx context.Context, blockIDs []string) ([]*secondary.ItemRecord, error) {
	want := make(map[string]bool, len(blockIDs))
	for _, id := range blockIDs {
		want[id] = true
	}
	var result []*secondary.ItemRecord
	for _, it := range m.items {
		if want[it.BlockID] {
			c := *it
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].BlockID != result[j].BlockID {
			return result[i].BlockID < result[j].BlockID
		}
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].Seq < result[j].Seq
	})
	return result, nil
}

func (m *mockItemRepository) Update(ctx context.Context, item *secondary.ItemRecord) error {
	existing, ok := m.items[item.ID]
	if !ok {
		return errs.NotFound("item", item.ID)
	}
	stored := *item
	stored.Seq = existing.Seq
	m.items[item.ID] = &stored
	return nil
}

func (m *mockItemRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return errs.NotFound("item", id)
	}
	delete(m.items, id)
	return nil
}

func (m *mockItemRepository) UpdateOrders(ctx context.Context, updates []secondary.OrderUpdate) error {
	return applyMockOrders("item", updates, m.failOrders, func(id string, order int) bool {
		it, ok := m.items[id]
		if ok {
			it.Order = order
		}
		return ok
	})
}

func (m *mockItemRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("ITEM-%03d", id), nil
}

// applyMockOrders mirrors the adapter: one write per pair, partial failures reported distinctly.
func applyMockOrders(entity string, updates []secondary.OrderUpdate, fail map[string]bool, apply func(string, int) bool) error {
	var applied []string
	failed := make(map[string]error)
	for _, u := range updates {
		if fail[u.ID] || !apply(u.ID, u.Order) {
			failed[u.ID] = errors.New("write failed")
			continue
		}
		applied = append(applied, u.ID)
	}
	switch {
	case len(failed) == 0:
		return nil
	case len(applied) == 0:
		return errs.Persistence("update "+entity+" order", errors.New("all writes failed"))
	default:
		return &errs.PartialOrderError{Entity: entity, Applied: applied, Failed: failed}
	}
}

// mockCommentRepository implements secondary.CommentRepository for testing.
type mockCommentRepository struct {
	comments []*secondary.CommentRecord
	nextID   int
}

func newMockCommentRepository() *mockCommentRepository {
	return &mockCommentRepository{nextID: 1}
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *secondary.CommentRecord) error {
	stored := *comment
	stored.CreatedAt = fmt.Sprintf("2024-05-01T18:00:%02dZ", len(m.comments))
	m.comments = append(m.comments, &stored)
	return nil
}

func (m *mockCommentRepository) ListByRundown(ctx context.Context, rundownID string) ([]*secondary.CommentRecord, error) {
	var result []*secondary.CommentRecord
	for _, c := range m.comments {
		if c.RundownID == rundownID {
			cp := *c
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (m *mockCommentRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("CMT-%03d", id), nil
}

// mockUserRepository implements secondary.UserRepository for testing.
type mockUserRepository struct {
	users  map[string]*secondary.UserRecord
	nextID int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[string]*secondary.UserRecord),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	stored := *user
	stored.CreatedAt = "2024-01-01T00:00:00Z"
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errs.NotFound("user", id)
	}
	c := *u
	return &c, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*secondary.UserRecord, error) {
	for _, u := range m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.NotFound("user", email)
}

func (m *mockUserRepository) List(ctx context.Context) ([]*secondary.UserRecord, error) {
	var result []*secondary.UserRecord
	for _, u := range m.users {
		c := *u
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("USR-%03d", id), nil
}

// mockAuditLogRepository implements secondary.AuditLogRepository for testing.
type mockAuditLogRepository struct {
	entries []*secondary.AuditLogRecord
	nextID  int
}

func newMockAuditLogRepository() *mockAuditLogRepository {
	return &mockAuditLogRepository{nextID: 1}
}

func (m *mockAuditLogRepository) Create(ctx context.Context, entry *secondary.AuditLogRecord) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditLogRepository) List(ctx context.Context, filters secondary.AuditLogFilters) ([]*secondary.AuditLogRecord, error) {
	var result []*secondary.AuditLogRecord
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if filters.EntityType != "" && e.EntityType != filters.EntityType {
			continue
		}
		if filters.EntityID != "" && e.EntityID != filters.EntityID {
			continue
		}
		if filters.ActorID != "" && e.ActorID != filters.ActorID {
			continue
		}
		if filters.Action != "" && e.Action != filters.Action {
			continue
		}
		result = append(result, e)
	}
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockAuditLogRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("LOG-%04d", id), nil
}

// mockLogWriter implements secondary.LogWriter and records what was written.
type mockLogWriter struct {
	entries []string
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, fmt.Sprintf("create %s %s", entityType, entityID))
	return nil
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	m.entries = append(m.entries, fmt.Sprintf("update %s %s %s %s->%s", entityType, entityID, fieldName, oldValue, newValue))
	return nil
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, fmt.Sprintf("delete %s %s", entityType, entityID))
	return nil
}

// mockSessionGateway implements secondary.SessionGateway for testing.
type mockSessionGateway struct {
	current   *secondary.Identity
	passwords map[string]string // email -> password
	users     *mockUserRepository
	tokens    map[string]*secondary.Identity
	loggedOut bool
}

func newMockSessionGateway(users *mockUserRepository) *mockSessionGateway {
	return &mockSessionGateway{
		passwords: make(map[string]string),
		users:     users,
		tokens:    make(map[string]*secondary.Identity),
	}
}

func (m *mockSessionGateway) CurrentUser(ctx context.Context) (*secondary.Identity, error) {
	return m.current, nil
}

func (m *mockSessionGateway) Login(ctx context.Context, email, password string) (*secondary.Session, error) {
	if pw, ok := m.passwords[email]; !ok || pw != password {
		return nil, errs.Unauthenticated("invalid email or password")
	}
	u, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	identity := secondary.Identity{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
	token := "token-" + u.ID
	m.tokens[token] = &identity
	m.current = &identity
	return &secondary.Session{
		User:      identity,
		Token:     token,
		ExpiresAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (m *mockSessionGateway) Logout(ctx context.Context) error {
	m.current = nil
	m.loggedOut = true
	return nil
}

func (m *mockSessionGateway) Verify(ctx context.Context, token string) (*secondary.Identity, error) {
	identity, ok := m.tokens[token]
	if !ok {
		return nil, errs.Unauthenticated("invalid session token")
	}
	return identity, nil
}

func (m *mockSessionGateway) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}
