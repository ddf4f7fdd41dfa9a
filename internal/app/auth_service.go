package app

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/logging"
	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/ports/secondary"
)

// Roles a user may hold.
var validRoles = map[string]bool{
	"admin":    true,
	"editor":   true,
	"producer": true,
	"viewer":   true,
}

// MinPasswordLength is the shortest password CreateUser accepts.
const MinPasswordLength = 8

// AuthServiceImpl implements the AuthService interface on top of the
// session gateway.
type AuthServiceImpl struct {
	gateway  secondary.SessionGateway
	userRepo secondary.UserRepository
}

// NewAuthService creates a new AuthService with injected dependencies.
func NewAuthService(gateway secondary.SessionGateway, userRepo secondary.UserRepository) *AuthServiceImpl {
	return &AuthServiceImpl{
		gateway:  gateway,
		userRepo: userRepo,
	}
}

// Login checks credentials and opens a session.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*primary.LoginResponse, error) {
	session, err := s.gateway.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		logging.FromContext(ctx, "auth").Debug().Err(err).Str("email", email).Msg("login rejected")
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, session.User.UserID)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx, "auth").Info().Str("user_id", user.ID).Msg("signed in")

	return &primary.LoginResponse{
		User:      recordToUser(user),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// Logout closes the current session.
func (s *AuthServiceImpl) Logout(ctx context.Context) error {
	return s.gateway.Logout(ctx)
}

// CurrentUser returns the signed-in user, or nil.
func (s *AuthServiceImpl) CurrentUser(ctx context.Context) (*primary.User, error) {
	identity, err := s.gateway.CurrentUser(ctx)
	if err != nil || identity == nil {
		return nil, err
	}
	return s.lookup(ctx, identity)
}

// VerifyToken resolves a session token to its user.
func (s *AuthServiceImpl) VerifyToken(ctx context.Context, token string) (*primary.User, error) {
	identity, err := s.gateway.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.lookup(ctx, identity)
}

// lookup reloads the user so deactivated accounts lose their sessions.
func (s *AuthServiceImpl) lookup(ctx context.Context, identity *secondary.Identity) (*primary.User, error) {
	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if errs.IsNotFound(err) {
		return nil, errs.Unauthenticated("session user no longer exists")
	}
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, errs.Unauthenticated("user is deactivated")
	}
	return recordToUser(user), nil
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userRepo  secondary.UserRepository
	gateway   secondary.SessionGateway
	logWriter secondary.LogWriter
	validate  *validator.Validate
}

// NewUserService creates a new UserService with injected dependencies.
func NewUserService(userRepo secondary.UserRepository, gateway secondary.SessionGateway, logWriter secondary.LogWriter) *UserServiceImpl {
	return &UserServiceImpl{
		userRepo:  userRepo,
		gateway:   gateway,
		logWriter: logWriter,
		validate:  validator.New(),
	}
}

// CreateUser creates a user with a hashed password. Role defaults to editor.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req primary.CreateUserRequest) (*primary.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, errs.InvalidInput("invalid email %q", req.Email)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.InvalidInput("user name is required")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, errs.InvalidInput("password must have at least %d characters", MinPasswordLength)
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "editor"
	}
	if !validRoles[role] {
		return nil, errs.InvalidInput("invalid role %q (want admin, editor, producer or viewer)", role)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errs.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Conflict("user", existing.ID, "a user with email %s already exists", email)
	}

	hash, err := s.gateway.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	nextID, err := s.userRepo.GetNextID(ctx)
	if err != nil {
		return nil, err
	}
	record := &secondary.UserRecord{
		ID:           nextID,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	if err := s.logWriter.LogCreate(ctx, "user", record.ID); err != nil {
		return nil, err
	}

	created, err := s.userRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return recordToUser(created), nil
}

// ListUsers retrieves all users ordered by name.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*primary.User, error) {
	records, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]*primary.User, len(records))
	for i, r := range records {
		users[i] = recordToUser(r)
	}
	return users, nil
}

func recordToUser(r *secondary.UserRecord) *primary.User {
	return &primary.User{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		Role:      r.Role,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure implementations satisfy the interfaces
var (
	_ primary.AuthService = (*AuthServiceImpl)(nil)
	_ primary.UserService = (*UserServiceImpl)(nil)
)
