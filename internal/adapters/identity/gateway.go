// Package identity implements the session gateway: bcrypt credential
// checks and HS256 session tokens.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/newsroom/internal/ctxutil"
	"github.com/example/newsroom/internal/errs"
	"github.com/example/newsroom/internal/logging"
	"github.com/example/newsroom/internal/ports/secondary"
)

const issuer = "newsroom"

// DefaultTokenTTL is how long a session token stays valid.
const DefaultTokenTTL = 12 * time.Hour

// Config holds the gateway settings.
type Config struct {
	Secret     string
	TokenTTL   time.Duration // DefaultTokenTTL when zero
	BcryptCost int           // bcrypt.DefaultCost when zero
}

// TokenStore keeps the token of the local session between processes.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Gateway implements secondary.SessionGateway.
type Gateway struct {
	users  secondary.UserRepository
	secret []byte
	ttl    time.Duration
	cost   int
	store  TokenStore // nil when sessions are not persisted locally
	now    func() time.Time
}

// sessionClaims is the token payload.
type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// NewGateway creates a session gateway. A nil store disables the local
// session (the HTTP API resolves users from bearer tokens only).
func NewGateway(users secondary.UserRepository, cfg Config, store TokenStore) (*Gateway, error) {
	if cfg.Secret == "" {
		return nil, errors.New("identity: token secret is required")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Gateway{
		users:  users,
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		cost:   cost,
		store:  store,
		now:    time.Now,
	}, nil
}

// Login checks credentials and issues a session token.
func (g *Gateway) Login(ctx context.Context, email, password string) (*secondary.Session, error) {
	user, err := g.users.GetByEmail(ctx, email)
	if errs.IsNotFound(err) {
		return nil, errs.Unauthenticated("invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errs.Unauthenticated("invalid email or password")
	}
	if !user.Active {
		return nil, errs.Unauthenticated("user is deactivated")
	}

	identity := secondary.Identity{UserID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
	token, expiresAt, err := g.issue(identity)
	if err != nil {
		return nil, err
	}

	if g.store != nil {
		if err := g.store.Save(token); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
	}

	return &secondary.Session{User: identity, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout forgets the local session.
func (g *Gateway) Logout(ctx context.Context) error {
	if g.store == nil {
		return nil
	}
	return g.store.Clear()
}

// Verify resolves a token to its current user record.
func (g *Gateway) Verify(ctx context.Context, token string) (*secondary.Identity, error) {
	claims := &sessionClaims{}
	parser := jwt.Parser{
		ValidMethods: []string{jwt.SigningMethodHS256.Alg()},
	}
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return g.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, errs.Unauthenticated("session expired; sign in again")
	case err != nil:
		return nil, errs.Unauthenticated("invalid session token")
	}
	if claims.Subject == "" || !claims.VerifyIssuer(issuer, true) {
		return nil, errs.Unauthenticated("invalid session token")
	}

	// Deactivated or removed users lose their sessions immediately.
	user, err := g.users.GetByID(ctx, claims.Subject)
	if errs.IsNotFound(err) {
		return nil, errs.Unauthenticated("session user no longer exists")
	}
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, errs.Unauthenticated("user is deactivated")
	}

	return &secondary.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}, nil
}

// CurrentUser returns the actor carried by ctx, else the user of the
// stored local session, else nil. A stale or invalid stored token counts
// as signed out.
func (g *Gateway) CurrentUser(ctx context.Context) (*secondary.Identity, error) {
	if actor, ok := ctxutil.ActorFromContext(ctx); ok && actor.ID != "" {
		return &secondary.Identity{UserID: actor.ID, Email: actor.Email, Name: actor.Name, Role: actor.Role}, nil
	}
	if g.store == nil {
		return nil, nil
	}

	token, err := g.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if token == "" {
		return nil, nil
	}

	identity, err := g.Verify(ctx, token)
	if err != nil {
		logging.FromContext(ctx, "identity").Debug().Err(err).Msg("ignoring stored session")
		return nil, nil
	}
	return identity, nil
}

// HashPassword derives a bcrypt hash.
func (g *Gateway) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (g *Gateway) issue(identity secondary.Identity) (string, time.Time, error) {
	now := g.now()
	expiresAt := now.Add(g.ttl)
	claims := sessionClaims{
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expiresAt, nil
}

// Ensure Gateway implements the interface
var _ secondary.SessionGateway = (*Gateway)(nil)
