package secondary

import (
	"context"
	"time"
)

// IdentityProvider resolves who is acting. Services stamp created_by and
// author fields from it and never look at ambient state themselves.
type IdentityProvider interface {
	// CurrentUser returns the acting user, or nil when nobody is signed in.
	CurrentUser(ctx context.Context) (*Identity, error)
}

// SessionGateway is the Session/Identity Gateway: credential checking and
// session tokens live behind it.
type SessionGateway interface {
	IdentityProvider

	// Login checks credentials and opens a session.
	Login(ctx context.Context, email, password string) (*Session, error)

	// Logout closes the current session. Closing an absent session is not an error.
	Logout(ctx context.Context) error

	// Verify resolves a session token to its user.
	Verify(ctx context.Context, token string) (*Identity, error)

	// HashPassword derives the stored credential for a new user.
	HashPassword(password string) (string, error)
}

// Identity is the acting user as seen by services.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// Session is an opened session.
type Session struct {
	User      Identity
	Token     string
	ExpiresAt time.Time
}
