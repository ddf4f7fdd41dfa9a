package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/newsroom/internal/ports/primary"
)

// AuthAdapter translates CLI session and user operations to AuthService
// and UserService calls.
type AuthAdapter struct {
	auth  primary.AuthService
	users primary.UserService
	out   io.Writer
}

// NewAuthAdapter creates a new AuthAdapter with the given services.
func NewAuthAdapter(auth primary.AuthService, users primary.UserService, out io.Writer) *AuthAdapter {
	return &AuthAdapter{
		auth:  auth,
		users: users,
		out:   out,
	}
}

// Login opens a session.
func (a *AuthAdapter) Login(ctx context.Context, email, password string) (*primary.LoginResponse, error) {
	resp, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Signed in as %s <%s> (%s)\n", resp.User.Name, resp.User.Email, resp.User.Role)
	fmt.Fprintf(a.out, "  Session valid until %s\n", resp.ExpiresAt)
	return resp, nil
}

// Logout closes the session.
func (a *AuthAdapter) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "✓ Signed out")
	return nil
}

// WhoAmI shows the signed-in user.
func (a *AuthAdapter) WhoAmI(ctx context.Context) (*primary.User, error) {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		fmt.Fprintln(a.out, "  newsroom login --email you@newsroom.local")
		return nil, nil
	}
	fmt.Fprintf(a.out, "%s <%s> %s (%s)\n", user.Name, user.Email, user.ID, user.Role)
	return user, nil
}

// CreateUser creates a user.
func (a *AuthAdapter) CreateUser(ctx context.Context, req primary.CreateUserRequest) (*primary.User, error) {
	user, err := a.users.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Created user %s: %s <%s> (%s)\n", user.ID, user.Name, user.Email, user.Role)
	return user, nil
}

// ListUsers lists users.
func (a *AuthAdapter) ListUsers(ctx context.Context) ([]*primary.User, error) {
	users, err := a.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found.")
		return users, nil
	}

	t := newTable(a.out)
	t.AppendHeader([]interface{}{"ID", "NAME", "EMAIL", "ROLE", "ACTIVE"})
	for _, u := range users {
		t.AppendRow([]interface{}{u.ID, u.Name, u.Email, u.Role, u.Active})
	}
	t.Render()
	return users, nil
}
