package primary

import "context"

// AuthService defines the primary port for session operations.
type AuthService interface {
	// Login checks credentials and opens a session.
	Login(ctx context.Context, email, password string) (*LoginResponse, error)

	// Logout closes the current session.
	Logout(ctx context.Context) error

	// CurrentUser returns the signed-in user, or nil.
	CurrentUser(ctx context.Context) (*User, error)

	// VerifyToken resolves a session token to its user.
	VerifyToken(ctx context.Context, token string) (*User, error)
}

// UserService defines the primary port for user administration.
type UserService interface {
	// CreateUser creates a user with a hashed password.
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)

	// ListUsers retrieves all users ordered by name.
	ListUsers(ctx context.Context) ([]*User, error)
}

// LoginResponse contains the result of a login.
type LoginResponse struct {
	User      *User
	Token     string
	ExpiresAt string
}

// CreateUserRequest contains parameters for creating a user.
type CreateUserRequest struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// User represents a user at the port boundary.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      string
	Active    bool
	CreatedAt string
}
