package ports

import (
	"context"

	"github.com/blogql/blog-api/internal/core/domain"
)

// TokenIssuer signs and verifies bearer tokens. The subject is a user id.
type TokenIssuer interface {
	Sign(subject string) (string, error)
	Verify(token string) (string, error)
}

// PasswordHasher hashes and checks plaintext passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Compare(ctx context.Context, plaintext, hash string) (bool, error)
}

// SignupLock serialises concurrent signups for the same email.
// The returned release func must be called once the signup finished.
type SignupLock interface {
	Acquire(ctx context.Context, email string) (release func(), err error)
}

type SignupInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// AuthService covers signup, login, account removal and bearer token resolution.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) error
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	DeleteAccount(ctx context.Context) error
	// Authenticate resolves a bearer token. An empty token yields (nil, nil).
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
