package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/infrastructure/db/memory"
)

var discardLogger = zerolog.Nop()

// inlineRunner runs jobs on the calling goroutine.
type inlineRunner struct{}

func (inlineRunner) Do(_ context.Context, fn func()) error {
	fn()
	return nil
}

type fixture struct {
	users    *memory.UserRepository
	posts    *memory.PostRepository
	comments *memory.CommentRepository
	tokens   *TokenService
	auth     *AuthService
	userSvc  *UserService
	postSvc  *PostService
	cmtSvc   *CommentService
}

func newFixture() *fixture {
	f := &fixture{
		users:    memory.NewUserRepository(),
		posts:    memory.NewPostRepository(),
		comments: memory.NewCommentRepository(),
		tokens:   NewTokenService("secret", DefaultTokenTTL),
	}
	hasher := NewCredentialService(bcrypt.MinCost, inlineRunner{})
	f.auth = NewAuthService(f.users, f.posts, f.comments, hasher, f.tokens, nil, discardLogger)
	f.userSvc = NewUserService(f.users)
	f.postSvc = NewPostService(f.posts, discardLogger)
	f.cmtSvc = NewCommentService(f.comments, discardLogger)
	return f
}

// seedUser stores a user directly and returns a context authenticated as them.
func (f *fixture) seedUser(t *testing.T, name string) (*domain.User, context.Context) {
	t.Helper()
	u, err := f.users.Create(context.Background(), &domain.User{Name: name, Email: name + "@x.com"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u, domain.WithViewer(context.Background(), u)
}

func int32p(v int32) *int32 { return &v }
