package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
)

// AuthService implements signup, login, account deletion and token resolution.
type AuthService struct {
	users    ports.UserRepository
	posts    ports.PostRepository
	comments ports.CommentRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	lock     ports.SignupLock
	log      zerolog.Logger
}

// NewAuthService wires the auth use cases. lock may be nil, in which case
// concurrent signups for one email are not serialised.
func NewAuthService(
	users ports.UserRepository,
	posts ports.PostRepository,
	comments ports.CommentRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	lock ports.SignupLock,
	log zerolog.Logger,
) *AuthService {
	if lock == nil {
		lock = noSignupLock{}
	}
	return &AuthService{
		users:    users,
		posts:    posts,
		comments: comments,
		hasher:   hasher,
		tokens:   tokens,
		lock:     lock,
		log:      log,
	}
}

// Signup registers a new user. Whatever goes wrong, the caller only ever sees
// domain.ErrSignupRejected; the cause is logged.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) error {
	if err := s.signup(ctx, in); err != nil {
		s.log.Warn().Err(err).Str("email", in.Email).Msg("signup rejected")
		return domain.ErrSignupRejected
	}
	s.log.Info().Str("email", in.Email).Msg("user signed up")
	return nil
}

func (s *AuthService) signup(ctx context.Context, in ports.SignupInput) error {
	if err := validate(in); err != nil {
		return err
	}

	release, err := s.lock.Acquire(ctx, in.Email)
	if err != nil {
		return err
	}
	defer release()

	_, err = s.users.FindOne(ctx, ports.UserFilter{Email: in.Email})
	switch {
	case err == nil:
		return domain.ErrUserExists
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return err
	}

	if _, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	}); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login checks credentials and returns the user with a fresh token. Unknown
// email and wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindOne(ctx, ports.UserFilter{Email: email})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: %w", err)
	}

	ok, err := s.hasher.Compare(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if !ok {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return user, token, nil
}

// DeleteAccount removes the viewer and every post and comment they own.
// Comments other users left on the viewer's posts are kept.
func (s *AuthService) DeleteAccount(ctx context.Context) error {
	viewer, err := requireViewer(ctx)
	if err != nil {
		return err
	}

	if _, err := s.users.DeleteOne(ctx, ports.UserFilter{ID: viewer.ID}); err != nil {
		return fmt.Errorf("delete account: user: %w", err)
	}
	posts, err := s.posts.DeleteMany(ctx, ports.PostFilter{UserID: viewer.ID})
	if err != nil {
		return fmt.Errorf("delete account: posts: %w", err)
	}
	comments, err := s.comments.DeleteMany(ctx, ports.CommentFilter{UserID: viewer.ID})
	if err != nil {
		return fmt.Errorf("delete account: comments: %w", err)
	}

	s.log.Info().
		Str("user_id", viewer.ID).
		Int64("posts", posts).
		Int64("comments", comments).
		Msg("account deleted")
	return nil
}

// Authenticate resolves a bearer token to its user. An empty token is an
// anonymous request and returns (nil, nil).
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}

	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindOne(ctx, ports.UserFilter{ID: subject})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}

type noSignupLock struct{}

func (noSignupLock) Acquire(context.Context, string) (func(), error) { return func() {}, nil }
