package service

import (
	"context"

	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
)

// UserService serves public reads over users.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Get returns domain.ErrNotFound when no user has the id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.FindOne(ctx, ports.UserFilter{ID: id})
}

func (s *UserService) List(ctx context.Context, in ports.ListInput) ([]*domain.User, error) {
	page, ok := pageFor(in)
	if !ok {
		return []*domain.User{}, nil
	}
	return s.repo.Find(ctx, ports.UserFilter{}, page)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, ports.UserFilter{})
}
