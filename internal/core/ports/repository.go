package ports

import (
	"context"

	"github.com/blogql/blog-api/internal/core/domain"
)

// Page bounds a Find call. Limit 0 means no limit.
type Page struct {
	Limit int64
	Skip  int64
}

// UserFilter selects users. Empty fields are not part of the filter.
type UserFilter struct {
	ID    string
	Email string
}

// PostFilter selects posts. Empty fields are not part of the filter.
type PostFilter struct {
	ID     string
	UserID string
}

// CommentFilter selects comments. Empty fields are not part of the filter.
type CommentFilter struct {
	ID     string
	UserID string
	PostID string
}

// UserRepository is the persistence gateway for the users collection.
// FindOne returns domain.ErrNotFound when nothing matches.
type UserRepository interface {
	FindOne(ctx context.Context, filter UserFilter) (*domain.User, error)
	Find(ctx context.Context, filter UserFilter, page Page) ([]*domain.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteOne(ctx context.Context, filter UserFilter) (int64, error)
}

// PostRepository is the persistence gateway for the posts collection.
type PostRepository interface {
	FindOne(ctx context.Context, filter PostFilter) (*domain.Post, error)
	Find(ctx context.Context, filter PostFilter, page Page) ([]*domain.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	// UpdateContent sets content on at most one matching post and reports how many matched.
	UpdateContent(ctx context.Context, filter PostFilter, content string) (int64, error)
	DeleteOne(ctx context.Context, filter PostFilter) (int64, error)
	DeleteMany(ctx context.Context, filter PostFilter) (int64, error)
}

// CommentRepository is the persistence gateway for the comments collection.
type CommentRepository interface {
	FindOne(ctx context.Context, filter CommentFilter) (*domain.Comment, error)
	Find(ctx context.Context, filter CommentFilter, page Page) ([]*domain.Comment, error)
	Count(ctx context.Context, filter CommentFilter) (int64, error)
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	UpdateContent(ctx context.Context, filter CommentFilter, content string) (int64, error)
	DeleteOne(ctx context.Context, filter CommentFilter) (int64, error)
	DeleteMany(ctx context.Context, filter CommentFilter) (int64, error)
}
