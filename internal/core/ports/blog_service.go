package ports

import (
	"context"

	"github.com/blogql/blog-api/internal/core/domain"
)

// ListInput carries the raw pagination arguments as received from the client.
// Nil means the argument was omitted.
type ListInput struct {
	First *int32
	After *int32
}

// UserService serves read access to users.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, in ListInput) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type CreatePostInput struct {
	Content string `validate:"required"`
}

type UpdatePostInput struct {
	ID      string `validate:"required"`
	Content string `validate:"required"`
}

// PostService serves posts. Mutations require a viewer in ctx.
type PostService interface {
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, in ListInput) ([]*domain.Post, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Post, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, in CreatePostInput) (*domain.Post, error)
	Update(ctx context.Context, in UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

type CreateCommentInput struct {
	PostID  string `validate:"required"`
	Content string `validate:"required"`
}

type UpdateCommentInput struct {
	ID      string `validate:"required"`
	Content string `validate:"required"`
}

// CommentService serves comments. Mutations require a viewer in ctx.
type CommentService interface {
	ListByPost(ctx context.Context, postID string) ([]*domain.Comment, error)
	Create(ctx context.Context, in CreateCommentInput) (*domain.Comment, error)
	Update(ctx context.Context, in UpdateCommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}
