package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
)

type PostService struct {
	repo ports.PostRepository
	log  zerolog.Logger
}

func NewPostService(repo ports.PostRepository, log zerolog.Logger) *PostService {
	return &PostService{repo: repo, log: log}
}

// Get returns domain.ErrNotFound when no post has the id.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.FindOne(ctx, ports.PostFilter{ID: id})
}

func (s *PostService) List(ctx context.Context, in ports.ListInput) ([]*domain.Post, error) {
	page, ok := pageFor(in)
	if !ok {
		return []*domain.Post{}, nil
	}
	return s.repo.Find(ctx, ports.PostFilter{}, page)
}

// ListByUser returns every post owned by userID.
func (s *PostService) ListByUser(ctx context.Context, userID string) ([]*domain.Post, error) {
	if userID == "" {
		return []*domain.Post{}, nil
	}
	return s.repo.Find(ctx, ports.PostFilter{UserID: userID}, ports.Page{})
}

func (s *PostService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, ports.PostFilter{})
}

func (s *PostService) Create(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	viewer, err := requireViewer(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	post, err := s.repo.Create(ctx, &domain.Post{Content: in.Content, UserID: viewer.ID})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Str("post_id", post.ID).Str("user_id", viewer.ID).Msg("post created")
	return post, nil
}

// Update changes the content of a post the viewer owns and returns the post as
// stored afterwards. Targeting someone else's post is a silent no-op.
func (s *PostService) Update(ctx context.Context, in ports.UpdatePostInput) (*domain.Post, error) {
	viewer, err := requireViewer(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	matched, err := s.repo.UpdateContent(ctx, ports.PostFilter{ID: in.ID, UserID: viewer.ID}, in.Content)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if matched == 0 {
		s.log.Debug().Str("post_id", in.ID).Str("user_id", viewer.ID).Msg("update matched no owned post")
	}

	return s.repo.FindOne(ctx, ports.PostFilter{ID: in.ID})
}

// Delete removes a post the viewer owns. Targeting someone else's post is a
// silent no-op.
func (s *PostService) Delete(ctx context.Context, id string) error {
	viewer, err := requireViewer(ctx)
	if err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteOne(ctx, ports.PostFilter{ID: id, UserID: viewer.ID})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	s.log.Info().Str("post_id", id).Str("user_id", viewer.ID).Int64("deleted", deleted).Msg("post delete")
	return nil
}
