package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
)

type CommentService struct {
	repo ports.CommentRepository
	log  zerolog.Logger
}

func NewCommentService(repo ports.CommentRepository, log zerolog.Logger) *CommentService {
	return &CommentService{repo: repo, log: log}
}

// ListByPost returns every comment attached to postID.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*domain.Comment, error) {
	if postID == "" {
		return []*domain.Comment{}, nil
	}
	return s.repo.Find(ctx, ports.CommentFilter{PostID: postID}, ports.Page{})
}

// Create attaches a comment to a post. The post is not checked for existence.
func (s *CommentService) Create(ctx context.Context, in ports.CreateCommentInput) (*domain.Comment, error) {
	viewer, err := requireViewer(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	comment, err := s.repo.Create(ctx, &domain.Comment{
		Content: in.Content,
		UserID:  viewer.ID,
		PostID:  in.PostID,
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info().Str("comment_id", comment.ID).Str("post_id", in.PostID).Str("user_id", viewer.ID).Msg("comment created")
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, in ports.UpdateCommentInput) (*domain.Comment, error) {
	viewer, err := requireViewer(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	matched, err := s.repo.UpdateContent(ctx, ports.CommentFilter{ID: in.ID, UserID: viewer.ID}, in.Content)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if matched == 0 {
		s.log.Debug().Str("comment_id", in.ID).Str("user_id", viewer.ID).Msg("update matched no owned comment")
	}

	return s.repo.FindOne(ctx, ports.CommentFilter{ID: in.ID})
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	viewer, err := requireViewer(ctx)
	if err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteOne(ctx, ports.CommentFilter{ID: id, UserID: viewer.ID})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.log.Info().Str("comment_id", id).Str("user_id", viewer.ID).Int64("deleted", deleted).Msg("comment delete")
	return nil
}
