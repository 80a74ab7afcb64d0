package memory

import (
	"context"

	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
)

// UserRepository implements ports.UserRepository in memory.
type UserRepository struct {
	t table[domain.User]
}

func NewUserRepository() *UserRepository { return &UserRepository{} }

func matchUser(f ports.UserFilter) func(*domain.User) bool {
	if !validIDs(f.ID) {
		return matchNone[domain.User]
	}
	return func(u *domain.User) bool {
		return (f.ID == "" || u.ID == f.ID) &&
			(f.Email == "" || u.Email == f.Email)
	}
}

func (r *UserRepository) FindOne(_ context.Context, f ports.UserFilter) (*domain.User, error) {
	u, ok := r.t.findOne(matchUser(f))
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) Find(_ context.Context, f ports.UserFilter, page ports.Page) ([]*domain.User, error) {
	return r.t.find(matchUser(f), page), nil
}

func (r *UserRepository) Count(_ context.Context, f ports.UserFilter) (int64, error) {
	return r.t.count(matchUser(f)), nil
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	row := clone(u)
	row.ID = newID()
	r.t.insert(row)
	return row, nil
}

func (r *UserRepository) DeleteOne(_ context.Context, f ports.UserFilter) (int64, error) {
	if f == (ports.UserFilter{}) {
		return 0, domain.ErrEmptyFilter
	}
	return r.t.delete(matchUser(f), false), nil
}

// PostRepository implements ports.PostRepository in memory.
type PostRepository struct {
	t table[domain.Post]
}

func NewPostRepository() *PostRepository { return &PostRepository{} }

func matchPost(f ports.PostFilter) func(*domain.Post) bool {
	if !validIDs(f.ID, f.UserID) {
		return matchNone[domain.Post]
	}
	return func(p *domain.Post) bool {
		return (f.ID == "" || p.ID == f.ID) &&
			(f.UserID == "" || p.UserID == f.UserID)
	}
}

func (r *PostRepository) FindOne(_ context.Context, f ports.PostFilter) (*domain.Post, error) {
	p, ok := r.t.findOne(matchPost(f))
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *PostRepository) Find(_ context.Context, f ports.PostFilter, page ports.Page) ([]*domain.Post, error) {
	return r.t.find(matchPost(f), page), nil
}

func (r *PostRepository) Count(_ context.Context, f ports.PostFilter) (int64, error) {
	return r.t.count(matchPost(f)), nil
}

func (r *PostRepository) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	if !validIDs(p.UserID) {
		return nil, domain.ErrInvalidID
	}
	row := clone(p)
	row.ID = newID()
	r.t.insert(row)
	return row, nil
}

func (r *PostRepository) UpdateContent(_ context.Context, f ports.PostFilter, content string) (int64, error) {
	if f == (ports.PostFilter{}) {
		return 0, domain.ErrEmptyFilter
	}
	return r.t.update(matchPost(f), func(p *domain.Post) { p.Content = content }), nil
}

func (r *PostRepository) DeleteOne(_ context.Context, f ports.PostFilter) (int64, error) {
	if f == (ports.PostFilter{}) {
		return 0, domain.ErrEmptyFilter
	}
	return r.t.delete(matchPost(f), false), nil
}

func (r *PostRepository) DeleteMany(_ context.Context, f ports.PostFilter) (int64, error) {
	if f == (ports.PostFilter{}) {
		return 0, domain.ErrEmptyFilter
	}
	return r.t.delete(matchPost(f), true), nil
}

// CommentRepository implements ports.CommentRepository in memory.
type CommentRepository struct {
	t table[domain.Comment]
}

func NewCommentRepository() *CommentRepository { return &CommentRepository{} }

func matchComment(f ports.CommentFilter) func(*domain.Comment) bool {
	if !validIDs(f.ID, f.UserID, f.PostID) {
		return matchNone[domain.Comment]
	}
	return func(c *domain.Comment) bool {
		return (f.ID == "" || c.ID == f.ID) &&
			(f.UserID == "" || c.UserID == f.UserID) &&
			(f.PostID == "" || c.PostID == f.PostID)
	}
}

func (r *CommentRepository) FindOne(_ context.Context, f ports.CommentFilter) (*domain.Comment, error) {
	c, ok := r.t.findOne(matchComment(f))
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *CommentRepository) Find(_ context.Context, f ports.CommentFilter, page ports.Page) ([]*domain.Comment, error) {
	return r.t.find(matchComment(f), page), nil
}

func (r *CommentRepository) Count(_ context.Context, f ports.CommentFilter) (int64, error) {
	return r.t.count(matchComment(f)), nil
}

func (r *CommentRepository) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	if !validIDs(c.UserID, c.PostID) {
		return nil, domain.ErrInvalidID
	}
	row := clone(c)
	row.ID = newID()
	r.t.insert(row)
	return row, nil
}

func (r *CommentRepository) UpdateContent(_ context.Context, f ports.CommentFilter, content string) (int64, error) {
	if f == (ports.CommentFilter{}) {
		return 0, domain.ErrEmptyFilter
	}
	return r.t.update(matchComment(f), func(c *domain.Comment) { c.Content = content }), nil
}

func (r *CommentRepository) DeleteOne(_ context.Context, f ports.CommentFilter) (int64, error) {
	if f == (ports.CommentFilter{}) {
		return 0, domain.ErrEmptyFilter
	}
	return r.t.delete(matchComment(f), false), nil
}

func (r *CommentRepository) DeleteMany(_ context.Context, f ports.CommentFilter) (int64, error) {
	if f == (ports.CommentFilter{}) {
		return 0, domain.ErrEmptyFilter
	}
	return r.t.delete(matchComment(f), true), nil
}
