package gql

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/blogql/blog-api/internal/core/domain"
)

// Object resolvers keep only the entity they were built from. Relationship
// fields go back to the services on demand.

type UserResolver struct {
	root *Resolver
	u    *domain.User
}

func (r *Resolver) user(u *domain.User) *UserResolver { return &UserResolver{root: r, u: u} }

func (u *UserResolver) ID() graphql.ID { return graphql.ID(u.u.ID) }
func (u *UserResolver) Name() string   { return u.u.Name }
func (u *UserResolver) Email() string  { return u.u.Email }

func (u *UserResolver) Posts(ctx context.Context) ([]*PostResolver, error) {
	posts, err := u.root.svc.Posts.ListByUser(ctx, u.u.ID)
	if err != nil {
		return nil, u.root.fail("User.posts", err)
	}
	return u.root.posts(posts), nil
}

type PostResolver struct {
	root *Resolver
	p    *domain.Post
}

func (r *Resolver) post(p *domain.Post) *PostResolver { return &PostResolver{root: r, p: p} }

func (r *Resolver) posts(posts []*domain.Post) []*PostResolver {
	out := make([]*PostResolver, len(posts))
	for i, p := range posts {
		out[i] = r.post(p)
	}
	return out
}

func (p *PostResolver) ID() graphql.ID  { return graphql.ID(p.p.ID) }
func (p *PostResolver) Content() string { return p.p.Content }

func (p *PostResolver) Author(ctx context.Context) (*UserResolver, error) {
	u, err := p.root.svc.Users.Get(ctx, p.p.UserID)
	if err != nil {
		return nil, p.root.fail("Post.author", err)
	}
	return p.root.user(u), nil
}

func (p *PostResolver) Comments(ctx context.Context) ([]*CommentResolver, error) {
	comments, err := p.root.svc.Comments.ListByPost(ctx, p.p.ID)
	if err != nil {
		return nil, p.root.fail("Post.comments", err)
	}
	out := make([]*CommentResolver, len(comments))
	for i, c := range comments {
		out[i] = p.root.comment(c)
	}
	return out, nil
}

type CommentResolver struct {
	root *Resolver
	c    *domain.Comment
}

func (r *Resolver) comment(c *domain.Comment) *CommentResolver {
	return &CommentResolver{root: r, c: c}
}

func (c *CommentResolver) ID() graphql.ID  { return graphql.ID(c.c.ID) }
func (c *CommentResolver) Content() string { return c.c.Content }

func (c *CommentResolver) Author(ctx context.Context) (*UserResolver, error) {
	u, err := c.root.svc.Users.Get(ctx, c.c.UserID)
	if err != nil {
		return nil, c.root.fail("Comment.author", err)
	}
	return c.root.user(u), nil
}

func (c *CommentResolver) Post(ctx context.Context) (*PostResolver, error) {
	p, err := c.root.svc.Posts.Get(ctx, c.c.PostID)
	if err != nil {
		return nil, c.root.fail("Comment.post", err)
	}
	return c.root.post(p), nil
}

type LoginResponseResolver struct {
	user  *UserResolver
	token string
}

func (l *LoginResponseResolver) User() *UserResolver { return l.user }
func (l *LoginResponseResolver) Token() string       { return l.token }
