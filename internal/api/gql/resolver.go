package gql

import (
	"context"
	"errors"

	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"

	"github.com/blogql/blog-api/internal/api/metrics"
	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
)

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	svc Services
	log zerolog.Logger
}

// fail converts err into the client-facing Error and records it. Causes of
// internal errors are logged and never reach the client.
func (r *Resolver) fail(field string, err error) error {
	e := Classify(err)
	metrics.GraphQLErrorsTotal.WithLabelValues(e.Code).Inc()
	if e.Code == CodeInternal {
		r.log.Error().Err(err).Str("field", field).Msg("resolver failed")
	}
	return e
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (r *Resolver) User(ctx context.Context) *UserResolver {
	u, ok := domain.ViewerFrom(ctx)
	if !ok {
		return nil
	}
	return r.user(u)
}

type idArgs struct {
	ID graphql.ID
}

func (r *Resolver) UserByID(ctx context.Context, args idArgs) (*UserResolver, error) {
	u, err := r.svc.Users.Get(ctx, string(args.ID))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("userById", err)
	}
	return r.user(u), nil
}

func (r *Resolver) PostByID(ctx context.Context, args idArgs) (*PostResolver, error) {
	p, err := r.svc.Posts.Get(ctx, string(args.ID))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("postById", err)
	}
	return r.post(p), nil
}

type listArgs struct {
	First *int32
	After *int32
}

func (r *Resolver) Users(ctx context.Context, args listArgs) ([]*UserResolver, error) {
	users, err := r.svc.Users.List(ctx, ports.ListInput{First: args.First, After: args.After})
	if err != nil {
		return nil, r.fail("users", err)
	}
	out := make([]*UserResolver, len(users))
	for i, u := range users {
		out[i] = r.user(u)
	}
	return out, nil
}

func (r *Resolver) Posts(ctx context.Context, args listArgs) ([]*PostResolver, error) {
	posts, err := r.svc.Posts.List(ctx, ports.ListInput{First: args.First, After: args.After})
	if err != nil {
		return nil, r.fail("posts", err)
	}
	return r.posts(posts), nil
}

func (r *Resolver) CountPosts(ctx context.Context) (int32, error) {
	n, err := r.svc.Posts.Count(ctx)
	if err != nil {
		return 0, r.fail("countPosts", err)
	}
	return int32(n), nil
}

func (r *Resolver) CountUsers(ctx context.Context) (int32, error) {
	n, err := r.svc.Users.Count(ctx)
	if err != nil {
		return 0, r.fail("countUsers", err)
	}
	return int32(n), nil
}

// ── Mutations ─────────────────────────────────────────────────────────────────

type signupArgs struct {
	Name     string
	Email    string
	Password string
}

func (r *Resolver) Signup(ctx context.Context, args signupArgs) (bool, error) {
	err := r.svc.Auth.Signup(ctx, ports.SignupInput{
		Name:     args.Name,
		Email:    args.Email,
		Password: args.Password,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("rejected").Inc()
		return false, r.fail("signup", err)
	}
	metrics.SignupsTotal.WithLabelValues("ok").Inc()
	return true, nil
}

type loginArgs struct {
	Email    string
	Password string
}

func (r *Resolver) Login(ctx context.Context, args loginArgs) (*LoginResponseResolver, error) {
	u, token, err := r.svc.Auth.Login(ctx, args.Email, args.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return nil, r.fail("login", err)
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return &LoginResponseResolver{user: r.user(u), token: token}, nil
}

func (r *Resolver) DeleteAccount(ctx context.Context) (bool, error) {
	if err := r.svc.Auth.DeleteAccount(ctx); err != nil {
		return false, r.fail("deleteAccount", err)
	}
	return true, nil
}

type contentArgs struct {
	Content string
}

func (r *Resolver) CreatePost(ctx context.Context, args contentArgs) (*PostResolver, error) {
	p, err := r.svc.Posts.Create(ctx, ports.CreatePostInput{Content: args.Content})
	if err != nil {
		return nil, r.fail("createPost", err)
	}
	return r.post(p), nil
}

type updateArgs struct {
	ID      graphql.ID
	Content string
}

func (r *Resolver) UpdatePost(ctx context.Context, args updateArgs) (*PostResolver, error) {
	p, err := r.svc.Posts.Update(ctx, ports.UpdatePostInput{ID: string(args.ID), Content: args.Content})
	if err != nil {
		return nil, r.fail("updatePost", err)
	}
	return r.post(p), nil
}

func (r *Resolver) DeletePost(ctx context.Context, args idArgs) (bool, error) {
	if err := r.svc.Posts.Delete(ctx, string(args.ID)); err != nil {
		return false, r.fail("deletePost", err)
	}
	return true, nil
}

type createCommentArgs struct {
	PostID  graphql.ID
	Content string
}

func (r *Resolver) CreateComment(ctx context.Context, args createCommentArgs) (*CommentResolver, error) {
	c, err := r.svc.Comments.Create(ctx, ports.CreateCommentInput{PostID: string(args.PostID), Content: args.Content})
	if err != nil {
		return nil, r.fail("createComment", err)
	}
	return r.comment(c), nil
}

func (r *Resolver) UpdateComment(ctx context.Context, args updateArgs) (*CommentResolver, error) {
	c, err := r.svc.Comments.Update(ctx, ports.UpdateCommentInput{ID: string(args.ID), Content: args.Content})
	if err != nil {
		return nil, r.fail("updateComment", err)
	}
	return r.comment(c), nil
}

func (r *Resolver) DeleteComment(ctx context.Context, args idArgs) (bool, error) {
	if err := r.svc.Comments.Delete(ctx, string(args.ID)); err != nil {
		return false, r.fail("deleteComment", err)
	}
	return true, nil
}
