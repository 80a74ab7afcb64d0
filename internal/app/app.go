// Package app wires configuration, storage and the HTTP surface into a
// runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/blogql/blog-api/internal/api"
	"github.com/blogql/blog-api/internal/api/gql"
	"github.com/blogql/blog-api/internal/api/handler"
	"github.com/blogql/blog-api/internal/core/ports"
	"github.com/blogql/blog-api/internal/core/service"
	"github.com/blogql/blog-api/internal/infrastructure/db/memory"
	mongodb "github.com/blogql/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/blogql/blog-api/internal/infrastructure/db/redis"
	"github.com/blogql/blog-api/internal/infrastructure/workpool"
	"github.com/blogql/blog-api/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// App is a fully wired server. Build it with New and release it with Close.
type App struct {
	Echo *echo.Echo

	cfg     *config.Config
	log     zerolog.Logger
	closers []func(context.Context) error
}

type repositories struct {
	users    ports.UserRepository
	posts    ports.PostRepository
	comments ports.CommentRepository
}

// New connects the configured stores and builds the router. The hashing pool
// lives until ctx is cancelled.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}
	checks := map[string]handler.Check{}

	repos, err := a.openStore(ctx, checks)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	var lock ports.SignupLock
	checks["redis"] = nil
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
		lock = redisdb.NewSignupLock(rdb)
		checks["redis"] = handler.RedisCheck(rdb)
	}

	pool := workpool.New(cfg.Auth.HashWorkers, log.With().Str("component", "workpool").Logger())
	pool.Start(ctx)

	hasher := service.NewCredentialService(cfg.Auth.BcryptCost, pool)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	svc := gql.Services{
		Auth:     service.NewAuthService(repos.users, repos.posts, repos.comments, hasher, tokens, lock, log),
		Users:    service.NewUserService(repos.users),
		Posts:    service.NewPostService(repos.posts, log),
		Comments: service.NewCommentService(repos.comments, log),
	}

	schema, err := gql.NewSchema(svc, gql.Options{
		MaxDepth:       cfg.GraphQL.MaxDepth,
		MaxParallelism: cfg.GraphQL.MaxParallelism,
	}, log)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	a.Echo = api.NewRouter(api.Deps{
		Schema: schema,
		Auth:   svc.Auth,
		Checks: checks,
		Log:    log,
	})

	log.Info().
		Str("store", cfg.Store).
		Bool("signup_lock", lock != nil).
		Int("hash_workers", pool.Size()).
		Msg("application wired")
	return a, nil
}

func (a *App) openStore(ctx context.Context, checks map[string]handler.Check) (repositories, error) {
	if a.cfg.Store == config.StoreMemory {
		checks["mongodb"] = nil
		a.log.Warn().Msg("using in-memory store, data is lost on exit")
		return repositories{
			users:    memory.NewUserRepository(),
			posts:    memory.NewPostRepository(),
			comments: memory.NewCommentRepository(),
		}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
	if err != nil {
		return repositories{}, err
	}
	a.closers = append(a.closers, client.Disconnect)
	checks["mongodb"] = handler.MongoCheck(db)

	return repositories{
		users:    mongodb.NewUserRepository(db),
		posts:    mongodb.NewPostRepository(db),
		comments: mongodb.NewCommentRepository(db),
	}, nil
}

// Run serves HTTP on the configured port until ctx is cancelled, then shuts
// the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	addr := net.JoinHostPort("", a.cfg.Port)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info().Str("addr", addr).Msg("http server listening")
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.Echo.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close releases store connections in reverse order of opening.
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.log.Warn().Err(err).Msg("close dependency")
		}
	}
	a.closers = nil
}
