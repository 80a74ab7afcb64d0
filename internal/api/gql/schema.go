// Package gql exposes the blog over GraphQL: the embedded SDL, the root
// resolver and one resolver per object type.
package gql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"

	"github.com/blogql/blog-api/internal/core/ports"
)

//go:embed schema.graphql
var sdl string

const (
	DefaultMaxDepth       = 10
	DefaultMaxParallelism = 10
)

// Services are the use cases the resolvers dispatch to.
type Services struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Posts    ports.PostService
	Comments ports.CommentService
}

type Options struct {
	MaxDepth       int
	MaxParallelism int
}

// NewSchema parses the SDL and binds it to a root resolver over svc.
func NewSchema(svc Services, opts Options, log zerolog.Logger) (*graphql.Schema, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxParallelism <= 0 {
		opts.MaxParallelism = DefaultMaxParallelism
	}

	schema, err := graphql.ParseSchema(sdl, &Resolver{svc: svc, log: log},
		graphql.MaxDepth(opts.MaxDepth),
		graphql.MaxParallelism(opts.MaxParallelism),
		graphql.Logger(panicLogger{log: log}),
	)
	if err != nil {
		return nil, fmt.Errorf("gql: parse schema: %w", err)
	}
	return schema, nil
}

// panicLogger reports resolver panics the executor recovered from.
type panicLogger struct {
	log zerolog.Logger
}

func (l panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.log.Error().Interface("panic", value).Msg("graphql resolver panicked")
}
