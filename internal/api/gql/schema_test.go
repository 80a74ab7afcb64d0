package gql

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
)

// stubPosts implements ports.PostService; unset funcs panic if called.
type stubPosts struct {
	ports.PostService
	getFn func(ctx context.Context, id string) (*domain.Post, error)
}

func (s *stubPosts) Get(ctx context.Context, id string) (*domain.Post, error) { return s.getFn(ctx, id) }

func TestNewSchema_Parses(t *testing.T) {
	if _, err := NewSchema(Services{}, Options{}, zerolog.Nop()); err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
}

func TestSchema_DepthLimit(t *testing.T) {
	schema, err := NewSchema(Services{}, Options{MaxDepth: 2}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	resp := schema.Exec(context.Background(), `{ user { posts { comments { id } } } }`, "", nil)
	if len(resp.Errors) == 0 {
		t.Fatalf("expected depth limit error")
	}
}

func TestSchema_InternalErrorIsMasked(t *testing.T) {
	posts := &stubPosts{getFn: func(context.Context, string) (*domain.Post, error) {
		return nil, context.DeadlineExceeded
	}}
	schema, err := NewSchema(Services{Posts: posts}, Options{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	resp := schema.Exec(context.Background(), `{ postById(id: "x") { id } }`, "", nil)
	if len(resp.Errors) != 1 {
		t.Fatalf("expected one error, got %+v", resp.Errors)
	}
	e := resp.Errors[0]
	if e.Message != "internal server error" || e.Extensions["code"] != CodeInternal {
		t.Fatalf("unexpected error: %+v", e)
	}

	raw, _ := json.Marshal(resp)
	if strings.Contains(string(raw), "deadline") {
		t.Fatalf("cause leaked to client: %s", raw)
	}
}

func TestSchema_NotFoundIsNull(t *testing.T) {
	posts := &stubPosts{getFn: func(context.Context, string) (*domain.Post, error) {
		return nil, domain.ErrNotFound
	}}
	schema, _ := NewSchema(Services{Posts: posts}, Options{}, zerolog.Nop())

	resp := schema.Exec(context.Background(), `{ postById(id: "x") { id } }`, "", nil)
	if len(resp.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}
	if string(resp.Data) != `{"postById":null}` {
		t.Fatalf("unexpected data: %s", resp.Data)
	}
}
