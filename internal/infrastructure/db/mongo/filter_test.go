package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/blogql/blog-api/internal/core/ports"
)

func TestPostFilter_ScopesByOwner(t *testing.T) {
	id := primitive.NewObjectID()
	owner := primitive.NewObjectID()

	m, ok := postFilter(ports.PostFilter{ID: id.Hex(), UserID: owner.Hex()})
	if !ok {
		t.Fatalf("expected valid filter")
	}
	if m["_id"] != id || m["userId"] != owner {
		t.Fatalf("unexpected filter: %v", m)
	}
}

func TestPostFilter_EmptyFieldsOmitted(t *testing.T) {
	m, ok := postFilter(ports.PostFilter{})
	if !ok || len(m) != 0 {
		t.Fatalf("expected empty filter, got %v (ok=%v)", m, ok)
	}
}

func TestFilters_MalformedIDMatchesNothing(t *testing.T) {
	if _, ok := userFilter(ports.UserFilter{ID: "zzz"}); ok {
		t.Fatalf("user filter accepted malformed id")
	}
	if _, ok := postFilter(ports.PostFilter{UserID: "zzz"}); ok {
		t.Fatalf("post filter accepted malformed owner")
	}
	if _, ok := commentFilter(ports.CommentFilter{PostID: "zzz"}); ok {
		t.Fatalf("comment filter accepted malformed post id")
	}
}

func TestUserFilter_Email(t *testing.T) {
	m, ok := userFilter(ports.UserFilter{Email: "a@x.com"})
	if !ok || m["email"] != "a@x.com" || len(m) != 1 {
		t.Fatalf("unexpected filter: %v", m)
	}
}

func TestFindOptions(t *testing.T) {
	opts := findOptions(ports.Page{Limit: 50, Skip: 10})
	if opts.Limit == nil || *opts.Limit != 50 {
		t.Fatalf("expected limit 50, got %v", opts.Limit)
	}
	if opts.Skip == nil || *opts.Skip != 10 {
		t.Fatalf("expected skip 10, got %v", opts.Skip)
	}

	unbounded := findOptions(ports.Page{})
	if unbounded.Limit != nil || unbounded.Skip != nil {
		t.Fatalf("expected no limit/skip for zero page")
	}
}
