package service

import (
	"context"
	"errors"
	"testing"

	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
)

func TestCommentService_CreateAndList(t *testing.T) {
	f := newFixture()
	_, aliceCtx := f.seedUser(t, "alice")
	bob, bobCtx := f.seedUser(t, "bob")
	post, _ := f.postSvc.Create(aliceCtx, ports.CreatePostInput{Content: "hi"})

	c, err := f.cmtSvc.Create(bobCtx, ports.CreateCommentInput{PostID: post.ID, Content: "nice"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.UserID != bob.ID || c.PostID != post.ID {
		t.Fatalf("unexpected comment: %+v", c)
	}

	list, err := f.cmtSvc.ListByPost(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("ListByPost: %v", err)
	}
	if len(list) != 1 || list[0].Content != "nice" {
		t.Fatalf("unexpected comments: %+v", list)
	}
}

func TestCommentService_CreateRequiresViewer(t *testing.T) {
	f := newFixture()
	_, err := f.cmtSvc.Create(context.Background(), ports.CreateCommentInput{PostID: "000000000000000000000000", Content: "x"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCommentService_CreateValidates(t *testing.T) {
	f := newFixture()
	_, ctx := f.seedUser(t, "alice")

	if _, err := f.cmtSvc.Create(ctx, ports.CreateCommentInput{Content: "x"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing post id: expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.cmtSvc.Create(ctx, ports.CreateCommentInput{PostID: "bogus", Content: "x"}); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("malformed post id: expected ErrInvalidID, got %v", err)
	}
}

func TestCommentService_UpdateAndDeleteScopedToOwner(t *testing.T) {
	f := newFixture()
	_, aliceCtx := f.seedUser(t, "alice")
	_, bobCtx := f.seedUser(t, "bob")
	post, _ := f.postSvc.Create(aliceCtx, ports.CreatePostInput{Content: "hi"})
	c, _ := f.cmtSvc.Create(bobCtx, ports.CreateCommentInput{PostID: post.ID, Content: "nice"})

	got, err := f.cmtSvc.Update(aliceCtx, ports.UpdateCommentInput{ID: c.ID, Content: "rude"})
	if err != nil || got.Content != "nice" {
		t.Fatalf("non-owner update: %+v, %v", got, err)
	}
	if err := f.cmtSvc.Delete(aliceCtx, c.ID); err != nil {
		t.Fatalf("non-owner delete must not error: %v", err)
	}
	if list, _ := f.cmtSvc.ListByPost(context.Background(), post.ID); len(list) != 1 {
		t.Fatalf("comment must survive non-owner delete")
	}

	got, err = f.cmtSvc.Update(bobCtx, ports.UpdateCommentInput{ID: c.ID, Content: "great"})
	if err != nil || got.Content != "great" {
		t.Fatalf("owner update: %+v, %v", got, err)
	}
	if err := f.cmtSvc.Delete(bobCtx, c.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if list, _ := f.cmtSvc.ListByPost(context.Background(), post.ID); len(list) != 0 {
		t.Fatalf("comment should be deleted")
	}
}

func TestCommentService_DeleteRequiresViewer(t *testing.T) {
	f := newFixture()
	if err := f.cmtSvc.Delete(context.Background(), "000000000000000000000000"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
