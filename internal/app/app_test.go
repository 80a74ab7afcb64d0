package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogql/blog-api/internal/pkg/config"
)

type gqlError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type client struct {
	t    *testing.T
	a    *App
	auth string
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{
		Port:  "0",
		Store: config.StoreMemory,
		Auth: config.AuthConfig{
			JWTSecret:   "test-secret",
			TokenTTL:    24 * time.Hour,
			BcryptCost:  bcrypt.MinCost,
			HashWorkers: 2,
		},
	}
	a, err := New(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { a.Close(context.Background()) })
	return a
}

func (c *client) do(query string, vars map[string]any) (int, gqlResponse) {
	c.t.Helper()
	body, _ := json.Marshal(map[string]any{"query": query, "variables": vars})
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if c.auth != "" {
		req.Header.Set("Authorization", c.auth)
	}
	rec := httptest.NewRecorder()
	c.a.Echo.ServeHTTP(rec, req)

	var resp gqlResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		c.t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, resp
}

// ok runs query and decodes data into out, failing on any GraphQL error.
func (c *client) ok(query string, vars map[string]any, out any) {
	c.t.Helper()
	code, resp := c.do(query, vars)
	if code != http.StatusOK || len(resp.Errors) > 0 {
		c.t.Fatalf("query failed (%d): %+v", code, resp.Errors)
	}
	if out != nil {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			c.t.Fatalf("decode data: %v", err)
		}
	}
}

func (c *client) fails(query string, vars map[string]any) gqlError {
	c.t.Helper()
	_, resp := c.do(query, vars)
	if len(resp.Errors) == 0 {
		c.t.Fatalf("expected an error, got data %s", resp.Data)
	}
	return resp.Errors[0]
}

const (
	signupMutation = `mutation($n: String!, $e: String!, $p: String!) { signup(name: $n, email: $e, password: $p) }`
	loginMutation  = `mutation($e: String!, $p: String!) { login(email: $e, password: $p) { token user { id email } } }`
)

func (c *client) signupAndLogin(name, email string) (id string) {
	c.t.Helper()
	c.ok(signupMutation, map[string]any{"n": name, "e": email, "p": "pass123"}, nil)

	var out struct {
		Login struct {
			Token string
			User  struct{ ID, Email string }
		}
	}
	c.ok(loginMutation, map[string]any{"e": email, "p": "pass123"}, &out)
	if out.Login.Token == "" || out.Login.User.Email != email {
		c.t.Fatalf("unexpected login response: %+v", out)
	}
	c.auth = "Bearer " + out.Login.Token
	return out.Login.User.ID
}

func TestGraphQL_EndToEnd(t *testing.T) {
	a := newTestApp(t)
	alice := &client{t: t, a: a}
	bob := &client{t: t, a: a}

	aliceID := alice.signupAndLogin("alice", "a@x.com")
	bob.signupAndLogin("bob", "b@x.com")

	var created struct {
		CreatePost struct {
			ID      string
			Content string
			Author  struct{ ID string }
		}
	}
	alice.ok(`mutation { createPost(content: "hi") { id content author { id } } }`, nil, &created)
	post := created.CreatePost
	if post.Content != "hi" || post.Author.ID != aliceID {
		t.Fatalf("unexpected post: %+v", post)
	}

	var commented struct {
		CreateComment struct {
			Content string
			Post    struct{ ID string }
		}
	}
	bob.ok(`mutation($id: ID!) { createComment(postId: $id, content: "nice") { content post { id } } }`,
		map[string]any{"id": post.ID}, &commented)
	if commented.CreateComment.Post.ID != post.ID {
		t.Fatalf("comment attached to wrong post: %+v", commented)
	}

	var hacked struct {
		UpdatePost struct{ Content string }
	}
	bob.ok(`mutation($id: ID!) { updatePost(id: $id, content: "hacked") { content } }`,
		map[string]any{"id": post.ID}, &hacked)
	if hacked.UpdatePost.Content != "hi" {
		t.Fatalf("non-owner update must leave content unchanged, got %q", hacked.UpdatePost.Content)
	}

	anon := &client{t: t, a: a}
	var read struct {
		PostByID struct {
			Content  string
			Comments []struct {
				Content string
				Author  struct{ Name string }
			}
		}
	}
	anon.ok(`query($id: ID!) { postById(id: $id) { content comments { content author { name } } } }`,
		map[string]any{"id": post.ID}, &read)
	if read.PostByID.Content != "hi" || len(read.PostByID.Comments) != 1 {
		t.Fatalf("unexpected post read: %+v", read)
	}
	if c := read.PostByID.Comments[0]; c.Content != "nice" || c.Author.Name != "bob" {
		t.Fatalf("unexpected comment: %+v", c)
	}

	var me struct {
		User struct {
			Name  string
			Posts []struct{ Content string }
		}
	}
	alice.ok(`{ user { name posts { content } } }`, nil, &me)
	if me.User.Name != "alice" || len(me.User.Posts) != 1 {
		t.Fatalf("unexpected viewer: %+v", me)
	}

	var deleted struct{ DeletePost bool }
	bob.ok(`mutation($id: ID!) { deletePost(id: $id) }`, map[string]any{"id": post.ID}, &deleted)
	if !deleted.DeletePost {
		t.Fatalf("deletePost must report true")
	}
	var counts struct{ CountPosts, CountUsers int }
	anon.ok(`{ countPosts countUsers }`, nil, &counts)
	if counts.CountPosts != 1 || counts.CountUsers != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestGraphQL_AnonymousQueries(t *testing.T) {
	a := newTestApp(t)
	anon := &client{t: t, a: a}

	var out struct {
		User     *struct{ ID string }
		UserByID *struct{ ID string }
		PostByID *struct{ ID string }
	}
	anon.ok(`{ user { id } userById(id: "000000000000000000000000") { id } postById(id: "nope") { id } }`, nil, &out)
	if out.User != nil || out.UserByID != nil || out.PostByID != nil {
		t.Fatalf("expected nulls, got %+v", out)
	}
}

func TestGraphQL_UsersPageIsCapped(t *testing.T) {
	a := newTestApp(t)
	c := &client{t: t, a: a}
	for i := 0; i < 55; i++ {
		c.ok(signupMutation, map[string]any{"n": "u", "e": fmt.Sprintf("u%d@x.com", i), "p": "p"}, nil)
	}

	var out struct{ Users []struct{ ID string } }
	c.ok(`{ users(first: 1000) { id } }`, nil, &out)
	if len(out.Users) != 50 {
		t.Fatalf("expected 50 users, got %d", len(out.Users))
	}

	c.ok(`{ users(first: 10, after: 50) { id } }`, nil, &out)
	if len(out.Users) != 5 {
		t.Fatalf("expected 5 users after offset 50, got %d", len(out.Users))
	}
}

func TestGraphQL_Errors(t *testing.T) {
	a := newTestApp(t)
	c := &client{t: t, a: a}
	c.ok(signupMutation, map[string]any{"n": "alice", "e": "a@x.com", "p": "pass123"}, nil)

	dup := c.fails(signupMutation, map[string]any{"n": "other", "e": "a@x.com", "p": "zzz"})
	if dup.Extensions["code"] != "BAD_USER_INPUT" || dup.Message != "Please validate your input" {
		t.Fatalf("unexpected duplicate signup error: %+v", dup)
	}

	wrongPassword := c.fails(loginMutation, map[string]any{"e": "a@x.com", "p": "nope"})
	unknownEmail := c.fails(loginMutation, map[string]any{"e": "ghost@x.com", "p": "pass123"})
	if wrongPassword.Message != unknownEmail.Message || wrongPassword.Extensions["code"] != unknownEmail.Extensions["code"] {
		t.Fatalf("login failures must be indistinguishable: %+v vs %+v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Extensions["code"] != "UNAUTHENTICATED" {
		t.Fatalf("expected UNAUTHENTICATED, got %+v", wrongPassword)
	}

	forbidden := c.fails(`mutation { createPost(content: "x") { id } }`, nil)
	if forbidden.Extensions["code"] != "FORBIDDEN" || forbidden.Message != "Please provide a JWT" {
		t.Fatalf("unexpected anonymous mutation error: %+v", forbidden)
	}

	c.signupAndLogin("bob", "b@x.com")
	missing := c.fails(`mutation { updatePost(id: "000000000000000000000000", content: "x") { id } }`, nil)
	if missing.Extensions["code"] != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %+v", missing)
	}
	empty := c.fails(`mutation { createPost(content: "") { id } }`, nil)
	if empty.Extensions["code"] != "BAD_USER_INPUT" {
		t.Fatalf("expected BAD_USER_INPUT, got %+v", empty)
	}
}

func TestGraphQL_TamperedToken(t *testing.T) {
	a := newTestApp(t)
	c := &client{t: t, a: a}
	c.signupAndLogin("alice", "a@x.com")
	c.auth += "x"

	code, resp := c.do(`{ user { id } }`, nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Extensions["code"] != "UNAUTHENTICATED" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

type commentView struct {
	ID      string
	Content string
	Author  struct{ Name string }
}

// postComments reads the comments of postID anonymously; ok is false when the
// post no longer exists.
func postComments(t *testing.T, a *App, postID string) (comments []commentView, ok bool) {
	t.Helper()
	var out struct {
		PostByID *struct{ Comments []commentView }
	}
	(&client{t: t, a: a}).ok(`query($id: ID!) { postById(id: $id) { comments { id content author { name } } } }`,
		map[string]any{"id": postID}, &out)
	if out.PostByID == nil {
		return nil, false
	}
	return out.PostByID.Comments, true
}

func createPost(c *client, content string) string {
	c.t.Helper()
	var out struct{ CreatePost struct{ ID string } }
	c.ok(`mutation($c: String!) { createPost(content: $c) { id } }`, map[string]any{"c": content}, &out)
	return out.CreatePost.ID
}

func createComment(c *client, postID, content string) string {
	c.t.Helper()
	var out struct{ CreateComment struct{ ID string } }
	c.ok(`mutation($p: ID!, $c: String!) { createComment(postId: $p, content: $c) { id } }`,
		map[string]any{"p": postID, "c": content}, &out)
	return out.CreateComment.ID
}

func TestGraphQL_CommentMutationsScopedToAuthor(t *testing.T) {
	a := newTestApp(t)
	alice := &client{t: t, a: a}
	bob := &client{t: t, a: a}
	alice.signupAndLogin("alice", "a@x.com")
	bob.signupAndLogin("bob", "b@x.com")

	postID := createPost(alice, "hi")
	commentID := createComment(alice, postID, "mine")

	var updated struct{ UpdateComment struct{ Content string } }
	bob.ok(`mutation($id: ID!) { updateComment(id: $id, content: "hacked") { content } }`,
		map[string]any{"id": commentID}, &updated)
	if updated.UpdateComment.Content != "mine" {
		t.Fatalf("non-author update must leave content unchanged, got %q", updated.UpdateComment.Content)
	}

	var deleted struct{ DeleteComment bool }
	bob.ok(`mutation($id: ID!) { deleteComment(id: $id) }`, map[string]any{"id": commentID}, &deleted)
	if !deleted.DeleteComment {
		t.Fatalf("deleteComment must report true")
	}

	comments, _ := postComments(t, a, postID)
	if len(comments) != 1 || comments[0].ID != commentID || comments[0].Content != "mine" {
		t.Fatalf("comment must survive untouched, got %+v", comments)
	}

	alice.ok(`mutation($id: ID!) { updateComment(id: $id, content: "edited") { content } }`,
		map[string]any{"id": commentID}, &updated)
	if updated.UpdateComment.Content != "edited" {
		t.Fatalf("author update: got %q", updated.UpdateComment.Content)
	}
	alice.ok(`mutation($id: ID!) { deleteComment(id: $id) }`, map[string]any{"id": commentID}, &deleted)
	if comments, _ := postComments(t, a, postID); len(comments) != 0 {
		t.Fatalf("author delete must remove the comment, got %+v", comments)
	}
}

func TestGraphQL_DeleteAccount(t *testing.T) {
	a := newTestApp(t)
	alice := &client{t: t, a: a}
	bob := &client{t: t, a: a}
	alice.signupAndLogin("alice", "a@x.com")
	bob.signupAndLogin("bob", "b@x.com")

	alicePost := createPost(alice, "a")
	bobPost := createPost(bob, "b")
	createComment(alice, bobPost, "from alice")
	bobComment := createComment(bob, bobPost, "from bob")
	createComment(bob, alicePost, "on alice")

	var out struct{ DeleteAccount bool }
	alice.ok(`mutation { deleteAccount }`, nil, &out)
	if !out.DeleteAccount {
		t.Fatalf("deleteAccount must report true")
	}

	var counts struct{ CountPosts, CountUsers int }
	bob.ok(`{ countPosts countUsers }`, nil, &counts)
	if counts.CountPosts != 1 || counts.CountUsers != 1 {
		t.Fatalf("expected only bob's data left, got %+v", counts)
	}

	if _, ok := postComments(t, a, alicePost); ok {
		t.Fatalf("alice's post must be deleted")
	}
	comments, ok := postComments(t, a, bobPost)
	if !ok {
		t.Fatalf("bob's post must survive")
	}
	if len(comments) != 1 || comments[0].ID != bobComment || comments[0].Author.Name != "bob" {
		t.Fatalf("expected only bob's comment on his post, got %+v", comments)
	}

	code, _ := alice.do(`{ user { id } }`, nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("token of a deleted account must be rejected, got %d", code)
	}
}

func TestRouter_HTTPSurface(t *testing.T) {
	a := newTestApp(t)

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing query: expected 400, got %d", rec.Code)
	}
}
