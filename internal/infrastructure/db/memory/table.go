// Package memory is an in-process implementation of the repository ports. It
// follows the Mongo repositories' semantics (ObjectID hex ids, insertion
// order, malformed ids match nothing) and is meant for local runs and tests.
package memory

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/blogql/blog-api/internal/core/ports"
)

type table[T any] struct {
	mu   sync.RWMutex
	rows []*T
}

func clone[T any](row *T) *T {
	c := *row
	return &c
}

func (t *table[T]) findOne(match func(*T) bool) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.rows {
		if match(r) {
			return clone(r), true
		}
	}
	return nil, false
}

func (t *table[T]) find(match func(*T) bool, page ports.Page) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := []*T{}
	var skipped int64
	for _, r := range t.rows {
		if !match(r) {
			continue
		}
		if skipped < page.Skip {
			skipped++
			continue
		}
		out = append(out, clone(r))
		if page.Limit > 0 && int64(len(out)) == page.Limit {
			break
		}
	}
	return out
}

func (t *table[T]) count(match func(*T) bool) int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var n int64
	for _, r := range t.rows {
		if match(r) {
			n++
		}
	}
	return n
}

func (t *table[T]) insert(row *T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, clone(row))
}

// update applies fn to the first matching row.
func (t *table[T]) update(match func(*T) bool, fn func(*T)) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.rows {
		if match(r) {
			fn(r)
			return 1
		}
	}
	return 0
}

func (t *table[T]) delete(match func(*T) bool, many bool) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.rows[:0]
	var n int64
	for _, r := range t.rows {
		if match(r) && (many || n == 0) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	// Drop references held past the new length.
	for i := len(kept); i < len(t.rows); i++ {
		t.rows[i] = nil
	}
	t.rows = kept
	return n
}

// validIDs reports whether every non-empty id is a well-formed ObjectID.
func validIDs(ids ...string) bool {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			return false
		}
	}
	return true
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func matchNone[T any](*T) bool { return false }
