package service

import (
	"context"
	"fmt"

	"github.com/blogql/blog-api/internal/core/domain"
	"github.com/blogql/blog-api/internal/core/ports"
	"github.com/blogql/blog-api/internal/pkg/validation"
)

// MaxPageSize caps every list query.
const MaxPageSize = 50

// requireViewer is the authorization gate every mutation except signup and
// login passes before touching persistence.
func requireViewer(ctx context.Context) (*domain.User, error) {
	u, ok := domain.ViewerFrom(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}
	return u, nil
}

// requireID rejects an empty id, which would otherwise drop out of a filter
// and widen it.
func requireID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	return nil
}

func validate(v any) error {
	if err := validation.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// pageFor turns client pagination arguments into a bounded page. ok is false
// when the request can only yield an empty list.
func pageFor(in ports.ListInput) (page ports.Page, ok bool) {
	first := int64(MaxPageSize)
	if in.First != nil {
		first = int64(*in.First)
	}
	if first <= 0 {
		return ports.Page{}, false
	}
	if first > MaxPageSize {
		first = MaxPageSize
	}

	var skip int64
	if in.After != nil && *in.After > 0 {
		skip = int64(*in.After)
	}
	return ports.Page{Limit: first, Skip: skip}, true
}
