package domain

import "context"

type viewerKey struct{}

// WithViewer returns a copy of ctx carrying the authenticated user.
func WithViewer(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, viewerKey{}, u)
}

// ViewerFrom returns the authenticated user of the request, if any.
func ViewerFrom(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(viewerKey{}).(*User)
	return u, ok && u != nil
}
