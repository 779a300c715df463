package httpx

import (
	"context"

	domainauth "github.com/target/catalog-console/internal/domain/auth"
	"github.com/target/catalog-console/internal/service"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

// WithSession returns a child context carrying the per-request session.
func WithSession(ctx context.Context, s service.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session resolved by the session middleware.
// Requests that bypass the middleware get the zero Session.
func SessionFromContext(ctx context.Context) service.Session {
	s, _ := ctx.Value(sessionKey{}).(service.Session)
	return s
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(ctx context.Context) (*domainauth.User, bool) {
	s := SessionFromContext(ctx)
	if !s.Authenticated() {
		return nil, false
	}
	return s.User, true
}
