package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/target/catalog-console/internal/domain/auth"
	"github.com/target/catalog-console/internal/service"
)

func TestSessionFromContext(t *testing.T) {
	assert.False(t, SessionFromContext(context.Background()).Authenticated())

	user := &domainauth.User{Email: "ada@example.com"}
	ctx := WithSession(context.Background(), service.Session{User: user, Token: "tok"})
	assert.Equal(t, "tok", SessionFromContext(ctx).Token)
}

func TestCurrentUser(t *testing.T) {
	_, ok := CurrentUser(context.Background())
	assert.False(t, ok)

	// A user without a token is not signed in.
	user := &domainauth.User{Email: "ada@example.com"}
	_, ok = CurrentUser(WithSession(context.Background(), service.Session{User: user}))
	assert.False(t, ok)

	got, ok := CurrentUser(WithSession(context.Background(), service.Session{User: user, Token: "tok"}))
	assert.True(t, ok)
	assert.Same(t, user, got)
}
