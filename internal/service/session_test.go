package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/catalog-console/internal/apiclient"
	domainauth "github.com/target/catalog-console/internal/domain/auth"
	"github.com/target/catalog-console/internal/domain/notice"
	"github.com/target/catalog-console/internal/mocks"
)

func newSessionService(t *testing.T) (*SessionService, func(route string, status int, body any)) {
	t.Helper()
	backend, client := newBackendClient(t)
	svc := NewSessionService(SessionServiceOptions{API: client})
	return svc, func(route string, status int, body any) { backend.On(route, status, body) }
}

func TestNewSessionService_RequiresAPI(t *testing.T) {
	assert.Panics(t, func() { NewSessionService(SessionServiceOptions{}) })
}

func TestSessionService_Login_Success(t *testing.T) {
	backend, client := newBackendClient(t)
	backend.On("POST /auth/login", http.StatusOK, map[string]any{"token": "abc"})
	svc := NewSessionService(SessionServiceOptions{API: client})

	// A stale token on the context must not leak into the credential request.
	ctx := apiclient.WithToken(context.Background(), "stale")
	sess := svc.Login(ctx, "user@test.com", "secret")

	require.True(t, sess.Authenticated())
	assert.Equal(t, "abc", sess.Token)
	assert.Equal(t, "user@test.com", sess.User.Email)
	assert.Empty(t, sess.ErrorMessage)
	assert.False(t, sess.Loading)

	req, ok := backend.Last("POST /auth/login")
	require.True(t, ok)
	assert.Empty(t, req.Authorization)
	assert.JSONEq(t, `{"email":"user@test.com","password":"secret"}`, req.Body)
}

func TestSessionService_Login_UserFromPayload(t *testing.T) {
	svc, on := newSessionService(t)
	on("POST /auth/login", http.StatusOK, map[string]any{
		"token": "abc",
		"user":  map[string]any{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@test.com"},
	})

	sess := svc.Login(context.Background(), "ada@test.com", "secret")

	require.True(t, sess.Authenticated())
	assert.Equal(t, "Ada Lovelace", sess.User.DisplayName())
}

func TestSessionService_Login_Rejected(t *testing.T) {
	svc, on := newSessionService(t)
	on("POST /auth/login", http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})

	sess := svc.Login(context.Background(), "user@test.com", "wrong")

	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.Token)
	assert.Equal(t, "Invalid credentials", sess.ErrorMessage)
	assert.False(t, sess.Loading)
}

func TestSessionService_Login_RejectedWithoutMessage(t *testing.T) {
	svc, on := newSessionService(t)
	on("POST /auth/login", http.StatusInternalServerError, map[string]any{})

	sess := svc.Login(context.Background(), "user@test.com", "secret")

	assert.False(t, sess.Authenticated())
	assert.Equal(t, "An error occurred", sess.ErrorMessage)
}

func TestSessionService_Login_SuccessWithoutToken(t *testing.T) {
	svc, on := newSessionService(t)
	on("POST /auth/login", http.StatusOK, map[string]any{})

	sess := svc.Login(context.Background(), "user@test.com", "secret")

	assert.False(t, sess.Authenticated())
	assert.Equal(t, "An error occurred", sess.ErrorMessage)
}

func TestSessionService_Login_InvalidInputSkipsBackend(t *testing.T) {
	backend, client := newBackendClient(t)
	svc := NewSessionService(SessionServiceOptions{API: client})

	sess := svc.Login(context.Background(), "not-an-email", "secret")

	assert.False(t, sess.Authenticated())
	assert.Contains(t, sess.ErrorMessage, "email")
	assert.Empty(t, backend.Requests())
}

func TestSessionService_Login_TransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockRequester(ctrl)
	api.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(1)

	svc := NewSessionService(SessionServiceOptions{API: api})
	sess := svc.Login(context.Background(), "user@test.com", "secret")

	assert.False(t, sess.Authenticated())
	assert.Equal(t, "An error occurred", sess.ErrorMessage)
	assert.False(t, sess.Loading)
}

func TestSessionService_Register_Success(t *testing.T) {
	backend, client := newBackendClient(t)
	backend.On("POST /auth/register", http.StatusCreated, map[string]any{"token": "new-token"})
	svc := NewSessionService(SessionServiceOptions{API: client})

	reg := domainauth.Registration{FirstName: "Ada", LastName: "Lovelace", Email: "ada@test.com", Password: "secret"}
	sess := svc.Register(context.Background(), reg)

	require.True(t, sess.Authenticated())
	assert.Equal(t, "new-token", sess.Token)
	assert.Equal(t, reg.User(), *sess.User)

	req, ok := backend.Last("POST /auth/register")
	require.True(t, ok)
	assert.JSONEq(t,
		`{"firstName":"Ada","lastName":"Lovelace","email":"ada@test.com","password":"secret"}`,
		req.Body,
	)
}

func TestSessionService_Register_OKIsNotCreated(t *testing.T) {
	svc, on := newSessionService(t)
	on("POST /auth/register", http.StatusOK, map[string]any{"token": "tok", "message": "unexpected"})

	reg := domainauth.Registration{FirstName: "Ada", LastName: "Lovelace", Email: "ada@test.com", Password: "secret"}
	sess := svc.Register(context.Background(), reg)

	assert.False(t, sess.Authenticated())
	assert.Equal(t, "unexpected", sess.ErrorMessage)
}

func TestSessionService_Register_Conflict(t *testing.T) {
	svc, on := newSessionService(t)
	on("POST /auth/register", http.StatusConflict, map[string]any{"message": "Email already in use"})

	reg := domainauth.Registration{FirstName: "Ada", LastName: "Lovelace", Email: "ada@test.com", Password: "secret"}
	sess := svc.Register(context.Background(), reg)

	assert.False(t, sess.Authenticated())
	assert.Equal(t, "Email already in use", sess.ErrorMessage)
}

func TestSessionService_Logout(t *testing.T) {
	svc, _ := newSessionService(t)

	res := svc.Logout(context.Background())

	assert.False(t, res.Session.Authenticated())
	assert.Equal(t, LoginPath, res.Redirect)
	assert.Equal(t, notice.KindInfo, res.Notice.Kind)
	assert.Equal(t, "See you later", res.Notice.Title)
	assert.Equal(t, "You log out from this account.", res.Notice.Description)
}

func TestSessionService_AutoLogin_NoToken(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		redirect string
	}{
		{name: "register page stays", path: RegisterPath, redirect: ""},
		{name: "dashboard redirects", path: "/", redirect: LoginPath},
		{name: "company list redirects", path: "/company", redirect: LoginPath},
		{name: "login page redirects to itself", path: LoginPath, redirect: LoginPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, client := newBackendClient(t)
			svc := NewSessionService(SessionServiceOptions{API: client})

			res := svc.AutoLogin(context.Background(), "", tt.path)

			assert.Equal(t, tt.redirect, res.Redirect)
			assert.False(t, res.ClearToken)
			assert.False(t, res.Session.Authenticated())
			assert.False(t, res.Session.Loading)
			assert.Empty(t, backend.Requests())
		})
	}
}

func TestSessionService_AutoLogin_Verified(t *testing.T) {
	backend, client := newBackendClient(t)
	backend.On("GET /auth/verify", http.StatusOK, map[string]any{
		"firstName": "Ada", "lastName": "Lovelace", "email": "ada@test.com",
	})
	svc := NewSessionService(SessionServiceOptions{API: client})

	res := svc.AutoLogin(context.Background(), "abc", "/company")

	require.True(t, res.Session.Authenticated())
	assert.Empty(t, res.Redirect)
	assert.False(t, res.ClearToken)
	assert.Equal(t, "ada@test.com", res.Session.User.Email)
	assert.Equal(t, "abc", res.Session.Token)

	req, ok := backend.Last("GET /auth/verify")
	require.True(t, ok)
	assert.Equal(t, "Bearer abc", req.Authorization)
	assert.Empty(t, req.Body)
}

func TestSessionService_AutoLogin_Rejected(t *testing.T) {
	svc, on := newSessionService(t)
	on("GET /auth/verify", http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})

	res := svc.AutoLogin(context.Background(), "expired", "/")

	assert.False(t, res.Session.Authenticated())
	assert.Equal(t, LoginPath, res.Redirect)
	assert.True(t, res.ClearToken)
	// A rejected token is a silent logout, not an error.
	assert.Empty(t, res.Session.ErrorMessage)
}

func TestSessionService_AutoLogin_PlainTextRejectionClearsToken(t *testing.T) {
	svc, on := newSessionService(t)
	on("GET /auth/verify", http.StatusUnauthorized, "Unauthorized")

	res := svc.AutoLogin(context.Background(), "expired", "/company")

	assert.Equal(t, LoginPath, res.Redirect)
	assert.True(t, res.ClearToken)
	assert.Empty(t, res.Session.ErrorMessage)
}

func TestSessionService_AutoLogin_TransportFailureKeepsToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockRequester(ctrl)
	api.EXPECT().
		Do(gomock.Any(), apiclient.Request{Method: http.MethodGet, Path: "/auth/verify"}).
		DoAndReturn(func(ctx context.Context, _ apiclient.Request) (*apiclient.Response, error) {
			assert.Equal(t, "abc", apiclient.TokenFromContext(ctx))
			return nil, errors.New("dial tcp: connection refused")
		})

	svc := NewSessionService(SessionServiceOptions{API: api})
	res := svc.AutoLogin(context.Background(), "abc", "/")

	assert.Equal(t, LoginPath, res.Redirect)
	assert.False(t, res.ClearToken)
	assert.Equal(t, "An error occurred", res.Session.ErrorMessage)
}

func TestSessionService_AutoLogin_UndecodableUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockRequester(ctrl)
	api.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(&apiclient.Response{StatusCode: http.StatusOK, Data: json.RawMessage(`["not","a","user"]`)}, nil)

	svc := NewSessionService(SessionServiceOptions{API: api})
	res := svc.AutoLogin(context.Background(), "abc", "/")

	assert.Equal(t, LoginPath, res.Redirect)
	assert.True(t, res.ClearToken)
}
