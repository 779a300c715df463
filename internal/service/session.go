package service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/target/catalog-console/internal/apiclient"
	domainauth "github.com/target/catalog-console/internal/domain/auth"
	"github.com/target/catalog-console/internal/domain/notice"
)

// Paths the session provider navigates between.
const (
	LoginPath    = "/auth/login"
	RegisterPath = "/auth/register"
	HomePath     = "/"
)

const fallbackMessage = "An error occurred"

// Session is the authenticated-user context for one browser request.
// User is nil until a login, registration, or token verification succeeds.
type Session struct {
	User         *domainauth.User
	Token        string
	ErrorMessage string
	Loading      bool
}

// Authenticated reports whether the session carries a verified user and token.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	API    Requester    // Required: backend request helper
	Logger *slog.Logger // Optional: structured logger
}

// SessionService logs users in and out against the backend and resolves the
// session for each navigation. It holds no per-user state.
type SessionService struct {
	api    Requester
	logger *slog.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.API == nil {
		panic("NewSessionService: API is required") //nolint:forbidigo // Fail fast during wiring.
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{api: opts.API, logger: logger.With("component", "session")}
}

// authPayload is the shape of /auth/login and /auth/register answers. Some
// backends return the user at the top level, others nest it under "user".
type authPayload struct {
	Token string `json:"token"`
	domainauth.User
	Nested *domainauth.User `json:"user"`
}

func (p authPayload) user() domainauth.User {
	if p.Nested != nil && !p.Nested.IsZero() {
		return *p.Nested
	}
	return p.User
}

// Login sends credentials to the backend. A 200 answer stores the returned token
// and authenticates the session; anything else leaves it unauthenticated with
// ErrorMessage set to the backend's message.
func (s *SessionService) Login(ctx context.Context, email, password string) (out Session) {
	out.Loading = true
	defer func() { out.Loading = false }()

	creds := domainauth.Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := creds.Validate(); err != nil {
		out.ErrorMessage = err.Error()
		return out
	}

	token, user, msg := s.authenticate(ctx, LoginPath, creds, http.StatusOK)
	if token == "" {
		out.ErrorMessage = msg
		return out
	}
	if user.IsZero() {
		user = domainauth.User{Email: creds.Email}
	}
	s.logger.InfoContext(ctx, "user logged in", "email", user.Email)
	return Session{User: &user, Token: token}
}

// Register creates an account. The contract matches Login except that the
// backend signals success with 201.
func (s *SessionService) Register(ctx context.Context, reg domainauth.Registration) (out Session) {
	out.Loading = true
	defer func() { out.Loading = false }()

	reg.Email = strings.TrimSpace(reg.Email)
	reg.FirstName = strings.TrimSpace(reg.FirstName)
	reg.LastName = strings.TrimSpace(reg.LastName)
	if err := reg.Validate(); err != nil {
		out.ErrorMessage = err.Error()
		return out
	}

	token, user, msg := s.authenticate(ctx, RegisterPath, reg, http.StatusCreated)
	if token == "" {
		out.ErrorMessage = msg
		return out
	}
	if user.IsZero() {
		user = reg.User()
	}
	s.logger.InfoContext(ctx, "user registered", "email", user.Email)
	return Session{User: &user, Token: token}
}

// authenticate posts body to path. It returns an empty token and a
// user-facing message on any failure.
func (s *SessionService) authenticate(
	ctx context.Context,
	path string,
	body any,
	want int,
) (string, domainauth.User, string) {
	// Credentials never travel with a stale bearer token.
	ctx = apiclient.WithToken(ctx, "")
	resp, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		s.logger.WarnContext(ctx, "auth request failed", "path", path, "error", err)
		return "", domainauth.User{}, fallbackMessage
	}
	if resp.StatusCode != want {
		msg := resp.Message()
		if msg == "" {
			msg = fallbackMessage
		}
		s.logger.InfoContext(ctx, "auth request rejected", "path", path, "status", resp.StatusCode)
		return "", domainauth.User{}, msg
	}

	var payload authPayload
	if err = resp.Decode(&payload); err != nil || payload.Token == "" {
		s.logger.WarnContext(ctx, "auth response missing token", "path", path, "error", err)
		return "", domainauth.User{}, fallbackMessage
	}
	return payload.Token, payload.user(), ""
}

// LogoutResult tells the caller how to finish a logout.
type LogoutResult struct {
	Session  Session
	Notice   notice.Notice
	Redirect string
}

// Logout discards the session and produces the farewell notice.
func (s *SessionService) Logout(ctx context.Context) LogoutResult {
	s.logger.InfoContext(ctx, "user logged out")
	return LogoutResult{
		Session:  Session{},
		Notice:   notice.Info("See you later", "You log out from this account."),
		Redirect: LoginPath,
	}
}

// AutoLoginResult is the resolved session for one navigation.
type AutoLoginResult struct {
	Session Session
	// Redirect is non-empty when the browser must be sent elsewhere.
	Redirect string
	// ClearToken is set when the backend rejected the stored token.
	ClearToken bool
}

// AutoLogin resolves the session for a navigation to path. Without a token the
// browser is sent to the login screen unless it is already registering. With a
// token, the backend verifies it: 200 populates the user, any other status is a
// silent logout.
func (s *SessionService) AutoLogin(ctx context.Context, token, path string) (out AutoLoginResult) {
	out.Session.Loading = true
	defer func() { out.Session.Loading = false }()

	token = strings.TrimSpace(token)
	if token == "" {
		if path != RegisterPath {
			out.Redirect = LoginPath
		}
		return out
	}

	ctx = apiclient.WithToken(ctx, token)
	resp, err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: "/auth/verify"})
	if err != nil {
		s.logger.WarnContext(ctx, "token verification failed", "error", err)
		out.Session.ErrorMessage = fallbackMessage
		out.Redirect = LoginPath
		return out
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.DebugContext(ctx, "token rejected", "status", resp.StatusCode)
		out.Redirect = LoginPath
		out.ClearToken = true
		return out
	}

	var user domainauth.User
	if err = resp.Decode(&user); err != nil {
		s.logger.WarnContext(ctx, "decode verified user", "error", err)
		out.Redirect = LoginPath
		out.ClearToken = true
		return out
	}

	out.Session.User = &user
	out.Session.Token = token
	return out
}
