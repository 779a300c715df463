package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/target/catalog-console/internal/adapters/memory"
	"github.com/target/catalog-console/internal/apiclient"
	"github.com/target/catalog-console/internal/service"
	"github.com/target/catalog-console/internal/testutil"
)

// RequireTemplateRenderer creates a TemplateRenderer over the working copy of
// the templates, skipping the test when they are not reachable.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// consoleEnv is the full router wired to real services and a stub backend.
type consoleEnv struct {
	Backend *testutil.Backend
	Flash   *memory.FlashStore
	Server  *httptest.Server
}

func newConsoleEnv(t *testing.T) *consoleEnv {
	t.Helper()
	backend := testutil.NewBackend(t)
	logger := discardLogger()
	client, err := apiclient.New(apiclient.Options{BaseURL: backend.URL, Logger: logger})
	require.NoError(t, err)

	companies := service.NewCompanyService(service.CompanyServiceOptions{API: client, Logger: logger})
	products := service.NewProductService(service.ProductServiceOptions{API: client, Logger: logger})
	flash := memory.NewFlashStore(time.Minute)

	handler, err := NewRouter(RouterServices{
		Sessions:   service.NewSessionService(service.SessionServiceOptions{API: client, Logger: logger}),
		Companies:  companies,
		Products:   products,
		Dashboard:  service.NewDashboardService(service.DashboardServiceOptions{Companies: companies, Products: products}),
		Flash:      flash,
		PageSize:   10,
		TemplateFS: os.DirFS(TemplatePathFromTest),
		StaticFS:   os.DirFS("../../frontend/static"),
		Logger:     logger,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &consoleEnv{Backend: backend, Flash: flash, Server: srv}
}

// verifyAs makes the stub backend accept any bearer token for the given user.
func (e *consoleEnv) verifyAs(first, last, email string) {
	e.Backend.On("GET /auth/verify", http.StatusOK, map[string]any{
		"firstName": first,
		"lastName":  last,
		"email":     email,
	})
}

// browser keeps cookies between requests and never follows redirects.
type browser struct {
	t      *testing.T
	base   *url.URL
	client *http.Client
}

type page struct {
	Status int
	Header http.Header
	Body   string
}

func (e *consoleEnv) browser(t *testing.T) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	base, err := url.Parse(e.Server.URL)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: base,
		client: &http.Client{
			Jar:     jar,
			Timeout: 5 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// signedIn stores a token cookie as if a login had happened earlier.
func (b *browser) signedIn(token string) *browser {
	b.client.Jar.SetCookies(b.base, []*http.Cookie{{Name: defaultTokenCookie, Value: token, Path: "/"}})
	return b
}

func (b *browser) cookie(name string) string {
	for _, c := range b.client.Jar.Cookies(b.base) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (b *browser) do(req *http.Request) page {
	b.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return page{Status: resp.StatusCode, Header: resp.Header, Body: string(body)}
}

func (b *browser) get(path string, headers ...string) page {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base.String()+path, nil)
	require.NoError(b.t, err)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return b.do(req)
}

// post submits form the way a browser form would, including the CSRF field.
func (b *browser) post(path string, form url.Values, headers ...string) page {
	b.t.Helper()
	if b.cookie(DefaultCSRFCookieName) == "" {
		b.get("/healthz")
	}
	if form == nil {
		form = url.Values{}
	}
	form.Set(DefaultCSRFCookieName, b.cookie(DefaultCSRFCookieName))
	req, err := http.NewRequest(http.MethodPost, b.base.String()+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return b.do(req)
}
