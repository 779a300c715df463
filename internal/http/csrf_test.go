package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfTestHandler() http.Handler {
	return CSRFProtection(CSRFConfig{Logger: discardLogger()})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetCSRFToken(r)))
	}))
}

func issuedCSRFCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == DefaultCSRFCookieName {
			return c
		}
	}
	t.Fatal("csrf cookie not set")
	return nil
}

func TestCSRF_IssuesHttpOnlyCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	ck := issuedCSRFCookie(t, rec)
	assert.NotEmpty(t, ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.False(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, ck.Value, rec.Body.String(), "token exposed to templates")
}

func TestCSRF_SecureBehindTLSProxy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "http, https")
	rec := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(rec, req)

	assert.True(t, issuedCSRFCookie(t, rec).Secure)
}

func TestCSRF_ReusesExistingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "existing"})
	rec := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, "existing", rec.Body.String())
}

func TestCSRF_UnsafeMethods(t *testing.T) {
	const token = "tok-123"
	form := func(v string) *strings.Reader {
		return strings.NewReader(url.Values{DefaultCSRFCookieName: {v}}.Encode())
	}

	tests := []struct {
		name  string
		build func() *http.Request
		want  int
	}{
		{
			name: "form field matches",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/company", form(token))
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return r
			},
			want: http.StatusOK,
		},
		{
			name: "header matches",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/forms/company/validate", nil)
				r.Header.Set(DefaultCSRFHeaderName, token)
				return r
			},
			want: http.StatusOK,
		},
		{
			name: "form field mismatch",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/company", form("other"))
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return r
			},
			want: http.StatusForbidden,
		},
		{
			name: "missing token",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
			},
			want: http.StatusForbidden,
		},
		{
			name: "json body ignores embedded field",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/company", strings.NewReader(`{"csrf_token":"tok-123"}`))
				r.Header.Set("Content-Type", "application/json")
				return r
			},
			want: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.build()
			req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
			rec := httptest.NewRecorder()
			csrfTestHandler().ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCSRF_HTMXRejectionAsksForRefresh(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/forms/login/validate", nil)
	req.Header.Set("HX-Request", "true")
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "a"})
	req.Header.Set(DefaultCSRFHeaderName, "b")
	rec := httptest.NewRecorder()
	csrfTestHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("HX-Refresh"))
}

func TestGetCSRFToken_OutsideMiddleware(t *testing.T) {
	assert.Empty(t, GetCSRFToken(httptest.NewRequest(http.MethodGet, "/", nil)))
}
