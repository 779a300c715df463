package httpx

import (
	"net/http"
	"strings"
	"time"
)

const (
	defaultTokenCookie = "token"
	defaultFlashCookie = "flash"
)

// CookieConfig describes the browser cookies the console owns: the backend
// bearer token and the flash notice id.
type CookieConfig struct {
	TokenName string
	FlashName string
	Domain    string
	MaxAge    time.Duration
}

func (c CookieConfig) tokenName() string {
	if c.TokenName == "" {
		return defaultTokenCookie
	}
	return c.TokenName
}

func (c CookieConfig) flashName() string {
	if c.FlashName == "" {
		return defaultFlashCookie
	}
	return c.FlashName
}

// token returns the bearer token stored in the browser, if any.
func (c CookieConfig) token(r *http.Request) string {
	ck, err := r.Cookie(c.tokenName())
	if err != nil {
		return ""
	}
	return ck.Value
}

func (c CookieConfig) setToken(w http.ResponseWriter, r *http.Request, token string) {
	maxAge := c.MaxAge
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.tokenName(),
		Value:    token,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(maxAge.Seconds()),
	})
}

func (c CookieConfig) clearToken(w http.ResponseWriter, r *http.Request) {
	c.clear(w, r, c.tokenName())
}

// clear expires a cookie, mirroring the attributes used when it was set so
// every browser drops it.
func (c CookieConfig) clear(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || isForwardedHTTPS(r)
}

// isForwardedHTTPS checks if the request was forwarded over HTTPS.
// Handles comma-separated values in X-Forwarded-Proto header.
func isForwardedHTTPS(r *http.Request) bool {
	xfProto := r.Header.Get("X-Forwarded-Proto")
	if xfProto == "" {
		return false
	}
	for _, proto := range strings.Split(xfProto, ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}
