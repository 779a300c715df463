package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/target/catalog-console/internal/domain/notice"
	"github.com/target/catalog-console/internal/ports"
)

type flashKey struct{}

// flashBox binds the flash store to one browser for the duration of a request.
// The id is allocated lazily so plain page views never set a cookie.
type flashBox struct {
	store   ports.FlashStore
	cookies CookieConfig
	logger  *slog.Logger
	w       http.ResponseWriter
	r       *http.Request
	id      string
}

// Flash makes the notice queue of the requesting browser available to handlers.
func Flash(store ports.FlashStore, cookies CookieConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			box := &flashBox{store: store, cookies: cookies, logger: logger, w: w, r: r}
			if ck, err := r.Cookie(cookies.flashName()); err == nil {
				if _, perr := uuid.Parse(ck.Value); perr == nil {
					box.id = ck.Value
				}
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), flashKey{}, box)))
		})
	}
}

func flashFrom(ctx context.Context) *flashBox {
	box, _ := ctx.Value(flashKey{}).(*flashBox)
	return box
}

// pushNotice queues n for the next page rendered for this browser. It must be
// called before the response header is written.
func pushNotice(r *http.Request, n notice.Notice) {
	box := flashFrom(r.Context())
	if box == nil || box.store == nil {
		return
	}
	if box.id == "" {
		box.id = uuid.NewString()
		http.SetCookie(box.w, &http.Cookie{
			Name:     box.cookies.flashName(),
			Value:    box.id,
			Path:     "/",
			Domain:   box.cookies.Domain,
			HttpOnly: true,
			Secure:   isSecureRequest(box.r),
			SameSite: http.SameSiteLaxMode,
		})
	}
	if err := box.store.Push(r.Context(), box.id, n); err != nil {
		box.logger.WarnContext(r.Context(), "flash push failed", "error", err)
	}
}

// popNotices drains the queued notices for this browser.
func popNotices(r *http.Request) []notice.Notice {
	box := flashFrom(r.Context())
	if box == nil || box.store == nil || box.id == "" {
		return nil
	}
	out, err := box.store.Pop(r.Context(), box.id)
	if err != nil {
		box.logger.WarnContext(r.Context(), "flash pop failed", "error", err)
		return nil
	}
	return out
}
