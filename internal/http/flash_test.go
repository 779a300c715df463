package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/catalog-console/internal/adapters/memory"
	"github.com/target/catalog-console/internal/domain/notice"
	"github.com/target/catalog-console/internal/mocks"
)

func TestFlash_PushAllocatesCookieLazily(t *testing.T) {
	store := memory.NewFlashStore(time.Minute)
	mw := Flash(store, CookieConfig{}, discardLogger())

	quiet := httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, popNotices(r))
	})).ServeHTTP(quiet, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, quiet.Result().Cookies(), "plain page views do not set the flash cookie")

	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushNotice(r, notice.Info("Deleted this product", ""))
		w.WriteHeader(http.StatusSeeOther)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/product/1/delete", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "flash", cookies[0].Name)
	_, err := uuid.Parse(cookies[0].Value)
	require.NoError(t, err)

	var got []notice.Notice
	next := httptest.NewRequest(http.MethodGet, "/product", nil)
	next.AddCookie(cookies[0])
	mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = popNotices(r)
	})).ServeHTTP(httptest.NewRecorder(), next)

	require.Len(t, got, 1)
	assert.Equal(t, "Deleted this product", got[0].Title)

	// Notices are shown once.
	again := httptest.NewRequest(http.MethodGet, "/product", nil)
	again.AddCookie(cookies[0])
	mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		assert.Empty(t, popNotices(r))
	})).ServeHTTP(httptest.NewRecorder(), again)
}

func TestFlash_IgnoresForgedCookie(t *testing.T) {
	store := memory.NewFlashStore(time.Minute)
	mw := Flash(store, CookieConfig{}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "flash", Value: "not-a-uuid"})
	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		pushNotice(r, notice.Info("See you later", ""))
	})).ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "not-a-uuid", cookies[0].Value)
}

func TestFlash_NoMiddlewareIsNoop(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	pushNotice(r, notice.Info("ignored", ""))
	assert.Nil(t, popNotices(r))
}

func TestFlash_StoreErrorsAreSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockFlashStore(ctrl)
	id := uuid.NewString()

	store.EXPECT().Push(gomock.Any(), id, gomock.Any()).Return(errors.New("redis down"))
	store.EXPECT().Pop(gomock.Any(), id).Return(nil, errors.New("redis down"))

	req := httptest.NewRequest(http.MethodGet, "/company", nil)
	req.AddCookie(&http.Cookie{Name: "flash", Value: id})

	rec := httptest.NewRecorder()
	Flash(store, CookieConfig{}, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushNotice(r, notice.Success("Updated"))
		assert.Nil(t, popNotices(r))
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "an existing flash id is reused")
}
