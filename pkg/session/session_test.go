package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/chemstock/pkg/config"
	"github.com/stretchr/testify/require"
)

func testManager() *Manager {
	return NewManager(config.SessionConfig{
		CookieName: "chemstock_session",
		TTL:        time.Hour,
	}, NewMemoryStore())
}

func TestLoadWithoutCookieReturnsAnonymousSession(t *testing.T) {
	mgr := testManager()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	sess, err := mgr.Load(req)
	require.NoError(t, err)
	require.Empty(t, sess.UserID())
	require.NotEmpty(t, sess.ID())
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	mgr := testManager()
	rec := httptest.NewRecorder()

	sess, err := mgr.Load(httptest.NewRequest(http.MethodGet, "/login", nil))
	require.NoError(t, err)
	sess.SetUserID("user-1")
	require.NoError(t, mgr.Save(context.Background(), rec, sess))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "chemstock_session", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	reloaded, err := mgr.Load(req)
	require.NoError(t, err)
	require.Equal(t, "user-1", reloaded.UserID())
}

func TestSaveIsSkippedWhenUnchanged(t *testing.T) {
	mgr := testManager()
	rec := httptest.NewRecorder()

	sess, err := mgr.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.NoError(t, mgr.Save(context.Background(), rec, sess))
	require.Empty(t, rec.Result().Cookies())
}

func TestFlashesAreConsumedOnce(t *testing.T) {
	sess := &Session{}
	sess.Flash("danger", "CAS Number already exists!")
	sess.Flash("success", "Product added successfully!")

	flashes := sess.ConsumeFlashes()
	require.Len(t, flashes, 2)
	require.Equal(t, "danger", flashes[0].Level)
	require.Equal(t, "CAS Number already exists!", flashes[0].Message)

	require.Nil(t, sess.ConsumeFlashes())
}

func TestDestroyExpiresCookieAndStoreEntry(t *testing.T) {
	mgr := testManager()
	rec := httptest.NewRecorder()

	sess, err := mgr.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.SetUserID("user-1")
	require.NoError(t, mgr.Save(context.Background(), rec, sess))
	cookie := rec.Result().Cookies()[0]

	logoutRec := httptest.NewRecorder()
	require.NoError(t, mgr.Destroy(context.Background(), logoutRec, sess))
	cleared := logoutRec.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Less(t, cleared[0].MaxAge, 0)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	reloaded, err := mgr.Load(req)
	require.NoError(t, err)
	require.Empty(t, reloaded.UserID())
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "sid", &Data{UserID: "u"}, -time.Second))

	_, ok, err := store.Get(context.Background(), "sid")
	require.NoError(t, err)
	require.False(t, ok)
}
