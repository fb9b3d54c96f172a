package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/chemstock/api/responses"
	"github.com/angelmondragon/chemstock/pkg/config"
	"github.com/angelmondragon/chemstock/pkg/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *session.Manager {
	return session.NewManager(config.SessionConfig{
		CookieName: "chemstock_session",
		TTL:        time.Hour,
	}, session.NewMemoryStore())
}

func newRenderer(t *testing.T) *responses.Renderer {
	t.Helper()
	renderer, err := responses.NewRenderer()
	require.NoError(t, err)
	return renderer
}

func TestSessionMiddlewareProvidesAnonymousSession(t *testing.T) {
	manager := newManager()

	var seen *session.Session
	handler := Session(manager, nil, newRenderer(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, seen)
	assert.Empty(t, seen.UserID())
}

func TestSessionMiddlewareRestoresStoredSession(t *testing.T) {
	manager := newManager()
	userID := uuid.NewString()

	// establish a session the way a login handler would
	seedReq := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := manager.Load(seedReq)
	require.NoError(t, err)
	sess.SetUserID(userID)
	seedRec := httptest.NewRecorder()
	require.NoError(t, manager.Save(seedReq.Context(), seedRec, sess))
	cookie := seedRec.Result().Cookies()[0]

	var seen *session.Session
	handler := Session(manager, nil, newRenderer(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Equal(t, userID, seen.UserID())
}

func TestRequireUserRedirectsAnonymousToLogin(t *testing.T) {
	handler := RequireUser()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for anonymous requests")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireUserPassesAuthenticatedRequests(t *testing.T) {
	manager := newManager()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := manager.Load(req)
	require.NoError(t, err)
	sess.SetUserID(uuid.NewString())
	req = req.WithContext(WithSession(req.Context(), sess))

	called := false
	handler := RequireUser()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, called)
}
