package session

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/chemstock/pkg/config"
	"github.com/google/uuid"
)

// Flash is a transient notice rendered once on the next page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Data is the state persisted per session. UserID is empty for anonymous
// visitors; a non-empty value marks the session authenticated.
type Data struct {
	UserID  string  `json:"user_id,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`
}

// Store persists session data keyed by opaque ID.
type Store interface {
	Get(ctx context.Context, id string) (*Data, bool, error)
	Set(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// Session is an in-request handle over the stored data.
type Session struct {
	id      string
	data    Data
	changed bool
	isNew   bool
}

// ID returns the opaque session identifier.
func (s *Session) ID() string { return s.id }

// UserID returns the authenticated user's ID, or "" when anonymous.
func (s *Session) UserID() string { return s.data.UserID }

// SetUserID marks the session as authenticated for the given user.
func (s *Session) SetUserID(userID string) {
	s.data.UserID = userID
	s.changed = true
}

// Flash queues a transient notice for the next rendered page.
func (s *Session) Flash(level, message string) {
	s.data.Flashes = append(s.data.Flashes, Flash{Level: level, Message: message})
	s.changed = true
}

// ConsumeFlashes returns queued notices and removes them from the session.
func (s *Session) ConsumeFlashes() []Flash {
	if len(s.data.Flashes) == 0 {
		return nil
	}
	flashes := s.data.Flashes
	s.data.Flashes = nil
	s.changed = true
	return flashes
}

// Clear wipes all session state (logout).
func (s *Session) Clear() {
	s.data = Data{}
	s.changed = true
}

// Manager loads and saves cookie-bound sessions against a Store.
type Manager struct {
	cfg   config.SessionConfig
	store Store
}

// NewManager builds a session manager over the provided store.
func NewManager(cfg config.SessionConfig, store Store) *Manager {
	return &Manager{cfg: cfg, store: store}
}

// Load resolves the request's session. A missing or expired cookie yields a
// fresh anonymous session that is only persisted once something changes it.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return m.fresh(), nil
	}

	data, ok, err := m.store.Get(r.Context(), cookie.Value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return m.fresh(), nil
	}
	return &Session{id: cookie.Value, data: *data}, nil
}

func (m *Manager) fresh() *Session {
	return &Session{id: uuid.NewString(), isNew: true}
}

// Save persists the session when dirty and refreshes the cookie.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if !sess.changed {
		return nil
	}
	if err := m.store.Set(ctx, sess.id, &sess.data, m.cfg.TTL); err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(sess.id, int(m.cfg.TTL.Seconds())))
	sess.changed = false
	sess.isNew = false
	return nil
}

// Destroy removes the stored session and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if err := m.store.Delete(ctx, sess.id); err != nil {
		return err
	}
	sess.Clear()
	sess.changed = false
	http.SetCookie(w, m.cookie("", -1))
	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
