package middleware

import (
	"context"

	"github.com/angelmondragon/chemstock/pkg/session"
)

type contextKey string

const ctxSession contextKey = "session"

// WithSession stashes the request's session for downstream handlers.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, sess)
}

// SessionFromContext returns the request's session, or nil when the session
// middleware did not run.
func SessionFromContext(ctx context.Context) *session.Session {
	if ctx == nil {
		return nil
	}
	if sess, ok := ctx.Value(ctxSession).(*session.Session); ok {
		return sess
	}
	return nil
}

// UserIDFromContext returns the authenticated user's ID, or "" for anonymous
// requests.
func UserIDFromContext(ctx context.Context) string {
	if sess := SessionFromContext(ctx); sess != nil {
		return sess.UserID()
	}
	return ""
}
