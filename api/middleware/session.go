package middleware

import (
	"net/http"

	"github.com/angelmondragon/chemstock/api/responses"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
	"github.com/angelmondragon/chemstock/pkg/logger"
	"github.com/angelmondragon/chemstock/pkg/session"
)

// Session resolves the request's cookie session and stashes it in the
// context. Handlers that mutate the session must save it themselves before
// writing the response, so the Set-Cookie header lands ahead of any redirect.
func Session(manager *session.Manager, logg *logger.Logger, renderer *responses.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := manager.Load(r)
			if err != nil {
				ctx := r.Context()
				if logg != nil {
					logg.Error(ctx, "session.load_failed", err)
				}
				renderer.RenderError(ctx, logg, w, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session store unavailable"))
				return
			}

			ctx := WithSession(r.Context(), sess)
			if logg != nil && sess.UserID() != "" {
				ctx = logg.WithUserID(ctx, sess.UserID())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser gates the inventory pages: anonymous visitors are sent to the
// login form with no error shown.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) == "" {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
