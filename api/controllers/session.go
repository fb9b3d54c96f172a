package controllers

import (
	"net/http"

	"github.com/angelmondragon/chemstock/api/middleware"
	"github.com/angelmondragon/chemstock/api/responses"
	"github.com/angelmondragon/chemstock/api/validators"
	"github.com/angelmondragon/chemstock/internal/auth"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
	"github.com/angelmondragon/chemstock/pkg/logger"
	"github.com/angelmondragon/chemstock/pkg/session"
)

type loginView struct {
	responses.Page
}

// LoginPage renders the login form. Visitors already signed in are sent
// straight to the inventory.
func LoginPage(sessions *session.Manager, renderer *responses.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if loggedIn(ctx) {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		renderer.Render(ctx, logg, w, http.StatusOK, responses.PageLogin, loginView{
			Page: consumePage(ctx, w, sessions, logg, "Sign in"),
		})
	}
}

// Login authenticates the submitted credentials and binds the session to
// the user. Every failure flashes the same message back to the form.
func Login(svc auth.Service, sessions *session.Manager, renderer *responses.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		form, err := validators.ParseLoginForm(r)
		if err != nil {
			flashRedirect(w, r, sessions, logg, flashDanger, pkgerrors.As(err).Message(), "/login")
			return
		}

		user, err := svc.Login(ctx, form.Username, form.Password)
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
				flashRedirect(w, r, sessions, logg, flashDanger, pkgerrors.As(err).Message(), "/login")
				return
			}
			renderer.RenderError(ctx, logg, w, false, err)
			return
		}

		sess := middleware.SessionFromContext(ctx)
		if sess == nil {
			renderer.RenderError(ctx, logg, w, false, pkgerrors.New(pkgerrors.CodeInternal, "session missing"))
			return
		}
		sess.SetUserID(user.ID.String())
		if err := sessions.Save(ctx, w, sess); err != nil {
			renderer.RenderError(ctx, logg, w, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist session"))
			return
		}

		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// Logout destroys the session and returns to the login form.
func Logout(sessions *session.Manager, renderer *responses.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if sess := middleware.SessionFromContext(ctx); sess != nil {
			if err := sessions.Destroy(ctx, w, sess); err != nil && logg != nil {
				logg.Error(ctx, "session.destroy_failed", err)
			}
		}

		http.Redirect(w, r, "/login", http.StatusFound)
	}
}
