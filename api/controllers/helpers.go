package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/chemstock/api/middleware"
	"github.com/angelmondragon/chemstock/api/responses"
	"github.com/angelmondragon/chemstock/pkg/logger"
	"github.com/angelmondragon/chemstock/pkg/session"
)

const (
	flashDanger  = "danger"
	flashSuccess = "success"
)

func loggedIn(ctx context.Context) bool {
	return middleware.UserIDFromContext(ctx) != ""
}

// consumePage drains the session's flashes into the shared page shell and
// persists the session so a reload does not replay them.
func consumePage(ctx context.Context, w http.ResponseWriter, sessions *session.Manager, logg *logger.Logger, title string) responses.Page {
	page := responses.Page{PageTitle: title, LoggedIn: loggedIn(ctx)}
	sess := middleware.SessionFromContext(ctx)
	if sess == nil {
		return page
	}
	page.Flashes = sess.ConsumeFlashes()
	if err := sessions.Save(ctx, w, sess); err != nil && logg != nil {
		logg.Error(ctx, "session.save_failed", err)
	}
	return page
}

// flashRedirect queues a one-shot notice and sends the browser to target.
func flashRedirect(w http.ResponseWriter, r *http.Request, sessions *session.Manager, logg *logger.Logger, level, message, target string) {
	ctx := r.Context()
	if sess := middleware.SessionFromContext(ctx); sess != nil {
		sess.Flash(level, message)
		if err := sessions.Save(ctx, w, sess); err != nil && logg != nil {
			logg.Error(ctx, "session.save_failed", err)
		}
	}
	http.Redirect(w, r, target, http.StatusFound)
}
