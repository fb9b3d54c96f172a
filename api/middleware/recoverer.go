package middleware

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/chemstock/api/responses"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
	"github.com/angelmondragon/chemstock/pkg/logger"
)

func Recoverer(logg *logger.Logger, renderer *responses.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithFields(ctx, map[string]any{"panic": rec})
						logg.Error(ctx, "panic.recovered", err)
					}
					loggedIn := UserIDFromContext(ctx) != ""
					renderer.RenderError(ctx, logg, w, loggedIn, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
