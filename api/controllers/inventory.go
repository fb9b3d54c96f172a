package controllers

import (
	"net/http"

	"github.com/angelmondragon/chemstock/api/responses"
	"github.com/angelmondragon/chemstock/api/validators"
	"github.com/angelmondragon/chemstock/internal/products"
	"github.com/angelmondragon/chemstock/pkg/db/models"
	"github.com/angelmondragon/chemstock/pkg/logger"
	"github.com/angelmondragon/chemstock/pkg/session"
)

type inventoryView struct {
	responses.Page
	Products []models.Product
	Search   string
	Sort     string
}

// Inventory renders the product listing with its search box and sort links.
func Inventory(svc products.Service, sessions *session.Manager, renderer *responses.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		filter := validators.ParseListQuery(r)
		list, err := svc.List(ctx, filter)
		if err != nil {
			renderer.RenderError(ctx, logg, w, loggedIn(ctx), err)
			return
		}

		renderer.Render(ctx, logg, w, http.StatusOK, responses.PageProducts, inventoryView{
			Page:     consumePage(ctx, w, sessions, logg, "Inventory"),
			Products: list,
			Search:   filter.Search,
			Sort:     filter.Sort.String(),
		})
	}
}
