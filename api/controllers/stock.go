package controllers

import (
	"net/http"

	"github.com/angelmondragon/chemstock/api/responses"
	"github.com/angelmondragon/chemstock/api/validators"
	"github.com/angelmondragon/chemstock/internal/stock"
	"github.com/angelmondragon/chemstock/pkg/db/models"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
	"github.com/angelmondragon/chemstock/pkg/logger"
	"github.com/angelmondragon/chemstock/pkg/session"
)

type stockView struct {
	responses.Page
	Product   *models.Product
	Movements []models.StockMovement
}

// UpdateStockPage renders the stock form alongside the product's movement
// history, newest first.
func UpdateStockPage(svc stock.Service, sessions *session.Manager, renderer *responses.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ProductID(r)
		if err != nil {
			renderer.RenderError(ctx, logg, w, loggedIn(ctx), err)
			return
		}
		product, movements, err := svc.History(ctx, id)
		if err != nil {
			renderer.RenderError(ctx, logg, w, loggedIn(ctx), err)
			return
		}

		renderer.Render(ctx, logg, w, http.StatusOK, responses.PageUpdateStock, stockView{
			Page:      consumePage(ctx, w, sessions, logg, "Update Stock"),
			Product:   product,
			Movements: movements,
		})
	}
}

// UpdateStock applies an IN or OUT movement and returns to the same page,
// flashing the outcome.
func UpdateStock(svc stock.Service, sessions *session.Manager, renderer *responses.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ProductID(r)
		if err != nil {
			renderer.RenderError(ctx, logg, w, loggedIn(ctx), err)
			return
		}
		target := "/update-stock/" + id.String()

		form, err := validators.ParseStockForm(r)
		if err != nil {
			flashRedirect(w, r, sessions, logg, flashDanger, pkgerrors.As(err).Message(), target)
			return
		}

		if _, err := svc.Apply(ctx, id, form.Action, form.Quantity); err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				flashRedirect(w, r, sessions, logg, flashDanger, pkgerrors.As(err).Message(), target)
				return
			}
			renderer.RenderError(ctx, logg, w, loggedIn(ctx), err)
			return
		}

		flashRedirect(w, r, sessions, logg, flashSuccess, "Stock updated successfully!", target)
	}
}
