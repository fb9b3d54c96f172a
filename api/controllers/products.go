package controllers

import (
	"net/http"

	"github.com/angelmondragon/chemstock/api/responses"
	"github.com/angelmondragon/chemstock/api/validators"
	"github.com/angelmondragon/chemstock/internal/products"
	"github.com/angelmondragon/chemstock/pkg/db/models"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
	"github.com/angelmondragon/chemstock/pkg/logger"
	"github.com/angelmondragon/chemstock/pkg/session"
)

type productFormView struct {
	responses.Page
	Product *models.Product
}

// AddProductPage renders the empty add-product form.
func AddProductPage(sessions *session.Manager, renderer *responses.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		renderer.Render(ctx, logg, w, http.StatusOK, responses.PageAddProduct, productFormView{
			Page: consumePage(ctx, w, sessions, logg, "Add Product"),
		})
	}
}

// AddProduct creates a product from the submitted form. Validation failures
// flash and return to the form; success flashes and lands on the listing.
func AddProduct(svc products.Service, sessions *session.Manager, renderer *responses.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		form, err := validators.ParseAddProductForm(r)
		if err != nil {
			flashRedirect(w, r, sessions, logg, flashDanger, pkgerrors.As(err).Message(), "/add")
			return
		}

		_, err = svc.Create(ctx, products.CreateProductInput{
			Name:      form.Name,
			CASNumber: form.CASNumber,
			Unit:      form.Unit,
		})
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				flashRedirect(w, r, sessions, logg, flashDanger, pkgerrors.As(err).Message(), "/add")
				return
			}
			renderer.RenderError(ctx, logg, w, loggedIn(ctx), err)
			return
		}

		flashRedirect(w, r, sessions, logg, flashSuccess, "Product added successfully!", "/")
	}
}

// EditProductPage renders the edit form prefilled with the product.
func EditProductPage(svc products.Service, sessions *session.Manager, renderer *responses.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ProductID(r)
		if err != nil {
			renderer.RenderError(ctx, logg, w, loggedIn(ctx), err)
			return
		}
		product, err := svc.Get(ctx, id)
		if err != nil {
			renderer.RenderError(ctx, logg, w, loggedIn(ctx), err)
			return
		}

		renderer.Render(ctx, logg, w, http.StatusOK, responses.PageEditProduct, productFormView{
			Page:    consumePage(ctx, w, sessions, logg, "Edit Product"),
			Product: product,
		})
	}
}

// EditProduct applies the name and unit changes from the edit form.
func EditProduct(svc products.Service, sessions *session.Manager, renderer *responses.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ProductID(r)
		if err != nil {
			renderer.RenderError(ctx, logg, w, loggedIn(ctx), err)
			return
		}
		form, err := validators.ParseEditProductForm(r)
		if err != nil {
			flashRedirect(w, r, sessions, logg, flashDanger, pkgerrors.As(err).Message(), "/edit/"+id.String())
			return
		}

		if _, err := svc.UpdateDetails(ctx, id, products.UpdateProductInput{Name: form.Name, Unit: form.Unit}); err != nil {
			renderer.RenderError(ctx, logg, w, loggedIn(ctx), err)
			return
		}

		flashRedirect(w, r, sessions, logg, flashSuccess, "Product updated successfully!", "/")
	}
}

// DeleteProduct removes a product. The restrict policy surfaces its refusal
// as a flash on the listing rather than an error page.
func DeleteProduct(svc products.Service, sessions *session.Manager, renderer *responses.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ProductID(r)
		if err != nil {
			renderer.RenderError(ctx, logg, w, loggedIn(ctx), err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
				flashRedirect(w, r, sessions, logg, flashDanger, pkgerrors.As(err).Message(), "/")
				return
			}
			renderer.RenderError(ctx, logg, w, loggedIn(ctx), err)
			return
		}

		flashRedirect(w, r, sessions, logg, flashSuccess, "Product deleted successfully!", "/")
	}
}
