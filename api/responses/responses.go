// Package responses renders HTML pages and error pages from the embedded
// templates. Every page shares the layout shell; views embed Page so the
// navbar and flash banner always have their data.
package responses

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/angelmondragon/chemstock/api/templates"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
	"github.com/angelmondragon/chemstock/pkg/logger"
	"github.com/angelmondragon/chemstock/pkg/session"
)

// Page carries the fields every template expects from its view.
type Page struct {
	PageTitle string
	LoggedIn  bool
	Flashes   []session.Flash
}

// ErrorView is the view rendered by the error page.
type ErrorView struct {
	Page
	Status  int
	Message string
}

const (
	PageProducts    = "products.html"
	PageAddProduct  = "add_product.html"
	PageEditProduct = "edit_product.html"
	PageUpdateStock = "update_stock.html"
	PageLogin       = "login.html"
	PageError       = "error.html"
)

var pageNames = []string{
	PageProducts,
	PageAddProduct,
	PageEditProduct,
	PageUpdateStock,
	PageLogin,
	PageError,
}

// Renderer holds the parsed template set, one entry per page.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every embedded page against the shared layout.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templates.FS, "layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render executes the named page into the response. The template runs into a
// buffer first so a mid-render failure never leaves a half-written page.
func (rd *Renderer) Render(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, status int, page string, view any) {
	tmpl, ok := rd.pages[page]
	if !ok {
		rd.fail(ctx, logg, w, fmt.Errorf("unknown page %q", page))
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", view); err != nil {
		rd.fail(ctx, logg, w, fmt.Errorf("render %s: %w", page, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError maps the error's code onto an HTTP status and renders the
// error page. Internal details stay in the log, not on the page.
func (rd *Renderer) RenderError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, loggedIn bool, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())
	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code":  string(typed.Code()),
			"http_status": meta.HTTPStatus,
		})
		logg.Error(ctx, "request.error", err)
	}

	rd.Render(ctx, logg, w, meta.HTTPStatus, PageError, ErrorView{
		Page:    Page{PageTitle: http.StatusText(meta.HTTPStatus), LoggedIn: loggedIn},
		Status:  meta.HTTPStatus,
		Message: msg,
	})
}

func (rd *Renderer) fail(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if logg != nil {
		logg.Error(ctx, "template.render_failed", err)
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// WriteText writes a bare text response; the seed endpoints use it.
func WriteText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}
