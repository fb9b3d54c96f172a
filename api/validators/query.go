package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/chemstock/internal/products"
	"github.com/angelmondragon/chemstock/pkg/enums"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
)

// ParseListQuery reads the listing's search and sort parameters.
// Unrecognized sort values fold into natural order rather than erroring.
func ParseListQuery(r *http.Request) products.ListFilter {
	return products.ListFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Sort:   enums.ParseProductSort(strings.TrimSpace(r.URL.Query().Get("sort"))),
	}
}

// ProductID extracts the {productID} path parameter. Malformed identifiers
// read as not-found, matching the behavior of an unknown product.
func ProductID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "productID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return id, nil
}
