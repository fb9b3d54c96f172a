package controllers

import (
	"net/http"

	"github.com/angelmondragon/chemstock/api/responses"
	"github.com/angelmondragon/chemstock/internal/seed"
	"github.com/angelmondragon/chemstock/pkg/logger"
)

// SeedUser creates the default admin account. Plain text responses, no
// authentication; the endpoint is idempotent.
func SeedUser(svc *seed.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		created, err := svc.SeedAdminUser(ctx)
		if err != nil {
			if logg != nil {
				logg.Error(ctx, "seed.admin_failed", err)
			}
			responses.WriteText(w, http.StatusInternalServerError, "Seeding failed")
			return
		}
		if !created {
			responses.WriteText(w, http.StatusOK, "Admin user already exists")
			return
		}
		responses.WriteText(w, http.StatusOK, "Admin user created")
	}
}

// SeedData loads the sample catalog when the product table is empty.
func SeedData(svc *seed.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		created, err := svc.SeedProducts(ctx)
		if err != nil {
			if logg != nil {
				logg.Error(ctx, "seed.products_failed", err)
			}
			responses.WriteText(w, http.StatusInternalServerError, "Seeding failed")
			return
		}
		if !created {
			responses.WriteText(w, http.StatusOK, "Data already exists")
			return
		}
		responses.WriteText(w, http.StatusOK, "Sample data added")
	}
}
