package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/chemstock/api/controllers"
	"github.com/angelmondragon/chemstock/api/middleware"
	"github.com/angelmondragon/chemstock/api/responses"
	"github.com/angelmondragon/chemstock/internal/auth"
	"github.com/angelmondragon/chemstock/internal/products"
	"github.com/angelmondragon/chemstock/internal/seed"
	"github.com/angelmondragon/chemstock/internal/stock"
	"github.com/angelmondragon/chemstock/pkg/config"
	"github.com/angelmondragon/chemstock/pkg/logger"
	"github.com/angelmondragon/chemstock/pkg/metrics"
	"github.com/angelmondragon/chemstock/pkg/session"
)

// Deps bundles everything the router wires into its handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Renderer *responses.Renderer
	Sessions *session.Manager

	Products products.Service
	Stock    stock.Service
	Auth     auth.Service
	Seed     *seed.Service

	// Healthchecks feeds the readiness probe; nil entries are skipped.
	Healthchecks map[string]controllers.Pinger

	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(d.Logger, d.Renderer),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
		middleware.Metrics(d.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Config))
		r.Get("/ready", controllers.HealthReady(d.Config, d.Logger, d.Healthchecks))
	})
	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	// Seed endpoints answer plain text and sit outside the session layer.
	r.Get("/seed-user", controllers.SeedUser(d.Seed, d.Logger))
	r.Get("/seed", controllers.SeedData(d.Seed, d.Logger))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(d.Sessions, d.Logger, d.Renderer))

		r.Get("/login", controllers.LoginPage(d.Sessions, d.Renderer, d.Logger))
		r.Post("/login", controllers.Login(d.Auth, d.Sessions, d.Renderer, d.Logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser())

			r.Get("/", controllers.Inventory(d.Products, d.Sessions, d.Renderer, d.Logger))
			r.Get("/add", controllers.AddProductPage(d.Sessions, d.Renderer, d.Logger))
			r.Post("/add", controllers.AddProduct(d.Products, d.Sessions, d.Renderer, d.Logger))
			r.Get("/edit/{productID}", controllers.EditProductPage(d.Products, d.Sessions, d.Renderer, d.Logger))
			r.Post("/edit/{productID}", controllers.EditProduct(d.Products, d.Sessions, d.Renderer, d.Logger))
			r.Get("/update-stock/{productID}", controllers.UpdateStockPage(d.Stock, d.Sessions, d.Renderer, d.Logger))
			r.Post("/update-stock/{productID}", controllers.UpdateStock(d.Stock, d.Sessions, d.Renderer, d.Logger))
			r.Get("/delete/{productID}", controllers.DeleteProduct(d.Products, d.Sessions, d.Renderer, d.Logger))
			r.Get("/logout", controllers.Logout(d.Sessions, d.Renderer, d.Logger))
		})
	})

	return r
}
