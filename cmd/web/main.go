package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/chemstock/api/controllers"
	"github.com/angelmondragon/chemstock/api/responses"
	"github.com/angelmondragon/chemstock/api/routes"
	"github.com/angelmondragon/chemstock/internal/auth"
	"github.com/angelmondragon/chemstock/internal/products"
	"github.com/angelmondragon/chemstock/internal/seed"
	"github.com/angelmondragon/chemstock/internal/stock"
	"github.com/angelmondragon/chemstock/internal/users"
	"github.com/angelmondragon/chemstock/pkg/config"
	"github.com/angelmondragon/chemstock/pkg/db"
	"github.com/angelmondragon/chemstock/pkg/logger"
	"github.com/angelmondragon/chemstock/pkg/metrics"
	"github.com/angelmondragon/chemstock/pkg/migrate"
	"github.com/angelmondragon/chemstock/pkg/redis"
	"github.com/angelmondragon/chemstock/pkg/session"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "web"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "web",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRun(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	healthchecks := map[string]controllers.Pinger{"database": dbClient}

	var store session.Store = session.NewMemoryStore()
	if cfg.Session.RedisURL != "" {
		redisClient, err := redis.New(context.Background(), cfg.Session.RedisURL)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		store = session.NewRedisStore(redisClient)
		healthchecks["redis"] = redisClient
	}
	sessions := session.NewManager(cfg.Session, store)

	productRepo := products.NewRepository(dbClient.DB())
	userRepo := users.NewRepository(dbClient.DB())
	stockRepo := stock.NewRepository(dbClient.DB())

	productsSvc, err := products.NewService(productRepo, dbClient, cfg.Inventory.Policy())
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}
	stockSvc, err := stock.NewService(stockRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock service", err)
		os.Exit(1)
	}
	authSvc, err := auth.NewService(userRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	seedSvc, err := seed.NewService(userRepo, productRepo, dbClient, cfg.Seed)
	if err != nil {
		logg.Error(context.Background(), "failed to create seed service", err)
		os.Exit(1)
	}

	renderer, err := responses.NewRenderer()
	if err != nil {
		logg.Error(context.Background(), "failed to parse templates", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting web server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			Renderer:     renderer,
			Sessions:     sessions,
			Products:     productsSvc,
			Stock:        stockSvc,
			Auth:         authSvc,
			Seed:         seedSvc,
			Healthchecks: healthchecks,
			HTTPMetrics:  httpMetrics,
			Registry:     registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "web server stopped unexpectedly", err)
		os.Exit(1)
	}
}
