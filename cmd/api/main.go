package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/parisy/pasarsayur-backend/api/routes"
	"github.com/parisy/pasarsayur-backend/internal/auth"
	"github.com/parisy/pasarsayur-backend/internal/cart"
	"github.com/parisy/pasarsayur-backend/internal/catalog"
	"github.com/parisy/pasarsayur-backend/internal/finance"
	"github.com/parisy/pasarsayur-backend/internal/transactions"
	"github.com/parisy/pasarsayur-backend/internal/users"
	"github.com/parisy/pasarsayur-backend/pkg/auth/session"
	"github.com/parisy/pasarsayur-backend/pkg/config"
	"github.com/parisy/pasarsayur-backend/pkg/db"
	"github.com/parisy/pasarsayur-backend/pkg/logger"
	"github.com/parisy/pasarsayur-backend/pkg/metrics"
	"github.com/parisy/pasarsayur-backend/pkg/migrate"
	"github.com/parisy/pasarsayur-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		if cerr := dbClient.Close(); cerr != nil {
			logg.Error(context.Background(), "error closing database", cerr)
		}
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		if cerr := dbClient.Close(); cerr != nil {
			logg.Error(context.Background(), "error closing database", cerr)
		}
		os.Exit(1)
	}
	defer func() {
		var errs error
		errs = multierr.Append(errs, redisClient.Close())
		errs = multierr.Append(errs, dbClient.Close())
		if errs != nil {
			logg.Error(context.Background(), "error closing clients", errs)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(users.ServiceParams{
		Repo:        userRepo,
		PasswordCfg: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Repo:       cartRepo,
		Vegetables: catalogRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	txService, err := transactions.NewService(transactions.ServiceParams{
		Repo:    transactions.NewRepository(dbClient.DB()),
		Tx:      dbClient,
		Cart:    cartRepo,
		Catalog: catalogRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create transactions service", err)
		os.Exit(1)
	}

	financeService, err := finance.NewService(finance.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create finance service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			SessionManager: sessionManager,
			HTTPMetrics:    metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
			AuthService:    authService,
			UsersService:   usersService,
			CatalogService: catalogService,
			CartService:    cartService,
			TxService:      txService,
			FinanceService: financeService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
