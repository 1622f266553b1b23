package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parisy/pasarsayur-backend/api/controllers"
	"github.com/parisy/pasarsayur-backend/api/middleware"
	authsvc "github.com/parisy/pasarsayur-backend/internal/auth"
	cartsvc "github.com/parisy/pasarsayur-backend/internal/cart"
	catalogsvc "github.com/parisy/pasarsayur-backend/internal/catalog"
	financesvc "github.com/parisy/pasarsayur-backend/internal/finance"
	"github.com/parisy/pasarsayur-backend/internal/policy"
	txsvc "github.com/parisy/pasarsayur-backend/internal/transactions"
	userssvc "github.com/parisy/pasarsayur-backend/internal/users"
	"github.com/parisy/pasarsayur-backend/pkg/auth/session"
	"github.com/parisy/pasarsayur-backend/pkg/config"
	"github.com/parisy/pasarsayur-backend/pkg/db"
	"github.com/parisy/pasarsayur-backend/pkg/logger"
	"github.com/parisy/pasarsayur-backend/pkg/metrics"
	pkgredis "github.com/parisy/pasarsayur-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             *db.Client
	Redis          *pkgredis.Client
	SessionManager *session.Manager
	HTTPMetrics    *metrics.HTTPMetrics

	AuthService    authsvc.Service
	UsersService   userssvc.Service
	CatalogService catalogsvc.Service
	CartService    cartsvc.Service
	TxService      txsvc.Service
	FinanceService financesvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(deps.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			middleware.AuthRateLimit(registerPolicy, deps.Redis, logg),
			middleware.Idempotency(deps.Redis, logg),
		).Post("/register", controllers.Register(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.Login(deps.AuthService, logg))
		r.Post("/refresh", controllers.Refresh(deps.AuthService, logg))
		r.Post("/logout", controllers.Logout(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/vegetable", func(r chi.Router) {
			// catalog reads are open to anonymous shoppers
			r.Get("/", controllers.ListVegetables(deps.CatalogService, logg))
			r.Get("/search", controllers.SearchVegetables(deps.CatalogService, logg))
			r.Get("/category/{category}", controllers.VegetablesByCategory(deps.CatalogService, logg))
			r.Get("/{id}", controllers.GetVegetable(deps.CatalogService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
				r.Use(middleware.Idempotency(deps.Redis, logg))

				r.With(middleware.RequirePermission(policy.PermCatalogAdminList, logg)).
					Get("/admin", controllers.AdminListVegetables(deps.CatalogService, logg))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(policy.PermCatalogManage, logg))
					r.Post("/", controllers.CreateVegetable(deps.CatalogService, logg))
					r.Put("/{id}", controllers.UpdateVegetable(deps.CatalogService, logg))
					r.Delete("/{id}", controllers.DeleteVegetable(deps.CatalogService, logg))
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(policy.PermInventoryManage, logg))
					r.Patch("/{id}/stock", controllers.UpdateVegetableStock(deps.CatalogService, logg))
					r.Patch("/{id}/status", controllers.UpdateVegetableStatus(deps.CatalogService, logg))
				})
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))

			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", controllers.Profile(deps.UsersService, logg))
				r.Put("/profile", controllers.UpdateProfile(deps.UsersService, logg))

				r.With(middleware.RequirePermission(policy.PermAccountsList, logg)).
					Get("/", controllers.ListAccounts(deps.UsersService, logg))
				r.Get("/{id}", controllers.GetAccount(deps.UsersService, logg))
				r.Put("/{id}", controllers.UpdateAccount(deps.UsersService, logg))
				r.With(middleware.RequirePermission(policy.PermAccountsDelete, logg)).
					Delete("/{id}", controllers.DeleteAccount(deps.UsersService, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Post("/add", controllers.AddCartItem(deps.CartService, logg))
				r.Get("/", controllers.ViewCart(deps.CartService, logg))
				r.Patch("/item/{id}", controllers.UpdateCartItem(deps.CartService, logg))
				r.Delete("/item/{id}", controllers.RemoveCartItem(deps.CartService, logg))
				r.Delete("/", controllers.ClearCart(deps.CartService, logg))
			})

			r.Route("/transaction", func(r chi.Router) {
				r.Post("/create", controllers.Checkout(deps.TxService, logg))
				r.Get("/history", controllers.TransactionHistory(deps.TxService, logg))
				r.Get("/{id}", controllers.TransactionDetail(deps.TxService, logg))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(policy.PermTransactionsAdmin, logg))
					r.Get("/", controllers.ListTransactions(deps.TxService, logg))
					r.Put("/{id}", controllers.UpdateTransaction(deps.TxService, logg))
					r.Delete("/{id}", controllers.DeleteTransaction(deps.TxService, logg))
				})
			})

			r.Route("/finance", func(r chi.Router) {
				r.Use(middleware.RequirePermission(policy.PermFinanceRead, logg))
				r.Get("/summary", controllers.FinanceSummary(deps.FinanceService, logg))
				r.Get("/history", controllers.FinanceHistory(deps.FinanceService, logg))
			})
		})
	})

	return r
}
