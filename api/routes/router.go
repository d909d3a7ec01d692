package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bazaarlabs/bazaar-backend/api/controllers"
	"github.com/bazaarlabs/bazaar-backend/api/middleware"
	accountsvc "github.com/bazaarlabs/bazaar-backend/internal/accounts"
	authsvc "github.com/bazaarlabs/bazaar-backend/internal/auth"
	"github.com/bazaarlabs/bazaar-backend/internal/cart"
	"github.com/bazaarlabs/bazaar-backend/internal/catalog"
	"github.com/bazaarlabs/bazaar-backend/internal/transactions"
	"github.com/bazaarlabs/bazaar-backend/pkg/auth/session"
	"github.com/bazaarlabs/bazaar-backend/pkg/config"
	"github.com/bazaarlabs/bazaar-backend/pkg/logger"
	"github.com/bazaarlabs/bazaar-backend/pkg/metrics"
)

// Params carries everything the router wires together.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Sessions session.Resolver
	Accounts middleware.AccountLoader

	AccountService     accountsvc.Service
	AuthService        authsvc.Service
	CatalogService     catalog.Service
	CartService        cart.Service
	TransactionService transactions.Service

	MetricsRegistry *prometheus.Registry
	HTTPMetrics     *metrics.HTTPMetrics
}

func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.Metrics(p.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, map[string]controllers.Pinger{
			"database": p.DB,
			"redis":    p.Redis,
		}))
	})

	if p.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(p.AccountService, p.Logger))
		r.Post("/login", controllers.AuthLogin(p.AuthService, p.Logger))
		r.With(middleware.Auth(p.Sessions, p.Accounts, p.Logger)).
			Post("/logout", controllers.AuthLogout(p.AuthService, p.Logger))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(p.Sessions, p.Accounts, p.Logger))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.UserList(p.AccountService, p.Logger))
			r.Route("/me", func(r chi.Router) {
				r.Get("/", controllers.UserProfile(p.AccountService, p.Logger))
				r.Put("/", controllers.UserUpdate(p.AccountService, p.Logger, false))
				r.Patch("/", controllers.UserUpdate(p.AccountService, p.Logger, true))
				r.Delete("/", controllers.UserDelete(p.AccountService, p.Logger))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(p.CatalogService, p.Logger))
			r.Post("/", controllers.ProductCreate(p.CatalogService, p.Logger))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.ProductGet(p.CatalogService, p.Logger))
				r.Put("/", controllers.ProductUpdate(p.CatalogService, p.Logger, false))
				r.Patch("/", controllers.ProductUpdate(p.CatalogService, p.Logger, true))
				r.Delete("/", controllers.ProductDelete(p.CatalogService, p.Logger))
			})
		})

		r.Route("/stocks", func(r chi.Router) {
			r.Get("/", controllers.StockList(p.CatalogService, p.Logger))
			r.Post("/", controllers.StockCreate(p.CatalogService, p.Logger))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.StockGet(p.CatalogService, p.Logger))
				r.Put("/", controllers.StockUpdate(p.CatalogService, p.Logger, false))
				r.Patch("/", controllers.StockUpdate(p.CatalogService, p.Logger, true))
				r.Delete("/", controllers.StockDelete(p.CatalogService, p.Logger))
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartList(p.CartService, p.Logger))
			r.Post("/", controllers.CartCreate(p.CartService, p.Logger))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.CartGet(p.CartService, p.Logger))
				r.Put("/", controllers.CartUpdate(p.CartService, p.Logger, false))
				r.Patch("/", controllers.CartUpdate(p.CartService, p.Logger, true))
				r.Delete("/", controllers.CartDelete(p.CartService, p.Logger))
			})
		})

		r.Get("/transactions/{id}", controllers.TransactionGet(p.TransactionService, p.Logger))
	})

	return r
}
