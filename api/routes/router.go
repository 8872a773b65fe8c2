package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ubhospitality/inventory-backend/api/controllers"
	"github.com/ubhospitality/inventory-backend/api/middleware"
	"github.com/ubhospitality/inventory-backend/internal/auth"
	"github.com/ubhospitality/inventory-backend/internal/catalog"
	"github.com/ubhospitality/inventory-backend/internal/requests"
	"github.com/ubhospitality/inventory-backend/pkg/auth/session"
	"github.com/ubhospitality/inventory-backend/pkg/config"
	"github.com/ubhospitality/inventory-backend/pkg/logger"
	"github.com/ubhospitality/inventory-backend/pkg/metrics"
	"github.com/ubhospitality/inventory-backend/pkg/redis"
)

// Deps bundles everything the router hangs handlers on.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsSource  prometheus.Gatherer

	AuthService     auth.Service
	RegisterService auth.RegisterService
	PasswordService auth.PasswordResetService
	CatalogService  catalog.Service
	RequestService  requests.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"postgres": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.MetricsSource != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsSource, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.Get("/verify-email", controllers.AuthVerifyEmail(deps.RegisterService, logg))
		r.Post("/verify-email", controllers.AuthVerifyEmail(deps.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/forgot-password", controllers.AuthForgotPassword(deps.PasswordService, logg))
		r.Post("/reset-password", controllers.AuthResetPassword(deps.PasswordService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		r.Post("/auth/logout", controllers.AuthLogout(deps.AuthService, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(deps.CatalogService, logg))
			r.Get("/{categoryID}", controllers.GetCategory(deps.CatalogService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager(logg))
				r.Post("/", controllers.CreateCategory(deps.CatalogService, logg))
				r.Patch("/{categoryID}", controllers.UpdateCategory(deps.CatalogService, logg))
				r.Delete("/{categoryID}", controllers.DeleteCategory(deps.CatalogService, logg))
			})
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ListItems(deps.CatalogService, logg))
			r.Get("/{itemID}", controllers.GetItem(deps.CatalogService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager(logg))
				r.Post("/", controllers.CreateItem(deps.CatalogService, logg))
				r.Patch("/{itemID}", controllers.UpdateItem(deps.CatalogService, logg))
				r.Delete("/{itemID}", controllers.DeleteItem(deps.CatalogService, logg))
			})
		})

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", controllers.ChangeItemQuantity(deps.RequestService, logg))
			r.Get("/", controllers.ListRequests(deps.RequestService, logg))
			r.Get("/{requestID}", controllers.GetRequest(deps.RequestService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager(logg))
				r.Post("/{requestID}/decision", controllers.DecideRequest(deps.RequestService, logg))
				r.Delete("/{requestID}", controllers.DeleteRequest(deps.RequestService, logg))
			})
		})
	})

	return r
}
