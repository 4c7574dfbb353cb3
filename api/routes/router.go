package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stockyard-hq/stockyard-backend/api/controllers"
	"github.com/stockyard-hq/stockyard-backend/api/middleware"
	internalauth "github.com/stockyard-hq/stockyard-backend/internal/auth"
	"github.com/stockyard-hq/stockyard-backend/internal/stock"
	"github.com/stockyard-hq/stockyard-backend/internal/users"
	"github.com/stockyard-hq/stockyard-backend/pkg/auth/session"
	"github.com/stockyard-hq/stockyard-backend/pkg/config"
	"github.com/stockyard-hq/stockyard-backend/pkg/logger"
	"github.com/stockyard-hq/stockyard-backend/pkg/metrics"
	"github.com/stockyard-hq/stockyard-backend/pkg/redis"
)

// Dependencies carries everything the router needs. Nil optional fields
// (redis, metrics, pingers) disable the corresponding middleware or endpoint
// behavior instead of panicking.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	Stock    stock.Service
	Users    users.Service
	Auth     internalauth.Service
	Sessions session.AccessSessionChecker
	Redis    *redis.Client
	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry
	DB       controllers.Pinger
	Cache    controllers.Pinger
}

func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App))

	requireAuth := middleware.Authenticated(deps.Config.JWT, deps.Sessions, deps.Logger)
	loginLimit := middleware.AuthRateLimit(deps.Redis, middleware.LoginRateLimitPolicy(deps.Config.AuthRateLimit), deps.Logger)
	registerLimit := middleware.AuthRateLimit(deps.Redis, middleware.RegisterRateLimitPolicy(deps.Config.AuthRateLimit), deps.Logger)

	// Public stock listings.
	r.Get("/", controllers.ListStock(deps.Stock, deps.Logger))
	r.Get("/maintenance_list/", controllers.MaintenanceList(deps.Stock, deps.Logger))

	// Stock management.
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/add_stock/", controllers.AddStockForm())
		r.Post("/add_stock/", controllers.CreateStock(deps.Stock, deps.Logger))

		r.Get("/edit_stock/{id}/", controllers.GetStock(deps.Stock, deps.Logger))
		r.Post("/edit_stock/{id}/", controllers.UpdateStock(deps.Stock, deps.Logger))

		r.Get("/maintenance_detail/{id}/", controllers.MaintenanceDetail(deps.Stock, deps.Logger))
		r.Post("/maintenance_detail/{id}/", controllers.UpdateMaintenance(deps.Stock, deps.Logger))

		r.Get("/add_to_maintenance/{id}/", controllers.MaintenanceDetail(deps.Stock, deps.Logger))
		r.Post("/add_to_maintenance/{id}/", controllers.AssignMaintenance(deps.Stock, deps.Logger))
	})

	// Accounts.
	r.Route("/user_auth", func(r chi.Router) {
		r.Get("/", controllers.LoginForm())

		r.With(loginLimit).Post("/authenticate_user/", controllers.Authenticate(deps.Auth, deps.Logger))

		r.Get("/register/", controllers.RegisterForm())
		r.With(registerLimit).Post("/register/", controllers.Register(deps.Auth, deps.Logger))

		// Outside the session check so expired tokens can still end their session.
		r.Get("/user_logout/", controllers.Logout(deps.Auth, deps.Logger))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/show_user/", controllers.ShowUser(deps.Users, deps.Logger))
			r.Get("/user_list/", controllers.UserList(deps.Users, deps.Logger))

			r.Get("/edit_user/{id}/", controllers.GetUser(deps.Users, deps.Logger))
			r.Post("/edit_user/{id}/", controllers.EditUser(deps.Users, deps.Logger))

			r.Get("/delete_user/{id}/", controllers.GetUser(deps.Users, deps.Logger))
			r.Post("/delete_user/{id}/", controllers.DeleteUser(deps.Users, deps.Logger))
		})
	})

	r.Get("/health/live", controllers.HealthLive())
	r.Get("/health/ready", controllers.HealthReady(deps.DB, deps.Cache, deps.Logger))

	if deps.Registry != nil {
		r.Get("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}).ServeHTTP)
	}

	return r
}
