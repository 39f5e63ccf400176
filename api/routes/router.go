package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/timeeasy/backend/api/controllers"
	"github.com/timeeasy/backend/api/middleware"
	"github.com/timeeasy/backend/internal/auth"
	"github.com/timeeasy/backend/internal/records"
	"github.com/timeeasy/backend/pkg/auth/session"
	"github.com/timeeasy/backend/pkg/config"
	"github.com/timeeasy/backend/pkg/db"
	"github.com/timeeasy/backend/pkg/logger"
	"github.com/timeeasy/backend/pkg/metrics"
	"github.com/timeeasy/backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

type redisBackend interface {
	redis.Pinger
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           redisBackend
	SessionManager  sessionManager
	AuthService     auth.Service
	Register        auth.RegisterService
	Records         records.Service
	Metrics         *metrics.HTTPMetrics
	MetricsGatherer prometheus.Gatherer
}

// NewRouter assembles the middleware chain and the route tree. In open auth
// mode the record routes mount without the bearer gate and accept caller
// supplied user_id / name; the handlers themselves are shared.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger
	openMode := cfg.App.OpenMode()

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.Metrics),
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

	r.Get("/healthz", controllers.Healthz(cfg, logg, p.DB, p.Redis))
	r.Get("/test", controllers.TestPing())
	if p.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.Register, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.SessionManager, cfg.JWT, logg))

		r.Group(func(r chi.Router) {
			if !openMode {
				r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))
			}

			r.Get("/me", controllers.Me(p.AuthService, logg))

			r.Route("/user_leave_overtime", func(r chi.Router) {
				r.Post("/add", controllers.RecordAdd(p.Records, openMode, logg))
				r.Get("/list", controllers.RecordList(p.Records, openMode, logg))
				r.Post("/update/{id}", controllers.RecordUpdate(p.Records, logg))
				r.Post("/delete/{id}", controllers.RecordDelete(p.Records, logg))
			})
		})
	})

	return r
}
