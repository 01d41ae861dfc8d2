package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/creatorlift/creatorlift-backend/api/controllers"
	"github.com/creatorlift/creatorlift-backend/api/middleware"
	"github.com/creatorlift/creatorlift-backend/internal/research"
	"github.com/creatorlift/creatorlift-backend/internal/usage"
	"github.com/creatorlift/creatorlift-backend/pkg/config"
	"github.com/creatorlift/creatorlift-backend/pkg/logger"
	"github.com/creatorlift/creatorlift-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisClient *redis.Client,
	researchService research.Service,
	tracker usage.Tracker,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	var redisPinger controllers.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbPinger, redisPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	researchPolicy := middleware.NewThrottlePolicy(
		"research",
		cfg.Throttle.Window,
		cfg.Throttle.IPLimit,
	)
	researchThrottle := middleware.Throttle(researchPolicy, nil, logg)
	if redisClient != nil {
		researchThrottle = middleware.Throttle(researchPolicy, redisClient, logg)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity(logg))

		r.Route("/ideas/{ideaID}/research", func(r chi.Router) {
			r.With(researchThrottle).
				Post("/", controllers.TriggerResearch(researchService, logg))
			r.Get("/", controllers.GetResearch(researchService, logg))
		})

		r.Get("/research/usage", controllers.GetUsage(tracker, cfg.Research.DailyQuotaLimit, logg))
	})

	return r
}
