package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"matcher-service/internal/config"
	"matcher-service/internal/middleware"
	recHnd "matcher-service/internal/reconcile/handler"
	recSvc "matcher-service/internal/reconcile/service"
	"matcher-service/server/http/handlers"
)

func NewRouter(cfg config.Config, engine *recSvc.Engine, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) << 20))

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	h := recHnd.New(cfg, engine, logger)
	r.Get("/stats", h.Stats)
	r.Delete("/caches", h.ClearCaches)
	r.Post("/score", h.Score)
	r.With(middleware.RateLimit(cfg.MatchPerMin, cfg.MatchBurst)).Post("/match", h.Match)

	return r
}
