// internal/handlers/router.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/functionasasin/projects-api/internal/config"
	"github.com/functionasasin/projects-api/internal/middleware"
	"github.com/functionasasin/projects-api/internal/webutil"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Pinger は /health で疎通確認する対象です (*sql.DB が満たす)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type RouterConfig struct {
	APIKey         string
	CORS           config.CORSConfig
	RequestTimeout time.Duration
}

// NewRouter はミドルウェアとルートを組み立てた chi ルーターを返します
func NewRouter(projectHandler *ProjectHandler, db Pinger, cfg RouterConfig, logger *slog.Logger) *chi.Mux {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = config.DefaultRequestTimeout
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Get("/", Root)
	r.Get("/health", HealthCheck(db))

	r.Route("/projects", func(r chi.Router) {
		r.Get("/generate", projectHandler.GenerateProject)
		r.Get("/enhance", projectHandler.EnhanceProject)

		// 書き込み系は API キー必須
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			r.Post("/create", projectHandler.CreateProject)
			r.Delete("/delete/{project_id}", projectHandler.DeleteProject)
		})
	})

	return r
}

// HealthCheck はDBへの疎通を確認するハンドラを返します
func HealthCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.GetLogger(r.Context())
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
			webutil.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, logger)
			return
		}
		webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	}
}
