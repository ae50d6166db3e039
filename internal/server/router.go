// Package server assembles the HTTP router of the course service
package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/studyshelf/backend/internal/config"
	_ "github.com/studyshelf/backend/internal/docs"
	"github.com/studyshelf/backend/internal/handlers"
	"github.com/studyshelf/backend/internal/middleware"
	"github.com/studyshelf/backend/internal/repositories"
	"github.com/studyshelf/backend/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// NewRouter wires repositories, services and handlers over db behind the middleware stack
func NewRouter(db *sql.DB, cfg *config.Config, logger *zap.Logger) chi.Router {
	courseRepo := repositories.NewCourseRepository(db, logger)
	courseService := services.NewCourseService(courseRepo, logger)
	courseHandler := handlers.NewCourseHandler(courseService, logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	if cfg.RateLimit.RequestsPerMinute > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimit.RequestsPerMinute, time.Minute))
	}
	r.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxRequestSize))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	courseHandler.RegisterRoutes(r)

	return r
}

// NewHTTPServer returns an http.Server for the router. Timeouts are long enough for 50MB bodies.
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
