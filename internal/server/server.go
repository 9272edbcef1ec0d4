package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// WebAPI wraps the chi router and http.Server lifecycle.
type WebAPI struct {
	router *chi.Mux
	logger *slog.Logger
	server *http.Server

	shutdownTimeout time.Duration
}

func NewWebAPI(cfg Config, handler *Handler, logger *slog.Logger) *WebAPI {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/health", handler.Health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/statements", handler.ListStatements)
		r.Get("/statements/{id}", handler.GetStatement)
		r.Post("/statements/{id}/process", handler.ProcessStatement)
		r.Get("/compare", handler.Compare)
		r.Get("/departments", handler.Departments)
		r.Get("/departments/export", handler.ExportDepartments)
		r.Get("/analysis", handler.Analysis)
	})

	return &WebAPI{
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:    cfg.Addr,
			Handler: router,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Router exposes the mux for tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
}

// Start serves until an error or a termination signal, then drains in-flight
// requests before returning.
func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info("starting server", "addr", w.server.Addr)
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info("shutdown initiated")

		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error("graceful shutdown failed", "error", err)
			err = w.server.Close()
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(rw, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http.request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
