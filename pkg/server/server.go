package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/stu-tools/rent-atlas/pkg/handlers/rentroll"
	rentatlasmiddleware "github.com/stu-tools/rent-atlas/pkg/server/middleware"
	"github.com/stu-tools/rent-atlas/pkg/services/analysis"
	"github.com/stu-tools/rent-atlas/pkg/store"
)

type Dependencies struct {
	Store    store.Store
	Analysis analysis.Service
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// StaticDir, when set, is served with an index.html fallback for
	// non-API paths (single-page app routing).
	StaticDir    string
	Dependencies Dependencies
}

// ConfigureRouter builds the full route tree. Exposed separately from WebAPI
// so tests can drive it through httptest.
func ConfigureRouter(config Config) *chi.Mux {
	logger := config.Dependencies.Logger
	handler := rentroll.NewHandler(config.Dependencies.Store, config.Dependencies.Analysis)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(rentatlasmiddleware.Logger(&logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})

	if config.StaticDir != "" {
		registerStatic(router, config.StaticDir, logger)
	}

	return router
}

// registerStatic serves the built frontend: real files directly, everything
// else (except /api) falls back to index.html for client-side routing.
func registerStatic(router *chi.Mux, dir string, logger zerolog.Logger) {
	fileServer := http.FileServer(http.Dir(dir))
	indexPath := filepath.Join(dir, "index.html")

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api") {
			http.NotFound(w, r)
			return
		}

		requested := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		if _, err := os.Stat(indexPath); err != nil {
			logger.Error().Str("dir", dir).Msg("frontend not built, index.html missing")
			http.Error(w, "frontend not built", http.StatusNotFound)
			return
		}
		http.ServeFile(w, r, indexPath)
	})
}

type WebAPI struct {
	logger *zerolog.Logger
	server *http.Server

	shutdownTimeout time.Duration
}

func New(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: timeout,
	}
}

// Start runs the server until it fails or the process receives an interrupt,
// then drains in-flight requests.
func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
