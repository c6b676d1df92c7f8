package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger  *slog.Logger
	handler http.Handler
}

func New(logger *slog.Logger, sessions sessionUseCase, allowedOrigins []string) *Server {
	return &Server{
		logger:  logger.With("component", "rest"),
		handler: NewRouter(logger, sessions, allowedOrigins),
	}
}

// NewRouter wires the session endpoints.
func NewRouter(logger *slog.Logger, sessions sessionUseCase, allowedOrigins []string) chi.Router {
	handlers := NewSessionHandlers(logger, sessions)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         60 * 15,
	}))

	r.Get("/ping", NewPingHandler().PingHandler)

	r.Route("/sessions", func(rr chi.Router) {
		rr.Post("/", handlers.StartSession)

		rr.Route("/{sessionID}", func(sr chi.Router) {
			sr.Get("/", handlers.GetSession)
			sr.Delete("/", handlers.EndSession)
			sr.Post("/players", handlers.AddPlayers)
			sr.Post("/turns", handlers.MakeTurn)
			sr.Post("/next-round", handlers.NextRound)
			sr.Post("/reset", handlers.ResetGame)
		})
	})

	return r
}

// Start serves HTTP on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
