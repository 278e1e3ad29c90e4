package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/cardstack/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server exposing the card composition API
func NewServer(
	ctx context.Context,
	cardUC interfaces.CardUseCase,
	readState interfaces.ReadStateStore,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8080",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	// Metrics use a per-server registry so parallel servers in tests do
	// not conflict on registration
	m := newMetrics()
	router.Get("/metrics", m.handler().ServeHTTP)

	cardHandler := NewCardHandler(cardUC, m)
	itemHandler := NewItemHandler(readState)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/cards/event", cardHandler.HandleEvent)
		r.Post("/cards/notification", cardHandler.HandleNotification)
		r.Post("/items/read", itemHandler.HandleRead)
		r.Post("/items/saved", itemHandler.HandleSaved)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
