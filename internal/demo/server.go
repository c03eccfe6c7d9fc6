// Package demo is a self-contained stand-in for the Taaza ordering
// backend: canned catalog, in-memory sessions and carts, and the same
// wire contract the real backend speaks. It exists so the client can be
// tried offline (taaza demo) and exercised end to end in tests. It is a
// development harness, not the production backend.
package demo

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config holds demo server configuration.
type Config struct {
	Port int
}

// Server serves the fixture backend.
type Server struct {
	cfg        Config
	router     chi.Router
	httpServer *http.Server

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	user user
	cart []cartLine
}

type user struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

type cartLine struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Qty      int     `json:"qty"`
	Subtotal float64 `json:"subtotal"`
}

// New creates a demo server.
func New(cfg Config) *Server {
	s := &Server{
		cfg:      cfg,
		sessions: make(map[string]*session),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/categories", s.handleCategories)
	r.Get("/items/{category}", s.handleItems)
	r.Post("/session/create", s.handleSessionCreate)
	r.Post("/cart/add", s.handleCartAdd)
	r.Post("/cart/remove", s.handleCartRemove)
	r.Get("/cart/view", s.handleCartView)
	r.Post("/checkout", s.handleCheckout)
	r.Post("/session/reset", s.handleSessionReset)

	return r
}

// Router returns the chi router, letting tests serve it in process.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("taaza demo backend listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
