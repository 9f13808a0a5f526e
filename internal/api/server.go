//-------------------------------------------------------------------------
//
// MarginScope Retail Analytics
//
// Copyright (c) 2025 - 2026, the MarginScope authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package api serves the report catalog over HTTP for dashboards.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/marginscope/marginscope/internal/dataset"
	"github.com/marginscope/marginscope/internal/logging"
)

// New assembles the router over an immutable dataset snapshot.
func New(recs []dataset.Record) http.Handler {
	h := NewHandler(recs)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)

	// The dashboard runs on another origin and the API is read-only, so
	// stay permissive.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", h.health)
	router.Route("/api/v1", h.Routes)

	return router
}

// Server wraps the HTTP server serving the report API.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a server over the snapshot on the listen address.
func NewServer(listen string, recs []dataset.Record) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              listen,
			Handler:           New(recs),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start blocks serving requests until Shutdown or failure.
func (s *Server) Start() error {
	logging.Info().Str("listen", s.httpServer.Addr).Msg("API server listening")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
