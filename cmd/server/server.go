package main

import (
	"net/http"
	"time"

	"github.com/JaimeStill/doc-archive/internal/api"
	"github.com/JaimeStill/doc-archive/internal/config"
	"github.com/JaimeStill/doc-archive/internal/infrastructure"
	"github.com/JaimeStill/doc-archive/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra *infrastructure.Infrastructure
	http  server.System
}

// NewServer creates the infrastructure, migrates the schema, and mounts the API.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	if err := infra.Migrate(); err != nil {
		return nil, err
	}

	module, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerHealth(mux, infra)
	mux.Handle(api.BasePath+"/", module.Handler)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"driver", infra.Database.Driver(),
		"sources", len(cfg.Import.Sources),
	)

	return &Server{
		infra: infra,
		http:  server.New(&cfg.Server, mux, infra.Logger),
	}, nil
}

// Start begins all subsystems and returns once they are registered.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting archive server")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

func registerHealth(mux *http.ServeMux, infra *infrastructure.Infrastructure) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})
}
