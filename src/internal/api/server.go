package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/princess-rosella/spu-md5/src/internal/config"
	"github.com/princess-rosella/spu-md5/src/internal/log"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a new API server bound to bindAddr.
func NewServer(cfg *config.Config, bindAddr string, version VersionInfo) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         bindAddr,
			Handler:      NewRouter(cfg, version, NewMetrics("spu_md5")),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Listen binds the listening socket so the actual address is known before
// Serve is called.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Serve accepts connections until Stop is called. It returns nil after a
// graceful shutdown.
func (s *Server) Serve() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	log.Infof("[API] Listening on http://%s", s.Addr())
	log.Infof("[API] Example: curl --data-binary @file http://%s/api/v1/digest", s.Addr())

	if err := s.httpServer.Serve(s.listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Stop gracefully stops the API server
func (s *Server) Stop(ctx context.Context) error {
	log.Infof("[API] Shutting down server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
		if closeErr := s.httpServer.Close(); closeErr != nil {
			return fmt.Errorf("failed to close server: %w", closeErr)
		}
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
