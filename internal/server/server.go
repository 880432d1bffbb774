package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
)

type server struct {
	httpServer *http.Server
	cfg        config.Server
	logger     *logger.Logger
}

func NewServer(handler http.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, fmt.Errorf("%w: %w", ErrListen, errEmptyAddress)
	}

	return &server{
		httpServer: newHTTPServer(handler, cfg),
		cfg:        cfg,
		logger:     logger,
	}, nil
}

func (s *server) Run(ctx context.Context) error {
	listener, err := listen(s.cfg.HTTPAddress)
	if err != nil {
		return err
	}

	s.logger.Info().Str("address", listener.Addr().String()).Msg("Launching HTTP server")

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server Serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("HTTP server Shutdown")

	shutdownCtx := context.Background()
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.cfg.ShutdownTimeout)
		defer cancel()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}
	<-serveErr

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
