// Package server composes the shared resources of one web app: config,
// logger, the journal dataset, the analytics store, and the HTTP
// server lifecycle.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/chislo/manuscripthub/internal/analytics"
	"github.com/chislo/manuscripthub/internal/config"
	"github.com/chislo/manuscripthub/internal/journal"
)

// Server is the application container. It is not the HTTP server
// itself; it owns one and the dependencies every handler needs.
type Server struct {
	Config *config.Config

	// App selects which of the two apps this process serves.
	App config.AppConfig

	Logger *zerolog.Logger

	// Journals is the curated dataset, loaded once at startup.
	Journals *journal.Store

	// Analytics may be nil when the event store could not be opened;
	// recording is best-effort either way.
	Analytics *analytics.Store

	httpServer *http.Server
}

// New builds the container and initializes the dataset and the
// analytics store. Analytics failures are logged and tolerated; a
// missing dataset is fatal because both apps depend on it.
func New(cfg *config.Config, app config.AppConfig, logger *zerolog.Logger) (*Server, error) {
	store, err := journal.Load(cfg.Journals.MetadataFile, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load journal dataset")
	}

	var events *analytics.Store
	if cfg.Analytics.Enabled {
		events, err = analytics.New(cfg.Analytics.DatabaseFile, logger)
		if err != nil {
			logger.Error().Err(err).Msg("failed to open analytics store, continuing without analytics")
			events = nil
		}
	}

	return &Server{
		Config:    cfg,
		App:       app,
		Logger:    logger,
		Journals:  store,
		Analytics: events,
	}, nil
}

// SetupHTTPServer configures the internal net/http server with the
// given router.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.App.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.App.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.App.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.App.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("app", s.App.Name).
		Str("port", s.App.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server gracefully and closes the analytics
// store.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "failed to shutdown HTTP server")
	}
	if s.Analytics != nil {
		if err := s.Analytics.Close(); err != nil {
			return errors.Wrap(err, "failed to close analytics store")
		}
	}
	return nil
}

// Record logs a usage event when analytics is available.
func (s *Server) Record(ctx context.Context, eventType, details string) {
	if s.Analytics == nil {
		return
	}
	s.Analytics.Record(ctx, eventType, details)
}
