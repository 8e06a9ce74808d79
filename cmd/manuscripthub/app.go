package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chislo/manuscripthub/internal/checker"
	"github.com/chislo/manuscripthub/internal/config"
	"github.com/chislo/manuscripthub/internal/gemini"
	"github.com/chislo/manuscripthub/internal/guidelines"
	"github.com/chislo/manuscripthub/internal/handler"
	"github.com/chislo/manuscripthub/internal/logger"
	"github.com/chislo/manuscripthub/internal/middleware"
	"github.com/chislo/manuscripthub/internal/recommend"
	"github.com/chislo/manuscripthub/internal/router"
	"github.com/chislo/manuscripthub/internal/server"
)

// shutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

// newAICompleter builds the Gemini client, or returns nil when no key
// is configured so callers fall back to local behavior.
func newAICompleter(ctx context.Context, cfg *config.Config, log *zerolog.Logger) gemini.Completer {
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, AI features run in local fallback mode")
		return nil
	}

	client, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize AI client, falling back to local mode")
		return nil
	}
	return client
}

// buildFinder assembles the journal finder app.
func buildFinder(ctx context.Context, cfg *config.Config, log *zerolog.Logger) (*server.Server, *echo.Echo, error) {
	s, err := server.New(cfg, appConfig(cfg, "finder"), log)
	if err != nil {
		return nil, nil, err
	}

	ai := newAICompleter(ctx, cfg, log)
	engine := recommend.NewEngine(s.Journals, ai, log)

	mws := middleware.NewMiddlewares(s)
	handlers := handler.NewFinderHandlers(s, engine)
	return s, router.NewFinderRouter(s, mws, handlers), nil
}

// buildChecker assembles the manuscript checker app.
func buildChecker(ctx context.Context, cfg *config.Config, log *zerolog.Logger) (*server.Server, *echo.Echo, error) {
	s, err := server.New(cfg, appConfig(cfg, "checker"), log)
	if err != nil {
		return nil, nil, err
	}

	ai := newAICompleter(ctx, cfg, log)
	fetcher := guidelines.NewFetcher(ai,
		time.Duration(cfg.Scraper.TimeoutSeconds)*time.Second,
		time.Duration(cfg.Scraper.CacheTTLMinutes)*time.Minute,
		log)
	checks := checker.NewService(s.Journals, ai, fetcher, log)

	mws := middleware.NewMiddlewares(s)
	handlers := handler.NewCheckerHandlers(s, checks, fetcher)
	return s, router.NewCheckerRouter(s, mws, handlers), nil
}

func appConfig(cfg *config.Config, app string) config.AppConfig {
	if app == "checker" {
		return cfg.Checker
	}
	return cfg.Finder
}

// runApp runs one app in the foreground with graceful shutdown.
func runApp(app string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg, "manuscripthub-"+app)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var s *server.Server
	var r *echo.Echo
	if app == "checker" {
		s, r, err = buildChecker(ctx, cfg, log)
	} else {
		s, r, err = buildFinder(ctx, cfg, log)
	}
	if err != nil {
		return err
	}

	s.SetupHTTPServer(r)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Str("app", app).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
