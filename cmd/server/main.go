// Command server runs the testapp website: public marketing pages, the auth
// forms, and the authenticated dashboard, backed by either the hosted identity
// platform or the seeded demo catalog.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"testapp/internal/identity"
	"testapp/internal/identity/hosted"
	"testapp/internal/identity/mock"
	"testapp/internal/platform/config"
	"testapp/internal/platform/httpserver"
	"testapp/internal/platform/logger"
	"testapp/internal/platform/metrics"
	"testapp/internal/session"
	"testapp/internal/web"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Production)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	backend, fellBack := cfg.ResolveBackend()
	if fellBack {
		log.Warn("provider credentials missing, falling back to the demo backend")
	}

	var provider identity.Provider
	switch backend {
	case config.BackendHosted:
		provider = hosted.New(hosted.Config{
			BaseURL:   cfg.ProviderURL,
			AnonKey:   cfg.ProviderAnonKey,
			TokenFile: cfg.TokenFile,
		}, log, m)
	default:
		provider = mock.New(mock.NewMarker(cfg.SessionFile), log, mock.WithLatency(cfg.MockLatency))
	}
	defer func() {
		if err := provider.Close(); err != nil {
			log.Warn("failed to close identity backend", "error", err)
		}
	}()

	sc := session.New(provider, log, m)
	sc.Bootstrap(ctx)

	handler := web.NewHandler(sc, log, backend == config.BackendMock)
	srv := httpserver.New(cfg.Addr, web.NewRouter(handler))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := sc.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr, "backend", string(backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
