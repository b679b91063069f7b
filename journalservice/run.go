package journalservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/reminisce-app/journal-server/internal/api"
	"github.com/reminisce-app/journal-server/internal/config"
	"github.com/reminisce-app/journal-server/internal/factory"
	"github.com/reminisce-app/journal-server/internal/fixture"
	"github.com/reminisce-app/journal-server/internal/health"
	"github.com/reminisce-app/journal-server/internal/logger"
	"github.com/reminisce-app/journal-server/internal/services"
	"github.com/reminisce-app/journal-server/internal/session"
	"github.com/reminisce-app/journal-server/internal/store"
)

// Run starts the journal service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("journal-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("store_driver", cfg.StoreDriver).
		Int("http_port", cfg.HTTPPort).
		Bool("seed_fixtures", cfg.SeedFixtures).
		Msg("Journal service starting")

	// Cancellable root context bound to SIGINT/SIGTERM.
	ctx, stop := newServerContext()
	defer stop()

	st, sess, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}

	cats := services.NewCategoryService(st, sess, log)
	mems := services.NewMemoryService(st, sess, log)
	router := api.NewRouter(sess, cats, mems)

	startHealthCheckers(ctx, cfg, log, st)

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initDependencies builds the store, seeds the demo dataset if configured,
// and restores any persisted session.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, *session.Manager, error) {
	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return nil, nil, err
	}

	if cfg.SeedFixtures {
		if err := fixture.Seed(ctx, st); err != nil {
			log.Error().Stack().Err(err).Msg("Fixture seeding failed")
			return nil, nil, err
		}
		log.Info().Msg("Demo dataset seeded")
	}

	stateDir, err := session.StateDir()
	if err != nil {
		log.Error().Stack().Err(err).Msg("State directory unavailable")
		return nil, nil, err
	}
	sess := session.NewManager(st, session.NewFileSlot(stateDir), log)

	restored, err := sess.Restore(ctx)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Session restore failed")
		return nil, nil, err
	}
	if restored != nil {
		log.Info().Str("user_id", restored.ID).Msg("Session restored")
	}
	return st, sess, nil
}

// startHealthCheckers starts the store checker and service aggregator and
// binds the result to the health endpoint.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
