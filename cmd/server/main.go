package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/biteswipe/internal/auth"
	"github.com/mmynk/biteswipe/internal/config"
	"github.com/mmynk/biteswipe/internal/engine"
	"github.com/mmynk/biteswipe/internal/events"
	"github.com/mmynk/biteswipe/internal/metrics"
	"github.com/mmynk/biteswipe/internal/storage"
	"github.com/mmynk/biteswipe/internal/storage/sqlstore"
	"github.com/mmynk/biteswipe/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "biteswipe: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	// `server token <user-id>` prints a bearer token for local testing.
	if len(os.Args) == 3 && os.Args[1] == "token" {
		token, err := jwtManager.Generate(os.Args[2])
		if err != nil {
			slog.Error("Failed to generate token", "error", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	if err := run(cfg, jwtManager); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, jwtManager *auth.JWTManager) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlstore.New(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	if cfg.RestaurantsFile != "" {
		if err := seedRestaurants(ctx, store, cfg.RestaurantsFile); err != nil {
			return err
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	publisher := newPublisher(cfg)
	defer publisher.Close()

	eng := engine.New(store, engine.Options{
		GroupTTL:     cfg.GroupTTL,
		CodeAttempts: cfg.CodeAttempts,
		MaxRetries:   cfg.OCCRetries,
		Publisher:    publisher,
		Metrics:      m,
	})

	router := newRouter(cfg, routerDeps{
		engine:   eng,
		store:    store,
		auth:     jwtManager,
		metrics:  m,
		registry: registry,
	})

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		// Wrap with h2c for HTTP/2 without TLS (required for Connect)
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.SweepInterval > 0 {
		g.Go(func() error {
			sweepExpired(gctx, eng, cfg.SweepInterval)
			return nil
		})
	}

	return g.Wait()
}

func seedRestaurants(ctx context.Context, store storage.Store, path string) error {
	restaurants, err := config.LoadRestaurants(path)
	if err != nil {
		return err
	}
	for _, r := range restaurants {
		if err := store.UpsertRestaurant(ctx, r); err != nil {
			return fmt.Errorf("failed to seed restaurant %s: %w", r.ID, err)
		}
	}
	slog.Info("Restaurant catalog seeded", "path", path, "count", len(restaurants))
	return nil
}

// newPublisher connects to nsqd when configured. Events are optional, so an
// unreachable broker degrades to logging rather than failing startup.
func newPublisher(cfg *config.Config) events.Publisher {
	if cfg.NSQDAddr == "" {
		return events.LogPublisher{}
	}
	p, err := events.NewNSQPublisher(cfg.NSQDAddr, cfg.NSQTopic)
	if err != nil {
		slog.Warn("NSQ unavailable, logging events instead", "addr", cfg.NSQDAddr, "error", err)
		return events.LogPublisher{}
	}
	slog.Info("Publishing events to NSQ", "addr", cfg.NSQDAddr, "topic", cfg.NSQTopic)
	return p
}

func sweepExpired(ctx context.Context, eng *engine.Engine, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := eng.SweepExpired(ctx); err != nil && ctx.Err() == nil {
				slog.Error("Expired group sweep failed", "error", err)
			}
		}
	}
}
