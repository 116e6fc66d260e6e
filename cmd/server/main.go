package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"lostfound/internal/events"
	"lostfound/internal/jwttoken"
	"lostfound/internal/platform/config"
	"lostfound/internal/platform/httpserver"
	"lostfound/internal/platform/logger"
	platformredis "lostfound/internal/platform/redis"
	"lostfound/internal/registry"
	"lostfound/internal/registry/handler"
	regmetrics "lostfound/internal/registry/metrics"
	regstore "lostfound/internal/registry/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the registry service.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	memSink := events.NewMemorySink(cfg.EventLogSize)
	sinks := []events.Sink{memSink}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := events.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return fmt.Errorf("kafka sink: %w", err)
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
		log.Info("kafka event sink enabled", "topic", cfg.KafkaTopic)
	}
	publisher := events.NewPublisher(log, sinks...)

	jwtService := jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer)
	registrySvc := registry.New(store, nil, publisher, log, regmetrics.New())

	router := chi.NewRouter()
	handler.New(registrySvc, memSink, jwtService, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting lostfound registry", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// buildStore picks the report store backend: PostgreSQL when a DSN is
// configured (optionally fronted by a Redis cache), in-memory otherwise.
func buildStore(ctx context.Context, cfg config.Config, log *slog.Logger) (registry.ReportStore, func(), error) {
	cleanup := func() {}

	if cfg.PostgresDSN == "" {
		log.Info("using in-memory report store")
		return regstore.NewMemoryStore(), cleanup, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, cleanup, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, cleanup, fmt.Errorf("ping postgres: %w", err)
	}

	pgStore := regstore.NewPostgresStore(db)
	if err := pgStore.Migrate(ctx); err != nil {
		db.Close()
		return nil, cleanup, err
	}

	var store registry.ReportStore = pgStore
	closers := []func(){func() { db.Close() }}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, cleanup, fmt.Errorf("redis: %w", err)
	}
	if redisClient != nil {
		store = regstore.NewCachedStore(pgStore, redisClient.Client, regstore.DefaultCacheTTL)
		closers = append(closers, func() { redisClient.Close() })
		log.Info("redis report cache enabled")
	}

	cleanup = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	log.Info("using postgres report store")
	return store, cleanup, nil
}
