package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"intake-gateway/internal/conversation"
	"intake-gateway/internal/dispatch"
	"intake-gateway/internal/document"
	"intake-gateway/internal/lookup"
	"intake-gateway/internal/platform/config"
	"intake-gateway/internal/platform/httpserver"
	"intake-gateway/internal/platform/logger"
	"intake-gateway/internal/platform/metrics"
	platformredis "intake-gateway/internal/platform/redis"
	httptransport "intake-gateway/internal/transport/http"
)

// main wires the dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	m := metrics.New()

	sessions, cleanup, err := buildSessionStore(cfg, log)
	if err != nil {
		log.Error("session store init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	dispatcher, dispatchCleanup, err := buildDispatcher(cfg, log, m)
	if err != nil {
		log.Error("dispatch init failed", "error", err)
		os.Exit(1)
	}
	defer dispatchCleanup()

	aggregator, err := lookup.NewAggregator(
		[]lookup.Source{
			lookup.NewNomerogram(cfg.NomerogramURL, cfg.SourceTimeout),
			lookup.NewOlx(cfg.OlxURL, cfg.SourceTimeout),
			lookup.NewGetcontact(cfg.GetcontactURL, cfg.SourceTimeout),
		},
		lookup.WithLogger(log),
		lookup.WithMetrics(m),
	)
	if err != nil {
		log.Error("lookup init failed", "error", err)
		os.Exit(1)
	}

	var sender conversation.Sender
	if cfg.SendURL != "" {
		sender, err = httptransport.NewHTTPSender(cfg.SendURL)
		if err != nil {
			log.Error("sender init failed", "error", err)
			os.Exit(1)
		}
	} else {
		log.Warn("INTAKE_SEND_URL not set, replies go to the log")
		sender = httptransport.NewLogSender(log)
	}

	engine, err := conversation.NewEngine(
		sessions,
		conversation.NewStaticAllowlist(cfg.Allowlist),
		sender,
		aggregator,
		document.NewChecker(),
		dispatcher,
		conversation.WithLogger(log),
		conversation.WithMetrics(m),
	)
	if err != nil {
		log.Error("engine init failed", "error", err)
		os.Exit(1)
	}

	handler, err := httptransport.NewHandler(engine, log)
	if err != nil {
		log.Error("handler init failed", "error", err)
		os.Exit(1)
	}

	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	log.Info("starting intake-gateway",
		"addr", cfg.Addr,
		"allowlist_size", len(cfg.Allowlist),
		"reviewers", len(cfg.Reviewers),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

func buildSessionStore(cfg config.Config, log *slog.Logger) (conversation.Store, func(), error) {
	client, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		log.Info("sessions in memory (INTAKE_REDIS_URL not set)")
		return conversation.NewMemoryStore(), func() {}, nil
	}
	return conversation.NewRedisStore(client.Client, cfg.SessionTTL), func() { _ = client.Close() }, nil
}

func buildDispatcher(cfg config.Config, log *slog.Logger, m *metrics.Metrics) (*dispatch.Dispatcher, func(), error) {
	var (
		store   dispatch.RequestStore
		cleanup = func() {}
	)
	if cfg.PostgresDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		pg := dispatch.NewPostgresRequestStore(pool)
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		store = pg
		cleanup = pool.Close
	} else {
		log.Info("intake requests in memory (INTAKE_POSTGRES_DSN not set)")
		store = dispatch.NewMemoryRequestStore()
	}

	var notifier dispatch.Notifier
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := dispatch.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		notifier = kafka
		prev := cleanup
		cleanup = func() {
			kafka.Close()
			prev()
		}
	} else {
		log.Info("reviewer notifications to the log (INTAKE_KAFKA_BROKERS not set)")
		notifier = dispatch.NewLogNotifier(log)
	}

	d, err := dispatch.New(store, notifier, cfg.Reviewers,
		dispatch.WithLogger(log),
		dispatch.WithMetrics(m),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return d, cleanup, nil
}
