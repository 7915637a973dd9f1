package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/nutri-api/internal/config"
	"github.com/jwalitptl/nutri-api/pkg/logger"
	"github.com/jwalitptl/nutri-api/pkg/messaging/redis"
	"github.com/jwalitptl/nutri-api/pkg/metrics"
	"github.com/jwalitptl/nutri-api/pkg/worker"
)

const healthAddr = ":8081"

// The worker follows the change events the API publishes to Redis
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	l := logger.Init(&logger.Config{Level: logger.ParseLevel(cfg.Log.Level), Pretty: cfg.Log.Pretty})
	if cfg.Redis.URL == "" {
		l.Fatal().Msg("redis.url is required to consume events")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	broker, err := redis.NewRedisBroker(ctx, redis.Config{URL: cfg.Redis.URL, Channel: cfg.Redis.Channel}, l)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to create Redis broker")
	}
	defer broker.Close()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry, "nutri_worker")

	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: healthAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error().Err(err).Msg("health server failed")
			os.Exit(1)
		}
	}()
	defer srv.Close()

	consumer := worker.NewEventConsumer(broker, l, m, worker.LogEvent(l))
	if err := consumer.Start(ctx); err != nil {
		l.Fatal().Err(err).Msg("event consumer failed")
	}
}
