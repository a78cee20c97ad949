package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"consentd/internal/audit"
	auditkafka "consentd/internal/audit/kafka"
	auditstore "consentd/internal/audit/store"
	"consentd/internal/consent"
	consentcache "consentd/internal/consent/cache"
	consenthandler "consentd/internal/consent/handler"
	consentmetrics "consentd/internal/consent/metrics"
	consentservice "consentd/internal/consent/service"
	consentstore "consentd/internal/consent/store"
	"consentd/internal/jwtauth"
	"consentd/internal/platform/config"
	"consentd/internal/platform/httpserver"
	"consentd/internal/platform/logger"
	"consentd/internal/platform/metrics"
	"consentd/internal/platform/postgres"
	"consentd/internal/platform/redis"
)

// main wires dependencies explicitly and keeps the server lifecycle small.
// Business logic lives in internal packages; nothing here is a singleton.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		log.Error("postgres unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	appMetrics := metrics.New()
	engineMetrics := consentmetrics.New()

	outbox := auditstore.NewPostgresStore(db)
	auditPub := audit.NewPublisher(outbox, audit.WithLogger(log))

	store := consentstore.NewPostgresStore(db)
	var cache consent.Cache
	if redisClient != nil {
		cache = consentcache.NewRedisCache(redisClient.Client, engineMetrics)
	}
	consentSvc := consentservice.New(store, cache, auditPub, log, engineMetrics, cfg.Consent.CacheTTL)

	jwtSvc := jwtauth.NewService(cfg.Auth.JWTSigningKey, "consentd", "consentd-admin")
	handler := consenthandler.New(consentSvc, log, appMetrics, jwtSvc, cfg.Auth.AdminKeyHash)

	router := chi.NewRouter()
	handler.Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "postgres unhealthy", http.StatusServiceUnavailable)
			return
		}
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting consentd", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := auditkafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka unavailable", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		worker := audit.NewWorker(outbox, sink, log)
		g.Go(func() error {
			if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	} else {
		log.Warn("kafka not configured, audit events remain in outbox")
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
