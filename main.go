package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"playbox/api"
	"playbox/config"
	"playbox/handlers"
	"playbox/metrics"
	"playbox/models"
	"playbox/payment"
	"playbox/shop"
	"playbox/storage"
)

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
		log.WithField("log_level", cfg.LogLevel).Warn("Unknown log level, using info")
	}
	log.SetLevel(level)
	return log
}

func openStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (storage.Store, error) {
	switch cfg.StoreBackend {
	case "redis":
		return storage.NewRedisStore(ctx, cfg.RedisURL, cfg.RedisNamespace, log)
	case "postgres":
		return storage.OpenPostgres(ctx, cfg.DBConnStr, log)
	case "memory", "":
		return storage.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.WithError(err).WithField("backend", cfg.StoreBackend).Fatal("Could not open store")
	}
	defer store.Close()
	log.WithField("backend", cfg.StoreBackend).Info("Store ready")

	persist := storage.NewPersistence(store, log)
	client := api.NewClient(cfg.APIBaseURL,
		api.WithAttemptTimeout(cfg.APITimeout),
		api.WithMaxAttempts(cfg.APIMaxAttempts),
		api.WithBackoff(cfg.APIBackoff),
		api.WithLogger(log.WithField("component", "api")),
	)
	gateway := payment.NewRouter(map[models.PaymentMethod]payment.Gateway{
		models.PaymentVisa:   payment.NewCardGateway(cfg.PaymentDelay, persist, log),
		models.PaymentPayPal: payment.NewPayPalGateway(cfg.PaymentDelay, log),
	})
	svc := shop.New(ctx, persist, client, gateway, log.WithField("component", "shop"))

	if len(svc.Products()) == 0 {
		if _, err := svc.RefreshProducts(ctx); err != nil {
			log.WithError(err).Warn("Starting without a product catalogue")
		}
	}

	router := handlers.NewRouter(handlers.Deps{
		Shop:    svc,
		API:     client,
		JWTKey:  cfg.JWTSecret,
		Limiter: handlers.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log),
		Log:     log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           otelhttp.NewHandler(metrics.InstrumentHandler(router), "playbox"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Shutdown failed")
		}
	}()

	log.WithField("port", cfg.ServerPort).Info("Server started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("Server stopped")
	}
	log.Info("Server stopped")
}
