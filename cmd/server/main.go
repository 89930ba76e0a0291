package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Skotchmaster/ecommerce/internal/audit"
	ordercfg "github.com/Skotchmaster/ecommerce/internal/config"
	"github.com/Skotchmaster/ecommerce/internal/httpserver"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	"github.com/Skotchmaster/ecommerce/internal/search"
	"github.com/Skotchmaster/ecommerce/internal/service"
	pkgdb "github.com/Skotchmaster/ecommerce/pkg/db"
	"github.com/Skotchmaster/ecommerce/pkg/kafka"
	"github.com/Skotchmaster/ecommerce/pkg/logging"
	"github.com/Skotchmaster/ecommerce/pkg/metrics"
	loggingmw "github.com/Skotchmaster/ecommerce/pkg/middleware/logging"
	"github.com/Skotchmaster/ecommerce/pkg/middleware/ratelimit"
	"github.com/Skotchmaster/ecommerce/pkg/outbox"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := ordercfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCtx = logging.IntoContext(rootCtx, logger)

	openCtx, cancel := context.WithTimeout(rootCtx, 10*time.Second)
	db, err := pkgdb.Open(openCtx, cfg.DatabaseDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Use(&audit.Plugin{}); err != nil {
		log.Fatalf("audit plugin: %v", err)
	}
	if cfg.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatalf("auto migrate: %v", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewServerMetrics(cfg.ServiceName, reg)

	r := repo.New(db)
	orders := &service.OrderService{
		Store:      service.NewGormStore(r),
		EventTopic: cfg.OrderTopic,
		Metrics:    m,
	}

	var searchHTTP *httpserver.SearchHTTP
	if cfg.SearchEnabled() {
		es, err := search.NewClient(rootCtx, cfg.ElasticURL, cfg.ElasticUser, cfg.ElasticPassword)
		if err != nil {
			logger.Warn("search disabled", "error", err)
		} else {
			idx := &search.OrderIndex{ES: es, Index: cfg.OrderIndex}
			orders.Indexer = idx
			searchHTTP = &httpserver.SearchHTTP{Searcher: idx}
		}
	}

	var producer *kafka.Producer
	relayDone := make(chan struct{})
	if cfg.KafkaEnabled() {
		producer, err = kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		relay := &outbox.Relay{Store: r, Publisher: producer, Interval: time.Second, BatchSize: 100}
		go func() {
			defer close(relayDone)
			relay.Run(rootCtx)
		}()
	} else {
		close(relayDone)
		logger.Info("kafka disabled, order events stay in the outbox")
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Use(echomw.Secure())
	e.Use(m.Middleware)

	httpserver.Register(e, &httpserver.Deps{
		OrderHandler:  &httpserver.OrderHTTP{Svc: orders},
		AuthHandler:   &httpserver.AuthHTTP{Svc: &service.AuthService{Users: r, JWTSecret: cfg.JWTAccessSecret, AccessTTL: cfg.AccessTTL}},
		SearchHandler: searchHTTP,
		JWTSecret:     cfg.JWTAccessSecret,
		OrderLimiter:  ratelimit.New(cfg.OrderRateLimit, cfg.OrderRateBurst),
		Metrics:       m,
		Ready:         func(ctx context.Context) error { return pkgdb.Ping(ctx, db) },
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("orders listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-rootCtx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	<-relayDone
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close", "error", err)
		}
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db close", "error", err)
	}

	logger.Info("orders stopped")
}
