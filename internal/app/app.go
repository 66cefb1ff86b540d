package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/catalog"
	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/shopcart/internal/health"
	"github.com/vladislavdragonenkov/shopcart/internal/messaging"
	"github.com/vladislavdragonenkov/shopcart/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shopcart/internal/service/cart"
	"github.com/vladislavdragonenkov/shopcart/internal/service/checkout"
	"github.com/vladislavdragonenkov/shopcart/internal/service/session"
	"github.com/vladislavdragonenkov/shopcart/internal/transport/httpapi"
	"github.com/vladislavdragonenkov/shopcart/internal/version"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverFile     = "file"
	StorageDriverRedis    = "redis"
	StorageDriverPostgres = "postgres"
)

const (
	shutdownTimeout = 5 * time.Second

	publishBreakerFailures = 5
	publishBreakerReset    = 30 * time.Second
)

// Config описывает настройки запуска storefront.
type Config struct {
	APIAddr     string
	MetricsAddr string

	StorageDriver       string
	DataDir             string
	RedisURL            string
	RedisKeyPrefix      string
	PostgresDSN         string
	PostgresAutoMigrate bool

	CatalogBaseURL string
	CatalogTimeout time.Duration

	// KafkaBrokers: брокеры через запятую. Пустая строка отключает публикацию событий заказов.
	KafkaBrokers string
	KafkaTopic   string

	Locale         string
	Currency       string
	CurrencySymbol string
	RequestTimeout time.Duration
}

// DefaultConfig возвращает настройки для локального запуска без внешних зависимостей.
func DefaultConfig() Config {
	return Config{
		APIAddr:             ":8080",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		DataDir:             "data",
		RedisKeyPrefix:      "shopcart:",
		PostgresAutoMigrate: true,
		CatalogBaseURL:      catalog.DefaultBaseURL,
		CatalogTimeout:      catalog.DefaultTimeout,
		KafkaTopic:          kafka.TopicOrderEvents,
		Locale:              "en-US",
		Currency:            "USD",
		CurrencySymbol:      "$",
		RequestTimeout:      httpapi.DefaultRequestTimeout,
	}
}

// Run собирает зависимости, поднимает HTTP API и сервер метрик и блокируется до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close(logger)

	// Kafka опциональна: без брокеров заказы оформляются без публикации событий.
	var publisher domain.OrderPublisher
	producer, err := initKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	if err == nil && producer != nil {
		publisher = messaging.NewGuardedPublisher(producer,
			messaging.NewCircuitBreaker(publishBreakerFailures, publishBreakerReset, logger.WithField("layer", "kafka")))
	}
	defer closeKafka(producer, logger)

	router := httpapi.NewRouter(httpapi.Config{
		Catalog: deps.catalog,
		Carts: cart.NewRegistry(deps.kv,
			cart.WithLogger(logger.WithField("layer", "cart")),
			cart.WithMetrics(deps.metrics)),
		Sessions: session.NewRegistry(deps.kv,
			session.WithLogger(logger.WithField("layer", "session")),
			session.WithMetrics(deps.metrics)),
		Checkout: checkout.NewService(publisher,
			checkout.WithLogger(logger.WithField("layer", "checkout")),
			checkout.WithMetrics(deps.metrics)),
		Formatter:      deps.formatter,
		Locale:         deps.locale,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         logger.WithField("layer", "http"),
	})

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("storage", deps.storageChecker)
	healthHandler.RegisterChecker("catalog", healthcheck.NewPingChecker("catalog", deps.catalog, false))
	logger.WithField("checks", healthHandler.Names()).Debug("health checks registered")

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	lis, err := net.Listen("tcp", cfg.APIAddr)
	if err != nil {
		shutdownHTTP(metricsSrv, logger)
		return err
	}

	apiSrv := &http.Server{Handler: router, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", lis.Addr())
		errCh <- apiSrv.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP API")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчики /metrics и health checks.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
