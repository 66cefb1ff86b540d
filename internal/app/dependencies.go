package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/vladislavdragonenkov/shopcart/internal/catalog"
	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/shopcart/internal/health"
	"github.com/vladislavdragonenkov/shopcart/internal/metrics"
	"github.com/vladislavdragonenkov/shopcart/internal/pricing"
	"github.com/vladislavdragonenkov/shopcart/internal/storage/file"
	"github.com/vladislavdragonenkov/shopcart/internal/storage/memory"
	"github.com/vladislavdragonenkov/shopcart/internal/storage/postgres"
	"github.com/vladislavdragonenkov/shopcart/internal/storage/redis"
)

// runtimeDependencies собирает всё, что Run передаёт в HTTP API.
type runtimeDependencies struct {
	kv             domain.KeyValueStore
	storageChecker healthcheck.Checker
	catalog        *catalog.Client
	metrics        *metrics.StorefrontMetrics
	formatter      *pricing.Formatter
	locale         language.Tag
	closeFn        func() error
}

// initRuntimeDependencies выбирает хранилище по cfg.StorageDriver и собирает клиента каталога.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	locale, formatter, err := newFormatter(cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.NewStorefrontMetrics()
	client, err := catalog.NewClient(cfg.CatalogBaseURL,
		catalog.WithTimeout(cfg.CatalogTimeout),
		catalog.WithLogger(logger.WithField("layer", "catalog")),
		catalog.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("init catalog client: %w", err)
	}

	deps := &runtimeDependencies{
		catalog:   client,
		metrics:   m,
		formatter: formatter,
		locale:    locale,
	}

	var pinger domain.Pinger
	switch driver := strings.ToLower(strings.TrimSpace(cfg.StorageDriver)); driver {
	case "", StorageDriverMemory:
		kv := memory.NewKeyValueStore()
		deps.kv, pinger = kv, kv
	case StorageDriverFile:
		kv, err := file.NewKeyValueStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("init file storage: %w", err)
		}
		deps.kv, pinger = kv, kv
	case StorageDriverRedis:
		if strings.TrimSpace(cfg.RedisURL) == "" {
			return nil, errors.New("redis url is required for redis storage driver")
		}
		kv, err := redis.Dial(ctx, cfg.RedisURL, redis.WithKeyPrefix(cfg.RedisKeyPrefix))
		if err != nil {
			return nil, fmt.Errorf("init redis storage: %w", err)
		}
		deps.kv, pinger, deps.closeFn = kv, kv, kv.Close
	case StorageDriverPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, errors.New("postgres dsn is required for postgres storage driver")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("init postgres storage: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("migrate postgres schema: %w", err)
			}
		}
		deps.kv, pinger, deps.closeFn = postgres.NewKeyValueStore(store), store, store.Close
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	deps.storageChecker = healthcheck.NewPingChecker("storage", pinger, true)
	logger.WithField("storage_driver", cfg.StorageDriver).Info("storage initialized")
	return deps, nil
}

// close освобождает соединения хранилища.
func (d *runtimeDependencies) close(logger *log.Entry) {
	if d == nil || d.closeFn == nil {
		return
	}
	if err := d.closeFn(); err != nil {
		logger.WithError(err).Warn("failed to close storage")
	}
}

// newFormatter строит форматтер цен по локали и валюте из конфигурации.
func newFormatter(cfg Config) (language.Tag, *pricing.Formatter, error) {
	if cfg.Locale == "" && cfg.Currency == "" {
		return language.AmericanEnglish, pricing.DefaultFormatter(), nil
	}

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return language.Und, nil, fmt.Errorf("parse locale %q: %w", cfg.Locale, err)
	}
	currency := cfg.Currency
	if currency == "" {
		currency = "USD"
	}
	formatter, err := pricing.NewFormatter(tag, currency, cfg.CurrencySymbol)
	if err != nil {
		return language.Und, nil, err
	}
	return tag, formatter, nil
}
