package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/app"
	"github.com/vladislavdragonenkov/shopcart/internal/version"
)

const (
	envAPIAddr             = "SHOPCART_API_ADDR"
	envMetricsAddr         = "SHOPCART_METRICS_ADDR"
	envLogLevel            = "SHOPCART_LOG_LEVEL"
	envStorageDriver       = "SHOPCART_STORAGE_DRIVER"
	envDataDir             = "SHOPCART_DATA_DIR"
	envRedisURL            = "SHOPCART_REDIS_URL"
	envRedisKeyPrefix      = "SHOPCART_REDIS_KEY_PREFIX"
	envPostgresDSN         = "SHOPCART_POSTGRES_DSN"
	envPostgresAutoMigrate = "SHOPCART_POSTGRES_AUTO_MIGRATE"
	envCatalogBaseURL      = "SHOPCART_CATALOG_BASE_URL"
	envCatalogTimeout      = "SHOPCART_CATALOG_TIMEOUT"
	envKafkaBrokers        = "SHOPCART_KAFKA_BROKERS"
	envKafkaTopic          = "SHOPCART_KAFKA_TOPIC"
	envLocale              = "SHOPCART_LOCALE"
	envCurrency            = "SHOPCART_CURRENCY"
	envCurrencySymbol      = "SHOPCART_CURRENCY_SYMBOL"
	envRequestTimeout      = "SHOPCART_REQUEST_TIMEOUT"
)

type envLookup func(string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger(lookup envLookup) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)

	raw, ok := lookup(envLogLevel)
	if !ok || strings.TrimSpace(raw) == "" {
		return
	}
	level, err := log.ParseLevel(strings.TrimSpace(raw))
	if err != nil {
		log.WithError(err).Warnf("invalid %s, using info", envLogLevel)
		return
	}
	log.SetLevel(level)
}

// readConfigFromEnv формирует конфигурацию из переменных окружения.
// Некорректные значения не прерывают запуск: остаётся значение по умолчанию, а в warnings попадает причина.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	setString := func(key string, target *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*target = strings.TrimSpace(v)
		}
	}
	warn := func(key string, err error) {
		warnings = append(warnings, fmt.Sprintf("%s: %v", key, err))
	}

	setString(envAPIAddr, &cfg.APIAddr)
	setString(envMetricsAddr, &cfg.MetricsAddr)
	setString(envDataDir, &cfg.DataDir)
	setString(envRedisURL, &cfg.RedisURL)
	setString(envRedisKeyPrefix, &cfg.RedisKeyPrefix)
	setString(envPostgresDSN, &cfg.PostgresDSN)
	setString(envCatalogBaseURL, &cfg.CatalogBaseURL)
	setString(envKafkaBrokers, &cfg.KafkaBrokers)
	setString(envKafkaTopic, &cfg.KafkaTopic)
	setString(envLocale, &cfg.Locale)
	setString(envCurrency, &cfg.Currency)
	setString(envCurrencySymbol, &cfg.CurrencySymbol)

	if v, ok := lookup(envStorageDriver); ok && strings.TrimSpace(v) != "" {
		driver := strings.ToLower(strings.TrimSpace(v))
		switch driver {
		case app.StorageDriverMemory, app.StorageDriverFile, app.StorageDriverRedis, app.StorageDriverPostgres:
			cfg.StorageDriver = driver
		default:
			warn(envStorageDriver, fmt.Errorf("unsupported driver %q", driver))
		}
	}

	if v, ok := lookup(envPostgresAutoMigrate); ok {
		parsed, err := parseBool(v)
		if err != nil {
			warn(envPostgresAutoMigrate, err)
		} else {
			cfg.PostgresAutoMigrate = parsed
		}
	}

	positive := func(v time.Duration) bool { return v > 0 }
	for key, target := range map[string]*time.Duration{
		envCatalogTimeout: &cfg.CatalogTimeout,
		envRequestTimeout: &cfg.RequestTimeout,
	} {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		parsed, err := parseDuration(v, positive, "must be > 0")
		if err != nil {
			warn(key, err)
			continue
		}
		*target = parsed
	}

	return cfg, warnings
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

func parseDuration(raw string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration value %q: %w", raw, err)
	}
	if valid != nil && !valid(value) {
		return 0, fmt.Errorf("invalid duration value %q: %s", raw, rule)
	}
	return value, nil
}

func main() {
	setupLogger(os.LookupEnv)
	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, warning := range warnings {
		log.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"api_addr":       cfg.APIAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"catalog":        cfg.CatalogBaseURL,
		"version":        version.GetVersion(),
	}).Info("запускаем storefront")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("storefront остановлен")
}
