package main

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/app"
)

func TestReadConfigFromEnv_Defaults(t *testing.T) {
	cfg, warnings := readConfigFromEnv(mapLookup(nil))

	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %d", len(warnings))
	}

	if cfg != app.DefaultConfig() {
		t.Fatalf("expected default config, got %#v", cfg)
	}
}

func TestReadConfigFromEnv_ValidOverrides(t *testing.T) {
	cfg, warnings := readConfigFromEnv(mapLookup(map[string]string{
		envAPIAddr:             "localhost:8081",
		envMetricsAddr:         "localhost:9091",
		envStorageDriver:       " ReDiS ",
		envRedisURL:            " redis://localhost:6379/2 ",
		envRedisKeyPrefix:      "shop:",
		envPostgresAutoMigrate: "off",
		envCatalogBaseURL:      "http://catalog.local",
		envCatalogTimeout:      "3s",
		envKafkaBrokers:        "k1:9092,k2:9092",
		envKafkaTopic:          "orders",
		envLocale:              "en-GB",
		envCurrency:            "GBP",
		envCurrencySymbol:      "£",
		envRequestTimeout:      "750ms",
	}))

	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	if cfg.APIAddr != "localhost:8081" {
		t.Fatalf("unexpected api addr: %s", cfg.APIAddr)
	}
	if cfg.MetricsAddr != "localhost:9091" {
		t.Fatalf("unexpected metrics addr: %s", cfg.MetricsAddr)
	}
	if cfg.StorageDriver != app.StorageDriverRedis {
		t.Fatalf("unexpected storage driver: %s", cfg.StorageDriver)
	}
	if cfg.RedisURL != "redis://localhost:6379/2" {
		t.Fatalf("unexpected redis url: %s", cfg.RedisURL)
	}
	if cfg.RedisKeyPrefix != "shop:" {
		t.Fatalf("unexpected redis key prefix: %s", cfg.RedisKeyPrefix)
	}
	if cfg.PostgresAutoMigrate {
		t.Fatal("expected PostgresAutoMigrate=false")
	}
	if cfg.CatalogBaseURL != "http://catalog.local" {
		t.Fatalf("unexpected catalog url: %s", cfg.CatalogBaseURL)
	}
	if cfg.CatalogTimeout != 3*time.Second {
		t.Fatalf("unexpected catalog timeout: %s", cfg.CatalogTimeout)
	}
	if cfg.KafkaBrokers != "k1:9092,k2:9092" || cfg.KafkaTopic != "orders" {
		t.Fatalf("unexpected kafka settings: %s %s", cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	if cfg.Locale != "en-GB" || cfg.Currency != "GBP" || cfg.CurrencySymbol != "£" {
		t.Fatalf("unexpected locale settings: %s %s %s", cfg.Locale, cfg.Currency, cfg.CurrencySymbol)
	}
	if cfg.RequestTimeout != 750*time.Millisecond {
		t.Fatalf("unexpected request timeout: %s", cfg.RequestTimeout)
	}
}

func TestReadConfigFromEnv_InvalidValuesFallbackToDefaults(t *testing.T) {
	defaultCfg := app.DefaultConfig()

	cfg, warnings := readConfigFromEnv(mapLookup(map[string]string{
		envStorageDriver:       "sqlite",
		envPostgresAutoMigrate: "not-bool",
		envCatalogTimeout:      "-1s",
		envRequestTimeout:      "invalid",
	}))

	if len(warnings) != 4 {
		t.Fatalf("expected 4 warnings, got %d: %v", len(warnings), warnings)
	}

	if cfg.StorageDriver != defaultCfg.StorageDriver {
		t.Fatal("expected StorageDriver to keep default on invalid value")
	}
	if cfg.PostgresAutoMigrate != defaultCfg.PostgresAutoMigrate {
		t.Fatal("expected PostgresAutoMigrate to keep default on invalid value")
	}
	if cfg.CatalogTimeout != defaultCfg.CatalogTimeout {
		t.Fatal("expected CatalogTimeout to keep default on invalid value")
	}
	if cfg.RequestTimeout != defaultCfg.RequestTimeout {
		t.Fatal("expected RequestTimeout to keep default on invalid value")
	}
}

func TestReadConfigFromEnv_BlankValuesIgnored(t *testing.T) {
	cfg, warnings := readConfigFromEnv(mapLookup(map[string]string{
		envAPIAddr:       "   ",
		envStorageDriver: "",
	}))

	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if cfg != app.DefaultConfig() {
		t.Fatalf("expected default config, got %#v", cfg)
	}
}

func TestSetupLogger(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	setupLogger(mapLookup(map[string]string{envLogLevel: "debug"}))
	if log.GetLevel() != log.DebugLevel {
		t.Fatalf("expected debug level, got %s", log.GetLevel())
	}

	setupLogger(mapLookup(map[string]string{envLogLevel: "chatty"}))
	if log.GetLevel() != log.InfoLevel {
		t.Fatalf("expected info level on invalid value, got %s", log.GetLevel())
	}
}

func TestParseBool(t *testing.T) {
	trueValue, err := parseBool(" YES ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !trueValue {
		t.Fatal("expected true result")
	}

	falseValue, err := parseBool("off")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if falseValue {
		t.Fatal("expected false result")
	}

	if _, err := parseBool("sometimes"); err == nil {
		t.Fatal("expected error for invalid bool value")
	}
}

func TestParseDuration(t *testing.T) {
	value, err := parseDuration(" 250ms ", func(v time.Duration) bool { return v >= 0 }, "must be >= 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 250*time.Millisecond {
		t.Fatalf("unexpected value: %s", value)
	}

	if _, err := parseDuration("-1ms", func(v time.Duration) bool { return v >= 0 }, "must be >= 0"); err == nil {
		t.Fatal("expected validation error")
	}
}

func mapLookup(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}
