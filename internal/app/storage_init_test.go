package app

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/shopcart/internal/health"
	"github.com/vladislavdragonenkov/shopcart/internal/storage/file"
	"github.com/vladislavdragonenkov/shopcart/internal/storage/memory"
	"github.com/vladislavdragonenkov/shopcart/internal/storage/redis"
)

func TestInitRuntimeDependencies_Memory(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverMemory,
	}, log.WithField("test", "memory-storage"))
	if err != nil {
		t.Fatalf("initRuntimeDependencies(memory) failed: %v", err)
	}
	if _, ok := deps.kv.(*memory.KeyValueStore); !ok {
		t.Fatalf("expected memory store, got %T", deps.kv)
	}
	if deps.catalog == nil {
		t.Fatal("catalog client should not be nil")
	}
	if deps.formatter == nil {
		t.Fatal("formatter should not be nil")
	}
	if deps.closeFn != nil {
		t.Fatal("memory storage has nothing to close")
	}
	if check := deps.storageChecker.Check(context.Background()); check.Status != healthcheck.StatusHealthy {
		t.Fatalf("expected healthy storage, got %+v", check)
	}
}

func TestInitRuntimeDependencies_File(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverFile,
		DataDir:       t.TempDir(),
	}, log.WithField("test", "file-storage"))
	if err != nil {
		t.Fatalf("initRuntimeDependencies(file) failed: %v", err)
	}
	if _, ok := deps.kv.(*file.KeyValueStore); !ok {
		t.Fatalf("expected file store, got %T", deps.kv)
	}
	if err := deps.kv.Put("probe", []byte(`{}`)); err != nil {
		t.Fatalf("put into file store: %v", err)
	}
}

func TestInitRuntimeDependencies_FileRequiresDir(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverFile,
	}, log.WithField("test", "file-missing-dir"))
	if err == nil {
		t.Fatal("expected error when file driver is selected without data dir")
	}
}

func TestInitRuntimeDependencies_Redis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	deps, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver:  StorageDriverRedis,
		RedisURL:       "redis://" + mr.Addr(),
		RedisKeyPrefix: "test:",
	}, log.WithField("test", "redis-storage"))
	if err != nil {
		t.Fatalf("initRuntimeDependencies(redis) failed: %v", err)
	}
	defer deps.close(log.WithField("test", "redis-storage"))

	if _, ok := deps.kv.(*redis.KeyValueStore); !ok {
		t.Fatalf("expected redis store, got %T", deps.kv)
	}
	if err := deps.kv.Put("shopcart_cart", []byte(`{"items":[]}`)); err != nil {
		t.Fatalf("put into redis store: %v", err)
	}
	if !mr.Exists("test:shopcart_cart") {
		t.Fatal("expected key with configured prefix in redis")
	}
}

func TestInitRuntimeDependencies_RedisRequiresURL(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverRedis,
	}, log.WithField("test", "redis-missing-url"))
	if err == nil {
		t.Fatal("expected error when redis driver is selected without URL")
	}
}

func TestInitRuntimeDependencies_PostgresRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverPostgres,
	}, log.WithField("test", "postgres-missing-dsn"))
	if err == nil {
		t.Fatal("expected error when postgres driver is selected without DSN")
	}
}

func TestInitRuntimeDependencies_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: "sqlite",
	}, log.WithField("test", "unsupported-driver"))
	if err == nil {
		t.Fatal("expected error for unsupported storage driver")
	}
}

func TestInitRuntimeDependencies_InvalidCatalogURL(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		CatalogBaseURL: "ftp://catalog.local",
	}, log.WithField("test", "invalid-catalog"))
	if err == nil {
		t.Fatal("expected error for non-http catalog url")
	}
}
