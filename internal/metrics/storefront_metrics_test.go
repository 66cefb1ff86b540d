package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestNewStorefrontMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewStorefrontMetricsWithRegisterer(reg)
	second := NewStorefrontMetricsWithRegisterer(reg)

	first.RecordCartAction("add")
	second.RecordCartAction("add")

	if got := testutil.ToFloat64(first.cartActions.WithLabelValues("add")); got != 2 {
		t.Fatalf("expected shared counter value 2, got %f", got)
	}
}

func TestRecordCatalogRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetricsWithRegisterer(reg)

	m.RecordCatalogRequest("products", nil, 10*time.Millisecond)
	m.RecordCatalogRequest("products", errors.New("boom"), 20*time.Millisecond)

	if got := testutil.ToFloat64(m.catalogRequests.WithLabelValues("products", "ok")); got != 1 {
		t.Errorf("expected 1 ok request, got %f", got)
	}
	if got := testutil.ToFloat64(m.catalogRequests.WithLabelValues("products", "error")); got != 1 {
		t.Errorf("expected 1 failed request, got %f", got)
	}

	metric := &dto.Metric{}
	observer := m.catalogDuration.WithLabelValues("products").(prometheus.Histogram)
	if err := observer.Write(metric); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("expected 2 observations, got %d", metric.Histogram.GetSampleCount())
	}
}

func TestRecordOrderPlaced(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetricsWithRegisterer(reg)

	m.RecordOrderPlaced(42.5)
	m.RecordPublishFailure()
	m.RecordStorageFallback("shopcart_cart", "corrupt")
	m.RecordStorageWriteError("shopcart_cart")

	if got := testutil.ToFloat64(m.ordersPlaced); got != 1 {
		t.Errorf("expected 1 order, got %f", got)
	}
	if got := testutil.ToFloat64(m.publishFailures); got != 1 {
		t.Errorf("expected 1 publish failure, got %f", got)
	}
	if got := testutil.ToFloat64(m.storageFallbacks.WithLabelValues("shopcart_cart", "corrupt")); got != 1 {
		t.Errorf("expected 1 fallback, got %f", got)
	}
	if got := testutil.ToFloat64(m.storageWriteErrors.WithLabelValues("shopcart_cart")); got != 1 {
		t.Errorf("expected 1 write error, got %f", got)
	}
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *StorefrontMetrics

	m.RecordCartAction("add")
	m.RecordStorageFallback("k", "missing")
	m.RecordStorageWriteError("k")
	m.RecordCatalogRequest("products", nil, time.Millisecond)
	m.RecordOrderPlaced(1)
	m.RecordPublishFailure()
}
