package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics собирает метрики корзины, каталога, хранилища и оформления заказов.
// Все методы безопасны для nil-получателя, чтобы компоненты работали без метрик в тестах.
type StorefrontMetrics struct {
	cartActions *prometheus.CounterVec

	storageFallbacks   *prometheus.CounterVec
	storageWriteErrors *prometheus.CounterVec

	catalogRequests *prometheus.CounterVec
	catalogDuration *prometheus.HistogramVec

	ordersPlaced    prometheus.Counter
	orderValue      prometheus.Histogram
	publishFailures prometheus.Counter
}

// NewStorefrontMetrics регистрирует метрики в DefaultRegisterer.
func NewStorefrontMetrics() *StorefrontMetrics {
	return NewStorefrontMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewStorefrontMetricsWithRegisterer регистрирует метрики в registerer;
// повторная регистрация переиспользует уже существующие коллекторы.
func NewStorefrontMetricsWithRegisterer(registerer prometheus.Registerer) *StorefrontMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StorefrontMetrics{
		cartActions: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shopcart_cart_actions_total",
			Help: "Total number of applied cart actions by action type",
		}, []string{"action"})),
		storageFallbacks: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shopcart_storage_fallbacks_total",
			Help: "Number of times a persisted value was missing or corrupt and the default state was used",
		}, []string{"key", "reason"})),
		storageWriteErrors: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shopcart_storage_write_errors_total",
			Help: "Number of failed persistence writes",
		}, []string{"key"})),
		catalogRequests: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shopcart_catalog_requests_total",
			Help: "Catalog API requests grouped by endpoint and result",
		}, []string{"endpoint", "result"})),
		catalogDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shopcart_catalog_request_duration_seconds",
			Help:    "Catalog API request latency in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"})),
		ordersPlaced: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shopcart_orders_placed_total",
			Help: "Total number of simulated orders placed",
		})),
		orderValue: register(registerer, prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "shopcart_order_value",
			Help:    "Grand total of placed orders in store currency",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		})),
		publishFailures: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shopcart_order_publish_failures_total",
			Help: "Number of order events that could not be published",
		})),
	}
}

// register регистрирует коллектор или возвращает ранее зарегистрированный того же типа.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	err := registerer.Register(collector)
	if err == nil {
		return collector
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		existing, ok := already.ExistingCollector.(C)
		if !ok {
			panic(fmt.Sprintf("collector already registered with unexpected type %T", already.ExistingCollector))
		}
		return existing
	}
	panic(fmt.Sprintf("register collector: %v", err))
}

// RecordCartAction учитывает применённое действие корзины.
func (m *StorefrontMetrics) RecordCartAction(action string) {
	if m == nil {
		return
	}
	m.cartActions.WithLabelValues(action).Inc()
}

// RecordStorageFallback учитывает откат к состоянию по умолчанию.
func (m *StorefrontMetrics) RecordStorageFallback(key, reason string) {
	if m == nil {
		return
	}
	m.storageFallbacks.WithLabelValues(key, reason).Inc()
}

// RecordStorageWriteError учитывает неудачную запись.
func (m *StorefrontMetrics) RecordStorageWriteError(key string) {
	if m == nil {
		return
	}
	m.storageWriteErrors.WithLabelValues(key).Inc()
}

// RecordCatalogRequest учитывает запрос к каталогу и его длительность.
func (m *StorefrontMetrics) RecordCatalogRequest(endpoint string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.catalogRequests.WithLabelValues(endpoint, result).Inc()
	m.catalogDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordOrderPlaced учитывает оформленный заказ и его сумму.
func (m *StorefrontMetrics) RecordOrderPlaced(total float64) {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
	m.orderValue.Observe(total)
}

// RecordPublishFailure учитывает неопубликованное событие заказа.
func (m *StorefrontMetrics) RecordPublishFailure() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}
