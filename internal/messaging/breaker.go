// Package messaging содержит обёртки над domain.OrderPublisher, не зависящие от брокера.
package messaging

import (
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// ErrCircuitOpen возвращается, пока breaker не пропускает публикации.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitState состояние circuit breaker'а.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// CircuitBreaker размыкается после maxFailures ошибок подряд и
// пропускает один пробный вызов по истечении resetTimeout.
type CircuitBreaker struct {
	maxFailures  int
	resetTimeout time.Duration
	now          func() time.Time
	logger       *log.Entry

	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	state       CircuitState
}

// NewCircuitBreaker создаёт новый circuit breaker.
func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration, logger *log.Entry) *CircuitBreaker {
	if logger == nil {
		logger = log.WithField("component", "circuit-breaker")
	}
	if maxFailures <= 0 {
		maxFailures = 1
	}
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		now:          time.Now,
		logger:       logger,
		state:        CircuitClosed,
	}
}

// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Execute выполняет операцию через circuit breaker. Неудачная операция не повторяется.
func (cb *CircuitBreaker) Execute(operation string, fn func() error) error {
	cb.mu.Lock()
	if cb.state == CircuitOpen {
		if cb.now().Sub(cb.lastFailure) < cb.resetTimeout {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.state = CircuitHalfOpen
		cb.logger.WithField("operation", operation).Info("circuit breaker half-open")
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailure = cb.now()
		if cb.state == CircuitHalfOpen || cb.failures >= cb.maxFailures {
			cb.state = CircuitOpen
			cb.logger.WithFields(log.Fields{
				"operation": operation,
				"failures":  cb.failures,
			}).Warn("circuit breaker opened")
		}
		return err
	}

	if cb.state == CircuitHalfOpen {
		cb.logger.WithField("operation", operation).Info("circuit breaker closed")
	}
	cb.state = CircuitClosed
	cb.failures = 0
	return nil
}

// GuardedPublisher не обращается к брокеру, пока breaker разомкнут: оформление
// заказа не ждёт таймаутов недоступной Kafka.
type GuardedPublisher struct {
	next    domain.OrderPublisher
	breaker *CircuitBreaker
}

var _ domain.OrderPublisher = (*GuardedPublisher)(nil)

// NewGuardedPublisher оборачивает publisher; nil breaker означает breaker по умолчанию.
func NewGuardedPublisher(next domain.OrderPublisher, breaker *CircuitBreaker) *GuardedPublisher {
	if breaker == nil {
		breaker = NewCircuitBreaker(5, 30*time.Second, nil)
	}
	return &GuardedPublisher{next: next, breaker: breaker}
}

// PublishOrderPlaced публикует событие через breaker.
func (p *GuardedPublisher) PublishOrderPlaced(order domain.PlacedOrder) error {
	return p.breaker.Execute("PublishOrderPlaced", func() error {
		return p.next.PublishOrderPlaced(order)
	})
}
