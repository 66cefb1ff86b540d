package messaging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

type stubPublisher struct {
	err   error
	calls int
}

func (s *stubPublisher) PublishOrderPlaced(domain.PlacedOrder) error {
	s.calls++
	return s.err
}

func TestCircuitBreaker(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cb := NewCircuitBreaker(2, time.Minute, nil)
	cb.now = func() time.Time { return now }

	boom := errors.New("boom")
	fail := func() error { return boom }

	require.ErrorIs(t, cb.Execute("op", fail), boom)
	assert.Equal(t, CircuitClosed, cb.State())

	require.ErrorIs(t, cb.Execute("op", fail), boom)
	assert.Equal(t, CircuitOpen, cb.State())

	called := false
	require.ErrorIs(t, cb.Execute("op", func() error { called = true; return nil }), ErrCircuitOpen)
	assert.False(t, called, "operation must not run while breaker is open")

	now = now.Add(2 * time.Minute)
	require.ErrorIs(t, cb.Execute("op", fail), boom)
	assert.Equal(t, CircuitOpen, cb.State(), "failed probe reopens breaker")

	now = now.Add(2 * time.Minute)
	require.NoError(t, cb.Execute("op", func() error { return nil }))
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute, nil)
	boom := errors.New("boom")

	_ = cb.Execute("op", func() error { return boom })
	require.NoError(t, cb.Execute("op", func() error { return nil }))
	_ = cb.Execute("op", func() error { return boom })

	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitState_String(t *testing.T) {
	assert.Equal(t, "closed", CircuitClosed.String())
	assert.Equal(t, "open", CircuitOpen.String())
	assert.Equal(t, "half-open", CircuitHalfOpen.String())
}

func TestGuardedPublisher(t *testing.T) {
	next := &stubPublisher{err: errors.New("broker down")}
	p := NewGuardedPublisher(next, NewCircuitBreaker(1, time.Hour, nil))

	require.Error(t, p.PublishOrderPlaced(domain.PlacedOrder{ID: "o-1"}))
	require.ErrorIs(t, p.PublishOrderPlaced(domain.PlacedOrder{ID: "o-2"}), ErrCircuitOpen)
	assert.Equal(t, 1, next.calls, "open breaker must not reach the broker")
}

func TestGuardedPublisher_DefaultBreaker(t *testing.T) {
	next := &stubPublisher{}
	p := NewGuardedPublisher(next, nil)

	require.NoError(t, p.PublishOrderPlaced(domain.PlacedOrder{ID: "o-1"}))
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, CircuitClosed, p.breaker.State())
}
