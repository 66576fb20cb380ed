package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker protects an external dependency: consecutive failures trip
// it open, and after openTimeout a bounded number of half-open probes decide
// whether it closes again.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	probeLimit       int

	state         CircuitState
	failureStreak int
	openedAt      time.Time
	probesActive  int
	probesPassed  int
	now           func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, probeLimit int) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	if openTimeout <= 0 {
		openTimeout = 15 * time.Second
	}
	if probeLimit < 1 {
		probeLimit = 1
	}

	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		openTimeout:      openTimeout,
		probeLimit:       probeLimit,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.openTimeout {
			return ErrCircuitOpen
		}
		b.enterHalfOpen()
	}

	if b.state == CircuitStateHalfOpen {
		if b.probesActive >= b.probeLimit {
			return ErrCircuitOpen
		}
		b.probesActive++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureStreak = 0
	case CircuitStateHalfOpen:
		if b.probesActive > 0 {
			b.probesActive--
		}
		b.probesPassed++
		if b.probesPassed >= b.probeLimit && b.probesActive == 0 {
			b.enterClosed()
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failureStreak++
		if b.failureStreak >= b.failureThreshold {
			b.enterOpen()
		}
	case CircuitStateHalfOpen:
		if b.probesActive > 0 {
			b.probesActive--
		}
		b.enterOpen()
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}

	return b.state
}

func (b *CircuitBreaker) enterClosed() {
	b.state = CircuitStateClosed
	b.failureStreak = 0
	b.probesActive = 0
	b.probesPassed = 0
	b.openedAt = time.Time{}
}

func (b *CircuitBreaker) enterOpen() {
	b.state = CircuitStateOpen
	b.openedAt = b.now()
	b.probesActive = 0
	b.probesPassed = 0
}

func (b *CircuitBreaker) enterHalfOpen() {
	b.state = CircuitStateHalfOpen
	b.probesActive = 0
	b.probesPassed = 0
}
