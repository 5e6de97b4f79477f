package circuitbreaker

import (
	"sync"
	"time"
)

// State is the breaker state
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// CircuitBreaker fast-fails calls to a dependency that keeps failing.
// After failureThreshold consecutive failures the circuit opens; once
// the timeout passes a probe is let through (half-open), and
// successThreshold successes close it again.
type CircuitBreaker struct {
	mu               sync.Mutex
	state            State
	failures         int32
	successes        int32
	lastFailure      time.Time
	failureThreshold int32
	successThreshold int32
	timeout          time.Duration
}

// NewCircuitBreaker creates a closed circuit breaker
func NewCircuitBreaker(failureThreshold, successThreshold int32, timeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		timeout:          timeout,
		state:            StateClosed,
	}
}

// AllowRequest reports whether a call may proceed, moving the circuit
// to half-open when the open timeout has lapsed
func (cb *CircuitBreaker) AllowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	default:
		if time.Since(cb.lastFailure) > cb.timeout {
			cb.state = StateHalfOpen
			cb.failures = 0
			cb.successes = 0
			return true
		}
		return false
	}
}

// RecordSuccess counts a success, closing a half-open circuit once
// enough probes succeed
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.successThreshold {
			cb.state = StateClosed
			cb.failures = 0
			cb.successes = 0
		}
	case StateClosed:
		cb.failures = 0
	}
}

// RecordFailure counts a failure, tripping the circuit open at the
// threshold. Any failure while half-open reopens immediately.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailure = time.Now()
	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.failureThreshold {
			cb.state = StateOpen
			cb.failures = 0
			cb.successes = 0
		}
	case StateHalfOpen:
		cb.state = StateOpen
		cb.failures = 0
		cb.successes = 0
	}
}

// GetState returns the current state
func (cb *CircuitBreaker) GetState() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
