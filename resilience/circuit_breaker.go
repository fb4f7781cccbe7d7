package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/islam174932/EcommerceWeb/core"
)

// CircuitState represents the current state of the circuit breaker
type CircuitState int

const (
	// StateClosed - normal operation, requests pass through
	StateClosed CircuitState = iota
	// StateOpen - threshold exceeded, requests fail immediately
	StateOpen
	// StateHalfOpen - testing if the remote API recovered
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker protects the gateway from hammering an unavailable API.
// State transitions:
//
//	closed -> open       after Threshold consecutive failures
//	open   -> half-open  after Timeout has elapsed
//	half-open -> closed  after HalfOpenRequests consecutive successes
//	half-open -> open    on any failure
type CircuitBreaker struct {
	name   string
	config core.CircuitBreakerConfig
	logger core.Logger

	mu               sync.Mutex
	state            CircuitState
	failures         int
	halfOpenSuccess  int
	halfOpenInFlight int
	openedAt         time.Time

	// cumulative metrics
	totalSuccesses uint64
	totalFailures  uint64
	totalRejected  uint64
}

// NewCircuitBreaker creates a circuit breaker with the given configuration
func NewCircuitBreaker(name string, config core.CircuitBreakerConfig) *CircuitBreaker {
	if config.Threshold < 1 {
		config.Threshold = 5
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.HalfOpenRequests < 1 {
		config.HalfOpenRequests = 3
	}
	return &CircuitBreaker{
		name:   name,
		config: config,
		logger: &core.NoOpLogger{},
		state:  StateClosed,
	}
}

// SetLogger configures the logger for circuit breaker events
func (cb *CircuitBreaker) SetLogger(logger core.Logger) {
	if logger != nil {
		cb.logger = logger
	}
}

// Execute runs fn with circuit breaker protection.
// When the circuit is open it returns core.ErrCircuitBreakerOpen without
// calling fn.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !cb.CanExecute() {
		return core.ErrCircuitBreakerOpen
	}

	err := fn()
	if err != nil {
		cb.RecordFailure()
		return err
	}
	cb.RecordSuccess()
	return nil
}

// CanExecute returns true if the circuit breaker would allow execution.
// In half-open state only HalfOpenRequests probes are admitted.
func (cb *CircuitBreaker) CanExecute() bool {
	if !cb.config.Enabled {
		return true
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if time.Since(cb.openedAt) >= cb.config.Timeout {
			cb.transition(StateHalfOpen)
			cb.halfOpenInFlight = 1
			return true
		}
		cb.totalRejected++
		return false
	case StateHalfOpen:
		if cb.halfOpenInFlight < cb.config.HalfOpenRequests {
			cb.halfOpenInFlight++
			return true
		}
		cb.totalRejected++
		return false
	}
	return false
}

// RecordSuccess records a successful call
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.totalSuccesses++
	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.halfOpenSuccess++
		if cb.halfOpenSuccess >= cb.config.HalfOpenRequests {
			cb.transition(StateClosed)
		}
	}
}

// RecordFailure records a failed call
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.totalFailures++
	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.Threshold {
			cb.transition(StateOpen)
		}
	case StateHalfOpen:
		cb.transition(StateOpen)
	}
}

// GetState returns the current circuit breaker state as a string
func (cb *CircuitBreaker) GetState() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state.String()
}

// GetMetrics returns current metrics about the circuit breaker
func (cb *CircuitBreaker) GetMetrics() map[string]interface{} {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return map[string]interface{}{
		"name":      cb.name,
		"state":     cb.state.String(),
		"failures":  cb.failures,
		"successes": cb.totalSuccesses,
		"total_failures": cb.totalFailures,
		"rejected":  cb.totalRejected,
	}
}

// Reset manually resets the circuit breaker to closed state
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.transition(StateClosed)
}

// transition must be called with cb.mu held
func (cb *CircuitBreaker) transition(to CircuitState) {
	if cb.state == to {
		return
	}
	from := cb.state
	cb.state = to

	switch to {
	case StateOpen:
		cb.openedAt = time.Now()
	case StateClosed, StateHalfOpen:
		cb.failures = 0
		cb.halfOpenSuccess = 0
		cb.halfOpenInFlight = 0
	}

	cb.logger.Info("Circuit breaker state change", map[string]interface{}{
		"breaker": cb.name,
		"from":    from.String(),
		"to":      to.String(),
	})
}
