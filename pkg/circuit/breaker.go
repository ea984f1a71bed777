// Package circuit stops calling an optional dependency after repeated
// failures and probes it again once a cool-down has passed.
package circuit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Payphone-Digital/carrental/pkg/logger"
	"go.uber.org/zap"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many probes in half-open state")
)

// IsRejected reports whether err came from the breaker rather than the
// guarded call.
func IsRejected(err error) bool {
	return errors.Is(err, ErrCircuitOpen) || errors.Is(err, ErrTooManyRequests)
}

type Config struct {
	Threshold        int           // consecutive failures before opening
	Cooldown         time.Duration // time spent open before probing
	SuccessThreshold int           // probe successes needed to close
	MaxProbes        int           // concurrent calls allowed while half-open
}

func DefaultConfig() Config {
	return Config{
		Threshold:        5,
		Cooldown:         30 * time.Second,
		SuccessThreshold: 2,
		MaxProbes:        1,
	}
}

type Breaker struct {
	mu        sync.Mutex
	name      string
	config    Config
	state     State
	failures  int
	successes int
	probes    int
	openedAt  time.Time
	now       func() time.Time
}

func NewBreaker(name string, config Config) *Breaker {
	return &Breaker{
		name:   name,
		config: config,
		state:  StateClosed,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for the cool-down.
func (b *Breaker) WithClock(now func() time.Time) *Breaker {
	b.now = now
	return b
}

// Execute runs fn unless the circuit rejects the call, and records the outcome.
func (b *Breaker) Execute(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn()
	b.Record(err)
	return err
}

func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.config.Cooldown {
			return ErrCircuitOpen
		}
		b.transitionTo(StateHalfOpen)
		b.probes = 1
		return nil

	case StateHalfOpen:
		if b.probes >= b.config.MaxProbes {
			return ErrTooManyRequests
		}
		b.probes++
		return nil

	default:
		return nil
	}
}

// Record counts the result of a call admitted by Allow. A cancelled caller
// says nothing about the dependency and is ignored.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen && b.probes > 0 {
		b.probes--
	}

	switch {
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		b.recordFailure()
	default:
		b.recordSuccess()
	}
}

func (b *Breaker) recordFailure() {
	b.failures++
	b.successes = 0

	switch b.state {
	case StateClosed:
		if b.failures >= b.config.Threshold {
			b.transitionTo(StateOpen)
		}
	case StateHalfOpen:
		b.transitionTo(StateOpen)
	}
}

func (b *Breaker) recordSuccess() {
	b.failures = 0

	if b.state == StateHalfOpen {
		b.successes++
		if b.successes >= b.config.SuccessThreshold {
			b.transitionTo(StateClosed)
		}
	}
}

// transitionTo must be called with mu held.
func (b *Breaker) transitionTo(next State) {
	prev := b.state
	b.state = next
	b.probes = 0

	switch next {
	case StateOpen:
		b.openedAt = b.now()
	case StateClosed:
		b.failures = 0
		b.successes = 0
	}

	logger.GetLogger().Info("Circuit breaker state changed",
		zap.String("name", b.name),
		zap.String("from", prev.String()),
		zap.String("to", next.String()),
	)
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) Stats() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	return map[string]interface{}{
		"name":      b.name,
		"state":     b.state.String(),
		"failures":  b.failures,
		"threshold": b.config.Threshold,
		"cooldown":  b.config.Cooldown.String(),
	}
}

func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transitionTo(StateClosed)
}
