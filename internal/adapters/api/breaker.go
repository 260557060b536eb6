package api

import (
	"errors"
	"sync"
	"time"

	"github.com/andrescamacho/craftchain-go/internal/domain/catalog"
	"github.com/andrescamacho/craftchain-go/internal/domain/shared"
)

// BreakerState is the state of a Breaker
type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// ErrBreakerOpen is returned while the remote planner is considered unavailable
var ErrBreakerOpen = errors.New("remote planner unavailable: circuit open")

// Breaker stops calling a failing remote planner for a cool-down period.
//
// Answers the remote gave on purpose (unknown item, rejected input) count as
// successes; only transport and server failures trip it.
type Breaker struct {
	mu          sync.Mutex
	maxFailures int
	coolDown    time.Duration
	clock       shared.Clock

	state       BreakerState
	failures    int
	lastFailure time.Time
}

// NewBreaker creates a closed breaker. A nil clock uses the real clock.
func NewBreaker(maxFailures int, coolDown time.Duration, clock shared.Clock) *Breaker {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &Breaker{
		maxFailures: maxFailures,
		coolDown:    coolDown,
		clock:       clock,
		state:       BreakerClosed,
	}
}

// Do runs fn unless the breaker is open. The lock is not held while fn runs.
func (b *Breaker) Do(fn func() error) error {
	b.mu.Lock()
	if b.state == BreakerOpen {
		if b.clock.Now().Sub(b.lastFailure) < b.coolDown {
			b.mu.Unlock()
			return ErrBreakerOpen
		}
		b.state = BreakerHalfOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil && tripsBreaker(err) {
		b.failures++
		b.lastFailure = b.clock.Now()
		if b.state == BreakerHalfOpen || b.failures >= b.maxFailures {
			b.state = BreakerOpen
		}
		return err
	}

	b.failures = 0
	b.state = BreakerClosed
	return err
}

// State returns the current state
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Failures returns the consecutive failure count
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

func tripsBreaker(err error) bool {
	var notFound *catalog.ItemNotFoundError
	var invalid *shared.ValidationError
	return !errors.As(err, &notFound) && !errors.As(err, &invalid)
}
