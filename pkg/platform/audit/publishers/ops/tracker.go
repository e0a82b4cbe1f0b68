// Package ops provides a fire-and-forget audit tracker for operational events
// such as registration validations.
//
// Track never blocks and never fails the caller. Events are sampled, buffered,
// and persisted by a single background goroutine guarded by a circuit breaker.
package ops

import (
	"context"
	"log/slog"
	"sync"
	"time"

	audit "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit"
)

const (
	defaultBufferSize   = 1024
	defaultWriteTimeout = 2 * time.Second
)

// Tracker emits ops events asynchronously.
type Tracker struct {
	store   audit.Store
	sampler *Sampler
	breaker *CircuitBreaker
	logger  *slog.Logger
	metrics *Metrics

	bufferSize   int
	writeTimeout time.Duration

	events    chan audit.Event
	done      chan struct{}
	closeOnce sync.Once
}

type Option func(*Tracker)

func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(t *Tracker) {
		t.metrics = m
	}
}

func WithSampler(s *Sampler) Option {
	return func(t *Tracker) {
		t.sampler = s
	}
}

func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(t *Tracker) {
		t.breaker = cb
	}
}

func WithBufferSize(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.bufferSize = n
		}
	}
}

// NewTracker starts the background writer. Call Close to drain and stop it.
func NewTracker(store audit.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:        store,
		sampler:      NewSampler(1),
		breaker:      NewCircuitBreaker(5, time.Minute),
		bufferSize:   defaultBufferSize,
		writeTimeout: defaultWriteTimeout,
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.events = make(chan audit.Event, t.bufferSize)
	go t.run()
	return t
}

// Track queues an event. Sampled-out events and events arriving while the
// buffer is full are dropped and counted.
func (t *Tracker) Track(_ context.Context, event audit.OpsEvent) {
	if !t.sampler.ShouldSample(event.Action) {
		t.metrics.IncSampled()
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case t.events <- event.ToEvent():
	default:
		t.metrics.IncBufferDropped()
	}
}

// Close stops accepting events and waits for queued events to be written.
func (t *Tracker) Close() error {
	t.closeOnce.Do(func() {
		close(t.events)
	})
	<-t.done
	return nil
}

func (t *Tracker) run() {
	defer close(t.done)
	for event := range t.events {
		t.persist(event)
	}
}

func (t *Tracker) persist(event audit.Event) {
	if !t.breaker.Allow() {
		t.metrics.IncCircuitBreakerDropped()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.writeTimeout)
	defer cancel()

	if err := t.store.Append(ctx, event); err != nil {
		t.breaker.RecordFailure()
		t.metrics.IncPersistFailures()
		t.metrics.SetCircuitBreakerState(t.breaker.IsOpen())
		if t.logger != nil {
			t.logger.Warn("ops audit write failed", "action", event.Action, "error", err)
		}
		return
	}
	t.breaker.RecordSuccess()
	t.metrics.SetCircuitBreakerState(false)
	t.metrics.IncTracked()
}
