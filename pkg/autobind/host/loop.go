package host

import (
	"context"
	"sync"
	"time"
)

// Loop is a cooperative callback queue. Each Tick runs the callbacks queued
// before it started; callbacks queued during a tick run on the next one.
type Loop struct {
	mu    sync.Mutex
	queue []func()
}

// NewLoop creates an empty loop
func NewLoop() *Loop {
	return &Loop{}
}

// RunLater queues fn for the next tick. Safe for concurrent use.
func (l *Loop) RunLater(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
}

// Pending returns the number of queued callbacks
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Tick runs the current batch and returns its size
func (l *Loop) Tick() int {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Drain ticks until the queue is empty or maxTicks ticks ran, returning the
// number of ticks
func (l *Loop) Drain(maxTicks int) int {
	ticks := 0
	for ticks < maxTicks && l.Pending() > 0 {
		l.Tick()
		ticks++
	}
	return ticks
}

// Run ticks every interval until ctx is done
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Tick()
		}
	}
}

// RunUntilIdle ticks every interval until the queue is empty or ctx is done
func (l *Loop) RunUntilIdle(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for l.Pending() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Tick()
		}
	}
	return nil
}
