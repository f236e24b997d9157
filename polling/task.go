// Package polling provides a cancellable fixed-interval polling task
// with an explicit Stop, replacing manually tracked interval handles.
package polling

import (
	"context"
	"sync"
	"time"
)

// Probe performs one poll. It returns the current payload, whether the
// polled operation finished, and any error. A probe error ends the
// task.
type Probe[T any] func(ctx context.Context) (T, bool, error)

// Callbacks receive poll outcomes. OnUpdate fires per successful probe
// (including the final one), OnDone when the probe reports completion,
// OnError when a probe fails. Any callback may be nil.
type Callbacks[T any] struct {
	OnUpdate func(T)
	OnDone   func(T)
	OnError  func(error)
}

// Task is a running poll loop. Stop is idempotent and safe from any
// goroutine; it releases the loop without waiting for the next tick.
type Task struct {
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// Start launches a poll loop probing at the given interval. The first
// probe fires after one interval, not immediately. The loop ends when
// the probe reports done, the probe errors, Stop is called, or the
// parent context is cancelled.
func Start[T any](ctx context.Context, interval time.Duration, probe Probe[T], callbacks Callbacks[T]) *Task {
	loopCtx, cancel := context.WithCancel(ctx)
	task := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(task.done)
		defer cancel()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				payload, finished, err := probe(loopCtx)
				if err != nil {
					if loopCtx.Err() == nil && callbacks.OnError != nil {
						callbacks.OnError(err)
					}
					return
				}
				if callbacks.OnUpdate != nil {
					callbacks.OnUpdate(payload)
				}
				if finished {
					if callbacks.OnDone != nil {
						callbacks.OnDone(payload)
					}
					return
				}
			}
		}
	}()

	return task
}

// Stop cancels the poll loop.
func (t *Task) Stop() {
	t.stopOnce.Do(t.cancel)
}

// Wait blocks until the poll loop has exited.
func (t *Task) Wait() {
	<-t.done
}
