package depthfuse

import (
	"context"
	"sync"
)

// Task is a handle to an inference call running in the background.  The
// caller does not block when starting a Task and can cancel it at any time,
// the context passed to the running function is cancelled in turn.
type Task[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	value  T
	err    error
}

// Go starts fn on a new goroutine and returns a Task to track it
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Task[T] {

	ctx, cancel := context.WithCancel(ctx)

	t := &Task[T]{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer cancel()
		value, err := fn(ctx)
		t.finish(value, err)
	}()

	return t
}

// finish records the outcome of the Task
func (t *Task[T]) finish(value T, err error) {
	t.once.Do(func() {
		t.value = value
		t.err = err
		close(t.done)
	})
}

// Cancel requests the Task to stop.  It is safe to call multiple times and
// after the Task has completed.
func (t *Task[T]) Cancel() {
	t.cancel()
}

// Done returns a channel that is closed when the Task has completed
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the Task completes or ctx is done and returns the outcome
// of the Task
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
