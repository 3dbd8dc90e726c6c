package async

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its
// result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout waits for completion with a timeout. If the timeout
// elapses first, it returns ErrTimeout.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete checks for completion without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn in a new goroutine and returns a Future for its result.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents needless work when context is pre-canceled
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		res, err := fn(ctx, param)
		f.once.Do(func() {
			f.result = res
			f.err = err
		})
	}()

	return f
}

// Fire runs fn in a new goroutine and logs any returned error at warn level
// under the given operation name. It is the building block for best-effort
// side effects: the caller never observes the outcome.
func Fire(ctx context.Context, log *slog.Logger, op string, fn func(context.Context) error) {
	if log == nil {
		log = slog.Default()
	}

	go func() {
		if err := fn(ctx); err != nil {
			log.LogAttrs(ctx, slog.LevelWarn, "Background operation failed",
				slog.String("op", op),
				slog.Any("error", err),
			)
		}
	}()
}
