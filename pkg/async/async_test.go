package async_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstack/notifykit/pkg/async"
)

// syncBuffer guards a bytes.Buffer so the test can poll it while the
// logging goroutine writes into it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestAsync_Await(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 21, func(ctx context.Context, n int) (int, error) {
		return n * 2, nil
	})

	got, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.True(t, f.IsComplete())
}

func TestAsync_Error(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	f := async.Async(context.Background(), "in", func(ctx context.Context, s string) (string, error) {
		return "", wantErr
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, wantErr)
}

func TestAsync_PreCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := async.Async(ctx, 0, func(ctx context.Context, n int) (int, error) {
		t.Error("fn must not run with a pre-canceled context")
		return 0, nil
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := async.Async(context.Background(), 0, func(ctx context.Context, n int) (int, error) {
		<-release
		return 1, nil
	})

	_, err := f.AwaitWithTimeout(20 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)

	close(release)
	got, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestFire_LogsFailure(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	async.Fire(context.Background(), log, "persist notification", func(ctx context.Context) error {
		return errors.New("storage down")
	})

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "persist notification")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, buf.String(), "storage down")
}

func TestFire_SilentOnSuccess(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	done := make(chan struct{})
	async.Fire(context.Background(), log, "noop", func(ctx context.Context) error {
		close(done)
		return nil
	})

	<-done
	assert.Empty(t, buf.String())
}
