package async

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/freight-orders/internal/core"
)

type fakeProcessor struct {
	mu    sync.Mutex
	paths []string
}

func (f *fakeProcessor) ProcessFile(_ context.Context, path, attachment string) (*core.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	if path == "bad.pdf" {
		return nil, errors.New("broken")
	}
	return &core.Result{SourceFile: path}, nil
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestQueueProcessesAll(t *testing.T) {
	fp := &fakeProcessor{}
	var mu sync.Mutex
	failed := 0
	q := NewProcessorQueue(fp, quiet(),
		WithWorkers(3),
		WithQueueSize(2),
		WithProcessTimeout(time.Second),
		WithOutcome(func(_ Job, _ *core.Result, err error) {
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}),
	)

	paths := []string{"a.pdf", "b.pdf", "bad.pdf", "c.txt", "d.pdf"}
	for _, p := range paths {
		require.NoError(t, q.Enqueue(context.Background(), Job{Path: p}))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	assert.ElementsMatch(t, paths, fp.paths)
	assert.Equal(t, 1, failed)
}

func TestEnqueueAfterShutdown(t *testing.T) {
	q := NewProcessorQueue(&fakeProcessor{}, quiet(), WithWorkers(1))
	q.Shutdown(context.Background())
	assert.ErrorIs(t, q.Enqueue(context.Background(), Job{Path: "late.pdf"}), ErrQueueClosed)
	q.Shutdown(context.Background()) // second call is a no-op
}

type blockingProcessor struct {
	started chan string
	release chan struct{}
}

func (b *blockingProcessor) ProcessFile(_ context.Context, path, _ string) (*core.Result, error) {
	b.started <- path
	<-b.release
	return &core.Result{SourceFile: path}, nil
}

func TestShutdownReleasesBlockedEnqueue(t *testing.T) {
	bp := &blockingProcessor{started: make(chan string, 4), release: make(chan struct{})}
	q := NewProcessorQueue(bp, quiet(), WithWorkers(1), WithQueueSize(1))

	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "a.pdf"}))
	assert.Equal(t, "a.pdf", <-bp.started)
	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "b.pdf"}))

	blocked := make(chan error, 1)
	go func() { blocked <- q.Enqueue(context.Background(), Job{Path: "c.pdf"}) }()
	time.Sleep(20 * time.Millisecond)

	shutdownDone := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		q.Shutdown(ctx)
		close(shutdownDone)
	}()

	select {
	case err := <-blocked:
		assert.ErrorIs(t, err, ErrQueueClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("full-queue Enqueue was not released by Shutdown")
	}

	close(bp.release)
	<-shutdownDone
	assert.Equal(t, "b.pdf", <-bp.started)
}
