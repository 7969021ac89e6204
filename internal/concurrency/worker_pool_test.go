package concurrency

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForEachVisitsEveryIndexOnce(t *testing.T) {
	const n = 100
	seen := make([]int32, n)

	ForEach(context.Background(), 8, n, func(_ context.Context, i int) {
		atomic.AddInt32(&seen[i], 1)
	})

	for i, c := range seen {
		assert.Equal(t, int32(1), c, "index %d", i)
	}
}

func TestForEachBoundsConcurrency(t *testing.T) {
	var (
		mu      sync.Mutex
		running int
		peak    int
	)
	block := make(chan struct{})
	done := make(chan struct{})

	go func() {
		ForEach(context.Background(), 3, 12, func(_ context.Context, _ int) {
			mu.Lock()
			running++
			if running > peak {
				peak = running
			}
			mu.Unlock()
			<-block
			mu.Lock()
			running--
			mu.Unlock()
		})
		close(done)
	}()

	close(block)
	<-done
	assert.LessOrEqual(t, peak, 3)
}

func TestForEachStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	ForEach(ctx, 1, 1000, func(_ context.Context, _ int) {
		atomic.AddInt32(&calls, 1)
	})

	assert.Less(t, atomic.LoadInt32(&calls), int32(1000))
}

func TestForEachHandlesDegenerateInput(t *testing.T) {
	var calls int32
	ForEach(context.Background(), 0, 3, func(_ context.Context, _ int) {
		atomic.AddInt32(&calls, 1)
	})
	assert.Equal(t, int32(3), calls)

	ForEach(context.Background(), 4, 0, func(_ context.Context, _ int) {
		t.Fatal("must not be called")
	})
}
