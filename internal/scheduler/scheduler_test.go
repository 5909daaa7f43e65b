package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLaterFiresAfterDelay(t *testing.T) {
	s := New(4)
	var fired int32
	s.RunLater(2, func() { atomic.AddInt32(&fired, 1) })

	s.Tick() // tick 1: not due yet
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
	s.Tick() // tick 2: due
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	s.Tick() // tick 3: already consumed
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestRunPeriodicFiresRepeatedly(t *testing.T) {
	s := New(4)
	var count int32
	s.RunPeriodic(2, func() { atomic.AddInt32(&count, 1) })

	for i := 0; i < 6; i++ {
		s.Tick()
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&count))
}

func TestCancelStopsFutureFirings(t *testing.T) {
	s := New(4)
	var count int32
	id := s.RunPeriodic(1, func() { atomic.AddInt32(&count, 1) })

	s.Tick()
	assert.Equal(t, int32(1), atomic.LoadInt32(&count))
	s.Cancel(id)
	s.Tick()
	s.Tick()
	assert.Equal(t, int32(1), atomic.LoadInt32(&count))
}

func TestTickRunsTasksInAscendingIDOrder(t *testing.T) {
	s := New(4)
	var order []int
	var mu sync.Mutex
	for i := 0; i < 5; i++ {
		i := i
		s.RunLater(0, func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	s.Tick()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestTickIsolatesPanickingTask(t *testing.T) {
	s := New(4)
	var ranAfter bool
	s.RunLater(0, func() { panic("boom") })
	s.RunLater(0, func() { ranAfter = true })

	require.NotPanics(t, func() { s.Tick() })
	assert.True(t, ranAfter)
}

func TestRunAsyncRespectsConcurrencyLimit(t *testing.T) {
	s := New(2)
	var active int32
	var maxActive int32
	var wg sync.WaitGroup
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		wg.Add(1)
		s.RunAsync(ctx, func(ctx context.Context) {
			defer wg.Done()
			n := atomic.AddInt32(&active, 1)
			for {
				old := atomic.LoadInt32(&maxActive)
				if n <= old || atomic.CompareAndSwapInt32(&maxActive, old, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&active, -1)
		})
	}

	wg.Wait()
	s.Wait()
	assert.LessOrEqual(t, atomic.LoadInt32(&maxActive), int32(2))
}

func TestRunAsyncAbortsOnCancelledContext(t *testing.T) {
	s := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran bool
	s.RunAsync(ctx, func(ctx context.Context) { ran = true })
	s.Wait()
	assert.False(t, ran)
}
