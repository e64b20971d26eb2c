package restore_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-signer/internal/core/application/restore"
)

func countingTasks(
	n int, failEvery int, running, maxRunning, done *int32,
) []restore.Task {
	tasks := make([]restore.Task, 0, n)
	for i := 0; i < n; i++ {
		i := i
		tasks = append(tasks, func(context.Context) error {
			cur := atomic.AddInt32(running, 1)
			for {
				max := atomic.LoadInt32(maxRunning)
				if cur <= max || atomic.CompareAndSwapInt32(maxRunning, max, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(running, -1)
			atomic.AddInt32(done, 1)

			if failEvery > 0 && i%failEvery == 0 {
				return fmt.Errorf("task %d failed", i)
			}
			return nil
		})
	}
	return tasks
}

func TestRunSettled(t *testing.T) {
	var running, maxRunning, done int32
	tasks := countingTasks(20, 3, &running, &maxRunning, &done)

	restore.NewQueue(4).RunSettled(context.Background(), tasks)

	require.Equal(t, int32(20), atomic.LoadInt32(&done))
	require.LessOrEqual(t, atomic.LoadInt32(&maxRunning), int32(4))
}

func TestRun(t *testing.T) {
	var running, maxRunning, done int32
	tasks := countingTasks(10, 0, &running, &maxRunning, &done)
	failure := errors.New("sync failed")
	tasks[3] = func(context.Context) error { return failure }
	tasks[7] = func(context.Context) error { return failure }

	results := restore.NewQueue(2).Run(context.Background(), tasks)

	require.Len(t, results, 10)
	require.Equal(t, int32(8), atomic.LoadInt32(&done))
	require.LessOrEqual(t, atomic.LoadInt32(&maxRunning), int32(2))
	for i, r := range results {
		require.Equal(t, i, r.Index)
		if i == 3 || i == 7 {
			require.Equal(t, failure, r.Err)
			continue
		}
		require.NoError(t, r.Err)
	}
}

func TestRunEmpty(t *testing.T) {
	q := restore.NewQueue(0)
	q.RunSettled(context.Background(), nil)
	require.Empty(t, q.Run(context.Background(), nil))
}
