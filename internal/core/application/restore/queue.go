package restore

import (
	"context"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 5

// Task is a unit of work run by the queue.
type Task func(ctx context.Context) error

// Result is the outcome of the task at Index.
type Result struct {
	Index int
	Err   error
}

// Queue runs tasks with a bounded concurrency.
type Queue struct {
	concurrency int
}

// NewQueue returns a queue running at most concurrency tasks at once.
func NewQueue(concurrency int) *Queue {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Queue{concurrency}
}

// RunSettled runs all tasks and waits for every one of them to finish.
// Failures are logged and dropped, one failing task never stops the others.
func (q *Queue) RunSettled(ctx context.Context, tasks []Task) {
	eg := &errgroup.Group{}
	eg.SetLimit(q.concurrency)

	for i := range tasks {
		i, task := i, tasks[i]
		eg.Go(func() error {
			if err := task(ctx); err != nil {
				log.WithError(err).Warnf("task %d failed", i)
			}
			return nil
		})
	}
	eg.Wait()
}

// Run runs all tasks and returns the outcome of each of them in the order
// tasks were given.
func (q *Queue) Run(ctx context.Context, tasks []Task) []Result {
	results := make([]Result, len(tasks))

	eg := &errgroup.Group{}
	eg.SetLimit(q.concurrency)

	for i := range tasks {
		i, task := i, tasks[i]
		eg.Go(func() error {
			results[i] = Result{Index: i, Err: task(ctx)}
			return nil
		})
	}
	eg.Wait()

	return results
}
