package workers

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dariasmyr/stopwatch/internal/lib/logger/sl"
)

type WorkerPool struct {
	log           *slog.Logger
	workersCount  int
	jobs          chan Job
	results       chan Result
	Done          chan struct{}
	activeWorkers int32
	closeOnce     sync.Once
}

func New(log *slog.Logger, numWorkers int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}

	return &WorkerPool{
		log:          log,
		workersCount: numWorkers,
		jobs:         make(chan Job),
		results:      make(chan Result, numWorkers),
		Done:         make(chan struct{}),
	}
}

// AddJob hands job to a worker. It blocks until a worker takes it or ctx is done.
func (wp *WorkerPool) AddJob(ctx context.Context, job Job) error {
	select {
	case wp.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops intake. Workers exit once the queued jobs are done.
func (wp *WorkerPool) Close() {
	wp.closeOnce.Do(func() {
		close(wp.jobs)
	})
}

// Results is closed after every worker has exited.
func (wp *WorkerPool) Results() <-chan Result {
	return wp.results
}

func (wp *WorkerPool) ActiveWorkersCount() int32 {
	return atomic.LoadInt32(&wp.activeWorkers)
}

// Run starts the workers and blocks until they exit.
func (wp *WorkerPool) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for i := 0; i < wp.workersCount; i++ {
		wg.Add(1)
		go worker(ctx, &wg, wp)
	}

	wg.Wait()
	close(wp.results)
	close(wp.Done)
}

func worker(ctx context.Context, wg *sync.WaitGroup, wp *WorkerPool) {
	defer wg.Done()

	atomic.AddInt32(&wp.activeWorkers, 1)
	defer atomic.AddInt32(&wp.activeWorkers, -1)

	for {
		select {
		case job, ok := <-wp.jobs:
			if !ok {
				return
			}
			result := job.execute(ctx)
			if result.Err != nil {
				wp.log.Debug("job failed",
					slog.String("id", string(job.Description.ID)),
					slog.String("type", job.Description.JobType),
					sl.Err(result.Err),
				)
			}
			select {
			case wp.results <- result:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			wp.log.Debug("worker cancelled", sl.Err(ctx.Err()))
			return
		}
	}
}
