package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fiscaldata/mts-tracker/constants"
)

// Job is one statement queued for processing.
type Job struct {
	ID          string
	Path        string
	Force       bool // enqueue even if an artifact already exists
	SubmittedAt time.Time
	TraceID     string
}

// Queue accepts jobs and drains them through a worker pool.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

type ProcessorQueue struct {
	proc    *Processor
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*ProcessorQueue)

func WithWorkers(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *ProcessorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewProcessorQueue(proc *Processor, logger *slog.Logger, opts ...Option) *ProcessorQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ProcessorQueue{
		proc:    proc,
		logger:  logger,
		workers: 4,
		timeout: 3 * time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ProcessorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for job := range q.ch {
					q.logger.Info("job status", "worker_id", workerID, "id", job.ID, "status", constants.JobStatusRunning, "trace_id", job.TraceID)
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					res, err := q.proc.ProcessStatement(ctx, job.Path)
					cancel()

					switch {
					case err != nil:
						q.logger.Error("job status", "worker_id", workerID, "id", job.ID, "status", constants.JobStatusFailed, "error", err)
					case res.Document.Unparsable:
						q.logger.Warn("job status", "worker_id", workerID, "id", res.ID, "status", constants.JobStatusUnparsable)
					default:
						q.logger.Info("job status", "worker_id", workerID, "id", res.ID, "status", constants.JobStatusDone, "method", res.Method)
					}
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *ProcessorQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "id", job.ID)
		return nil
	}
	select {
	case q.ch <- job:
		q.logger.Info("queued statement for processing", "id", job.ID, "force", job.Force)
	default:
		q.logger.Warn("queue full, applying backpressure", "id", job.ID)
		q.ch <- job
	}
	return nil
}

func (q *ProcessorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
