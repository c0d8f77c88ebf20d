package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jsodoma4050/business-intelligence/internal/upstream"
)

const (
	batchSize    = 32
	flushTimeout = 5 * time.Second
)

// Recorder queues fetch records and writes them to the repository from a
// fixed number of background workers. Enqueueing never blocks the caller.
type Recorder struct {
	repo    Repository
	workers int
	queue   chan Record
	now     func() time.Time
}

// NewRecorder creates a recorder with the given worker count and queue size.
func NewRecorder(repo Repository, workers, buffer int) *Recorder {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 1
	}
	return &Recorder{
		repo:    repo,
		workers: workers,
		queue:   make(chan Record, buffer),
		now:     time.Now,
	}
}

// Observe is an upstream.Observer. A full queue drops the record.
func (r *Recorder) Observe(_ context.Context, c upstream.Call) {
	r.Enqueue(FromCall(c, r.now()))
}

// Enqueue adds rec to the queue and reports whether it was accepted.
func (r *Recorder) Enqueue(rec Record) bool {
	select {
	case r.queue <- rec:
		return true
	default:
		slog.Warn("audit: queue full, dropping record", "endpoint", rec.Endpoint, "ticker", rec.Ticker)
		return false
	}
}

// Run starts worker goroutines and blocks until ctx is cancelled and the
// queue has been flushed.
func (r *Recorder) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := range r.workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			r.loop(ctx, id)
		}(i)
	}
	wg.Wait()
}

func (r *Recorder) loop(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			r.flush(id)
			return
		case rec := <-r.queue:
			// A batch already dequeued is written even if shutdown starts.
			r.save(context.WithoutCancel(ctx), id, r.collect(rec))
		}
	}
}

// collect gathers whatever is already queued behind first, up to batchSize.
func (r *Recorder) collect(first Record) []Record {
	batch := []Record{first}
	for len(batch) < batchSize {
		select {
		case rec := <-r.queue:
			batch = append(batch, rec)
		default:
			return batch
		}
	}
	return batch
}

func (r *Recorder) flush(id int) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	for {
		select {
		case rec := <-r.queue:
			r.save(ctx, id, r.collect(rec))
		default:
			return
		}
	}
}

func (r *Recorder) save(ctx context.Context, id int, batch []Record) {
	if _, err := r.repo.Save(ctx, batch); err != nil {
		slog.Error("audit: save records", "worker", id, "count", len(batch), "error", err)
	}
}
