// Package runlog writes generation audit records off the request path.
package runlog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/5w1tchy/wordlist-api/internal/store/runs"
)

type Writer interface {
	InsertBatch(ctx context.Context, rs []runs.Run) error
}

const (
	batchSize  = 100
	flushEvery = 250 * time.Millisecond
	writeTO    = 2 * time.Second
)

// Queue batches runs into a Writer from a fixed pool of workers.
type Queue struct {
	w    Writer
	log  *zap.Logger
	ch   chan runs.Run
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once

	dropped func()
}

// Start spins up workers reading from a buffered channel of size buf.
func Start(w Writer, log *zap.Logger, buf, workers int) *Queue {
	if buf < 1 {
		buf = 1
	}
	if workers < 1 {
		workers = 1
	}
	q := &Queue{
		w:       w,
		log:     log,
		ch:      make(chan runs.Run, buf),
		done:    make(chan struct{}),
		dropped: func() {},
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// OnDrop registers a callback run whenever Enqueue drops a record.
func (q *Queue) OnDrop(fn func()) {
	if fn != nil {
		q.dropped = fn
	}
}

// Enqueue queues r without blocking. If the buffer is full the record is
// dropped and false is returned; audit is best-effort.
func (q *Queue) Enqueue(r runs.Run) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.ch <- r:
		return true
	default:
		q.dropped()
		return false
	}
}

// Shutdown signals workers to stop, flushes remaining records, and waits.
func (q *Queue) Shutdown() {
	q.once.Do(func() { close(q.done) })
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	tk := time.NewTicker(flushEvery)
	defer tk.Stop()

	batch := make([]runs.Run, 0, batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeTO)
		if err := q.w.InsertBatch(ctx, batch); err != nil {
			q.log.Warn("run audit flush failed", zap.Int("records", len(batch)), zap.Error(err))
		}
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case <-q.done:
			// drain quickly then flush
			for {
				select {
				case r := <-q.ch:
					batch = append(batch, r)
					if len(batch) >= batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case r := <-q.ch:
			batch = append(batch, r)
			if len(batch) >= batchSize {
				flush()
			}
		case <-tk.C:
			flush()
		}
	}
}
