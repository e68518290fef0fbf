package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cipco/cms-backend/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ViewCounter persists view increments for a blog.
type ViewCounter interface {
	IncrementViews(ctx context.Context, id string, delta int64) error
}

// Dispatcher routes blog view hits to a fixed set of workers using consistent
// hashing on the blog id, so all hits of one blog are applied by one worker.
type Dispatcher struct {
	workers []chan string
	store   ViewCounter
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ViewCounter, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record queues one view of blogID. It never blocks: when the worker queue is
// full the hit is dropped and counted.
func (d *Dispatcher) Record(blogID string) {
	idx := d.shardIndex(blogID)
	depth := metrics.ViewQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()
	select {
	case d.workers[idx] <- blogID:
	default:
		depth.Dec()
		metrics.BlogViewsDroppedTotal.Inc()
		d.log.Warn().Str("blog_id", blogID).Int("worker_id", idx).Msg("view queue full, hit dropped")
	}
}

// shardIndex maps a blog id deterministically to a worker index.
func (d *Dispatcher) shardIndex(blogID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(blogID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	depth := metrics.ViewQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case blogID, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			if err := d.store.IncrementViews(ctx, blogID, 1); err != nil {
				d.log.Error().Err(err).
					Str("blog_id", blogID).
					Int("worker_id", id).
					Msg("view increment failed")
			}
		}
	}
}
