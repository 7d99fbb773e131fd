package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/helpdesk/faq-portal/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ViewStore applies a single view increment to the underlying record store.
type ViewStore interface {
	IncrementViews(ctx context.Context, faqID string) error
}

// Dispatcher applies FAQ view increments off the request path. Events are
// routed to a fixed set of workers by consistent hashing on the FAQ id, so
// increments for the same FAQ are applied in order.
type Dispatcher struct {
	workers []chan string
	store   ViewStore
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ViewStore, log zerolog.Logger) *Dispatcher {
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

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// increments still queued at shutdown are dropped (view counters are
// best-effort).
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a view increment to the worker responsible for the FAQ.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(faqID string) {
	idx := d.shardIndex(faqID)
	d.workers[idx] <- faqID
	metrics.ViewQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a FAQ id deterministically to a worker index.
func (d *Dispatcher) shardIndex(faqID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(faqID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case faqID, ok := <-ch:
			if !ok {
				return
			}
			metrics.ViewQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.store.IncrementViews(ctx, faqID); err != nil {
				d.log.Error().Err(err).
					Str("faq_id", faqID).
					Int("worker_id", id).
					Msg("view increment failed")
			}
		}
	}
}
