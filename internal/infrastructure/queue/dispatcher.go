package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrcore/employee-service/internal/core/domain"
	"github.com/hrcore/employee-service/internal/core/ports"
	"github.com/hrcore/employee-service/internal/pkg/metrics"
)

const (
	defaultWorkers        = 4
	channelBuffer         = 256
	defaultPublishTimeout = 5 * time.Second
)

// Dispatcher routes change events to a fixed set of workers using consistent
// hashing on the entity id, guaranteeing per-record event ordering.
type Dispatcher struct {
	workers        []chan domain.ChangeEvent
	publisher      ports.EventPublisher
	publishTimeout time.Duration
	log            zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, publisher ports.EventPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:        make([]chan domain.ChangeEvent, numWorkers),
		publisher:      publisher,
		publishTimeout: defaultPublishTimeout,
		log:            log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ChangeEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled or
// after Stop has drained their channels.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its entity id. It never
// blocks the caller: when the worker channel is full the event is dropped.
func (d *Dispatcher) Enqueue(event domain.ChangeEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return
	}

	idx := d.shardIndex(event.ID.String())
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.EventsDroppedTotal.Inc()
		d.log.Warn().
			Str("entity", string(event.Entity)).
			Str("id", event.ID.String()).
			Int("worker_id", idx).
			Msg("event queue full, dropping change event")
	}
}

// Stop refuses new events, lets workers drain what is queued and waits for
// them to exit. The publisher is closed afterwards.
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
	return d.publisher.Close()
}

// shardIndex maps an entity id deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ChangeEvent) {
	defer d.wg.Done()
	depth := metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.publish(ctx, id, event)
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, worker int, event domain.ChangeEvent) {
	ctx, cancel := context.WithTimeout(ctx, d.publishTimeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, event); err != nil {
		metrics.EventsPublishedTotal.WithLabelValues("error").Inc()
		d.log.Error().Err(err).
			Str("entity", string(event.Entity)).
			Str("action", string(event.Action)).
			Str("id", event.ID.String()).
			Int("worker_id", worker).
			Msg("change event publish failed")
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues("ok").Inc()
}
