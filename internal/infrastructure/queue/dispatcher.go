package queue

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
)

// Dispatcher hands contact messages to a fixed set of workers. Messages from
// the same sender always land on the same worker, so they are delivered in
// the order they were received.
type Dispatcher struct {
	workers []chan ports.ContactMessage
	service ports.ContactService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ContactService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ContactMessage, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ContactMessage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue never blocks; a full shard yields ports.ErrQueueFull.
func (d *Dispatcher) Enqueue(msg ports.ContactMessage) error {
	select {
	case d.workers[d.shardIndex(msg.Email)] <- msg:
		return nil
	default:
		return ports.ErrQueueFull
	}
}

// Depth returns the number of messages waiting across all workers.
func (d *Dispatcher) Depth() int {
	n := 0
	for _, ch := range d.workers {
		n += len(ch)
	}
	return n
}

func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(email)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ContactMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Deliver(ctx, msg); err != nil {
				d.log.Error().Err(err).
					Str("sender", msg.Email).
					Int("worker_id", id).
					Msg("contact delivery failed")
			}
		}
	}
}
