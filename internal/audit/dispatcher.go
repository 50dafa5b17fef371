package audit

import (
	"sync"

	"github.com/rs/zerolog"
)

const queueSize = 100

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher writes events from a single background worker so the
// request path never waits on the audit table.
type Dispatcher struct {
	sink   Sink
	log    zerolog.Logger
	queue  chan Event
	closed chan struct{}
	once   sync.Once
}

func NewDispatcher(sink Sink, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		log:    log.With().Str("component", "audit").Logger(),
		queue:  make(chan Event, queueSize),
		closed: make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.closed)
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

// Dispatch never blocks; events are dropped when the queue is full.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close drains queued events. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	<-d.closed
}
