package hub

import (
	"context"
	"sync"

	pdebug "github.com/lestrrat-go/pdebug"
	"github.com/peco/flash/config"
)

// NewPayload creates a new Payload with the given data and batch flag.
func NewPayload[T any](data T, batch bool) *Payload[T] {
	return &Payload[T]{
		data:  data,
		batch: batch,
	}
}

// Batch returns true if this payload is part of a batch operation.
func (p *Payload[T]) Batch() bool {
	return p.batch
}

// Data returns the underlying data.
func (p *Payload[T]) Data() T {
	return p.data
}

// Done marks the request as done. Outside of a batch it's a no op.
// Otherwise it releases the sender waiting for the event to be
// processed.
func (p *Payload[T]) Done() {
	if p.done == nil {
		return
	}
	p.done <- struct{}{}
}

// New creates a new Hub struct
func New(bufsiz int) *Hub {
	return &Hub{
		eventCh: make(chan *Payload[Event], bufsiz),
	}
}

type operationNameKey struct{}
type batchPayloadKey struct{}

// Batch allows you to synchronously send messages during the
// scope of f() being executed: every send made with the context
// given to f returns only once the receiver has called Done.
// Batches from different goroutines do not interleave.
func (h *Hub) Batch(ctx context.Context, f func(ctx context.Context)) {
	if pdebug.Enabled {
		g := pdebug.Marker("Batch")
		defer g.End()
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	f(context.WithValue(ctx, batchPayloadKey{}, true))
}

// The done channels are buffered so that Done never blocks, even
// when the sender has given up waiting.
var doneChPool = sync.Pool{
	New: func() any {
		return make(chan struct{}, 1)
	},
}

func (p *Payload[T]) waitDone(ctx context.Context) error {
	select {
	case <-p.done:
	case <-ctx.Done():
		// the receiver may still write to the channel, so it can't be
		// recycled
		return ctx.Err()
	}

	ch := p.done
	p.done = nil
	doneChPool.Put(ch)
	return nil
}

func isBatchCtx(ctx context.Context) bool {
	var isBatchMode bool
	v := ctx.Value(batchPayloadKey{})
	if vv, ok := v.(bool); ok {
		isBatchMode = vv
	}
	return isBatchMode
}

// send is the low-level generic utility for sending typed payloads.
func send[T any](ctx context.Context, ch chan *Payload[T], r *Payload[T]) error {
	isBatchMode := isBatchCtx(ctx)
	if pdebug.Enabled {
		g := pdebug.Marker("hub.send (name=%s, isBatchMode=%t)", ctx.Value(operationNameKey{}), isBatchMode)
		defer g.End()
	}

	if isBatchMode {
		r.done = doneChPool.Get().(chan struct{})
	}

	select {
	case ch <- r:
	case <-ctx.Done():
		return ctx.Err()
	}

	if isBatchMode {
		if pdebug.Enabled {
			pdebug.Printf("request is part of batch operation. waiting")
		}
		return r.waitDone(ctx)
	}
	return nil
}

// EventCh returns the underlying channel for events
func (h *Hub) EventCh() chan *Payload[Event] {
	return h.eventCh
}

// SendEvent sends a raw event to the engine.
func (h *Hub) SendEvent(ctx context.Context, e Event) error {
	return send(ctx, h.EventCh(), NewPayload(e, isBatchCtx(ctx)))
}

// SendKey sends a typed character
func (h *Hub) SendKey(ctx context.Context, ch rune) error {
	return h.SendEvent(context.WithValue(ctx, operationNameKey{}, "send key"), Event{Type: EventKey, Ch: ch})
}

// SendAction sends a request to execute the named action
func (h *Hub) SendAction(ctx context.Context, name string) error {
	return h.SendEvent(context.WithValue(ctx, operationNameKey{}, "send action"), Event{Type: EventAction, Action: name})
}

// SendConfig replaces the engine's configuration
func (h *Hub) SendConfig(ctx context.Context, cfg *config.Config) error {
	return h.SendEvent(context.WithValue(ctx, operationNameKey{}, "send config"), Event{Type: EventConfig, Config: cfg})
}

// SendViewportChanged notifies the engine that the visible portion of
// some view changed
func (h *Hub) SendViewportChanged(ctx context.Context) error {
	return h.SendEvent(context.WithValue(ctx, operationNameKey{}, "send viewport changed"), Event{Type: EventViewportChanged})
}
