// Package sig ends the terminal program cleanly when it is asked to
// terminate, and lets it reload its settings on request.
package sig

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ReceivedHandler is told about a signal the Handler caught.
type ReceivedHandler interface {
	Handle(os.Signal)
}

// ReceivedHandlerFunc is a function that implements ReceivedHandler.
type ReceivedHandlerFunc func(os.Signal)

// Handle calls the underlying function.
func (f ReceivedHandlerFunc) Handle(s os.Signal) {
	f(s)
}

// Handler waits for signals. Reload signals are passed on and waited
// for again; any other signal ends the loop.
type Handler struct {
	onReceived ReceivedHandler
	onReload   ReceivedHandler
	reload     map[os.Signal]struct{}
	sigCh      chan os.Signal
}

// New starts listening for sigs (SIGTERM, SIGINT and SIGHUP if none
// are given). h may be nil.
func New(h ReceivedHandler, sigs ...os.Signal) *Handler {
	if len(sigs) == 0 {
		sigs = []os.Signal{syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	return &Handler{
		onReceived: h,
		reload:     make(map[os.Signal]struct{}),
		sigCh:      ch,
	}
}

// OnReload makes h call r for each of sigs instead of stopping. A
// signal given to both New and OnReload counts as a reload.
func (h *Handler) OnReload(r ReceivedHandler, sigs ...os.Signal) *Handler {
	h.onReload = r
	for _, s := range sigs {
		h.reload[s] = struct{}{}
	}
	signal.Notify(h.sigCh, sigs...)
	return h
}

// Loop blocks until a terminating signal arrives or ctx is done, and
// calls cancel either way so that the rest of the program winds down
// too. Reload handlers run on the calling goroutine.
func (h *Handler) Loop(ctx context.Context, cancel func()) error {
	defer cancel()
	defer signal.Stop(h.sigCh)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s := <-h.sigCh:
			if _, ok := h.reload[s]; ok {
				if h.onReload != nil {
					h.onReload.Handle(s)
				}
				continue
			}
			if h.onReceived != nil {
				h.onReceived.Handle(s)
			}
			return nil
		}
	}
}
