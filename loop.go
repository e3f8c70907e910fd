package flash

import (
	"context"

	"github.com/lestrrat-go/pdebug"
	"github.com/peco/flash/hub"
)

// Loop processes the events sent through h until ctx is canceled or
// the hub's channel is closed. Events are handled one at a time, so
// every cycle runs to completion before the next event is looked at.
// Errors are handed to the host if it implements ErrorReporter.
func (f *Flash) Loop(ctx context.Context, h *hub.Hub) error {
	if pdebug.Enabled {
		g := pdebug.Marker("Flash.Loop")
		defer g.End()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p, ok := <-h.EventCh():
			if !ok {
				return nil
			}

			if err := f.handleEvent(ctx, p.Data()); err != nil {
				if pdebug.Enabled {
					pdebug.Printf("event failed: %s", err)
				}
				if r, ok := f.host.(ErrorReporter); ok {
					r.ReportError(ctx, err)
				}
			}
			p.Done()
		}
	}
}

func (f *Flash) handleEvent(ctx context.Context, e hub.Event) error {
	switch e.Type {
	case hub.EventKey:
		return f.Type(ctx, e.Ch)
	case hub.EventAction:
		return ExecuteAction(ctx, f, e.Action, e)
	case hub.EventViewportChanged:
		f.ViewportChanged(ctx)
		return nil
	case hub.EventConfig:
		return f.SetConfig(ctx, e.Config)
	default:
		return nil
	}
}
