package term

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lestrrat-go/pdebug"
	"github.com/peco/flash"
	"github.com/peco/flash/hub"
)

// Input turns terminal events into hub events. Keys bound in the
// keymap become actions, other characters are forwarded while a
// session runs, and everything else moves the cursor or scrolls.
type Input struct {
	host   *Host
	hub    *hub.Hub
	mutex  sync.Mutex
	keymap map[string]string
}

// NewInput creates an Input. Unknown action names in keymap are
// reported as errors.
func NewInput(host *Host, h *hub.Hub, keymap map[string]string) (*Input, error) {
	in := &Input{host: host, hub: h}
	if err := in.SetKeymap(keymap); err != nil {
		return nil, err
	}
	return in, nil
}

// SetKeymap replaces the key bindings. On error the current bindings
// are kept.
func (in *Input) SetKeymap(keymap map[string]string) error {
	for key, name := range keymap {
		if !flash.IsAction(name) {
			return &UnknownActionError{Key: key, Action: name}
		}
	}
	in.mutex.Lock()
	defer in.mutex.Unlock()
	in.keymap = keymap
	return nil
}

func (in *Input) lookup(key string) (string, bool) {
	in.mutex.Lock()
	defer in.mutex.Unlock()
	name, ok := in.keymap[key]
	return name, ok
}

// send hands an event to the engine and waits until it was handled,
// so that the next key is looked at in the mode the engine left
// behind.
func (in *Input) send(ctx context.Context, fn func(context.Context) error) error {
	var err error
	in.hub.Batch(ctx, func(ctx context.Context) {
		err = fn(ctx)
	})
	return err
}

// UnknownActionError is returned for keymap entries naming an action
// that does not exist.
type UnknownActionError struct {
	Key    string
	Action string
}

func (e *UnknownActionError) Error() string {
	return "unknown action " + e.Action + " bound to " + e.Key
}

// Loop polls the screen until ctx is canceled, the screen is
// finalized, or C-c is pressed.
func (in *Input) Loop(ctx context.Context) error {
	events := make(chan tcell.Event)
	go func() {
		defer close(events)
		for {
			ev := in.host.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case events <- ev:
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := in.Handle(ctx, ev)
			if err != nil || quit {
				return err
			}
		}
	}
}

// Handle processes a single event. It returns true when the user asked
// to quit.
func (in *Input) Handle(ctx context.Context, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		in.host.screen.Sync()
		in.host.Draw()
		return false, in.send(ctx, in.hub.SendViewportChanged)
	case *tcell.EventKey:
		return in.handleKey(ctx, ev)
	}
	return false, nil
}

func (in *Input) handleKey(ctx context.Context, ev *tcell.EventKey) (bool, error) {
	name := KeyName(ev)
	if pdebug.Enabled {
		pdebug.Printf("key %q", name)
	}

	if name == "C-c" {
		return true, nil
	}
	if action, ok := in.lookup(name); ok {
		return false, in.send(ctx, func(ctx context.Context) error {
			return in.hub.SendAction(ctx, action)
		})
	}

	session := in.host.Session() != flash.ModeIdle
	if session && ev.Key() == tcell.KeyRune {
		return false, in.send(ctx, func(ctx context.Context) error {
			return in.hub.SendKey(ctx, ev.Rune())
		})
	}

	_, height := in.host.screen.Size()
	switch ev.Key() {
	case tcell.KeyUp:
		in.host.MoveCursor(-1, 0)
	case tcell.KeyDown:
		in.host.MoveCursor(1, 0)
	case tcell.KeyLeft:
		in.host.MoveCursor(0, -1)
	case tcell.KeyRight:
		in.host.MoveCursor(0, 1)
	case tcell.KeyPgUp:
		in.host.Scroll(-(height - 1))
	case tcell.KeyPgDn:
		in.host.Scroll(height - 1)
	case tcell.KeyTab:
		in.host.FocusNext()
	default:
		return false, nil
	}

	if session {
		return false, in.send(ctx, in.hub.SendViewportChanged)
	}
	return false, nil
}
