package hub

import (
	"sync"

	"github.com/peco/flash/config"
)

// Hub serializes everything that reaches the navigation engine. All
// input (keystrokes, commands, viewport notifications and
// configuration changes) is funneled through a single channel which
// is drained by exactly one goroutine, so two recomputation cycles
// can never overlap.
type Hub struct {
	mutex   sync.Mutex
	eventCh chan *Payload[Event]
}

// Payload is a wrapper around the actual request value that needs
// to be passed. It contains an optional channel field which can
// be filled to force synchronous communication between the
// sender and receiver
type Payload[T any] struct {
	data  T
	batch bool
	done  chan struct{}
}

// EventType tells the receiver which fields of an Event are set.
type EventType int

const (
	EventKey EventType = iota + 1
	EventAction
	EventViewportChanged
	EventConfig
)

// Event is a single unit of input for the engine.
type Event struct {
	Type EventType

	// Ch is the typed character for EventKey.
	Ch rune

	// Action is the registered action name for EventAction.
	Action string

	// Config is the new configuration for EventConfig.
	Config *config.Config
}
