package flash

import (
	"context"

	"github.com/peco/flash/config"
	"github.com/peco/flash/hub"
	"github.com/peco/flash/label"
	"github.com/peco/flash/outline"
	"github.com/peco/flash/query"
	"github.com/peco/flash/viewport"
)

// Mode is the current state of a navigation session.
type Mode int

const (
	ModeIdle Mode = iota
	ModeIncrementalSearch
	ModeOutlineJump
	ModeLineUp
	ModeLineDown
)

// Host is the editor (or terminal UI) hosting the engine.
type Host interface {
	// Snapshots describes every visible view, in display order. It
	// is called once per recomputation cycle.
	Snapshots() []*viewport.Snapshot

	// Render presents the result of a cycle. An idle Frame means
	// every overlay should be removed.
	Render(context.Context, *Frame)

	// Jump moves the cursor as described.
	Jump(context.Context, *Jump) error
}

// ErrorReporter may be implemented by a Host that wants to hear about
// errors of events processed by Loop.
type ErrorReporter interface {
	ReportError(context.Context, error)
}

// Frame is everything a host needs to draw one cycle.
type Frame struct {
	Mode  Mode
	Query string
	Views []*ViewFrame
}

// ViewFrame holds the overlays of a single view.
type ViewFrame struct {
	View string
	// Dim covers the visible lines. Everything is dimmed while a
	// session is active.
	Dim     []viewport.LineRange
	Matches []viewport.Range
	Labels  []label.Overlay
}

// Jump is the resolution of a label.
type Jump struct {
	View   string
	Target viewport.Position

	// Center asks the host to center the target line. Otherwise the
	// host reveals the target in its default way.
	Center bool

	// Focus is set when View is not the view that held the cursor.
	Focus bool

	// Select asks for the selection to be extended from Anchor (the
	// cursor before the jump) to Target.
	Select bool
	Anchor viewport.Position
}

// Flash is a navigation session. It is not safe for concurrent use:
// drive it from a single goroutine, typically through Loop.
type Flash struct {
	host     Host
	provider outline.Provider
	config   *config.Config
	assigner *label.Assigner
	outlines outline.Cache

	mode      Mode
	query     query.Text
	selecting bool
	labels    *label.Table
	frame     *Frame

	// where the cursor was during the last cycle
	origin string
	cursor viewport.Position
}

// Action describes an action that can be executed upon receiving user input.
type Action interface {
	Execute(context.Context, *Flash, hub.Event) error
}

// ActionFunc is a type of Action that is basically just a callback.
type ActionFunc func(context.Context, *Flash, hub.Event) error
