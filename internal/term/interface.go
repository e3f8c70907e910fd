// Package term implements a terminal host for the navigation engine:
// one or more text panes side by side, drawn with tcell.
package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/peco/flash"
	"github.com/peco/flash/config"
	"github.com/peco/flash/viewport"
)

// TabWidth is the number of cells a tab advances to.
const TabWidth = 4

// Pane is a scrollable view of one document.
type Pane struct {
	ID     string
	Path   string
	Text   viewport.Lines
	Top    int
	Cursor viewport.Position

	// Selection is set when a jump extended the selection.
	Selection *viewport.Range
}

// Host draws panes and overlays on a tcell screen. Its methods may
// be called from the engine's goroutine and the input goroutine at
// the same time.
type Host struct {
	mutex  sync.Mutex
	screen tcell.Screen
	styles config.StyleSet
	panes  []*Pane
	active int
	frame  *flash.Frame
	status string
}
