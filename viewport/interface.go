package viewport

import (
	"sync"

	"github.com/google/btree"
)

// Position is a zero-based line/column location inside a document.
// Columns are counted in runes, not bytes.
type Position struct {
	Line   int
	Column int
}

// Range is a span between two positions. End is exclusive.
type Range struct {
	Start Position
	End   Position
}

// LineRange is an inclusive range of line numbers, used to describe
// the portion of a document that is currently scrolled into view.
type LineRange struct {
	Start int
	End   int
}

// Text gives line level access to a document. LineAt must return
// an empty string for lines that do not exist.
type Text interface {
	LineCount() int
	LineAt(int) string
}

// Lines is the simplest Text: one string per line.
type Lines []string

// RangeSet stores non-overlapping LineRanges ordered by their first
// line, so that membership of a single line can be answered without
// walking every range.
type RangeSet struct {
	tree *btree.BTree
}

// Snapshot is the read-only description of one visible view, as
// handed over by the host for a single recomputation cycle.
type Snapshot struct {
	// ID identifies the view. Two views may show the same Document.
	ID string

	// Document identifies the underlying document (e.g. its path).
	Document string

	Text    Text
	Visible []LineRange

	// Active is true for the view holding the cursor. Cursor is
	// only meaningful when Active is true.
	Active bool
	Cursor Position

	once    sync.Once
	visible *RangeSet
}
