package label

import (
	"github.com/peco/flash/viewport"
)

// AmbiguousMarker is what a host displays over a match that ran out
// of label characters. It is never entered into a Table.
const AmbiguousMarker = '?'

// Target is where a label leads.
type Target struct {
	View     string
	Position viewport.Position
}

// Table maps label characters to their targets. A character maps to
// at most one target, and characters absent from the table are not
// actionable.
type Table struct {
	targets map[rune]Target
	keys    []rune
}

// Overlay is a single column the host should decorate with a label.
// When Ambiguous is set Label is unused and AmbiguousMarker should be
// shown instead.
type Overlay struct {
	View      string
	Range     viewport.Range
	Label     rune
	Ambiguous bool
}

// Assigner hands out label characters from an ordered alphabet.
// Characters earlier in the alphabet are handed out first.
type Assigner struct {
	alphabet []rune
}

// Result is the output of one assignment pass.
type Result struct {
	Table    *Table
	Overlays []Overlay
	// Usable holds the alphabet characters that were available this
	// cycle, in alphabet order.
	Usable []rune
}
