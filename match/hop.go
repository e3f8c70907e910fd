package match

import (
	"github.com/peco/flash/internal/util"
	"github.com/peco/flash/viewport"
)

// NewVerticalHop creates a Source offering up to count lines starting
// at the cursor line and walking in direction d. count is normally the
// size of the label alphabet, since every hop needs its own label.
func NewVerticalHop(d Direction, count int, hugContent bool) *VerticalHop {
	return &VerticalHop{direction: d, count: count, hugContent: hugContent}
}

func (h *VerticalHop) String() string {
	return "VerticalHop(" + h.direction.String() + ")"
}

// Apply only ever looks at the active view. With hugContent set each
// hop lands on the first non-blank column of its line.
func (h *VerticalHop) Apply(v *viewport.Snapshot, c *Collector) {
	if !v.Active {
		return
	}

	n := v.LineCount()
	for i := range h.count {
		line := v.Cursor.Line + int(h.direction)*i
		if line < 0 || line >= n {
			break
		}

		col := 0
		if h.hugContent {
			col = util.IndentWidth(v.LineAt(line))
		}
		start := viewport.Position{Line: line, Column: col}
		c.Add(Match{View: v.ID, Start: start, End: start.Offset(1)})
	}
}
