package match

import (
	"github.com/peco/flash/outline"
	"github.com/peco/flash/viewport"
)

// Outline offers every symbol of a structural outline, nested ones
// included, in pre-order.
type Outline struct {
	symbols []*outline.Symbol
}

// NewOutline creates a Source from the given symbol tree.
func NewOutline(roots []*outline.Symbol) *Outline {
	return &Outline{symbols: outline.Flatten(roots)}
}

func (o *Outline) String() string {
	return "Outline"
}

// Apply adds one match per symbol, spanning the symbol's name.
// Overlapping symbols are not deduplicated.
func (o *Outline) Apply(v *viewport.Snapshot, c *Collector) {
	if !v.Active {
		return
	}
	for _, s := range o.symbols {
		c.Add(Match{
			View:  v.ID,
			Start: s.Start,
			End:   s.Start.Offset(len([]rune(s.Name))),
		})
	}
}
