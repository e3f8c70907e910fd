package match

import (
	"slices"
	"unicode"

	"github.com/peco/flash/internal/util"
	"github.com/peco/flash/viewport"
)

// NewSubstring creates a Source matching query literally. Unless
// caseSensitive is set, both query and text are lowercased first.
func NewSubstring(query string, caseSensitive bool) *Substring {
	q := []rune(query)
	if !caseSensitive {
		q = util.LowerRunes(q)
	}
	return &Substring{query: q, caseSensitive: caseSensitive}
}

func (s *Substring) String() string {
	if s.caseSensitive {
		return "CaseSensitive"
	}
	return "IgnoreCase"
}

// Apply searches the whole document of the active view, and only the
// visible lines of any other view. An empty query matches nothing.
func (s *Substring) Apply(v *viewport.Snapshot, c *Collector) {
	if len(s.query) == 0 {
		return
	}

	n := v.LineCount()
	if v.Active {
		for line := range n {
			s.applyLine(v, line, c)
		}
		return
	}

	for _, r := range v.VisibleSet().Ranges() {
		for line := max(r.Start, 0); line <= r.End && line < n; line++ {
			s.applyLine(v, line, c)
		}
	}
}

func (s *Substring) applyLine(v *viewport.Snapshot, line int, c *Collector) {
	text := []rune(v.LineAt(line))
	hay := text
	if !s.caseSensitive {
		hay = util.LowerRunes(text)
	}

	qlen := len(s.query)
	// Every start index is tried, so "aa" matches "aaa" at 0 and 1.
	for i := 0; i+qlen <= len(hay); i++ {
		if !slices.Equal(hay[i:i+qlen], s.query) {
			continue
		}

		start := viewport.Position{Line: line, Column: i}
		c.Add(Match{View: v.ID, Start: start, End: start.Offset(qlen)})

		if next := i + qlen; next < len(text) {
			c.Reserve(text[next])
			c.Reserve(unicode.ToLower(text[next]))
		}
	}
}
