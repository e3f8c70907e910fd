package match

import "github.com/peco/flash/viewport"

// SortKey orders matches of the same view by position.
func (m Match) SortKey() int {
	return m.Start.Line*SortKeyLineFactor + m.Start.Column
}

// Range returns the span covered by m.
func (m Match) Range() viewport.Range {
	return viewport.Range{Start: m.Start, End: m.End}
}

// Add appends m to the candidates.
func (c *Collector) Add(m Match) {
	c.matches = append(c.matches, m)
}

// Reserve records ch as a possible continuation of the query.
func (c *Collector) Reserve(ch rune) {
	c.reserved = append(c.reserved, ch)
}

// Matches returns the candidates in the order they were added.
func (c *Collector) Matches() []Match {
	return c.matches
}

// Reserved returns the reserved characters, duplicates included.
func (c *Collector) Reserved() []rune {
	return c.reserved
}

// Len returns the number of candidates.
func (c *Collector) Len() int {
	return len(c.matches)
}

func (c *Collector) Reset() {
	c.matches = c.matches[:0]
	c.reserved = c.reserved[:0]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}
